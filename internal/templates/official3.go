package templates

import "weighbridge-backend/internal/models"

const noTrailer = "لا يوجد"

type official3Row struct {
	RightLabel string
	RightValue string
	RightUnit  string
	LeftLabel  string
	IsDate     bool
	LeftValue  string
	Time       string
	Period     string
	Date       string
}

type official3View struct {
	Header   header
	TicketNo string
	Rows     []official3Row
}

func (f fields) weightRight(k models.FieldKey, label string, v float64) official3Row {
	r := official3Row{RightLabel: label, RightValue: f.number(k, v, ArabicPlain)}
	if f.shown(k) {
		r.RightUnit = unitKg
	}
	return r
}

func (f fields) dateLeft(r official3Row, k models.FieldKey, label, v string) official3Row {
	r.LeftLabel = label
	r.IsDate = true
	r.Time = f.date(k, v, Clock24)
	r.Period = f.date(k, v, Period)
	r.Date = f.date(k, v, dashDate)
	return r
}

func official3Render(t models.Ticket, _ Env) any {
	f := fields{t}

	trailer := t.TrailerNo
	if trailer == "" {
		trailer = noTrailer
	}

	entry := f.dateLeft(f.weightRight(models.FieldTareWeight, "الوزنة الأولى", t.TareWeight),
		models.FieldEntryDate, "تاريخ الوزن الأول", t.EntryDate)
	exit := f.dateLeft(f.weightRight(models.FieldGrossWeight, "الوزنة الثانية", t.GrossWeight),
		models.FieldExitDate, "تاريخ الوزن الثاني", t.ExitDate)
	net := f.weightRight(models.FieldNetWeight, "صافي الحمولة", t.NetWeight)
	net.LeftLabel = "المشغل"
	net.LeftValue = f.text(models.FieldOperatorName, t.OperatorName)

	return official3View{
		Header:   f.header(),
		TicketNo: f.text(models.FieldTicketNo, t.TicketNo),
		Rows: []official3Row{
			{
				RightLabel: "رقم السيارة",
				RightValue: f.text(models.FieldVehicleNo, t.VehicleNo),
				LeftLabel:  "المقطورة",
				LeftValue:  f.text(models.FieldTrailerNo, trailer),
			},
			entry,
			exit,
			net,
			{
				RightLabel: "عميل / مورد",
				RightValue: f.text(models.FieldCustomerName, t.CustomerName),
				LeftLabel:  "سعر الوزنة",
				LeftValue:  f.number(models.FieldPrice, t.Price, priceText),
			},
		},
	}
}
