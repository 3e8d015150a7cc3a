package templates

import "weighbridge-backend/internal/models"

type official2View struct {
	Header    header
	TicketNo  string
	Left      []row
	VehicleNo string
	TrailerNo string
	Weights   []weightCell
	Item      string
	Customer  string
}

func official2Render(t models.Ticket, _ Env) any {
	f := fields{t}
	return official2View{
		Header:   f.header(),
		TicketNo: f.text(models.FieldTicketNo, t.TicketNo),
		Left: []row{
			{"تاريخ الدخول", f.date(models.FieldEntryDate, t.EntryDate, DayMonthYear)},
			{"وقت الدخول", f.date(models.FieldEntryDate, t.EntryDate, ShortClock12)},
			{"تاريخ الخروج", f.date(models.FieldExitDate, t.ExitDate, DayMonthYear)},
			{"وقت الخروج", f.date(models.FieldExitDate, t.ExitDate, ShortClock12)},
			{"المشغل", f.text(models.FieldOperatorName, t.OperatorName)},
			{"السائق", f.text(models.FieldDriverName, t.DriverName)},
			{"سعر الوزنة", f.number(models.FieldPrice, t.Price, priceText)},
		},
		VehicleNo: f.text(models.FieldVehicleNo, t.VehicleNo),
		TrailerNo: f.text(models.FieldTrailerNo, t.TrailerNo),
		Weights: []weightCell{
			{Label: "الوزنة الأولى", Value: f.number(models.FieldTareWeight, t.TareWeight, ArabicGrouped)},
			{Label: "الوزنة الثانية", Value: f.number(models.FieldGrossWeight, t.GrossWeight, ArabicGrouped)},
			{Label: "صافي الحمولة", Value: f.number(models.FieldNetWeight, t.NetWeight, ArabicGrouped), Highlight: f.shown(models.FieldNetWeight)},
		},
		Item:     f.text(models.FieldItem, t.Item),
		Customer: f.text(models.FieldCustomerName, t.CustomerName),
	}
}

// priceText is the bare price followed by the currency word
func priceText(v float64) string {
	return ShortestNumber(v) + " " + currency
}
