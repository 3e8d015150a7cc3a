package templates

import "weighbridge-backend/internal/models"

type primary2Row struct {
	Right row
	Left  row
}

type primary2View struct {
	Header   header
	TicketNo string
	Rows     []primary2Row
}

func primary2Render(t models.Ticket, _ Env) any {
	f := fields{t}
	kg := func(v float64) string { return GroupedNumber(v) + " " + unitKg }

	return primary2View{
		Header:   f.header(),
		TicketNo: f.text(models.FieldTicketNo, t.TicketNo),
		Rows: []primary2Row{
			{
				Right: row{"رقم السيارة", f.text(models.FieldVehicleNo, t.VehicleNo)},
				Left:  row{"المقطورة", f.text(models.FieldTrailerNo, t.TrailerNo)},
			},
			{
				Right: row{"الوزنة الأولى", f.number(models.FieldTareWeight, t.TareWeight, kg)},
				Left:  row{"تاريخ الوزن الأول", f.date(models.FieldEntryDate, t.EntryDate, shortClockDashDate)},
			},
			{
				Right: row{"الوزنة الثانية", f.number(models.FieldGrossWeight, t.GrossWeight, kg)},
				Left:  row{"تاريخ الوزن الثاني", f.date(models.FieldExitDate, t.ExitDate, shortClockDashDate)},
			},
			{
				Right: row{"صافي الحمولة", f.number(models.FieldNetWeight, t.NetWeight, kg)},
				Left:  row{"المشغل", f.text(models.FieldOperatorName, t.OperatorName)},
			},
			{
				Right: row{"عميل / مورد", f.text(models.FieldCustomerName, t.CustomerName)},
				Left: row{"سعر الوزنة", f.number(models.FieldPrice, t.Price, func(v float64) string {
					return GroupedNumber(v) + " " + currency
				})},
			},
		},
	}
}
