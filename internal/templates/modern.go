package templates

import "weighbridge-backend/internal/models"

type modernTime struct {
	Label string
	Date  string
	Clock string
}

type modernView struct {
	Header   header
	TicketNo string
	Fields   []row
	Weights  []weightCell
	Times    []modernTime
}

func modernRender(t models.Ticket, _ Env) any {
	f := fields{t}
	return modernView{
		Header:   f.header(),
		TicketNo: f.text(models.FieldTicketNo, t.TicketNo),
		Fields: []row{
			{"العميل", f.text(models.FieldCustomerName, t.CustomerName)},
			{"الصنف", f.text(models.FieldItem, t.Item)},
			{"رقم السيارة", f.text(models.FieldVehicleNo, t.VehicleNo)},
			{"رقم المقطورة", f.text(models.FieldTrailerNo, t.TrailerNo)},
		},
		Weights: f.weightCells(GroupedNumber),
		Times: []modernTime{
			{
				Label: "توقيت الدخول",
				Date:  f.date(models.FieldEntryDate, t.EntryDate, LongDate),
				Clock: f.date(models.FieldEntryDate, t.EntryDate, Clock12),
			},
			{
				Label: "توقيت الخروج",
				Date:  f.date(models.FieldExitDate, t.ExitDate, LongDate),
				Clock: f.date(models.FieldExitDate, t.ExitDate, Clock12),
			},
		},
	}
}
