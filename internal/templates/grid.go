package templates

import "weighbridge-backend/internal/models"

type gridView struct {
	Header   header
	TicketNo string
	Blocks   []row
	Weights  []weightCell
}

func gridRender(t models.Ticket, _ Env) any {
	f := fields{t}
	return gridView{
		Header:   f.header(),
		TicketNo: f.text(models.FieldTicketNo, t.TicketNo),
		Blocks: []row{
			{"العميل / المورد", f.text(models.FieldCustomerName, t.CustomerName)},
			{"الصنف / نوع البضاعة", f.text(models.FieldItem, t.Item)},
			{"رقم السيارة", f.text(models.FieldVehicleNo, t.VehicleNo)},
			{"رقم المقطورة", f.text(models.FieldTrailerNo, t.TrailerNo)},
			{"تاريخ / وقت الدخول", f.date(models.FieldEntryDate, t.EntryDate, arabicDayMonthYearClock)},
			{"تاريخ / وقت الخروج", f.date(models.FieldExitDate, t.ExitDate, arabicDayMonthYearClock)},
		},
		Weights: f.weightCells(GroupedNumber),
	}
}
