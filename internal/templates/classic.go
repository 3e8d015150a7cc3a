package templates

import "weighbridge-backend/internal/models"

type classicView struct {
	Header   header
	Rows     []row
	Weights  []weightCell
	NetTotal string
}

// detailRows is the label/value column shared by classic and official
func (f fields) detailRows(formatDate func(string) string) []row {
	t := f.t
	return []row{
		{"رقم التذكرة", f.text(models.FieldTicketNo, t.TicketNo)},
		{"العميل", f.text(models.FieldCustomerName, t.CustomerName)},
		{"رقم السيارة", f.text(models.FieldVehicleNo, t.VehicleNo)},
		{"رقم المقطورة", f.text(models.FieldTrailerNo, t.TrailerNo)},
		{"الصنف", f.text(models.FieldItem, t.Item)},
		{"وقت الدخول", f.text(models.FieldEntryDate, formatDate(t.EntryDate))},
		{"وقت الخروج", f.text(models.FieldExitDate, formatDate(t.ExitDate))},
	}
}

func classicRender(t models.Ticket, _ Env) any {
	f := fields{t}
	return classicView{
		Header: f.header(),
		Rows: f.detailRows(func(v string) string {
			return dateFormat(v, arabicDayMonthYearClock)
		}),
		Weights:  f.weightCells(ArabicGrouped),
		NetTotal: f.number(models.FieldNetWeight, t.NetWeight, ArabicGrouped),
	}
}
