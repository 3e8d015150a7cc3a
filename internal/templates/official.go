package templates

import "weighbridge-backend/internal/models"

type officialView struct {
	Header   header
	Rows     []row
	Weights  []weightCell
	NetTotal string
}

func officialRender(t models.Ticket, _ Env) any {
	f := fields{t}
	return officialView{
		Header: f.header(),
		Rows: f.detailRows(func(v string) string {
			return dateFormat(v, arabicYearMonthDayClock)
		}),
		Weights: f.weightCells(ArabicGrouped),
		NetTotal: f.number(models.FieldNetWeight, t.NetWeight, func(v float64) string {
			return ArabicGrouped(v) + " " + unitKg
		}),
	}
}
