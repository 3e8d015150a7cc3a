package templates

import (
	"weighbridge-backend/internal/models"
	"weighbridge-backend/internal/timeutil"
)

type primary1View struct {
	CompanyName string
	TicketNo    string
	PrintDate   string
	Left        []row
	Right       []row
	Notes       string
	Table       []string
	Operator    string
}

func primary1Render(t models.Ticket, env Env) any {
	f := fields{t}

	printDate := ""
	if !env.Now.IsZero() {
		printDate = arabicDayMonthYear(timeutil.ToLocal(env.Now))
	}

	return primary1View{
		CompanyName: f.text(models.FieldCompanyName, t.CompanyName),
		TicketNo:    f.text(models.FieldTicketNo, t.TicketNo),
		PrintDate:   printDate,
		Left: []row{
			{"اسم العميل", f.text(models.FieldCustomerName, t.CustomerName)},
			{"نوع السيارة", f.text(models.FieldVehicleType, t.VehicleType)},
			{"رقم السيارة", f.text(models.FieldVehicleNo, t.VehicleNo)},
			{"المقطورة", f.text(models.FieldTrailerNo, t.TrailerNo)},
			{"تاريخ الدخول", f.date(models.FieldEntryDate, t.EntryDate, arabicDayMonthYear)},
		},
		Right: []row{
			{"اسم السائق", f.text(models.FieldDriverName, t.DriverName)},
			{"نوع الحمولة", f.text(models.FieldItem, t.Item)},
			{"وقت الدخول", f.date(models.FieldEntryDate, t.EntryDate, Clock12)},
			{"وقت الخروج", f.date(models.FieldExitDate, t.ExitDate, Clock12)},
			{"تاريخ الخروج", f.date(models.FieldExitDate, t.ExitDate, arabicDayMonthYear)},
		},
		Notes: f.text(models.FieldNotes, t.Notes),
		Table: []string{
			f.text(models.FieldVehicleNo, t.VehicleNo),
			f.number(models.FieldTareWeight, t.TareWeight, GroupedNumber),
			f.number(models.FieldGrossWeight, t.GrossWeight, GroupedNumber),
			f.number(models.FieldNetWeight, t.NetWeight, GroupedNumber),
		},
		Operator: f.text(models.FieldOperatorName, t.OperatorName),
	}
}
