package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"weighbridge-backend/internal/models"
)

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseWeight reads the numeric prefix of s. Empty or non-numeric input yields 0.
func ParseWeight(s string) float64 {
	m := leadingNumber.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

var textSetters = map[string]func(*models.Ticket, string){
	"entityName":      func(t *models.Ticket, v string) { t.EntityName = v },
	"ticketNo":        func(t *models.Ticket, v string) { t.TicketNo = v },
	"weighbridgeName": func(t *models.Ticket, v string) { t.WeighbridgeName = v },
	"companyName":     func(t *models.Ticket, v string) { t.CompanyName = v },
	"vehicleNo":       func(t *models.Ticket, v string) { t.VehicleNo = v },
	"trailerNo":       func(t *models.Ticket, v string) { t.TrailerNo = v },
	"vehicleType":     func(t *models.Ticket, v string) { t.VehicleType = v },
	"driverName":      func(t *models.Ticket, v string) { t.DriverName = v },
	"customerName":    func(t *models.Ticket, v string) { t.CustomerName = v },
	"item":            func(t *models.Ticket, v string) { t.Item = v },
	"operatorName":    func(t *models.Ticket, v string) { t.OperatorName = v },
	"notes":           func(t *models.Ticket, v string) { t.Notes = v },
	"entryDate":       func(t *models.Ticket, v string) { t.EntryDate = v },
	"exitDate":        func(t *models.Ticket, v string) { t.ExitDate = v },
}

// ApplyEdit returns a copy of t with one field changed and the weight triangle recomputed.
//
// Editing gross or tare sets net to |gross - tare|. Editing net sets gross to tare + net
// and leaves tare alone. Unknown field names return an unchanged copy.
func ApplyEdit(t models.Ticket, field, value string) models.Ticket {
	out := t.Clone()

	switch field {
	case "grossWeight":
		out.GrossWeight = ParseWeight(value)
		out.NetWeight = math.Abs(out.GrossWeight - out.TareWeight)
	case "tareWeight":
		out.TareWeight = ParseWeight(value)
		out.NetWeight = math.Abs(out.GrossWeight - out.TareWeight)
	case "netWeight":
		out.NetWeight = ParseWeight(value)
		out.GrossWeight = out.TareWeight + out.NetWeight
	case "price":
		out.Price = ParseWeight(value)
	case "template":
		out.Template = models.TemplateID(value).Resolve()
	default:
		if set, ok := textSetters[field]; ok {
			set(&out, value)
		}
	}

	return out
}

// ApplyVisibility returns a copy of t with one field shown or hidden.
// Names outside the visibility set are ignored.
func ApplyVisibility(t models.Ticket, field string, visible bool) models.Ticket {
	out := t.Clone()
	if !models.IsVisibilityField(field) {
		return out
	}
	out.FieldVisibility = models.MergeVisibility(out.FieldVisibility)
	out.FieldVisibility[models.FieldKey(field)] = visible
	return out
}
