package models

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Ticket is one weighing event. JSON keys match the field names kept in the document store.
type Ticket struct {
	ID              string          `json:"id"`
	EntityName      string          `json:"entityName"`
	TicketNo        string          `json:"ticketNo"`
	WeighbridgeName string          `json:"weighbridgeName"`
	CompanyName     string          `json:"companyName"`
	VehicleNo       string          `json:"vehicleNo"`
	TrailerNo       string          `json:"trailerNo"`
	VehicleType     string          `json:"vehicleType"`
	DriverName      string          `json:"driverName"`
	CustomerName    string          `json:"customerName"`
	Item            string          `json:"item"`
	OperatorName    string          `json:"operatorName"`
	Notes           string          `json:"notes"`
	TareWeight      float64         `json:"tareWeight"`
	GrossWeight     float64         `json:"grossWeight"`
	NetWeight       float64         `json:"netWeight"`
	EntryDate       string          `json:"entryDate"` // local wall time, 2006-01-02T15:04[:05]
	ExitDate        string          `json:"exitDate"`
	Price           float64         `json:"price"`
	Template        TemplateID      `json:"template"`
	FieldVisibility FieldVisibility `json:"fieldVisibility,omitempty"`
}

// DefaultTicket returns a fresh copy of the record new tickets start from
func DefaultTicket() Ticket {
	return Ticket{
		TicketNo:        "14075",
		WeighbridgeName: "ميزان بسكول الاسلامية",
		CompanyName:     "الشرايبه ترعه الجلاد 01023122530",
		VehicleNo:       "2435",
		VehicleType:     "١/٢ نقل",
		OperatorName:    "موظف الميزان",
		Notes:           "ملاحظات",
		TareWeight:      3860,
		GrossWeight:     4860,
		NetWeight:       1000,
		EntryDate:       "2025-10-05T10:29:00",
		ExitDate:        "2025-10-31T21:14:00",
		Price:           35,
		Template:        DefaultTemplate,
	}
}

// TicketOption overrides part of the default record in NewTicket
type TicketOption func(*Ticket)

// WithEntity assigns the owning entity
func WithEntity(name string) TicketOption {
	return func(t *Ticket) { t.EntityName = name }
}

// WithTemplate selects the print layout
func WithTemplate(id TemplateID) TicketOption {
	return func(t *Ticket) { t.Template = id }
}

// WithVisibility lays v over the default visibility
func WithVisibility(v FieldVisibility) TicketOption {
	return func(t *Ticket) {
		for k, b := range v {
			t.FieldVisibility[k] = b
		}
	}
}

// WithFields applies an arbitrary change to the record
func WithFields(fn func(*Ticket)) TicketOption {
	return TicketOption(fn)
}

// NewTicket builds a ticket with a generated id over the default record and default visibility
func NewTicket(opts ...TicketOption) Ticket {
	t := DefaultTicket()
	t.ID = uuid.NewString()
	t.FieldVisibility = DefaultVisibility()
	for _, opt := range opts {
		opt(&t)
	}
	t.Normalize()
	return t
}

// DecodeTicket unmarshals a possibly partial ticket document over the default record.
// Keys absent from data keep their default values.
func DecodeTicket(data []byte) (Ticket, error) {
	t := DefaultTicket()
	if err := json.Unmarshal(data, &t); err != nil {
		return Ticket{}, fmt.Errorf("failed to decode ticket: %w", err)
	}
	t.Normalize()
	return t, nil
}

// Clone returns a deep copy
func (t Ticket) Clone() Ticket {
	c := t
	c.FieldVisibility = t.FieldVisibility.Clone()
	return c
}

// Normalize fills missing visibility keys and resolves unknown template ids
func (t *Ticket) Normalize() {
	t.FieldVisibility = MergeVisibility(t.FieldVisibility)
	t.Template = t.Template.Resolve()
}

// IsVisible is shorthand for the ticket's visibility overlay
func (t Ticket) IsVisible(k FieldKey) bool {
	return t.FieldVisibility.IsVisible(k)
}

// TicketSummary is one row of an entity's ticket list
type TicketSummary struct {
	ID           string  `json:"id"`
	TicketNo     string  `json:"ticketNo"`
	VehicleNo    string  `json:"vehicleNo"`
	CustomerName string  `json:"customerName"`
	Item         string  `json:"item"`
	NetWeight    float64 `json:"netWeight"`
	NetDisplay   string  `json:"netDisplay"`
	EntryDate    string  `json:"entryDate"`
	EntryDisplay string  `json:"entryDisplay"`
}
