package models

// FieldKey names a displayable ticket field
type FieldKey string

const (
	FieldWeighbridgeName FieldKey = "weighbridgeName"
	FieldCompanyName     FieldKey = "companyName"
	FieldTicketNo        FieldKey = "ticketNo"
	FieldVehicleNo       FieldKey = "vehicleNo"
	FieldTrailerNo       FieldKey = "trailerNo"
	FieldCustomerName    FieldKey = "customerName"
	FieldItem            FieldKey = "item"
	FieldGrossWeight     FieldKey = "grossWeight"
	FieldTareWeight      FieldKey = "tareWeight"
	FieldNetWeight       FieldKey = "netWeight"
	FieldEntryDate       FieldKey = "entryDate"
	FieldExitDate        FieldKey = "exitDate"
	FieldDriverName      FieldKey = "driverName"
	FieldVehicleType     FieldKey = "vehicleType"
	FieldNotes           FieldKey = "notes"
	FieldOperatorName    FieldKey = "operatorName"
	FieldPrice           FieldKey = "price"
)

// VisibilityFields is the full set of keys the visibility overlay knows about
var VisibilityFields = []FieldKey{
	FieldWeighbridgeName,
	FieldCompanyName,
	FieldTicketNo,
	FieldVehicleNo,
	FieldTrailerNo,
	FieldCustomerName,
	FieldItem,
	FieldGrossWeight,
	FieldTareWeight,
	FieldNetWeight,
	FieldEntryDate,
	FieldExitDate,
	FieldDriverName,
	FieldVehicleType,
	FieldNotes,
	FieldOperatorName,
	FieldPrice,
}

// FieldVisibility is the per-ticket overlay deciding whether a field's value is printed.
// A missing key means visible. The overlay applies to every template.
type FieldVisibility map[FieldKey]bool

// DefaultVisibility returns a fresh map with every known field visible
func DefaultVisibility() FieldVisibility {
	v := make(FieldVisibility, len(VisibilityFields))
	for _, k := range VisibilityFields {
		v[k] = true
	}
	return v
}

// IsVisible is safe on a nil overlay
func (v FieldVisibility) IsVisible(k FieldKey) bool {
	if v == nil {
		return true
	}
	visible, ok := v[k]
	return !ok || visible
}

// Clone returns an independent copy
func (v FieldVisibility) Clone() FieldVisibility {
	if v == nil {
		return nil
	}
	out := make(FieldVisibility, len(v))
	for k, b := range v {
		out[k] = b
	}
	return out
}

// MergeVisibility lays overlay on top of the defaults, so fields added later
// always have an entry.
func MergeVisibility(overlay FieldVisibility) FieldVisibility {
	merged := DefaultVisibility()
	for k, b := range overlay {
		merged[k] = b
	}
	return merged
}

// IsVisibilityField reports whether name is one of the 17 overlay keys
func IsVisibilityField(name string) bool {
	for _, k := range VisibilityFields {
		if string(k) == name {
			return true
		}
	}
	return false
}
