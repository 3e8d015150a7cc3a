package services

import (
	"testing"

	"weighbridge-backend/internal/models"
)

func TestApplyEditWeightTriangle(t *testing.T) {
	tests := []struct {
		name             string
		field, value     string
		gross, tare, net float64
	}{
		{"defaults untouched", "notes", "x", 4860, 3860, 1000},
		{"tare edit recomputes net", "tareWeight", "4000", 4860, 4000, 860},
		{"gross edit recomputes net", "grossWeight", "5000", 5000, 3860, 1140},
		{"tare above gross stays positive", "tareWeight", "6000", 4860, 6000, 1140},
		{"net edit recomputes gross", "netWeight", "500", 4360, 3860, 500},
		{"garbage coerces to zero", "grossWeight", "abc", 0, 3860, 3860},
		{"empty coerces to zero", "netWeight", "", 3860, 3860, 0},
		{"numeric prefix is kept", "tareWeight", "4000kg", 4860, 4000, 860},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyEdit(models.NewTicket(), tt.field, tt.value)
			if got.GrossWeight != tt.gross || got.TareWeight != tt.tare || got.NetWeight != tt.net {
				t.Errorf("got gross=%v tare=%v net=%v, want %v %v %v",
					got.GrossWeight, got.TareWeight, got.NetWeight, tt.gross, tt.tare, tt.net)
			}
		})
	}
}

func TestApplyEditNetThenTare(t *testing.T) {
	// net edit followed by tare edit recomputes net from the new gross
	tk := models.NewTicket()
	tk = ApplyEdit(tk, "netWeight", "500")
	if tk.GrossWeight != 4360 {
		t.Fatalf("gross = %v, want 4360", tk.GrossWeight)
	}
	tk = ApplyEdit(tk, "tareWeight", "4000")
	if tk.NetWeight != 360 {
		t.Errorf("net = %v, want 360", tk.NetWeight)
	}
}

func TestApplyEditDoesNotMutateInput(t *testing.T) {
	orig := models.NewTicket()
	_ = ApplyEdit(orig, "tareWeight", "1")
	_ = ApplyVisibility(orig, "customerName", false)
	if orig.TareWeight != 3860 {
		t.Errorf("input tare changed to %v", orig.TareWeight)
	}
	if !orig.IsVisible(models.FieldCustomerName) {
		t.Error("input visibility changed")
	}
}

func TestApplyEditTextAndTemplate(t *testing.T) {
	tk := ApplyEdit(models.NewTicket(), "customerName", "شركة النور")
	if tk.CustomerName != "شركة النور" {
		t.Errorf("customerName = %q", tk.CustomerName)
	}
	tk = ApplyEdit(tk, "template", "grid")
	if tk.Template != models.TemplateGrid {
		t.Errorf("template = %q", tk.Template)
	}
	tk = ApplyEdit(tk, "template", "nope")
	if tk.Template != models.TemplateOfficial3 {
		t.Errorf("unknown template resolved to %q", tk.Template)
	}
	before := tk
	tk = ApplyEdit(tk, "id", "other")
	if tk.ID != before.ID {
		t.Error("id must not be editable")
	}
}

func TestApplyVisibility(t *testing.T) {
	tk := ApplyVisibility(models.NewTicket(), "customerName", false)
	if tk.IsVisible(models.FieldCustomerName) {
		t.Error("customerName should be hidden")
	}
	if !tk.IsVisible(models.FieldItem) {
		t.Error("item should stay visible")
	}
	tk = ApplyVisibility(tk, "bogus", false)
	if _, ok := tk.FieldVisibility["bogus"]; ok {
		t.Error("unknown key was added to the overlay")
	}
}

func TestParseWeight(t *testing.T) {
	cases := map[string]float64{
		"12":     12,
		" 12.5 ": 12.5,
		".5":     0.5,
		"-3":     -3,
		"1e3":    1000,
		"x1":     0,
		"":       0,
	}
	for in, want := range cases {
		if got := ParseWeight(in); got != want {
			t.Errorf("ParseWeight(%q) = %v, want %v", in, got, want)
		}
	}
}
