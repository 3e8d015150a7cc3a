package templates

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"weighbridge-backend/internal/models"
)

func render(t *testing.T, reg *Registry, tk models.Ticket, id models.TemplateID) (*Document, *goquery.Document) {
	t.Helper()
	doc, err := reg.Render(tk, id, Env{Now: time.Date(2025, 11, 2, 12, 0, 0, 0, time.UTC)})
	if err != nil {
		t.Fatalf("render %s: %v", id, err)
	}
	dom, err := goquery.NewDocumentFromReader(bytes.NewReader(doc.HTML))
	if err != nil {
		t.Fatalf("parse %s: %v", id, err)
	}
	return doc, dom
}

func texts(sel *goquery.Selection) []string {
	var out []string
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, s.Text())
	})
	return out
}

func TestRenderIsPure(t *testing.T) {
	reg := NewRegistry()
	tk := models.NewTicket()
	before := tk.Clone()
	env := Env{Now: time.Date(2025, 11, 2, 12, 0, 0, 0, time.UTC)}

	for _, info := range models.TemplateCatalog {
		a, err := reg.Render(tk, info.ID, env)
		if err != nil {
			t.Fatalf("%s: %v", info.ID, err)
		}
		b, err := reg.Render(tk, info.ID, env)
		if err != nil {
			t.Fatalf("%s: %v", info.ID, err)
		}
		if !bytes.Equal(a.HTML, b.HTML) {
			t.Errorf("%s: renders differ", info.ID)
		}
		if a.TemplateID != info.ID {
			t.Errorf("%s: document reports %s", info.ID, a.TemplateID)
		}
	}
	if !reflect.DeepEqual(tk, before) {
		t.Error("rendering modified the ticket")
	}
}

func TestCopies(t *testing.T) {
	reg := NewRegistry()
	tk := models.NewTicket()
	want := map[models.TemplateID]int{
		models.TemplateClassic:   1,
		models.TemplateModern:    1,
		models.TemplateGrid:      1,
		models.TemplateOfficial:  1,
		models.TemplateOfficial2: 2,
		models.TemplateOfficial3: 2,
		models.TemplatePrimary1:  1,
		models.TemplatePrimary2:  2,
	}

	for id, n := range want {
		doc, dom := render(t, reg, tk, id)
		if doc.Copies != n {
			t.Errorf("%s: Copies = %d, want %d", id, doc.Copies, n)
		}
		if got := dom.Find("section.copy").Length(); got != n {
			t.Errorf("%s: %d copies in HTML, want %d", id, got, n)
		}
		if got := dom.Find("hr.tear").Length(); got != n-1 {
			t.Errorf("%s: %d dividers, want %d", id, got, n-1)
		}
	}
}

func TestHiddenFieldRendersPlaceholder(t *testing.T) {
	reg := NewRegistry()
	tk := models.NewTicket(
		models.WithFields(func(t *models.Ticket) { t.CustomerName = "عميل سري" }),
		models.WithVisibility(models.FieldVisibility{models.FieldCustomerName: false}),
	)

	for _, info := range models.TemplateCatalog {
		doc, _ := render(t, reg, tk, info.ID)
		html := string(doc.HTML)
		if strings.Contains(html, "عميل سري") {
			t.Errorf("%s: hidden customer name printed", info.ID)
		}
		if strings.Contains(html, "undefined") {
			t.Errorf("%s: printed undefined", info.ID)
		}
	}

	_, dom := render(t, reg, tk, models.TemplateClassic)
	if got := dom.Find(".row .value").Eq(1).Text(); got != NBSP {
		t.Errorf("classic customer = %q, want NBSP", got)
	}
}

// sentinelTicket fills every overlay field with a marker derived from tag and hides all of them
func sentinelTicket(tag string, weight float64, date string) models.Ticket {
	hidden := models.FieldVisibility{}
	for _, k := range models.VisibilityFields {
		hidden[k] = false
	}
	return models.NewTicket(
		models.WithFields(func(t *models.Ticket) {
			t.ID = "sentinel"
			t.WeighbridgeName = tag + "-weighbridge"
			t.CompanyName = tag + "-company"
			t.TicketNo = tag + "-ticket"
			t.VehicleNo = tag + "-vehicle"
			t.TrailerNo = tag + "-trailer"
			t.CustomerName = tag + "-customer"
			t.Item = tag + "-item"
			t.DriverName = tag + "-driver"
			t.VehicleType = tag + "-vtype"
			t.Notes = tag + "-notes"
			t.OperatorName = tag + "-operator"
			t.GrossWeight = weight * 3
			t.TareWeight = weight
			t.NetWeight = weight * 2
			t.Price = weight / 4
			t.EntryDate = date
			t.ExitDate = date
		}),
		models.WithVisibility(hidden),
	)
}

func TestEveryHiddenFieldStaysOutOfEveryTemplate(t *testing.T) {
	reg := NewRegistry()
	first := sentinelTicket("zqxalpha", 48271.5, "2031-07-19T08:41")
	second := sentinelTicket("zqxbravo", 93517.25, "2034-03-05T17:09:33")

	for _, info := range models.TemplateCatalog {
		a, _ := render(t, reg, first, info.ID)
		b, _ := render(t, reg, second, info.ID)
		html := string(a.HTML)
		if strings.Contains(html, "zqxalpha") {
			t.Errorf("%s: hidden text printed", info.ID)
		}
		// with every field hidden the values must not influence the output at all
		if html != string(b.HTML) {
			t.Errorf("%s: output depends on hidden values", info.ID)
		}
		if a.Title != b.Title {
			t.Errorf("%s: title depends on hidden values: %q vs %q", info.ID, a.Title, b.Title)
		}
	}
}

func TestTitleDropsHiddenTicketNumber(t *testing.T) {
	reg := NewRegistry()
	tk := models.NewTicket(models.WithFields(func(t *models.Ticket) { t.TicketNo = "4411" }))

	doc, dom := render(t, reg, tk, models.TemplateClassic)
	if doc.Title != "سند-4411" || dom.Find("title").Text() != "سند-4411" {
		t.Errorf("title = %q", doc.Title)
	}

	tk.FieldVisibility[models.FieldTicketNo] = false
	doc, dom = render(t, reg, tk, models.TemplateClassic)
	if doc.Title != "سند" || strings.Contains(dom.Find("title").Text(), "4411") {
		t.Errorf("hidden title = %q", doc.Title)
	}
}

func TestHiddenWeightsNeverPrintZero(t *testing.T) {
	reg := NewRegistry()
	tk := models.NewTicket(
		models.WithFields(func(t *models.Ticket) { t.TareWeight, t.GrossWeight, t.NetWeight = 0, 0, 0 }),
		models.WithVisibility(models.FieldVisibility{
			models.FieldTareWeight:  false,
			models.FieldGrossWeight: false,
			models.FieldNetWeight:   false,
		}),
	)

	_, dom := render(t, reg, tk, models.TemplateGrid)
	for i, v := range texts(dom.Find(".weight-value")) {
		if v != NBSP {
			t.Errorf("grid weight %d = %q, want NBSP", i, v)
		}
	}
	if dom.Find(".weight.hl").Length() != 0 {
		t.Error("hidden net weight still highlighted")
	}
}

func TestClassicFormatting(t *testing.T) {
	_, dom := render(t, NewRegistry(), models.NewTicket(), models.TemplateClassic)

	values := texts(dom.Find(".row .value"))
	if len(values) != 7 {
		t.Fatalf("got %d rows", len(values))
	}
	if values[0] != "14075" {
		t.Errorf("ticket no = %q", values[0])
	}
	if values[5] != "٠٥\u200f/١٠\u200f/٢٠٢٥، ١٠:٢٩:٠٠ ص" {
		t.Errorf("entry = %q", values[5])
	}
	if values[6] != "٣١\u200f/١٠\u200f/٢٠٢٥، ٠٩:١٤:٠٠ م" {
		t.Errorf("exit = %q", values[6])
	}
	weights := texts(dom.Find(".weights .cell-value"))
	if !reflect.DeepEqual(weights, []string{"٣٬٨٦٠", "٤٬٨٦٠", "١٬٠٠٠"}) {
		t.Errorf("weights = %q", weights)
	}
	if got := dom.Find(".net-value").Text(); got != "١٬٠٠٠" {
		t.Errorf("net total = %q", got)
	}
}

func TestOfficialFormatting(t *testing.T) {
	_, dom := render(t, NewRegistry(), models.NewTicket(), models.TemplateOfficial)

	if got := dom.Find(".row .value").Eq(5).Text(); got != "٢٠٢٥/١٠/٠٥ ١٠:٢٩:٠٠ ص" {
		t.Errorf("entry = %q", got)
	}
	if got := dom.Find(".net-total").Text(); got != "١٬٠٠٠ كجم" {
		t.Errorf("net total = %q", got)
	}
}

func TestModernFormatting(t *testing.T) {
	_, dom := render(t, NewRegistry(), models.NewTicket(), models.TemplateModern)

	if got := dom.Find(".ticket-no").Text(); got != "14075" {
		t.Errorf("ticket no = %q", got)
	}
	if got := texts(dom.Find(".weights .cell-value")); !reflect.DeepEqual(got, []string{"3,860", "4,860", "1,000"}) {
		t.Errorf("weights = %q", got)
	}
	if got := dom.Find(".time .date").First().Text(); got != "٥ أكتوبر ٢٠٢٥" {
		t.Errorf("entry date = %q", got)
	}
	if got := dom.Find(".time .clock").Last().Text(); got != "٠٩:١٤:٠٠ م" {
		t.Errorf("exit time = %q", got)
	}
}

func TestOfficial2Formatting(t *testing.T) {
	_, dom := render(t, NewRegistry(), models.NewTicket(), models.TemplateOfficial2)
	first := dom.Find("section.copy").First()

	left := texts(first.Find(".times .value"))
	want := []string{"05/10/2025", "١٠:٢٩ ص", "31/10/2025", "٩:١٤ م", "موظف الميزان", "", "35 جنيهاً"}
	if !reflect.DeepEqual(left, want) {
		t.Errorf("left column = %q, want %q", left, want)
	}
	if got := first.Find(".loads .line.hl .value").Text(); got != "١٬٠٠٠" {
		t.Errorf("net = %q", got)
	}
}

func TestOfficial3Formatting(t *testing.T) {
	_, dom := render(t, NewRegistry(), models.NewTicket(), models.TemplateOfficial3)
	first := dom.Find("section.copy").First()

	if got := first.Find(".value.left").First().Text(); got != "لا يوجد" {
		t.Errorf("empty trailer = %q", got)
	}
	rights := texts(first.Find(".value.right"))
	if rights[1] != "٣٨٦٠ كجم" || rights[2] != "٤٨٦٠ كجم" || rights[3] != "١٠٠٠ كجم" {
		t.Errorf("weights = %q", rights)
	}
	if got := texts(first.Find(".time")); !reflect.DeepEqual(got, []string{"١٠:٢٩", "٢١:١٤"}) {
		t.Errorf("times = %q", got)
	}
	if got := texts(first.Find(".period")); !reflect.DeepEqual(got, []string{"ص", "م"}) {
		t.Errorf("periods = %q", got)
	}
	if got := first.Find(".date").First().Text(); got != "- 2025/10/05" {
		t.Errorf("date = %q", got)
	}
	if got := first.Find(".value.left").Last().Text(); got != "35 جنيهاً" {
		t.Errorf("price = %q", got)
	}
}

func TestPrimary1Formatting(t *testing.T) {
	_, dom := render(t, NewRegistry(), models.NewTicket(), models.TemplatePrimary1)

	if got := dom.Find(".print-date").Text(); got != "٠٢\u200f/١١\u200f/٢٠٢٥" {
		t.Errorf("print date = %q", got)
	}
	if got := texts(dom.Find("tbody td")); !reflect.DeepEqual(got, []string{"2435", "3,860", "4,860", "1,000"}) {
		t.Errorf("table = %q", got)
	}
	if got := dom.Find(".logo").Text(); got != "LAN" {
		t.Errorf("logo = %q", got)
	}
}

func TestPrimary2Formatting(t *testing.T) {
	_, dom := render(t, NewRegistry(), models.NewTicket(), models.TemplatePrimary2)
	first := dom.Find("section.copy").First()

	rights := texts(first.Find(".value.right"))
	if rights[1] != "3,860 كجم" {
		t.Errorf("tare = %q", rights[1])
	}
	lefts := texts(first.Find(".value.left"))
	if lefts[1] != "١٠:٢٩ ص-2025/10/05" {
		t.Errorf("entry = %q", lefts[1])
	}
	if lefts[4] != "35 جنيهاً" {
		t.Errorf("price = %q", lefts[4])
	}
}

func TestUnparseableDateRendersBlank(t *testing.T) {
	tk := models.NewTicket(models.WithFields(func(t *models.Ticket) { t.EntryDate = "garbage" }))
	_, dom := render(t, NewRegistry(), tk, models.TemplateClassic)
	if got := dom.Find(".row .value").Eq(5).Text(); got != "" {
		t.Errorf("entry = %q, want blank", got)
	}
}
