package models

// TemplateID selects one of the printable ticket layouts
type TemplateID string

const (
	TemplateClassic   TemplateID = "classic"
	TemplateModern    TemplateID = "modern"
	TemplateGrid      TemplateID = "grid"
	TemplateOfficial  TemplateID = "official"
	TemplateOfficial2 TemplateID = "official2"
	TemplateOfficial3 TemplateID = "official3"
	TemplatePrimary1  TemplateID = "primary1"
	TemplatePrimary2  TemplateID = "primary2"
)

// DefaultTemplate is used for new tickets and for any identifier that is not in the catalog
const DefaultTemplate = TemplateOfficial3

// TemplateInfo is a catalog entry shown in the template picker
type TemplateInfo struct {
	ID   TemplateID `json:"id"`
	Name string     `json:"name"`
}

// TemplateCatalog lists the templates in picker order
var TemplateCatalog = []TemplateInfo{
	{ID: TemplateOfficial, Name: "صورة رسمية"},
	{ID: TemplateOfficial2, Name: "صورة رسمية 2"},
	{ID: TemplateOfficial3, Name: "صورة رسمية 3"},
	{ID: TemplatePrimary1, Name: "أساسي ١"},
	{ID: TemplatePrimary2, Name: "أساسي ٢"},
	{ID: TemplateModern, Name: "تصميم حديث"},
	{ID: TemplateClassic, Name: "تصميم كلاسيكي"},
	{ID: TemplateGrid, Name: "تصميم شبكي"},
}

// Known reports whether id is one of the catalog templates
func (id TemplateID) Known() bool {
	for _, t := range TemplateCatalog {
		if t.ID == id {
			return true
		}
	}
	return false
}

// Resolve returns id itself when known, DefaultTemplate otherwise
func (id TemplateID) Resolve() TemplateID {
	if id.Known() {
		return id
	}
	return DefaultTemplate
}
