package types

// TemplateCategory is the closed set of visual families a template belongs to
type TemplateCategory string

// Template categories
const (
	CategoryModern   TemplateCategory = "modern"
	CategoryClassic  TemplateCategory = "classic"
	CategoryCreative TemplateCategory = "creative"
	CategoryMinimal  TemplateCategory = "minimal"
)

// AllCategories lists the categories in display order
func AllCategories() []TemplateCategory {
	return []TemplateCategory{CategoryModern, CategoryClassic, CategoryCreative, CategoryMinimal}
}

// Valid reports whether c is a known category
func (c TemplateCategory) Valid() bool {
	switch c {
	case CategoryModern, CategoryClassic, CategoryCreative, CategoryMinimal:
		return true
	}
	return false
}

// Template is a named visual style plus industry-fit metadata
type Template struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Preview     string           `json:"preview"`
	Category    TemplateCategory `json:"category"`
	Industries  []string         `json:"industries"`
}

// Clone returns a copy of t that shares no slices with it
func (t *Template) Clone() *Template {
	if t == nil {
		return nil
	}
	out := *t
	out.Industries = append([]string{}, t.Industries...)
	return &out
}
