// Package templates provides the static catalog of resume templates.
package templates

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/jonathan/resume-builder/internal/types"
)

// catalog is never mutated; accessors hand out clones.
var catalog = []types.Template{
	{
		ID:          "modern-professional",
		Name:        "Modern Professional",
		Description: "Clean layout with a blue accent bar, suited to most corporate roles",
		Preview:     "/previews/modern-professional.png",
		Category:    types.CategoryModern,
		Industries:  []string{"Technology", "Finance", "Consulting"},
	},
	{
		ID:          "tech-innovator",
		Name:        "Tech Innovator",
		Description: "Skills-forward modern design for engineering and product roles",
		Preview:     "/previews/tech-innovator.png",
		Category:    types.CategoryModern,
		Industries:  []string{"Technology", "Startups", "Engineering"},
	},
	{
		ID:          "executive-classic",
		Name:        "Executive Classic",
		Description: "Traditional centered headings and serif typography for senior leadership",
		Preview:     "/previews/executive-classic.png",
		Category:    types.CategoryClassic,
		Industries:  []string{"Finance", "Legal", "Management"},
	},
	{
		ID:          "academic-classic",
		Name:        "Academic Classic",
		Description: "Conservative layout with room for publications and coursework",
		Preview:     "/previews/academic-classic.png",
		Category:    types.CategoryClassic,
		Industries:  []string{"Education", "Research", "Healthcare"},
	},
	{
		ID:          "creative-portfolio",
		Name:        "Creative Portfolio",
		Description: "Bold purple accents for designers and content creators",
		Preview:     "/previews/creative-portfolio.png",
		Category:    types.CategoryCreative,
		Industries:  []string{"Design", "Marketing", "Media"},
	},
	{
		ID:          "startup-bold",
		Name:        "Startup Bold",
		Description: "Energetic layout that highlights projects and impact",
		Preview:     "/previews/startup-bold.png",
		Category:    types.CategoryCreative,
		Industries:  []string{"Startups", "Marketing", "Sales"},
	},
	{
		ID:          "minimal-clean",
		Name:        "Minimal Clean",
		Description: "Whitespace-first monochrome design that parses well in ATS systems",
		Preview:     "/previews/minimal-clean.png",
		Category:    types.CategoryMinimal,
		Industries:  []string{"Technology", "Research", "Any"},
	},
	{
		ID:          "simple-elegant",
		Name:        "Simple Elegant",
		Description: "Understated single-column layout with thin rules",
		Preview:     "/previews/simple-elegant.png",
		Category:    types.CategoryMinimal,
		Industries:  []string{"Legal", "Healthcare", "Government"},
	},
}

// Catalog returns every template in catalog order
func Catalog() []types.Template {
	out := make([]types.Template, 0, len(catalog))
	for i := range catalog {
		out = append(out, *catalog[i].Clone())
	}
	return out
}

// Get looks up a template by ID
func Get(id string) (*types.Template, bool) {
	for i := range catalog {
		if catalog[i].ID == id {
			return catalog[i].Clone(), true
		}
	}
	return nil, false
}

// Filter returns the templates in the given category. An empty category
// returns the whole catalog.
func Filter(category types.TemplateCategory) []types.Template {
	if category == "" {
		return Catalog()
	}
	out := []types.Template{}
	for i := range catalog {
		if catalog[i].Category == category {
			out = append(out, *catalog[i].Clone())
		}
	}
	return out
}

// Categories lists the categories that have at least one template, in
// display order
func Categories() []types.TemplateCategory {
	out := []types.TemplateCategory{}
	for _, c := range types.AllCategories() {
		for i := range catalog {
			if catalog[i].Category == c {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// Search does a case-insensitive substring match over name, description
// and industries.
func Search(query string) []types.Template {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Catalog()
	}
	out := []types.Template{}
	for i := range catalog {
		if matches(&catalog[i], q) {
			out = append(out, *catalog[i].Clone())
		}
	}
	return out
}

// FilterAndSearch applies Filter then Search
func FilterAndSearch(category types.TemplateCategory, query string) []types.Template {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []types.Template{}
	for _, t := range Filter(category) {
		if q == "" || matches(&t, q) {
			out = append(out, t)
		}
	}
	return out
}

func matches(t *types.Template, q string) bool {
	if strings.Contains(strings.ToLower(t.Name), q) || strings.Contains(strings.ToLower(t.Description), q) {
		return true
	}
	for _, industry := range t.Industries {
		if strings.Contains(strings.ToLower(industry), q) {
			return true
		}
	}
	return false
}

// maxSuggestDistance bounds how different a typo may be and still be suggested
const maxSuggestDistance = 6

// Suggest returns the template whose ID or name is closest to input.
// Used for "did you mean" hints when Get fails.
func Suggest(input string) (*types.Template, bool) {
	needle := strings.ToLower(strings.TrimSpace(input))
	if needle == "" {
		return nil, false
	}
	best, bestDist := -1, maxSuggestDistance+1
	for i := range catalog {
		d := min(
			levenshtein.ComputeDistance(needle, catalog[i].ID),
			levenshtein.ComputeDistance(needle, strings.ToLower(catalog[i].Name)),
		)
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return nil, false
	}
	return catalog[best].Clone(), true
}
