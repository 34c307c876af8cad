package fpdf

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/jonathan/resume-builder/internal/types"
)

func sampleResume() types.ResumeData {
	data := types.NewResumeData()
	data.PersonalInfo = types.PersonalInfo{Name: "Jane Doe", Email: "jane@example.com", Phone: "555-123-4567", Location: "Zürich"}
	data.Summary = "Engineer focused on reliable distributed systems and developer tooling."
	data.Experience = []types.WorkExperience{{
		ID: "e1", Company: "Acme (EU)", Position: "Staff Engineer", StartDate: "2019", Current: true,
		Description: []string{"Led the storage team", strings.Repeat("Improved throughput across every service. ", 8)},
	}}
	data.Education = []types.Education{{ID: "d1", Institution: "ETH", Degree: "MSc", Field: "CS"}}
	data.Skills = []string{"Go", "Rust"}
	data.Projects = []types.Project{{ID: "p1", Name: "kvstore"}}
	return data
}

func layout(t *testing.T, templateID string, data types.ResumeData) *rendering.PageDocument {
	t.Helper()
	tmpl, ok := templates.Get(templateID)
	require.True(t, ok)
	doc, err := rendering.NewPDFRenderer(nil).Layout(data, tmpl)
	require.NoError(t, err)
	return doc
}

// drawn returns s as it appears inside a text string of an uncompressed
// content stream: UTF-16BE with the PDF string escapes applied
func drawn(s string) string {
	var sb strings.Builder
	for _, u := range utf16.Encode([]rune(s)) {
		for _, c := range []byte{byte(u >> 8), byte(u)} {
			switch c {
			case '\\', '(', ')':
				sb.WriteByte('\\')
				sb.WriteByte(c)
			case '\r':
				sb.WriteString(`\r`)
			default:
				sb.WriteByte(c)
			}
		}
	}
	return sb.String()
}

func TestRenderPage_ProducesPDF(t *testing.T) {
	for _, id := range []string{"modern-professional", "executive-classic", "creative-portfolio", "minimal-clean"} {
		t.Run(id, func(t *testing.T) {
			out, err := New().RenderPage(context.Background(), layout(t, id, sampleResume()))
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
			assert.True(t, bytes.Contains(out, []byte("%%EOF")))
		})
	}
}

func TestRenderPage_SectionOrder(t *testing.T) {
	engine := &Engine{Compress: false}
	out, err := engine.RenderPage(context.Background(), layout(t, "modern-professional", sampleResume()))
	require.NoError(t, err)

	last := -1
	for _, heading := range []string{"PROFESSIONAL SUMMARY", "EXPERIENCE", "EDUCATION", "SKILLS", "PROJECTS"} {
		idx := bytes.Index(out, []byte("("+drawn(heading)+")"))
		require.GreaterOrEqual(t, idx, 0, "heading %s not drawn", heading)
		assert.Greater(t, idx, last, "heading %s out of order", heading)
		last = idx
	}
	assert.True(t, bytes.Contains(out, []byte(drawn("Acme (EU)"))), "parentheses are escaped in text")
}

func TestRenderPage_Deterministic(t *testing.T) {
	doc := layout(t, "tech-innovator", sampleResume())
	a, err := New().RenderPage(context.Background(), doc)
	require.NoError(t, err)
	b, err := New().RenderPage(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRenderPage_PaginatesLongContent(t *testing.T) {
	data := sampleResume()
	for i := 0; i < 12; i++ {
		data.Experience = append(data.Experience, data.Experience[0])
	}
	out, err := (&Engine{}).RenderPage(context.Background(), layout(t, "simple-elegant", data))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, bytes.Count(out, []byte("/Type /Page\n")), 2)
}

func TestRenderPage_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().RenderPage(ctx, layout(t, "modern-professional", sampleResume()))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderPage_NilDocument(t *testing.T) {
	_, err := New().RenderPage(context.Background(), nil)
	assert.Error(t, err)
}

func TestRenderPage_UnicodeText(t *testing.T) {
	for _, id := range []string{"minimal-clean", "executive-classic"} {
		t.Run(id, func(t *testing.T) {
			data := sampleResume()
			data.PersonalInfo.Name = "Łukasz Wójcik 陈伟"
			data.Skills = []string{"Go", "Ελληνικά", "Map<K,V>"}
			data.Summary = "Ships fast 🚀"

			engine := &Engine{Compress: false}
			out, err := engine.RenderPage(context.Background(), layout(t, id, data))
			require.NoError(t, err)

			assert.True(t, bytes.Contains(out, []byte("("+drawn("Łukasz Wójcik 陈伟")+")Tj")), "name is drawn unchanged")
			assert.True(t, bytes.Contains(out, []byte(drawn("Go, Ελληνικά, Map<K,V>"))), "skills are drawn unchanged")
			assert.True(t, bytes.Contains(out, []byte(drawn("Ships fast \uFFFD"))), "runes beyond the BMP are replaced")
			assert.True(t, bytes.Contains(out, []byte("/ToUnicode")), "text stays extractable")
			assert.False(t, bytes.Contains(out, []byte("/BaseFont /Helvetica")), "no core font is used")
		})
	}
}
