package rendering

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-builder/internal/types"
)

// Renderer turns resume data plus a template into document bytes. Render
// is deterministic for a given input.
type Renderer interface {
	Format() types.Format
	Render(ctx context.Context, data types.ResumeData, tmpl *types.Template) ([]byte, error)
}

// Set holds one renderer per output format
type Set map[types.Format]Renderer

// NewSet builds the standard PDF and DOCX backends over the given engines
func NewSet(pages PageEngine, packages PackageEngine) Set {
	return Set{
		types.FormatPDF:  NewPDFRenderer(pages),
		types.FormatDOCX: NewDOCXRenderer(packages),
	}
}

// For returns the renderer for format
func (s Set) For(format types.Format) (Renderer, error) {
	r, ok := s[format]
	if !ok {
		return nil, &RenderError{Message: fmt.Sprintf("no renderer for format %q", format)}
	}
	return r, nil
}
