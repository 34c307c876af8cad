// Package generation runs exports: it drives a renderer through the staged
// progress sequence, names the file and hands the bytes to a Saver. Only one
// export runs at a time per Orchestrator.
package generation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

// Download describes a saved document
type Download struct {
	Filename  string       `json:"filename"`
	Format    types.Format `json:"format"`
	MediaType string       `json:"mediaType"`
	Size      int          `json:"size"`
	Location  string       `json:"location"`
}

// Orchestrator coordinates rendering, naming and saving of documents
type Orchestrator struct {
	renderers rendering.Set
	saver     Saver
	previews  PreviewStore
	now       func() time.Time
	verbose   bool

	inFlight *semaphore.Weighted
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithPreviewStore sets where previews are kept
func WithPreviewStore(store PreviewStore) Option {
	return func(o *Orchestrator) { o.previews = store }
}

// WithClock replaces time.Now for filename dates
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// WithVerbose logs each stage
func WithVerbose(verbose bool) Option {
	return func(o *Orchestrator) { o.verbose = verbose }
}

// WithGuard shares an in-flight guard between orchestrators, so that
// short-lived orchestrators built per request still admit one export at a time
// per owner of the guard
func WithGuard(guard *semaphore.Weighted) Option {
	return func(o *Orchestrator) { o.inFlight = guard }
}

// NewGuard returns a guard suitable for WithGuard
func NewGuard() *semaphore.Weighted {
	return semaphore.NewWeighted(1)
}

// New returns an orchestrator rendering through renderers and saving through saver
func New(renderers rendering.Set, saver Saver, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		renderers: renderers,
		saver:     saver,
		previews:  NewMemoryPreviewStore("/builder/previews"),
		now:       time.Now,
		inFlight:  NewGuard(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// GenerateAndDownload renders data with tmpl in format and saves the result.
// Progress already reported is never rolled back on failure. A second call
// while one is running fails fast with ErrExportInFlight.
func (o *Orchestrator) GenerateAndDownload(ctx context.Context, data types.ResumeData, tmpl *types.Template, format types.Format, onProgress ProgressCallback) (*Download, error) {
	if !o.inFlight.TryAcquire(1) {
		return nil, ErrExportInFlight
	}
	defer o.inFlight.Release(1)

	if tmpl == nil {
		return nil, noTemplateError()
	}
	renderer, err := o.renderers.For(format)
	if err != nil {
		return nil, &GenerationError{UserMessage: fmt.Sprintf("%s export is not available", strings.ToUpper(string(format))), Cause: err}
	}

	o.stage(onProgress, StagePrepare, format)
	if err := canceled(ctx); err != nil {
		return nil, err
	}

	o.stage(onProgress, StageGenerate, format)
	out, err := renderer.Render(ctx, data, tmpl)
	if err != nil {
		return nil, renderFailure(format, err)
	}

	o.stage(onProgress, StageOptimize, format)
	if err := canceled(ctx); err != nil {
		return nil, err
	}

	download, err := o.save(ctx, data, tmpl, format, out)
	if err != nil {
		return nil, err
	}

	o.stage(onProgress, StageComplete, format)
	return download, nil
}

// GenerateBundle renders every configured format concurrently and saves
// them all. It shares the in-flight guard with GenerateAndDownload.
func (o *Orchestrator) GenerateBundle(ctx context.Context, data types.ResumeData, tmpl *types.Template, onProgress ProgressCallback) ([]Download, error) {
	if !o.inFlight.TryAcquire(1) {
		return nil, ErrExportInFlight
	}
	defer o.inFlight.Release(1)

	if tmpl == nil {
		return nil, noTemplateError()
	}
	formats := []types.Format{types.FormatPDF, types.FormatDOCX}

	o.stage(onProgress, StagePrepare, formats...)
	if err := canceled(ctx); err != nil {
		return nil, err
	}

	o.stage(onProgress, StageGenerate, formats...)
	outputs := make([][]byte, len(formats))
	g, gCtx := errgroup.WithContext(ctx)
	for i, format := range formats {
		g.Go(func() error {
			renderer, err := o.renderers.For(format)
			if err != nil {
				return renderFailure(format, err)
			}
			out, err := renderer.Render(gCtx, data, tmpl)
			if err != nil {
				return renderFailure(format, err)
			}
			outputs[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	o.stage(onProgress, StageOptimize, formats...)
	if err := canceled(ctx); err != nil {
		return nil, err
	}

	downloads := make([]Download, 0, len(formats))
	for i, format := range formats {
		d, err := o.save(ctx, data, tmpl, format, outputs[i])
		if err != nil {
			return downloads, err
		}
		downloads = append(downloads, *d)
	}

	o.stage(onProgress, StageComplete, formats...)
	return downloads, nil
}

// GeneratePreview renders a PDF into the preview store without saving it.
// Previews do not take the export guard.
func (o *Orchestrator) GeneratePreview(ctx context.Context, data types.ResumeData, tmpl *types.Template) (PreviewRef, error) {
	if tmpl == nil {
		return PreviewRef{}, noTemplateError()
	}
	renderer, err := o.renderers.For(types.FormatPDF)
	if err != nil {
		return PreviewRef{}, &GenerationError{UserMessage: "Preview is not available", Cause: err}
	}
	out, err := renderer.Render(ctx, data, tmpl)
	if err != nil {
		return PreviewRef{}, &GenerationError{UserMessage: "Failed to generate preview. Please try again.", Cause: err}
	}
	ref, err := o.previews.Put(ctx, types.MediaTypePDF, out)
	if err != nil {
		return PreviewRef{}, &GenerationError{UserMessage: "Failed to store preview", Cause: err}
	}
	return ref, nil
}

// Preview returns a stored preview
func (o *Orchestrator) Preview(ctx context.Context, id string) (PreviewRef, []byte, bool) {
	return o.previews.Get(ctx, id)
}

func (o *Orchestrator) save(ctx context.Context, data types.ResumeData, tmpl *types.Template, format types.Format, out []byte) (*Download, error) {
	filename := Filename(data.PersonalInfo.Name, tmpl.Name, format, o.now())
	location, err := o.saver.Save(ctx, filename, format.MediaType(), out)
	if err != nil {
		return nil, &DownloadError{Filename: filename, Cause: err}
	}
	if o.verbose {
		log.Printf("[export] saved %s (%d bytes) to %s", filename, len(out), location)
	}
	return &Download{
		Filename:  filename,
		Format:    format,
		MediaType: format.MediaType(),
		Size:      len(out),
		Location:  location,
	}, nil
}

func (o *Orchestrator) stage(cb ProgressCallback, stage Stage, formats ...types.Format) {
	if o.verbose {
		log.Printf("[export] %s (%d%%)", stage, StagePercent[stage])
	}
	emitProgress(cb, stage, formats...)
}

func noTemplateError() error {
	return &GenerationError{
		UserMessage: "Please select a template before generating your resume",
		Cause:       &rendering.TemplateError{Message: "no template selected"},
	}
}

func renderFailure(format types.Format, err error) error {
	var missing *rendering.MissingFieldError
	if errors.As(err, &missing) {
		return &GenerationError{
			UserMessage: "Please fill in the required fields: " + strings.Join(missing.Fields, ", "),
			Cause:       err,
		}
	}
	return &GenerationError{
		UserMessage: fmt.Sprintf("Failed to generate %s. Please try again.", strings.ToUpper(string(format))),
		Cause:       err,
	}
}

func canceled(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return &GenerationError{UserMessage: "Export was canceled", Cause: err}
	}
	return nil
}
