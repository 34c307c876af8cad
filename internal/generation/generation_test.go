package generation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/jonathan/resume-builder/internal/types"
)

// fakeRenderer returns fixed bytes, optionally blocking until released
type fakeRenderer struct {
	format  types.Format
	err     error
	started chan struct{}
	release chan struct{}
}

func (f *fakeRenderer) Format() types.Format { return f.format }

func (f *fakeRenderer) Render(ctx context.Context, data types.ResumeData, tmpl *types.Template) ([]byte, error) {
	if f.started != nil {
		close(f.started)
	}
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	if err := rendering.Preflight(data); err != nil {
		return nil, err
	}
	return []byte("doc:" + string(f.format)), nil
}

// memorySaver records saved documents
type memorySaver struct {
	mu    sync.Mutex
	saved map[string][]byte
	err   error
}

func (m *memorySaver) Save(_ context.Context, filename, _ string, data []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saved == nil {
		m.saved = map[string][]byte{}
	}
	m.saved[filename] = data
	return "mem://" + filename, nil
}

var fixedDate = time.Date(2024, time.January, 15, 9, 30, 0, 0, time.UTC)

func fakeSet() rendering.Set {
	return rendering.Set{
		types.FormatPDF:  &fakeRenderer{format: types.FormatPDF},
		types.FormatDOCX: &fakeRenderer{format: types.FormatDOCX},
	}
}

func resume() types.ResumeData {
	data := types.NewResumeData()
	data.PersonalInfo = types.PersonalInfo{Name: "Jane Doe", Email: "jane@example.com"}
	data.Experience = []types.WorkExperience{{ID: "e1", Company: "Acme", Position: "Engineer"}}
	data.Education = []types.Education{{ID: "d1", Institution: "State", Degree: "BS"}}
	return data
}

func modern(t *testing.T) *types.Template {
	t.Helper()
	tmpl, ok := templates.Get("modern-professional")
	require.True(t, ok)
	return tmpl
}

func collect(events *[]ProgressEvent) ProgressCallback {
	return func(e ProgressEvent) { *events = append(*events, e) }
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name     string
		person   string
		template string
		format   types.Format
		want     string
	}{
		{"pdf", "Jane Doe", "Modern Professional", types.FormatPDF, "jane_doe_resume_modern_professional_2024-01-15.pdf"},
		{"docx", "Jane Doe", "Modern Professional", types.FormatDOCX, "jane_doe_resume_modern_professional_2024-01-15.docx"},
		{"extra whitespace", "  José   de la Cruz ", "Executive\tClassic", types.FormatPDF, "josé_de_la_cruz_resume_executive_classic_2024-01-15.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Filename(tt.person, tt.template, tt.format, fixedDate))
		})
	}
}

func TestGenerateAndDownload_Success(t *testing.T) {
	saver := &memorySaver{}
	o := New(fakeSet(), saver, WithClock(func() time.Time { return fixedDate }))

	var events []ProgressEvent
	d, err := o.GenerateAndDownload(context.Background(), resume(), modern(t), types.FormatPDF, collect(&events))
	require.NoError(t, err)

	assert.Equal(t, "jane_doe_resume_modern_professional_2024-01-15.pdf", d.Filename)
	assert.Equal(t, types.MediaTypePDF, d.MediaType)
	assert.Equal(t, "mem://"+d.Filename, d.Location)
	assert.Equal(t, []byte("doc:pdf"), saver.saved[d.Filename])

	require.Len(t, events, 4)
	var percents []int
	for _, e := range events {
		percents = append(percents, e.Percent)
	}
	assert.Equal(t, []int{10, 50, 85, 100}, percents)
	assert.Equal(t, StageComplete, events[3].Stage)
	assert.Equal(t, "Generating PDF document...", events[1].Message)
}

func TestGenerateAndDownload_NilTemplate(t *testing.T) {
	var events []ProgressEvent
	_, err := New(fakeSet(), &memorySaver{}).GenerateAndDownload(context.Background(), resume(), nil, types.FormatDOCX, collect(&events))

	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	var tmplErr *rendering.TemplateError
	assert.True(t, errors.As(err, &tmplErr))
	assert.Empty(t, events)
}

func TestGenerateAndDownload_MissingFields(t *testing.T) {
	saver := &memorySaver{}
	var events []ProgressEvent
	data := resume()
	data.Education = nil

	_, err := New(fakeSet(), saver).GenerateAndDownload(context.Background(), data, modern(t), types.FormatPDF, collect(&events))

	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Contains(t, genErr.UserMessage, "education")
	var missing *rendering.MissingFieldError
	assert.True(t, errors.As(err, &missing))

	require.Len(t, events, 2, "progress stops where the failure happened")
	assert.Equal(t, 50, events[1].Percent)
	assert.Empty(t, saver.saved)
}

func TestGenerateAndDownload_RenderAndSaveFailures(t *testing.T) {
	boom := errors.New("engine crashed")
	set := rendering.Set{types.FormatPDF: &fakeRenderer{format: types.FormatPDF, err: boom}}
	_, err := New(set, &memorySaver{}).GenerateAndDownload(context.Background(), resume(), modern(t), types.FormatPDF, nil)

	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, "Failed to generate PDF. Please try again.", genErr.UserMessage)
	assert.ErrorIs(t, err, boom)

	_, err = New(set, &memorySaver{}).GenerateAndDownload(context.Background(), resume(), modern(t), types.FormatDOCX, nil)
	require.True(t, errors.As(err, &genErr), "unknown format is a generation error")

	diskFull := errors.New("disk full")
	_, err = New(fakeSet(), &memorySaver{err: diskFull}).GenerateAndDownload(context.Background(), resume(), modern(t), types.FormatDOCX, nil)
	var dlErr *DownloadError
	require.True(t, errors.As(err, &dlErr))
	assert.ErrorIs(t, err, diskFull)
}

func TestGenerateAndDownload_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var events []ProgressEvent
	_, err := New(fakeSet(), &memorySaver{}).GenerateAndDownload(ctx, resume(), modern(t), types.FormatPDF, collect(&events))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, events, 1)
}

func TestGenerateAndDownload_RejectsConcurrentExport(t *testing.T) {
	slow := &fakeRenderer{format: types.FormatPDF, started: make(chan struct{}), release: make(chan struct{})}
	set := rendering.Set{types.FormatPDF: slow, types.FormatDOCX: &fakeRenderer{format: types.FormatDOCX}}
	o := New(set, &memorySaver{})

	done := make(chan error, 1)
	go func() {
		_, err := o.GenerateAndDownload(context.Background(), resume(), modern(t), types.FormatPDF, nil)
		done <- err
	}()
	<-slow.started

	_, err := o.GenerateAndDownload(context.Background(), resume(), modern(t), types.FormatDOCX, nil)
	assert.ErrorIs(t, err, ErrExportInFlight)
	_, err = o.GenerateBundle(context.Background(), resume(), modern(t), nil)
	assert.ErrorIs(t, err, ErrExportInFlight)

	close(slow.release)
	require.NoError(t, <-done)

	_, err = o.GenerateAndDownload(context.Background(), resume(), modern(t), types.FormatDOCX, nil)
	assert.NoError(t, err, "the guard is released after the first export")
}

func TestWithGuard_SharedAcrossOrchestrators(t *testing.T) {
	slow := &fakeRenderer{format: types.FormatPDF, started: make(chan struct{}), release: make(chan struct{})}
	guard := NewGuard()
	first := New(rendering.Set{types.FormatPDF: slow}, &memorySaver{}, WithGuard(guard))
	second := New(fakeSet(), &memorySaver{}, WithGuard(guard))
	unrelated := New(fakeSet(), &memorySaver{})

	done := make(chan error, 1)
	go func() {
		_, err := first.GenerateAndDownload(context.Background(), resume(), modern(t), types.FormatPDF, nil)
		done <- err
	}()
	<-slow.started

	_, err := second.GenerateAndDownload(context.Background(), resume(), modern(t), types.FormatDOCX, nil)
	assert.ErrorIs(t, err, ErrExportInFlight)

	_, err = unrelated.GenerateAndDownload(context.Background(), resume(), modern(t), types.FormatDOCX, nil)
	assert.NoError(t, err)

	close(slow.release)
	require.NoError(t, <-done)
}

func TestGenerateBundle(t *testing.T) {
	saver := &memorySaver{}
	o := New(fakeSet(), saver, WithClock(func() time.Time { return fixedDate }))

	var events []ProgressEvent
	downloads, err := o.GenerateBundle(context.Background(), resume(), modern(t), collect(&events))
	require.NoError(t, err)

	require.Len(t, downloads, 2)
	assert.Equal(t, types.FormatPDF, downloads[0].Format)
	assert.Equal(t, types.FormatDOCX, downloads[1].Format)
	assert.Len(t, saver.saved, 2)
	assert.Equal(t, "Generating PDF and DOCX document...", events[1].Message)
	assert.Len(t, events, 4)
}

func TestGeneratePreview(t *testing.T) {
	saver := &memorySaver{}
	previews := NewMemoryPreviewStore("/builder/previews")
	o := New(fakeSet(), saver, WithPreviewStore(previews))

	ref, err := o.GeneratePreview(context.Background(), resume(), modern(t))
	require.NoError(t, err)
	assert.Equal(t, types.MediaTypePDF, ref.MediaType)
	assert.Equal(t, "/builder/previews/"+ref.ID, ref.URL)
	assert.Empty(t, saver.saved, "previews are never saved")

	got, data, ok := o.Preview(context.Background(), ref.ID)
	require.True(t, ok)
	assert.Equal(t, ref, got)
	assert.Equal(t, []byte("doc:pdf"), data)

	_, err = o.GeneratePreview(context.Background(), resume(), nil)
	var genErr *GenerationError
	assert.True(t, errors.As(err, &genErr))
}

func TestMemoryPreviewStore_Evicts(t *testing.T) {
	store := &MemoryPreviewStore{BaseURL: "/p", Limit: 2}
	ctx := context.Background()

	first, err := store.Put(ctx, types.MediaTypePDF, []byte("1"))
	require.NoError(t, err)
	_, _ = store.Put(ctx, types.MediaTypePDF, []byte("2"))
	third, _ := store.Put(ctx, types.MediaTypePDF, []byte("3"))

	_, _, ok := store.Get(ctx, first.ID)
	assert.False(t, ok)
	_, data, ok := store.Get(ctx, third.ID)
	assert.True(t, ok)
	assert.Equal(t, []byte("3"), data)
}

func TestDirSaverAndFilePreviewStore(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	path, err := DirSaver{Dir: filepath.Join(dir, "exports")}.Save(ctx, "../escape.pdf", types.MediaTypePDF, []byte("pdf"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "exports", "escape.pdf"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "pdf", string(data))

	store := FilePreviewStore{Dir: filepath.Join(dir, "previews")}
	ref, err := store.Put(ctx, types.MediaTypePDF, []byte("preview"))
	require.NoError(t, err)
	assert.Contains(t, ref.URL, "file://")
	_, got, ok := store.Get(ctx, ref.ID)
	require.True(t, ok)
	assert.Equal(t, "preview", string(got))
}
