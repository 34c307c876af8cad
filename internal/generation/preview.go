package generation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/types"
)

// PreviewRef points at a rendered preview that was not saved for the user
type PreviewRef struct {
	ID        string    `json:"id"`
	MediaType string    `json:"mediaType"`
	URL       string    `json:"url"`
	Size      int       `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}

// PreviewStore keeps preview bytes addressable by ID
type PreviewStore interface {
	Put(ctx context.Context, mediaType string, data []byte) (PreviewRef, error)
	Get(ctx context.Context, id string) (PreviewRef, []byte, bool)
}

const defaultPreviewLimit = 32

type storedPreview struct {
	ref  PreviewRef
	data []byte
}

// MemoryPreviewStore keeps the most recent previews in memory. URLs are
// BaseURL joined with the preview ID.
type MemoryPreviewStore struct {
	BaseURL string
	Limit   int

	mu    sync.Mutex
	items map[string]storedPreview
	order []string
}

// NewMemoryPreviewStore returns a store serving previews under baseURL
func NewMemoryPreviewStore(baseURL string) *MemoryPreviewStore {
	return &MemoryPreviewStore{BaseURL: baseURL, Limit: defaultPreviewLimit}
}

// Put implements PreviewStore, evicting the oldest preview past Limit
func (m *MemoryPreviewStore) Put(_ context.Context, mediaType string, data []byte) (PreviewRef, error) {
	ref := PreviewRef{
		ID:        uuid.NewString(),
		MediaType: mediaType,
		Size:      len(data),
		CreatedAt: time.Now().UTC(),
	}
	ref.URL = m.BaseURL + "/" + ref.ID

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.items == nil {
		m.items = make(map[string]storedPreview)
	}
	m.items[ref.ID] = storedPreview{ref: ref, data: append([]byte(nil), data...)}
	m.order = append(m.order, ref.ID)

	limit := m.Limit
	if limit <= 0 {
		limit = defaultPreviewLimit
	}
	for len(m.order) > limit {
		delete(m.items, m.order[0])
		m.order = m.order[1:]
	}
	return ref, nil
}

// Get implements PreviewStore
func (m *MemoryPreviewStore) Get(_ context.Context, id string) (PreviewRef, []byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok {
		return PreviewRef{}, nil, false
	}
	return p.ref, p.data, true
}

// FilePreviewStore writes previews into Dir and returns file:// URLs, for
// opening in a local viewer.
type FilePreviewStore struct {
	Dir string
}

// Put implements PreviewStore
func (f FilePreviewStore) Put(ctx context.Context, mediaType string, data []byte) (PreviewRef, error) {
	if err := ctx.Err(); err != nil {
		return PreviewRef{}, err
	}
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return PreviewRef{}, fmt.Errorf("creating preview directory: %w", err)
	}
	id := uuid.NewString()
	path, err := filepath.Abs(filepath.Join(f.Dir, "preview-"+id+".pdf"))
	if err != nil {
		return PreviewRef{}, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return PreviewRef{}, err
	}
	return PreviewRef{
		ID:        id,
		MediaType: mediaType,
		URL:       "file://" + filepath.ToSlash(path),
		Size:      len(data),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Get implements PreviewStore
func (f FilePreviewStore) Get(_ context.Context, id string) (PreviewRef, []byte, bool) {
	path := filepath.Join(f.Dir, "preview-"+filepath.Base(id)+".pdf")
	data, err := os.ReadFile(path)
	if err != nil {
		return PreviewRef{}, nil, false
	}
	abs, _ := filepath.Abs(path)
	return PreviewRef{ID: id, MediaType: types.MediaTypePDF, URL: "file://" + filepath.ToSlash(abs), Size: len(data)}, data, true
}
