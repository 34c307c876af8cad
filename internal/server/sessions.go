package server

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/generation"
	"github.com/jonathan/resume-builder/internal/storage"
)

// previewBaseURL is where session previews are served from
const previewBaseURL = "/builder/previews"

// session is one user's builder. The export guard and preview store outlive
// the per-request orchestrators built on top of them.
type session struct {
	ctrl     *builder.Controller
	guard    *semaphore.Weighted
	previews *generation.MemoryPreviewStore
}

// sessions lazily creates one session per authenticated user
type sessions struct {
	mu           sync.Mutex
	open         func(userID uuid.UUID) storage.Store
	previewLimit int
	items        map[uuid.UUID]*session
}

func newSessions(open func(uuid.UUID) storage.Store, previewLimit int) *sessions {
	if open == nil {
		open = func(uuid.UUID) storage.Store { return storage.NewMemoryStore() }
	}
	return &sessions{
		open:         open,
		previewLimit: previewLimit,
		items:        make(map[uuid.UUID]*session),
	}
}

// get returns the session for userID, restoring its saved snapshot on first use
func (s *sessions) get(ctx context.Context, userID uuid.UUID) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.items[userID]; ok {
		return sess
	}

	previews := generation.NewMemoryPreviewStore(previewBaseURL)
	if s.previewLimit > 0 {
		previews.Limit = s.previewLimit
	}
	sess := &session{
		ctrl:     builder.New(context.WithoutCancel(ctx), s.open(userID)),
		guard:    generation.NewGuard(),
		previews: previews,
	}
	s.items[userID] = sess
	return sess
}

// Len reports the number of open sessions
func (s *sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
