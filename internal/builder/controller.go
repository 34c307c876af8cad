package builder

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/validation"
)

const defaultSaveTimeout = 5 * time.Second

// Controller owns a builder State, applies commands to it and persists the
// result to a Store after every dirty transition. It is safe for concurrent use.
type Controller struct {
	mu      sync.Mutex
	state   State
	version uint64

	saveMu       sync.Mutex
	savedVersion uint64

	store       storage.Store
	key         string
	saveTimeout time.Duration
	newID       func() string
	onChange    func(State)
}

// Option configures a Controller
type Option func(*Controller)

// WithKey overrides the storage key (the server keys snapshots per user)
func WithKey(key string) Option {
	return func(c *Controller) { c.key = key }
}

// WithSaveTimeout bounds each save
func WithSaveTimeout(d time.Duration) Option {
	return func(c *Controller) { c.saveTimeout = d }
}

// WithIDGenerator replaces the UUID generator used for new entries
func WithIDGenerator(fn func() string) Option {
	return func(c *Controller) { c.newID = fn }
}

// WithOnChange registers a callback run after every changed transition
func WithOnChange(fn func(State)) Option {
	return func(c *Controller) { c.onChange = fn }
}

// New creates a controller and hydrates it from store. A missing or
// unusable snapshot leaves the controller in the initial state; only the
// diagnostic is logged. A nil store keeps state in memory only.
func New(ctx context.Context, store storage.Store, opts ...Option) *Controller {
	if store == nil {
		store = storage.NewMemoryStore()
	}
	c := &Controller{
		state:       NewState(),
		store:       store,
		key:         StorageKey,
		saveTimeout: defaultSaveTimeout,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}

	if _, err := c.LoadProgress(ctx); err != nil {
		log.Printf("[builder] starting fresh, could not restore %s: %v", c.key, err)
	}
	return c
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Dispatch applies cmd and persists the result if it made the state dirty.
// It reports whether the state changed.
func (c *Controller) Dispatch(cmd Command) bool {
	c.mu.Lock()
	next, changed := Apply(c.state, c.assignIDs(cmd))
	if !changed {
		c.mu.Unlock()
		return false
	}
	c.state = next
	c.version++
	version := c.version
	snapshot := next.Clone()
	c.mu.Unlock()

	switch cmd.(type) {
	case Reset, Hydrate:
	default:
		if snapshot.IsDirty {
			c.persist(snapshot, version)
		}
	}
	if c.onChange != nil {
		c.onChange(snapshot)
	}
	return true
}

// persist writes the snapshot, logging instead of returning failures.
// A snapshot older than one already written is dropped.
func (c *Controller) persist(s State, version uint64) {
	c.saveMu.Lock()
	defer c.saveMu.Unlock()
	if version <= c.savedVersion {
		return
	}
	c.savedVersion = version

	ctx, cancel := context.WithTimeout(context.Background(), c.saveTimeout)
	defer cancel()
	if err := c.save(ctx, s); err != nil {
		log.Printf("[builder] %v", err)
	}
}

func (c *Controller) save(ctx context.Context, s State) error {
	data, err := Encode(s)
	if err != nil {
		return &PersistenceError{Op: "save", Cause: err}
	}
	if err := c.store.Set(ctx, c.key, string(data)); err != nil {
		return &PersistenceError{Op: "save", Cause: err}
	}
	return nil
}

// assignIDs gives new collection entries an ID when the caller left it empty
func (c *Controller) assignIDs(cmd Command) Command {
	switch v := cmd.(type) {
	case AddExperience:
		if v.Entry.ID == "" {
			v.Entry.ID = c.newID()
		}
		return v
	case AddEducation:
		if v.Entry.ID == "" {
			v.Entry.ID = c.newID()
		}
		return v
	case AddProject:
		if v.Entry.ID == "" {
			v.Entry.ID = c.newID()
		}
		return v
	case AddCertification:
		if v.Entry.ID == "" {
			v.Entry.ID = c.newID()
		}
		return v
	case AddLanguage:
		if v.Entry.ID == "" {
			v.Entry.ID = c.newID()
		}
		return v
	}
	return cmd
}

// SaveProgress writes the current state regardless of the dirty flag
func (c *Controller) SaveProgress(ctx context.Context) error {
	return c.save(ctx, c.Snapshot())
}

// LoadProgress replaces the state with the stored snapshot. It reports
// false with no error when nothing is stored.
func (c *Controller) LoadProgress(ctx context.Context) (bool, error) {
	raw, found, err := c.store.Get(ctx, c.key)
	if err != nil {
		return false, &PersistenceError{Op: "load", Cause: err}
	}
	if !found {
		return false, nil
	}
	restored, err := Decode([]byte(raw))
	if err != nil {
		return false, &PersistenceError{Op: "load", Cause: err}
	}
	c.Dispatch(Hydrate{State: restored})
	return true, nil
}

// ResetBuilder returns to the initial state and deletes the stored snapshot
func (c *Controller) ResetBuilder(ctx context.Context) error {
	c.Dispatch(Reset{})
	if err := c.store.Remove(ctx, c.key); err != nil {
		return &PersistenceError{Op: "reset", Cause: err}
	}
	return nil
}

// ValidateForm runs the form validator over the current data and template
func (c *Controller) ValidateForm() types.ValidationReport {
	s := c.Snapshot()
	return validation.Validate(s.ResumeData, s.SelectedTemplate)
}

// Navigation

func (c *Controller) Next() bool          { return c.Dispatch(NextStep{}) }
func (c *Controller) Previous() bool      { return c.Dispatch(PreviousStep{}) }
func (c *Controller) GoTo(index int) bool { return c.Dispatch(GoToStep{Index: index}) }
func (c *Controller) TogglePreview() bool { return c.Dispatch(TogglePreview{}) }

// Content

func (c *Controller) SelectTemplate(t *types.Template) bool {
	return c.Dispatch(SelectTemplate{Template: t})
}

func (c *Controller) UpdatePersonalInfo(info types.PersonalInfo) bool {
	return c.Dispatch(UpdatePersonalInfo{Info: info})
}

func (c *Controller) UpdateSummary(summary string) bool {
	return c.Dispatch(UpdateSummary{Summary: summary})
}

// AddExperience appends an entry and returns its ID
func (c *Controller) AddExperience(e types.WorkExperience) string {
	cmd := c.assignIDs(AddExperience{Entry: e}).(AddExperience)
	c.Dispatch(cmd)
	return cmd.Entry.ID
}

func (c *Controller) UpdateExperience(e types.WorkExperience) bool {
	return c.Dispatch(UpdateExperience{Entry: e})
}

func (c *Controller) RemoveExperience(id string) bool {
	return c.Dispatch(RemoveExperience{ID: id})
}

// AddEducation appends an entry and returns its ID
func (c *Controller) AddEducation(e types.Education) string {
	cmd := c.assignIDs(AddEducation{Entry: e}).(AddEducation)
	c.Dispatch(cmd)
	return cmd.Entry.ID
}

func (c *Controller) UpdateEducation(e types.Education) bool {
	return c.Dispatch(UpdateEducation{Entry: e})
}

func (c *Controller) RemoveEducation(id string) bool {
	return c.Dispatch(RemoveEducation{ID: id})
}

// AddProject appends an entry and returns its ID
func (c *Controller) AddProject(p types.Project) string {
	cmd := c.assignIDs(AddProject{Entry: p}).(AddProject)
	c.Dispatch(cmd)
	return cmd.Entry.ID
}

// AddCertification appends an entry and returns its ID
func (c *Controller) AddCertification(cert types.Certification) string {
	cmd := c.assignIDs(AddCertification{Entry: cert}).(AddCertification)
	c.Dispatch(cmd)
	return cmd.Entry.ID
}

// AddLanguage appends an entry and returns its ID
func (c *Controller) AddLanguage(l types.Language) string {
	cmd := c.assignIDs(AddLanguage{Entry: l}).(AddLanguage)
	c.Dispatch(cmd)
	return cmd.Entry.ID
}

func (c *Controller) AddSkill(name string) bool    { return c.Dispatch(AddSkill{Name: name}) }
func (c *Controller) RemoveSkill(name string) bool { return c.Dispatch(RemoveSkill{Name: name}) }
