package builder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/validation"
)

// failingStore fails every write
type failingStore struct {
	*storage.MemoryStore
}

func (failingStore) Set(context.Context, string, string) error {
	return errors.New("disk full")
}

func sequentialIDs() Option {
	n := 0
	return WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	})
}

func TestController_PersistsAfterEveryChange(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	c := New(ctx, store)

	_, found, err := store.Get(ctx, StorageKey)
	require.NoError(t, err)
	assert.False(t, found, "nothing is written before the first change")

	assert.True(t, c.UpdateSummary("hello"))
	raw, found, err := store.Get(ctx, StorageKey)
	require.NoError(t, err)
	require.True(t, found)

	decoded, err := Decode([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, "hello", decoded.ResumeData.Summary)
	assert.True(t, decoded.IsDirty)

	assert.True(t, c.Next())
	raw, _, _ = store.Get(ctx, StorageKey)
	decoded, err = Decode([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, 1, decoded.CurrentStepIndex, "navigation is persisted too")
}

func TestController_NoOpDoesNotPersist(t *testing.T) {
	store := storage.NewMemoryStore()
	c := New(context.Background(), store)

	assert.False(t, c.RemoveExperience("nope"))
	assert.Equal(t, 0, store.Len())
}

func TestController_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	first := New(ctx, store, sequentialIDs())
	first.SelectTemplate(modernTemplate(t))
	first.UpdatePersonalInfo(types.PersonalInfo{Name: "Jane Doe", Email: "jane@example.com", Phone: "5551234567", Location: "Remote"})
	id := first.AddExperience(types.WorkExperience{Company: "Acme", Position: "Engineer"})
	assert.Equal(t, "id-1", id)
	first.AddLanguage(types.Language{Language: "German", Proficiency: types.ProficiencyBasic})
	first.GoTo(4)

	second := New(ctx, store)
	if diff := cmp.Diff(first.Snapshot(), second.Snapshot()); diff != "" {
		t.Errorf("restored state differs (-want +got):\n%s", diff)
	}
}

func TestController_CorruptSnapshotFallsBack(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "{{{"},
		{"schema violation", `{"currentStepIndex": -1, "steps": [], "resumeData": {"personalInfo": {}}}`},
		{"wrong shape", `[1, 2, 3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := storage.NewMemoryStore()
			require.NoError(t, store.Set(ctx, StorageKey, tt.raw))

			c := New(ctx, store)
			if diff := cmp.Diff(NewState(), c.Snapshot()); diff != "" {
				t.Errorf("expected initial state (-want +got):\n%s", diff)
			}

			_, err := c.LoadProgress(ctx)
			var persistErr *PersistenceError
			assert.True(t, errors.As(err, &persistErr))
		})
	}
}

func TestController_SaveFailureIsSwallowed(t *testing.T) {
	c := New(context.Background(), failingStore{storage.NewMemoryStore()})

	assert.True(t, c.AddSkill("Go"), "mutations succeed even if persistence fails")
	assert.Equal(t, []string{"Go"}, c.Snapshot().ResumeData.Skills)

	err := c.SaveProgress(context.Background())
	var persistErr *PersistenceError
	require.True(t, errors.As(err, &persistErr))
	assert.Equal(t, "save", persistErr.Op)
	assert.Contains(t, err.Error(), "disk full")
}

func TestController_ResetRemovesStoredRecord(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	c := New(ctx, store)
	c.AddSkill("Go")
	require.Equal(t, 1, store.Len())

	require.NoError(t, c.ResetBuilder(ctx))
	assert.Equal(t, 0, store.Len())
	if diff := cmp.Diff(NewState(), c.Snapshot()); diff != "" {
		t.Errorf("expected initial state (-want +got):\n%s", diff)
	}
}

func TestController_LoadProgressWithNothingStored(t *testing.T) {
	c := New(context.Background(), nil)
	found, err := c.LoadProgress(context.Background())
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestController_ValidateForm(t *testing.T) {
	c := New(context.Background(), nil)
	c.Dispatch(Hydrate{State: fullState(t)})

	report := c.ValidateForm()
	assert.Equal(t, validation.Validate(c.Snapshot().ResumeData, c.Snapshot().SelectedTemplate), report)
	assert.True(t, report.IsValid)
	assert.Contains(t, report.Warnings, validation.KeySkills)

	c.RemoveExperience("exp-1")
	report = c.ValidateForm()
	assert.False(t, report.IsValid)
	assert.Contains(t, report.Errors, validation.KeyExperience)
}

func TestController_OnChange(t *testing.T) {
	var seen []string
	c := New(context.Background(), nil, WithOnChange(func(s State) {
		seen = append(seen, s.CurrentStep().Title)
	}))

	c.Next()
	c.Next()
	c.Previous()
	c.Previous()
	c.Previous()

	assert.Equal(t, []string{"Personal Information", "Professional Summary", "Personal Information", "Choose Template"}, seen)
}

func TestController_ConcurrentDispatch(t *testing.T) {
	store := storage.NewMemoryStore()
	c := New(context.Background(), store)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.AddSkill(fmt.Sprintf("skill-%02d", i))
		}(i)
	}
	wg.Wait()

	assert.Len(t, c.Snapshot().ResumeData.Skills, 20)

	raw, _, err := store.Get(context.Background(), StorageKey)
	require.NoError(t, err)
	stored, err := Decode([]byte(raw))
	require.NoError(t, err)
	assert.Len(t, stored.ResumeData.Skills, 20, "the newest snapshot wins")
	assert.True(t, strings.HasPrefix(stored.ResumeData.Skills[0], "skill-"))
}
