package callouts

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/goleak"

	"callouts/internal/events"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var baseTime = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// sessions is an in-memory LikeSessions for tests.
type sessions map[string][]string

func (s sessions) Load(ctx context.Context, session string) (*LikeTracker, error) {
	return NewLikeTracker(s[session]), nil
}

func (s sessions) Save(ctx context.Context, session string, t *LikeTracker) error {
	s[session] = t.IDs()
	return nil
}

// flakySessions fails every Save while fail is set.
type flakySessions struct {
	sessions
	fail error
}

func (f *flakySessions) Save(ctx context.Context, session string, t *LikeTracker) error {
	if f.fail != nil {
		return f.fail
	}
	return f.sessions.Save(ctx, session, t)
}

// memPersister records the last saved collection and can be told to fail.
type memPersister struct {
	saved []*Callout
	saves int
	fail  error
}

func (p *memPersister) Load(ctx context.Context) ([]*Callout, error) {
	if p.saved == nil {
		return nil, ErrNoSnapshot
	}
	return p.saved, nil
}

func (p *memPersister) Save(ctx context.Context, callouts []*Callout) error {
	if p.fail != nil {
		return p.fail
	}
	p.saves++
	p.saved = make([]*Callout, len(callouts))
	for i, c := range callouts {
		cp := c.clone()
		p.saved[i] = &cp
	}
	return nil
}

var errDiskFull = errors.New("disk full")

func callout(id string, likes, views int, date time.Time, categories ...string) *Callout {
	return &Callout{
		ID:         id,
		Title:      "Title " + id,
		Person:     "Person " + id,
		Reason:     "Reason " + id,
		Categories: categories,
		Submitter:  "Submitter " + id,
		Date:       date,
		Views:      views,
		Likes:      likes,
	}
}

func ids(list []*Callout) []string {
	out := make([]string, len(list))
	for i, c := range list {
		out[i] = c.ID
	}
	return out
}

func valueIDs(list []Callout) []string {
	out := make([]string, len(list))
	for i, c := range list {
		out[i] = c.ID
	}
	return out
}

type testEnv struct {
	svc       *Service
	store     *Store
	persister *memPersister
	likes     sessions
	events    *events.Recorder
}

// newTestEnv builds a Service over an empty store with a fixed clock.
func newTestEnv(t *testing.T, seed ...*Callout) *testEnv {
	t.Helper()
	p := &memPersister{}
	store := NewStore(p)
	for i := len(seed) - 1; i >= 0; i-- {
		store.Append(seed[i])
	}
	rec := &events.Recorder{}
	likes := sessions{}
	svc := NewService(store, likes, rec, discardLogger())
	svc.now = func() time.Time { return baseTime }
	return &testEnv{svc: svc, store: store, persister: p, likes: likes, events: rec}
}

func tempFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "data", "callouts.json")
}
