package callouts

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"
)

var (
	ErrCalloutNotFound = errors.New("callout not found")
	ErrValidation      = errors.New("validation failed")
	// ErrNoSnapshot is returned by a Persister that has never been saved to.
	ErrNoSnapshot = errors.New("no persisted callouts")
)

// Persister makes the full callout collection durable.
type Persister interface {
	Load(ctx context.Context) ([]*Callout, error)
	Save(ctx context.Context, callouts []*Callout) error
}

// Store holds callouts most-recent-first and writes them through a Persister.
// It is not safe for concurrent use; Service serialises access.
type Store struct {
	callouts  []*Callout
	index     map[string]*Callout
	persister Persister
}

func NewStore(p Persister) *Store {
	return &Store{
		index:     make(map[string]*Callout),
		persister: p,
	}
}

// Open loads the store from p. When nothing has been persisted yet and seed
// is set, the sample callouts are written as the initial collection.
func Open(ctx context.Context, p Persister, seed bool) (*Store, error) {
	s := NewStore(p)
	err := s.Load(ctx)
	if errors.Is(err, ErrNoSnapshot) {
		if seed {
			s.replace(SampleCallouts(time.Now()))
		}
		if err := s.Persist(ctx); err != nil {
			return nil, err
		}
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Load replaces the in-memory collection with the persisted one.
func (s *Store) Load(ctx context.Context) error {
	loaded, err := s.persister.Load(ctx)
	if err != nil {
		return fmt.Errorf("load callouts: %w", err)
	}
	s.replace(loaded)
	return nil
}

// Persist writes the full collection. A failure leaves memory untouched.
func (s *Store) Persist(ctx context.Context) error {
	if err := s.persister.Save(ctx, s.callouts); err != nil {
		return fmt.Errorf("persist callouts: %w", err)
	}
	return nil
}

func (s *Store) replace(callouts []*Callout) {
	s.callouts = make([]*Callout, 0, len(callouts))
	s.index = make(map[string]*Callout, len(callouts))
	for _, c := range callouts {
		if c.Categories == nil {
			c.Categories = []string{}
		}
		s.callouts = append(s.callouts, c)
		s.index[c.ID] = c
	}
}

// Append inserts c at the front of the collection.
func (s *Store) Append(c *Callout) {
	s.callouts = append([]*Callout{c}, s.callouts...)
	s.index[c.ID] = c
}

// FindByID returns the callout with the given id.
func (s *Store) FindByID(id string) (*Callout, bool) {
	c, ok := s.index[id]
	return c, ok
}

// IncrementViews bumps the view counter of id. Unknown ids are ignored.
func (s *Store) IncrementViews(id string) (int, bool) {
	c, ok := s.index[id]
	if !ok {
		return 0, false
	}
	c.Views++
	return c.Views, true
}

// All returns the callouts in store order. The slice is shared; callers must
// not modify it.
func (s *Store) All() []*Callout {
	return s.callouts
}

func (s *Store) Len() int {
	return len(s.callouts)
}

// NextID derives an id from the creation time in milliseconds. On collision
// the number is bumped until it is unused.
func (s *Store) NextID(now time.Time) string {
	n := now.UnixMilli()
	for {
		id := strconv.FormatInt(n, 10)
		if _, taken := s.index[id]; !taken {
			return id
		}
		n++
	}
}
