package callouts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"callouts/internal/events"
	"callouts/internal/markup"
)

const maxCategories = 3

// Service runs every user action to completion under a single lock so
// handlers never observe a half-applied mutation.
type Service struct {
	mu     sync.Mutex
	store  *Store
	likes  LikeSessions
	events events.Publisher
	md     *markup.Renderer
	log    *slog.Logger
	now    func() time.Time
}

func NewService(store *Store, likes LikeSessions, pub events.Publisher, log *slog.Logger) *Service {
	if pub == nil {
		pub = events.Nop{}
	}
	return &Service{
		store:  store,
		likes:  likes,
		events: pub,
		md:     markup.New(),
		log:    log,
		now:    time.Now,
	}
}

// Submit validates input and prepends a new callout.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (*Callout, error) {
	in := input.normalize()
	if err := validate(in); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	c := &Callout{
		ID:         s.store.NextID(now),
		Title:      in.Title,
		Person:     in.Person,
		Reason:     in.Reason,
		Categories: in.Categories,
		Submitter:  in.Submitter,
		Date:       now.UTC().Truncate(time.Millisecond),
	}
	s.store.Append(c)

	if err := s.store.Persist(ctx); err != nil {
		return nil, err
	}

	s.publish(events.CalloutSubmitted, events.CalloutSubmittedEvent{
		CalloutID:  c.ID,
		Title:      c.Title,
		Person:     c.Person,
		Categories: c.Categories,
		Submitter:  c.Submitter,
		CreatedAt:  c.Date,
	})

	out := c.clone()
	return &out, nil
}

func validate(in SubmitInput) error {
	switch {
	case in.Title == "":
		return fmt.Errorf("%w: title is required", ErrValidation)
	case in.Person == "":
		return fmt.Errorf("%w: person is required", ErrValidation)
	case in.Reason == "":
		return fmt.Errorf("%w: reason is required", ErrValidation)
	case len(in.Categories) == 0:
		return fmt.Errorf("%w: at least one category is required", ErrValidation)
	case len(in.Categories) > maxCategories:
		return fmt.Errorf("%w: at most %d categories are allowed", ErrValidation, maxCategories)
	case in.Submitter == "":
		return fmt.Errorf("%w: submitter is required", ErrValidation)
	}
	return nil
}

// GetByID returns a copy of the callout.
func (s *Service) GetByID(ctx context.Context, id string) (*Callout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.store.FindByID(id)
	if !ok {
		return nil, ErrCalloutNotFound
	}
	out := c.clone()
	return &out, nil
}

// RecordView increments the view counter and returns the new count.
func (s *Service) RecordView(ctx context.Context, id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	views, ok := s.store.IncrementViews(id)
	if !ok {
		return 0, ErrCalloutNotFound
	}
	if err := s.store.Persist(ctx); err != nil {
		return 0, err
	}

	s.publish(events.CalloutViewed, events.CalloutViewedEvent{CalloutID: id, Views: views})
	return views, nil
}

// ToggleLike flips the session's like on id. Unknown ids change nothing.
func (s *Service) ToggleLike(ctx context.Context, session, id string) (LikeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.store.FindByID(id)
	if !ok {
		return LikeResult{}, ErrCalloutNotFound
	}

	tracker, err := s.likes.Load(ctx, session)
	if err != nil {
		return LikeResult{}, fmt.Errorf("load likes: %w", err)
	}

	prev := c.Likes
	liked := tracker.Toggle(c)
	if err := s.likes.Save(ctx, session, tracker); err != nil {
		// The liked set was not stored, so the counter must not move either.
		c.Likes = prev
		return LikeResult{}, fmt.Errorf("save likes: %w", err)
	}
	if err := s.store.Persist(ctx); err != nil {
		return LikeResult{}, err
	}

	s.publish(events.CalloutLiked, events.CalloutLikedEvent{CalloutID: id, Likes: c.Likes, Liked: liked})
	return LikeResult{Likes: c.Likes, Liked: liked}, nil
}

// Likes returns the session's tracker for rendering liked state.
func (s *Service) Likes(ctx context.Context, session string) (*LikeTracker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.likes.Load(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("load likes: %w", err)
	}
	return t, nil
}

// List returns the callouts for q.
func (s *Service) List(ctx context.Context, q ListQuery) ([]Callout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return copies(limit(Select(s.store.All(), q.View, q.Word), q.Limit)), nil
}

// Recent returns the newest n callouts.
func (s *Service) Recent(ctx context.Context, n int) ([]Callout, error) {
	return s.List(ctx, ListQuery{View: ViewRecent, Limit: n})
}

// Popular returns the n most liked callouts.
func (s *Service) Popular(ctx context.Context, n int) ([]Callout, error) {
	return s.List(ctx, ListQuery{View: ViewPopular, Limit: n})
}

// Count returns the size of the collection.
func (s *Service) Count(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Len()
}

// WordCloud returns trait frequencies, or the placeholder set when there
// are none.
func (s *Service) WordCloud(ctx context.Context) (WordCloud, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	words, err := WordFrequencies(s.store.All())
	if errors.Is(err, ErrNoData) {
		return WordCloud{Words: Placeholder(), Placeholder: true}, nil
	}
	if err != nil {
		return WordCloud{}, err
	}
	return WordCloud{Words: words}, nil
}

// RenderReason converts reason text to HTML
func (s *Service) RenderReason(reason string) string {
	return s.md.Render(reason)
}

func (s *Service) publish(subject string, event any) {
	if err := s.events.Publish(subject, event); err != nil {
		s.log.Warn("failed to publish event", "subject", subject, "error", err)
	}
}

func copies(callouts []*Callout) []Callout {
	out := make([]Callout, len(callouts))
	for i, c := range callouts {
		out[i] = c.clone()
	}
	return out
}
