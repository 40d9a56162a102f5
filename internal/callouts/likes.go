package callouts

import "context"

// LikeTracker is one session's set of liked callout ids. It lives apart from
// the callouts themselves and is the only thing that changes Likes.
type LikeTracker struct {
	order []string
	set   map[string]struct{}
}

func NewLikeTracker(ids []string) *LikeTracker {
	t := &LikeTracker{set: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		if _, dup := t.set[id]; dup {
			continue
		}
		t.set[id] = struct{}{}
		t.order = append(t.order, id)
	}
	return t
}

func (t *LikeTracker) IsLiked(id string) bool {
	_, ok := t.set[id]
	return ok
}

// Toggle flips the liked state of c and moves its counter by one, never
// below zero. It reports whether c is liked afterwards.
func (t *LikeTracker) Toggle(c *Callout) bool {
	if t.IsLiked(c.ID) {
		delete(t.set, c.ID)
		for i, id := range t.order {
			if id == c.ID {
				t.order = append(t.order[:i], t.order[i+1:]...)
				break
			}
		}
		c.Likes = max(0, c.Likes-1)
		return false
	}
	t.set[c.ID] = struct{}{}
	t.order = append(t.order, c.ID)
	c.Likes++
	return true
}

// IDs returns liked ids in the order they were liked.
func (t *LikeTracker) IDs() []string {
	return append([]string{}, t.order...)
}

// LikeSessions loads and saves LikeTrackers by session id.
type LikeSessions interface {
	Load(ctx context.Context, session string) (*LikeTracker, error)
	Save(ctx context.Context, session string, t *LikeTracker) error
}
