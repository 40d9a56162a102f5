package likes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"callouts/internal/callouts"
)

// FileSessions persists a single local user's liked set as
// {"liked": [ids]}. The session id is ignored.
type FileSessions struct {
	path string
}

func NewFileSessions(path string) *FileSessions {
	return &FileSessions{path: path}
}

type likedDocument struct {
	Liked []string `json:"liked"`
}

func (f *FileSessions) Load(ctx context.Context, session string) (*callouts.LikeTracker, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return callouts.NewLikeTracker(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}

	var doc likedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	return callouts.NewLikeTracker(doc.Liked), nil
}

func (f *FileSessions) Save(ctx context.Context, session string, t *callouts.LikeTracker) error {
	data, err := json.MarshalIndent(likedDocument{Liked: t.IDs()}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode liked set: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := os.WriteFile(f.path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	return nil
}
