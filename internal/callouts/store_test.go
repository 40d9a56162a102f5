package callouts

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_AppendPrepends(t *testing.T) {
	s := NewStore(&memPersister{})
	s.Append(callout("a", 0, 0, baseTime))
	s.Append(callout("b", 0, 0, baseTime))
	s.Append(callout("c", 0, 0, baseTime))

	assert.Equal(t, []string{"c", "b", "a"}, ids(s.All()))
	assert.Equal(t, 3, s.Len())
}

func TestStore_FindByID(t *testing.T) {
	s := NewStore(&memPersister{})
	s.Append(callout("a", 0, 0, baseTime, "Kind"))

	c, ok := s.FindByID("a")
	require.True(t, ok)
	assert.Equal(t, "Title a", c.Title)

	_, ok = s.FindByID("missing")
	assert.False(t, ok)
}

func TestStore_IncrementViews(t *testing.T) {
	s := NewStore(&memPersister{})
	s.Append(callout("a", 0, 4, baseTime))

	views, ok := s.IncrementViews("a")
	require.True(t, ok)
	assert.Equal(t, 5, views)

	t.Run("unknown id is a no-op", func(t *testing.T) {
		views, ok := s.IncrementViews("nope")
		assert.False(t, ok)
		assert.Zero(t, views)
		c, _ := s.FindByID("a")
		assert.Equal(t, 5, c.Views)
	})
}

func TestStore_NextID(t *testing.T) {
	s := NewStore(&memPersister{})
	first := s.NextID(baseTime)
	assert.Equal(t, "1741953600000", first)

	s.Append(callout(first, 0, 0, baseTime))
	second := s.NextID(baseTime)
	assert.NotEqual(t, first, second, "colliding timestamps get a fresh id")
	assert.Equal(t, "1741953600001", second)
}

func TestFilePersister_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := tempFile(t)

	s := NewStore(NewFilePersister(path))
	s.Append(callout("1", 0, 31, baseTime.Add(-72*time.Hour), "Dedicated", "Loving"))
	s.Append(callout("2", 3, 10, baseTime.Add(-time.Hour), "Open-minded"))
	s.Append(&Callout{
		ID:         "3",
		Title:      "Unicode ✨",
		Person:     "Zoë",
		Reason:     "she said \"thanks\"\nand meant it",
		Categories: []string{"Self-Assured", "Kind", "Easy-going"},
		Submitter:  "Lee",
		Date:       baseTime.Add(1500 * time.Millisecond),
		Likes:      1,
	})
	require.NoError(t, s.Persist(ctx))

	reloaded := NewStore(NewFilePersister(path))
	require.NoError(t, reloaded.Load(ctx))

	if diff := cmp.Diff(s.All(), reloaded.All()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFilePersister_Layout(t *testing.T) {
	ctx := context.Background()
	path := tempFile(t)
	p := NewFilePersister(path)

	require.NoError(t, p.Save(ctx, []*Callout{callout("1", 0, 0, baseTime, "Kind")}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"callouts":[{
		"id":"1","title":"Title 1","person":"Person 1","reason":"Reason 1",
		"categories":["Kind"],"submitter":"Submitter 1",
		"date":"2025-03-14T12:00:00Z","views":0,"likes":0
	}]}`, string(data))
}

func TestFilePersister_MissingLikesDecodeAsZero(t *testing.T) {
	ctx := context.Background()
	path := tempFile(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(`{"callouts":[{"id":"1","title":"t","person":"p","reason":"r","categories":["Kind"],"submitter":"s","date":"2025-03-14T12:00:00.000Z","views":15}]}`), 0o644))

	list, err := NewFilePersister(path).Load(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 0, list[0].Likes)
	assert.Equal(t, 15, list[0].Views)
}

func TestFilePersister_NoSnapshot(t *testing.T) {
	_, err := NewFilePersister(tempFile(t)).Load(context.Background())
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("first run seeds samples", func(t *testing.T) {
		path := tempFile(t)
		s, err := Open(ctx, NewFilePersister(path), true)
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(s.All()))
		assert.FileExists(t, path)
	})

	t.Run("first run without seed starts empty", func(t *testing.T) {
		s, err := Open(ctx, NewFilePersister(tempFile(t)), false)
		require.NoError(t, err)
		assert.Zero(t, s.Len())
	})

	t.Run("existing data is not reseeded", func(t *testing.T) {
		path := tempFile(t)
		p := NewFilePersister(path)
		require.NoError(t, p.Save(ctx, []*Callout{callout("x", 0, 0, baseTime, "Kind")}))

		s, err := Open(ctx, p, true)
		require.NoError(t, err)
		assert.Equal(t, []string{"x"}, ids(s.All()))
	})

	t.Run("corrupt file is an error", func(t *testing.T) {
		path := tempFile(t)
		p := NewFilePersister(path)
		require.NoError(t, p.Save(ctx, nil))
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		_, err := Open(ctx, p, true)
		assert.Error(t, err)
	})
}

func TestStore_PersistFailureKeepsMemory(t *testing.T) {
	p := &memPersister{fail: errDiskFull}
	s := NewStore(p)
	s.Append(callout("a", 0, 0, baseTime))

	err := s.Persist(context.Background())
	assert.ErrorIs(t, err, errDiskFull)
	assert.Equal(t, 1, s.Len())
}
