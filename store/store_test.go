package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	Name  string `json:"name"`
	Zone  string `json:"zone"`
	Level int    `json:"level"`
}

// conformance runs the Store contract against any backend.
func conformance(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("get absent", func(t *testing.T) {
		var d doc
		found, err := s.Get(ctx, "rooms", "nowhere", &d)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "rooms", "hall", doc{Name: "Hall", Zone: "keep", Level: 1}))
		var d doc
		found, err := s.Get(ctx, "rooms", "hall", &d)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "Hall", d.Name)
	})

	t.Run("set overwrites", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "rooms", "hall", doc{Name: "Great Hall", Zone: "keep", Level: 2}))
		var d doc
		_, err := s.Get(ctx, "rooms", "hall", &d)
		require.NoError(t, err)
		assert.Equal(t, "Great Hall", d.Name)
		assert.Equal(t, 2, d.Level)
	})

	t.Run("update merges top-level fields", func(t *testing.T) {
		require.NoError(t, s.Update(ctx, "rooms", "hall", map[string]any{"zone": "castle"}))
		var d doc
		_, err := s.Get(ctx, "rooms", "hall", &d)
		require.NoError(t, err)
		assert.Equal(t, "castle", d.Zone)
		assert.Equal(t, "Great Hall", d.Name, "untouched fields must survive the merge")
	})

	t.Run("query with nil filter returns collection", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "rooms", "cave", doc{Name: "Cave", Zone: "wilds", Level: 3}))
		raws, err := s.Query(ctx, "rooms", nil)
		require.NoError(t, err)
		assert.Len(t, raws, 2)
	})

	t.Run("query filters on field equality", func(t *testing.T) {
		raws, err := s.Query(ctx, "rooms", map[string]any{"zone": "wilds"})
		require.NoError(t, err)
		require.Len(t, raws, 1)
		assert.Contains(t, string(raws[0]), "Cave")
	})

	t.Run("query numeric filter", func(t *testing.T) {
		raws, err := s.Query(ctx, "rooms", map[string]any{"level": 3})
		require.NoError(t, err)
		assert.Len(t, raws, 1)
	})

	t.Run("collections are isolated", func(t *testing.T) {
		raws, err := s.Query(ctx, "entities", nil)
		require.NoError(t, err)
		assert.Empty(t, raws)
	})
}

func TestMemory_Conformance(t *testing.T) {
	s := NewMemory()
	defer s.Close()
	conformance(t, s)
}

func TestSQLite_Conformance(t *testing.T) {
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer s.Close()
	conformance(t, s)
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "persist.db")

	s, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "players", "p1", doc{Name: "Tester"}))
	require.NoError(t, s.Close())

	s, err = NewSQLite(path)
	require.NoError(t, err)
	defer s.Close()
	var d doc
	found, err := s.Get(ctx, "players", "p1", &d)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Tester", d.Name)
}

func TestMergeFields_CreatesFromEmpty(t *testing.T) {
	merged, err := mergeFields(nil, map[string]any{"name": "Hall"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Hall"}`, string(merged))
}
