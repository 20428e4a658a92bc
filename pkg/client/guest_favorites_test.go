package client

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuestFavoritesToggle(t *testing.T) {
	g, err := LoadGuestFavorites(filepath.Join(t.TempDir(), "favorites.json"))
	require.NoError(t, err)

	assert.True(t, g.Toggle("prop-1"))
	assert.True(t, g.Has("prop-1"))

	assert.False(t, g.Toggle("prop-1"))
	assert.False(t, g.Has("prop-1"))
}

func TestGuestFavoritesIdempotentAddRemove(t *testing.T) {
	g, err := LoadGuestFavorites(filepath.Join(t.TempDir(), "favorites.json"))
	require.NoError(t, err)

	g.Add("prop-1")
	g.Add("prop-1")
	g.Add("prop-2")
	assert.Equal(t, []string{"prop-1", "prop-2"}, g.All())

	g.Remove("prop-1")
	g.Remove("prop-1")
	g.Remove("never-added")
	assert.Equal(t, []string{"prop-2"}, g.All())
}

func TestGuestFavoritesPersistAcrossLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.json")

	g, err := LoadGuestFavorites(path)
	require.NoError(t, err)
	g.Add("prop-a")
	g.Add("prop-b")
	g.Remove("prop-a")
	g.Flush()

	reloaded, err := LoadGuestFavorites(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"prop-b"}, reloaded.All())
}

func TestGuestFavoritesMissingFileIsEmpty(t *testing.T) {
	g, err := LoadGuestFavorites(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Empty(t, g.All())
}

func TestGuestFavoritesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := LoadGuestFavorites(path)
	assert.Error(t, err)
}

func TestGuestFavoritesFileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.json")

	g, err := LoadGuestFavorites(path)
	require.NoError(t, err)
	g.Add("prop-1")
	g.Flush()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var stored []string
	require.NoError(t, json.Unmarshal(raw, &stored))
	assert.Equal(t, []string{"prop-1"}, stored)
}
