package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mmcdole/reel/internal/config"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backend opens a store and a function that reopens it from the same location
type backend struct {
	name   string
	open   func(t *testing.T) domain.PreferenceStore
	reopen func(t *testing.T) domain.PreferenceStore
}

func backends(t *testing.T) []backend {
	boltPath := filepath.Join(t.TempDir(), "prefs.db")
	fileDir := filepath.Join(t.TempDir(), "prefs")

	openBolt := func(t *testing.T) domain.PreferenceStore {
		s, err := NewBoltStore(boltPath)
		require.NoError(t, err)
		return s
	}
	openFile := func(t *testing.T) domain.PreferenceStore {
		s, err := NewFileStore(fileDir)
		require.NoError(t, err)
		return s
	}
	return []backend{
		{name: "bolt", open: openBolt, reopen: openBolt},
		{name: "file", open: openFile, reopen: openFile},
	}
}

func TestStoreContract(t *testing.T) {
	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			t.Run("missing slot reads as absent", func(t *testing.T) {
				s := b.open(t)
				defer s.Close()

				var dark bool
				ok, err := s.Get(domain.SlotTheme, &dark)
				require.NoError(t, err)
				assert.False(t, ok)
			})

			t.Run("values survive reopen", func(t *testing.T) {
				s := b.open(t)
				rating := 8.1
				favorites := []domain.Item{
					{ID: 438631, Title: "Dune", Rating: &rating, ReleaseDate: "2021-09-15"},
					{ID: 841, Title: "Dune", PosterPath: "/a.jpg"},
				}
				require.NoError(t, s.Set(domain.SlotFavorites, favorites))
				require.NoError(t, s.Set(domain.SlotTheme, true))
				require.NoError(t, s.Set(domain.SlotLastSearchQuery, "dune"))
				require.NoError(t, s.Set(domain.SlotUser, domain.User{Username: "paul"}))
				require.NoError(t, s.Close())

				s = b.reopen(t)
				defer s.Close()

				var gotFavorites []domain.Item
				ok, err := s.Get(domain.SlotFavorites, &gotFavorites)
				require.NoError(t, err)
				require.True(t, ok)
				assert.Equal(t, favorites, gotFavorites)

				var dark bool
				ok, err = s.Get(domain.SlotTheme, &dark)
				require.NoError(t, err)
				assert.True(t, ok)
				assert.True(t, dark)

				var query string
				_, err = s.Get(domain.SlotLastSearchQuery, &query)
				require.NoError(t, err)
				assert.Equal(t, "dune", query)

				var user domain.User
				ok, err = s.Get(domain.SlotUser, &user)
				require.NoError(t, err)
				assert.True(t, ok)
				assert.Equal(t, "paul", user.Username)
			})

			t.Run("delete removes slot", func(t *testing.T) {
				s := b.open(t)
				require.NoError(t, s.Set(domain.SlotUser, domain.User{Username: "chani"}))
				require.NoError(t, s.Delete(domain.SlotUser))
				require.NoError(t, s.Delete(domain.SlotUser), "deleting twice is not an error")
				require.NoError(t, s.Close())

				s = b.reopen(t)
				defer s.Close()
				var user domain.User
				ok, err := s.Get(domain.SlotUser, &user)
				require.NoError(t, err)
				assert.False(t, ok)
			})

			t.Run("last write wins", func(t *testing.T) {
				s := b.open(t)
				defer s.Close()
				require.NoError(t, s.Set(domain.SlotTheme, true))
				require.NoError(t, s.Set(domain.SlotTheme, false))

				dark := true
				_, err := s.Get(domain.SlotTheme, &dark)
				require.NoError(t, err)
				assert.False(t, dark)
			})
		})
	}
}

func TestMemoryOnlyBoltStore(t *testing.T) {
	s, err := NewBoltStore("")
	require.NoError(t, err)

	require.NoError(t, s.Set(domain.SlotLastSearchQuery, "arrival"))
	var query string
	ok, err := s.Get(domain.SlotLastSearchQuery, &query)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "arrival", query)
	assert.NoError(t, s.Close())
}

func TestBoltStoreFailedWriteKeepsCache(t *testing.T) {
	s, err := NewBoltStore(filepath.Join(t.TempDir(), "prefs.db"))
	require.NoError(t, err)
	require.NoError(t, s.Set(domain.SlotLastSearchQuery, "arrival"))
	require.NoError(t, s.Close())

	assert.Error(t, s.Set(domain.SlotLastSearchQuery, "dune"))

	var query string
	ok, err := s.Get(domain.SlotLastSearchQuery, &query)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "arrival", query)
}

func TestFileStoreCorruptSlot(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "favorites.json"), []byte("{not json"), 0600))

	var items []domain.Item
	ok, err := s.Get(domain.SlotFavorites, &items)
	assert.False(t, ok)
	assert.ErrorContains(t, err, "failed to decode favorites")
}

func TestOpenSelectsBackend(t *testing.T) {
	s, err := Open(config.StorageConfig{Backend: config.StorageFile, Path: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	s, err = Open(config.StorageConfig{Backend: config.StorageBolt})
	require.NoError(t, err)
	assert.IsType(t, &BoltStore{}, s)

	_, err = Open(config.StorageConfig{Backend: "badger"})
	assert.Error(t, err)
}
