// Package prefs implements the durable preference slots (favorites, theme,
// last search, signed-in user) that survive process restarts.
package prefs

import (
	"fmt"

	"github.com/mmcdole/reel/internal/config"
	"github.com/mmcdole/reel/internal/domain"
)

// Open returns the preference store selected by cfg.Backend.
// An empty path with the bolt backend yields a memory-only store.
func Open(cfg config.StorageConfig) (domain.PreferenceStore, error) {
	switch cfg.Backend {
	case config.StorageBolt, "":
		return NewBoltStore(cfg.Path)
	case config.StorageFile:
		return NewFileStore(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.Backend)
	}
}
