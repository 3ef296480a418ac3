// Package detail loads extended item information (genres, cast, trailer)
// for the detail pane and the detail command.
package detail

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/mmcdole/reel/internal/domain"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheSize is the number of detail records kept in memory
const DefaultCacheSize = 64

// Service fetches item detail. Concurrent requests for one ID share a
// single catalog call; successful results are cached.
type Service struct {
	catalog domain.Catalog
	logger  *slog.Logger
	group   singleflight.Group

	mu       sync.Mutex
	cache    map[int]domain.Item
	order    []int // insertion order, oldest first
	capacity int
}

// NewService creates a detail service. A capacity <= 0 uses DefaultCacheSize.
func NewService(catalog domain.Catalog, capacity int, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &Service{
		catalog:  catalog,
		logger:   logger,
		cache:    make(map[int]domain.Item),
		capacity: capacity,
	}
}

// Get returns the item with its Detail populated. The shared fetch is
// detached from ctx: a caller that gives up returns ctx.Err() without
// failing the others waiting on the same ID.
func (s *Service) Get(ctx context.Context, id int) (domain.Item, error) {
	if item, ok := s.cached(id); ok {
		return item, nil
	}

	fetchCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(strconv.Itoa(id), func() (interface{}, error) {
		item, err := s.catalog.FetchDetail(fetchCtx, id)
		if err != nil {
			return nil, err
		}
		s.store(item)
		return item, nil
	})

	select {
	case <-ctx.Done():
		return domain.Item{}, fmt.Errorf("load detail %d: %w", id, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return domain.Item{}, fmt.Errorf("load detail %d: %w", id, res.Err)
		}
		if res.Shared {
			s.logger.Debug("served detail from shared fetch", "id", id)
		}
		return res.Val.(domain.Item), nil
	}
}

func (s *Service) cached(id int) (domain.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.cache[id]
	return item, ok
}

func (s *Service) store(item domain.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cache[item.ID]; !ok {
		s.order = append(s.order, item.ID)
	}
	s.cache[item.ID] = item

	for len(s.order) > s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.cache, oldest)
	}
}
