package state

import (
	"context"
	"fmt"
	"sync"

	"github.com/mmcdole/reel/internal/config"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/prefs"
)

// fakeCatalog serves scripted pages. A gate registered for a query/page
// holds that response until the gate is closed.
type fakeCatalog struct {
	mu          sync.Mutex
	trending    []domain.Item
	trendingErr error
	pages       map[string][][]domain.Item
	searchErr   map[string]error
	gates       map[string]chan struct{}
	calls       []string
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		pages:     map[string][][]domain.Item{},
		searchErr: map[string]error{},
		gates:     map[string]chan struct{}{},
	}
}

func callKey(query string, page int) string {
	return fmt.Sprintf("%s#%d", query, page)
}

func (f *fakeCatalog) gate(key string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.gates[key] = ch
	return ch
}

func (f *fakeCatalog) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeCatalog) FetchTrending(ctx context.Context) ([]domain.Item, error) {
	f.mu.Lock()
	f.calls = append(f.calls, "trending")
	gate := f.gates["trending"]
	items, err := f.trending, f.trendingErr
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return items, err
}

func (f *fakeCatalog) Search(ctx context.Context, query string, page int) (domain.SearchPage, error) {
	key := callKey(query, page)

	f.mu.Lock()
	f.calls = append(f.calls, key)
	gate := f.gates[key]
	pages := f.pages[query]
	err := f.searchErr[key]
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return domain.SearchPage{}, ctx.Err()
		}
	}
	if err != nil {
		return domain.SearchPage{}, err
	}
	if page < 1 || page > len(pages) {
		return domain.SearchPage{Page: page, TotalPages: len(pages)}, nil
	}
	return domain.SearchPage{
		Items:      pages[page-1],
		Page:       page,
		TotalPages: len(pages),
	}, nil
}

func (f *fakeCatalog) FetchDetail(ctx context.Context, id int) (domain.Item, error) {
	return domain.Item{}, domain.ErrItemNotFound
}

// items builds n items with IDs starting at first
func items(first, n int) []domain.Item {
	out := make([]domain.Item, n)
	for i := range out {
		id := first + i
		out[i] = domain.Item{ID: id, Title: fmt.Sprintf("Movie %d", id)}
	}
	return out
}

func memoryPrefs() domain.PreferenceStore {
	store, err := prefs.Open(config.StorageConfig{Backend: config.StorageBolt})
	if err != nil {
		panic(err)
	}
	return store
}

// failingPrefs rejects every write
type failingPrefs struct {
	domain.PreferenceStore
}

func (failingPrefs) Set(domain.Slot, any) error { return fmt.Errorf("disk full") }
func (failingPrefs) Delete(domain.Slot) error   { return fmt.Errorf("disk full") }

// recorder collects published snapshots
type recorder struct {
	mu    sync.Mutex
	snaps []Snapshot
}

func (r *recorder) OnSnapshot(snap Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snaps = append(r.snaps, snap)
}

func (r *recorder) All() []Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Snapshot(nil), r.snaps...)
}
