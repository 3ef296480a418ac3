// Package state owns all mutable session state of the client: trending and
// search sessions, favorites, theme and the signed-in user. Display surfaces
// read published Snapshots and call the Store's operations; the Store talks
// to the remote catalog and writes through to the preference store.
package state

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/google/uuid"
	"github.com/mmcdole/reel/internal/domain"
)

// User-visible error messages
const (
	msgTrendingFailed = "Failed to load trending movies"
	msgSearchFailed   = "Failed to search movies"
)

type errorSource int

const (
	errNone errorSource = iota
	errTrending
	errSearch
)

// searchSession is the accumulated state of the current text search
type searchSession struct {
	query      string
	results    []domain.Item
	page       int
	totalPages int
	loading    bool
}

func emptySearch() searchSession {
	return searchSession{page: 1}
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the store logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithObserver subscribes an observer before the first publication
func WithObserver(o Observer) Option {
	return func(s *Store) {
		s.subscribeLocked(o)
	}
}

// WithoutInitialTrending skips the trending fetch on Open
func WithoutInitialTrending() Option {
	return func(s *Store) {
		s.loadTrending = false
	}
}

// Store is the application state store. Create one per process with Open and
// release it with Close.
type Store struct {
	catalog  domain.Catalog
	prefs    domain.PreferenceStore
	logger   *slog.Logger
	validate *validator.Validate
	now      func() time.Time

	mu sync.Mutex

	trending         []domain.Item
	trendingInFlight int
	search           searchSession
	favorites        []domain.Item
	darkMode         bool
	user             *domain.User
	lastQuery        string
	errMsg           string
	errFrom          errorSource

	// searchSeq fences search responses: a response is applied only if no
	// Search or ResetSearch happened after its request was issued.
	searchSeq uint64

	observers      []observerEntry
	nextObserverID int

	loadTrending bool
	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
}

type observerEntry struct {
	id       int
	observer Observer
}

// Open restores favorites, theme, user and last search text from prefs and
// starts the trending fetch in the background. The caller keeps ownership of
// prefs and closes it after Close.
func Open(ctx context.Context, catalog domain.Catalog, prefs domain.PreferenceStore, opts ...Option) (*Store, error) {
	if catalog == nil {
		return nil, fmt.Errorf("catalog is nil")
	}
	if prefs == nil {
		return nil, fmt.Errorf("preference store is nil")
	}

	validate := validator.New()
	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		return nil, fmt.Errorf("failed to register validator: %w", err)
	}

	s := &Store{
		catalog:      catalog,
		prefs:        prefs,
		logger:       slog.Default(),
		validate:     validate,
		now:          time.Now,
		search:       emptySearch(),
		loadTrending: true,
	}
	s.ctx, s.cancel = context.WithCancel(ctx)

	for _, opt := range opts {
		opt(s)
	}

	s.restore()

	if s.loadTrending {
		s.mu.Lock()
		s.trendingInFlight++
		s.publishLocked()
		s.mu.Unlock()

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			items, err := s.catalog.FetchTrending(s.ctx)
			s.finishTrending(items, err)
		}()
	} else {
		s.mu.Lock()
		s.publishLocked()
		s.mu.Unlock()
	}

	return s, nil
}

// restore loads the durable slots. Unreadable slots are logged and treated as absent.
func (s *Store) restore() {
	var favorites []domain.Item
	if _, err := s.prefs.Get(domain.SlotFavorites, &favorites); err != nil {
		s.logger.Warn("failed to restore favorites", "error", err)
		favorites = nil
	}
	// Stored data written by another process may carry duplicates
	s.favorites = dedupe(favorites)

	var dark bool
	if _, err := s.prefs.Get(domain.SlotTheme, &dark); err != nil {
		s.logger.Warn("failed to restore theme", "error", err)
		dark = false
	}
	s.darkMode = dark

	var user domain.User
	ok, err := s.prefs.Get(domain.SlotUser, &user)
	if err != nil {
		s.logger.Warn("failed to restore user", "error", err)
	}
	if ok && err == nil && user.Username != "" {
		s.user = &user
	}

	var query string
	if _, err := s.prefs.Get(domain.SlotLastSearchQuery, &query); err != nil {
		s.logger.Warn("failed to restore last search", "error", err)
		query = ""
	}
	s.lastQuery = query

	s.logger.Debug("restored preferences",
		"favorites", len(s.favorites),
		"darkMode", s.darkMode,
		"authenticated", s.user != nil,
	)
}

// Close cancels background fetches and waits for them to finish
func (s *Store) Close() error {
	s.cancel()
	s.wg.Wait()
	return nil
}

// Wait blocks until background fetches started by Open have finished
func (s *Store) Wait() {
	s.wg.Wait()
}

// === Read model ===

// Snapshot returns a copy of the current state
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		Trending:        slices.Clone(s.trending),
		SearchResults:   slices.Clone(s.search.results),
		SearchQuery:     s.search.query,
		Loading:         s.trendingInFlight > 0 || s.search.loading,
		TrendingLoading: s.trendingInFlight > 0,
		SearchLoading:   s.search.loading,
		Error:           s.errMsg,
		DarkMode:        s.darkMode,
		Favorites:       slices.Clone(s.favorites),
		Page:            s.search.page,
		TotalPages:      s.search.totalPages,
		LastSearchQuery: s.lastQuery,
	}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

// Subscribe registers an observer and returns a function that removes it
func (s *Store) Subscribe(o Observer) func() {
	s.mu.Lock()
	id := s.subscribeLocked(o)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.observers = slices.DeleteFunc(s.observers, func(e observerEntry) bool {
			return e.id == id
		})
	}
}

func (s *Store) subscribeLocked(o Observer) int {
	s.nextObserverID++
	s.observers = append(s.observers, observerEntry{id: s.nextObserverID, observer: o})
	return s.nextObserverID
}

// publishLocked sends the current snapshot to every observer in subscription order
func (s *Store) publishLocked() {
	if len(s.observers) == 0 {
		return
	}
	snap := s.snapshotLocked()
	for _, e := range s.observers {
		e.observer.OnSnapshot(snap)
	}
}

// persistLocked writes one slot, logging failures. The in-memory state is
// kept even if the write fails.
func (s *Store) persistLocked(slot domain.Slot, value any) error {
	if err := s.prefs.Set(slot, value); err != nil {
		s.logger.Error("failed to persist preference", "slot", slot, "error", err)
		return fmt.Errorf("failed to save %s: %w", slot, err)
	}
	return nil
}

func (s *Store) setErrorLocked(from errorSource, msg string) {
	s.errMsg = msg
	s.errFrom = from
}

// clearErrorLocked clears the error if it was raised by the same session
func (s *Store) clearErrorLocked(from errorSource) {
	if s.errFrom == from {
		s.errMsg = ""
		s.errFrom = errNone
	}
}

// === Trending ===

// RefreshTrending fetches the trending list and replaces it on success
func (s *Store) RefreshTrending(ctx context.Context) error {
	s.mu.Lock()
	s.trendingInFlight++
	s.publishLocked()
	s.mu.Unlock()

	items, err := s.catalog.FetchTrending(ctx)
	return s.finishTrending(items, err)
}

func (s *Store) finishTrending(items []domain.Item, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.trendingInFlight--
	if errors.Is(err, context.Canceled) {
		s.logger.Debug("trending fetch cancelled")
		s.publishLocked()
		return err
	}
	if err != nil {
		s.logger.Error("failed to load trending", "error", err)
		s.setErrorLocked(errTrending, msgTrendingFailed)
		s.publishLocked()
		return err
	}

	s.trending = items
	s.clearErrorLocked(errTrending)
	s.logger.Debug("loaded trending", "count", len(items))
	s.publishLocked()
	return nil
}

// === Search ===

// Search starts a new search session for query and fetches its first page.
// Blank queries are ignored. A response that arrives after a newer Search or
// ResetSearch is discarded.
func (s *Store) Search(ctx context.Context, query string) error {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	s.mu.Lock()
	s.searchSeq++
	seq := s.searchSeq
	s.search.loading = true
	s.search.query = query
	s.lastQuery = query
	persistErr := s.persistLocked(domain.SlotLastSearchQuery, query)
	s.publishLocked()
	s.mu.Unlock()

	s.logger.Debug("searching", "query", query)
	page, err := s.catalog.Search(ctx, query, 1)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.searchSeq {
		s.logger.Debug("discarding stale search response", "query", query, "page", 1)
		return nil
	}
	s.search.loading = false

	if err != nil {
		s.logger.Error("search failed", "query", query, "error", err)
		s.setErrorLocked(errSearch, msgSearchFailed)
		s.publishLocked()
		return fmt.Errorf("search %q: %w", query, err)
	}

	s.search.results = page.Items
	s.search.page = 1
	s.search.totalPages = page.TotalPages
	s.clearErrorLocked(errSearch)
	s.logger.Debug("search complete", "query", query, "results", len(page.Items), "totalPages", page.TotalPages)
	s.publishLocked()
	return persistErr
}

// LoadNextPage fetches the page after the current one and appends it.
// It is a no-op on the last page, without a query, or while a search fetch
// is already in flight.
func (s *Store) LoadNextPage(ctx context.Context) error {
	s.mu.Lock()
	if s.search.loading || s.search.query == "" || s.search.page >= s.search.totalPages {
		s.mu.Unlock()
		return nil
	}
	seq := s.searchSeq
	query := s.search.query
	next := s.search.page + 1
	s.search.loading = true
	s.publishLocked()
	s.mu.Unlock()

	s.logger.Debug("loading next page", "query", query, "page", next)
	page, err := s.catalog.Search(ctx, query, next)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.searchSeq {
		s.logger.Debug("discarding stale search response", "query", query, "page", next)
		return nil
	}
	s.search.loading = false

	if err != nil {
		s.logger.Error("failed to load next page", "query", query, "page", next, "error", err)
		s.setErrorLocked(errSearch, msgSearchFailed)
		s.publishLocked()
		return fmt.Errorf("search %q page %d: %w", query, next, err)
	}

	results := make([]domain.Item, 0, len(s.search.results)+len(page.Items))
	results = append(results, s.search.results...)
	results = append(results, page.Items...)
	s.search.results = results
	s.search.page = next
	s.search.totalPages = page.TotalPages
	s.clearErrorLocked(errSearch)
	s.publishLocked()
	return nil
}

// ResetSearch clears the search session. Trending and favorites are untouched.
func (s *Store) ResetSearch() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.searchSeq++
	s.search = emptySearch()
	s.clearErrorLocked(errSearch)
	s.publishLocked()
}

// === Favorites ===

// AddFavorite appends item unless an item with the same ID is already present
func (s *Store) AddFavorite(item domain.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if indexOf(s.favorites, item.ID) >= 0 {
		return nil
	}
	s.favorites = append(slices.Clip(s.favorites), item)
	err := s.persistLocked(domain.SlotFavorites, s.favorites)
	s.publishLocked()
	return err
}

// RemoveFavorite removes the item with id if present
func (s *Store) RemoveFavorite(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if indexOf(s.favorites, id) < 0 {
		return nil
	}
	s.favorites = slices.DeleteFunc(slices.Clone(s.favorites), func(item domain.Item) bool {
		return item.ID == id
	})
	err := s.persistLocked(domain.SlotFavorites, s.favorites)
	s.publishLocked()
	return err
}

// ToggleFavorite adds or removes item and reports whether it is now a favorite
func (s *Store) ToggleFavorite(item domain.Item) (bool, error) {
	if s.IsFavorite(item.ID) {
		return false, s.RemoveFavorite(item.ID)
	}
	return true, s.AddFavorite(item)
}

// IsFavorite reports whether an item with id is a favorite
func (s *Store) IsFavorite(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return indexOf(s.favorites, id) >= 0
}

// === Theme ===

// ToggleTheme flips dark mode and returns the new value
func (s *Store) ToggleTheme() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.darkMode = !s.darkMode
	err := s.persistLocked(domain.SlotTheme, s.darkMode)
	s.publishLocked()
	return s.darkMode, err
}

// === Session identity ===

// Login signs in with any non-blank username/password pair. Credentials are
// not checked against a server; only the username is stored.
func (s *Store) Login(creds domain.Credentials) (domain.User, error) {
	if err := s.validate.Struct(creds); err != nil {
		return domain.User{}, fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, err)
	}

	user := domain.User{
		Username:   strings.TrimSpace(creds.Username),
		SessionID:  uuid.NewString(),
		LoggedInAt: s.now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = &user
	err := s.persistLocked(domain.SlotUser, user)
	s.logger.Info("signed in", "username", user.Username)
	s.publishLocked()
	return user, err
}

// Logout clears the signed-in user and erases the stored identity
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	var err error
	if delErr := s.prefs.Delete(domain.SlotUser); delErr != nil {
		s.logger.Error("failed to erase user", "error", delErr)
		err = fmt.Errorf("failed to erase %s: %w", domain.SlotUser, delErr)
	}
	s.logger.Info("signed out")
	s.publishLocked()
	return err
}

// === helpers ===

func indexOf(items []domain.Item, id int) int {
	return slices.IndexFunc(items, func(item domain.Item) bool {
		return item.ID == id
	})
}

// dedupe keeps the first occurrence of each ID, preserving order
func dedupe(items []domain.Item) []domain.Item {
	seen := make(map[int]bool, len(items))
	out := make([]domain.Item, 0, len(items))
	for _, item := range items {
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		out = append(out, item)
	}
	return out
}
