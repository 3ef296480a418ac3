package tmdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, Options{APIKey: "k", Language: "en-US"}, nil)
}

func TestFetchTrending(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/trending/movie/week", r.URL.Path)
		assert.Equal(t, "k", r.URL.Query().Get("api_key"))
		assert.Equal(t, "en-US", r.URL.Query().Get("language"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"page":1,"total_pages":1,"results":[
			{"id":1,"title":"Dune","poster_path":"/dune.jpg","vote_average":7.8,"vote_count":900,"release_date":"2021-09-15","media_type":"movie"},
			{"id":2,"title":"Shogun","media_type":"tv"},
			{"id":3,"title":"Unreleased","poster_path":null,"vote_average":0,"vote_count":0,"media_type":"movie"}
		]}`))
	})

	items, err := client.FetchTrending(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, 1, items[0].ID)
	assert.Equal(t, "/dune.jpg", items[0].PosterPath)
	require.NotNil(t, items[0].Rating)
	assert.Equal(t, 7.8, *items[0].Rating)

	assert.Equal(t, 3, items[1].ID)
	assert.Nil(t, items[1].Rating, "no votes means unrated, not zero")
	assert.Empty(t, items[1].PosterPath)
}

func TestSearch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/movie", r.URL.Path)
		assert.Equal(t, "blade runner", r.URL.Query().Get("query"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "false", r.URL.Query().Get("include_adult"))

		w.Write([]byte(`{"page":2,"total_pages":3,"total_results":45,"results":[
			{"id":78,"title":"Blade Runner","vote_average":7.9,"vote_count":14000},
			{"id":335984,"title":"Blade Runner 2049","vote_average":7.5,"vote_count":13000}
		]}`))
	})

	page, err := client.Search(context.Background(), "blade runner", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 45, page.TotalResults)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Blade Runner 2049", page.Items[1].Title)
}

func TestFetchDetail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/603", r.URL.Path)
		assert.Equal(t, "videos,credits", r.URL.Query().Get("append_to_response"))

		w.Write([]byte(`{"id":603,"title":"The Matrix","runtime":136,"original_language":"en",
			"vote_average":8.2,"vote_count":25000,
			"genres":[{"id":28,"name":"Action"},{"id":878,"name":"Science Fiction"}],
			"videos":{"results":[{"key":"abc","site":"YouTube","type":"Trailer","name":"Official Trailer"}]},
			"credits":{"cast":[
				{"id":2,"name":"Laurence Fishburne","character":"Morpheus","order":1},
				{"id":1,"name":"Keanu Reeves","character":"Neo","order":0,"profile_path":"/keanu.jpg"}
			]}}`))
	})

	item, err := client.FetchDetail(context.Background(), 603)
	require.NoError(t, err)
	require.NotNil(t, item.Detail)

	assert.Equal(t, "The Matrix", item.Title)
	assert.Equal(t, 136, item.Detail.Runtime)
	assert.Equal(t, "en", item.Detail.OriginalLanguage)
	assert.Len(t, item.Detail.Genres, 2)
	require.Len(t, item.Detail.Cast, 2)
	assert.Equal(t, "Keanu Reeves", item.Detail.Cast[0].Name, "cast ordered by billing")
	assert.Equal(t, "/keanu.jpg", item.Detail.Cast[0].ProfilePath)
	assert.Equal(t, "https://www.youtube.com/watch?v=abc", item.Detail.TrailerURL())
}

func TestErrorMapping(t *testing.T) {
	t.Run("server error is remote unavailable", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
		_, err := client.FetchTrending(context.Background())
		assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
	})

	t.Run("unauthorized keeps tmdb message", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"status_code":7,"status_message":"Invalid API key","success":false}`))
		})
		_, err := client.Search(context.Background(), "x", 1)
		assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
		assert.ErrorContains(t, err, "Invalid API key")
	})

	t.Run("missing detail is not found", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		_, err := client.FetchDetail(context.Background(), 1)
		assert.ErrorIs(t, err, domain.ErrItemNotFound)
	})

	t.Run("malformed body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"results": [`))
		})
		_, err := client.FetchTrending(context.Background())
		assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
	})

	t.Run("transport failure", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		server.Close()
		client := NewClient(server.URL, Options{}, nil)

		_, err := client.FetchTrending(context.Background())
		assert.True(t, errors.Is(err, domain.ErrRemoteUnavailable))
	})
}

func TestBearerToken(t *testing.T) {
	var gotAuth, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotKey = r.URL.Query().Get("api_key")
		w.Write([]byte(`{"results":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, Options{AccessToken: "tok", RequestsPerSecond: 50}, nil)
	_, err := client.FetchTrending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Empty(t, gotKey)
}

func TestCancelledContext(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", Options{RequestsPerSecond: 1}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Search(ctx, "x", 1)
	assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCancelInFlightRequest(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewClient(server.URL, Options{APIKey: "test-key"}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := client.FetchTrending(ctx)
	assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
	assert.ErrorIs(t, err, context.Canceled)
}
