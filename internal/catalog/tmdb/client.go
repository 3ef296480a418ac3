package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/reel/internal/domain"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout = 15 * time.Second
	userAgent      = "Reel/1.0"
)

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	APIKey            string  // v3 key, sent as api_key query param
	AccessToken       string  // v4 read access token, sent as Bearer header
	Language          string  // e.g. "en-US"
	RequestsPerSecond float64 // 0 disables client-side rate limiting
	Timeout           time.Duration
	HTTPClient        *http.Client
}

// Client implements domain.Catalog for the TMDB v3 API
type Client struct {
	baseURL     string
	apiKey      string
	accessToken string
	language    string
	limiter     *rate.Limiter
	httpClient  *http.Client
	logger      *slog.Logger
}

// NewClient creates a new TMDB API client
func NewClient(baseURL string, opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RequestsPerSecond > 0 {
		burst := int(opts.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}

	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      opts.APIKey,
		accessToken: opts.AccessToken,
		language:    opts.Language,
		limiter:     limiter,
		httpClient:  httpClient,
		logger:      logger,
	}
}

// doRequest performs an authenticated GET and decodes the JSON body into dest.
// Transport failures and non-success statuses wrap domain.ErrRemoteUnavailable.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values, dest any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrRemoteUnavailable, err)
	}

	if query == nil {
		query = url.Values{}
	}
	if c.apiKey != "" {
		query.Set("api_key", c.apiKey)
	}
	if c.language != "" {
		query.Set("language", c.language)
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	c.logger.Debug("tmdb request", "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("tmdb request failed", "path", path, "error", err)
		return fmt.Errorf("%w: %w", domain.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %w", domain.ErrRemoteUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("tmdb request error", "path", path, "status", resp.StatusCode)
		return statusError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, dest); err != nil {
		c.logger.Error("JSON parse error", "path", path, "error", err, "bodyLen", len(body))
		return fmt.Errorf("%w: failed to parse response: %v", domain.ErrRemoteUnavailable, err)
	}
	return nil
}

// statusError maps a non-success status to a domain error, keeping TMDB's message
func statusError(status int, body []byte) error {
	var apiErr ErrorResponse
	msg := http.StatusText(status)
	if json.Unmarshal(body, &apiErr) == nil && apiErr.StatusMessage != "" {
		msg = apiErr.StatusMessage
	}

	if status == http.StatusNotFound {
		return fmt.Errorf("%w: %s", domain.ErrItemNotFound, msg)
	}
	return fmt.Errorf("%w: status %d: %s", domain.ErrRemoteUnavailable, status, msg)
}

// FetchTrending returns this week's trending movies
func (c *Client) FetchTrending(ctx context.Context) ([]domain.Item, error) {
	var resp PagedResponse
	if err := c.doRequest(ctx, "/trending/movie/week", nil, &resp); err != nil {
		return nil, err
	}
	return MapMovies(resp.Results), nil
}

// Search returns one page of movie search results
func (c *Client) Search(ctx context.Context, query string, page int) (domain.SearchPage, error) {
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("include_adult", "false")

	var resp PagedResponse
	if err := c.doRequest(ctx, "/search/movie", params, &resp); err != nil {
		return domain.SearchPage{}, err
	}

	result := domain.SearchPage{
		Items:        MapMovies(resp.Results),
		Page:         resp.Page,
		TotalPages:   resp.TotalPages,
		TotalResults: resp.TotalResults,
	}
	if result.Page == 0 {
		result.Page = page
	}
	return result, nil
}

// FetchDetail returns a movie with genres, credits and videos
func (c *Client) FetchDetail(ctx context.Context, id int) (domain.Item, error) {
	params := url.Values{}
	params.Set("append_to_response", "videos,credits")

	var resp MovieDetail
	if err := c.doRequest(ctx, fmt.Sprintf("/movie/%d", id), params, &resp); err != nil {
		return domain.Item{}, err
	}
	return MapDetail(resp), nil
}
