package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/mmcdole/reel/internal/domain"
)

const (
	DefaultBaseURL      = "https://api.themoviedb.org/3"
	DefaultImageBaseURL = "https://image.tmdb.org/t/p/"
	DefaultLanguage     = "en-US"

	defaultTimeout   = 15 * time.Second
	defaultRateLimit = 20
	defaultRateBurst = 20
	userAgent        = "Reel/1.0"

	// minVoteCount keeps mood discovery from surfacing unrated films
	minVoteCount = 10
)

// ErrPageOutOfRange is returned for list pages TMDB will not serve
var ErrPageOutOfRange = errors.New("page out of range")

// Options configures a Client. Zero values fall back to TMDB defaults.
type Options struct {
	BaseURL     string
	APIKey      string // v3 key, sent as ?api_key=
	AccessToken string // v4 read access token, sent as a bearer header
	Language    string
	Timeout     time.Duration
	RateLimit   float64 // requests per second
	RateBurst   int
	HTTPClient  *http.Client
}

// Client implements domain.MetadataSource for TMDB v3
type Client struct {
	baseURL     string
	apiKey      string
	accessToken string
	language    string
	httpClient  *http.Client
	limiter     *rate.Limiter
	group       singleflight.Group
	logger      *slog.Logger
}

// NewClient creates a new TMDB API client
func NewClient(opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	opts = normalizeOptions(opts)

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	return &Client{
		baseURL:     opts.BaseURL,
		apiKey:      opts.APIKey,
		accessToken: opts.AccessToken,
		language:    opts.Language,
		httpClient:  httpClient,
		limiter:     rate.NewLimiter(rate.Limit(opts.RateLimit), opts.RateBurst),
		logger:      logger,
	}
}

func normalizeOptions(opts Options) Options {
	opts.BaseURL = strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Language == "" {
		opts.Language = DefaultLanguage
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = defaultRateLimit
	}
	if opts.RateBurst <= 0 {
		opts.RateBurst = defaultRateBurst
	}
	return opts
}

// doRequest performs an authenticated GET and returns the response body.
// Non-2xx statuses come back as *domain.ServerError, transport failures
// as *domain.TransportError.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if query == nil {
		query = url.Values{}
	}
	if c.accessToken == "" && c.apiKey != "" {
		query.Set("api_key", c.apiKey)
	}
	if c.language != "" && query.Get("language") == "" {
		query.Set("language", c.language)
	}
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	c.logger.Debug("tmdb request", "path", path, "query", redact(query))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		c.logger.Error("tmdb request failed", "path", path, "error", err)
		return nil, &domain.TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.TransportError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		serverErr := &domain.ServerError{Status: resp.StatusCode}
		var apiErr errorResponse
		if json.Unmarshal(body, &apiErr) == nil {
			serverErr.Message = apiErr.StatusMessage
		}
		c.logger.Error("tmdb request error", "path", path, "status", resp.StatusCode, "message", serverErr.Message)
		return nil, serverErr
	}

	return body, nil
}

// getJSON fetches path and decodes the body into v
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, v any) error {
	body, err := c.doRequest(ctx, path, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		c.logger.Error("JSON parse error", "path", path, "error", err, "bodyLen", len(body))
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// redact hides the api key in debug logs
func redact(query url.Values) string {
	if query.Get("api_key") == "" {
		return query.Encode()
	}
	clone := url.Values{}
	for k, v := range query {
		clone[k] = v
	}
	clone.Set("api_key", "REDACTED")
	return clone.Encode()
}

// pageQuery builds the page parameter. TMDB serves at most maxPages pages
// for any list; deeper pages are rejected rather than answered with a
// different page.
func pageQuery(page int) (url.Values, error) {
	if page < 1 {
		page = 1
	}
	if page > maxPages {
		return nil, fmt.Errorf("%w: page %d is beyond TMDB's limit of %d", ErrPageOutOfRange, page, maxPages)
	}
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	return query, nil
}

func (c *Client) moviePage(ctx context.Context, path string, query url.Values) (domain.ResultPage, error) {
	var resp pagedResponse[movieResult]
	if err := c.getJSON(ctx, path, query, &resp); err != nil {
		return domain.ResultPage{}, err
	}
	return MapMoviePage(resp), nil
}

// PopularMovies returns one page of /movie/popular
func (c *Client) PopularMovies(ctx context.Context, page int) (domain.ResultPage, error) {
	q, err := pageQuery(page)
	if err != nil {
		return domain.ResultPage{}, err
	}
	return c.moviePage(ctx, "/movie/popular", q)
}

// SearchMovies returns one page of /search/movie
func (c *Client) SearchMovies(ctx context.Context, query string, page int) (domain.ResultPage, error) {
	q, err := pageQuery(page)
	if err != nil {
		return domain.ResultPage{}, err
	}
	q.Set("query", query)
	q.Set("include_adult", "false")
	return c.moviePage(ctx, "/search/movie", q)
}

// SearchPeople returns one page of /search/person
func (c *Client) SearchPeople(ctx context.Context, query string, page int) (domain.ResultPage, error) {
	q, err := pageQuery(page)
	if err != nil {
		return domain.ResultPage{}, err
	}
	q.Set("query", query)
	q.Set("include_adult", "false")

	var resp pagedResponse[personResult]
	if err := c.getJSON(ctx, "/search/person", q, &resp); err != nil {
		return domain.ResultPage{}, err
	}
	return MapPersonPage(resp), nil
}

// DiscoverByMood returns one page of /discover/movie restricted to the
// mood's genres, best rated first.
func (c *Client) DiscoverByMood(ctx context.Context, mood domain.MoodID, page int) (domain.ResultPage, error) {
	genres := MoodGenres(mood)
	if len(genres) == 0 {
		return domain.ResultPage{}, fmt.Errorf("unknown mood %d", mood)
	}

	q, err := pageQuery(page)
	if err != nil {
		return domain.ResultPage{}, err
	}
	q.Set("with_genres", joinGenres(genres))
	q.Set("sort_by", "vote_average.desc")
	q.Set("vote_count.gte", strconv.Itoa(minVoteCount))
	return c.moviePage(ctx, "/discover/movie", q)
}

// MovieDetail returns /movie/{id} with its videos. Concurrent calls for
// the same id share one request.
func (c *Client) MovieDetail(ctx context.Context, id int) (*domain.MovieDetail, error) {
	key := "movie:" + strconv.Itoa(id)
	v, err, shared := c.group.Do(key, func() (any, error) {
		q := url.Values{}
		q.Set("append_to_response", "videos")

		var resp movieDetails
		if err := c.getJSON(ctx, "/movie/"+strconv.Itoa(id), q, &resp); err != nil {
			return nil, err
		}
		return MapMovieDetail(resp), nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.logger.Debug("tmdb detail request coalesced", "key", key)
	}
	return v.(*domain.MovieDetail), nil
}

// PersonDetail returns /person/{id} with movie credits. Concurrent calls
// for the same id share one request.
func (c *Client) PersonDetail(ctx context.Context, id int) (*domain.PersonDetail, error) {
	key := "person:" + strconv.Itoa(id)
	v, err, shared := c.group.Do(key, func() (any, error) {
		q := url.Values{}
		q.Set("append_to_response", "movie_credits")

		var resp personDetails
		if err := c.getJSON(ctx, "/person/"+strconv.Itoa(id), q, &resp); err != nil {
			return nil, err
		}
		return MapPersonDetail(resp), nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.logger.Debug("tmdb detail request coalesced", "key", key)
	}
	return v.(*domain.PersonDetail), nil
}

// Compile-time interface check
var _ domain.MetadataSource = (*Client)(nil)
