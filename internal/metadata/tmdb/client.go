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

	"github.com/vadimtrunov/cinemart/internal/core"
	"github.com/vadimtrunov/cinemart/internal/httpclient"
)

const (
	// DefaultBaseURL is the TMDb API v3 root.
	DefaultBaseURL = "https://api.themoviedb.org/3"

	// SortPopularityDesc orders discovery results by descending popularity.
	SortPopularityDesc = "popularity.desc"

	// PosterSize is the poster width used by the result card.
	PosterSize = "w200"

	imageBaseURL    = "https://image.tmdb.org/t/p/"
	youtubeEmbedURL = "https://www.youtube.com/embed/"
	youtubeWatchURL = "https://www.youtube.com/watch?v="

	maxErrorBody = 512
)

// Client is a TMDb API v3 client.
type Client struct {
	baseURL string
	apiKey  string
	http    *httpclient.Client
	logger  *slog.Logger
}

// compile-time check.
var _ core.MovieCatalog = (*Client)(nil)

// New creates a new TMDb client. An empty baseURL selects DefaultBaseURL.
func New(apiKey, baseURL string, httpCfg httpclient.Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    httpclient.New(httpCfg, logger),
		logger:  logger,
	}
}

// NewForTest creates a TMDb client with a custom base URL for testing.
// Exported because it is used by cross-package tests (e.g. internal/suggest).
func NewForTest(baseURL string, logger *slog.Logger) *Client {
	return New("test-key", baseURL, httpclient.DefaultConfig(), logger)
}

// DiscoverMovies fetches one page of movies matching the genre and rating filters.
func (c *Client) DiscoverMovies(ctx context.Context, q core.DiscoverQuery) (*core.MoviePage, error) {
	params := url.Values{}
	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = SortPopularityDesc
	}
	params.Set("sort_by", sortBy)
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.GenreID > 0 {
		params.Set("with_genres", strconv.Itoa(q.GenreID))
	}
	params.Set("vote_average.gte", formatScore(q.MinRating))
	if q.MaxRating > 0 {
		params.Set("vote_average.lte", formatScore(q.MaxRating))
	}

	var resp discoverResponse
	if err := c.get(ctx, "/discover/movie", params, &resp); err != nil {
		return nil, fmt.Errorf("discover movies: %w", err)
	}

	page := &core.MoviePage{
		Page:         resp.Page,
		TotalPages:   resp.TotalPages,
		TotalResults: resp.TotalResults,
		Results:      make([]core.Movie, 0, len(resp.Results)),
	}
	for _, m := range resp.Results {
		page.Results = append(page.Results, m.toCore())
	}
	return page, nil
}

// MovieVideos returns the videos of a movie in the order TMDb lists them.
func (c *Client) MovieVideos(ctx context.Context, movieID int) ([]core.Video, error) {
	var resp videosResponse
	path := fmt.Sprintf("/movie/%d/videos", movieID)
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("get videos for %d: %w", movieID, err)
	}

	videos := make([]core.Video, 0, len(resp.Results))
	for _, v := range resp.Results {
		videos = append(videos, v.toCore())
	}
	return videos, nil
}

// PosterURL returns the full URL for a poster path.
func PosterURL(posterPath, size string) string {
	if posterPath == "" {
		return ""
	}
	return imageBaseURL + size + posterPath
}

// TrailerEmbedURL returns the embeddable player URL for a YouTube video key.
func TrailerEmbedURL(key string) string {
	if key == "" {
		return ""
	}
	return youtubeEmbedURL + key
}

// TrailerWatchURL returns the watch page URL for a YouTube video key.
func TrailerWatchURL(key string) string {
	if key == "" {
		return ""
	}
	return youtubeWatchURL + key
}

// get performs an authenticated GET request to the TMDb API and decodes the JSON response.
func (c *Client) get(ctx context.Context, path string, params url.Values, result any) error {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	q := u.Query()
	q.Set("api_key", c.apiKey)
	for k, vs := range params {
		q.Del(k)
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// APIError is returned when TMDb answers with a non-200 status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tmdb API error %d: %s", e.StatusCode, e.Body)
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
