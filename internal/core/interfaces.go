package core

import (
	"context"
	"strings"
)

// MovieCatalog defines the interface for movie metadata providers (TMDb)
type MovieCatalog interface {
	// DiscoverMovies returns one page of movies matching the query filters
	DiscoverMovies(ctx context.Context, q DiscoverQuery) (*MoviePage, error)

	// MovieVideos returns the videos attached to a movie, in provider order
	MovieVideos(ctx context.Context, movieID int) ([]Video, error)
}

// Frontend defines the interface for user-facing frontends (TUI, Telegram)
type Frontend interface {
	// Start runs the frontend until ctx is canceled
	Start(ctx context.Context) error

	// Name returns the frontend name (e.g., "tui", "telegram")
	Name() string
}

// DiscoverQuery holds the filters for a discovery request
type DiscoverQuery struct {
	Page      int     // 1-based result page
	GenreID   int     // Genre filter, 0 = any
	MinRating float64 // Inclusive lower bound on vote average
	MaxRating float64 // Inclusive upper bound on vote average
	SortBy    string  // Provider sort key, e.g. "popularity.desc"
}

// Movie represents a movie summary as returned by discovery
type Movie struct {
	ID          int     // Provider movie ID
	Title       string  // Movie title
	ReleaseDate string  // ISO date (YYYY-MM-DD), may be empty
	VoteAverage float64 // Average audience score (0-10)
	PosterPath  string  // Relative poster path, empty if none
	Overview    string  // Synopsis, empty if none
}

// Year returns the release year part of ReleaseDate, or "" if unknown.
func (m Movie) Year() string {
	if m.ReleaseDate == "" {
		return ""
	}
	year, _, _ := strings.Cut(m.ReleaseDate, "-")
	return year
}

// MoviePage represents one page of discovery results
type MoviePage struct {
	Page         int     // Page number served
	TotalPages   int     // Total pages available for the query
	TotalResults int     // Total results available for the query
	Results      []Movie // Movies on this page, in provider order
}

// Video represents a video attached to a movie (trailer, teaser, clip)
type Video struct {
	Key      string // Site-specific video key
	Name     string // Video title
	Site     string // Hosting site, e.g. "YouTube"
	Type     string // "Trailer", "Teaser", "Clip", "Featurette", ...
	Official bool   // Whether the video is an official release
}
