// Package suggest picks a random movie for a genre and rating selection
// and resolves its trailer.
package suggest

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/vadimtrunov/cinemart/internal/core"
	"github.com/vadimtrunov/cinemart/internal/metadata/tmdb"
)

// MaxPage is the highest discovery page TMDb serves.
const MaxPage = 500

// Rand is the source of randomness for page and movie selection.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// globalRand draws from the goroutine-safe top-level math/rand/v2 source.
type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) } // #nosec G404 -- not security sensitive

// Result is the outcome of one suggestion attempt.
// Movie is set on success; Err is ErrTrailer-wrapped when only the trailer lookup failed.
type Result struct {
	RequestID string
	Page      int
	Movie     *core.Movie
	Trailer   *Trailer
	Err       error
}

// Suggester runs the discovery + videos sequence against a movie catalog.
type Suggester struct {
	catalog core.MovieCatalog
	rand    Rand
	logger  *slog.Logger
}

// New creates a Suggester. A nil rnd uses the global math/rand/v2 source.
func New(catalog core.MovieCatalog, rnd Rand, logger *slog.Logger) *Suggester {
	if rnd == nil {
		rnd = globalRand{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Suggester{
		catalog: catalog,
		rand:    rnd,
		logger:  logger,
	}
}

// Suggest picks a random discovery page for the selection, a random movie
// from it, then that movie's first trailer. The two requests run in sequence.
func (s *Suggester) Suggest(ctx context.Context, sel Selection) Result {
	res := Result{RequestID: uuid.NewString()}
	logger := s.logger.With(slog.String("request_id", res.RequestID))

	if !sel.Ready() {
		res.Err = ErrIncompleteSelection
		return res
	}

	res.Page = s.rand.IntN(MaxPage) + 1
	logger.Debug("discovering movies",
		slog.Int("genre_id", sel.Genre.ID),
		slog.String("rating", sel.Rating.Range.String()),
		slog.Int("page", res.Page),
	)

	page, err := s.catalog.DiscoverMovies(ctx, core.DiscoverQuery{
		Page:      res.Page,
		GenreID:   sel.Genre.ID,
		MinRating: sel.Rating.Range.Low,
		MaxRating: sel.Rating.Range.High,
		SortBy:    tmdb.SortPopularityDesc,
	})
	if err != nil {
		logger.Warn("discovery failed", slog.String("error", err.Error()))
		res.Err = fmt.Errorf("%w: %w", ErrDiscovery, err)
		return res
	}
	if len(page.Results) == 0 {
		logger.Info("no movies matched",
			slog.Int("page", res.Page),
			slog.Int("total_pages", page.TotalPages),
		)
		res.Err = ErrNoResults
		return res
	}

	movie := page.Results[s.rand.IntN(len(page.Results))]
	res.Movie = &movie

	videos, err := s.catalog.MovieVideos(ctx, movie.ID)
	if err != nil {
		logger.Warn("trailer lookup failed",
			slog.Int("movie_id", movie.ID),
			slog.String("error", err.Error()),
		)
		res.Err = fmt.Errorf("%w: %w", ErrTrailer, err)
		return res
	}
	res.Trailer = FindTrailer(videos)

	logger.Info("movie suggested",
		slog.Int("movie_id", movie.ID),
		slog.String("title", movie.Title),
		slog.Bool("trailer", res.Trailer != nil),
	)
	return res
}
