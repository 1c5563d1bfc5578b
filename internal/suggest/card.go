package suggest

import (
	"strconv"

	"github.com/vadimtrunov/cinemart/internal/core"
	"github.com/vadimtrunov/cinemart/internal/metadata/tmdb"
)

// NoOverview is shown when a movie has no synopsis.
const NoOverview = "No description available for this movie."

// Trailer is a playable video reference chosen from a movie's videos.
type Trailer struct {
	Key  string
	Name string
	Site string
	Type string
}

// EmbedURL returns the embeddable player URL.
func (t Trailer) EmbedURL() string { return tmdb.TrailerEmbedURL(t.Key) }

// WatchURL returns the watch page URL.
func (t Trailer) WatchURL() string { return tmdb.TrailerWatchURL(t.Key) }

// FindTrailer returns the first video typed "Trailer", in the given order,
// or nil if there is none.
func FindTrailer(videos []core.Video) *Trailer {
	for _, v := range videos {
		if v.Type == "Trailer" {
			return &Trailer{Key: v.Key, Name: v.Name, Site: v.Site, Type: v.Type}
		}
	}
	return nil
}

// Card is the render model shared by the frontends.
type Card struct {
	Heading         string // "Title (YYYY)"
	Rating          string // shortest decimal form, e.g. "7.5"
	PosterURL       string // empty when the movie has no poster
	Overview        string // NoOverview when the movie has no synopsis
	TrailerEmbedURL string // empty when no trailer was found
	TrailerWatchURL string
}

// HasTrailer reports whether the card carries a trailer section.
func (c Card) HasTrailer() bool { return c.TrailerEmbedURL != "" }

// NewCard builds the render model for a movie and its optional trailer.
func NewCard(m core.Movie, t *Trailer) Card {
	c := Card{
		Heading:   Heading(m),
		Rating:    strconv.FormatFloat(m.VoteAverage, 'f', -1, 64),
		PosterURL: tmdb.PosterURL(m.PosterPath, tmdb.PosterSize),
		Overview:  m.Overview,
	}
	if c.Overview == "" {
		c.Overview = NoOverview
	}
	if t != nil {
		c.TrailerEmbedURL = t.EmbedURL()
		c.TrailerWatchURL = t.WatchURL()
	}
	return c
}

// Heading formats "Title (YYYY)", or just the title when the year is unknown.
func Heading(m core.Movie) string {
	if y := m.Year(); y != "" {
		return m.Title + " (" + y + ")"
	}
	return m.Title
}
