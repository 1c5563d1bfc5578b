// Package catalog holds the fixed genre and rating lists offered to users.
package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// Genre is a TMDb movie genre.
type Genre struct {
	ID   int
	Name string
}

// Range is an inclusive band on a movie's vote average.
type Range struct {
	Low  float64
	High float64
}

// String renders the range in its "low,high" form.
func (r Range) String() string {
	return formatScore(r.Low) + "," + formatScore(r.High)
}

// Rating is a preset rating filter.
type Rating struct {
	ID    int
	Label string
	Range Range
}

// IsZero reports whether r is the unset rating.
func (r Rating) IsZero() bool {
	return r.ID == 0
}

const (
	minScore = 0
	maxScore = 10
)

var genres = []Genre{
	{ID: 28, Name: "Action"},
	{ID: 12, Name: "Adventure"},
	{ID: 16, Name: "Animation"},
	{ID: 35, Name: "Comedy"},
	{ID: 80, Name: "Crime"},
	{ID: 99, Name: "Documentary"},
	{ID: 18, Name: "Drama"},
	{ID: 10751, Name: "Family"},
	{ID: 14, Name: "Fantasy"},
	{ID: 27, Name: "Horror"},
	{ID: 10402, Name: "Music"},
	{ID: 9648, Name: "Mystery"},
	{ID: 878, Name: "Science Fiction"},
	{ID: 53, Name: "Thriller"},
	{ID: 10749, Name: "Romance"},
	{ID: 37, Name: "Western"},
}

var ratings = []Rating{
	{ID: 1, Label: "1 to 5", Range: Range{Low: 1, High: 5}},
	{ID: 2, Label: "5 or above", Range: Range{Low: 5, High: 10}},
	{ID: 3, Label: "6 or above", Range: Range{Low: 6, High: 10}},
	{ID: 4, Label: "7 or above", Range: Range{Low: 7, High: 10}},
	{ID: 5, Label: "8 or above", Range: Range{Low: 8, High: 10}},
	{ID: 6, Label: "9 or above", Range: Range{Low: 9, High: 10}},
}

// Genres returns a copy of the genre list in display order.
func Genres() []Genre {
	out := make([]Genre, len(genres))
	copy(out, genres)
	return out
}

// Ratings returns a copy of the rating presets in display order.
func Ratings() []Rating {
	out := make([]Rating, len(ratings))
	copy(out, ratings)
	return out
}

// GenreByID looks up a genre by its TMDb ID.
func GenreByID(id int) (Genre, bool) {
	for _, g := range genres {
		if g.ID == id {
			return g, true
		}
	}
	return Genre{}, false
}

// GenreByName looks up a genre by name, ignoring case.
func GenreByName(name string) (Genre, bool) {
	name = strings.TrimSpace(name)
	for _, g := range genres {
		if strings.EqualFold(g.Name, name) {
			return g, true
		}
	}
	return Genre{}, false
}

// RatingByID looks up a rating preset by ID.
func RatingByID(id int) (Rating, bool) {
	for _, r := range ratings {
		if r.ID == id {
			return r, true
		}
	}
	return Rating{}, false
}

// RatingByRange looks up the preset with exactly the given bounds.
func RatingByRange(rng Range) (Rating, bool) {
	for _, r := range ratings {
		if r.Range == rng {
			return r, true
		}
	}
	return Rating{}, false
}

// LookupGenre resolves a genre from a TMDb ID or a name.
func LookupGenre(s string) (Genre, error) {
	if id, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		if g, ok := GenreByID(id); ok {
			return g, nil
		}
		return Genre{}, fmt.Errorf("unknown genre id %d", id)
	}
	if g, ok := GenreByName(s); ok {
		return g, nil
	}
	return Genre{}, fmt.Errorf("unknown genre %q", s)
}

// LookupRating resolves a rating preset from a preset ID ("4") or a range ("7,10").
func LookupRating(s string) (Rating, error) {
	s = strings.TrimSpace(s)
	if id, err := strconv.Atoi(s); err == nil {
		if r, ok := RatingByID(id); ok {
			return r, nil
		}
		return Rating{}, fmt.Errorf("unknown rating preset %d", id)
	}
	rng, err := ParseRange(s)
	if err != nil {
		return Rating{}, err
	}
	if r, ok := RatingByRange(rng); ok {
		return r, nil
	}
	return Rating{}, fmt.Errorf("rating range %s is not one of the presets", rng)
}

// ParseRange parses a "low,high" rating band such as "7,10".
func ParseRange(s string) (Range, error) {
	lowStr, highStr, ok := strings.Cut(s, ",")
	if !ok {
		return Range{}, fmt.Errorf("invalid rating range %q: want low,high", s)
	}
	low, err := strconv.ParseFloat(strings.TrimSpace(lowStr), 64)
	if err != nil {
		return Range{}, fmt.Errorf("invalid rating range %q: bad lower bound: %w", s, err)
	}
	high, err := strconv.ParseFloat(strings.TrimSpace(highStr), 64)
	if err != nil {
		return Range{}, fmt.Errorf("invalid rating range %q: bad upper bound: %w", s, err)
	}
	if low < minScore || high > maxScore {
		return Range{}, fmt.Errorf("invalid rating range %q: bounds must be within %d..%d", s, minScore, maxScore)
	}
	if low > high {
		return Range{}, fmt.Errorf("invalid rating range %q: lower bound exceeds upper bound", s)
	}
	return Range{Low: low, High: high}, nil
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
