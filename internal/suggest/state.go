package suggest

import (
	"fmt"

	"github.com/vadimtrunov/cinemart/internal/catalog"
	"github.com/vadimtrunov/cinemart/internal/core"
)

// Selection is the pair of filters chosen by the user.
type Selection struct {
	Genre  catalog.Genre
	Rating catalog.Rating
}

// Ready reports whether both a genre and a rating are chosen.
func (s Selection) Ready() bool {
	return s.Genre.ID > 0 && !s.Rating.IsZero()
}

// State is the complete view state of one suggestion client.
// Transitions return a new State; the old value is never modified.
type State struct {
	Selection  Selection
	Movie      *core.Movie
	Trailer    *Trailer
	Err        string
	Generation uint64
	Loading    bool
	RequestID  string
}

// SelectGenre returns a state with the genre set. id 0 clears the genre.
func (s State) SelectGenre(id int) (State, error) {
	if id == 0 {
		s.Selection.Genre = catalog.Genre{}
		return s, nil
	}
	g, ok := catalog.GenreByID(id)
	if !ok {
		return s, fmt.Errorf("unknown genre id %d", id)
	}
	s.Selection.Genre = g
	return s, nil
}

// SelectRating returns a state with the rating preset set. id 0 clears the rating.
func (s State) SelectRating(id int) (State, error) {
	if id == 0 {
		s.Selection.Rating = catalog.Rating{}
		return s, nil
	}
	r, ok := catalog.RatingByID(id)
	if !ok {
		return s, fmt.Errorf("unknown rating preset %d", id)
	}
	s.Selection.Rating = r
	return s, nil
}

// CanSuggest reports whether the suggest action is enabled.
func (s State) CanSuggest() bool {
	return s.Selection.Ready()
}

// Begin starts a new fetch attempt. Responses for earlier generations
// are ignored by Apply from now on.
func (s State) Begin() State {
	s.Generation++
	s.Loading = true
	s.Err = ""
	return s
}

// Apply folds the result of the fetch started at generation gen into the state.
// It reports false and leaves the state untouched when gen is stale.
func (s State) Apply(gen uint64, r Result) (State, bool) {
	if gen != s.Generation {
		return s, false
	}
	s.Loading = false
	s.RequestID = r.RequestID
	s.Movie = r.Movie
	if r.Movie == nil {
		s.Trailer = nil
	} else {
		s.Trailer = r.Trailer
	}
	s.Err = Message(r.Err)
	return s, true
}

// Card returns the render model of the displayed movie, if any.
func (s State) Card() (Card, bool) {
	if s.Movie == nil {
		return Card{}, false
	}
	return NewCard(*s.Movie, s.Trailer), true
}
