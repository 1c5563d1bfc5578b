package suggest

import "errors"

// Sentinel errors returned in Result.Err. Check them with errors.Is.
var (
	// ErrIncompleteSelection means a genre or a rating is still unset.
	ErrIncompleteSelection = errors.New("genre and rating must both be selected")
	// ErrDiscovery wraps transport or server failures of the discovery request.
	ErrDiscovery = errors.New("fetch movie data")
	// ErrNoResults means discovery succeeded but matched no movie.
	ErrNoResults = errors.New("no movies matched the filters")
	// ErrTrailer wraps transport or server failures of the videos request.
	ErrTrailer = errors.New("fetch trailer data")
)

// User-facing messages shown in the error region.
const (
	MsgIncompleteSelection = "Select a genre and a rating first."
	MsgDiscoveryFailed     = "Error fetching movie data."
	MsgNoMovies            = "No movies found. Try with different ratings/genre."
	MsgTrailerFailed       = "Error fetching trailer data."
)

// Message maps a suggestion error to the text shown to the user.
// It returns "" for a nil error.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrIncompleteSelection):
		return MsgIncompleteSelection
	case errors.Is(err, ErrNoResults):
		return MsgNoMovies
	case errors.Is(err, ErrTrailer):
		return MsgTrailerFailed
	default:
		return MsgDiscoveryFailed
	}
}
