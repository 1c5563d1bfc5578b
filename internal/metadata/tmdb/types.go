package tmdb

import "github.com/vadimtrunov/cinemart/internal/core"

// movieResult is a movie entry in the discover response.
type movieResult struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"`
	PosterPath  string  `json:"poster_path"`
	VoteAverage float64 `json:"vote_average"`
	GenreIDs    []int   `json:"genre_ids"`
}

// discoverResponse is the TMDb paginated discover response.
type discoverResponse struct {
	Page         int           `json:"page"`
	Results      []movieResult `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

// videoResult is one entry of the movie videos response.
type videoResult struct {
	ID       string `json:"id"`
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

// videosResponse wraps the /movie/{id}/videos endpoint response.
type videosResponse struct {
	ID      int           `json:"id"`
	Results []videoResult `json:"results"`
}

func (m movieResult) toCore() core.Movie {
	return core.Movie{
		ID:          m.ID,
		Title:       m.Title,
		ReleaseDate: m.ReleaseDate,
		VoteAverage: m.VoteAverage,
		PosterPath:  m.PosterPath,
		Overview:    m.Overview,
	}
}

func (v videoResult) toCore() core.Video {
	return core.Video{
		Key:      v.Key,
		Name:     v.Name,
		Site:     v.Site,
		Type:     v.Type,
		Official: v.Official,
	}
}
