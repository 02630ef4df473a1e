package tmdb

import (
	"github.com/jordanbtucker/video-clerk/internal/media"
	"github.com/jordanbtucker/video-clerk/internal/provider"
)

// Response bodies, limited to the fields the renamer reads. They are
// shared with the tmdbv3 backend, which re-encodes go-tmdb values into the
// same JSON shape before caching.

// SearchResponse is the body of search/movie and search/tv.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

// SearchResult is a movie or show search hit.
type SearchResult struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	ReleaseDate  string `json:"release_date"`
	Name         string `json:"name"`
	FirstAirDate string `json:"first_air_date"`
}

// Candidates converts the results for kind.
func (r SearchResponse) Candidates(kind media.Kind) []provider.SearchCandidate {
	candidates := make([]provider.SearchCandidate, 0, len(r.Results))
	for _, res := range r.Results {
		c := provider.SearchCandidate{ID: res.ID, Title: res.Title, Date: res.ReleaseDate}
		if kind == media.KindShow {
			c.Title, c.Date = res.Name, res.FirstAirDate
		}
		candidates = append(candidates, c)
	}
	return candidates
}

// ShowResponse is the body of tv/{id}.
type ShowResponse struct {
	ID           int              `json:"id"`
	Name         string           `json:"name"`
	FirstAirDate string           `json:"first_air_date"`
	Seasons      []SeasonResponse `json:"seasons"`
}

// Entity converts the show. Seasons carry no episodes.
func (r ShowResponse) Entity() *provider.Entity {
	e := &provider.Entity{
		ID:      r.ID,
		Title:   r.Name,
		Year:    provider.YearOf(r.FirstAirDate),
		Seasons: make([]provider.SeasonSummary, 0, len(r.Seasons)),
	}
	for _, s := range r.Seasons {
		e.Seasons = append(e.Seasons, provider.SeasonSummary{Number: s.SeasonNumber, ID: s.ID, Name: s.Name})
	}
	return e
}

// SeasonResponse is the body of tv/{id}/season/{n}, and an entry of a
// show's season list.
type SeasonResponse struct {
	ID           int               `json:"id"`
	Name         string            `json:"name"`
	SeasonNumber int               `json:"season_number"`
	Episodes     []EpisodeResponse `json:"episodes"`
}

// EpisodeResponse is an episode of a season.
type EpisodeResponse struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	EpisodeNumber int    `json:"episode_number"`
}

// Summary converts the season with its episodes.
func (r SeasonResponse) Summary() *provider.SeasonSummary {
	s := &provider.SeasonSummary{
		Number:   r.SeasonNumber,
		ID:       r.ID,
		Name:     r.Name,
		Episodes: make([]provider.EpisodeSummary, 0, len(r.Episodes)),
	}
	for _, e := range r.Episodes {
		s.Episodes = append(s.Episodes, provider.EpisodeSummary{Number: e.EpisodeNumber, ID: e.ID, Title: e.Name})
	}
	return s
}

// SearchEndpoint returns the search path for kind.
func SearchEndpoint(kind media.Kind) string {
	if kind == media.KindShow {
		return "search/tv"
	}
	return "search/movie"
}
