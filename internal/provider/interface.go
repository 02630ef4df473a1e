package provider

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/jordanbtucker/video-clerk/internal/media"
)

// Catalog is the remote metadata catalog files are identified against.
type Catalog interface {
	// Search returns the candidates matching query. A catalog that reports
	// the query as not found yields an empty slice and no error.
	Search(ctx context.Context, kind media.Kind, query string) ([]SearchCandidate, error)

	// ShowDetail returns a show with its season list. Seasons carry no
	// episodes.
	ShowDetail(ctx context.Context, id int) (*Entity, error)

	// SeasonDetail returns one season of a show with its episodes.
	SeasonDetail(ctx context.Context, showID, season int) (*SeasonSummary, error)
}

// SearchCandidate is one catalog search result.
type SearchCandidate struct {
	ID    int
	Title string
	Date  string // release date for movies, first-air date for shows
}

// Label is the row shown when the user has to pick between candidates.
func (c SearchCandidate) Label() string {
	return fmt.Sprintf("%s (%s)", c.Title, c.Date)
}

// Entity returns the resolved catalog entity for c.
func (c SearchCandidate) Entity() *Entity {
	return &Entity{ID: c.ID, Title: c.Title, Year: YearOf(c.Date)}
}

// Entity is a resolved movie or show. Seasons is only used for shows and
// is filled in lazily by the validator.
type Entity struct {
	ID      int
	Title   string
	Year    string
	Seasons []SeasonSummary
}

// Season returns the season with the given number.
func (e *Entity) Season(number int) (SeasonSummary, bool) {
	for _, s := range e.Seasons {
		if s.Number == number {
			return s, true
		}
	}
	return SeasonSummary{}, false
}

// SeasonSummary is a season of a show. Episodes is empty until the
// season detail is fetched.
type SeasonSummary struct {
	Number   int
	ID       int
	Name     string
	Episodes []EpisodeSummary
}

// Episode returns the episode with the given number.
func (s *SeasonSummary) Episode(number int) (EpisodeSummary, bool) {
	for _, e := range s.Episodes {
		if e.Number == number {
			return e, true
		}
	}
	return EpisodeSummary{}, false
}

// EpisodeSummary is an episode of a season.
type EpisodeSummary struct {
	Number int
	ID     int
	Title  string
}

var yearRe = regexp.MustCompile(`^(\d{4})-`)

// YearOf extracts the year from a catalog date such as "1999-03-31". It
// returns "" when the date carries no year.
func YearOf(date string) string {
	m := yearRe.FindStringSubmatch(date)
	if m == nil {
		return ""
	}
	return m[1]
}

// ErrNotFound is reported when the catalog answers with a non-success
// status.
var ErrNotFound = errors.New("not found in catalog")

// Error codes carried by ProviderError.
const (
	CodeNotFound  = "NOT_FOUND"
	CodeTransport = "TRANSPORT"
	CodeDecode    = "DECODE"
)

// ProviderError represents an error from a catalog backend
type ProviderError struct {
	Provider string
	Code     string
	Status   int // HTTP status, when the catalog answered
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrNotFound) match not-found provider errors.
func (e *ProviderError) Is(target error) bool {
	return target == ErrNotFound && e.Code == CodeNotFound
}
