package media

import (
	"regexp"
	"strconv"
	"strings"
)

// Kind is the media type a run is organizing.
type Kind string

const (
	KindMovie Kind = "movie"
	KindShow  Kind = "show"
)

// Filename grammars.
//
// Both grammars anchor at the start of the filename and require a dot or
// space after the final token, so the extension (or release tags) never
// leaks into a captured group.
var (
	// movieRe matches a title followed by a year, optionally wrapped in
	// parentheses: "The.Dark.Knight.2008.1080p.mkv", "The Dark Knight (2008).mkv".
	// The title group is greedy so the last year-like token is the year.
	movieRe = regexp.MustCompile(`^(.+)[. ]\(?(\d{4})\)?[. ]`)

	// showRe matches a title, an optional year and an SxxEyy token with an
	// optional second episode: "Harley.Quinn.S02E04.720p.mkv",
	// "Harley Quinn - S02E04.mkv", "Peacemaker (2022) - S01E02-E03.mkv". The
	// title group is non-greedy so it stops at the first season token.
	showRe = regexp.MustCompile(`(?i)^(.+?)(?:[. ]|\s+-\s+)(?:\(?(\d{4})\)?(?:[. ]|\s+-\s+))?S(\d\d)E(\d\d)(?:-?E(\d\d))?[. ]`)
)

// ParsedFilename is the raw identification extracted from a filename.
// Numeric fields are nil when the grammar did not capture them.
type ParsedFilename struct {
	RawTitle      string
	Year          *int
	Season        *int
	Episode       *int
	SecondEpisode *int
	Matched       bool
}

// Title returns the raw title with dots replaced by spaces, suitable as a
// catalog search query.
func (p ParsedFilename) Title() string {
	return strings.ReplaceAll(p.RawTitle, ".", " ")
}

// Parse applies the grammar for kind to filename.
func Parse(kind Kind, filename string) ParsedFilename {
	if kind == KindShow {
		return ParseShow(filename)
	}
	return ParseMovie(filename)
}

// ParseMovie applies the movie grammar.
func ParseMovie(filename string) ParsedFilename {
	m := movieRe.FindStringSubmatch(filename)
	if m == nil {
		return ParsedFilename{}
	}
	return ParsedFilename{
		RawTitle: m[1],
		Year:     atoi(m[2]),
		Matched:  true,
	}
}

// ParseShow applies the show grammar.
func ParseShow(filename string) ParsedFilename {
	m := showRe.FindStringSubmatch(filename)
	if m == nil {
		return ParsedFilename{}
	}
	p := ParsedFilename{
		RawTitle:      m[1],
		Year:          atoi(m[2]),
		Season:        atoi(m[3]),
		Episode:       atoi(m[4]),
		SecondEpisode: atoi(m[5]),
		Matched:       true,
	}
	// "S01E01-E01" names a single episode
	if p.SecondEpisode != nil && *p.SecondEpisode == *p.Episode {
		p.SecondEpisode = nil
	}
	return p
}

// atoi returns nil for an unmatched (empty) group.
func atoi(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
