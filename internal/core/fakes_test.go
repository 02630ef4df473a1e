package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/jordanbtucker/video-clerk/internal/media"
	"github.com/jordanbtucker/video-clerk/internal/provider"
	"github.com/sirupsen/logrus"
)

// fakeCatalog serves canned catalog data and counts calls.
type fakeCatalog struct {
	searches map[string][]provider.SearchCandidate // keyed by query
	shows    map[int][]provider.SeasonSummary
	seasons  map[int]map[int][]provider.EpisodeSummary // show ID, season number
	err      error

	searchCalls []string
	showCalls   int
	seasonCalls int
}

func (c *fakeCatalog) Search(_ context.Context, _ media.Kind, query string) ([]provider.SearchCandidate, error) {
	c.searchCalls = append(c.searchCalls, query)
	if c.err != nil {
		return nil, c.err
	}
	return c.searches[query], nil
}

func (c *fakeCatalog) ShowDetail(_ context.Context, id int) (*provider.Entity, error) {
	c.showCalls++
	if c.err != nil {
		return nil, c.err
	}
	seasons, ok := c.shows[id]
	if !ok {
		return nil, &provider.ProviderError{Provider: "fake", Code: provider.CodeNotFound, Message: "no such show"}
	}
	return &provider.Entity{ID: id, Seasons: append([]provider.SeasonSummary{}, seasons...)}, nil
}

func (c *fakeCatalog) SeasonDetail(_ context.Context, showID, season int) (*provider.SeasonSummary, error) {
	c.seasonCalls++
	if c.err != nil {
		return nil, c.err
	}
	episodes, ok := c.seasons[showID][season]
	if !ok {
		return nil, &provider.ProviderError{Provider: "fake", Code: provider.CodeNotFound, Message: "no such season"}
	}
	return &provider.SeasonSummary{Number: season, Episodes: episodes}, nil
}

// answer is one scripted response. Which fields matter depends on the
// prompt kind that consumes it.
type answer struct {
	text  string
	index int
	yes   bool
	ok    bool
	err   error
}

func pick(i int) answer         { return answer{index: i, ok: true} }
func typed(s string) answer     { return answer{text: s, ok: true} }
func confirmed(yes bool) answer { return answer{yes: yes, ok: true} }

var canceled = answer{}

// scriptedPrompter replays answers in order and records every question.
type scriptedPrompter struct {
	t       *testing.T
	answers []answer
	asked   []string
	choices [][]string
}

func (p *scriptedPrompter) next(message string) answer {
	p.t.Helper()
	p.asked = append(p.asked, message)
	if len(p.answers) == 0 {
		p.t.Fatalf("unexpected prompt %q", message)
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a
}

func (p *scriptedPrompter) Input(_ context.Context, message string) (string, bool, error) {
	a := p.next(message)
	return a.text, a.ok && a.text != "", a.err
}

func (p *scriptedPrompter) Select(_ context.Context, message string, choices []string) (int, bool, error) {
	p.choices = append(p.choices, choices)
	a := p.next(message)
	if a.ok && a.index >= len(choices) {
		p.t.Fatalf("answer %d out of range for %q", a.index, message)
	}
	return a.index, a.ok && len(choices) > 0, a.err
}

func (p *scriptedPrompter) Confirm(_ context.Context, message string) (bool, error) {
	a := p.next(message)
	return a.yes, a.err
}

func (p *scriptedPrompter) done() {
	p.t.Helper()
	if len(p.answers) != 0 {
		p.t.Errorf("%d scripted answers left unused", len(p.answers))
	}
}

// fakeMover records moves instead of touching the filesystem.
type fakeMover struct {
	dirs  []string
	moves [][2]string
	err   error
}

func (m *fakeMover) EnsureDir(path string) error {
	if m.err != nil {
		return m.err
	}
	m.dirs = append(m.dirs, path)
	return nil
}

func (m *fakeMover) Move(src, dst string) error {
	if m.err != nil {
		return m.err
	}
	m.moves = append(m.moves, [2]string{src, dst})
	return nil
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(fmt.Sprintf("contents of %s", filepath.Base(path))), 0644); err != nil {
		t.Fatal(err)
	}
}
