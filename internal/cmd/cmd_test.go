package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jordanbtucker/video-clerk/internal/config"
	"github.com/jordanbtucker/video-clerk/internal/log"
	"github.com/jordanbtucker/video-clerk/internal/media"
	"github.com/jordanbtucker/video-clerk/internal/prompt"
	"github.com/jordanbtucker/video-clerk/internal/provider"
	"github.com/jordanbtucker/video-clerk/internal/provider/tmdb"
	"github.com/jordanbtucker/video-clerk/internal/provider/tmdbv3"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// scripted answers prompts in order. Input takes a string, Select an int
// (negative cancels), Confirm a bool and MultiSelect an []int.
type scripted struct {
	t       *testing.T
	answers []any
	asked   []string
}

func (p *scripted) next(message string) any {
	p.t.Helper()
	p.asked = append(p.asked, message)
	if len(p.answers) == 0 {
		p.t.Fatalf("unexpected prompt %q", message)
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a
}

func (p *scripted) Input(_ context.Context, message string) (string, bool, error) {
	s := p.next(message).(string)
	return s, s != "", nil
}

func (p *scripted) Select(_ context.Context, message string, _ []string) (int, bool, error) {
	i := p.next(message).(int)
	return i, i >= 0, nil
}

func (p *scripted) Confirm(_ context.Context, message string) (bool, error) {
	return p.next(message).(bool), nil
}

func (p *scripted) MultiSelect(_ context.Context, message string, _ []string) ([]int, bool, error) {
	return p.next(message).([]int), true, nil
}

// stubCatalog knows one movie and one show with a single season.
type stubCatalog struct{}

func (stubCatalog) Search(_ context.Context, kind media.Kind, query string) ([]provider.SearchCandidate, error) {
	switch {
	case kind == media.KindMovie && query == "The Matrix":
		return []provider.SearchCandidate{{ID: 603, Title: "The Matrix", Date: "1999-03-31"}}, nil
	case kind == media.KindShow && query == "Show Name":
		return []provider.SearchCandidate{{ID: 7, Title: "Show Name", Date: "2001-09-01"}}, nil
	}
	return nil, nil
}

func (stubCatalog) ShowDetail(_ context.Context, id int) (*provider.Entity, error) {
	return &provider.Entity{ID: id, Seasons: []provider.SeasonSummary{{Number: 2, ID: 72, Name: "Season 2"}}}, nil
}

func (stubCatalog) SeasonDetail(_ context.Context, showID, season int) (*provider.SeasonSummary, error) {
	return &provider.SeasonSummary{Number: season, Episodes: []provider.EpisodeSummary{
		{Number: 4, ID: 74, Title: "Episode Title"},
		{Number: 5, ID: 75, Title: "Fifth"},
	}}, nil
}

// library is a scratch input folder and library with a config file
// pointing at them.
type library struct {
	home, input, movies, shows, config string
}

func newLibrary(t *testing.T, files ...string) library {
	t.Helper()
	root := t.TempDir()
	lib := library{
		home:   filepath.Join(root, "home"),
		input:  filepath.Join(root, "in"),
		movies: filepath.Join(root, "movies"),
		shows:  filepath.Join(root, "shows"),
		config: filepath.Join(root, "config.json"),
	}
	for _, dir := range []string{lib.home, lib.input, lib.movies, lib.shows} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(lib.input, f), []byte(f), 0644); err != nil {
			t.Fatal(err)
		}
	}
	body := fmt.Sprintf(`{"access_token":"token","input_dir":%q,"movies_dir":%q,"shows_dir":%q,"rename_mk3d_to_mkv":true}`,
		lib.input, lib.movies, lib.shows)
	if err := os.WriteFile(lib.config, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("HOME", lib.home)
	t.Setenv("USERPROFILE", lib.home)
	return lib
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs the CLI with args against p and the stub catalog.
func execute(t *testing.T, p *scripted, args ...string) (string, error) {
	t.Helper()

	origPrompter, origCatalog := newPrompter, newCatalog
	newPrompter = func() Prompter { return p }
	newCatalog = func(*config.Settings) (provider.Catalog, error) { return stubCatalog{}, nil }
	t.Cleanup(func() { newPrompter, newCatalog = origPrompter, origCatalog })

	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestMoviesCommand(t *testing.T) {
	lib := newLibrary(t, "The.Matrix.1999.mkv", "notes.txt")
	p := &scripted{t: t, answers: []any{true}}

	out, err := execute(t, p, "movies", "--config", lib.config, "--all")
	if err != nil {
		t.Fatalf("movies error = %v", err)
	}

	dest := filepath.Join(lib.movies, "The Matrix (1999)", "The Matrix (1999).mkv")
	if !exists(dest) {
		t.Errorf("%s was not created", dest)
	}
	if exists(filepath.Join(lib.input, "The.Matrix.1999.mkv")) {
		t.Error("source file still in the input folder")
	}
	if !strings.Contains(out, "1 renamed, 0 skipped") {
		t.Errorf("output = %q, want the run summary", out)
	}

	sessions, err := log.ReadSessions(0)
	if err != nil || len(sessions) != 1 {
		t.Fatalf("ReadSessions() = %d sessions, %v; want 1", len(sessions), err)
	}
	if applied, _ := sessions[0].Counts(); sessions[0].Mode != "movies" || applied != 2 {
		t.Errorf("session = %+v, want movies with 2 applied operations", sessions[0])
	}
}

func TestShowsCommandWithFilePicker(t *testing.T) {
	lib := newLibrary(t, "Show.Name.S02E04.mkv", "Show.Name.S02E05.mkv")
	p := &scripted{t: t, answers: []any{[]int{1}, true}}

	out, err := execute(t, p, "shows", "--config", lib.config)
	if err != nil {
		t.Fatalf("shows error = %v", err)
	}

	dest := filepath.Join(lib.shows, "Show Name (2001)", "Season 02", "Show Name (2001) - S02E05 - Fifth.mkv")
	if !exists(dest) {
		t.Errorf("%s was not created", dest)
	}
	if !exists(filepath.Join(lib.input, "Show.Name.S02E04.mkv")) {
		t.Error("unpicked file was moved")
	}
	if p.asked[0] != "Which files are you organizing?" {
		t.Errorf("first prompt = %q, want the file picker", p.asked[0])
	}
	if !strings.Contains(out, "1 renamed, 0 skipped") {
		t.Errorf("output = %q, want the run summary", out)
	}
}

func TestRootCommandAsksForMode(t *testing.T) {
	lib := newLibrary(t, "The.Matrix.1999.mkv")
	p := &scripted{t: t, answers: []any{0, false}}

	out, err := execute(t, p, "--config", lib.config, "--all")
	if err != nil {
		t.Fatalf("root error = %v", err)
	}
	if p.asked[0] != "Are you organizing movies or TV shows?" {
		t.Errorf("first prompt = %q, want the mode prompt", p.asked[0])
	}
	if !strings.Contains(out, "0 renamed, 1 skipped") {
		t.Errorf("output = %q, want the declined rename skipped", out)
	}
	if !exists(filepath.Join(lib.input, "The.Matrix.1999.mkv")) {
		t.Error("declined file was moved")
	}
}

func TestRootCommandAsksForSettingsFirst(t *testing.T) {
	root := t.TempDir()
	t.Setenv("HOME", root)
	t.Setenv("USERPROFILE", root)
	input := filepath.Join(root, "in")
	if err := os.Mkdir(input, 0755); err != nil {
		t.Fatal(err)
	}
	cfg := filepath.Join(root, "config.json")

	p := &scripted{t: t, answers: []any{"token", input, "/media/movies", "/media/tv", true, 1}}
	out, err := execute(t, p, "--config", cfg)
	if err != nil {
		t.Fatalf("root error = %v", err)
	}
	if got := p.asked[len(p.asked)-1]; got != "Are you organizing movies or TV shows?" {
		t.Errorf("last prompt = %q, want the mode prompt after the settings", got)
	}
	if !strings.Contains(out, "No video files found") {
		t.Errorf("output = %q, want the empty folder message", out)
	}
}

func TestRootCommandCanceledSettingsSkipMode(t *testing.T) {
	root := t.TempDir()
	t.Setenv("HOME", root)
	t.Setenv("USERPROFILE", root)
	p := &scripted{t: t, answers: []any{""}}

	_, err := execute(t, p, "--config", filepath.Join(root, "config.json"))
	if !errors.Is(err, config.ErrCanceled) {
		t.Fatalf("root error = %v, want ErrCanceled", err)
	}
	if len(p.asked) != 1 {
		t.Errorf("asked %q, want only the first setting", p.asked)
	}
}

func TestFlagsOverrideConfig(t *testing.T) {
	lib := newLibrary(t, "Avatar.2009.mk3d")
	other := t.TempDir()
	// Nothing matches "Avatar", so the user types another title
	p := &scripted{t: t, answers: []any{0, "The Matrix", true}}

	_, err := execute(t, p, "movies", "--config", lib.config, "--all", "--movies", other, "--no-mk3d-to-mkv")
	if err != nil {
		t.Fatalf("movies error = %v", err)
	}
	dest := filepath.Join(other, "The Matrix (1999)", "The Matrix (1999).mk3d")
	if !exists(dest) {
		t.Errorf("%s was not created", dest)
	}
}

func TestFirstRunAsksForSettings(t *testing.T) {
	root := t.TempDir()
	t.Setenv("HOME", root)
	t.Setenv("USERPROFILE", root)
	input := filepath.Join(root, "in")
	if err := os.Mkdir(input, 0755); err != nil {
		t.Fatal(err)
	}
	cfg := filepath.Join(root, "config.json")

	p := &scripted{t: t, answers: []any{"token", input, "/media/movies", "/media/tv", true}}
	out, err := execute(t, p, "movies", "--config", cfg)
	if err != nil {
		t.Fatalf("movies error = %v", err)
	}
	if !strings.Contains(out, "No video files found") {
		t.Errorf("output = %q, want the empty folder message", out)
	}

	settings, err := config.Load(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	if settings.AccessToken != "token" || settings.ShowsDir != "/media/tv" || settings.RenameMk3dToMkv == nil {
		t.Errorf("saved settings = %+v, want the answers persisted", settings)
	}
}

func TestFirstRunCanceled(t *testing.T) {
	root := t.TempDir()
	t.Setenv("HOME", root)
	p := &scripted{t: t, answers: []any{""}}

	_, err := execute(t, p, "shows", "--config", filepath.Join(root, "config.json"))
	if !errors.Is(err, config.ErrCanceled) {
		t.Fatalf("shows error = %v, want ErrCanceled", err)
	}
	if !quiet(err) {
		t.Error("quiet() = false for a canceled configuration")
	}
}

func TestUndoCommand(t *testing.T) {
	lib := newLibrary(t, "The.Matrix.1999.mkv")
	if _, err := execute(t, &scripted{t: t, answers: []any{true}}, "movies", "--config", lib.config, "--all"); err != nil {
		t.Fatalf("movies error = %v", err)
	}

	out, err := execute(t, &scripted{t: t, answers: []any{true}}, "undo")
	if err != nil {
		t.Fatalf("undo error = %v", err)
	}
	if !strings.Contains(out, "2 operations undone, 0 failed") {
		t.Errorf("output = %q", out)
	}
	if !exists(filepath.Join(lib.input, "The.Matrix.1999.mkv")) {
		t.Error("file was not moved back")
	}
	if exists(filepath.Join(lib.movies, "The Matrix (1999)")) {
		t.Error("created folder was not removed")
	}

	out, err = execute(t, &scripted{t: t}, "undo")
	if err != nil {
		t.Fatalf("second undo error = %v", err)
	}
	if !strings.Contains(out, "No operation sessions found to undo.") {
		t.Errorf("second undo output = %q", out)
	}
}

func TestHistoryCommand(t *testing.T) {
	lib := newLibrary(t, "The.Matrix.1999.mkv")

	out, err := execute(t, &scripted{t: t}, "history")
	if err != nil {
		t.Fatalf("history error = %v", err)
	}
	if !strings.Contains(out, "No operation sessions found.") {
		t.Errorf("empty history output = %q", out)
	}

	if _, err := execute(t, &scripted{t: t, answers: []any{true}}, "movies", "--config", lib.config, "--all"); err != nil {
		t.Fatalf("movies error = %v", err)
	}
	out, err = execute(t, &scripted{t: t}, "history", "-n", "5")
	if err != nil {
		t.Fatalf("history error = %v", err)
	}
	if want := "🎬 movies - just now (2 ops)"; !strings.Contains(out, want) {
		t.Errorf("history output = %q, want %q", out, want)
	}
}

func TestCatalogFor(t *testing.T) {
	tests := []struct {
		name     string
		settings config.Settings
		check    func(provider.Catalog) bool
		wantErr  bool
	}{
		{
			name:     "access token",
			settings: config.Settings{AccessToken: "token", APIKey: "key"},
			check:    func(c provider.Catalog) bool { _, ok := c.(*tmdb.Client); return ok },
		},
		{
			name:     "api key",
			settings: config.Settings{APIKey: "key"},
			check:    func(c provider.Catalog) bool { _, ok := c.(*tmdbv3.Catalog); return ok },
		},
		{
			name:    "no credential",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := catalogFor(&tt.settings)
			if tt.wantErr {
				if err == nil {
					t.Fatal("catalogFor() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("catalogFor() error = %v", err)
			}
			if !tt.check(got) {
				t.Errorf("catalogFor() = %T, wrong backend", got)
			}
		})
	}
}

func TestQuiet(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "canceled", err: fmt.Errorf("setup: %w", config.ErrCanceled), want: true},
		{name: "interrupted", err: prompt.ErrInterrupted, want: true},
		{name: "context", err: context.Canceled, want: true},
		{name: "other", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := quiet(tt.err); got != tt.want {
				t.Errorf("quiet(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
