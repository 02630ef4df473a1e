package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jordanbtucker/video-clerk/internal/config"
	"github.com/jordanbtucker/video-clerk/internal/core"
	"github.com/jordanbtucker/video-clerk/internal/log"
	"github.com/jordanbtucker/video-clerk/internal/media"
	"github.com/jordanbtucker/video-clerk/internal/prompt"
	"github.com/jordanbtucker/video-clerk/internal/provider"
	"github.com/jordanbtucker/video-clerk/internal/provider/tmdb"
	"github.com/jordanbtucker/video-clerk/internal/provider/tmdbv3"
	"github.com/spf13/cobra"
)

// Prompter is the question surface of a run, including the file picker.
type Prompter interface {
	prompt.Prompter
	MultiSelect(ctx context.Context, message string, choices []string) ([]int, bool, error)
}

// Replaced in tests.
var (
	newPrompter = func() Prompter { return prompt.New() }
	newCatalog  = catalogFor
)

// catalogFor picks the catalog backend for the configured credential. An
// access token uses the REST client; an API key alone uses go-tmdb.
func catalogFor(s *config.Settings) (provider.Catalog, error) {
	cache := provider.NewLookupCache()
	switch {
	case s.AccessToken != "":
		return tmdb.New(s.AccessToken, cache,
			tmdb.WithLanguage(s.Language),
			tmdb.WithTimeout(timeout),
			tmdb.WithLogger(log.Logger()),
		), nil
	case s.APIKey != "":
		return tmdbv3.New(s.APIKey, cache,
			tmdbv3.WithLanguage(s.Language),
			tmdbv3.WithLogger(log.Logger()),
		), nil
	}
	return nil, errors.New("no access token or API key configured")
}

// runMedia executes one renaming run for kind. An empty kind asks for the
// mode once the settings are complete.
func runMedia(cmd *cobra.Command, p Prompter, kind media.Kind) error {
	ctx := cmd.Context()

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if err := config.Ensure(ctx, settings, p); err != nil {
		return err
	}
	if kind == "" {
		var ok bool
		if kind, ok, err = askKind(ctx, p); err != nil || !ok {
			return err
		}
	}

	files, err := media.ListVideos(settings.InputDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No video files found in %s.\n", settings.InputDir)
		return nil
	}
	if !all {
		if files, err = pickFiles(ctx, p, files); err != nil || len(files) == 0 {
			return err
		}
	}

	catalog, err := newCatalog(settings)
	if err != nil {
		return err
	}

	command := "movies"
	if kind == media.KindShow {
		command = "shows"
	}
	log.StartSession(command, os.Args[1:])
	defer func() {
		if err := log.EndSession(); err != nil {
			log.Logger().WithError(err).Warn("failed to save operation log")
		}
	}()

	pipeline := core.NewPipeline(core.Config{
		Kind:            kind,
		InputDir:        settings.InputDir,
		MoviesDir:       settings.MoviesDir,
		ShowsDir:        settings.ShowsDir,
		RenameMk3dToMkv: *settings.RenameMk3dToMkv,
		Catalog:         catalog,
		Prompter:        p,
		Mover:           core.FileMover{},
		Logger:          log.Logger(),
	})

	outcomes, err := pipeline.Run(ctx, files)
	fmt.Fprintln(cmd.OutOrStdout(), core.Summarize(outcomes))
	return err
}

// loadSettings reads the configuration and applies its logging settings.
func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	settings, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := log.SetupLogger(log.LoggerConfig{Level: settings.LogLevel, File: settings.LogFile}); err != nil {
		return nil, err
	}
	log.Initialize(settings.EnableLogging, settings.LogRetentionDays)
	return settings, nil
}

// askKind asks whether the run organizes movies or TV shows.
func askKind(ctx context.Context, p Prompter) (media.Kind, bool, error) {
	choice, ok, err := p.Select(ctx, "Are you organizing movies or TV shows?", []string{"Movies", "TV Shows"})
	if err != nil || !ok {
		return "", false, err
	}
	if choice == 1 {
		return media.KindShow, true, nil
	}
	return media.KindMovie, true, nil
}

// pickFiles lets the user choose which files to process.
func pickFiles(ctx context.Context, p Prompter, files []string) ([]string, error) {
	picked, ok, err := p.MultiSelect(ctx, "Which files are you organizing?", files)
	if err != nil || !ok {
		return nil, err
	}
	selected := make([]string, 0, len(picked))
	for _, i := range picked {
		selected = append(selected, files[i])
	}
	return selected, nil
}
