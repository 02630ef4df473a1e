package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jordanbtucker/video-clerk/internal/media"
	"github.com/jordanbtucker/video-clerk/internal/prompt"
	"github.com/jordanbtucker/video-clerk/internal/provider"
	"github.com/sirupsen/logrus"
)

// Episodes is the validated season and episode selection for a show file.
type Episodes struct {
	Season int
	First  provider.EpisodeSummary
	Second *provider.EpisodeSummary
}

// Title is the episode title, or both titles joined with " & " for a
// double episode.
func (e Episodes) Title() string {
	if e.Second == nil {
		return e.First.Title
	}
	return e.First.Title + " & " + e.Second.Title
}

// Validator checks parsed season and episode numbers against the catalog
// and asks the user whenever a number is missing or unknown.
type Validator struct {
	Catalog  provider.Catalog
	Prompter prompt.Prompter
	Log      logrus.FieldLogger
}

// Validate returns the season and episodes of show that filename holds.
// The season list is fetched once and attached to show.
func (v *Validator) Validate(ctx context.Context, filename string, show *provider.Entity, parsed media.ParsedFilename) (Episodes, error) {
	if show.Seasons == nil {
		detail, err := v.Catalog.ShowDetail(ctx, show.ID)
		if err != nil {
			return Episodes{}, v.lookupFailed(err, filename, "show %d", show.ID)
		}
		show.Seasons = detail.Seasons
		if show.Seasons == nil {
			show.Seasons = []provider.SeasonSummary{}
		}
	}
	if len(show.Seasons) == 0 {
		v.Log.WithFields(logrus.Fields{"file": filename, "show": show.Title}).Warn("show has no seasons")
		return Episodes{}, skipf(SkipNotFound, "%s has no seasons", show.Title)
	}

	season, err := v.season(ctx, filename, show, parsed.Season)
	if err != nil {
		return Episodes{}, err
	}

	detail, err := v.Catalog.SeasonDetail(ctx, show.ID, season.Number)
	if err != nil {
		return Episodes{}, v.lookupFailed(err, filename, "show %d season %d", show.ID, season.Number)
	}
	if len(detail.Episodes) == 0 {
		v.Log.WithFields(logrus.Fields{"file": filename, "show": show.Title, "season": season.Number}).Warn("season has no episodes")
		return Episodes{}, skipf(SkipNotFound, "%s season %d has no episodes", show.Title, season.Number)
	}

	label := ""
	if parsed.SecondEpisode != nil {
		label = "first "
	}
	first, err := v.episode(ctx, filename, detail, parsed.Episode, label)
	if err != nil {
		return Episodes{}, err
	}
	eps := Episodes{Season: season.Number, First: first}

	if parsed.SecondEpisode != nil {
		second, err := v.episode(ctx, filename, detail, parsed.SecondEpisode, "second ")
		if err != nil {
			return Episodes{}, err
		}
		eps.Second = &second
	}
	return eps, nil
}

func (v *Validator) season(ctx context.Context, filename string, show *provider.Entity, number *int) (provider.SeasonSummary, error) {
	if number != nil {
		if s, ok := show.Season(*number); ok {
			return s, nil
		}
		v.Log.WithFields(logrus.Fields{"file": filename, "season": *number}).Debug("season not in catalog")
	}

	names := make([]string, len(show.Seasons))
	for i, s := range show.Seasons {
		names[i] = s.Name
		if names[i] == "" {
			names[i] = fmt.Sprintf("Season %d", s.Number)
		}
	}
	idx, ok, err := v.Prompter.Select(ctx, fmt.Sprintf("Unable to determine season for %s. Please choose one.", filename), names)
	if err != nil {
		return provider.SeasonSummary{}, err
	}
	if !ok {
		return provider.SeasonSummary{}, skipf(SkipCanceled, "no season chosen for %s", filename)
	}
	return show.Seasons[idx], nil
}

func (v *Validator) episode(ctx context.Context, filename string, season *provider.SeasonSummary, number *int, label string) (provider.EpisodeSummary, error) {
	if number != nil {
		if e, ok := season.Episode(*number); ok {
			return e, nil
		}
		v.Log.WithFields(logrus.Fields{"file": filename, "season": season.Number, "episode": *number}).Debug("episode not in catalog")
	}

	rows := make([]string, len(season.Episodes))
	for i, e := range season.Episodes {
		rows[i] = fmt.Sprintf("%02d %s", e.Number, e.Title)
	}
	idx, ok, err := v.Prompter.Select(ctx, fmt.Sprintf("Unable to determine %sepisode for %s. Please choose one.", label, filename), rows)
	if err != nil {
		return provider.EpisodeSummary{}, err
	}
	if !ok {
		return provider.EpisodeSummary{}, skipf(SkipCanceled, "no %sepisode chosen for %s", label, filename)
	}
	return season.Episodes[idx], nil
}

// lookupFailed turns a not-found detail lookup into a skip. Any other
// error is returned wrapped.
func (v *Validator) lookupFailed(err error, filename, format string, args ...any) error {
	what := fmt.Sprintf(format, args...)
	if errors.Is(err, provider.ErrNotFound) {
		v.Log.WithError(err).WithField("file", filename).Warnf("%s not found in catalog", what)
		return skipf(SkipNotFound, "%s", what)
	}
	return fmt.Errorf("fetch %s: %w", what, err)
}
