package core

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/jordanbtucker/video-clerk/internal/log"
	"github.com/jordanbtucker/video-clerk/internal/media"
	"github.com/jordanbtucker/video-clerk/internal/prompt"
	"github.com/jordanbtucker/video-clerk/internal/provider"
	"github.com/sirupsen/logrus"
)

// Config wires a Pipeline to its collaborators.
type Config struct {
	Kind            media.Kind
	InputDir        string
	MoviesDir       string
	ShowsDir        string
	RenameMk3dToMkv bool

	Catalog  provider.Catalog
	Prompter prompt.Prompter
	Mover    Mover
	Logger   logrus.FieldLogger
}

// Outcome is what happened to one file. Exactly one of Applied and Skip is
// set; Source and Destination are set when Applied.
type Outcome struct {
	Filename    string
	Source      string
	Destination string
	Applied     bool
	Skip        SkipReason
}

// Pipeline renames files one at a time: parse, resolve, validate (shows
// only), build the destination, confirm, apply. The show memo lives as
// long as the pipeline.
type Pipeline struct {
	cfg       Config
	memo      *ShowMemo
	resolver  *Resolver
	validator *Validator
	log       logrus.FieldLogger
}

// job carries one file through the stages.
type job struct {
	filename string
	parsed   media.ParsedFilename
	title    string
	entity   *provider.Entity
	episodes Episodes
	source   string
	dest     string
}

type stage struct {
	name string
	run  func(context.Context, *job) error
}

// NewPipeline creates a pipeline for cfg. A nil Mover renames on the local
// filesystem and a nil Logger uses the shared diagnostic logger.
func NewPipeline(cfg Config) *Pipeline {
	if cfg.Mover == nil {
		cfg.Mover = FileMover{}
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Logger()
	}
	memo := NewShowMemo()
	return &Pipeline{
		cfg:       cfg,
		memo:      memo,
		resolver:  &Resolver{Catalog: cfg.Catalog, Prompter: cfg.Prompter, Memo: memo, Log: cfg.Logger},
		validator: &Validator{Catalog: cfg.Catalog, Prompter: cfg.Prompter, Log: cfg.Logger},
		log:       cfg.Logger,
	}
}

func (p *Pipeline) stages() []stage {
	return []stage{
		{"parse", p.parse},
		{"resolve", p.resolve},
		{"validate", p.validate},
		{"build", p.build},
		{"confirm", p.confirm},
		{"apply", p.apply},
	}
}

// Process runs filename through every stage. A skipped file yields an
// Outcome and a nil error; any error means the run must stop.
func (p *Pipeline) Process(ctx context.Context, filename string) (Outcome, error) {
	j := &job{filename: filename}
	entry := p.log.WithField("file", filename)

	for _, st := range p.stages() {
		if err := ctx.Err(); err != nil {
			return Outcome{Filename: filename}, err
		}
		entry.WithField("stage", st.name).Debug("stage")

		if err := st.run(ctx, j); err != nil {
			var skip *Skip
			if errors.As(err, &skip) {
				entry.WithField("reason", skip.Reason).Info(skip.Error())
				return Outcome{Filename: filename, Skip: skip.Reason}, nil
			}
			return Outcome{Filename: filename}, err
		}
	}

	entry.WithField("destination", j.dest).Info("renamed")
	return Outcome{Filename: filename, Source: j.source, Destination: j.dest, Applied: true}, nil
}

// Run processes filenames in order. It returns the outcomes gathered so
// far together with the first error.
func (p *Pipeline) Run(ctx context.Context, filenames []string) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(filenames))
	for _, filename := range filenames {
		outcome, err := p.Process(ctx, filename)
		if err != nil {
			return outcomes, fmt.Errorf("%s: %w", filename, err)
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

func (p *Pipeline) parse(ctx context.Context, j *job) error {
	j.parsed = media.Parse(p.cfg.Kind, j.filename)
	if j.parsed.Matched {
		j.title = j.parsed.Title()
		return nil
	}

	title, ok, err := p.cfg.Prompter.Input(ctx, fmt.Sprintf("Unable to determine title from %s. Please enter a title.", j.filename))
	if err != nil {
		return err
	}
	if !ok {
		return skipf(SkipNoTitle, "no title for %s", j.filename)
	}
	j.title = title
	return nil
}

func (p *Pipeline) resolve(ctx context.Context, j *job) error {
	entity, err := p.resolver.Resolve(ctx, p.cfg.Kind, j.filename, j.parsed, j.title)
	if err != nil {
		return err
	}
	j.entity = entity
	return nil
}

func (p *Pipeline) validate(ctx context.Context, j *job) error {
	if p.cfg.Kind != media.KindShow {
		return nil
	}
	eps, err := p.validator.Validate(ctx, j.filename, j.entity, j.parsed)
	if err != nil {
		return err
	}
	j.episodes = eps
	return nil
}

func (p *Pipeline) build(_ context.Context, j *job) error {
	ext := OutputExt(j.filename, p.cfg.RenameMk3dToMkv)
	j.source = filepath.Join(p.cfg.InputDir, j.filename)
	if p.cfg.Kind == media.KindShow {
		j.dest = ShowDestination(p.cfg.ShowsDir, j.entity, j.episodes, ext)
	} else {
		j.dest = MovieDestination(p.cfg.MoviesDir, j.entity, ext)
	}
	return nil
}

func (p *Pipeline) confirm(ctx context.Context, j *job) error {
	ok, err := p.cfg.Prompter.Confirm(ctx, fmt.Sprintf("Rename %s to %s?", j.filename, j.dest))
	if err != nil {
		return err
	}
	if !ok {
		return &Skip{Reason: SkipDeclined}
	}
	return nil
}

func (p *Pipeline) apply(_ context.Context, j *job) error {
	if err := p.cfg.Mover.EnsureDir(filepath.Dir(j.dest)); err != nil {
		return err
	}
	return p.cfg.Mover.Move(j.source, j.dest)
}

// Summary counts the outcomes of a run.
type Summary struct {
	Renamed int
	Skipped int
}

// Summarize tallies outcomes.
func Summarize(outcomes []Outcome) Summary {
	var s Summary
	for _, o := range outcomes {
		if o.Applied {
			s.Renamed++
		} else {
			s.Skipped++
		}
	}
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("%d renamed, %d skipped", s.Renamed, s.Skipped)
}
