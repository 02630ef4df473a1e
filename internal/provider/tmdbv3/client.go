// Package tmdbv3 is a provider.Catalog for TMDB v3 API keys, built on the
// go-tmdb client library.
package tmdbv3

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/jordanbtucker/video-clerk/internal/media"
	"github.com/jordanbtucker/video-clerk/internal/provider"
	wire "github.com/jordanbtucker/video-clerk/internal/provider/tmdb"
	"github.com/ryanbradynd05/go-tmdb"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const providerName = "tmdb"

// TMDBClient is the subset of *tmdb.TMDb the catalog uses.
type TMDBClient interface {
	SearchMovie(name string, options map[string]string) (*tmdb.MovieSearchResults, error)
	SearchTv(name string, options map[string]string) (*tmdb.TvSearchResults, error)
	GetTvInfo(id int, options map[string]string) (*tmdb.TV, error)
	GetTvSeasonInfo(showID, seasonID int, options map[string]string) (*tmdb.TvSeason, error)
}

// Catalog answers catalog queries with go-tmdb. Every typed response is
// re-encoded to JSON and kept in the lookup cache, so both TMDB backends
// share one cache format.
type Catalog struct {
	client   TMDBClient
	cache    *provider.LookupCache
	limiter  *rate.Limiter
	language string
	log      logrus.FieldLogger
}

var _ provider.Catalog = (*Catalog)(nil)

// Option configures a Catalog.
type Option func(*Catalog)

// WithClient replaces the go-tmdb client.
func WithClient(client TMDBClient) Option {
	return func(c *Catalog) { c.client = client }
}

// WithLanguage sets the language option sent with every request.
func WithLanguage(language string) Option {
	return func(c *Catalog) { c.language = language }
}

// WithLimiter replaces the default request pacing.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Catalog) { c.limiter = l }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Catalog) { c.log = l }
}

// New creates a catalog authenticated with a v3 API key.
func New(apiKey string, cache *provider.LookupCache, opts ...Option) *Catalog {
	c := &Catalog{
		client:   tmdb.Init(tmdb.Config{APIKey: apiKey}),
		cache:    cache,
		limiter:  wire.NewLimiter(),
		language: "en-US",
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search looks up query in the movie or show index.
func (c *Catalog) Search(ctx context.Context, kind media.Kind, query string) ([]provider.SearchCandidate, error) {
	options := c.options()
	params := c.options()
	params["query"] = query

	var resp wire.SearchResponse
	err := c.get(ctx, wire.SearchEndpoint(kind), params, &resp, func() (any, error) {
		if kind == media.KindShow {
			return c.client.SearchTv(query, options)
		}
		return c.client.SearchMovie(query, options)
	})
	if errors.Is(err, provider.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return resp.Candidates(kind), nil
}

// ShowDetail fetches a show with its season list.
func (c *Catalog) ShowDetail(ctx context.Context, id int) (*provider.Entity, error) {
	options := c.options()

	var resp wire.ShowResponse
	err := c.get(ctx, fmt.Sprintf("tv/%d", id), options, &resp, func() (any, error) {
		return c.client.GetTvInfo(id, options)
	})
	if err != nil {
		return nil, err
	}
	return resp.Entity(), nil
}

// SeasonDetail fetches a season with its episodes.
func (c *Catalog) SeasonDetail(ctx context.Context, showID, season int) (*provider.SeasonSummary, error) {
	options := c.options()

	var resp wire.SeasonResponse
	err := c.get(ctx, fmt.Sprintf("tv/%d/season/%d", showID, season), options, &resp, func() (any, error) {
		return c.client.GetTvSeasonInfo(showID, season, options)
	})
	if err != nil {
		return nil, err
	}
	return resp.Summary(), nil
}

func (c *Catalog) options() map[string]string {
	options := map[string]string{}
	if c.language != "" {
		options["language"] = c.language
	}
	return options
}

// get runs call on a cache miss and stores its result as JSON.
func (c *Catalog) get(ctx context.Context, endpoint string, params map[string]string, out any, call func() (any, error)) error {
	return c.cache.Fetch(endpoint, params, out, func() ([]byte, error) {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		c.log.WithField("endpoint", endpoint).Debug("catalog request")
		result, err := call()
		if err != nil {
			return nil, c.mapError(endpoint, err)
		}
		if empty(result) {
			return nil, &provider.ProviderError{
				Provider: providerName,
				Code:     provider.CodeDecode,
				Message:  fmt.Sprintf("invalid response from %s", endpoint),
			}
		}
		return json.Marshal(result)
	})
}

// empty reports whether result is the zero value go-tmdb returns for a
// success response whose body it could not decode. TMDB numbers search
// pages from 1 and never serves a show or season without an ID.
func empty(result any) bool {
	switch r := result.(type) {
	case *tmdb.MovieSearchResults:
		return r == nil || r.Page == 0
	case *tmdb.TvSearchResults:
		return r == nil || r.Page == 0
	case *tmdb.TV:
		return r == nil || r.ID == 0
	case *tmdb.TvSeason:
		return r == nil || r.ID == 0
	}
	return result == nil
}

// mapError classifies go-tmdb errors. Network failures surface as
// *url.Error and a non-JSON error body as *json.SyntaxError; both are
// fatal. Anything else is the API rejecting the request.
func (c *Catalog) mapError(endpoint string, err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &provider.ProviderError{
			Provider: providerName,
			Code:     provider.CodeTransport,
			Message:  fmt.Sprintf("request to %s failed", endpoint),
			Err:      err,
		}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &provider.ProviderError{
			Provider: providerName,
			Code:     provider.CodeDecode,
			Message:  fmt.Sprintf("invalid response from %s", endpoint),
			Err:      err,
		}
	}

	c.log.WithFields(logrus.Fields{"endpoint": endpoint, "error": err}).Warn("catalog rejected request")
	return &provider.ProviderError{
		Provider: providerName,
		Code:     provider.CodeNotFound,
		Message:  fmt.Sprintf("%s: %v", endpoint, err),
	}
}
