package tmdb

import (
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/jordanbtucker/video-clerk/internal/provider"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	providerName = "tmdb"

	// BaseURL is the root of the TMDB v3 REST API.
	BaseURL = "https://api.themoviedb.org/3"
)

// NewLimiter returns the request pacing used against TMDB, which allows
// roughly 40 requests every 10 seconds.
func NewLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Every(10*time.Second/38), 38)
}

// Client is a provider.Catalog backed by the TMDB REST API, authenticated
// with a v4 read access token.
type Client struct {
	http     *resty.Client
	cache    *provider.LookupCache
	limiter  *rate.Limiter
	language string
	log      logrus.FieldLogger
}

var _ provider.Catalog = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.http.SetBaseURL(url) }
}

// WithTimeout bounds every HTTP request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.SetTimeout(d)
		}
	}
}

// WithLanguage sets the language parameter sent with every request.
func WithLanguage(language string) Option {
	return func(c *Client) { c.language = language }
}

// WithLimiter replaces the default request pacing.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a client that sends token as a bearer token and routes every
// request through cache.
func New(token string, cache *provider.LookupCache, opts ...Option) *Client {
	h := resty.New()
	h.SetBaseURL(BaseURL)
	h.SetHeader("Authorization", "Bearer "+token)
	h.SetHeader("Accept", "application/json")

	c := &Client{
		http:     h,
		cache:    cache,
		limiter:  NewLimiter(),
		language: "en-US",
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
