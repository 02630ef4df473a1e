package tmdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/jordanbtucker/video-clerk/internal/media"
	"github.com/jordanbtucker/video-clerk/internal/provider"
	"github.com/sirupsen/logrus"
)

// Search looks up query in the movie or show index.
func (c *Client) Search(ctx context.Context, kind media.Kind, query string) ([]provider.SearchCandidate, error) {
	params := c.params()
	params["query"] = query

	var resp SearchResponse
	err := c.get(ctx, SearchEndpoint(kind), params, &resp)
	if errors.Is(err, provider.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return resp.Candidates(kind), nil
}

// ShowDetail fetches a show with its season list.
func (c *Client) ShowDetail(ctx context.Context, id int) (*provider.Entity, error) {
	var resp ShowResponse
	if err := c.get(ctx, fmt.Sprintf("tv/%d", id), c.params(), &resp); err != nil {
		return nil, err
	}
	return resp.Entity(), nil
}

// SeasonDetail fetches a season with its episodes.
func (c *Client) SeasonDetail(ctx context.Context, showID, season int) (*provider.SeasonSummary, error) {
	var resp SeasonResponse
	if err := c.get(ctx, fmt.Sprintf("tv/%d/season/%d", showID, season), c.params(), &resp); err != nil {
		return nil, err
	}
	return resp.Summary(), nil
}

func (c *Client) params() map[string]string {
	params := map[string]string{}
	if c.language != "" {
		params["language"] = c.language
	}
	return params
}

// get issues a GET through the lookup cache and decodes the body into out.
func (c *Client) get(ctx context.Context, endpoint string, params map[string]string, out any) error {
	return c.cache.Fetch(endpoint, params, out, func() ([]byte, error) {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		c.log.WithField("endpoint", endpoint).Debug("catalog request")
		resp, err := c.http.R().
			SetContext(ctx).
			SetQueryParams(params).
			Get(endpoint)
		if err != nil {
			return nil, &provider.ProviderError{
				Provider: providerName,
				Code:     provider.CodeTransport,
				Message:  fmt.Sprintf("request to %s failed", endpoint),
				Err:      err,
			}
		}
		if !resp.IsSuccess() {
			c.log.WithFields(logrus.Fields{"endpoint": endpoint, "status": resp.StatusCode()}).Warn("catalog returned an error status")
			return nil, &provider.ProviderError{
				Provider: providerName,
				Code:     provider.CodeNotFound,
				Status:   resp.StatusCode(),
				Message:  fmt.Sprintf("%s returned %s", endpoint, resp.Status()),
			}
		}
		return resp.Body(), nil
	})
}
