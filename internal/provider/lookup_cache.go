package provider

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/patrickmn/go-cache"
)

// LookupCache keeps raw catalog responses for the life of one run. Entries
// never expire and failed requests are never stored.
type LookupCache struct {
	store *cache.Cache
}

// NewLookupCache creates an empty cache.
func NewLookupCache() *LookupCache {
	return &LookupCache{store: cache.New(cache.NoExpiration, 0)}
}

// Signature identifies a request by its endpoint and its query parameters
// sorted by key, so the same request always maps to the same entry.
func Signature(endpoint string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([][2]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, [2]string{k, params[k]})
	}

	sig, _ := json.Marshal([]any{endpoint, pairs})
	return string(sig)
}

// Fetch decodes the cached response for endpoint and params into out. On a
// miss it calls fetch, decodes the body and stores it. Errors from fetch or
// from decoding are returned as is and leave the cache untouched.
//
// A nil cache always calls fetch.
func (c *LookupCache) Fetch(endpoint string, params map[string]string, out any, fetch func() ([]byte, error)) error {
	if c == nil {
		body, err := fetch()
		if err != nil {
			return err
		}
		return decode(endpoint, body, out)
	}

	key := Signature(endpoint, params)
	if cached, ok := c.store.Get(key); ok {
		if body, ok := cached.([]byte); ok {
			return decode(endpoint, body, out)
		}
	}

	body, err := fetch()
	if err != nil {
		return err
	}
	if err := decode(endpoint, body, out); err != nil {
		return err
	}
	c.store.Set(key, body, cache.NoExpiration)
	return nil
}

// Len returns the number of cached responses.
func (c *LookupCache) Len() int {
	if c == nil {
		return 0
	}
	return c.store.ItemCount()
}

func decode(endpoint string, body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return &ProviderError{
			Provider: "catalog",
			Code:     CodeDecode,
			Message:  fmt.Sprintf("invalid response from %s", endpoint),
			Err:      err,
		}
	}
	return nil
}
