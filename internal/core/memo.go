package core

import (
	"github.com/jordanbtucker/video-clerk/internal/provider"
	"github.com/mhmtszr/concurrent-swiss-map"
)

// ShowMemo remembers which show a filename prefix resolved to, so later
// episodes of the same show skip the search and the disambiguation prompt.
// Keys are raw title prefixes exactly as the show grammar captured them.
type ShowMemo struct {
	shows *csmap.CsMap[string, *provider.Entity]
}

// NewShowMemo creates an empty memo.
func NewShowMemo() *ShowMemo {
	return &ShowMemo{shows: csmap.Create[string, *provider.Entity]()}
}

// Lookup returns the show remembered for rawTitle.
func (m *ShowMemo) Lookup(rawTitle string) (*provider.Entity, bool) {
	return m.shows.Load(rawTitle)
}

// Remember stores show under rawTitle, replacing any previous entry.
func (m *ShowMemo) Remember(rawTitle string, show *provider.Entity) {
	m.shows.Store(rawTitle, show)
}

// Len returns the number of remembered prefixes.
func (m *ShowMemo) Len() int {
	return m.shows.Count()
}
