package core

import (
	"testing"

	"github.com/jordanbtucker/video-clerk/internal/provider"
)

func TestShowMemo(t *testing.T) {
	m := NewShowMemo()
	if _, ok := m.Lookup("Show.Name"); ok {
		t.Fatal("Lookup() on empty memo found an entry")
	}
	show := &provider.Entity{ID: showID, Title: "Show Name"}
	m.Remember("Show.Name", show)
	got, ok := m.Lookup("Show.Name")
	if !ok || got != show {
		t.Errorf("Lookup() = %v, %v; want the remembered show", got, ok)
	}
	if _, ok := m.Lookup("Show Name"); ok {
		t.Error("Lookup() matched a different raw title")
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}
