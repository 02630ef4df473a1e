package media

import (
	"strings"
	"testing"
)

func TestScrub(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "Plain", in: "The Matrix", want: "The Matrix"},
		{name: "Colon", in: "Mission: Impossible", want: "Mission - Impossible"},
		{name: "ColonNoSpace", in: "Star Wars:Episode IV", want: "Star Wars - Episode IV"},
		{name: "Pipe", in: "Tom | Jerry", want: "Tom  - Jerry"},
		{name: "Slashes", in: `AC/DC Live\Tour`, want: "AC-DC Live-Tour"},
		{name: "Stripped", in: `What? "Now" <Here>*`, want: "What Now Here"},
		{name: "Nul", in: "Null\x00Byte", want: "NullByte"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Scrub(tt.in); got != tt.want {
				t.Errorf("Scrub(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestScrubInvariants(t *testing.T) {
	inputs := []string{
		"Mission: Impossible - Dead Reckoning",
		`a/b\c:d*e?f"g<h>i|j`,
		"Who? What: Where/When",
		"",
	}
	for _, in := range inputs {
		once := Scrub(in)
		if strings.ContainsAny(once, "\\/:*?\"<>|\x00") {
			t.Errorf("Scrub(%q) = %q, still contains reserved characters", in, once)
		}
		if twice := Scrub(once); twice != once {
			t.Errorf("Scrub not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
