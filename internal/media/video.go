package media

import (
	"fmt"
	"os"
	"regexp"
	"sort"
)

// videoRe matches the video extensions offered for organizing.
var videoRe = regexp.MustCompile(`(?i)\.(avi|flv|m4[pv]|mp([24egv]|eg)|mk(3d|v)|ogg|swf|webm|wmv)$`)

// IsVideo reports whether filename has a recognized video extension.
func IsVideo(filename string) bool {
	return videoRe.MatchString(filename)
}

// ListVideos returns the sorted names of the video files directly inside dir.
func ListVideos(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !IsVideo(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}
