package core

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jordanbtucker/video-clerk/internal/media"
	"github.com/jordanbtucker/video-clerk/internal/provider"
)

// OutputExt returns the extension the renamed file gets. With renameMk3d
// set, ".mk3d" in any case becomes ".mkv"; otherwise the extension is kept
// as is.
func OutputExt(filename string, renameMk3d bool) string {
	ext := filepath.Ext(filename)
	if renameMk3d && strings.EqualFold(ext, ".mk3d") {
		return ".mkv"
	}
	return ext
}

// MovieDestination builds <root>/<title> (<year>)/<title> (<year>)<ext>.
func MovieDestination(root string, movie *provider.Entity, ext string) string {
	name := withYear(media.Scrub(movie.Title), movie.Year)
	return filepath.Join(root, name, name+ext)
}

// ShowDestination builds
// <root>/<title> (<year>)/Season <SS>/<title> (<year>) - S<SS>E<EE>[-E<EE>] - <episode title><ext>.
// Episode titles are scrubbed one at a time before they are joined.
func ShowDestination(root string, show *provider.Entity, eps Episodes, ext string) string {
	name := withYear(media.Scrub(show.Title), show.Year)

	code := fmt.Sprintf("S%02dE%02d", eps.Season, eps.First.Number)
	title := media.Scrub(eps.First.Title)
	if eps.Second != nil {
		code += fmt.Sprintf("-E%02d", eps.Second.Number)
		title += " & " + media.Scrub(eps.Second.Title)
	}

	return filepath.Join(root, name, fmt.Sprintf("Season %02d", eps.Season),
		fmt.Sprintf("%s - %s - %s%s", name, code, title, ext))
}

// withYear appends " (<year>)" unless the catalog had no year.
func withYear(title, year string) string {
	if year == "" {
		return title
	}
	return fmt.Sprintf("%s (%s)", title, year)
}
