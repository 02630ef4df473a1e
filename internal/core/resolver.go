package core

import (
	"context"
	"fmt"

	"github.com/jordanbtucker/video-clerk/internal/media"
	"github.com/jordanbtucker/video-clerk/internal/prompt"
	"github.com/jordanbtucker/video-clerk/internal/provider"
	"github.com/sirupsen/logrus"
)

// Resolver identifies the catalog entity a file belongs to.
type Resolver struct {
	Catalog  provider.Catalog
	Prompter prompt.Prompter
	Memo     *ShowMemo
	Log      logrus.FieldLogger
}

// Resolve searches the catalog for title and settles on exactly one
// candidate. A single candidate is taken without asking; several are
// offered to the user. When nothing matches the user may enter another
// title, and the search starts over.
//
// In show mode a file whose name matched the show grammar first consults
// the memo under its raw title, and the chosen show is remembered there.
func (r *Resolver) Resolve(ctx context.Context, kind media.Kind, filename string, parsed media.ParsedFilename, title string) (*provider.Entity, error) {
	memoize := kind == media.KindShow && parsed.Matched
	if memoize {
		if show, ok := r.Memo.Lookup(parsed.RawTitle); ok {
			r.Log.WithFields(logrus.Fields{"file": filename, "show": show.Title}).Debug("show already identified")
			return show, nil
		}
	}

	for {
		candidates, err := r.Catalog.Search(ctx, kind, title)
		if err != nil {
			return nil, fmt.Errorf("search for %q: %w", title, err)
		}

		var entity *provider.Entity
		switch len(candidates) {
		case 0:
			title, err = r.retitle(ctx, filename, title)
			if err != nil {
				return nil, err
			}
			continue
		case 1:
			entity = candidates[0].Entity()
		default:
			labels := make([]string, len(candidates))
			for i, c := range candidates {
				labels[i] = c.Label()
			}
			idx, ok, err := r.Prompter.Select(ctx, fmt.Sprintf("Multiple results found for %s. Please select one.", filename), labels)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, skipf(SkipCanceled, "no result chosen for %s", filename)
			}
			entity = candidates[idx].Entity()
		}

		r.Log.WithFields(logrus.Fields{"file": filename, "id": entity.ID, "title": entity.Title}).Debug("resolved")
		if memoize {
			r.Memo.Remember(parsed.RawTitle, entity)
		}
		return entity, nil
	}
}

// retitle tells the user the search came up empty and asks for another
// title. A blank answer skips the file.
func (r *Resolver) retitle(ctx context.Context, filename, title string) (string, error) {
	_, ok, err := r.Prompter.Select(ctx, fmt.Sprintf("No results found for %s.", title), []string{"OK"})
	if err != nil {
		return "", err
	}
	if !ok {
		return "", skipf(SkipNoMatch, "no results found for %s", title)
	}

	next, ok, err := r.Prompter.Input(ctx, fmt.Sprintf("Unable to determine title from %s. Please enter a title.", filename))
	if err != nil {
		return "", err
	}
	if !ok {
		return "", skipf(SkipNoMatch, "no results found for %s", title)
	}
	return next, nil
}
