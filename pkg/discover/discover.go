// Package discover finds the files a rewrite run should visit.
package discover

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔍 Filter selects candidate files by name
type Filter struct {
	Extension string   // Required filename suffix, e.g. ".jsx"
	Markers   []string // Filename must contain at least one of these
	Ignore    []string // Doublestar globs matched against the root-relative path
}

// Match reports whether a file name is a candidate. Only the base name is
// considered.
func (f Filter) Match(name string) bool {
	base := filepath.Base(name)
	if !strings.HasSuffix(base, f.Extension) {
		return false
	}
	for _, marker := range f.Markers {
		if strings.Contains(base, marker) {
			return true
		}
	}
	return false
}

// Ignored reports whether the slash-separated, root-relative path matches an
// ignore pattern.
func (f Filter) Ignored(rel string) (bool, error) {
	for _, pattern := range f.Ignore {
		matched, err := doublestar.Match(pattern, rel)
		if err != nil {
			return false, errors.Errorf("matching ignore pattern %q: %w", pattern, err)
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}

// Validate checks that every ignore pattern is a valid glob
func (f Filter) Validate() error {
	for _, pattern := range f.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid ignore pattern %q", pattern)
		}
	}
	return nil
}

// Candidates walks root and returns every non-directory entry accepted by f,
// in walk order. Symlinks are not followed, but a link to a file (or a broken
// link) is a candidate; a link to a directory is not. A root that is missing
// or unreadable yields no candidates and no error. Unreadable subdirectories
// are skipped. If ctx is cancelled the paths found so far are returned along
// with the context error.
func Candidates(ctx context.Context, root string, f Filter) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	if err := f.Validate(); err != nil {
		return nil, err
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			logger.Debug().Err(err).Str("path", path).Msg("skipping unreadable entry")
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if rel != "." {
			ignored, err := f.Ignored(rel)
			if err != nil {
				return err
			}
			if ignored {
				logger.Debug().Str("path", rel).Msg("ignored by pattern")
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if d.IsDir() || !f.Match(d.Name()) {
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 && linksToDir(path) {
			logger.Debug().Str("path", rel).Msg("skipping symlink to directory")
			return nil
		}

		paths = append(paths, path)
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			logger.Warn().Err(err).Int("count", len(paths)).Msg("discovery interrupted")
			return paths, errors.Errorf("walking %s: %w", root, err)
		}
		return nil, errors.Errorf("walking %s: %w", root, err)
	}

	logger.Debug().Str("root", root).Int("count", len(paths)).Msg("discovered candidate files")

	return paths, nil
}

// linksToDir reports whether the symlink at path resolves to a directory. A
// broken link resolves to nothing and is reported as false.
func linksToDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
