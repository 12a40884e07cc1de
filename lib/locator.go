package lib

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ErrExclusionListMissing is returned when exclusion mode cannot find the
// category's known-bad list. There is no fallback to an unfiltered result.
var ErrExclusionListMissing = errors.New("known-bad list not found")

// Locator recursively finds movie files for a source. With exclusion
// enabled it also subtracts the externally maintained known-bad list for
// the source's category.
type Locator struct {
	knownBadDir string
	exclude     bool
}

func NewLocator(knownBadDir string, exclude bool) *Locator {
	return &Locator{knownBadDir: knownBadDir, exclude: exclude}
}

// Locate walks src.Dir and collects files whose base name matches
// src.Pattern, in discovery order.
func (l *Locator) Locate(ctx context.Context, src Source) ([]string, error) {
	slog.Debug("Scanning for movies", "dir", src.Dir, "pattern", src.Pattern)

	var matches []string
	err := filepath.WalkDir(src.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		// Matching is case-insensitive so "*.mp4" also picks up MOVIE.MP4.
		ok, err := filepath.Match(strings.ToLower(src.Pattern), strings.ToLower(d.Name()))
		if err != nil {
			return fmt.Errorf("bad pattern %q: %w", src.Pattern, err)
		}
		if ok {
			matches = append(matches, path)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if l.exclude {
		matches, err = l.subtractKnownBad(src.Category, matches)
		if err != nil {
			return nil, err
		}
	}

	slog.Info("Scan completed", "dir", src.Dir, "matches", len(matches))
	return matches, nil
}

// subtractKnownBad drops every path listed in the category's known-bad file.
// The file is whitespace-separated and must exist.
func (l *Locator) subtractKnownBad(category string, matches []string) ([]string, error) {
	listPath := KnownBadPath(l.knownBadDir, category)
	data, err := os.ReadFile(listPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrExclusionListMissing, listPath)
		}
		return nil, fmt.Errorf("failed to read known-bad list %s: %w", listPath, err)
	}

	bad := make(map[string]bool)
	for _, entry := range strings.Fields(string(data)) {
		bad[entry] = true
	}

	var kept []string
	for _, m := range matches {
		if !bad[m] {
			kept = append(kept, m)
		}
	}

	slog.Debug("Applied known-bad exclusions",
		"category", category,
		"listed", len(bad),
		"dropped", len(matches)-len(kept))
	return kept, nil
}

// KnownBadPath is the fixed per-category filename of the read-only exclusion
// list.
func KnownBadPath(dir, category string) string {
	return filepath.Join(dir, "known_bad_"+category+".txt")
}

// ReportPath is the fixed per-category filename the decode filter writes its
// bad-movie report to. A different file from the known-bad list: the report
// is regenerated every run, the list is maintained by hand.
func ReportPath(dir, category string) string {
	return filepath.Join(dir, "bad_movies_"+category+".txt")
}

// ExpandWeights repeats each path weight times. The player shuffles the
// playlist, so repetition raises a source's playback frequency rather than
// its position.
func ExpandWeights(paths []string, weight int) []string {
	if weight <= 1 {
		return paths
	}
	expanded := make([]string, 0, len(paths)*weight)
	for _, p := range paths {
		for i := 0; i < weight; i++ {
			expanded = append(expanded, p)
		}
	}
	return expanded
}
