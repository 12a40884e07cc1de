package lib

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func createFiles(t *testing.T, root string, names []string) []string {
	t.Helper()
	var paths []string
	for _, name := range names {
		full := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatalf("Failed to create directory: %v", err)
		}
		if err := os.WriteFile(full, []byte("movie data"), 0644); err != nil {
			t.Fatalf("Failed to create file: %v", err)
		}
		paths = append(paths, full)
	}
	return paths
}

func TestLocate(t *testing.T) {
	root := t.TempDir()
	createFiles(t, root, []string{
		"a.mp4",
		"b.mp4",
		"notes.txt",
		"sub/c.mp4",
		"sub/deep/d.mp4",
		"sub/e.avi",
	})

	locator := NewLocator(t.TempDir(), false)
	matches, err := locator.Locate(context.Background(), Source{
		Dir:     root,
		Pattern: "*.mp4",
		Weight:  1,
	})
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}

	if len(matches) != 4 {
		t.Fatalf("Expected 4 matches, got %d: %v", len(matches), matches)
	}
	for _, m := range matches {
		if filepath.Ext(m) != ".mp4" {
			t.Errorf("Non-matching file located: %s", m)
		}
	}
}

func TestLocate_CaseInsensitiveMatch(t *testing.T) {
	root := t.TempDir()
	createFiles(t, root, []string{"UPPER.MP4", "Mixed.Mp4", "lower.mp4", "other.avi"})

	locator := NewLocator(t.TempDir(), false)
	matches, err := locator.Locate(context.Background(), Source{
		Dir:     root,
		Pattern: "*.mp4",
		Weight:  1,
	})
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}

	if len(matches) != 3 {
		t.Errorf("Expected all casings of .mp4 to match, got %d: %v", len(matches), matches)
	}
}

func TestLocate_MissingDirectory(t *testing.T) {
	locator := NewLocator(t.TempDir(), false)
	_, err := locator.Locate(context.Background(), Source{
		Dir:     filepath.Join(t.TempDir(), "gone"),
		Pattern: "*.mp4",
	})
	if err == nil {
		t.Fatal("Expected error for missing directory")
	}
}

func TestLocate_KnownBadExclusion(t *testing.T) {
	root := t.TempDir()
	paths := createFiles(t, root, []string{"good1.mp4", "bad.mp4", "good2.mp4"})

	knownBadDir := t.TempDir()
	listPath := KnownBadPath(knownBadDir, "default")
	if err := os.WriteFile(listPath, []byte(paths[1]+"\n"), 0644); err != nil {
		t.Fatalf("Failed to write known-bad list: %v", err)
	}

	locator := NewLocator(knownBadDir, true)
	src := Source{Dir: root, Pattern: "*.mp4", Category: "default"}
	matches, err := locator.Locate(context.Background(), src)
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}

	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches after exclusion, got %d: %v", len(matches), matches)
	}
	for _, m := range matches {
		if m == paths[1] {
			t.Errorf("Known-bad file survived exclusion: %s", m)
		}
	}

	// The exclusion output plus the known-bad entry must equal the plain
	// match set.
	plain, err := NewLocator(knownBadDir, false).Locate(context.Background(), src)
	if err != nil {
		t.Fatalf("Plain locate failed: %v", err)
	}
	union := make(map[string]bool)
	for _, m := range matches {
		union[m] = true
	}
	union[paths[1]] = true
	if len(union) != len(plain) {
		t.Errorf("Exclusion output union known-bad != plain matches: %d vs %d", len(union), len(plain))
	}
	for _, m := range plain {
		if !union[m] {
			t.Errorf("Plain match %s missing from union", m)
		}
	}
}

func TestLocate_KnownBadPerCategory(t *testing.T) {
	root := t.TempDir()
	paths := createFiles(t, root, []string{"x.mp4"})

	knownBadDir := t.TempDir()
	// The nas category excludes the file; the default category's list is
	// empty, so the same scan keeps it.
	if err := os.WriteFile(KnownBadPath(knownBadDir, "nas"), []byte(paths[0]+"\n"), 0644); err != nil {
		t.Fatalf("Failed to write nas list: %v", err)
	}
	if err := os.WriteFile(KnownBadPath(knownBadDir, "default"), nil, 0644); err != nil {
		t.Fatalf("Failed to write default list: %v", err)
	}

	locator := NewLocator(knownBadDir, true)

	matches, err := locator.Locate(context.Background(), Source{Dir: root, Pattern: "*.mp4", Category: "nas"})
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("Expected nas category to exclude the file, got %v", matches)
	}

	matches, err = locator.Locate(context.Background(), Source{Dir: root, Pattern: "*.mp4", Category: "default"})
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if len(matches) != 1 {
		t.Errorf("Expected default category to keep the file, got %v", matches)
	}
}

func TestLocate_MissingKnownBadList(t *testing.T) {
	root := t.TempDir()
	createFiles(t, root, []string{"a.mp4"})

	locator := NewLocator(t.TempDir(), true)
	_, err := locator.Locate(context.Background(), Source{
		Dir:      root,
		Pattern:  "*.mp4",
		Category: "default",
	})
	if !errors.Is(err, ErrExclusionListMissing) {
		t.Errorf("Expected ErrExclusionListMissing, got %v", err)
	}
}

func TestExpandWeights(t *testing.T) {
	tests := []struct {
		name     string
		paths    []string
		weight   int
		expected []string
	}{
		{
			name:     "weight one is identity",
			paths:    []string{"a", "b"},
			weight:   1,
			expected: []string{"a", "b"},
		},
		{
			name:     "weight duplicates each entry",
			paths:    []string{"a", "b"},
			weight:   3,
			expected: []string{"a", "a", "a", "b", "b", "b"},
		},
		{
			name:     "empty input stays empty",
			paths:    nil,
			weight:   2,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ExpandWeights(tt.paths, tt.weight)
			if len(result) != len(tt.expected) {
				t.Fatalf("Expected %d entries, got %d", len(tt.expected), len(result))
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("Entry %d: expected %s, got %s", i, tt.expected[i], result[i])
				}
			}
		})
	}
}

func TestCategoryFileNames(t *testing.T) {
	if got := KnownBadPath("/lists", "nas"); got != "/lists/known_bad_nas.txt" {
		t.Errorf("Unexpected known-bad path: %s", got)
	}
	if got := ReportPath("/reports", "nas"); got != "/reports/bad_movies_nas.txt" {
		t.Errorf("Unexpected report path: %s", got)
	}
}
