package lib

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// WritePlaylist replaces the playlist file with the newline-joined entries.
// Any prior playlist is removed first so stale content never survives a run.
func WritePlaylist(path string, entries []string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove existing playlist %s: %w", path, err)
	}

	slog.Info("Writing playlist", "path", path, "entries", len(entries))
	if err := os.WriteFile(path, []byte(strings.Join(entries, "\n")), 0644); err != nil {
		return fmt.Errorf("failed to write playlist %s: %w", path, err)
	}
	return nil
}
