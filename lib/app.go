package lib

import (
	"context"
	"fmt"
	"log/slog"
)

// App wires the pipeline together: validate environment, locate movies,
// optionally filter them, write the playlist, launch the player. One linear
// pass per invocation; any stage failure aborts the run.
type App struct {
	Config          *Config
	Verify          bool // enable the one-frame decode filter
	MinSizeMB       int  // size filter threshold; 0 disables
	ExcludeKnownBad bool // subtract per-category known-bad lists
	NoLaunch        bool // stop after writing the playlist

	launcher *Launcher // tests inject a stub; nil builds the real one
}

// batch keeps a source's matches next to its weight and category so the
// filters and the weight expansion know where each file came from.
type batch struct {
	source  Source
	matches []string
}

func (a *App) Run(ctx context.Context) error {
	cfg := a.Config
	slog.Debug("Application starting", "config", fmt.Sprintf("%+v", cfg))

	if err := timed("validate environment", func() error {
		var extra []string
		if a.Verify {
			extra = append(extra, "ffmpeg")
		}
		return CheckEnvironment(cfg, extra...)
	}); err != nil {
		return err
	}

	var batches []batch
	if err := timed("locate movies", func() error {
		locator := NewLocator(cfg.KnownBadDir, a.ExcludeKnownBad)
		for _, src := range cfg.Sources() {
			matches, err := locator.Locate(ctx, src)
			if err != nil {
				return fmt.Errorf("failed to scan %s: %w", src.Dir, err)
			}
			batches = append(batches, batch{source: src, matches: matches})
		}
		return nil
	}); err != nil {
		return err
	}

	if a.MinSizeMB > 0 {
		if err := timed("size filter", func() error {
			for i := range batches {
				kept, err := FilterBySize(batches[i].matches, a.MinSizeMB)
				if err != nil {
					return err
				}
				batches[i].matches = kept
			}
			return nil
		}); err != nil {
			return err
		}
	}

	if a.Verify {
		if err := timed("decode filter", func() error {
			checker := NewDecodeChecker(cfg.ReportDir)
			for i := range batches {
				kept, err := checker.Filter(ctx, batches[i].source.Category, batches[i].matches)
				if err != nil {
					return err
				}
				batches[i].matches = kept
			}
			return checker.WriteReports()
		}); err != nil {
			return err
		}
	}

	var playlist []string
	for _, b := range batches {
		playlist = append(playlist, ExpandWeights(b.matches, b.source.Weight)...)
	}

	if err := timed("write playlist", func() error {
		return WritePlaylist(cfg.Playlist, playlist)
	}); err != nil {
		return err
	}

	// An empty run still rewrote the playlist above, so a stale one from a
	// prior run cannot be replayed.
	if len(playlist) == 0 {
		slog.Warn("No movies found, nothing to play")
		return nil
	}

	if a.NoLaunch {
		slog.Info("Playlist ready", "path", cfg.Playlist, "entries", len(playlist))
		return nil
	}

	return timed("launch player", func() error {
		launcher := a.launcher
		if launcher == nil {
			launcher = NewLauncher(cfg.PlayerBinary(), cfg.PlaybackRate)
		}
		return launcher.Launch(cfg.Playlist)
	})
}
