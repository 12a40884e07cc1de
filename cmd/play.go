package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"movienight/lib"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Scan for movies, write the playlist, and launch the player",
	Long: `Run the full pipeline: validate that the required programs and
directories are available, recursively collect matching movie files from every
configured source, apply the optional filters, write the playlist, and launch
the configured player against it.

The player is started fire-and-forget: playback outlives this process.`,
	RunE: runPlay,
}

var (
	playVerify    bool
	playMinSizeMB int
	playExclude   bool
	playRate      float64
)

func init() {
	playCmd.Flags().BoolVar(&playVerify, "verify", false, "Decode one frame of every candidate and drop files that fail (slow)")
	playCmd.Flags().IntVar(&playMinSizeMB, "min-size-mb", 0, "Drop files smaller than this many megabytes (0 disables)")
	playCmd.Flags().BoolVar(&playExclude, "exclude-known-bad", false, "Subtract each category's known-bad list from the matches")
	playCmd.Flags().Float64Var(&playRate, "rate", 0, "Playback rate passed to the player (overrides the config)")

	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	setupLogging(verbose)

	cfg, err := lib.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("rate") {
		cfg.PlaybackRate = playRate
	}

	slog.Info("Starting movie night",
		"sources", len(cfg.Sources()),
		"player", cfg.PlayerBinary(),
		"verify", playVerify)

	app := &lib.App{
		Config:          cfg,
		Verify:          playVerify,
		MinSizeMB:       playMinSizeMB,
		ExcludeKnownBad: playExclude,
	}
	return app.Run(context.Background())
}
