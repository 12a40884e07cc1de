package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"movienight/lib"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Write the playlist without launching the player",
	Long: `Run the pipeline up to and including the playlist write, then stop.
Useful for inspecting what a play run would queue up, or for feeding the
playlist to a player by hand.`,
	RunE: runScan,
}

var (
	scanVerify    bool
	scanMinSizeMB int
	scanExclude   bool
)

func init() {
	scanCmd.Flags().BoolVar(&scanVerify, "verify", false, "Decode one frame of every candidate and drop files that fail (slow)")
	scanCmd.Flags().IntVar(&scanMinSizeMB, "min-size-mb", 0, "Drop files smaller than this many megabytes (0 disables)")
	scanCmd.Flags().BoolVar(&scanExclude, "exclude-known-bad", false, "Subtract each category's known-bad list from the matches")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	setupLogging(verbose)

	cfg, err := lib.LoadConfig(configPath)
	if err != nil {
		return err
	}

	slog.Info("Scanning for movies", "sources", len(cfg.Sources()))

	app := &lib.App{
		Config:          cfg,
		Verify:          scanVerify,
		MinSizeMB:       scanMinSizeMB,
		ExcludeKnownBad: scanExclude,
		NoLaunch:        true,
	}
	return app.Run(context.Background())
}
