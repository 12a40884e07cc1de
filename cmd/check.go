package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"movienight/lib"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify required programs and directories are available",
	Long: `Validate the environment without touching any files: every required
program must resolve on PATH and every configured source directory and mount
check must exist. Exits non-zero on the first missing item.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	setupLogging(verbose)

	cfg, err := lib.LoadConfig(configPath)
	if err != nil {
		return err
	}

	if err := lib.CheckEnvironment(cfg); err != nil {
		return err
	}

	slog.Info("Environment OK",
		"programs", len(cfg.RequiredPrograms),
		"sources", len(cfg.Sources()),
		"mounts", len(cfg.MountChecks))
	return nil
}
