package lib

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
)

// Fatal environment preconditions. The run never proceeds past a failed
// check; the operator has to fix the machine (install the program, mount the
// share) and rerun.
var (
	ErrProgramMissing       = errors.New("required program not found on PATH")
	ErrDirectoryUnavailable = errors.New("configured directory not found")
)

// CheckEnvironment verifies that every required program (plus any extras,
// e.g. ffmpeg when the decode filter is enabled) resolves on PATH and that
// every configured source directory and mount check exists. It fails on the
// first missing item.
func CheckEnvironment(cfg *Config, extraPrograms ...string) error {
	programs := append(append([]string{}, cfg.RequiredPrograms...), extraPrograms...)
	for _, program := range programs {
		if _, err := exec.LookPath(program); err != nil {
			return fmt.Errorf("%w: %s", ErrProgramMissing, program)
		}
		slog.Debug("Program found", "program", program)
	}

	var dirs []string
	for _, src := range cfg.Sources() {
		dirs = append(dirs, src.Dir)
	}
	for _, dir := range cfg.MountChecks {
		dirs = append(dirs, expandHome(dir))
	}
	for _, dir := range dirs {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("%w: %s", ErrDirectoryUnavailable, dir)
		}
		slog.Debug("Directory reachable", "dir", dir)
	}

	return nil
}
