package lib

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// ErrPlaylistMissing is returned when playback is attempted before a
// playlist exists.
var ErrPlaylistMissing = errors.New("playlist not found")

// Launcher starts the external player against a playlist. The argument list
// is always an explicit argv, never a shell string, so path contents cannot
// inject commands.
type Launcher struct {
	Binary string
	Rate   float64 // playback rate; 0 omits the --rate flag

	// start is swapped in tests; the default spawns the real process.
	start func(name string, args ...string) error
}

func NewLauncher(binary string, rate float64) *Launcher {
	return &Launcher{Binary: binary, Rate: rate, start: startDetached}
}

// Launch fires the player at the playlist and does not wait for it: no exit
// code, no timeout, no retry. Playback outlives this process.
func (l *Launcher) Launch(playlist string) error {
	if _, err := os.Stat(playlist); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrPlaylistMissing, playlist)
		}
		return fmt.Errorf("failed to stat playlist %s: %w", playlist, err)
	}

	args := l.args(playlist)
	slog.Info("Launching player", "binary", l.Binary, "args", strings.Join(args, " "))
	if err := l.start(l.Binary, args...); err != nil {
		return fmt.Errorf("failed to launch %s: %w", l.Binary, err)
	}
	return nil
}

func (l *Launcher) args(playlist string) []string {
	var args []string
	if l.Rate > 0 {
		args = append(args, "--rate", strconv.FormatFloat(l.Rate, 'f', -1, 64))
	}
	return append(args, "--fullscreen", "--random", "--loop", playlist)
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
