package lib

import (
	"log/slog"
	"time"
)

// timed runs one pipeline stage and logs how long it took. Errors propagate
// untouched and skip the timing line, so failures stay the last thing logged.
func timed(stage string, fn func() error) error {
	start := time.Now()
	if err := fn(); err != nil {
		return err
	}
	slog.Info("Stage completed", "stage", stage, "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}
