package lib

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/schollz/progressbar/v3"
)

const bytesPerMB = 1024 * 1024

// DefaultMinSizeMB is the classic size-filter threshold.
const DefaultMinSizeMB = 1

// FilterBySize retains files whose size is at least minMB megabytes. The
// boundary is inclusive: a file of exactly the threshold survives.
func FilterBySize(paths []string, minMB int) ([]string, error) {
	threshold := int64(minMB) * bytesPerMB

	var kept []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		if info.Size() >= threshold {
			kept = append(kept, path)
		} else {
			slog.Debug("Dropping undersized file", "path", path, "size", info.Size())
		}
	}

	slog.Info("Size filter completed", "kept", len(kept), "dropped", len(paths)-len(kept))
	return kept, nil
}

// DecodeChecker classifies files by decoding a single frame with ffmpeg.
// This is expensive (a real decode per file), which is why it sits behind
// the --verify flag. Failures accumulate per category until WriteReports.
type DecodeChecker struct {
	reportDir string
	bad       map[string][]string

	// decode is swapped in tests; the default shells out to ffmpeg.
	decode func(ctx context.Context, path string) error
}

func NewDecodeChecker(reportDir string) *DecodeChecker {
	return &DecodeChecker{
		reportDir: reportDir,
		bad:       make(map[string][]string),
		decode:    decodeOneFrame,
	}
}

// Filter decodes one frame from every candidate and returns the files that
// decoded cleanly. Failures are recorded under the category for WriteReports.
func (dc *DecodeChecker) Filter(ctx context.Context, category string, paths []string) ([]string, error) {
	if _, seen := dc.bad[category]; !seen {
		dc.bad[category] = nil // the category ran, so its report gets rewritten
	}
	if len(paths) == 0 {
		return nil, nil
	}

	slog.Info("Verifying files decode", "category", category, "files", len(paths))
	bar := progressbar.NewOptions(len(paths),
		progressbar.OptionSetDescription("Verifying files"),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(50),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	var kept []string
	for _, path := range paths {
		err := dc.decode(ctx, path)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if err != nil {
			slog.Warn("File failed decode check", "path", path, "error", err)
			dc.bad[category] = append(dc.bad[category], path)
		} else {
			kept = append(kept, path)
		}
		bar.Add(1)
	}
	bar.Finish()

	slog.Info("Decode filter completed",
		"category", category,
		"kept", len(kept),
		"bad", len(paths)-len(kept))
	return kept, nil
}

// WriteReports rewrites the bad-movie report of every category that went
// through Filter, truncating any report from a previous run. Categories with
// no failures get an empty report.
func (dc *DecodeChecker) WriteReports() error {
	for category, bad := range dc.bad {
		path := ReportPath(dc.reportDir, category)
		if err := os.WriteFile(path, []byte(strings.Join(bad, "\n")), 0644); err != nil {
			return fmt.Errorf("failed to write bad-movie report %s: %w", path, err)
		}
		slog.Info("Wrote bad-movie report", "path", path, "entries", len(bad))
	}
	return nil
}

// decodeOneFrame asks ffmpeg to decode exactly one video frame and discard
// it. A file that cannot be opened or whose first frame cannot be read makes
// ffmpeg exit nonzero.
func decodeOneFrame(ctx context.Context, path string) error {
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-v", "error",
		"-nostdin",
		"-i", path,
		"-frames:v", "1",
		"-f", "null", "-")

	output, err := cmd.CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(output))
		if msg == "" {
			return fmt.Errorf("ffmpeg decode failed: %w", err)
		}
		return fmt.Errorf("ffmpeg decode failed: %w: %s", err, msg)
	}
	return nil
}
