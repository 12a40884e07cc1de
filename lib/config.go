package lib

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultCategory is used for sources that do not name a category.
const DefaultCategory = "default"

// ErrConfigLengthMismatch is returned when the parallel source lists cannot
// be zipped pairwise.
var ErrConfigLengthMismatch = errors.New("source lists must be the same length")

// DirectoryList is a YAML sequence of directory paths whose items may be
// null. A plain []string silently drops null items on decode, which would
// shift every later entry out of its pattern/weight slot; here null decodes
// to an empty string and keeps its place.
type DirectoryList []string

func (d *DirectoryList) UnmarshalYAML(value *yaml.Node) error {
	if value.Tag == "!!null" {
		*d = nil
		return nil
	}
	if value.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: directories must be a sequence", value.Line)
	}
	dirs := make([]string, 0, len(value.Content))
	for _, item := range value.Content {
		if item.Tag == "!!null" {
			dirs = append(dirs, "")
			continue
		}
		var dir string
		if err := item.Decode(&dir); err != nil {
			return err
		}
		dirs = append(dirs, dir)
	}
	*d = dirs
	return nil
}

// Config holds everything a run needs. Directories, Patterns, Weights and
// Categories are parallel lists describing the movie sources; a null (empty)
// directory entry is skipped downstream but still counts for length
// validation.
type Config struct {
	Directories      DirectoryList `yaml:"directories"`
	Patterns         []string      `yaml:"patterns"`
	Weights          []int         `yaml:"weights"`
	Categories       []string      `yaml:"categories"`
	RequiredPrograms []string      `yaml:"required_programs"`
	MountChecks      []string      `yaml:"mount_checks"`
	Playlist         string        `yaml:"playlist"`
	PlaybackRate     float64       `yaml:"playback_rate"`
	KnownBadDir      string        `yaml:"known_bad_dir"`
	ReportDir        string        `yaml:"report_dir"`
}

// Source is one zipped (directory, pattern, weight, category) entry.
// Weight is the number of times each matched path is repeated in the
// playlist, raising how often the player's shuffle picks that source.
type Source struct {
	Dir      string
	Pattern  string
	Weight   int
	Category string
}

// LoadConfig reads and validates a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Playlist == "" {
		c.Playlist = "playlist.m3u"
	}
	if c.KnownBadDir == "" {
		c.KnownBadDir = "."
	}
	if c.ReportDir == "" {
		c.ReportDir = "."
	}
	if len(c.Categories) == 0 && len(c.Directories) > 0 {
		c.Categories = make([]string, len(c.Directories))
	}
	for i, category := range c.Categories {
		if category == "" {
			c.Categories[i] = DefaultCategory
		}
	}
}

// Validate enforces the strict pairwise iteration over the source lists and
// the per-source constraints.
func (c *Config) Validate() error {
	n := len(c.Directories)
	if len(c.Patterns) != n || len(c.Weights) != n {
		return fmt.Errorf("%w: %d directories, %d patterns, %d weights",
			ErrConfigLengthMismatch, n, len(c.Patterns), len(c.Weights))
	}
	if len(c.Categories) != n {
		return fmt.Errorf("%w: %d directories, %d categories",
			ErrConfigLengthMismatch, n, len(c.Categories))
	}
	if len(c.RequiredPrograms) == 0 {
		return errors.New("required_programs must name at least the player binary")
	}

	for i, dir := range c.Directories {
		if dir == "" {
			continue
		}
		if c.Patterns[i] == "" {
			return fmt.Errorf("source %d (%s) has an empty pattern", i, dir)
		}
		if c.Weights[i] < 1 {
			return fmt.Errorf("source %d (%s) has weight %d, must be at least 1", i, dir, c.Weights[i])
		}
	}

	return nil
}

// Sources zips the parallel lists into concrete entries, skipping null
// directories and expanding a leading ~ to the user home.
func (c *Config) Sources() []Source {
	var sources []Source
	for i, dir := range c.Directories {
		if dir == "" {
			continue
		}
		category := DefaultCategory
		if i < len(c.Categories) && c.Categories[i] != "" {
			category = c.Categories[i]
		}
		sources = append(sources, Source{
			Dir:      expandHome(dir),
			Pattern:  c.Patterns[i],
			Weight:   c.Weights[i],
			Category: category,
		})
	}
	return sources
}

// PlayerBinary is the program used for playback: the first required program.
func (c *Config) PlayerBinary() string {
	return c.RequiredPrograms[0]
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
