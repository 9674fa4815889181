package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/pattyshack/tilegen/analyzer/allocator"
	"github.com/pattyshack/tilegen/log"
	"github.com/pattyshack/tilegen/serializer"
	"github.com/pattyshack/tilegen/source"
)

const (
	DefaultLogLevel = "info"
)

var (
	labelPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

type Target struct {
	// Bytes per screen line.
	LineStride int `yaml:"line_stride"`

	// Allow words to be allocated to the index registers.
	IndexTier bool `yaml:"index_tier"`
}

type Allocation struct {
	ReuseThreshold          int `yaml:"reuse_threshold"`
	MaxBruteForceCandidates int `yaml:"max_brute_force_candidates"`
}

type Scan struct {
	Order     serializer.ScanOrder `yaml:"order"`
	Direction serializer.Direction `yaml:"direction"`
	Slice     int                  `yaml:"slice"`
	FlipX     bool                 `yaml:"flip_x"`
}

type Tile struct {
	// Used as the tile's code label.
	Name string `yaml:"name"`

	// Image or pixel map path.  Relative paths are resolved against the
	// config file's directory.
	Source string `yaml:"source"`

	Region source.Region `yaml:"region"`
	Scan   Scan          `yaml:"scan"`
}

type Config struct {
	LogLevel   string     `yaml:"log_level"`
	Target     Target     `yaml:"target"`
	Allocation Allocation `yaml:"allocation"`

	// "#rrggbb" colours in palette index order.
	Palette []string `yaml:"palette"`

	Tiles []Tile `yaml:"tiles"`

	// Directory relative sources are resolved against.
	baseDir string
}

// Load reads and validates the config file.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	config.baseDir = filepath.Dir(path)
	return config, nil
}

// Parse decodes and validates a config.  Relative sources are resolved
// against the working directory.
func Parse(content []byte) (*Config, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)

	config := &Config{}
	err := decoder.Decode(config)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	config.setDefaults()

	err = config.Validate()
	if err != nil {
		return nil, err
	}

	log.Debug(
		log.CLIModule,
		"parsed config",
		"tiles", len(config.Tiles),
		"palette", len(config.Palette))

	return config, nil
}

func (config *Config) setDefaults() {
	if config.LogLevel == "" {
		config.LogLevel = DefaultLogLevel
	}

	if config.Target.LineStride == 0 {
		config.Target.LineStride = serializer.DefaultLineStride
	}

	if config.Allocation.ReuseThreshold == 0 {
		config.Allocation.ReuseThreshold = allocator.DefaultReuseThreshold
	}

	if config.Allocation.MaxBruteForceCandidates == 0 {
		config.Allocation.MaxBruteForceCandidates =
			allocator.DefaultMaxBruteForceCandidates
	}

	for idx := range config.Tiles {
		scan := &config.Tiles[idx].Scan
		if scan.Order == "" {
			scan.Order = serializer.RowMajor
		}
		if scan.Direction == "" {
			scan.Direction = serializer.RightToLeft
		}
	}
}

func (config *Config) Validate() error {
	_, err := log.ParseLevel(config.LogLevel)
	if err != nil {
		return err
	}

	if config.Target.LineStride < 0 {
		return fmt.Errorf("invalid line stride: %d", config.Target.LineStride)
	}

	if config.Allocation.ReuseThreshold < 1 {
		return fmt.Errorf(
			"invalid reuse threshold: %d",
			config.Allocation.ReuseThreshold)
	}

	if config.Allocation.MaxBruteForceCandidates < 1 {
		return fmt.Errorf(
			"invalid max brute force candidates: %d",
			config.Allocation.MaxBruteForceCandidates)
	}

	if len(config.Palette) > 0 {
		_, err := source.ParsePalette(config.Palette)
		if err != nil {
			return err
		}
	}

	if len(config.Tiles) == 0 {
		return fmt.Errorf("no tiles specified")
	}

	names := map[string]struct{}{}
	for idx, tile := range config.Tiles {
		if !labelPattern.MatchString(tile.Name) {
			return fmt.Errorf("tile %d: invalid name %q", idx, tile.Name)
		}

		_, ok := names[tile.Name]
		if ok {
			return fmt.Errorf("duplicate tile name %q", tile.Name)
		}
		names[tile.Name] = struct{}{}

		if tile.Source == "" {
			return fmt.Errorf("tile %s: no source specified", tile.Name)
		}

		err := config.SerializerConfig(tile).Validate()
		if err != nil {
			return fmt.Errorf("tile %s: %w", tile.Name, err)
		}
	}

	return nil
}

// LoadPalette returns nil when no palette is configured.
func (config *Config) LoadPalette() (*source.Palette, error) {
	if len(config.Palette) == 0 {
		return nil, nil
	}
	return source.ParsePalette(config.Palette)
}

func (config *Config) SourcePath(tile Tile) string {
	if filepath.IsAbs(tile.Source) || config.baseDir == "" {
		return tile.Source
	}
	return filepath.Join(config.baseDir, tile.Source)
}

func (config *Config) SerializerConfig(tile Tile) serializer.Config {
	return serializer.Config{
		Order:      tile.Scan.Order,
		Direction:  tile.Scan.Direction,
		Slice:      tile.Scan.Slice,
		LineStride: config.Target.LineStride,
		FlipX:      tile.Scan.FlipX,
	}
}
