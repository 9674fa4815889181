package main

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/pattyshack/tilegen/analyzer"
	"github.com/pattyshack/tilegen/config"
	"github.com/pattyshack/tilegen/log"
	"github.com/pattyshack/tilegen/platform"
	"github.com/pattyshack/tilegen/platform/z80"
	"github.com/pattyshack/tilegen/serializer"
	"github.com/pattyshack/tilegen/source"
)

type tileJob struct {
	config.Tile
	serializer *serializer.Serializer
}

type build struct {
	config   *config.Config
	platform platform.Platform
	jobs     []tileJob
}

// newBuild loads every selected tile's pixels.  An empty
// selection selects all tiles.
func newBuild(
	cfg *config.Config,
	selected []string,
	indexTier bool,
) (
	*build,
	error,
) {
	if indexTier {
		cfg.Target.IndexTier = true
	}

	palette, err := cfg.LoadPalette()
	if err != nil {
		return nil, err
	}

	wanted := map[string]struct{}{}
	for _, name := range selected {
		wanted[name] = struct{}{}
	}

	result := &build{
		config:   cfg,
		platform: z80.NewPlatform(cfg.Target.LineStride),
	}

	for _, tile := range cfg.Tiles {
		if len(wanted) > 0 {
			_, ok := wanted[tile.Name]
			if !ok {
				continue
			}
			delete(wanted, tile.Name)
		}

		grid, err := source.LoadTile(cfg.SourcePath(tile), tile.Region, palette)
		if err != nil {
			return nil, fmt.Errorf("tile %s: %w", tile.Name, err)
		}

		scan := cfg.SerializerConfig(tile)
		scan.LineStride = result.platform.ScreenLineStride()

		log.Debug(
			log.CLIModule,
			"loaded tile",
			"tile", tile.Name,
			"width", grid.Width(),
			"height", grid.Height())

		result.jobs = append(
			result.jobs,
			tileJob{
				Tile:       tile,
				serializer: serializer.NewSerializer(grid, scan),
			})
	}

	if len(wanted) > 0 {
		unknown := []string{}
		for name := range wanted {
			unknown = append(unknown, name)
		}
		slices.Sort(unknown)
		return nil, fmt.Errorf("unknown tiles: %s", strings.Join(unknown, ", "))
	}

	return result, nil
}

func (build *build) options() analyzer.Options {
	return analyzer.Options{
		Platform:                build.platform,
		IndexTier:               build.config.Target.IndexTier,
		ReuseThreshold:          build.config.Allocation.ReuseThreshold,
		MaxBruteForceCandidates: build.config.Allocation.MaxBruteForceCandidates,
	}
}

func (build *build) compile() []*analyzer.CompilationUnit {
	units := make([]*analyzer.CompilationUnit, 0, len(build.jobs))
	for _, job := range build.jobs {
		unit := analyzer.Compile(
			job.Name,
			job.serializer,
			job.Scan.Direction,
			build.options())

		log.Info(
			log.CLIModule,
			"compiled tile",
			"tile", unit.Name,
			"operations", len(unit.Operations),
			"cost", unit.Cost())

		units = append(units, unit)
	}
	return units
}
