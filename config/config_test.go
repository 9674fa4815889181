package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pattyshack/tilegen/serializer"
	"github.com/pattyshack/tilegen/source"
)

const fullConfig = `
log_level: debug
target:
  line_stride: 64
  index_tier: true
allocation:
  reuse_threshold: 3
  max_brute_force_candidates: 6
palette: ["#000000", "#ff0000"]
tiles:
  - name: grass
    source: sheet.png
    region: {x: 8, y: 0, width: 8, height: 8}
    scan: {order: interleaved, direction: left_to_right, slice: -1, flip_x: true}
  - name: rock
    source: /abs/rock.pix
`

func TestParse(t *testing.T) {
	config, err := Parse([]byte(fullConfig))
	require.NoError(t, err)

	assert.Equal(t, "debug", config.LogLevel)
	assert.Equal(t, Target{LineStride: 64, IndexTier: true}, config.Target)
	assert.Equal(
		t,
		Allocation{ReuseThreshold: 3, MaxBruteForceCandidates: 6},
		config.Allocation)

	require.Len(t, config.Tiles, 2)
	grass := config.Tiles[0]
	assert.Equal(t, source.Region{X: 8, Width: 8, Height: 8}, grass.Region)
	assert.Equal(
		t,
		serializer.Config{
			Order:      serializer.Interleaved,
			Direction:  serializer.LeftToRight,
			Slice:      -1,
			LineStride: 64,
			FlipX:      true,
		},
		config.SerializerConfig(grass))
	assert.Equal(t, "sheet.png", config.SourcePath(grass))

	rock := config.Tiles[1]
	assert.Equal(t, serializer.RowMajor, rock.Scan.Order)
	assert.Equal(t, serializer.RightToLeft, rock.Scan.Direction)

	palette, err := config.LoadPalette()
	require.NoError(t, err)
	assert.Equal(t, 2, palette.Len())
}

func TestDefaults(t *testing.T) {
	config, err := Parse([]byte("tiles: [{name: a, source: a.pix}]"))
	require.NoError(t, err)

	assert.Equal(t, DefaultLogLevel, config.LogLevel)
	assert.Equal(t, serializer.DefaultLineStride, config.Target.LineStride)
	assert.False(t, config.Target.IndexTier)
	assert.Equal(t, 2, config.Allocation.ReuseThreshold)
	assert.Equal(t, 10, config.Allocation.MaxBruteForceCandidates)

	palette, err := config.LoadPalette()
	require.NoError(t, err)
	assert.Nil(t, palette)
}

func TestInvalidConfigs(t *testing.T) {
	for _, content := range []string{
		"",
		"tiles: []",
		"bogus: 1\ntiles: [{name: a, source: a.pix}]",
		"log_level: loud\ntiles: [{name: a, source: a.pix}]",
		"allocation: {reuse_threshold: -1}\ntiles: [{name: a, source: a.pix}]",
		"palette: ['#12']\ntiles: [{name: a, source: a.pix}]",
		"tiles: [{name: 1a, source: a.pix}]",
		"tiles: [{name: a}]",
		"tiles: [{name: a, source: a.pix}, {name: a, source: b.pix}]",
		"tiles: [{name: a, source: a.pix, scan: {order: zigzag}}]",
		"tiles: [{name: a, source: a.pix, scan: {direction: up}}]",
		"tiles: {name: a}",
	} {
		_, err := Parse([]byte(content))
		assert.Error(t, err, content)
	}
}

func TestLoadResolvesRelativeSources(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tiles.yaml")
	require.NoError(
		t,
		os.WriteFile(path, []byte(fullConfig), 0644))

	config, err := Load(path)
	require.NoError(t, err)

	assert.Equal(
		t,
		filepath.Join(dir, "sheet.png"),
		config.SourcePath(config.Tiles[0]))
	assert.Equal(t, "/abs/rock.pix", config.SourcePath(config.Tiles[1]))

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
