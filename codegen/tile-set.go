package codegen

import (
	"github.com/pattyshack/tilegen/analyzer"
	arch "github.com/pattyshack/tilegen/architecture"
	"github.com/pattyshack/tilegen/log"
)

const (
	// Tile routines start on even addresses.
	TileAlignment = 2
)

type Tile struct {
	Name       string
	Operations []arch.Operation
}

func NewTile(unit *analyzer.CompilationUnit) Tile {
	return Tile{
		Name:       unit.Name,
		Operations: unit.Operations,
	}
}

// TileSet wraps each tile's operations into a callable routine.
func TileSet(tiles []Tile) []arch.Operation {
	result := []arch.Operation{arch.NewAlignOp(TileAlignment)}
	for _, tile := range tiles {
		result = append(result, arch.NewLabelOp(tile.Name))
		result = append(result, tile.Operations...)
		result = append(
			result,
			arch.NewReturnOp(),
			arch.NewBlankLineOp())

		log.Debug(
			log.CodegenModule,
			"generated tile",
			"tile", tile.Name,
			"operations", len(tile.Operations),
			"cost", arch.TotalCost(tile.Operations))
	}

	return result
}
