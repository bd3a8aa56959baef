package main

import (
	"fmt"
	"log"

	"github.com/mapflow/coverage/pkg/coverage"
	"github.com/mapflow/coverage/pkg/raster"
)

func prepare(typ coverage.CoverageType, pattern *coverage.Pattern) *coverage.DrawBatch {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}
	matrix, err := raster.NewMatrix(values, 3, 10, 10)
	if err != nil {
		log.Fatal(err)
	}
	band := raster.NewBand(matrix,
		[4]float64{0, 0, 30, 30},
		[2]float64{5, 5},
		-9999, raster.Float64)

	src := coverage.NewSource(coverage.SourceOptions{Type: typ, Pattern: pattern})
	src.AddBand(band)

	style := coverage.NewMonochrome()
	style.SetMin(0)
	style.SetMax(9)
	src.SetStyle(style)

	layer := coverage.NewLayer(coverage.LayerOptions{Source: src})
	batch, ok := coverage.NewGPURenderer(layer).PrepareFrame(coverage.FrameState{
		Extent:     coverage.Extent{0, 0, 40, 40},
		Resolution: 1,
		PixelRatio: 1,
	})
	if !ok {
		log.Fatal("nothing to draw")
	}
	return batch
}

func main() {
	// Hexagonal cells: rows pack at 3/4 pitch, odd rows shift right by
	// half a cell. Non-rectangular cells get a default 1px stroke to
	// hide the seams between neighbors.
	hex := prepare(coverage.Hexagonal, nil)
	fmt.Printf("Hexagonal: %d cells, %d vertices each, stroke %g\n",
		hex.Replay.FeatureCount(), hex.VertexCount, hex.Stroke)

	// A custom brick tiling: unit squares where every odd row shifts
	// right by half a cell.
	brick := &coverage.Pattern{
		Shape: []float64{-0.5, -0.5, 0.5, -0.5, 0.5, 0.5, -0.5, 0.5},
		Column: coverage.PatternTransform{
			Translate: [2]float64{1, 0},
		},
		Row: coverage.PatternTransform{
			Translate: [2]float64{0, 1},
			Offset:    0.5,
		},
	}
	batch := prepare(coverage.Custom, brick)
	fmt.Printf("Brick: %d cells, %d vertices each\n",
		batch.Replay.FeatureCount(), batch.VertexCount)

	// GPU batches carry the per-cell triangle index template so callers
	// can instance the cell geometry.
	fmt.Printf("Cell template: %v\n", batch.CellIndexes)
	fmt.Printf("Vertex buffer: %d components, index buffer: %d entries\n",
		len(batch.Replay.Vertices()), len(batch.Replay.Indexes()))
}
