package main

import (
	"fmt"
	"log"

	"github.com/mapflow/coverage/pkg/coverage"
	"github.com/mapflow/coverage/pkg/raster"
)

// pickBackend is a minimal backend for hit detection; a real renderer
// would draw each feature into an offscreen pick buffer and read the
// pixel back.
type pickBackend struct{}

func (pickBackend) SetFillColor([4]uint8) {}
func (pickBackend) DrawElements(int, int) {}
func (pickBackend) ClearDepth()           {}

func main() {
	values := []float64{10, 20, 30, 40}
	matrix, err := raster.NewMatrix(values, 2, 10, 10)
	if err != nil {
		log.Fatal(err)
	}
	band := raster.NewBand(matrix,
		[4]float64{0, 0, 20, 20},
		[2]float64{5, 5},
		-9999, raster.Float64)

	src := coverage.NewSource(coverage.SourceOptions{})
	src.AddBand(band)

	style := coverage.NewMonochrome()
	style.SetMin(0)
	style.SetMax(40)
	src.SetStyle(style)

	layer := coverage.NewLayer(coverage.LayerOptions{Source: src})
	batch, ok := coverage.NewCanvasRenderer(layer).PrepareFrame(coverage.FrameState{
		Extent:     coverage.Extent{0, 0, 20, 20},
		Resolution: 1,
		PixelRatio: 1,
	})
	if !ok {
		log.Fatal("nothing to draw")
	}

	// Probe a point near the top-right cell. Features are redrawn one by
	// one from top to bottom; iteration stops at the first callback that
	// returns a result.
	probe := coverage.Extent{14, 14, 16, 16}
	visited := 0
	result := batch.Replay.DrawHitDetectionOneByOne(pickBackend{},
		func(f coverage.Feature) interface{} {
			visited++
			if f.Extent().Intersects(probe) {
				return f.Extent()
			}
			return nil
		}, &probe)

	if result == nil {
		fmt.Println("No cell at probe point")
		return
	}
	fmt.Printf("Hit cell with extent %v after %d candidate(s)\n", result, visited)
}
