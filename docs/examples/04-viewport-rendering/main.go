package main

import (
	"fmt"
	"log"

	"github.com/mapflow/coverage/pkg/coverage"
	"github.com/mapflow/coverage/pkg/raster"
)

// consoleBackend prints the draw calls a real canvas or GL backend would
// execute.
type consoleBackend struct {
	draws int
}

func (b *consoleBackend) SetFillColor(color [4]uint8) {
	fmt.Printf("  fill rgba(%d, %d, %d, %d)\n", color[0], color[1], color[2], color[3])
}

func (b *consoleBackend) DrawElements(start, end int) {
	fmt.Printf("  draw elements [%d, %d)\n", start, end)
	b.draws++
}

func (b *consoleBackend) ClearDepth() {
	fmt.Println("  clear depth")
}

func main() {
	values := make([]float64, 100)
	for i := range values {
		values[i] = float64(i % 10)
	}
	matrix, err := raster.NewMatrix(values, 10, 10, 10)
	if err != nil {
		log.Fatal(err)
	}
	band := raster.NewBand(matrix,
		[4]float64{0, 0, 100, 100},
		[2]float64{5, 5},
		-9999, raster.Float64)

	src := coverage.NewSource(coverage.SourceOptions{})
	src.AddBand(band)

	style := coverage.NewMonochrome()
	style.SetMin(0)
	style.SetMax(9)
	src.SetStyle(style)

	layer := coverage.NewLayer(coverage.LayerOptions{Source: src})
	renderer := coverage.NewCanvasRenderer(layer)

	// Prepare a frame over the lower-left quarter of the coverage.
	fs := coverage.FrameState{
		Extent:     coverage.Extent{0, 0, 50, 50},
		Resolution: 1,
		PixelRatio: 1,
	}
	batch, ok := renderer.PrepareFrame(fs)
	if !ok {
		log.Fatal("nothing to draw")
	}
	fmt.Printf("Frame 1: %d cells, stroke %g\n", batch.Replay.FeatureCount(), batch.Stroke)

	backend := &consoleBackend{}
	batch.Replay.Replay(backend)
	fmt.Printf("Replayed in %d draw calls\n\n", backend.draws)

	// Panning inside the rendered extent reuses the cached batch; the
	// grid and replay are not rebuilt.
	fs.Extent = coverage.Extent{10, 10, 45, 45}
	cached, _ := renderer.PrepareFrame(fs)
	fmt.Printf("Frame 2 reused cached batch: %v\n", cached == batch)

	// Changing the style invalidates everything.
	style.SetMax(5)
	rebuilt, _ := renderer.PrepareFrame(fs)
	fmt.Printf("Frame 3 rebuilt after style change: %v\n", rebuilt != batch)
	fmt.Printf("Grid rebuilds so far: %d\n", renderer.Rebuilds())
}
