package main

import (
	"fmt"
	"image/png"
	"log"
	"os"

	"github.com/mapflow/coverage/pkg/coverage"
	"github.com/mapflow/coverage/pkg/raster"
)

func render(src *coverage.Source, name string) error {
	img := src.GetImage(coverage.Extent{0, 0, 500, 100}, 1, 1, nil)
	if img == nil {
		return fmt.Errorf("nothing to render")
	}
	out, err := os.Create(name)
	if err != nil {
		return err
	}
	defer out.Close()
	return png.Encode(out, img)
}

func main() {
	// A single row sweeping 0..100 to show off the ramp.
	values := make([]float64, 100)
	for i := range values {
		values[i] = float64(i + 1)
	}
	matrix, err := raster.NewMatrix(values, 100, 5, 100)
	if err != nil {
		log.Fatal(err)
	}
	band := raster.NewBand(matrix,
		[4]float64{0, 0, 500, 100},
		[2]float64{2.5, 50},
		-9999, raster.Float64)

	src := coverage.NewSource(coverage.SourceOptions{})
	src.AddBand(band)

	// A blue-to-red temperature ramp with a white anchor in the middle.
	// Breakpoints may be added in any order.
	style := coverage.NewPseudocolor()
	style.SetMin(0)
	style.SetMax(100)
	style.SetStartColor(coverage.Color{0, 0, 255})
	style.SetEndColor(coverage.Color{255, 0, 0})
	style.AddBreakpoint(50, coverage.Color{255, 255, 255})
	src.SetStyle(style)

	if err := render(src, "interpolated.png"); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Wrote interpolated.png")

	// The same ramp in categorized mode: each interval gets the flat
	// color of its lower bound.
	style.SetMode(coverage.Categorized)
	if err := render(src, "categorized.png"); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Wrote categorized.png")

	fmt.Printf("Style checksum: %s\n", style.Checksum())
}
