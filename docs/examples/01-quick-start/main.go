package main

import (
	"fmt"
	"image/png"
	"log"
	"os"

	"github.com/mapflow/coverage/pkg/coverage"
	"github.com/mapflow/coverage/pkg/raster"
)

func main() {
	// Build a small elevation grid: 4 columns by 4 rows, 100m cells.
	// -9999 marks cells without data.
	values := []float64{
		12, 25, 38, 51,
		18, 42, 67, 80,
		-9999, 55, 71, 93,
		30, 48, -9999, 100,
	}
	matrix, err := raster.NewMatrix(values, 4, 100, 100)
	if err != nil {
		log.Fatal(err)
	}
	band := raster.NewBand(matrix,
		[4]float64{0, 0, 400, 400}, // extent
		[2]float64{50, 50},         // first cell centroid
		-9999, raster.Float64)

	// Create the coverage source
	src := coverage.NewSource(coverage.SourceOptions{})
	src.AddBand(band)

	// Style values as a grey ramp
	style := coverage.NewMonochrome()
	style.SetMin(0)
	style.SetMax(100)
	src.SetStyle(style)

	// Print band statistics
	stats := band.Statistics()
	fmt.Printf("Cells: %d\n", stats.Count)
	fmt.Printf("Range: %.1f to %.1f\n", stats.Min, stats.Max)
	fmt.Printf("Mean: %.1f\n", stats.Sum/float64(stats.Count))

	// Render the full extent at one pixel per cell
	img := src.GetImage(coverage.Extent{0, 0, 400, 400}, 100, 1, nil)
	if img == nil {
		log.Fatal("nothing to render")
	}

	out, err := os.Create("coverage.png")
	if err != nil {
		log.Fatal(err)
	}
	defer out.Close()
	if err := png.Encode(out, img); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Wrote coverage.png")
}
