package main

import (
	"fmt"
	"image/png"
	"log"
	"os"

	"github.com/mapflow/coverage/pkg/coverage"
	"github.com/mapflow/coverage/pkg/raster"
)

// band builds a 2x2 band over the given extent.
func band(values []float64, extent [4]float64, dx, dy float64) *raster.Band {
	matrix, err := raster.NewMatrix(values, 2, dx, dy)
	if err != nil {
		log.Fatal(err)
	}
	origin := [2]float64{extent[0] + dx/2, extent[1] + dy/2}
	return raster.NewBand(matrix, extent, origin, -9999, raster.Float64)
}

func main() {
	src := coverage.NewSource(coverage.SourceOptions{})

	// Three spectral bands. The green band covers a shifted extent at a
	// different resolution; the composite aligns all three onto a common
	// grid before styling.
	src.AddBand(band([]float64{50, 100, 0, 25}, [4]float64{0, 0, 20, 20}, 10, 10))
	src.AddBand(band([]float64{10, 30, 60, 90}, [4]float64{0, 0, 40, 40}, 20, 20))
	src.AddBand(band([]float64{200, 0, 100, 50}, [4]float64{0, 0, 20, 20}, 10, 10))

	style := coverage.NewRGB()
	style.SetChannel(coverage.RedChannel, 0)
	style.SetChannel(coverage.GreenChannel, 1)
	style.SetChannel(coverage.BlueChannel, 2)

	// Stretch each channel independently.
	for _, c := range []coverage.ChannelIndex{coverage.RedChannel, coverage.GreenChannel, coverage.BlueChannel} {
		style.SetChannelMin(c, 0)
	}
	style.SetChannelMax(coverage.RedChannel, 100)
	style.SetChannelMax(coverage.GreenChannel, 90)
	style.SetChannelMax(coverage.BlueChannel, 200)
	src.SetStyle(style)

	img := src.GetImage(coverage.Extent{0, 0, 40, 40}, 10, 1, nil)
	if img == nil {
		log.Fatal("nothing to render")
	}

	out, err := os.Create("composite.png")
	if err != nil {
		log.Fatal(err)
	}
	defer out.Close()
	if err := png.Encode(out, img); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Wrote composite.png")
}
