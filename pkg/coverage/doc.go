// Package coverage renders continuous raster coverage data (gridded
// elevation, satellite imagery, model output) as styled images or as
// spatially indexed cell geometry ready for GPU drawing.
//
// This package is designed for map rendering applications. Raw numeric
// grids become bands with statistics, styles convert band values to
// colors, and renderers turn styled grids into draw batches that are
// cached across frames and only rebuilt when the data, style or view
// genuinely changes.
//
// # Basic Usage
//
//	matrix, err := raster.NewMatrix(values, cols, 10, 10)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	band := raster.NewBand(matrix, extent, origin, -9999, raster.Float64)
//
//	src := coverage.NewSource(coverage.SourceOptions{
//	    Type:       coverage.Rectangular,
//	    Projection: &coverage.Projection{Code: "EPSG:3857"},
//	    Bands:      []*raster.Band{band},
//	})
//
//	style := coverage.NewPseudocolor()
//	style.SetStartColor(coverage.Color{0, 0, 255})
//	style.SetEndColor(coverage.Color{255, 0, 0})
//	src.SetStyle(style)
//
//	img := src.GetImage(viewExtent, resolution, 1, viewProjection)
//
// # Rendering Workflow
//
// For vector cell rendering, a renderer prepares one draw batch per
// frame, querying an R-tree of styled cell polygons for the viewport and
// grouping draw calls by fill style:
//
//	layer := coverage.NewLayer(coverage.LayerOptions{Source: src})
//	renderer := coverage.NewGPURenderer(layer)
//
//	batch, ok := renderer.PrepareFrame(frameState)
//	if ok {
//	    batch.Replay.Replay(backend) // one draw call per style group
//	}
//
// Consecutive frames with an unchanged style checksum, source revision,
// resolution and a contained extent reuse the cached batch without
// touching the spatial index.
//
// # Styles
//
// Three style engines are provided: Monochrome (linear grey stretch),
// Pseudocolor (interpolated or categorized color ramps with breakpoints)
// and RGB (three-band composite). Styles fingerprint their parameters
// into a checksum that renderers use as the cache-invalidation key.
//
// # Cell Shapes
//
// Coverages tile as rectangles, hexagons, or custom patterns describing
// per-column and per-row translation and rotation rules; custom cell
// polygons are triangulated for the GPU path.
package coverage
