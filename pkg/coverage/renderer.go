package coverage

import (
	"math"

	"github.com/mapflow/coverage/internal/metrics"
)

// DrawBatch is the per-frame output of a renderer: the accumulated
// polygon replay for the matched cells, the cosmetic stroke width, and —
// on the GPU path — the per-cell triangulation template.
type DrawBatch struct {
	Replay *PolygonReplay

	// Stroke is the cosmetic cell outline width in pixels.
	Stroke float64

	// VertexCount is the number of polygon vertices per cell, for
	// callers flattening the replay's buffers themselves.
	VertexCount int

	// CellIndexes is the triangle index template of one cell (GPU
	// renderers only).
	CellIndexes []uint32
}

// renderer holds the frame-to-frame cache shared by the canvas and GPU
// variants. The cached grid and batch are owned exclusively by one
// renderer per layer; all mutation happens between frames on the
// rendering goroutine.
type renderer struct {
	layer *Layer
	grid  *grid
	batch *DrawBatch

	// cache keys for the frame short-circuit
	renderedChecksum   string
	renderedRevision   uint64
	renderedResolution float64
	renderedExtent     Extent
	hasRendered        bool

	// filledChecksum tracks the style state FillMissingValues last ran
	// against, so bounds are only filled when the style changed.
	filledChecksum string

	rebuilds int
	gpu      bool
}

// CanvasRenderer prepares coverage draw batches for a 2D canvas backend.
// It additionally widens viewport queries across the antimeridian for
// horizontally wrapping sources.
type CanvasRenderer struct {
	renderer
}

// NewCanvasRenderer creates a canvas renderer for the layer.
func NewCanvasRenderer(layer *Layer) *CanvasRenderer {
	return &CanvasRenderer{renderer{layer: layer}}
}

// GPURenderer prepares coverage draw batches for a GPU backend; batches
// carry the per-cell triangle index template.
type GPURenderer struct {
	renderer
}

// NewGPURenderer creates a GPU renderer for the layer.
func NewGPURenderer(layer *Layer) *GPURenderer {
	return &GPURenderer{renderer{layer: layer, gpu: true}}
}

// PrepareFrame decides what to draw for the frame. It returns the draw
// batch and true when there is something to draw, reusing the cached
// batch whenever the style checksum, source revision, resolution and
// extent containment allow it.
func (r *CanvasRenderer) PrepareFrame(fs FrameState) (*DrawBatch, bool) {
	return r.prepareFrame(fs)
}

// PrepareFrame decides what to draw for the frame. See
// CanvasRenderer.PrepareFrame.
func (r *GPURenderer) PrepareFrame(fs FrameState) (*DrawBatch, bool) {
	return r.prepareFrame(fs)
}

// Rebuilds returns how many times this renderer has rebuilt the styled
// band and spatial index.
func (r *renderer) Rebuilds() int {
	return r.rebuilds
}

func (r *renderer) prepareFrame(fs FrameState) (*DrawBatch, bool) {
	src := r.layer.Source()
	style := src.Style()

	// No style or no usable data means nothing to draw, never an error.
	if style == nil || src.State() != StateReady {
		return nil, false
	}

	// Fill unset style bounds from band statistics once per style state.
	if style.Checksum() != r.filledChecksum {
		style.FillMissingValues(src.Bands())
		r.filledChecksum = style.Checksum()
	}

	// Honor the update-while gates: reuse last frame's batch untouched.
	if (fs.Animating && !r.layer.UpdateWhileAnimating()) ||
		(fs.Interacting && !r.layer.UpdateWhileInteracting()) {
		return r.batch, r.batch != nil
	}

	sum := style.Checksum()
	revision := src.Revision()

	// Frame short-circuit: nothing changed and the cached batch still
	// covers the viewport.
	if r.hasRendered &&
		sum == r.renderedChecksum &&
		revision == r.renderedRevision &&
		fs.Resolution == r.renderedResolution &&
		r.renderedExtent.Contains(fs.Extent) {
		metrics.FrameReuses.Inc()
		return r.batch, true
	}

	// Rebuild styling, tessellation and the spatial index only when the
	// style or the data actually changed.
	if r.grid == nil || sum != r.renderedChecksum || revision != r.renderedRevision {
		styled := src.GetStyledBand(style, 1, 0)
		if styled == nil {
			return nil, false
		}

		var transform TransformFunc
		if !src.Projection().Equivalent(fs.Projection) {
			transform = fs.Transform
		}

		g, err := buildGrid(styled, src.Type(), src.Pattern(), transform)
		if err != nil {
			logger.Debug().Err(err).Msg("coverage grid rebuild failed")
			return nil, false
		}
		r.grid = g
		r.rebuilds++
		metrics.GridRebuilds.Inc()
		logger.Debug().
			Str("checksum", sum).
			Uint64("revision", revision).
			Int("cells", g.cellCount).
			Msg("rebuilt coverage grid")
	}

	// Query the viewport buffered by one cell so partially overlapping
	// boundary cells are included.
	buffer := math.Max(r.grid.resolution[0], r.grid.resolution[1])
	queryExtent := fs.Extent.Buffer(buffer)
	if !r.gpu {
		queryExtent = wrapQueryExtent(queryExtent, src, fs.Projection)
	}

	replay := NewPolygonReplay()
	for _, cell := range r.grid.query(queryExtent) {
		replay.SetFillStyle(cell.color)
		replay.DrawCell(cell.coords, r.grid.cell.indexes, cell)
	}

	batch := &DrawBatch{
		Replay:      replay,
		Stroke:      r.strokeWidth(src, fs),
		VertexCount: r.grid.vertexCount,
	}
	if r.gpu {
		batch.CellIndexes = r.grid.cell.indexes
	}

	r.batch = batch
	r.renderedChecksum = sum
	r.renderedRevision = revision
	r.renderedResolution = fs.Resolution
	r.renderedExtent = queryExtent
	r.hasRendered = true

	return batch, true
}

// strokeWidth applies the cosmetic stroke rule: explicit layer override,
// else 1 when cells are non-rectangular or the view is reprojected
// (reprojection distorts shared edges, the stroke hides the seams), else
// 0.
func (r *renderer) strokeWidth(src *Source, fs FrameState) float64 {
	if width, ok := r.layer.Stroke(); ok {
		return width
	}
	if src.Type() != Rectangular || !src.Projection().Equivalent(fs.Projection) {
		return 1
	}
	return 0
}

// wrapQueryExtent widens the query extent for horizontally wrapping
// sources once the view leaves the projection's valid extent, so cells on
// the far side of the antimeridian are still matched: by one world width
// on each side, or half the viewport width when the viewport is wider
// than one world.
func wrapQueryExtent(extent Extent, src *Source, proj *Projection) Extent {
	if !src.WrapX() || proj == nil || !proj.CanWrapX {
		return extent
	}
	valid := proj.Extent
	if extent[0] >= valid[0] && extent[2] <= valid[2] {
		return extent
	}

	pad := valid.Width()
	if half := extent.Width() / 2; half > pad {
		pad = half
	}
	extent[0] -= pad
	extent[2] += pad
	return extent
}
