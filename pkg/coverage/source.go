package coverage

import (
	"image"
	"math"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mapflow/coverage/pkg/raster"
)

// imageCacheSize bounds the number of rendered coverage images kept per
// source. Keys include revision, projection, resolution, extent and style
// checksum, so entries for stale revisions age out naturally.
const imageCacheSize = 16

// BandEvent is delivered to registered observers whenever a band is added
// or mutates (value or null-value change).
type BandEvent struct {
	Band *raster.Band
}

// SourceOptions configures a new coverage source.
type SourceOptions struct {
	// Type selects the cell shape; Rectangular when zero.
	Type CoverageType

	// Pattern supplies the cell tiling for Custom coverages.
	Pattern *Pattern

	// Projection is the coordinate system of the band data.
	Projection *Projection

	// WrapX enables horizontal world wrapping for the canvas renderer.
	WrapX bool

	// Style is the initial style; may be set later via SetStyle.
	Style Style

	// Bands pre-populates the source.
	Bands []*raster.Band
}

// Source is the long-lived aggregate owning a coverage's bands, style and
// cell shape. It orchestrates styled-band computation, renders cached
// images and notifies observers of band changes.
//
// A source is single-threaded by design: all mutation and rendering happen
// on one goroutine between frames, so there is no internal locking.
//
// Example:
//
//	src := coverage.NewSource(coverage.SourceOptions{
//	    Type:       coverage.Rectangular,
//	    Projection: &coverage.Projection{Code: "EPSG:3857"},
//	})
//	src.AddBand(band)
//	src.SetStyle(style)
type Source struct {
	bands      []*raster.Band
	typ        CoverageType
	pattern    *Pattern
	projection *Projection
	wrapX      bool
	style      Style
	drawFunc   CoverageDrawFunction

	// revision increases on every mutation (band added or changed, style
	// or draw function replaced). Renderers compare it against their
	// cached value to decide whether a rebuild is due.
	revision uint64

	state     State
	observers []func(BandEvent)
	images    *lru.Cache[string, *image.RGBA]
}

// NewSource creates a coverage source.
func NewSource(opts SourceOptions) *Source {
	images, _ := lru.New[string, *image.RGBA](imageCacheSize)
	s := &Source{
		typ:        opts.Type,
		pattern:    opts.Pattern,
		projection: opts.Projection,
		wrapX:      opts.WrapX,
		style:      opts.Style,
		state:      StateUndefined,
		images:     images,
	}
	for _, b := range opts.Bands {
		s.AddBand(b)
	}
	return s
}

// AddBand appends a band, wires its change notification into the source
// and notifies observers. A source in the Undefined state becomes Ready
// once it has a band.
func (s *Source) AddBand(b *raster.Band) {
	s.bands = append(s.bands, b)
	b.OnChange(s.bandChanged)
	if s.state == StateUndefined {
		s.state = StateReady
	}
	s.bump()
	s.dispatch(BandEvent{Band: b})
}

// bandChanged is the single observer every owned band reports into.
func (s *Source) bandChanged(b *raster.Band) {
	s.bump()
	s.dispatch(BandEvent{Band: b})
}

func (s *Source) bump() {
	s.revision++
}

func (s *Source) dispatch(ev BandEvent) {
	for _, fn := range s.observers {
		fn(ev)
	}
}

// OnBandChange registers an observer for band additions and mutations.
// Observers run synchronously on the mutating goroutine.
func (s *Source) OnBandChange(fn func(BandEvent)) {
	s.observers = append(s.observers, fn)
}

// Band returns the band at the given index, or nil when out of range.
func (s *Source) Band(i int) *raster.Band {
	if i < 0 || i >= len(s.bands) {
		return nil
	}
	return s.bands[i]
}

// Bands returns the owned bands in insertion order.
func (s *Source) Bands() []*raster.Band {
	return s.bands
}

// BandCount returns the number of owned bands.
func (s *Source) BandCount() int {
	return len(s.bands)
}

// Type returns the coverage cell type.
func (s *Source) Type() CoverageType {
	return s.typ
}

// Pattern returns the custom cell pattern, or nil.
func (s *Source) Pattern() *Pattern {
	return s.pattern
}

// Projection returns the coordinate system of the band data.
func (s *Source) Projection() *Projection {
	return s.projection
}

// WrapX reports whether the source wraps horizontally.
func (s *Source) WrapX() bool {
	return s.wrapX
}

// Style returns the active style, or nil.
func (s *Source) Style() Style {
	return s.style
}

// SetStyle replaces the active style and bumps the revision.
func (s *Source) SetStyle(style Style) {
	s.style = style
	s.bump()
}

// SetDrawFunction replaces the coverage draw function used by GetImage and
// bumps the revision.
func (s *Source) SetDrawFunction(fn CoverageDrawFunction) {
	s.drawFunc = fn
	s.bump()
}

// Revision returns the source's mutation counter.
func (s *Source) Revision() uint64 {
	return s.revision
}

// State returns the source's loading state.
func (s *Source) State() State {
	return s.state
}

// SetState transitions the loading state. External loaders call this with
// StateLoading before parsing and StateReady or StateError after.
func (s *Source) SetState(state State) {
	s.state = state
}

// Load runs an external loader against this source. The loader's done
// callback adds the produced bands and applies the terminal state.
func (s *Source) Load(loader Loader) {
	s.state = StateLoading
	loader(func(bands []*raster.Band, state State) {
		for _, b := range bands {
			s.AddBand(b)
		}
		s.state = state
	})
}

// GetStyledBand applies a style to this source's bands and returns the
// result as a new band whose matrix holds interleaved RGBA bytes (stride
// is columns*4, data type Uint8) over the styled grid's spatial metadata.
//
// Single-band styles read their band directly; composite styles gather
// the referenced bands in positional order (skipping unbound channel
// slots), align them to a common grid and style the aligned values.
//
// Returns nil when a referenced band index does not exist. Callers treat
// nil as "skip this frame's draw".
//
// See Style for the alpha argument polarity: maxAlpha marks nodata cells.
func (s *Source) GetStyledBand(style Style, minAlpha, maxAlpha uint8) *raster.Band {
	if style == nil {
		return nil
	}
	idxs := style.BandIndexes()

	if len(idxs) == 1 {
		b := s.Band(idxs[0])
		if b == nil {
			logger.Debug().
				Err(&ErrMissingBand{Index: idxs[0], Count: len(s.bands)}).
				Msg("styled band unavailable")
			return nil
		}
		rgba := style.Apply([][]float64{b.Values()}, b.NullValue(), minAlpha, maxAlpha)
		return wrapStyled(rgba, b)
	}

	// Composite path: gather referenced bands, skipping unbound slots
	// (-1) but preserving channel positions.
	var gathered []*raster.Band
	slots := make([]int, len(idxs)) // channel -> position in gathered, -1 when unbound
	for c, idx := range idxs {
		if idx < 0 {
			slots[c] = -1
			continue
		}
		b := s.Band(idx)
		if b == nil {
			logger.Debug().
				Err(&ErrMissingBand{Index: idx, Count: len(s.bands)}).
				Msg("styled band unavailable")
			return nil
		}
		slots[c] = len(gathered)
		gathered = append(gathered, b)
	}
	if len(gathered) == 0 {
		return nil
	}

	nullValue := gathered[0].NullValue()
	aligned, err := raster.Align(gathered, nullValue)
	if err != nil {
		logger.Debug().Err(err).Msg("band alignment failed")
		return nil
	}

	values := make([][]float64, len(idxs))
	for c, slot := range slots {
		if slot >= 0 {
			values[c] = aligned[slot].Values()
		}
	}

	rgba := style.Apply(values, nullValue, minAlpha, maxAlpha)
	return wrapStyled(rgba, aligned[0])
}

// wrapStyled wraps interleaved RGBA bytes as a Uint8 band over the grid of
// the band they were computed from.
func wrapStyled(rgba []uint8, grid *raster.Band) *raster.Band {
	dx, dy := grid.Matrix().Resolution()
	m, err := raster.NewBinaryMatrix(rgba, raster.Uint8, grid.Cols()*4, dx, dy)
	if err != nil {
		return nil
	}
	return raster.NewBand(m, grid.Extent(), grid.Origin(), math.NaN(), raster.Uint8)
}
