package coverage

import (
	"fmt"
	"image"
	"math"

	"github.com/cespare/xxhash/v2"
	xdraw "golang.org/x/image/draw"

	"github.com/mapflow/coverage/internal/metrics"
	"github.com/mapflow/coverage/pkg/raster"
)

// CoverageDrawFunction renders a styled band into an image, replacing the
// default rasteriser. The styled band's matrix holds interleaved RGBA
// bytes. User functions may fail or panic; both are converted to an error
// image state at the GetImage boundary and never reach the frame loop.
type CoverageDrawFunction func(styled *raster.Band, typ CoverageType, pixelRatio float64) (image.Image, error)

// GetImage renders the source's styled coverage for the requested extent
// and resolution, caching results keyed by (revision, projection,
// resolution, pixel ratio, extent, style checksum).
//
// Returns nil when the source has no style, the style references missing
// bands, or the source is not Ready — callers skip the frame's draw.
func (s *Source) GetImage(extent Extent, resolution, pixelRatio float64, proj *Projection) *image.RGBA {
	if s.style == nil || s.state != StateReady || resolution <= 0 {
		return nil
	}
	if pixelRatio <= 0 {
		pixelRatio = 1
	}

	code := ""
	if proj != nil {
		code = proj.Code
	}
	key := imageCacheKey(s.revision, code, resolution, pixelRatio, extent, s.style.Checksum())
	if img, ok := s.images.Get(key); ok {
		metrics.ImageCacheHits.Inc()
		return img
	}
	metrics.ImageCacheMisses.Inc()

	src, err := s.renderCoverage(pixelRatio)
	if err != nil {
		logger.Debug().Err(err).Msg("coverage image rendering failed")
		s.state = StateError
		return nil
	}
	if src == nil {
		return nil
	}

	styledExtent := s.styledExtent()
	img := rescaleToExtent(src, styledExtent, extent, resolution, pixelRatio)
	s.images.Add(key, img)

	logger.Debug().
		Str("checksum", s.style.Checksum()).
		Uint64("revision", s.revision).
		Msg("rendered coverage image")
	return img
}

// renderCoverage produces the full-coverage image, through the
// user-supplied draw function when one is set. A panicking draw function
// is recovered here and surfaced as an ErrDrawFunction.
func (s *Source) renderCoverage(pixelRatio float64) (img image.Image, err error) {
	styled := s.GetStyledBand(s.style, 255, 0)
	if styled == nil {
		return nil, nil
	}

	if s.drawFunc != nil {
		defer func() {
			if r := recover(); r != nil {
				img = nil
				err = &ErrDrawFunction{Cause: fmt.Errorf("panic: %v", r)}
			}
		}()
		img, err = s.drawFunc(styled, s.typ, pixelRatio)
		if err != nil {
			return nil, &ErrDrawFunction{Cause: err}
		}
		return img, nil
	}

	return bandImage(styled), nil
}

// bandImage converts a styled band's RGBA cells into an image, one pixel
// per cell. Band row 0 is the bottom of the grid while image row 0 is the
// top, so rows are flipped.
func bandImage(styled *raster.Band) *image.RGBA {
	data := styled.Matrix().Data()
	cols := styled.Cols() / 4
	rows := styled.Rows()

	img := image.NewRGBA(image.Rect(0, 0, cols, rows))
	for row := 0; row < rows; row++ {
		src := data[row*cols*4 : (row+1)*cols*4]
		dst := img.Pix[(rows-1-row)*img.Stride:]
		copy(dst[:cols*4], src)
	}
	return img
}

// styledExtent returns the extent of the grid GetStyledBand renders:
// the single styled band's extent, or the union of the bands referenced
// by a composite style.
func (s *Source) styledExtent() Extent {
	idxs := s.style.BandIndexes()
	var out Extent
	first := true
	for _, idx := range idxs {
		b := s.Band(idx)
		if b == nil {
			continue
		}
		e := b.Extent()
		if first {
			out = Extent(e)
			first = false
		} else {
			out = out.Union(Extent(e))
		}
	}
	return out
}

// rescaleToExtent samples the part of src covering the requested extent
// onto an output image sized for the requested resolution, nearest
// neighbour.
func rescaleToExtent(src image.Image, srcExtent, extent Extent, resolution, pixelRatio float64) *image.RGBA {
	w := int(math.Ceil(extent.Width() / resolution * pixelRatio))
	h := int(math.Ceil(extent.Height() / resolution * pixelRatio))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))

	if srcExtent.Empty() {
		return dst
	}

	sb := src.Bounds()
	sx := float64(sb.Dx()) / srcExtent.Width()
	sy := float64(sb.Dy()) / srcExtent.Height()
	srcRect := image.Rect(
		sb.Min.X+int(math.Floor((extent[0]-srcExtent[0])*sx)),
		sb.Min.Y+int(math.Floor((srcExtent[3]-extent[3])*sy)),
		sb.Min.X+int(math.Ceil((extent[2]-srcExtent[0])*sx)),
		sb.Min.Y+int(math.Ceil((srcExtent[3]-extent[1])*sy)),
	)

	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, srcRect, xdraw.Src, nil)
	return dst
}

func imageCacheKey(revision uint64, code string, resolution, pixelRatio float64, extent Extent, sum string) string {
	canonical := fmt.Sprintf("%d|%s|%g|%g|%g,%g,%g,%g|%s",
		revision, code, resolution, pixelRatio,
		extent[0], extent[1], extent[2], extent[3], sum)
	return fmt.Sprintf("%016x", xxhash.Sum64String(canonical))
}
