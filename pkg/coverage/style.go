package coverage

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/mapflow/coverage/pkg/raster"
)

// Color is an RGB triple. Alpha is not part of a color; styled output
// alpha comes from the Apply alpha arguments.
type Color [3]uint8

// Style converts raw band values into interleaved RGBA bytes.
//
// Alpha polarity: cells equal to nullValue receive maxAlpha and valid
// cells receive minAlpha. The argument NAMED maxAlpha marks NODATA. This
// is deliberately inverted relative to what the names suggest; callers
// wanting opaque-for-valid pass (255, 0) or (1, 0). Changing the polarity
// breaks every nodata mask in the render pipeline.
type Style interface {
	// Apply styles one value slice per referenced band (positionally
	// matching BandIndexes; single-band styles read values[0]) and
	// returns 4 bytes per cell.
	Apply(values [][]float64, nullValue float64, minAlpha, maxAlpha uint8) []uint8

	// Checksum returns a deterministic fingerprint of the style's
	// parameters, used as the renderers' cache-invalidation key.
	Checksum() string

	// FillMissingValues fills unset min/max bounds from band statistics.
	// Bounds set explicitly are left untouched.
	FillMissingValues(bands []*raster.Band)

	// BandIndexes returns the band indexes this style reads, in channel
	// order.
	BandIndexes() []int
}

// checksum hashes a canonical parameter string into the fingerprint
// format shared by every style kind.
func checksum(canonical string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(canonical))
}

// clampByte converts an interpolated channel value to a byte.
func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
