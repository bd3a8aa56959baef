package coverage

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// backendCall records one DrawBackend invocation.
type backendCall struct {
	Op         string // "fill", "draw" or "clear"
	Color      [4]uint8
	Start, End int
}

// recordingBackend captures the call sequence a replay issues.
type recordingBackend struct {
	calls []backendCall
}

func (b *recordingBackend) SetFillColor(color [4]uint8) {
	b.calls = append(b.calls, backendCall{Op: "fill", Color: color})
}

func (b *recordingBackend) DrawElements(start, end int) {
	b.calls = append(b.calls, backendCall{Op: "draw", Start: start, End: end})
}

func (b *recordingBackend) ClearDepth() {
	b.calls = append(b.calls, backendCall{Op: "clear"})
}

type boxFeature struct {
	extent Extent
}

func (f *boxFeature) Extent() Extent {
	return f.extent
}

var squareTemplate = []uint32{0, 1, 2, 2, 3, 0}

// squareAt builds a 10x10 square cell with its lower-left corner at (x, y).
func squareAt(x, y float64) ([]float64, *boxFeature) {
	coords := []float64{x, y, x + 10, y, x + 10, y + 10, x, y + 10}
	return coords, &boxFeature{Extent{x, y, x + 10, y + 10}}
}

var (
	red  = [4]uint8{255, 0, 0, 255}
	blue = [4]uint8{0, 0, 255, 255}
)

func TestReplayStyleGrouping(t *testing.T) {
	r := NewPolygonReplay()

	// Two red cells followed by one blue cell: repeating the red style
	// must not open a second group.
	for i, color := range [][4]uint8{red, red, blue} {
		coords, f := squareAt(float64(i)*10, 0)
		r.SetFillStyle(color)
		r.DrawCell(coords, squareTemplate, f)
	}

	if r.FeatureCount() != 3 {
		t.Errorf("Expected 3 features, got %d", r.FeatureCount())
	}
	if len(r.Vertices()) != 24 {
		t.Errorf("Expected 24 vertex components, got %d", len(r.Vertices()))
	}
	if len(r.Indexes()) != 18 {
		t.Errorf("Expected 18 indexes, got %d", len(r.Indexes()))
	}
	if len(r.styles) != 2 {
		t.Fatalf("Expected 2 style groups, got %d", len(r.styles))
	}

	b := &recordingBackend{}
	r.Replay(b)

	// Groups replay in reverse insertion order: blue first, then red.
	want := []backendCall{
		{Op: "fill", Color: blue},
		{Op: "draw", Start: 12, End: 18},
		{Op: "fill", Color: red},
		{Op: "draw", Start: 0, End: 12},
	}
	if diff := cmp.Diff(want, b.calls); diff != "" {
		t.Errorf("Unexpected replay sequence (-want +got):\n%s", diff)
	}
}

func TestReplayAlternatingStyles(t *testing.T) {
	r := NewPolygonReplay()

	// Alternating colors open a group per cell.
	for i, color := range [][4]uint8{red, blue, red} {
		coords, f := squareAt(float64(i)*10, 0)
		r.SetFillStyle(color)
		r.DrawCell(coords, squareTemplate, f)
	}
	if len(r.styles) != 3 {
		t.Errorf("Expected 3 style groups for alternating colors, got %d", len(r.styles))
	}
}

func TestDrawPolygonBaseOffset(t *testing.T) {
	r := NewPolygonReplay()
	r.SetFillStyle(red)

	coords, f := squareAt(0, 0)
	r.DrawPolygon(coords, nil, 2, f)
	coords, f = squareAt(20, 0)
	r.DrawPolygon(coords, nil, 2, f)

	idx := r.Indexes()
	if len(idx) != 12 {
		t.Fatalf("Expected 12 indexes for two squares, got %d", len(idx))
	}
	// The second polygon's indexes must point past the first's vertices.
	for _, i := range idx[6:] {
		if i < 4 {
			t.Errorf("Expected second polygon indexes offset by 4, got %d", i)
		}
	}
}

func TestDrawPolygonWithHole(t *testing.T) {
	r := NewPolygonReplay()
	r.SetFillStyle(red)

	coords := []float64{
		0, 0, 10, 0, 10, 10, 0, 10, // outer ring
		4, 4, 6, 4, 6, 6, 4, 6, // hole
	}
	_, f := squareAt(0, 0)
	r.DrawPolygon(coords, []int{8}, 2, f)

	if len(r.Vertices()) != 16 {
		t.Errorf("Expected 16 vertex components, got %d", len(r.Vertices()))
	}
	// A square with a square hole triangulates into 8 triangles.
	if len(r.Indexes()) != 24 {
		t.Errorf("Expected 24 indexes, got %d", len(r.Indexes()))
	}
}

func TestReplaySkipFeatures(t *testing.T) {
	r := NewPolygonReplay()
	var features []*boxFeature
	for i := 0; i < 3; i++ {
		coords, f := squareAt(float64(i)*10, 0)
		r.SetFillStyle(red)
		r.DrawCell(coords, squareTemplate, f)
		features = append(features, f)
	}

	b := &recordingBackend{}
	r.ReplaySkipFeatures(b, func(f Feature) bool {
		return f == features[1]
	})

	// Skipping the middle feature splits the group into two draw ranges
	// with a depth clear between them.
	want := []backendCall{
		{Op: "fill", Color: red},
		{Op: "draw", Start: 12, End: 18},
		{Op: "clear"},
		{Op: "draw", Start: 0, End: 6},
	}
	if diff := cmp.Diff(want, b.calls); diff != "" {
		t.Errorf("Unexpected skip sequence (-want +got):\n%s", diff)
	}
}

func TestReplaySkipFeaturesTopmost(t *testing.T) {
	r := NewPolygonReplay()
	var features []*boxFeature
	for i := 0; i < 3; i++ {
		coords, f := squareAt(float64(i)*10, 0)
		r.SetFillStyle(red)
		r.DrawCell(coords, squareTemplate, f)
		features = append(features, f)
	}

	b := &recordingBackend{}
	r.ReplaySkipFeatures(b, func(f Feature) bool {
		return f == features[2]
	})

	// Skipping the last drawn feature trims the tail of the range; no
	// depth clear is needed.
	want := []backendCall{
		{Op: "fill", Color: red},
		{Op: "draw", Start: 0, End: 12},
	}
	if diff := cmp.Diff(want, b.calls); diff != "" {
		t.Errorf("Unexpected skip sequence (-want +got):\n%s", diff)
	}
}

func TestDrawHitDetectionOneByOne(t *testing.T) {
	r := NewPolygonReplay()
	var features []*boxFeature
	for i, color := range [][4]uint8{red, blue, blue} {
		coords, f := squareAt(float64(i)*10, 0)
		r.SetFillStyle(color)
		r.DrawCell(coords, squareTemplate, f)
		features = append(features, f)
	}

	b := &recordingBackend{}
	var visited []Feature
	result := r.DrawHitDetectionOneByOne(b, func(f Feature) interface{} {
		visited = append(visited, f)
		if f == features[1] {
			return "hit"
		}
		return nil
	}, nil)

	if result != "hit" {
		t.Fatalf("Expected hit result, got %v", result)
	}
	// Top-down iteration stops at the first hit; the bottom feature is
	// never visited or drawn.
	if len(visited) != 2 || visited[0] != features[2] || visited[1] != features[1] {
		t.Errorf("Expected top-down visits [2 1], got %v", visited)
	}

	// Each visited feature is drawn individually with its own group's
	// color and a depth clear.
	want := []backendCall{
		{Op: "clear"},
		{Op: "fill", Color: blue},
		{Op: "draw", Start: 12, End: 18},
		{Op: "clear"},
		{Op: "fill", Color: blue},
		{Op: "draw", Start: 6, End: 12},
	}
	if diff := cmp.Diff(want, b.calls); diff != "" {
		t.Errorf("Unexpected hit-detection sequence (-want +got):\n%s", diff)
	}
}

func TestDrawHitDetectionGroupColors(t *testing.T) {
	r := NewPolygonReplay()
	coords, bottom := squareAt(0, 0)
	r.SetFillStyle(red)
	r.DrawCell(coords, squareTemplate, bottom)
	coords, top := squareAt(10, 0)
	r.SetFillStyle(blue)
	r.DrawCell(coords, squareTemplate, top)

	b := &recordingBackend{}
	r.DrawHitDetectionOneByOne(b, func(Feature) interface{} { return nil }, nil)

	want := []backendCall{
		{Op: "clear"},
		{Op: "fill", Color: blue},
		{Op: "draw", Start: 6, End: 12},
		{Op: "clear"},
		{Op: "fill", Color: red},
		{Op: "draw", Start: 0, End: 6},
	}
	if diff := cmp.Diff(want, b.calls); diff != "" {
		t.Errorf("Unexpected group colors (-want +got):\n%s", diff)
	}
}

func TestDrawHitDetectionExtentFilter(t *testing.T) {
	r := NewPolygonReplay()
	var features []*boxFeature
	for i := 0; i < 3; i++ {
		coords, f := squareAt(float64(i)*10, 0)
		r.SetFillStyle(red)
		r.DrawCell(coords, squareTemplate, f)
		features = append(features, f)
	}

	b := &recordingBackend{}
	var visited []Feature
	hitExtent := Extent{2, 2, 4, 4} // inside the first cell only
	r.DrawHitDetectionOneByOne(b, func(f Feature) interface{} {
		visited = append(visited, f)
		return nil
	}, &hitExtent)

	if len(visited) != 1 || visited[0] != features[0] {
		t.Errorf("Expected only the first feature to pass the extent filter, got %v", visited)
	}
	if len(b.calls) != 3 {
		t.Errorf("Expected 3 backend calls for one drawn feature, got %d", len(b.calls))
	}
}

func TestDrawHitDetectionEmptyReplay(t *testing.T) {
	b := &recordingBackend{}
	r := NewPolygonReplay()
	if result := r.DrawHitDetectionOneByOne(b, func(Feature) interface{} { return "hit" }, nil); result != nil {
		t.Errorf("Expected nil result for empty replay, got %v", result)
	}
	if len(b.calls) != 0 {
		t.Errorf("Expected no backend calls for empty replay, got %d", len(b.calls))
	}
}
