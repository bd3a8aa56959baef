package coverage

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCellShapeRectangular(t *testing.T) {
	cell, err := cellShape(Rectangular, 10, 6, nil)
	if err != nil {
		t.Fatalf("Failed to create rectangular cell: %v", err)
	}

	want := []float64{-5, -3, 5, -3, 5, 3, -5, 3}
	if diff := cmp.Diff(want, cell.vertices); diff != "" {
		t.Errorf("Vertices mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]uint32{0, 1, 2, 2, 3, 0}, cell.indexes); diff != "" {
		t.Errorf("Indexes mismatch (-want +got):\n%s", diff)
	}
	if cell.vertexCount() != 4 {
		t.Errorf("Expected 4 vertices, got %d", cell.vertexCount())
	}
}

func TestCellShapeHexagonal(t *testing.T) {
	cell, err := cellShape(Hexagonal, 8, 8, nil)
	if err != nil {
		t.Fatalf("Failed to create hexagonal cell: %v", err)
	}

	if cell.vertexCount() != 6 {
		t.Fatalf("Expected 6 vertices, got %d", cell.vertexCount())
	}
	if len(cell.indexes) != 12 {
		t.Errorf("Expected 4 triangles, got %d indexes", len(cell.indexes))
	}

	// Vertical half-extent ry/2 with a ry/4 notch.
	if cell.vertices[1] != -4 || cell.vertices[7] != 4 {
		t.Errorf("Expected vertical extent ±4, got %g and %g", cell.vertices[1], cell.vertices[7])
	}
	if cell.vertices[3] != -2 || cell.vertices[5] != 2 {
		t.Errorf("Expected notch at ±2, got %g and %g", cell.vertices[3], cell.vertices[5])
	}
}

func TestCellShapeCustom(t *testing.T) {
	pattern := &Pattern{
		// Unit right triangle.
		Shape: []float64{-0.5, -0.5, 0.5, -0.5, 0.5, 0.5},
	}
	cell, err := cellShape(Custom, 10, 20, pattern)
	if err != nil {
		t.Fatalf("Failed to create custom cell: %v", err)
	}

	want := []float64{-5, -10, 5, -10, 5, 10}
	if diff := cmp.Diff(want, cell.vertices); diff != "" {
		t.Errorf("Expected shape scaled by resolution (-want +got):\n%s", diff)
	}
	if len(cell.indexes) != 3 {
		t.Errorf("Expected 1 triangle, got %d indexes", len(cell.indexes))
	}
}

func TestCellShapeCustomConcave(t *testing.T) {
	pattern := &Pattern{
		// L-shaped cell: concave, 6 vertices.
		Shape: []float64{
			-0.5, -0.5, 0.5, -0.5, 0.5, 0,
			0, 0, 0, 0.5, -0.5, 0.5,
		},
	}
	cell, err := cellShape(Custom, 10, 10, pattern)
	if err != nil {
		t.Fatalf("Failed to create concave custom cell: %v", err)
	}
	if len(cell.indexes) != 12 {
		t.Errorf("Expected 4 triangles for an L-shape, got %d indexes", len(cell.indexes))
	}
}

func TestCellShapeCustomRequiresPattern(t *testing.T) {
	if _, err := cellShape(Custom, 10, 10, nil); err == nil {
		t.Error("Expected error for custom type without pattern")
	}
	if _, err := cellShape(Custom, 10, 10, &Pattern{Shape: []float64{0, 0}}); err == nil {
		t.Error("Expected error for degenerate pattern shape")
	}
}
