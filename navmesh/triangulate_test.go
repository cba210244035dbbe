package navmesh

import (
	"testing"

	"github.com/paulmach/orb"
)

func TestTriangulatePolygonSquare(t *testing.T) {
	square := orb.Ring{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {0, 0}}
	verts, tris := triangulatePolygon(square, nil)
	if len(verts) != 4 {
		t.Fatalf("len(verts) = %d, want 4", len(verts))
	}
	if len(tris) != 2 {
		t.Fatalf("len(tris) = %d, want 2 for a convex quad", len(tris))
	}
	var area float64
	for _, tri := range tris {
		area += triangleArea(verts[tri[0]], verts[tri[1]], verts[tri[2]])
	}
	if area != 16 {
		t.Errorf("total triangle area = %v, want 16", area)
	}
}

func TestTriangulatePolygonConcave(t *testing.T) {
	// An L-shaped room: concave at (2,2).
	lshape := orb.Ring{{0, 0}, {4, 0}, {4, 2}, {2, 2}, {2, 4}, {0, 4}, {0, 0}}
	verts, tris := triangulatePolygon(lshape, nil)
	if len(tris) != len(verts)-2 {
		t.Fatalf("len(tris) = %d, want %d (fan count for a simple polygon)", len(tris), len(verts)-2)
	}
	var area float64
	for _, tri := range tris {
		area += triangleArea(verts[tri[0]], verts[tri[1]], verts[tri[2]])
	}
	if area != 12 {
		t.Errorf("total triangle area = %v, want 12 (L-shape area)", area)
	}
}

func TestTriangulatePolygonWithHole(t *testing.T) {
	outer := orb.Ring{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}
	hole := orb.Ring{{4, 4}, {6, 4}, {6, 6}, {4, 6}, {4, 4}}
	verts, tris := triangulatePolygon(outer, []orb.Ring{hole})
	if len(tris) == 0 {
		t.Fatal("expected a non-empty triangulation with a hole")
	}
	var area float64
	for _, tri := range tris {
		area += triangleArea(verts[tri[0]], verts[tri[1]], verts[tri[2]])
	}
	want := 100.0 - 4.0
	if diff := area - want; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("total triangle area = %v, want %v (outer minus hole)", area, want)
	}
}

func triangleArea(a, b, c orb.Point) float64 {
	area := (b.X()-a.X())*(c.Y()-a.Y()) - (c.X()-a.X())*(b.Y()-a.Y())
	if area < 0 {
		area = -area
	}
	return area / 2
}
