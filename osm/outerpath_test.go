package osm

import (
	"reflect"
	"testing"
)

func buildRing(ds *DataSet, ids []int64, coords []Coordinate) {
	for i, id := range ids {
		ds.AddNode(Node{ID: id, Coord: coords[i]})
	}
}

func TestOuterPathWay(t *testing.T) {
	ds := NewDataSet()
	c := []Coordinate{NewCoordinate(0, 0), NewCoordinate(0, 1), NewCoordinate(1, 1), NewCoordinate(0, 0)}
	buildRing(ds, []int64{1, 2, 3, 1}, c)
	ds.Finalize()
	w := Way{ID: 10, Refs: []int64{1, 2, 3, 1}}
	ds.AddWay(w)
	ds.Finalize()

	got := OuterPath(WayElement(&ds.Ways[0]), ds)
	if !reflect.DeepEqual(got, c) {
		t.Errorf("OuterPath(way) = %v, want %v", got, c)
	}
}

// TestOuterPathMultipolygonTwoClosedLoops matches the scenario in the
// testable-properties list: two already-closed outer ways in arbitrary
// member order concatenate into two independent loops.
func TestOuterPathMultipolygonTwoClosedLoops(t *testing.T) {
	ds := NewDataSet()
	n1, n2, n3 := NewCoordinate(0, 0), NewCoordinate(0, 1), NewCoordinate(1, 1)
	n4, n5, n6 := NewCoordinate(5, 5), NewCoordinate(5, 6), NewCoordinate(6, 6)
	ds.AddNode(Node{ID: 1, Coord: n1})
	ds.AddNode(Node{ID: 2, Coord: n2})
	ds.AddNode(Node{ID: 3, Coord: n3})
	ds.AddNode(Node{ID: 4, Coord: n4})
	ds.AddNode(Node{ID: 5, Coord: n5})
	ds.AddNode(Node{ID: 6, Coord: n6})
	ds.AddWay(Way{ID: 100, Refs: []int64{4, 5, 6, 4}}) // way B inserted before A
	ds.AddWay(Way{ID: 200, Refs: []int64{1, 2, 3, 1}}) // way A
	ds.AddRelation(Relation{ID: 1000, Members: []Member{
		{ID: 100, Role: "outer", Type: KindWay},
		{ID: 200, Role: "outer", Type: KindWay},
	}})
	ds.Finalize()

	rel, _ := ds.FindRelation(1000)
	got := OuterPath(RelationElement(rel), ds)
	wantA := []Coordinate{n1, n2, n3, n1}
	wantB := []Coordinate{n4, n5, n6, n4}
	want := append(append([]Coordinate{}, wantB...), wantA...)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("OuterPath(multipolygon) = %v, want %v", got, want)
	}
}

func TestOuterPathStitchesOpenWays(t *testing.T) {
	ds := NewDataSet()
	n1, n2, n3, n4 := NewCoordinate(0, 0), NewCoordinate(0, 1), NewCoordinate(1, 1), NewCoordinate(1, 0)
	ds.AddNode(Node{ID: 1, Coord: n1})
	ds.AddNode(Node{ID: 2, Coord: n2})
	ds.AddNode(Node{ID: 3, Coord: n3})
	ds.AddNode(Node{ID: 4, Coord: n4})
	// Way B runs n4->n1 (reversed relative to closing the loop); way A runs n1->n2->n3->n4.
	ds.AddWay(Way{ID: 1, Refs: []int64{1, 2, 3, 4}})
	ds.AddWay(Way{ID: 2, Refs: []int64{1, 4}})
	ds.AddRelation(Relation{ID: 1, Members: []Member{
		{ID: 1, Role: "outer", Type: KindWay},
		{ID: 2, Role: "outer", Type: KindWay},
	}})
	ds.Finalize()

	rel, _ := ds.FindRelation(1)
	loops := OuterLoops(rel, ds)
	if len(loops) != 1 {
		t.Fatalf("OuterLoops returned %d loops, want 1", len(loops))
	}
	loop := loops[0]
	if loop[0] != loop[len(loop)-1] {
		t.Errorf("stitched loop is not closed: starts %v ends %v", loop[0], loop[len(loop)-1])
	}
	if len(loop) != 5 {
		t.Errorf("stitched loop has %d coords, want 5 (4 distinct + closing)", len(loop))
	}
}

// TestOuterPathStitchesNearMissEndpoints covers the distance-based
// fallback: way B starts on a node a few centimeters from way A's end
// node rather than sharing its id, as happens when two edits placed what
// is conceptually the same corner at slightly different coordinates.
func TestOuterPathStitchesNearMissEndpoints(t *testing.T) {
	ds := NewDataSet()
	n1 := NewCoordinate(0, 0)
	n2 := NewCoordinate(0, 0.0001)
	n3 := NewCoordinate(0.0001, 0.0001)
	n3near := NewCoordinate(0.0001, 0.0001+0.0000001) // ~1cm east of n3, distinct node id
	ds.AddNode(Node{ID: 1, Coord: n1})
	ds.AddNode(Node{ID: 2, Coord: n2})
	ds.AddNode(Node{ID: 3, Coord: n3})
	ds.AddNode(Node{ID: 4, Coord: n3near})
	ds.AddWay(Way{ID: 1, Refs: []int64{1, 2, 3}})
	ds.AddWay(Way{ID: 2, Refs: []int64{4, 1}})
	ds.AddRelation(Relation{ID: 1, Members: []Member{
		{ID: 1, Role: "outer", Type: KindWay},
		{ID: 2, Role: "outer", Type: KindWay},
	}})
	ds.Finalize()

	rel, _ := ds.FindRelation(1)
	loops := OuterLoops(rel, ds)
	if len(loops) != 1 {
		t.Fatalf("OuterLoops returned %d loops, want 1", len(loops))
	}
	loop := loops[0]
	if loop[0] != loop[len(loop)-1] {
		t.Errorf("stitched loop is not closed: starts %v ends %v", loop[0], loop[len(loop)-1])
	}
	if len(loop) != 4 {
		t.Errorf("stitched loop has %d coords, want 4 (n1,n2,n3,n1)", len(loop))
	}
}

func TestRecomputeBoundingBoxWay(t *testing.T) {
	ds := NewDataSet()
	ds.AddNode(Node{ID: 1, Coord: NewCoordinate(0, 0)})
	ds.AddNode(Node{ID: 2, Coord: NewCoordinate(2, 2)})
	ds.AddWay(Way{ID: 1, Refs: []int64{1, 2}})
	ds.Finalize()

	w, _ := ds.FindWay(1)
	bb := RecomputeBoundingBox(WayElement(w), ds)
	if bb.Min.LatF() != 0 || bb.Max.LatF() != 2 {
		t.Errorf("RecomputeBoundingBox = %+v, want lat range [0,2]", bb)
	}
}
