package osm

import "testing"

func TestDataSetFindAfterFinalize(t *testing.T) {
	ds := NewDataSet()
	ds.AddNode(Node{ID: 5})
	ds.AddNode(Node{ID: 1})
	ds.AddNode(Node{ID: 3})
	ds.Finalize()

	if _, ok := ds.FindNode(3); !ok {
		t.Errorf("FindNode(3) not found after Finalize")
	}
	if _, ok := ds.FindNode(4); ok {
		t.Errorf("FindNode(4) found, want absent")
	}
	for i := 1; i < len(ds.Nodes); i++ {
		if ds.Nodes[i-1].ID > ds.Nodes[i].ID {
			t.Errorf("Nodes not sorted: %d before %d", ds.Nodes[i-1].ID, ds.Nodes[i].ID)
		}
	}
}

func TestDataSetWayCoordsSkipsMissingNode(t *testing.T) {
	ds := NewDataSet()
	ds.AddNode(Node{ID: 1, Coord: NewCoordinate(0, 0)})
	ds.AddNode(Node{ID: 3, Coord: NewCoordinate(1, 1)})
	ds.Finalize()

	w := &Way{ID: 1, Refs: []int64{1, 2, 3}} // node 2 intentionally absent
	coords := ds.WayCoords(w)
	if len(coords) != 2 {
		t.Errorf("WayCoords returned %d coords, want 2 (missing node skipped)", len(coords))
	}
}

func TestDataSetElementNullOnMissing(t *testing.T) {
	ds := NewDataSet()
	ds.Finalize()
	e := ds.Element(KindWay, 999)
	if !e.IsNull() {
		t.Errorf("Element for missing id is not null")
	}
}
