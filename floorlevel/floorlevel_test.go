package floorlevel

import (
	"testing"

	"github.com/indoormapgo/indoormap/level"
	"github.com/indoormapgo/indoormap/osm"
)

func TestChangeModelElevatorMultipleLevels(t *testing.T) {
	ds := osm.NewDataSet()
	tags := osm.Tags{
		{Key: ds.Keys.Intern("elevator"), Value: "yes"},
		{Key: ds.Keys.Intern("level"), Value: "-1;0;1;2"},
	}
	tags.SortByKey()
	node := osm.Node{ID: 1, Coord: osm.NewCoordinate(1, 1), Tags: tags}
	e := osm.NodeElement(&node)

	cm := NewChangeModel(e, 0, ds.Keys)

	want := []level.MapLevel{-10, 0, 10, 20}
	got := cm.Levels()
	if len(got) != len(want) {
		t.Fatalf("Levels() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Levels()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if !cm.HasMultipleLevelChanges() {
		t.Error("expected HasMultipleLevelChanges() = true")
	}
	if cm.Title(ds.Keys) != "Elevator" {
		t.Errorf("Title() = %q, want Elevator", cm.Title(ds.Keys))
	}
}

func TestChangeModelSingleLevelChange(t *testing.T) {
	ds := osm.NewDataSet()
	tags := osm.Tags{
		{Key: ds.Keys.Intern("highway"), Value: "elevator"},
		{Key: ds.Keys.Intern("level"), Value: "0;1"},
	}
	tags.SortByKey()
	node := osm.Node{ID: 1, Coord: osm.NewCoordinate(1, 1), Tags: tags}
	e := osm.NodeElement(&node)

	cm := NewChangeModel(e, 0, ds.Keys)
	if !cm.HasSingleLevelChange() {
		t.Fatal("expected HasSingleLevelChange() = true")
	}
	if got := cm.DestinationLevel(); got != 10 {
		t.Errorf("DestinationLevel() = %v, want 10", got)
	}
}

func TestChangeModelNonLevelChangeElement(t *testing.T) {
	ds := osm.NewDataSet()
	tags := osm.Tags{{Key: ds.Keys.Intern("indoor"), Value: "room"}}
	node := osm.Node{ID: 1, Coord: osm.NewCoordinate(1, 1), Tags: tags}
	e := osm.NodeElement(&node)

	cm := NewChangeModel(e, 0, ds.Keys)
	if len(cm.Levels()) != 0 {
		t.Errorf("expected no connected levels, got %v", cm.Levels())
	}
}
