package mapcss

import (
	"image/color"
	"testing"

	"github.com/indoormapgo/indoormap/osm"
)

var redRGBA = color.RGBA{R: 255, G: 0, B: 0, A: 255}

func buildRoomDataSet() (*osm.DataSet, osm.Element) {
	ds := osm.NewDataSet()
	ds.AddNode(osm.Node{ID: 1, Coord: osm.NewCoordinate(0, 0)})
	ds.AddNode(osm.Node{ID: 2, Coord: osm.NewCoordinate(0, 1)})
	ds.AddNode(osm.Node{ID: 3, Coord: osm.NewCoordinate(1, 1)})
	tags := osm.Tags{{Key: ds.Keys.Intern("indoor"), Value: "room"}}
	tags.SortByKey()
	ds.AddWay(osm.Way{ID: 10, Refs: []int64{1, 2, 3, 1}, Tags: tags})
	ds.Finalize()
	w, _ := ds.FindWay(10)
	return ds, osm.WayElement(w)
}

// TestEvaluateScenario1 mirrors the spec's first concrete scenario: one
// closed way tagged indoor=room, style "area { fill-color: #f00; }"
// evaluated on floor 0 yields exactly one result layer with FillColor set.
func TestEvaluateScenario1(t *testing.T) {
	ds, elem := buildRoomDataSet()
	style := NewStyle()
	style.AddRule(Rule{
		Selector:     &BasicSelector{ObjectType: AreaType},
		Declarations: []Declaration{ColorDecl(FillColor, redRGBA)},
	})
	if err := style.Compile(ds); err != nil {
		t.Fatalf("Compile: %v", err)
	}

	ot := ClassifyObjectType(elem, ds, style.AreaKey())
	state := NewState(elem, 18, 0, ot, NewOpeningHoursCache())
	result := NewResult()
	if err := style.Evaluate(state, result); err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	layers := result.Layers()
	if len(layers) != 1 {
		t.Fatalf("Layers() = %d, want 1", len(layers))
	}
	d, ok := layers[0].Get(FillColor)
	if !ok {
		t.Fatalf("FillColor not set on result layer")
	}
	if c, _ := d.ColorRGBA(); c != redRGBA {
		t.Errorf("FillColor = %v, want %v", c, redRGBA)
	}
}

func TestEvaluateBeforeCompileFails(t *testing.T) {
	style := NewStyle()
	state := NewState(osm.Element{}, 0, 0, AnyType, NewOpeningHoursCache())
	if err := style.Evaluate(state, NewResult()); err != ErrStyleNotCompiled {
		t.Errorf("Evaluate before Compile = %v, want ErrStyleNotCompiled", err)
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	ds, elem := buildRoomDataSet()
	style := NewStyle()
	style.AddRule(Rule{
		Selector:     &BasicSelector{ObjectType: AreaType},
		Declarations: []Declaration{ColorDecl(FillColor, redRGBA)},
	})
	style.Compile(ds)
	ot := ClassifyObjectType(elem, ds, style.AreaKey())

	result := NewResult()
	for i := 0; i < 5; i++ {
		state := NewState(elem, 18, 0, ot, NewOpeningHoursCache())
		style.Evaluate(state, result)
		d, ok := result.Layers()[0].Get(FillColor)
		if !ok {
			t.Fatalf("iteration %d: FillColor not set", i)
		}
		if c, _ := d.ColorRGBA(); c != redRGBA {
			t.Errorf("iteration %d: FillColor = %v, want %v (non-deterministic)", i, c, redRGBA)
		}
	}
}

func TestClassWriteThenTest(t *testing.T) {
	ds, elem := buildRoomDataSet()
	style := NewStyle()
	style.AddRule(Rule{
		Selector:     &BasicSelector{ObjectType: AreaType},
		Declarations: []Declaration{ClassDecl("highlighted", true)},
	})
	style.AddRule(Rule{
		Selector:     &BasicSelector{ObjectType: AreaType, RequireClasses: []string{"highlighted"}},
		Declarations: []Declaration{ColorDecl(FillColor, redRGBA)},
	})
	style.Compile(ds)
	ot := ClassifyObjectType(elem, ds, style.AreaKey())
	state := NewState(elem, 18, 0, ot, NewOpeningHoursCache())
	result := NewResult()
	style.Evaluate(state, result)

	if _, ok := result.Layers()[0].Get(FillColor); !ok {
		t.Errorf("second rule did not see class set by first rule in the same evaluation")
	}
}

func TestAreaLineDisambiguationByTag(t *testing.T) {
	ds := osm.NewDataSet()
	ds.AddNode(osm.Node{ID: 1})
	ds.AddNode(osm.Node{ID: 2})
	areaKey := ds.Keys.Intern("area")
	tags := osm.Tags{{Key: areaKey, Value: "no"}}
	tags.SortByKey()
	// A closed way tagged area=no must classify as Line despite being closed.
	ds.AddWay(osm.Way{ID: 1, Refs: []int64{1, 2, 1}, Tags: tags})
	ds.Finalize()
	w, _ := ds.FindWay(1)

	got := ClassifyObjectType(osm.WayElement(w), ds, areaKey)
	if got != LineType {
		t.Errorf("ClassifyObjectType with area=no on a closed way = %v, want LineType", got)
	}
}

func TestCanvasRuleIgnoresElementSelectors(t *testing.T) {
	ds, _ := buildRoomDataSet()
	style := NewStyle()
	style.AddCanvasRule(CanvasRule{Declarations: []Declaration{ColorDecl(FillColor, redRGBA)}})
	style.Compile(ds)

	result := NewResult()
	if err := style.EvaluateCanvas(10, result); err != nil {
		t.Fatalf("EvaluateCanvas: %v", err)
	}
	d, ok := result.DefaultLayer().Get(FillColor)
	if !ok {
		t.Fatalf("canvas FillColor not set")
	}
	if c, _ := d.ColorRGBA(); c != redRGBA {
		t.Errorf("canvas FillColor = %v, want %v", c, redRGBA)
	}
}
