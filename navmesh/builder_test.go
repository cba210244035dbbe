package navmesh

import (
	"testing"

	"github.com/indoormapgo/indoormap/config"
	"github.com/indoormapgo/indoormap/level"
	"github.com/indoormapgo/indoormap/mapcss"
	"github.com/indoormapgo/indoormap/osm"
)

func filterStyle(ds *osm.DataSet, rules ...mapcss.Rule) *mapcss.Style {
	s := mapcss.NewStyle()
	for _, r := range rules {
		s.AddRule(r)
	}
	if err := s.Compile(ds); err != nil {
		panic(err)
	}
	return s
}

func tagsOf(ds *osm.DataSet, kv ...string) osm.Tags {
	var t osm.Tags
	for i := 0; i+1 < len(kv); i += 2 {
		t = append(t, osm.Tag{Key: ds.Keys.Intern(kv[i]), Value: kv[i+1]})
	}
	t.SortByKey()
	return t
}

// TestBuildEmitsRoomTriangles mirrors the area-rule half of navmesh step 3:
// a closed way with a positive fill-opacity rule on floor 0 becomes
// triangles in the soup.
func TestBuildEmitsRoomTriangles(t *testing.T) {
	ds := osm.NewDataSet()
	ds.AddNode(osm.Node{ID: 1, Coord: osm.NewCoordinate(0, 0)})
	ds.AddNode(osm.Node{ID: 2, Coord: osm.NewCoordinate(0, 0.0001)})
	ds.AddNode(osm.Node{ID: 3, Coord: osm.NewCoordinate(0.0001, 0.0001)})
	ds.AddNode(osm.Node{ID: 4, Coord: osm.NewCoordinate(0.0001, 0)})
	ds.AddWay(osm.Way{ID: 10, Refs: []int64{1, 2, 3, 4, 1}, Tags: tagsOf(ds, "indoor", "room", "level", "0")})
	ds.Finalize()

	bbox := osm.BoundingBox{}.Expand(osm.NewCoordinate(0, 0)).Expand(osm.NewCoordinate(0.0001, 0.0001))
	data := level.NewMapData(ds, bbox, "", "")

	style := filterStyle(ds, mapcss.Rule{
		Selector:     &mapcss.BasicSelector{ObjectType: mapcss.AreaType},
		Declarations: []mapcss.Declaration{mapcss.NumberDecl(mapcss.FillOpacity, 1, mapcss.Pixels)},
	})

	b := NewBuilder(data, style, config.SolverParams{})
	soup, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(soup.Triangles) == 0 {
		t.Fatal("expected room area to produce triangles")
	}
	for _, area := range soup.AreaIDs {
		if area != Walkable {
			t.Errorf("area triangle classified %v, want Walkable", area)
		}
	}
}

// TestBuildStairInterpolatesHeight mirrors the concrete stair scenario: a
// 2-node way whose endpoints resolve to distinct known levels gets a
// stroked strip whose two rows of vertices sit at each endpoint's height
// rather than a single flat floor height.
func TestBuildStairInterpolatesHeight(t *testing.T) {
	ds := osm.NewDataSet()
	ds.AddNode(osm.Node{ID: 1, Coord: osm.NewCoordinate(0, 0)})
	ds.AddNode(osm.Node{ID: 2, Coord: osm.NewCoordinate(0, 0.0001)})
	ds.AddNode(osm.Node{ID: 3, Coord: osm.NewCoordinate(0.0001, 0)})
	ds.AddNode(osm.Node{ID: 4, Coord: osm.NewCoordinate(0.0001, 0.0001)})
	// wayA/wayB carry the single-valued level tags that seed the per-node
	// level index; the stair way itself references their endpoint nodes.
	ds.AddWay(osm.Way{ID: 100, Refs: []int64{1, 2}, Tags: tagsOf(ds, "level", "-1")})
	ds.AddWay(osm.Way{ID: 101, Refs: []int64{3, 4}, Tags: tagsOf(ds, "level", "1")})
	ds.AddWay(osm.Way{ID: 20, Refs: []int64{1, 3}, Tags: tagsOf(ds, "highway", "steps", "level", "-1")})
	ds.Finalize()

	bbox := osm.BoundingBox{}.Expand(osm.NewCoordinate(0, 0)).Expand(osm.NewCoordinate(0.0001, 0.0001))
	data := level.NewMapData(ds, bbox, "", "")

	style := filterStyle(ds, mapcss.Rule{
		Selector:     &mapcss.BasicSelector{ObjectType: mapcss.LineType, Conditions: []mapcss.Condition{mapcss.Equals("highway", "steps")}},
		Declarations: []mapcss.Declaration{mapcss.NumberDecl(mapcss.Width, 1, mapcss.Meters)},
	})

	b := NewBuilder(data, style, config.SolverParams{})
	soup, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(soup.Vertices) != 4 {
		t.Fatalf("len(Vertices) = %d, want 4 (one stroked quad)", len(soup.Vertices))
	}

	transform := NewTransform(bbox, DefaultHeightPerLevel)
	wantLow := transform.HeightOf(level.MapLevel(-10))
	wantHigh := transform.HeightOf(level.MapLevel(10))

	var sawLow, sawHigh bool
	for _, v := range soup.Vertices {
		switch v[1] {
		case wantLow:
			sawLow = true
		case wantHigh:
			sawHigh = true
		}
	}
	if !sawLow || !sawHigh {
		t.Errorf("stroked quad vertices = %v, want a row at %v and a row at %v", soup.Vertices, wantLow, wantHigh)
	}
}

// TestBuildElevatorLinksConsecutiveLevels mirrors the elevator half of
// navmesh step 4: an area element listing N levels produces N-1
// bidirectional Elevator connections, one per consecutive pair.
func TestBuildElevatorLinksConsecutiveLevels(t *testing.T) {
	ds := osm.NewDataSet()
	ds.AddNode(osm.Node{ID: 1, Coord: osm.NewCoordinate(0, 0)})
	ds.AddNode(osm.Node{ID: 2, Coord: osm.NewCoordinate(0, 0.0001)})
	ds.AddNode(osm.Node{ID: 3, Coord: osm.NewCoordinate(0.0001, 0.0001)})
	ds.AddNode(osm.Node{ID: 4, Coord: osm.NewCoordinate(0.0001, 0)})
	ds.AddWay(osm.Way{
		ID:   30,
		Refs: []int64{1, 2, 3, 4, 1},
		Tags: tagsOf(ds, "highway", "elevator", "level", "-1;0;1"),
	})
	ds.Finalize()

	bbox := osm.BoundingBox{}.Expand(osm.NewCoordinate(0, 0)).Expand(osm.NewCoordinate(0.0001, 0.0001))
	data := level.NewMapData(ds, bbox, "", "")

	style := filterStyle(ds, mapcss.Rule{
		Selector:      &mapcss.BasicSelector{ObjectType: mapcss.AreaType, Conditions: []mapcss.Condition{mapcss.Equals("highway", "elevator")}},
		LayerSelector: "link",
		Declarations:  []mapcss.Declaration{mapcss.NumberDecl(mapcss.ZIndex, 0, mapcss.Pixels)},
	})

	b := NewBuilder(data, style, config.SolverParams{AgentRadius: 0.4})
	soup, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(soup.Connections) != 2 {
		t.Fatalf("len(Connections) = %d, want 2 for a 3-level elevator", len(soup.Connections))
	}
	for _, c := range soup.Connections {
		if c.Area != Elevator {
			t.Errorf("connection area = %v, want Elevator", c.Area)
		}
		if c.Direction != Bidirectional {
			t.Errorf("connection direction = %v, want Bidirectional", c.Direction)
		}
	}
}

// TestBuildWallsSkipDoorSegments mirrors the door-gap wall extrusion
// scenario: an extrude rule over a closed way's boundary emits a quad per
// segment except the one incident to a door=yes node.
func TestBuildWallsSkipDoorSegments(t *testing.T) {
	ds := osm.NewDataSet()
	ds.AddNode(osm.Node{ID: 1, Coord: osm.NewCoordinate(0, 0)})
	ds.AddNode(osm.Node{ID: 2, Coord: osm.NewCoordinate(0, 0.0001), Tags: tagsOf(ds, "door", "yes")})
	ds.AddNode(osm.Node{ID: 3, Coord: osm.NewCoordinate(0.0001, 0.0001)})
	ds.AddNode(osm.Node{ID: 4, Coord: osm.NewCoordinate(0.0001, 0)})
	ds.AddWay(osm.Way{ID: 40, Refs: []int64{1, 2, 3, 4, 1}, Tags: tagsOf(ds, "indoor", "wall", "level", "0")})
	ds.Finalize()

	bbox := osm.BoundingBox{}.Expand(osm.NewCoordinate(0, 0)).Expand(osm.NewCoordinate(0.0001, 0.0001))
	data := level.NewMapData(ds, bbox, "", "")

	style := filterStyle(ds, mapcss.Rule{
		Selector:     &mapcss.BasicSelector{ObjectType: mapcss.AreaType, Conditions: []mapcss.Condition{mapcss.Equals("indoor", "wall")}},
		Declarations: []mapcss.Declaration{mapcss.NumberDecl(mapcss.Extrude, 3, mapcss.Meters)},
	})

	b := NewBuilder(data, style, config.SolverParams{})
	soup, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	// 4 boundary segments (1,2),(2,3),(3,4),(4,1); the door node is node 2,
	// so (1,2) and (2,3) are skipped and (3,4) and (4,1) are emitted.
	wantQuads := 2
	if got := len(soup.Triangles) / 2; got != wantQuads {
		t.Errorf("wall quads = %d, want %d (door node skips 2 of 4 segments)", got, wantQuads)
	}
}
