package level

import (
	"reflect"
	"testing"

	"github.com/indoormapgo/indoormap/osm"
)

func TestIsFullLevel(t *testing.T) {
	cases := []struct {
		l    MapLevel
		want bool
	}{
		{0, true}, {10, true}, {-10, true}, {5, false}, {-5, false}, {15, false},
	}
	for _, c := range cases {
		if got := IsFullLevel(c.l); got != c.want {
			t.Errorf("IsFullLevel(%d) = %v, want %v", c.l, got, c.want)
		}
	}
}

func TestFullLevelBelowAbove(t *testing.T) {
	cases := []struct {
		l, below, above MapLevel
	}{
		{5, 0, 10}, {-5, -10, 0}, {0, 0, 0}, {23, 20, 30}, {-23, -30, -20},
	}
	for _, c := range cases {
		if got := FullLevelBelow(c.l); got != c.below {
			t.Errorf("FullLevelBelow(%d) = %d, want %d", c.l, got, c.below)
		}
		if got := FullLevelAbove(c.l); got != c.above {
			t.Errorf("FullLevelAbove(%d) = %d, want %d", c.l, got, c.above)
		}
	}
}

func TestParseLevelsList(t *testing.T) {
	got := ParseLevels("-1;0;1;2")
	want := []MapLevel{-10, 0, 10, 20}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseLevels(\"-1;0;1;2\") = %v, want %v", got, want)
	}
}

func TestParseLevelsRange(t *testing.T) {
	got := ParseLevels("0-2")
	want := []MapLevel{0, 10, 20}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseLevels(\"0-2\") = %v, want %v", got, want)
	}
}

func TestParseLevelsNegativeRange(t *testing.T) {
	got := ParseLevels("-2--1")
	want := []MapLevel{-20, -10}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseLevels(\"-2--1\") = %v, want %v", got, want)
	}
}

func TestBuildLevelMapSpansAllFloors(t *testing.T) {
	ds := osm.NewDataSet()
	ds.AddNode(osm.Node{ID: 1, Tags: taggedLevel(ds, "0")})
	ds.AddNode(osm.Node{ID: 2}) // no level tag
	ds.Finalize()

	lm := BuildLevelMap(ds)
	if len(lm.Elements(0)) != 1 {
		t.Errorf("Elements(0) = %d elements, want 1", len(lm.Elements(0)))
	}
	if len(lm.SpansAllFloors()) != 1 {
		t.Errorf("SpansAllFloors() = %d elements, want 1", len(lm.SpansAllFloors()))
	}
}

func taggedLevel(ds *osm.DataSet, v string) osm.Tags {
	tags := osm.Tags{{Key: ds.Keys.Intern("level"), Value: v}}
	tags.SortByKey()
	return tags
}
