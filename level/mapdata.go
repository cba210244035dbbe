package level

import (
	"errors"
	"sort"

	"github.com/indoormapgo/indoormap/osm"
)

// ErrUnknownLevel is returned when a caller asks for a level that the
// active MapData's level map does not contain. Per the error handling
// design this is answered as a no-op by most call sites, not a hard
// failure; it exists so callers that do want to distinguish "empty floor"
// from "no such floor" can with errors.Is.
var ErrUnknownLevel = errors.New("level: unknown level")

// LevelMap is an ordered mapping from MapLevel to the elements that appear
// on that level, plus a bucket for elements that carry no level/repeat_on
// tag and therefore span every floor.
type LevelMap struct {
	levels         []MapLevel
	byLevel        map[MapLevel][]osm.Element
	spansAllFloors []osm.Element
}

func newLevelMap() *LevelMap {
	return &LevelMap{byLevel: make(map[MapLevel][]osm.Element)}
}

// Levels returns every level with at least one element, ascending.
func (m *LevelMap) Levels() []MapLevel { return m.levels }

// HasLevel reports whether l has a (possibly empty-after-filtering) bucket.
func (m *LevelMap) HasLevel(l MapLevel) bool {
	_, ok := m.byLevel[l]
	return ok
}

// Elements returns the elements placed directly on l. It returns nil for an
// unknown level rather than failing, matching the "no-op" UnknownLevel
// handling described for the UI boundary.
func (m *LevelMap) Elements(l MapLevel) []osm.Element { return m.byLevel[l] }

// SpansAllFloors returns the elements that carry neither a level nor a
// repeat_on tag and are therefore visible regardless of active floor.
func (m *LevelMap) SpansAllFloors() []osm.Element { return m.spansAllFloors }

func (m *LevelMap) add(l MapLevel, e osm.Element) {
	if _, ok := m.byLevel[l]; !ok {
		m.levels = append(m.levels, l)
	}
	m.byLevel[l] = append(m.byLevel[l], e)
}

func (m *LevelMap) finalize() {
	sort.Slice(m.levels, func(i, j int) bool { return m.levels[i] < m.levels[j] })
}

// BuildLevelMap partitions every element of ds into the MapLevel buckets
// named by its level/repeat_on tags, parsed via ParseLevels. Elements
// visited in relation, then way, then node order, matching the original's
// for_each iteration order — this is what makes insertion-order tie-breaks
// downstream (scene graph, hit-test) deterministic.
func BuildLevelMap(ds *osm.DataSet) *LevelMap {
	lm := newLevelMap()
	levelKey := ds.Keys.Intern("level")
	repeatKey := ds.Keys.Intern("repeat_on")

	place := func(e osm.Element) {
		levels := elementLevels(e, levelKey, repeatKey)
		if len(levels) == 0 {
			lm.spansAllFloors = append(lm.spansAllFloors, e)
			return
		}
		for _, l := range levels {
			lm.add(l, e)
		}
	}

	for i := range ds.Relations {
		place(osm.RelationElement(&ds.Relations[i]))
	}
	for i := range ds.Ways {
		place(osm.WayElement(&ds.Ways[i]))
	}
	for i := range ds.Nodes {
		place(osm.NodeElement(&ds.Nodes[i]))
	}

	lm.finalize()
	return lm
}

func elementLevels(e osm.Element, levelKey, repeatKey osm.TagKey) []MapLevel {
	var out []MapLevel
	if v, ok := e.TagValue(levelKey); ok {
		out = append(out, ParseLevels(v)...)
	}
	if v, ok := e.TagValue(repeatKey); ok {
		out = append(out, ParseLevels(v)...)
	}
	return out
}

// MapData bundles a DataSet with the map-wide metadata and level index that
// every other component (style evaluation, scene assembly, navmesh) reads
// from.
type MapData struct {
	Data     *osm.DataSet
	BBox     osm.BoundingBox
	TimeZone string
	Region   string
	Levels   *LevelMap
}

// NewMapData builds a MapData, computing its level map from ds. Callers
// should call ds.Finalize() before this so element lookups are valid.
func NewMapData(ds *osm.DataSet, bbox osm.BoundingBox, timeZone, region string) *MapData {
	return &MapData{
		Data:     ds,
		BBox:     bbox,
		TimeZone: timeZone,
		Region:   region,
		Levels:   BuildLevelMap(ds),
	}
}

// OverlaySource is a capability that enumerates additional elements per
// floor and a set of hidden element ids. The Scene Controller and the
// Navmesh Builder consume the same capability so overlay data source
// adapters (equipment layers, live occupancy feeds, ...) are written once
// and plug into both consumers.
type OverlaySource interface {
	ElementsOnFloor(l MapLevel) []osm.Element
	HiddenIDs() *osm.IDSet
}

// ElementsOnFloor returns every element visible on l: the level's own
// bucket plus every element that spans all floors.
func (m *MapData) ElementsOnFloor(l MapLevel) []osm.Element {
	out := make([]osm.Element, 0, len(m.Levels.Elements(l))+len(m.Levels.SpansAllFloors()))
	out = append(out, m.Levels.Elements(l)...)
	out = append(out, m.Levels.SpansAllFloors()...)
	return out
}
