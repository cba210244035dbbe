package mapcss

import "github.com/indoormapgo/indoormap/osm"

// ObjectType classifies an element for selector matching. Node/Way/
// Relation mirror the element's concrete kind; Area/Line further classify
// a way or multipolygon relation by closedness; Canvas is used only for
// EvaluateCanvas; Any matches every classification.
type ObjectType int

const (
	AnyType ObjectType = iota
	NodeType
	WayType
	RelationType
	AreaType
	LineType
	CanvasType
)

// ClassifyObjectType implements the Area-vs-Line disambiguation rule: an
// area=yes/no tag wins when present, else closedness decides. Called by the
// Scene Controller and Navmesh Builder before populating a State.
func ClassifyObjectType(e osm.Element, ds *osm.DataSet, areaKey osm.TagKey) ObjectType {
	switch e.Kind() {
	case osm.KindNode:
		return NodeType
	case osm.KindRelation:
		if e.Relation().IsMultipolygon(ds.Keys) {
			return AreaType
		}
		return RelationType
	case osm.KindWay:
		if v, ok := e.TagValue(areaKey); ok {
			switch v {
			case "yes", "true", "1":
				return AreaType
			case "no", "false", "0":
				return LineType
			}
		}
		if e.Way().IsClosed() {
			return AreaType
		}
		return LineType
	default:
		return AnyType
	}
}

// OpeningHoursCache memoizes opening_hours parse results per tag value
// across a single evaluation pass, since the same string recurs across
// many elements in one style (e.g. "Mo-Fr 09:00-18:00" on every shop).
// Parsing the opening_hours micro-grammar is out of scope; this cache just
// keys whatever a caller-supplied evaluator function returns.
type OpeningHoursCache struct {
	cache map[string]bool
}

// NewOpeningHoursCache returns an empty cache.
func NewOpeningHoursCache() *OpeningHoursCache {
	return &OpeningHoursCache{cache: make(map[string]bool)}
}

// Lookup returns the cached open/closed result for expr, computing and
// storing it via isOpen on first use.
func (c *OpeningHoursCache) Lookup(expr string, isOpen func(string) bool) bool {
	if v, ok := c.cache[expr]; ok {
		return v
	}
	v := isOpen(expr)
	c.cache[expr] = v
	return v
}

// State is the per-evaluation input: the element under test, the current
// view zoom and floor, its classified object type, and a shared opening
// hours cache.
type State struct {
	Element    osm.Element
	Zoom       int
	Floor      int32 // human floor, matching level.HumanFloor
	ObjectType ObjectType
	Hours      *OpeningHoursCache

	// classes set by ClassDeclaration matches earlier in the same
	// evaluation; write-then-test within one evaluation, in rule order.
	classes map[string]bool
}

// NewState returns a State ready for one Evaluate call.
func NewState(e osm.Element, zoom int, floor int32, ot ObjectType, hours *OpeningHoursCache) *State {
	return &State{Element: e, Zoom: zoom, Floor: floor, ObjectType: ot, Hours: hours, classes: make(map[string]bool)}
}

func (s *State) setClass(name string, set bool) {
	if s.classes == nil {
		s.classes = make(map[string]bool)
	}
	s.classes[name] = set
}

func (s *State) hasClass(name string) bool { return s.classes[name] }
