package mapcss

import "github.com/indoormapgo/indoormap/osm"

// Selector is one of Basic, Chained (descendant/parent sequence), or Union
// (disjunction). Compile interns every condition's tag key against table;
// Matches tests the selector against a populated State.
type Selector interface {
	Compile(table *osm.KeyTable)
	Matches(state *State) bool
}

// BasicSelector is a single (objectType, zoomRange, conditions, class)
// predicate, the leaf selector shape every Chained/Union selector is built
// from.
type BasicSelector struct {
	ObjectType ObjectType
	MinZoom    int // 0 means unrestricted
	MaxZoom    int // 0 means unrestricted
	Conditions []Condition
	// RequireClasses names classes that must have been set by an earlier
	// rule's ClassDeclaration, within the same evaluation, in rule order.
	RequireClasses []string
}

// Compile interns every condition's tag key.
func (s *BasicSelector) Compile(table *osm.KeyTable) {
	for _, c := range s.Conditions {
		c.Compile(table)
	}
}

// Matches reports whether state satisfies this selector: object type
// matches, zoom is in range, every condition holds, and every required
// class has already been set.
func (s *BasicSelector) Matches(state *State) bool {
	if !objectTypeMatches(s.ObjectType, state) {
		return false
	}
	if s.MinZoom != 0 && state.Zoom < s.MinZoom {
		return false
	}
	if s.MaxZoom != 0 && state.Zoom > s.MaxZoom {
		return false
	}
	tags := state.Element.Tags()
	for _, c := range s.Conditions {
		if !c.Matches(tags) {
			return false
		}
	}
	for _, cls := range s.RequireClasses {
		if !state.hasClass(cls) {
			return false
		}
	}
	return true
}

func objectTypeMatches(sel ObjectType, state *State) bool {
	if sel == AnyType || sel == state.ObjectType {
		return true
	}
	switch sel {
	case WayType:
		return state.Element.Kind() == osm.KindWay
	case RelationType:
		return state.Element.Kind() == osm.KindRelation
	default:
		return false
	}
}

// ChainedSelector matches a descendant/parent sequence of basic selectors.
// This evaluator does not walk a DOM-like ancestry (OSM elements have no
// such structure); a chain matches when every step matches the same
// element, which is the only ancestry MapCSS/0.2 defines for this domain
// (node/way/relation member chains are out of scope per spec.md §1).
type ChainedSelector struct {
	Steps []Selector
}

func (s *ChainedSelector) Compile(table *osm.KeyTable) {
	for _, step := range s.Steps {
		step.Compile(table)
	}
}

func (s *ChainedSelector) Matches(state *State) bool {
	for _, step := range s.Steps {
		if !step.Matches(state) {
			return false
		}
	}
	return true
}

// UnionSelector matches if any of its alternatives match.
type UnionSelector struct {
	Alternatives []Selector
}

func (s *UnionSelector) Compile(table *osm.KeyTable) {
	for _, alt := range s.Alternatives {
		alt.Compile(table)
	}
}

func (s *UnionSelector) Matches(state *State) bool {
	for _, alt := range s.Alternatives {
		if alt.Matches(state) {
			return true
		}
	}
	return false
}
