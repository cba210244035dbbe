package osm

import "fmt"

// Kind discriminates the element variants held by an Element reference and
// the role type recorded on a relation Member.
type Kind uint8

const (
	KindNull Kind = iota
	KindNode
	KindWay
	KindRelation
)

func (k Kind) String() string {
	switch k {
	case KindNode:
		return "node"
	case KindWay:
		return "way"
	case KindRelation:
		return "relation"
	default:
		return "null"
	}
}

// Node is a single point with tags.
type Node struct {
	ID    int64
	Coord Coordinate
	Tags  Tags
}

// Way is an ordered sequence of node ids with tags and a cached bbox. BBox
// is populated by the loader from the resolved node coordinates; callers
// that distrust it can call RecomputeBoundingBox.
type Way struct {
	ID    int64
	Refs  []int64
	Tags  Tags
	BBox  BoundingBox
}

// IsClosed reports whether the way's first and last node ids match (and it
// has at least one node), the structural definition of an OSM area.
func (w *Way) IsClosed() bool {
	return len(w.Refs) > 1 && w.Refs[0] == w.Refs[len(w.Refs)-1]
}

// Member is one relation member: its referenced id, role string, and the
// kind of element being referenced.
type Member struct {
	ID   int64
	Role string
	Type Kind
}

// Relation is an ordered sequence of members with tags and a cached bbox.
type Relation struct {
	ID       int64
	Members  []Member
	Tags     Tags
	BBox     BoundingBox
}

// IsMultipolygon reports whether the relation carries type=multipolygon.
func (r *Relation) IsMultipolygon(table *KeyTable) bool {
	v, ok := r.Tags.GetLiteral("type", table)
	return ok && v == "multipolygon"
}

// Element is a discriminated reference over {Null, Node, Way, Relation},
// the Go replacement for the tagged-pointer element reference: a single
// value that can name any of the four variants without dynamic dispatch.
// Its lifetime is tied to the DataSet that owns the pointed-to storage.
type Element struct {
	kind Kind
	node *Node
	way  *Way
	rel  *Relation
}

// NodeElement wraps n as an Element.
func NodeElement(n *Node) Element { return Element{kind: KindNode, node: n} }

// WayElement wraps w as an Element.
func WayElement(w *Way) Element { return Element{kind: KindWay, way: w} }

// RelationElement wraps r as an Element.
func RelationElement(r *Relation) Element { return Element{kind: KindRelation, rel: r} }

// IsNull reports whether the Element names nothing.
func (e Element) IsNull() bool { return e.kind == KindNull }

// Kind returns the variant held.
func (e Element) Kind() Kind { return e.kind }

// Node returns the underlying *Node, or nil if this Element is not a node.
func (e Element) Node() *Node { return e.node }

// Way returns the underlying *Way, or nil if this Element is not a way.
func (e Element) Way() *Way { return e.way }

// Relation returns the underlying *Relation, or nil if this Element is not
// a relation.
func (e Element) Relation() *Relation { return e.rel }

// ID returns the element's stable OSM id, or 0 for a null Element.
func (e Element) ID() int64 {
	switch e.kind {
	case KindNode:
		return e.node.ID
	case KindWay:
		return e.way.ID
	case KindRelation:
		return e.rel.ID
	default:
		return 0
	}
}

// Tags returns the element's tag set, or nil for a null Element.
func (e Element) Tags() Tags {
	switch e.kind {
	case KindNode:
		return e.node.Tags
	case KindWay:
		return e.way.Tags
	case KindRelation:
		return e.rel.Tags
	default:
		return nil
	}
}

// BoundingBox returns the element's cached bbox. For a Node this is a
// degenerate box around its coordinate.
func (e Element) BoundingBox() BoundingBox {
	switch e.kind {
	case KindNode:
		return BoundingBox{Min: e.node.Coord, Max: e.node.Coord}
	case KindWay:
		return e.way.BBox
	case KindRelation:
		return e.rel.BBox
	default:
		return BoundingBox{}
	}
}

// Center returns the element's bounding-box midpoint, not an areal
// centroid, matching the original's center() semantics.
func (e Element) Center() Coordinate {
	if e.kind == KindNode {
		return e.node.Coord
	}
	return e.BoundingBox().Center()
}

// URL returns the openstreetmap.org permalink for the element, a small
// debugging/UI convenience carried from the original implementation.
func (e Element) URL() string {
	if e.IsNull() {
		return ""
	}
	return fmt.Sprintf("https://www.openstreetmap.org/%s/%d", e.kind.String(), e.ID())
}

// TagValue looks up an interned key via O(log n) binary search.
func (e Element) TagValue(key TagKey) (string, bool) {
	return e.Tags().Get(key)
}

// TagValueLiteral looks up a key that may not be interned, via linear scan.
func (e Element) TagValueLiteral(key string, table *KeyTable) (string, bool) {
	return e.Tags().GetLiteral(key, table)
}

// ValueLocale resolves key with the key:language_Region / key:language /
// key fallback chain.
func (e Element) ValueLocale(key, language, region string, table *KeyTable) (string, bool) {
	return e.Tags().ValueLocale(key, language, region, table)
}
