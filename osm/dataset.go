package osm

import "sort"

// DataSet owns all node/way/relation storage for one loaded map. Nodes,
// ways and relations are kept sorted by id so lookups are binary search;
// Elements returned by Find* are non-owning references with lifetime no
// longer than the DataSet itself.
type DataSet struct {
	Nodes     []Node
	Ways      []Way
	Relations []Relation
	Keys      *KeyTable

	finalized bool
}

// NewDataSet returns an empty DataSet with its own key table.
func NewDataSet() *DataSet {
	return &DataSet{Keys: NewKeyTable()}
}

// AddNode appends a node. Call Finalize once loading completes.
func (d *DataSet) AddNode(n Node) { d.Nodes = append(d.Nodes, n); d.finalized = false }

// AddWay appends a way. Call Finalize once loading completes.
func (d *DataSet) AddWay(w Way) { d.Ways = append(d.Ways, w); d.finalized = false }

// AddRelation appends a relation. Call Finalize once loading completes.
func (d *DataSet) AddRelation(r Relation) { d.Relations = append(d.Relations, r); d.finalized = false }

// Finalize sorts all three vectors by id, establishing the invariant that
// Find* methods rely on. It is idempotent and cheap to call again after
// further Add* calls since sort.Slice on an already-sorted slice is O(n).
func (d *DataSet) Finalize() {
	sort.Slice(d.Nodes, func(i, j int) bool { return d.Nodes[i].ID < d.Nodes[j].ID })
	sort.Slice(d.Ways, func(i, j int) bool { return d.Ways[i].ID < d.Ways[j].ID })
	sort.Slice(d.Relations, func(i, j int) bool { return d.Relations[i].ID < d.Relations[j].ID })
	d.finalized = true
}

// FindNode resolves id to a node via binary search.
func (d *DataSet) FindNode(id int64) (*Node, bool) {
	i := sort.Search(len(d.Nodes), func(i int) bool { return d.Nodes[i].ID >= id })
	if i < len(d.Nodes) && d.Nodes[i].ID == id {
		return &d.Nodes[i], true
	}
	return nil, false
}

// FindWay resolves id to a way via binary search.
func (d *DataSet) FindWay(id int64) (*Way, bool) {
	i := sort.Search(len(d.Ways), func(i int) bool { return d.Ways[i].ID >= id })
	if i < len(d.Ways) && d.Ways[i].ID == id {
		return &d.Ways[i], true
	}
	return nil, false
}

// FindRelation resolves id to a relation via binary search.
func (d *DataSet) FindRelation(id int64) (*Relation, bool) {
	i := sort.Search(len(d.Relations), func(i int) bool { return d.Relations[i].ID >= id })
	if i < len(d.Relations) && d.Relations[i].ID == id {
		return &d.Relations[i], true
	}
	return nil, false
}

// Element resolves (kind, id) to an Element, or a null Element if the kind
// is invalid or the id is not found — a way referencing a missing node, or
// a relation member referencing a missing element, is treated as skipped
// rather than an error per the element model's invariants.
func (d *DataSet) Element(kind Kind, id int64) Element {
	switch kind {
	case KindNode:
		if n, ok := d.FindNode(id); ok {
			return NodeElement(n)
		}
	case KindWay:
		if w, ok := d.FindWay(id); ok {
			return WayElement(w)
		}
	case KindRelation:
		if r, ok := d.FindRelation(id); ok {
			return RelationElement(r)
		}
	}
	return Element{}
}

// WayCoords resolves a way's node ids to coordinates, skipping any id that
// does not resolve (an intentionally absent node per the DataSet invariant).
func (d *DataSet) WayCoords(w *Way) []Coordinate {
	coords := make([]Coordinate, 0, len(w.Refs))
	for _, ref := range w.Refs {
		if n, ok := d.FindNode(ref); ok {
			coords = append(coords, n.Coord)
		}
	}
	return coords
}

// WayNodes resolves a way's node ids to *Node pointers, skipping any id that
// does not resolve. Used where a caller needs per-node tags along a
// boundary (e.g. a door=* tag that should leave a gap in an extruded wall),
// not just coordinates.
func (d *DataSet) WayNodes(w *Way) []*Node {
	nodes := make([]*Node, 0, len(w.Refs))
	for _, ref := range w.Refs {
		if n, ok := d.FindNode(ref); ok {
			nodes = append(nodes, n)
		}
	}
	return nodes
}
