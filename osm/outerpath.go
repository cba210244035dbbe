package osm

// OuterPath returns the ordered node coordinate sequence of a polygon
// boundary. For a Way this is just its resolved node coordinates. For a
// multipolygon Relation this stitches every "outer" member way into one or
// more closed loops and concatenates them, matching the original's
// appendNodesFromWay/appendNextPath: outer ways may appear in any member
// order and any direction.
func OuterPath(e Element, ds *DataSet) []Coordinate {
	switch e.Kind() {
	case KindWay:
		return ds.WayCoords(e.Way())
	case KindRelation:
		var flat []Coordinate
		for _, loop := range OuterLoops(e.Relation(), ds) {
			flat = append(flat, loop...)
		}
		return flat
	default:
		return nil
	}
}

// OuterLoops stitches a multipolygon relation's "outer"-role member ways
// into closed loops. Each returned loop starts and ends on the same
// coordinate. Ways are visited at most once; a way whose endpoints never
// connect to anything forms its own (possibly open) loop.
func OuterLoops(r *Relation, ds *DataSet) [][]Coordinate {
	return stitchRoleLoops(r, ds, "outer")
}

// InnerLoops stitches a multipolygon relation's "inner"-role member ways
// (the holes) the same way OuterLoops stitches the outer boundary.
func InnerLoops(r *Relation, ds *DataSet) [][]Coordinate {
	return stitchRoleLoops(r, ds, "inner")
}

// wayCoords pairs a member way with its resolved coordinate sequence so the
// stitcher can compare endpoints without re-resolving node ids on every
// candidate search.
type wayCoords struct {
	coords []Coordinate
	used   bool
}

func stitchRoleLoops(r *Relation, ds *DataSet, role string) [][]Coordinate {
	var ways []*wayCoords
	for _, m := range r.Members {
		if m.Type != KindWay || m.Role != role {
			continue
		}
		w, ok := ds.FindWay(m.ID)
		if !ok {
			continue
		}
		coords := ds.WayCoords(w)
		if len(coords) == 0 {
			continue
		}
		ways = append(ways, &wayCoords{coords: coords})
	}

	var loops [][]Coordinate
	for {
		start := firstUnused(ways)
		if start == nil {
			break
		}
		start.used = true
		loop := append([]Coordinate{}, start.coords...)
		loopStart := loop[0]
		end := loop[len(loop)-1]

		for end != loopStart {
			next, reversed := findConnecting(ways, end)
			if next == nil {
				break
			}
			next.used = true
			nc := next.coords
			if reversed {
				nc = reversedCopy(nc)
			}
			loop = append(loop, nc[1:]...)
			end = loop[len(loop)-1]
		}
		loops = append(loops, loop)
	}
	return loops
}

func firstUnused(ways []*wayCoords) *wayCoords {
	for _, w := range ways {
		if !w.used {
			return w
		}
	}
	return nil
}

// nearEndpointToleranceMeters bounds the distance-based tie-break
// findConnecting/findConnectingNodes fall back to when no candidate shares
// end's coordinate exactly: real OSM extracts occasionally encode what is
// conceptually the same boundary corner as two distinct node ids a few
// centimeters apart (independent edits, coordinate rounding on import), and
// without this fallback such a way is left unstitched, breaking the loop
// open. Chosen well below any real gap between distinct rooms.
const nearEndpointToleranceMeters = 0.05

// findConnecting returns the first unused way whose first or last
// coordinate equals end, and whether it must be traversed in reverse (tail
// match) to continue the loop from end. Failing an exact match, it falls
// back to the closest endpoint within nearEndpointToleranceMeters.
func findConnecting(ways []*wayCoords, end Coordinate) (*wayCoords, bool) {
	for _, w := range ways {
		if w.used {
			continue
		}
		if w.coords[0] == end {
			return w, false
		}
		if w.coords[len(w.coords)-1] == end {
			return w, true
		}
	}

	var best *wayCoords
	bestReversed := false
	bestDist := nearEndpointToleranceMeters
	for _, w := range ways {
		if w.used {
			continue
		}
		if d := Distance(w.coords[0], end); d < bestDist {
			best, bestReversed, bestDist = w, false, d
		}
		if d := Distance(w.coords[len(w.coords)-1], end); d < bestDist {
			best, bestReversed, bestDist = w, true, d
		}
	}
	return best, bestReversed
}

func reversedCopy(c []Coordinate) []Coordinate {
	r := make([]Coordinate, len(c))
	for i, v := range c {
		r[len(c)-1-i] = v
	}
	return r
}

// OuterPathNodes is OuterPath's node-preserving counterpart: it resolves the
// boundary as *Node pointers rather than bare coordinates, for callers that
// need per-node tags along the boundary (the navmesh wall extruder checks
// each node for door=* to leave a gap).
func OuterPathNodes(e Element, ds *DataSet) []*Node {
	switch e.Kind() {
	case KindWay:
		return ds.WayNodes(e.Way())
	case KindRelation:
		var flat []*Node
		for _, loop := range stitchRoleNodeLoops(e.Relation(), ds, "outer") {
			flat = append(flat, loop...)
		}
		return flat
	default:
		return nil
	}
}

// OuterLoopNodes is OuterLoops' node-preserving counterpart: each returned
// slice is one stitched outer loop's nodes, kept separate rather than
// flattened so a caller walking segment-by-segment (the navmesh wall
// extruder) never bridges the gap between two unrelated loops of the same
// multipolygon.
func OuterLoopNodes(r *Relation, ds *DataSet) [][]*Node {
	return stitchRoleNodeLoops(r, ds, "outer")
}

// InnerLoopNodes is InnerLoops' node-preserving counterpart.
func InnerLoopNodes(r *Relation, ds *DataSet) [][]*Node {
	return stitchRoleNodeLoops(r, ds, "inner")
}

type wayNodes struct {
	nodes []*Node
	used  bool
}

func stitchRoleNodeLoops(r *Relation, ds *DataSet, role string) [][]*Node {
	var ways []*wayNodes
	for _, m := range r.Members {
		if m.Type != KindWay || m.Role != role {
			continue
		}
		w, ok := ds.FindWay(m.ID)
		if !ok {
			continue
		}
		nodes := ds.WayNodes(w)
		if len(nodes) == 0 {
			continue
		}
		ways = append(ways, &wayNodes{nodes: nodes})
	}

	var loops [][]*Node
	for {
		start := firstUnusedNodes(ways)
		if start == nil {
			break
		}
		start.used = true
		loop := append([]*Node{}, start.nodes...)
		loopStartID := loop[0].ID
		endID := loop[len(loop)-1].ID

		for endID != loopStartID {
			next, reversed := findConnectingNodes(ways, endID, loop[len(loop)-1].Coord)
			if next == nil {
				break
			}
			next.used = true
			nn := next.nodes
			if reversed {
				nn = reversedNodeCopy(nn)
			}
			loop = append(loop, nn[1:]...)
			endID = loop[len(loop)-1].ID
		}
		loops = append(loops, loop)
	}
	return loops
}

func firstUnusedNodes(ways []*wayNodes) *wayNodes {
	for _, w := range ways {
		if !w.used {
			return w
		}
	}
	return nil
}

// findConnectingNodes is findConnecting's node-preserving counterpart: ids
// still take priority (the common case, an exact shared node), falling back
// to the same distance tie-break by coordinate when no id matches.
func findConnectingNodes(ways []*wayNodes, endID int64, endCoord Coordinate) (*wayNodes, bool) {
	for _, w := range ways {
		if w.used {
			continue
		}
		if w.nodes[0].ID == endID {
			return w, false
		}
		if w.nodes[len(w.nodes)-1].ID == endID {
			return w, true
		}
	}

	var best *wayNodes
	bestReversed := false
	bestDist := nearEndpointToleranceMeters
	for _, w := range ways {
		if w.used {
			continue
		}
		if d := Distance(w.nodes[0].Coord, endCoord); d < bestDist {
			best, bestReversed, bestDist = w, false, d
		}
		if d := Distance(w.nodes[len(w.nodes)-1].Coord, endCoord); d < bestDist {
			best, bestReversed, bestDist = w, true, d
		}
	}
	return best, bestReversed
}

func reversedNodeCopy(n []*Node) []*Node {
	r := make([]*Node, len(n))
	for i, v := range n {
		r[len(n)-1-i] = v
	}
	return r
}

// RecomputeBoundingBox recomputes an element's bounding box by union over
// its members, for use when an external/cached bbox is absent or untrusted.
func RecomputeBoundingBox(e Element, ds *DataSet) BoundingBox {
	switch e.Kind() {
	case KindNode:
		return e.BoundingBox()
	case KindWay:
		var bb BoundingBox
		for _, c := range ds.WayCoords(e.Way()) {
			bb = bb.Expand(c)
		}
		return bb
	case KindRelation:
		var bb BoundingBox
		for _, m := range e.Relation().Members {
			child := ds.Element(m.Type, m.ID)
			if child.IsNull() {
				continue
			}
			bb = bb.Unite(RecomputeBoundingBox(child, ds))
		}
		return bb
	default:
		return BoundingBox{}
	}
}
