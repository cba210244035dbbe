package navmesh

import (
	"math"
	"sort"

	"github.com/indoormapgo/indoormap/level"
	"github.com/indoormapgo/indoormap/mapcss"
	"github.com/indoormapgo/indoormap/osm"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// emitGeometry implements navmesh step 3: area rules with positive fill
// opacity are triangulated, line rules with positive stroke width are
// stroked into a triangle strip (with per-vertex height interpolation on a
// 2-node stair/ramp way), and extrude rules wall-extrude the outer/inner
// boundary skipping door=* segments.
func (b *Builder) emitGeometry(e osm.Element, ot mapcss.ObjectType, layer *mapcss.ResultLayer, floor level.MapLevel, y float64, soup *TriangleSoup) {
	if ot == mapcss.AreaType && positive(layer, mapcss.FillOpacity) {
		b.emitAreaTriangles(e, y, soup)
	}
	if ot == mapcss.LineType && positive(layer, mapcss.Width) {
		b.emitLineStroke(e, layer, floor, y, soup)
	}
	if h, ok := numberDecl(layer, mapcss.Extrude); ok && h > 0 {
		b.emitWalls(e, y, y+h, soup)
	}
}

func positive(layer *mapcss.ResultLayer, p mapcss.Property) bool {
	v, ok := numberDecl(layer, p)
	return ok && v > 0
}

func numberDecl(layer *mapcss.ResultLayer, p mapcss.Property) (float64, bool) {
	d, ok := layer.Get(p)
	if !ok {
		return 0, false
	}
	return d.Number()
}

func (b *Builder) emitAreaTriangles(e osm.Element, y float64, soup *TriangleSoup) {
	outers, holesByOuter := b.outerAndInnerRings(e)
	for i, outer := range outers {
		verts, tris := triangulatePolygon(outer, holesByOuter[i])
		if len(tris) == 0 {
			continue
		}
		base := int32(len(soup.Vertices))
		for _, v := range verts {
			soup.addVertex([3]float64{v.X(), y, v.Y()})
		}
		for _, t := range tris {
			soup.addTriangle(base+int32(t[0]), base+int32(t[1]), base+int32(t[2]), Walkable)
		}
	}
}

// outerAndInnerRings projects a Way or multipolygon Relation into local
// navmesh-plane rings, assigning each inner (hole) loop to the outer loop
// that geometrically contains it via an odd-even point test.
func (b *Builder) outerAndInnerRings(e osm.Element) ([]orb.Ring, [][]orb.Ring) {
	if e.Kind() == osm.KindWay {
		ring := b.projectRing(osm.OuterPath(e, b.Data.Data))
		if len(ring) == 0 {
			return nil, nil
		}
		return []orb.Ring{ring}, [][]orb.Ring{nil}
	}
	if e.Kind() != osm.KindRelation {
		return nil, nil
	}
	var outers []orb.Ring
	for _, loop := range osm.OuterLoops(e.Relation(), b.Data.Data) {
		if r := b.projectRing(loop); len(r) > 0 {
			outers = append(outers, r)
		}
	}
	holesByOuter := make([][]orb.Ring, len(outers))
	for _, loop := range osm.InnerLoops(e.Relation(), b.Data.Data) {
		hole := b.projectRing(loop)
		if len(hole) == 0 {
			continue
		}
		idx := containingOuter(outers, hole[0])
		if idx < 0 {
			continue
		}
		holesByOuter[idx] = append(holesByOuter[idx], hole)
	}
	return outers, holesByOuter
}

func containingOuter(outers []orb.Ring, p orb.Point) int {
	for i, outer := range outers {
		if ringContainsPoint(outer, p) {
			return i
		}
	}
	return -1
}

func (b *Builder) projectRing(coords []osm.Coordinate) orb.Ring {
	if len(coords) < 3 {
		return nil
	}
	ring := make(orb.Ring, len(coords))
	for i, c := range coords {
		x, z := b.transform.ToNav(c)
		ring[i] = orb.Point{x, z}
	}
	return ring
}

func (b *Builder) emitLineStroke(e osm.Element, layer *mapcss.ResultLayer, floor level.MapLevel, y float64, soup *TriangleSoup) {
	if e.Kind() != osm.KindWay {
		return
	}
	w := e.Way()
	coords := b.Data.Data.WayCoords(w)
	if len(coords) < 2 {
		return
	}
	width, _ := numberDecl(layer, mapcss.Width)
	half := width / 2

	heights := b.strokeHeights(w, coords, y)

	points := make([]orb.Point, len(coords))
	for i, c := range coords {
		x, z := b.transform.ToNav(c)
		points[i] = orb.Point{x, z}
	}

	for i := 0; i+1 < len(points); i++ {
		nx, nz := segmentNormal(points[i], points[i+1])
		a := points[i]
		bp := points[i+1]

		v0 := soup.addVertex([3]float64{a.X() - nx*half, heights[i], a.Y() - nz*half})
		v1 := soup.addVertex([3]float64{a.X() + nx*half, heights[i], a.Y() + nz*half})
		v2 := soup.addVertex([3]float64{bp.X() - nx*half, heights[i+1], bp.Y() - nz*half})
		v3 := soup.addVertex([3]float64{bp.X() + nx*half, heights[i+1], bp.Y() + nz*half})

		soup.addTriangle(v0, v1, v2, Walkable)
		soup.addTriangle(v1, v3, v2, Walkable)
	}
}

// strokeHeights returns a per-vertex Y for a way's stroke: flat at the
// floor height, unless the way has exactly two nodes belonging to distinct
// known levels (a stair or ramp segment), in which case each of the two
// vertices takes its own endpoint's level height, so the stroked strip
// slopes between them.
func (b *Builder) strokeHeights(w *osm.Way, coords []osm.Coordinate, flatY float64) []float64 {
	heights := make([]float64, len(coords))
	for i := range heights {
		heights[i] = flatY
	}
	if len(w.Refs) != 2 || len(coords) != 2 {
		return heights
	}
	l0, ok0 := b.nodeLevel(w.Refs[0])
	l1, ok1 := b.nodeLevel(w.Refs[1])
	if !ok0 || !ok1 || l0 == l1 {
		return heights
	}
	heights[0] = b.transform.HeightOf(l0)
	heights[1] = b.transform.HeightOf(l1)
	return heights
}

func segmentNormal(a, b orb.Point) (nx, nz float64) {
	dx, dz := b.X()-a.X(), b.Y()-a.Y()
	length := math.Hypot(dx, dz)
	if length == 0 {
		return 0, 0
	}
	return -dz / length, dx / length
}

// emitWalls implements the extrude rule: two quads per boundary segment
// from floorY to topY, skipping any segment incident to a node tagged
// door=* so doors leave gaps in the wall.
func (b *Builder) emitWalls(e osm.Element, floorY, topY float64, soup *TriangleSoup) {
	doorKey := b.Data.Data.Keys.Intern("door")
	for _, loop := range b.outerAndInnerNodeLoops(e) {
		for i := 0; i+1 < len(loop); i++ {
			a, c := loop[i], loop[i+1]
			if hasDoor(a, doorKey) || hasDoor(c, doorKey) {
				continue
			}
			b.emitWallQuad(a.Coord, c.Coord, floorY, topY, soup)
		}
	}
}

func hasDoor(n *osm.Node, doorKey osm.TagKey) bool {
	_, ok := n.Tags.Get(doorKey)
	return ok
}

func (b *Builder) outerAndInnerNodeLoops(e osm.Element) [][]*osm.Node {
	if e.Kind() == osm.KindWay {
		return [][]*osm.Node{b.Data.Data.WayNodes(e.Way())}
	}
	if e.Kind() != osm.KindRelation {
		return nil
	}
	var loops [][]*osm.Node
	loops = append(loops, osm.OuterLoopNodes(e.Relation(), b.Data.Data)...)
	loops = append(loops, osm.InnerLoopNodes(e.Relation(), b.Data.Data)...)
	return loops
}

func (b *Builder) emitWallQuad(a, c osm.Coordinate, floorY, topY float64, soup *TriangleSoup) {
	ax, az := b.transform.ToNav(a)
	cx, cz := b.transform.ToNav(c)

	v0 := soup.addVertex([3]float64{ax, floorY, az})
	v1 := soup.addVertex([3]float64{cx, floorY, cz})
	v2 := soup.addVertex([3]float64{ax, topY, az})
	v3 := soup.addVertex([3]float64{cx, topY, cz})

	soup.addTriangle(v0, v1, v2, Walkable)
	soup.addTriangle(v1, v3, v2, Walkable)
}

// emitLink implements navmesh step 4: a named result layer (anything but
// the null/default layer) is a link rather than geometry. An area element
// whose level tag lists more than one level becomes one bidirectional
// Elevator connection per consecutive level pair at its centroid; a 2-node
// way whose endpoints resolve to distinct known levels becomes one
// Escalator connection, direction taken from the layer name and normalized
// so Backward is stored as Forward with swapped endpoints.
func (b *Builder) emitLink(e osm.Element, ot mapcss.ObjectType, layer *mapcss.ResultLayer, floor level.MapLevel, soup *TriangleSoup) {
	if b.processed.Has(e.ID()) {
		return
	}

	if ot == mapcss.AreaType {
		if b.emitElevatorLink(e, soup) {
			b.processed.Add(e.ID())
		}
		return
	}
	if e.Kind() == osm.KindWay && len(e.Way().Refs) == 2 {
		if b.emitEscalatorLink(e, layer, soup) {
			b.processed.Add(e.ID())
		}
	}
}

func (b *Builder) emitElevatorLink(e osm.Element, soup *TriangleSoup) bool {
	levelKey := b.Data.Data.Keys.Intern("level")
	raw, ok := e.TagValue(levelKey)
	if !ok {
		return false
	}
	levels := level.ParseLevels(raw)
	if len(levels) < 2 {
		return false
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i] < levels[j] })

	cx, cz, ok := b.centroid(e)
	if !ok {
		return false
	}

	for i := 0; i+1 < len(levels); i++ {
		y0 := b.transform.HeightOf(levels[i])
		y1 := b.transform.HeightOf(levels[i+1])
		soup.Connections = append(soup.Connections, OffMeshConnection{
			Start:     [3]float64{cx, y0, cz},
			End:       [3]float64{cx, y1, cz},
			Radius:    b.Params.AgentRadius,
			Flags:     1,
			Area:      Elevator,
			Direction: Bidirectional,
			UserID:    e.ID(),
		})
	}
	return true
}

// centroid returns an area element's outer-ring area centroid in the local
// navmesh plane. A concave outer ring can put this centroid outside the
// polygon (an open TODO carried unresolved from the source, see
// DESIGN.md); no correction is attempted.
func (b *Builder) centroid(e osm.Element) (x, z float64, ok bool) {
	outers, _ := b.outerAndInnerRings(e)
	if len(outers) == 0 {
		return 0, 0, false
	}
	poly := orb.Polygon{outers[0]}
	centroid, area := planar.CentroidArea(poly)
	if area == 0 {
		bbox := orb.MultiPoint(outers[0]).Bound()
		c := bbox.Center()
		return c.X(), c.Y(), true
	}
	return centroid.X(), centroid.Y(), true
}

func (b *Builder) emitEscalatorLink(e osm.Element, layer *mapcss.ResultLayer, soup *TriangleSoup) bool {
	w := e.Way()
	n0, ok0 := b.Data.Data.FindNode(w.Refs[0])
	n1, ok1 := b.Data.Data.FindNode(w.Refs[1])
	if !ok0 || !ok1 {
		return false
	}
	l0, okl0 := b.nodeLevel(n0.ID)
	l1, okl1 := b.nodeLevel(n1.ID)
	if !okl0 || !okl1 || l0 == l1 {
		return false
	}

	start := vec3(b.transform.ToNavHeight(n0.Coord, l0))
	end := vec3(b.transform.ToNavHeight(n1.Coord, l1))
	direction := Bidirectional
	switch layer.Layer {
	case "link_forward":
		direction = Forward
	case "link_backward":
		direction = Forward
		start, end = end, start
	}

	soup.Connections = append(soup.Connections, OffMeshConnection{
		Start:     start,
		End:       end,
		Radius:    b.Params.AgentRadius,
		Flags:     1,
		Area:      Escalator,
		Direction: direction,
		UserID:    e.ID(),
	})
	return true
}

func vec3(x, y, z float64) [3]float64 { return [3]float64{x, y, z} }
