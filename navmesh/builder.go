package navmesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/indoormapgo/indoormap/config"
	"github.com/indoormapgo/indoormap/level"
	"github.com/indoormapgo/indoormap/logging"
	"github.com/indoormapgo/indoormap/mapcss"
	"github.com/indoormapgo/indoormap/osm"
	"go.uber.org/zap"
)

// ErrNavmeshStageFailed wraps a downstream voxel/contour/poly/detail-mesh
// stage failure name, matching the error handling design's terminal
// success/failure completion callback.
var ErrNavmeshStageFailed = errors.New("navmesh: stage failed")

// levelAmbiguous is the sentinel recorded for a node seen at conflicting
// single-valued way levels, standing in for the original's INT_MIN.
const levelAmbiguous = level.MapLevel(math.MinInt32)

// AreaType classifies triangle-soup and off-mesh-connection geometry for
// the downstream solver. Per-element area-type resolution from MapCSS is
// an open TODO in the source this was distilled from (see DESIGN.md); this
// codebase hard-codes surface geometry to Walkable and reserves Elevator/
// Escalator for off-mesh connections, matching the original's behavior.
type AreaType uint8

const (
	Walkable AreaType = iota
	Elevator
	Escalator
)

// LinkDirection selects whether an off-mesh connection can be traversed one
// way or both ways.
type LinkDirection uint8

const (
	Forward LinkDirection = iota
	Bidirectional
)

// OffMeshConnection is a directed or bidirectional 3D segment linking two
// points not directly reachable through walkable geometry.
type OffMeshConnection struct {
	Start, End [3]float64
	Radius     float64
	Flags      uint8
	Area       AreaType
	Direction  LinkDirection
	UserID     int64
}

// TriangleSoup is the vertex/triangle/off-mesh-connection buffer the
// main-thread half of the builder assembles and the worker-side solid-voxel
// solver consumes.
type TriangleSoup struct {
	Vertices    [][3]float64
	Triangles   [][3]int32
	AreaIDs     []AreaType
	Connections []OffMeshConnection
}

func (s *TriangleSoup) addVertex(v [3]float64) int32 {
	s.Vertices = append(s.Vertices, v)
	return int32(len(s.Vertices) - 1)
}

func (s *TriangleSoup) addTriangle(a, b, c int32, area AreaType) {
	s.Triangles = append(s.Triangles, [3]int32{a, b, c})
	s.AreaIDs = append(s.AreaIDs, area)
}

// PolyMesh is the opaque output of the downstream solid-voxel -> polygon
// mesh stage. That stage (a Recast-equivalent third-party library) is out
// of scope; this type only exists so VoxelMesher has something to return.
type PolyMesh struct {
	PolyCount int
}

// VoxelMesher is the thin adapter interface to the third-party solid-voxel
// navmesh generator. NullMesher is the test double; a real binding lives
// outside this module.
type VoxelMesher interface {
	BuildFromSoup(*TriangleSoup) (*PolyMesh, error)
}

// NullMesher reports every soup as trivially meshed with one polygon per
// triangle, standing in for a real Recast-equivalent binding in tests.
type NullMesher struct{}

func (NullMesher) BuildFromSoup(soup *TriangleSoup) (*PolyMesh, error) {
	return &PolyMesh{PolyCount: len(soup.Triangles)}, nil
}

// Builder walks every floor of a MapData against a dedicated filter style
// and assembles a TriangleSoup for the downstream voxelizer.
type Builder struct {
	Data           *level.MapData
	FilterStyle    *mapcss.Style
	Equipment      level.OverlaySource
	Params         config.SolverParams
	HeightPerLevel float64

	nodeLevels map[int64]level.MapLevel
	transform  *Transform
	processed  *osm.IDSet
	hours      *mapcss.OpeningHoursCache
	result     *mapcss.Result
}

// NewBuilder returns a Builder over data, ready for Build.
func NewBuilder(data *level.MapData, filterStyle *mapcss.Style, params config.SolverParams) *Builder {
	return &Builder{
		Data:        data,
		FilterStyle: filterStyle,
		Params:      params,
		hours:       mapcss.NewOpeningHoursCache(),
		result:      mapcss.NewResult(),
	}
}

// Build runs the synchronous, main-thread half of navmesh construction:
// level indexing, per-floor per-element style evaluation, geometry
// emission, and off-mesh connection assembly. The returned soup's buffers
// are ready to hand off to a worker via Solve.
func (b *Builder) Build() (*TriangleSoup, error) {
	b.nodeLevels = buildNodeLevelIndex(b.Data.Data)
	b.transform = NewTransform(b.Data.BBox, b.HeightPerLevel)
	b.processed = osm.NewIDSet(64)

	soup := &TriangleSoup{}
	for _, floor := range b.Data.Levels.Levels() {
		b.buildFloor(floor, soup)
	}
	return soup, nil
}

// Solve hands soup's ownership to mesher on a worker goroutine, standing in
// for the source's dedicated solve thread, and reports completion via
// onComplete exactly once, on that goroutine. Callers that need the result
// marshaled back onto a particular thread do so inside onComplete.
func (b *Builder) Solve(soup *TriangleSoup, mesher VoxelMesher, onComplete func(*PolyMesh, error)) {
	go func() {
		mesh, err := mesher.BuildFromSoup(soup)
		if err != nil {
			logging.Get().Error("navmesh: downstream stage failed", zap.Error(err))
			onComplete(nil, fmt.Errorf("%w: %v", ErrNavmeshStageFailed, err))
			return
		}
		onComplete(mesh, nil)
	}()
}

func (b *Builder) buildFloor(floor level.MapLevel, soup *TriangleSoup) {
	y := b.transform.HeightOf(floor)
	humanFloor := level.HumanFloor(floor)
	for _, e := range b.floorElements(floor) {
		ot := mapcss.ClassifyObjectType(e, b.Data.Data, b.FilterStyle.AreaKey())
		state := mapcss.NewState(e, math.MaxInt32, humanFloor, ot, b.hours)
		if err := b.FilterStyle.Evaluate(state, b.result); err != nil {
			logging.Get().Debug("navmesh: evaluate failed, skipping element",
				zap.Int64("id", e.ID()), zap.Error(err))
			continue
		}
		for _, layer := range b.result.Layers() {
			if layer.Layer == "" {
				b.emitGeometry(e, ot, layer, floor, y, soup)
				continue
			}
			b.emitLink(e, ot, layer, floor, soup)
		}
	}
}

func (b *Builder) floorElements(floor level.MapLevel) []osm.Element {
	elements := b.Data.ElementsOnFloor(floor)
	var hidden *osm.IDSet
	if b.Equipment != nil {
		elements = append(elements, b.Equipment.ElementsOnFloor(floor)...)
		hidden = b.Equipment.HiddenIDs()
	}
	if hidden == nil || hidden.Size() == 0 {
		return elements
	}
	out := elements[:0]
	for _, e := range elements {
		if !hidden.Has(e.ID()) {
			out = append(out, e)
		}
	}
	return out
}

// buildNodeLevelIndex implements navmesh step 1: for every way with a
// single-valued level tag on a non-zero full level, record each referenced
// node's level; a node seen at conflicting levels is marked ambiguous.
func buildNodeLevelIndex(ds *osm.DataSet) map[int64]level.MapLevel {
	idx := make(map[int64]level.MapLevel)
	levelKey := ds.Keys.Intern("level")
	for i := range ds.Ways {
		w := &ds.Ways[i]
		v, ok := w.Tags.Get(levelKey)
		if !ok {
			continue
		}
		levels := level.ParseLevels(v)
		if len(levels) != 1 {
			continue
		}
		l := levels[0]
		if l == 0 || !level.IsFullLevel(l) {
			continue
		}
		for _, ref := range w.Refs {
			if existing, seen := idx[ref]; seen {
				if existing != l {
					idx[ref] = levelAmbiguous
				}
				continue
			}
			idx[ref] = l
		}
	}
	return idx
}

func (b *Builder) nodeLevel(id int64) (level.MapLevel, bool) {
	l, ok := b.nodeLevels[id]
	if !ok || l == levelAmbiguous {
		return 0, false
	}
	return l, true
}

