// Package navmesh walks a MapData's floors against a dedicated filter style
// and assembles the vertex/triangle/off-mesh-connection buffers a solid-voxel
// pathfinding solver consumes, mirroring the scene pipeline's element →
// style → geometry flow but emitting 3D navigation geometry instead of 2D
// paint items.
package navmesh

import (
	"math"

	"github.com/indoormapgo/indoormap/level"
	"github.com/indoormapgo/indoormap/osm"
)

const earthRadiusMeters = 6371000.0

// DefaultHeightPerLevel is the vertical distance, in meters, between two
// consecutive human floors when no per-building story height is known.
const DefaultHeightPerLevel = 3.0

// Transform maps geographic coordinates onto a local metric XZ plane
// centered on a map's bounding box, and a floor level onto a Y height. It is
// affine (a fixed linear scale plus a translation) and therefore injective
// over any bounded region, matching the navmesh transform invariant.
type Transform struct {
	centerLat, centerLon float64
	metersPerDegLat      float64
	metersPerDegLon      float64
	heightPerLevel       float64
}

// NewTransform centers the transform on bbox's midpoint, scaling longitude
// by the cosine of the center latitude so X/Z distances are locally metric.
func NewTransform(bbox osm.BoundingBox, heightPerLevel float64) *Transform {
	if heightPerLevel <= 0 {
		heightPerLevel = DefaultHeightPerLevel
	}
	center := bbox.Center()
	centerLat := center.LatF()
	metersPerDeg := earthRadiusMeters * math.Pi / 180
	return &Transform{
		centerLat:       centerLat,
		centerLon:       center.LonF(),
		metersPerDegLat: metersPerDeg,
		metersPerDegLon: metersPerDeg * math.Cos(centerLat*math.Pi/180),
		heightPerLevel:  heightPerLevel,
	}
}

// ToNav maps a geographic coordinate to the local (x, z) plane: x increases
// east, z increases north.
func (t *Transform) ToNav(c osm.Coordinate) (x, z float64) {
	x = (c.LonF() - t.centerLon) * t.metersPerDegLon
	z = (c.LatF() - t.centerLat) * t.metersPerDegLat
	return x, z
}

// HeightOf maps a MapLevel to a Y height in meters, floor_level × height_per_level.
func (t *Transform) HeightOf(l level.MapLevel) float64 {
	return float64(l) / 10 * t.heightPerLevel
}

// ToNavHeight combines ToNav and HeightOf into one (x, y, z) triple.
func (t *Transform) ToNavHeight(c osm.Coordinate, l level.MapLevel) (x, y, z float64) {
	x, z = t.ToNav(c)
	y = t.HeightOf(l)
	return x, y, z
}
