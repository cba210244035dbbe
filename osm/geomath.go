package osm

import "math"

const earthRadiusMeters = 6371000.0

// Distance returns the great-circle distance in meters between two
// coordinates using the haversine formula, matching the original's
// geomath.cpp distance(lat1,lon1,lat2,lon2). OuterLoops/OuterLoopNodes use
// it as the fallback tie-break when stitching a multipolygon's member ways
// finds no exact endpoint match.
func Distance(a, b Coordinate) float64 {
	lat1, lon1 := a.LatF()*math.Pi/180, a.LonF()*math.Pi/180
	lat2, lon2 := b.LatF()*math.Pi/180, b.LonF()*math.Pi/180
	dLat := lat2 - lat1
	dLon := lon2 - lon1
	s := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(s))
}
