// Package osm implements the tagged-element data model that the rest of the
// pipeline (level, mapcss, scene, navmesh) is built against: nodes, ways,
// relations, their tags, and a DataSet that owns all storage and resolves
// elements by id via binary search.
package osm

import "sort"

// Coordinate stores latitude/longitude as int32 in units of 1e-7 degree to
// avoid floating point drift across repeated transforms.
type Coordinate struct {
	Lat, Lon int32
}

const coordScale = 1e7

// NewCoordinate builds a Coordinate from floating point degrees.
func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Lat: int32(lat * coordScale),
		Lon: int32(lon * coordScale),
	}
}

// LatF returns the latitude in floating point degrees.
func (c Coordinate) LatF() float64 { return float64(c.Lat) / coordScale }

// LonF returns the longitude in floating point degrees.
func (c Coordinate) LonF() float64 { return float64(c.Lon) / coordScale }

// IsValid reports whether the coordinate was ever set (the zero value is a
// valid equator/prime-meridian point in OSM data, so callers that need "no
// coordinate" must track that separately; this just guards against the
// common off-earth sentinel).
func (c Coordinate) IsValid() bool {
	return c.Lat >= -900000000 && c.Lat <= 900000000 && c.Lon >= -1800000000 && c.Lon <= 1800000000
}

// BoundingBox is an axis-aligned box in Coordinate space. A zero BoundingBox
// (Min > Max) is treated as empty.
type BoundingBox struct {
	Min, Max Coordinate
}

// IsEmpty reports whether the box has never been expanded to cover a point.
func (b BoundingBox) IsEmpty() bool {
	return b.Min.Lat > b.Max.Lat || b.Min.Lon > b.Max.Lon
}

// Expand grows the box to include c, initializing it if empty.
func (b BoundingBox) Expand(c Coordinate) BoundingBox {
	if b.IsEmpty() {
		return BoundingBox{Min: c, Max: c}
	}
	if c.Lat < b.Min.Lat {
		b.Min.Lat = c.Lat
	}
	if c.Lon < b.Min.Lon {
		b.Min.Lon = c.Lon
	}
	if c.Lat > b.Max.Lat {
		b.Max.Lat = c.Lat
	}
	if c.Lon > b.Max.Lon {
		b.Max.Lon = c.Lon
	}
	return b
}

// Unite returns the smallest box covering both b and o.
func (b BoundingBox) Unite(o BoundingBox) BoundingBox {
	if b.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return b
	}
	return BoundingBox{
		Min: Coordinate{minI32(b.Min.Lat, o.Min.Lat), minI32(b.Min.Lon, o.Min.Lon)},
		Max: Coordinate{maxI32(b.Max.Lat, o.Max.Lat), maxI32(b.Max.Lon, o.Max.Lon)},
	}
}

// Intersects reports whether b and o overlap.
func (b BoundingBox) Intersects(o BoundingBox) bool {
	if b.IsEmpty() || o.IsEmpty() {
		return false
	}
	return b.Min.Lat <= o.Max.Lat && b.Max.Lat >= o.Min.Lat &&
		b.Min.Lon <= o.Max.Lon && b.Max.Lon >= o.Min.Lon
}

// Contains reports whether c falls within b.
func (b BoundingBox) Contains(c Coordinate) bool {
	if b.IsEmpty() {
		return false
	}
	return c.Lat >= b.Min.Lat && c.Lat <= b.Max.Lat && c.Lon >= b.Min.Lon && c.Lon <= b.Max.Lon
}

// Center returns the box's midpoint, not an areal centroid.
func (b BoundingBox) Center() Coordinate {
	return Coordinate{
		Lat: (b.Min.Lat + b.Max.Lat) / 2,
		Lon: (b.Min.Lon + b.Max.Lon) / 2,
	}
}

func minI32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func maxI32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

// TagKey is a compact handle for a tag key, resolved once at style-compile
// time against a DataSet's KeyTable. The zero value is invalid.
type TagKey int32

// InvalidTagKey is returned by lookups that find no matching key.
const InvalidTagKey TagKey = -1

// KeyTable interns tag key strings into small integers shared by a DataSet's
// tags and any MapCSS style compiled against that DataSet.
type KeyTable struct {
	strings []string
	index   map[string]TagKey
}

// NewKeyTable returns an empty table.
func NewKeyTable() *KeyTable {
	return &KeyTable{index: make(map[string]TagKey)}
}

// Intern returns the key for s, creating one if s has not been seen before.
func (t *KeyTable) Intern(s string) TagKey {
	if k, ok := t.index[s]; ok {
		return k
	}
	k := TagKey(len(t.strings))
	t.strings = append(t.strings, s)
	t.index[s] = k
	return k
}

// Lookup returns the key for s without interning it.
func (t *KeyTable) Lookup(s string) (TagKey, bool) {
	k, ok := t.index[s]
	return k, ok
}

// String resolves a key back to its string form.
func (t *KeyTable) String(k TagKey) string {
	if k < 0 || int(k) >= len(t.strings) {
		return ""
	}
	return t.strings[k]
}

// Tag is a single interned-key/value pair.
type Tag struct {
	Key   TagKey
	Value string
}

// Tags is a tag list sorted by interned key, enabling binary-search lookup.
type Tags []Tag

// SortByKey orders tags by their interned key, the precondition for Get.
func (t Tags) SortByKey() {
	sort.Slice(t, func(i, j int) bool { return t[i].Key < t[j].Key })
}

// Get performs an O(log n) binary search lookup by interned key.
func (t Tags) Get(key TagKey) (string, bool) {
	i := sort.Search(len(t), func(i int) bool { return t[i].Key >= key })
	if i < len(t) && t[i].Key == key {
		return t[i].Value, true
	}
	return "", false
}

// Has reports whether key is present.
func (t Tags) Has(key TagKey) bool {
	_, ok := t.Get(key)
	return ok
}

// GetLiteral performs a linear scan for a key that was never interned
// against table, resolving each tag's key string for comparison.
func (t Tags) GetLiteral(key string, table *KeyTable) (string, bool) {
	if k, ok := table.Lookup(key); ok {
		return t.Get(k)
	}
	for _, tag := range t {
		if table.String(tag.Key) == key {
			return tag.Value, true
		}
	}
	return "", false
}

// ValueLocale resolves key with a locale fallback chain: key:language_Region,
// then key:language, then the bare key.
func (t Tags) ValueLocale(key, language, region string, table *KeyTable) (string, bool) {
	if language != "" && region != "" {
		if v, ok := t.GetLiteral(key+":"+language+"_"+region, table); ok {
			return v, true
		}
	}
	if language != "" {
		if v, ok := t.GetLiteral(key+":"+language, table); ok {
			return v, true
		}
	}
	return t.GetLiteral(key, table)
}

// Clone returns an independent copy of t.
func (t Tags) Clone() Tags {
	c := make(Tags, len(t))
	copy(c, t)
	return c
}
