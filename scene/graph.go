package scene

import (
	"image/color"
	"sort"

	"github.com/indoormapgo/indoormap/osm"
)

// SceneGraphItem pairs a payload with the (layer, z-index) ordering key and
// the element it was derived from.
type SceneGraphItem struct {
	Layer   string
	ZIndex  int
	Element osm.Element
	Payload Payload
}

type layerZKey struct {
	Layer  string
	ZIndex int
}

// SceneGraph is an ordered sequence of items plus a range index mapping
// each distinct (layer, z-index) key to a contiguous half-open span in the
// ordered sequence, so rendering and hit-testing can walk ranges in
// ascending (layer, z) without re-sorting.
type SceneGraph struct {
	Items []SceneGraphItem

	Background color.RGBA
	Foreground color.RGBA

	ranges    map[layerZKey][2]int
	rangeKeys []layerZKey
}

// NewSceneGraph returns an empty graph.
func NewSceneGraph() *SceneGraph {
	return &SceneGraph{ranges: make(map[layerZKey][2]int)}
}

// Add appends an item. Call Finalize once all items for this rebuild have
// been added.
func (g *SceneGraph) Add(item SceneGraphItem) {
	g.Items = append(g.Items, item)
}

// Finalize stable-sorts items by (layer, z-index) — equal keys preserve
// insertion order, which in turn follows the natural OSM iteration order
// (relations, then ways, then nodes) — and rebuilds the range index.
func (g *SceneGraph) Finalize() {
	sort.SliceStable(g.Items, func(i, j int) bool {
		a, b := g.Items[i], g.Items[j]
		if a.Layer != b.Layer {
			return a.Layer < b.Layer
		}
		return a.ZIndex < b.ZIndex
	})

	g.ranges = make(map[layerZKey][2]int)
	g.rangeKeys = g.rangeKeys[:0]
	start := 0
	for i := 1; i <= len(g.Items); i++ {
		if i < len(g.Items) && g.Items[i].Layer == g.Items[start].Layer && g.Items[i].ZIndex == g.Items[start].ZIndex {
			continue
		}
		if i > start {
			key := layerZKey{Layer: g.Items[start].Layer, ZIndex: g.Items[start].ZIndex}
			g.ranges[key] = [2]int{start, i}
			g.rangeKeys = append(g.rangeKeys, key)
		}
		start = i
	}
}

// Ranges returns every (layer, z-index) range's item slice, in ascending
// (layer, z) order — the iteration order the renderer and hit detector
// both rely on.
func (g *SceneGraph) Ranges() [][]SceneGraphItem {
	out := make([][]SceneGraphItem, 0, len(g.rangeKeys))
	for _, key := range g.rangeKeys {
		r := g.ranges[key]
		out = append(out, g.Items[r[0]:r[1]])
	}
	return out
}
