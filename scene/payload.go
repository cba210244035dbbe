package scene

import "image/color"

// Phase is one pass over a layer with a specific rendering aspect.
type Phase uint8

const (
	Fill Phase = 1 << iota
	Casing
	Stroke
	Label
)

// PhaseSet is a bitset over Phase values.
type PhaseSet uint8

// Has reports whether p is included in the set.
func (s PhaseSet) Has(p Phase) bool { return s&PhaseSet(p) != 0 }

// Payload is the tagged-sum scene-graph item body: Polygon, MultiPolygon,
// Polyline, or Label. Replaces dynamic dispatch with a type switch at
// render/hit-test sites (the original's polymorphic payload, ported to a
// closed Go interface implemented by exactly four types).
type Payload interface {
	RenderPhases() PhaseSet
	Space() Space
	BoundingBox() Rect
}

// PolygonItem is a single-ring filled area (casing optional).
type PolygonItem struct {
	Ring        []Point
	FillColor   color.RGBA
	CasingColor color.RGBA
	CasingWidth float64 // meters; resolved to pixels at render time via View
	bbox        Rect
}

// NewPolygonItem computes the item's bbox from ring.
func NewPolygonItem(ring []Point, fill, casing color.RGBA, casingWidth float64) *PolygonItem {
	return &PolygonItem{Ring: ring, FillColor: fill, CasingColor: casing, CasingWidth: casingWidth, bbox: boundsOf(ring)}
}

func (p *PolygonItem) RenderPhases() PhaseSet { return PhaseSet(Fill | Casing) }
func (p *PolygonItem) Space() Space           { return SceneSpace }
func (p *PolygonItem) BoundingBox() Rect      { return p.bbox }

// MultiPolygonItem is an outer ring plus zero or more inner (hole) rings,
// used when the geometry needs even-odd fill: a multipolygon relation or a
// self-intersecting outer boundary.
type MultiPolygonItem struct {
	Outer       []Point
	Inner       [][]Point
	FillColor   color.RGBA
	CasingColor color.RGBA
	CasingWidth float64
	bbox        Rect
}

// NewMultiPolygonItem computes the item's bbox from its outer ring.
func NewMultiPolygonItem(outer []Point, inner [][]Point, fill, casing color.RGBA, casingWidth float64) *MultiPolygonItem {
	return &MultiPolygonItem{Outer: outer, Inner: inner, FillColor: fill, CasingColor: casing, CasingWidth: casingWidth, bbox: boundsOf(outer)}
}

func (p *MultiPolygonItem) RenderPhases() PhaseSet { return PhaseSet(Fill | Casing) }
func (p *MultiPolygonItem) Space() Space           { return SceneSpace }
func (p *MultiPolygonItem) BoundingBox() Rect      { return p.bbox }

// PolylineItem is an open or closed line stroked with an optional casing
// drawn beneath the main stroke.
type PolylineItem struct {
	Points      []Point
	StrokeColor color.RGBA
	StrokeWidth float64 // meters
	CasingColor color.RGBA
	CasingWidth float64 // meters
	bbox        Rect
}

// NewPolylineItem computes the item's bbox from points.
func NewPolylineItem(points []Point, strokeColor color.RGBA, strokeWidth float64, casingColor color.RGBA, casingWidth float64) *PolylineItem {
	return &PolylineItem{
		Points: points, StrokeColor: strokeColor, StrokeWidth: strokeWidth,
		CasingColor: casingColor, CasingWidth: casingWidth, bbox: boundsOf(points),
	}
}

func (p *PolylineItem) RenderPhases() PhaseSet { return PhaseSet(Stroke | Casing) }
func (p *PolylineItem) Space() Space           { return SceneSpace }
func (p *PolylineItem) BoundingBox() Rect      { return p.bbox }

// LabelItem draws translated-to-pos, rotated-by-angle text with optional
// icon/shield. BBox is nil until the renderer's first draw memoizes it —
// the one mutation the otherwise-pure renderer is allowed to make.
type LabelItem struct {
	Pos         Point
	Angle       float64
	Text        string
	FontFamily  string
	FontSize    float64
	TextColor   color.RGBA
	HaloColor   color.RGBA
	HaloRadius  float64
	Icon        string
	Shield      string
	SpaceHint   Space

	bbox    Rect
	bboxSet bool
}

// NewLabelItem returns a LabelItem with no memoized bbox yet.
func NewLabelItem(pos Point, text string) *LabelItem {
	return &LabelItem{Pos: pos, Text: text, SpaceHint: SceneSpace}
}

func (p *LabelItem) RenderPhases() PhaseSet { return PhaseSet(Label) }
func (p *LabelItem) Space() Space           { return p.SpaceHint }

// BoundingBox returns the memoized draw bbox if the renderer has drawn this
// label at least once, else a degenerate box at Pos.
func (p *LabelItem) BoundingBox() Rect {
	if p.bboxSet {
		return p.bbox
	}
	return Rect{MinX: p.Pos.X, MinY: p.Pos.Y, MaxX: p.Pos.X, MaxY: p.Pos.Y}
}

// SetMeasuredBoundingBox is called by the renderer after it has measured
// and drawn this label's text, memoizing the result for subsequent
// hit-testing and culling.
func (p *LabelItem) SetMeasuredBoundingBox(r Rect) {
	p.bbox = r
	p.bboxSet = true
}

func boundsOf(points []Point) Rect {
	var r Rect
	for _, p := range points {
		r = r.Expand(p)
	}
	return r
}
