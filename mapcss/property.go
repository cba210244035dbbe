// Package mapcss implements the MapCSS 0.2 evaluation model: compiled
// rules are matched against OSM elements given a view state and produce a
// property bag per result layer. The text grammar (parsing MapCSS source
// into rules) is out of scope; styles are built programmatically or loaded
// from a pre-serialized table.
package mapcss

// Property enumerates every declaration property the evaluator recognizes,
// grouped the way the original declaration model groups them: general,
// line, casing, area, icon, label, shield.
type Property int

const (
	ZIndex Property = iota

	// Line properties.
	Width
	Color
	Opacity
	Dashes
	Image
	LineCap
	LineJoin

	// Casing properties.
	CasingWidth
	CasingColor
	CasingOpacity
	CasingDashes
	CasingLineCap
	CasingLineJoin

	// Area properties.
	FillColor
	FillOpacity
	FillImage

	// Icon properties.
	IconImage
	IconWidth
	IconHeight
	IconOpacity
	IconColor
	AllowTextOverlap
	AllowIconOverlap

	// Label properties.
	FontFamily
	FontSize
	FontWeight
	FontStyle
	FontVariant
	TextDecoration
	TextTransform
	TextColor
	TextOpacity
	TextPosition
	TextOffset
	MaxWidth
	Text
	TextHaloColor
	TextHaloRadius

	// Shield properties.
	ShieldColor
	ShieldOpacity
	ShieldFrameColor
	ShieldFrameWidth
	ShieldCasingColor
	ShieldCasingWidth
	ShieldText
	ShieldImage
	ShieldShape

	// Extrude is the navmesh builder's wall-extrusion height in meters. It
	// carries no PropertyFlag of its own: the filter styles that set it are
	// evaluated for navmesh construction, not scene rendering, so nothing
	// downstream needs to test ResultLayer.HasAreaProperties/HasLineProperties
	// against it.
	Extrude

	propertyCount
)

// PropertyFlag groups properties into the capability families the Scene
// Controller checks: "does this result layer carry any line/area/label
// property at all".
type PropertyFlag uint8

const (
	AreaProperty PropertyFlag = 1 << iota
	LineProperty
	LabelProperty
	CanvasProperty
)

// Flags returns which PropertyFlag groups p belongs to.
func (p Property) Flags() PropertyFlag {
	switch {
	case p == FillColor || p == FillOpacity || p == FillImage:
		return AreaProperty
	case p >= Width && p <= ShieldShape && p != FillColor && p != FillOpacity && p != FillImage:
		if p >= IconImage && p <= AllowIconOverlap {
			return LabelProperty
		}
		if p >= FontFamily && p <= TextHaloRadius {
			return LabelProperty
		}
		if p >= ShieldColor && p <= ShieldShape {
			return LabelProperty
		}
		return LineProperty
	default:
		return 0
	}
}

// Unit is the measurement unit a numeric declaration value is expressed in.
type Unit int

const (
	Pixels Unit = iota
	Points
	Meters
)

// Position selects where a label is anchored relative to its element.
type Position int

const (
	PositionLine Position = iota
	PositionCenter
)
