// Package scene builds and holds the z-ordered scene graph the Painter
// Renderer and Hit Detector operate on, and the viewport transforms that
// relate screen pixels to scene (Mercator-projected) coordinates.
package scene

import (
	"math"

	"github.com/indoormapgo/indoormap/level"
	"github.com/indoormapgo/indoormap/osm"
)

// Point is a 2D coordinate in either scene or screen space.
type Point struct{ X, Y float64 }

// Rect is an axis-aligned bounding box.
type Rect struct{ MinX, MinY, MaxX, MaxY float64 }

// IsEmpty reports whether r has never been expanded.
func (r Rect) IsEmpty() bool { return r.MinX > r.MaxX || r.MinY > r.MaxY }

// Expand grows r to include p.
func (r Rect) Expand(p Point) Rect {
	if r.IsEmpty() {
		return Rect{p.X, p.Y, p.X, p.Y}
	}
	return Rect{
		MinX: math.Min(r.MinX, p.X), MinY: math.Min(r.MinY, p.Y),
		MaxX: math.Max(r.MaxX, p.X), MaxY: math.Max(r.MaxY, p.Y),
	}
}

// Intersects reports whether r and o overlap.
func (r Rect) Intersects(o Rect) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return false
	}
	return r.MinX <= o.MaxX && r.MaxX >= o.MinX && r.MinY <= o.MaxY && r.MaxY >= o.MinY
}

// Contains reports whether p falls within r.
func (r Rect) Contains(p Point) bool {
	return !r.IsEmpty() && p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// Area returns r's area, used by the hit detector's smallest-bbox tie-break.
func (r Rect) Area() float64 {
	if r.IsEmpty() {
		return 0
	}
	return (r.MaxX - r.MinX) * (r.MaxY - r.MinY)
}

const earthRadiusMeters = 6371000.0

// Project maps a geographic coordinate to scene space via a Web-Mercator
// projection, Y-flipped so ascending scene-Y (and, after the view's linear
// scene-to-screen map, ascending screen-Y) both move the same direction.
func Project(c osm.Coordinate) Point {
	x := c.LonF() * math.Pi / 180
	latRad := c.LatF() * math.Pi / 180
	y := math.Log(math.Tan(math.Pi/4 + latRad/2))
	return Point{X: x, Y: -y}
}

// Space distinguishes scene-anchored payloads (pan/zoom with the map) from
// HUD payloads (screen-fixed, e.g. a legend or compass).
type Space int

const (
	SceneSpace Space = iota
	HUDSpace
)

// View is the (screen_size, viewport_in_scene, scene_bbox, zoom, floor,
// device_pixel_ratio) tuple every transform is relative to.
type View struct {
	ScreenWidth, ScreenHeight float64
	Viewport                  Rect // visible rect, in scene space
	SceneBBox                 Rect
	Zoom                      int
	Floor                     level.MapLevel
	DevicePixelRatio          float64
}

// MapSceneToScreen maps a scene-space point to device screen pixels.
func (v *View) MapSceneToScreen(p Point) Point {
	sx := (p.X - v.Viewport.MinX) / (v.Viewport.MaxX - v.Viewport.MinX) * v.ScreenWidth
	sy := (p.Y - v.Viewport.MinY) / (v.Viewport.MaxY - v.Viewport.MinY) * v.ScreenHeight
	return Point{X: sx * v.dpr(), Y: sy * v.dpr()}
}

// MapScreenToScene maps a device screen pixel back to scene space.
func (v *View) MapScreenToScene(p Point) Point {
	sx := p.X/v.dpr()/v.ScreenWidth*(v.Viewport.MaxX-v.Viewport.MinX) + v.Viewport.MinX
	sy := p.Y/v.dpr()/v.ScreenHeight*(v.Viewport.MaxY-v.Viewport.MinY) + v.Viewport.MinY
	return Point{X: sx, Y: sy}
}

// MapScreenDistanceToSceneDistance converts a screen-pixel length to the
// equivalent scene-space length along the X axis (the projection is
// locally isotropic enough at indoor-map zoom levels for this to be a
// fair approximation, matching the original's single-scalar transform).
func (v *View) MapScreenDistanceToSceneDistance(d float64) float64 {
	return d / v.dpr() / v.ScreenWidth * (v.Viewport.MaxX - v.Viewport.MinX)
}

// MapMetersToScene converts a physical length in meters to scene-space
// units, using the Mercator scale factor at the viewport's center latitude.
func (v *View) MapMetersToScene(meters float64) float64 {
	centerLat := latOfSceneY((v.Viewport.MinY + v.Viewport.MaxY) / 2)
	scale := math.Cos(centerLat * math.Pi / 180)
	if scale <= 0 {
		scale = 1
	}
	return meters / (earthRadiusMeters * scale)
}

func latOfSceneY(y float64) float64 {
	return (2*math.Atan(math.Exp(-y)) - math.Pi/2) * 180 / math.Pi
}

func (v *View) dpr() float64 {
	if v.DevicePixelRatio <= 0 {
		return 1
	}
	return v.DevicePixelRatio
}
