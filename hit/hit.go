// Package hit resolves a screen position to the semantically best scene
// graph item: the geometry tests and tie-break rule from the Painter
// Renderer's sibling component.
package hit

import (
	"math"

	"github.com/indoormapgo/indoormap/scene"
)

// ItemAt returns the best-matching item at screenPos, or nil if nothing
// there contains the point.
func ItemAt(screenPos scene.Point, graph *scene.SceneGraph, view *scene.View) *scene.SceneGraphItem {
	candidates := ItemsAt(screenPos, graph, view)
	if len(candidates) == 0 {
		return nil
	}
	if len(candidates) == 1 {
		return candidates[0]
	}

	// Prefer the topmost (last in ascending layer/z order) candidate with
	// fill alpha >= 0.5; otherwise the smallest bounding-box area.
	for i := len(candidates) - 1; i >= 0; i-- {
		if fillAlpha(candidates[i].Payload) >= 0.5 {
			return candidates[i]
		}
	}

	best := candidates[0]
	bestArea := best.Payload.BoundingBox().Area()
	for _, c := range candidates[1:] {
		if a := c.Payload.BoundingBox().Area(); a < bestArea {
			best, bestArea = c, a
		}
	}
	return best
}

// ItemsAt returns every item at screenPos, in ascending (layer, z-index)
// order, so UI code can offer a "stacked items here" picker.
func ItemsAt(screenPos scene.Point, graph *scene.SceneGraph, view *scene.View) []*scene.SceneGraphItem {
	scenePos := view.MapScreenToScene(screenPos)
	var out []*scene.SceneGraphItem
	for _, items := range graph.Ranges() {
		for i := range items {
			item := &items[i]
			if containsPoint(item, scenePos, screenPos, view) {
				out = append(out, item)
			}
		}
	}
	return out
}

func containsPoint(item *scene.SceneGraphItem, scenePos, screenPos scene.Point, view *scene.View) bool {
	switch p := item.Payload.(type) {
	case *scene.PolygonItem:
		if !p.BoundingBox().Contains(scenePos) {
			return false
		}
		return pointInRing(p.Ring, scenePos)
	case *scene.MultiPolygonItem:
		if !p.BoundingBox().Contains(scenePos) {
			return false
		}
		if !pointInRing(p.Outer, scenePos) {
			return false
		}
		for _, inner := range p.Inner {
			if pointInRing(inner, scenePos) {
				return false
			}
		}
		return true
	case *scene.PolylineItem:
		threshold := view.MapScreenDistanceToSceneDistance(1) + p.StrokeWidth + p.CasingWidth
		return distanceToPolyline(p.Points, scenePos) <= threshold
	case *scene.LabelItem:
		var pos scene.Point
		if p.Space() == scene.HUDSpace {
			pos = screenPos
		} else {
			pos = scenePos
		}
		return p.BoundingBox().Contains(pos)
	default:
		return false
	}
}

// pointInRing implements the even-odd point-in-polygon test.
func pointInRing(ring []scene.Point, p scene.Point) bool {
	if len(ring) < 3 {
		return false
	}
	inside := false
	j := len(ring) - 1
	for i := 0; i < len(ring); i++ {
		a, b := ring[i], ring[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if p.X < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

func distanceToPolyline(points []scene.Point, p scene.Point) float64 {
	if len(points) == 0 {
		return math.Inf(1)
	}
	best := math.Inf(1)
	for i := 1; i < len(points); i++ {
		if d := distanceToSegment(points[i-1], points[i], p); d < best {
			best = d
		}
	}
	if len(points) == 1 {
		best = distance(points[0], p)
	}
	return best
}

func distanceToSegment(a, b, p scene.Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return distance(a, p)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	proj := scene.Point{X: a.X + t*dx, Y: a.Y + t*dy}
	return distance(proj, p)
}

func distance(a, b scene.Point) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func fillAlpha(p scene.Payload) float64 {
	switch v := p.(type) {
	case *scene.PolygonItem:
		return float64(v.FillColor.A) / 255
	case *scene.MultiPolygonItem:
		return float64(v.FillColor.A) / 255
	default:
		return 0
	}
}
