package scene

import (
	"image/color"
	"strings"

	"github.com/indoormapgo/indoormap/level"
	"github.com/indoormapgo/indoormap/logging"
	"github.com/indoormapgo/indoormap/mapcss"
	"github.com/indoormapgo/indoormap/osm"
	"go.uber.org/zap"
)

// Controller builds and rebuilds a SceneGraph from a MapData, a compiled
// style, and the active View.
type Controller struct {
	Data    *level.MapData
	Style   *mapcss.Style
	View    *View
	Overlay level.OverlaySource

	result *mapcss.Result
	hours  *mapcss.OpeningHoursCache
}

// NewController returns a Controller ready for UpdateScene.
func NewController(data *level.MapData, style *mapcss.Style, view *View) *Controller {
	return &Controller{
		Data: data, Style: style, View: view,
		result: mapcss.NewResult(), hours: mapcss.NewOpeningHoursCache(),
	}
}

// UpdateScene rebuilds the scene graph for the controller's current View:
// resolves the active floor's elements, evaluates the style per element,
// converts non-empty result layers into scene items by geometry
// capability, sorts by (layer, z-index), and resolves the canvas
// background/foreground. Per-element evaluation or geometry failures are
// logged and the element is skipped; a bad element never aborts the
// rebuild.
func (c *Controller) UpdateScene() *SceneGraph {
	graph := NewSceneGraph()
	humanFloor := level.HumanFloor(c.View.Floor)

	for _, e := range c.resolveElements() {
		ot := mapcss.ClassifyObjectType(e, c.Data.Data, c.Style.AreaKey())
		state := mapcss.NewState(e, c.View.Zoom, humanFloor, ot, c.hours)
		if err := c.Style.Evaluate(state, c.result); err != nil {
			logging.Get().Debug("scene: evaluate failed, skipping element",
				zap.Int64("id", e.ID()), zap.Error(err))
			continue
		}
		for _, layer := range c.result.Layers() {
			c.emitItems(graph, e, ot, layer)
		}
	}

	graph.Finalize()
	c.evaluateCanvas(graph)
	return graph
}

// resolveElements implements step 1: the active floor's own bucket, plus
// every element that spans all floors, plus overlay-provided elements,
// minus elements hidden by the overlay.
func (c *Controller) resolveElements() []osm.Element {
	elements := c.Data.ElementsOnFloor(c.View.Floor)

	var hidden *osm.IDSet
	if c.Overlay != nil {
		elements = append(elements, c.Overlay.ElementsOnFloor(c.View.Floor)...)
		hidden = c.Overlay.HiddenIDs()
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

func (c *Controller) emitItems(graph *SceneGraph, e osm.Element, ot mapcss.ObjectType, layer *mapcss.ResultLayer) {
	z := zIndexOf(layer)

	if layer.HasAreaProperties() && ot == mapcss.AreaType {
		if item := c.buildAreaItem(e, layer); item != nil {
			graph.Add(SceneGraphItem{Layer: layer.Layer, ZIndex: z, Element: e, Payload: item})
		}
	}
	if layer.HasLineProperties() && ot == mapcss.LineType {
		if item := c.buildLineItem(e, layer); item != nil {
			graph.Add(SceneGraphItem{Layer: layer.Layer, ZIndex: z, Element: e, Payload: item})
		}
	}
	if layer.HasLabelProperties() {
		if item := c.buildLabelItem(e, layer); item != nil {
			graph.Add(SceneGraphItem{Layer: layer.Layer, ZIndex: z, Element: e, Payload: item})
		}
	}
}

// buildAreaItem emits a MultiPolygonItem when the geometry needs even-odd
// fill — a multipolygon relation (always, across its outer/inner loops) or
// a plain closed way whose outer ring crosses itself — and a PolygonItem
// otherwise.
func (c *Controller) buildAreaItem(e osm.Element, layer *mapcss.ResultLayer) Payload {
	fill := colorOf(layer, mapcss.FillColor)
	casingColor := colorOf(layer, mapcss.CasingColor)
	casingWidth := numberOf(layer, mapcss.CasingWidth)

	if e.Kind() == osm.KindRelation {
		outerLoops := osm.OuterLoops(e.Relation(), c.Data.Data)
		if len(outerLoops) == 0 {
			return nil
		}
		innerLoops := osm.InnerLoops(e.Relation(), c.Data.Data)
		outer := projectLoop(outerLoops[0])
		var inner [][]Point
		for _, l := range innerLoops {
			inner = append(inner, projectLoop(l))
		}
		return NewMultiPolygonItem(outer, inner, fill, casingColor, casingWidth)
	}

	ring := projectLoop(osm.OuterPath(e, c.Data.Data))
	if len(ring) == 0 {
		return nil
	}
	if ringSelfIntersects(ring) {
		return NewMultiPolygonItem(ring, nil, fill, casingColor, casingWidth)
	}
	return NewPolygonItem(ring, fill, casingColor, casingWidth)
}

func (c *Controller) buildLineItem(e osm.Element, layer *mapcss.ResultLayer) Payload {
	if e.Kind() != osm.KindWay {
		return nil
	}
	coords := c.Data.Data.WayCoords(e.Way())
	if len(coords) < 2 {
		return nil
	}
	points := projectLoop(coords)
	strokeColor := colorOf(layer, mapcss.Color)
	strokeWidth := numberOf(layer, mapcss.Width)
	casingColor := colorOf(layer, mapcss.CasingColor)
	casingWidth := numberOf(layer, mapcss.CasingWidth)
	return NewPolylineItem(points, strokeColor, strokeWidth, casingColor, casingWidth)
}

func (c *Controller) buildLabelItem(e osm.Element, layer *mapcss.ResultLayer) Payload {
	d, ok := layer.Get(mapcss.Text)
	if !ok {
		return nil
	}
	template, _ := d.Text()
	text := resolveLabelText(template, e, c.Data.Data)
	if text == "" {
		return nil
	}

	label := NewLabelItem(Project(e.Center()), text)
	if d, ok := layer.Get(mapcss.FontFamily); ok {
		label.FontFamily, _ = d.Text()
	}
	if d, ok := layer.Get(mapcss.FontSize); ok {
		label.FontSize, _ = d.Number()
	}
	if d, ok := layer.Get(mapcss.IconImage); ok {
		label.Icon, _ = d.Text()
	}
	if d, ok := layer.Get(mapcss.ShieldImage); ok {
		label.Shield, _ = d.Text()
	}
	label.TextColor = colorOf(layer, mapcss.TextColor)
	label.HaloColor = colorOf(layer, mapcss.TextHaloColor)
	label.HaloRadius = numberOf(layer, mapcss.TextHaloRadius)
	return label
}

// resolveLabelText handles the single "{key}" template form styles use for
// text declarations, falling back to a literal string otherwise.
func resolveLabelText(template string, e osm.Element, ds *osm.DataSet) string {
	if strings.HasPrefix(template, "{") && strings.HasSuffix(template, "}") {
		key := template[1 : len(template)-1]
		v, _ := e.TagValueLiteral(key, ds.Keys)
		return v
	}
	return template
}

func (c *Controller) evaluateCanvas(graph *SceneGraph) {
	result := mapcss.NewResult()
	if err := c.Style.EvaluateCanvas(c.View.Zoom, result); err != nil {
		logging.Get().Debug("scene: canvas evaluate failed", zap.Error(err))
		return
	}
	layer := result.DefaultLayer()
	graph.Background = colorOf(layer, mapcss.FillColor)
	graph.Foreground = colorOf(layer, mapcss.TextColor)
}

func projectLoop(coords []osm.Coordinate) []Point {
	pts := make([]Point, len(coords))
	for i, c := range coords {
		pts[i] = Project(c)
	}
	return pts
}

func colorOf(layer *mapcss.ResultLayer, p mapcss.Property) color.RGBA {
	if d, ok := layer.Get(p); ok {
		if c, ok2 := d.ColorRGBA(); ok2 {
			return c
		}
	}
	return color.RGBA{}
}

func numberOf(layer *mapcss.ResultLayer, p mapcss.Property) float64 {
	if d, ok := layer.Get(p); ok {
		if n, ok2 := d.Number(); ok2 {
			return n
		}
	}
	return 0
}

// zIndexOf reads a layer's z-index declaration, 0 when it has none.
func zIndexOf(layer *mapcss.ResultLayer) int {
	return int(numberOf(layer, mapcss.ZIndex))
}
