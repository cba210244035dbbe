package render

import (
	"image/color"
	"testing"

	"github.com/tdewolff/canvas"

	"github.com/indoormapgo/indoormap/scene"
)

func stubFace(family string, size float64, col color.RGBA) canvas.FontFace {
	return canvas.NewFontFamily(family).Face(size, col, canvas.FontRegular, canvas.FontNormal)
}

func TestRenderSkipsItemsOutsideViewport(t *testing.T) {
	view := &scene.View{
		ScreenWidth: 400, ScreenHeight: 300,
		Viewport: scene.Rect{MinX: -1, MinY: -1, MaxX: 1, MaxY: 1},
	}
	far := scene.NewPolygonItem([]scene.Point{{100, 100}, {101, 100}, {101, 101}, {100, 101}}, color.RGBA{255, 0, 0, 255}, color.RGBA{}, 0)
	near := scene.NewPolygonItem([]scene.Point{{0, 0}, {0.1, 0}, {0.1, 0.1}, {0, 0.1}}, color.RGBA{0, 255, 0, 255}, color.RGBA{}, 0)

	graph := scene.NewSceneGraph()
	graph.Add(scene.SceneGraphItem{Layer: "", ZIndex: 0, Payload: far})
	graph.Add(scene.SceneGraphItem{Layer: "", ZIndex: 1, Payload: near})
	graph.Finalize()

	canv := canvas.New(400, 300)
	ctx := canvas.NewContext(canv)
	r := NewRenderer(stubFace)
	r.Render(graph, view, ctx)
}

// TestDrawLabelWithIconAndShield exercises the full LoadIconAtlas ->
// IconAtlas/IconRect -> drawLabel path: a rotated label naming both an icon
// and a shield resolved from the embedded default atlas.
func TestDrawLabelWithIconAndShield(t *testing.T) {
	if err := LoadDefaultIconAtlas(); err != nil {
		t.Fatalf("LoadDefaultIconAtlas: %v", err)
	}
	if _, ok := IconRect("elevator"); !ok {
		t.Fatal("IconRect(\"elevator\") not found after LoadDefaultIconAtlas")
	}
	if IconAtlas() == nil {
		t.Fatal("IconAtlas() is nil after LoadDefaultIconAtlas")
	}

	view := &scene.View{ScreenWidth: 200, ScreenHeight: 200, Viewport: scene.Rect{MinX: -1, MinY: -1, MaxX: 1, MaxY: 1}}
	label := scene.NewLabelItem(scene.Point{X: 0, Y: 0}, "Elevator")
	label.Angle = 15
	label.Icon = "elevator"
	label.Shield = "stairs"
	label.FontFamily = "sans-serif"
	label.FontSize = 11
	label.TextColor = color.RGBA{A: 255}

	canv := canvas.New(200, 200)
	ctx := canvas.NewContext(canv)
	r := NewRenderer(stubFace)
	r.drawLabel(ctx, view, label)

	if label.BoundingBox().MinX == 0 && label.BoundingBox().MaxX == 0 {
		t.Error("drawLabel did not measure a bounding box")
	}
}
