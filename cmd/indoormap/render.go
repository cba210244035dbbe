package main

import (
	"image/color"

	"github.com/spf13/cobra"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers"
	"go.uber.org/zap"

	"github.com/indoormapgo/indoormap/level"
	"github.com/indoormapgo/indoormap/logging"
	"github.com/indoormapgo/indoormap/render"
	"github.com/indoormapgo/indoormap/scene"
)

var (
	renderOut    string
	renderWidth  float64
	renderHeight float64
	renderFloor  int32
	renderZoom   int
)

var renderCmd = &cobra.Command{
	Use:   "render <path.json>",
	Short: "Paint one floor of an indoor extract to a PNG",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "out.png", "output PNG path")
	renderCmd.Flags().Float64Var(&renderWidth, "width", 1024, "output width, pixels")
	renderCmd.Flags().Float64Var(&renderHeight, "height", 768, "output height, pixels")
	renderCmd.Flags().Int32Var(&renderFloor, "floor", 0, "human floor number to render")
	renderCmd.Flags().IntVar(&renderZoom, "zoom", 19, "style zoom level to evaluate at")
}

func textFace(family string, size float64, col color.RGBA) canvas.FontFace {
	return canvas.NewFontFamily(family).Face(size, col, canvas.FontRegular, canvas.FontNormal)
}

func runRender(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	log := logging.Get()

	data, style, err := loadMapData(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	sceneRect := scene.Rect{
		MinX: data.BBox.Min.LonF(), MinY: data.BBox.Min.LatF(),
		MaxX: data.BBox.Max.LonF(), MaxY: data.BBox.Max.LatF(),
	}
	view := &scene.View{
		ScreenWidth: renderWidth, ScreenHeight: renderHeight,
		Viewport: sceneRect, SceneBBox: sceneRect,
		Zoom: renderZoom, Floor: level.MapLevel(renderFloor) * 10,
		DevicePixelRatio: 1,
	}

	if err := render.LoadDefaultIconAtlas(); err != nil {
		log.Warn("indoormap: default icon atlas unavailable, labels render without icons", zap.Error(err))
	}

	controller := scene.NewController(data, style, view)
	graph := controller.UpdateScene()

	log.Info("indoormap: rendering",
		zap.Int32("floor", renderFloor),
		zap.Int("items", len(graph.Items)),
		zap.String("out", renderOut))

	c := canvas.New(renderWidth, renderHeight)
	ctx := canvas.NewContext(c)
	render.NewRenderer(textFace).Render(graph, view, ctx)

	if err := renderers.Write(renderOut, c, canvas.Resolution(1.0)); err != nil {
		return err
	}
	log.Info("indoormap: wrote PNG", zap.String("path", renderOut))
	return nil
}
