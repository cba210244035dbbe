package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/indoormapgo/indoormap/logging"
	"github.com/indoormapgo/indoormap/navmesh"
)

var (
	navmeshObjOut  string
	navmeshGsetOut string
)

var navmeshCmd = &cobra.Command{
	Use:   "navmesh <path.json>",
	Short: "Build a navmesh triangle soup and write debug .obj/.gset artifacts",
	Args:  cobra.ExactArgs(1),
	RunE:  runNavmesh,
}

func init() {
	rootCmd.AddCommand(navmeshCmd)
	navmeshCmd.Flags().StringVar(&navmeshObjOut, "obj", "navmesh.obj", "output Wavefront .obj path")
	navmeshCmd.Flags().StringVar(&navmeshGsetOut, "gset", "navmesh.gset", "output solver/.gset path")
}

func runNavmesh(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	log := logging.Get()

	data, style, err := loadMapData(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	builder := navmesh.NewBuilder(data, style, cfg.Solver)
	builder.HeightPerLevel = navmesh.DefaultHeightPerLevel

	soup, err := builder.Build()
	if err != nil {
		return err
	}
	log.Info("indoormap: built navmesh soup",
		zap.Int("vertices", len(soup.Vertices)),
		zap.Int("triangles", len(soup.Triangles)),
		zap.Int("connections", len(soup.Connections)))

	done := make(chan error, 1)
	builder.Solve(soup, navmesh.NullMesher{}, func(mesh *navmesh.PolyMesh, err error) {
		if err != nil {
			done <- err
			return
		}
		log.Info("indoormap: solved poly mesh", zap.Int("polys", mesh.PolyCount))
		done <- nil
	})
	if err := <-done; err != nil {
		return err
	}

	bbox := soupBounds(soup)
	if err := navmesh.WriteDebugArtifacts(navmeshObjOut, navmeshGsetOut, args[0], soup, cfg.Solver, bbox); err != nil {
		return err
	}
	log.Info("indoormap: wrote debug artifacts",
		zap.String("obj", navmeshObjOut), zap.String("gset", navmeshGsetOut))
	return nil
}

// soupBounds computes the [xmin,ymin,zmin,xmax,ymax,zmax] navmesh-space
// bounds .gset expects, folded over the soup's own vertices.
func soupBounds(soup *navmesh.TriangleSoup) [6]float64 {
	if len(soup.Vertices) == 0 {
		return [6]float64{}
	}
	min, max := soup.Vertices[0], soup.Vertices[0]
	for _, v := range soup.Vertices[1:] {
		for i := 0; i < 3; i++ {
			if v[i] < min[i] {
				min[i] = v[i]
			}
			if v[i] > max[i] {
				max[i] = v[i]
			}
		}
	}
	return [6]float64{min[0], min[1], min[2], max[0], max[1], max[2]}
}
