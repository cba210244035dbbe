package navmesh

import (
	"bufio"
	"fmt"
	"os"

	"github.com/indoormapgo/indoormap/config"
)

// WriteDebugArtifacts writes soup to a Wavefront .obj file (1-based
// vertex/face indices) and a .gset file describing the solver run and its
// off-mesh connections, matching the original's writeObjFile/writeGsetFile
// debug output exactly (spec.md §6).
func WriteDebugArtifacts(objPath, gsetPath, sourceName string, soup *TriangleSoup, params config.SolverParams, bbox [6]float64) error {
	if err := writeObj(objPath, soup); err != nil {
		return fmt.Errorf("navmesh: write obj: %w", err)
	}
	if err := writeGset(gsetPath, sourceName, soup, params, bbox); err != nil {
		return fmt.Errorf("navmesh: write gset: %w", err)
	}
	return nil
}

func writeObj(path string, soup *TriangleSoup) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, v := range soup.Vertices {
		fmt.Fprintf(w, "v %g %g %g\n", v[0], v[1], v[2])
	}
	for _, t := range soup.Triangles {
		fmt.Fprintf(w, "f %d %d %d\n", t[0]+1, t[1]+1, t[2]+1)
	}
	return w.Flush()
}

func writeGset(path, sourceName string, soup *TriangleSoup, params config.SolverParams, bbox [6]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%s %g %g %g %g %g %g %g %g %g %g %g %g %d %g %g %g %g %g %g\n",
		sourceName,
		params.CellSize, params.CellHeight,
		params.AgentHeight, params.AgentRadius, params.AgentMaxClimb, params.AgentMaxSlope,
		params.RegionMinArea, params.RegionMergeArea,
		params.MaxEdgeLen, params.MaxSimplificationError,
		params.DetailSampleDist, params.DetailSampleMaxError,
		int(params.Partition),
		bbox[0], bbox[1], bbox[2], bbox[3], bbox[4], bbox[5],
	)
	for _, c := range soup.Connections {
		fmt.Fprintf(w, "c %g %g %g %g %g %g %g %d %d %d\n",
			c.Start[0], c.Start[1], c.Start[2],
			c.End[0], c.End[1], c.End[2],
			c.Radius, int(c.Direction), int(c.Area), c.Flags)
	}
	return w.Flush()
}
