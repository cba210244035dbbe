package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/indoormapgo/indoormap/loader"
	"github.com/indoormapgo/indoormap/osm"
)

var statsCmd = &cobra.Command{
	Use:   "stats <path.json>",
	Short: "Print node/way/relation counts for an extract",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("indoormap: open %s: %w", args[0], err)
	}
	defer f.Close()

	ds, err := loader.LoadJSON(f)
	if err != nil {
		return fmt.Errorf("indoormap: decode %s: %w", args[0], err)
	}

	fmt.Print(datasetStats(ds))
	return nil
}

// datasetStats reports element counts, id ranges, and dangling way node
// references over an already-loaded DataSet.
func datasetStats(ds *osm.DataSet) string {
	var missingWayNodes int
	for _, w := range ds.Ways {
		for _, ref := range w.Refs {
			if _, ok := ds.FindNode(ref); !ok {
				missingWayNodes++
			}
		}
	}

	var bb osm.BoundingBox
	for _, n := range ds.Nodes {
		bb = bb.Expand(n.Coord)
	}

	return fmt.Sprintf(
		"Nodes:     %d%s\nWays:      %d\n  missing node refs: %d\nRelations: %d\nBounds:    lon=[%g,%g] lat=[%g,%g]\n",
		len(ds.Nodes), idRange(ds.Nodes),
		len(ds.Ways),
		missingWayNodes,
		len(ds.Relations),
		bb.Min.LonF(), bb.Max.LonF(), bb.Min.LatF(), bb.Max.LatF(),
	)
}

func idRange(nodes []osm.Node) string {
	if len(nodes) == 0 {
		return ""
	}
	return fmt.Sprintf("  id=[%d,%d]", nodes[0].ID, nodes[len(nodes)-1].ID)
}
