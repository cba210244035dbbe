package main

import (
	"context"
	"fmt"
	"os"

	"github.com/indoormapgo/indoormap/level"
	"github.com/indoormapgo/indoormap/loader"
	"github.com/indoormapgo/indoormap/mapcss"
	"github.com/indoormapgo/indoormap/osm"
)

// loadMapData decodes path's JSON element dump into a DataSet, resolves
// the configured style against it, and assembles a MapData ready for a
// Controller or Builder to consume. Real .osm.pbf/.o5m/.osm.xml decoding
// is out of scope for this pipeline (see DESIGN.md); ctx is accepted so a
// caller-supplied Reader for one of those formats can be wired in later
// without changing this signature.
func loadMapData(ctx context.Context, path string) (*level.MapData, *mapcss.Style, error) {
	_ = ctx
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("indoormap: open %s: %w", path, err)
	}
	defer f.Close()

	ds, err := loader.LoadJSON(f)
	if err != nil {
		return nil, nil, fmt.Errorf("indoormap: decode %s: %w", path, err)
	}

	style, err := resolveStyle()
	if err != nil {
		return nil, nil, err
	}
	if err := style.Compile(ds); err != nil {
		return nil, nil, fmt.Errorf("indoormap: compile style: %w", err)
	}

	data := level.NewMapData(ds, datasetBBox(ds), "", "")
	return data, style, nil
}

// resolveStyle honors the configured style name; a raw MapCSS style path is
// accepted by Config but not yet parseable, since the text grammar is out
// of scope.
func resolveStyle() (*mapcss.Style, error) {
	if cfg.StyleName == "" {
		return nil, fmt.Errorf("indoormap: a MapCSS style path is not supported, use --style with a built-in name")
	}
	return mapcss.LoadNamed(cfg.StyleName, mapcss.Luminance(1))
}

// datasetBBox folds every node's coordinate into a bounding box; a
// configured --bbox filter narrows it further.
func datasetBBox(ds *osm.DataSet) osm.BoundingBox {
	var bb osm.BoundingBox
	for _, n := range ds.Nodes {
		if cfg.BBox != nil && cfg.BBox.IsSet && !cfg.BBox.Contains(n.Coord.LatF(), n.Coord.LonF()) {
			continue
		}
		bb = bb.Expand(n.Coord)
	}
	return bb
}
