package loader

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/indoormapgo/indoormap/osm"
)

// jsonDoc is the on-disk shape ReadJSON decodes: a flat, already-parsed
// element list rather than any real OSM wire format.
type jsonDoc struct {
	Nodes []struct {
		ID   int64             `json:"id"`
		Lat  float64           `json:"lat"`
		Lon  float64           `json:"lon"`
		Tags map[string]string `json:"tags"`
	} `json:"nodes"`
	Ways []struct {
		ID   int64             `json:"id"`
		Refs []int64           `json:"refs"`
		Tags map[string]string `json:"tags"`
	} `json:"ways"`
	Relations []struct {
		ID      int64             `json:"id"`
		Members []Member          `json:"members"`
		Tags    map[string]string `json:"tags"`
	} `json:"relations"`
}

// ReadJSON decodes r's element list and feeds it through reader, the same
// way any concrete .osm.pbf/.o5m/.osm.xml decoder would. It exists as a
// stand-in for those out-of-scope wire-format decoders: an operator with a
// real one writes an equivalent function against the same Reader.
func ReadJSON(r io.Reader, reader *Reader) error {
	var doc jsonDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("loader: decode json: %w", err)
	}

	for _, n := range doc.Nodes {
		reader.AddNode(n.ID, n.Lat, n.Lon, n.Tags)
	}
	for _, w := range doc.Ways {
		reader.AddWay(w.ID, w.Refs, w.Tags)
	}
	for _, rel := range doc.Relations {
		reader.AddRelation(rel.ID, rel.Members, rel.Tags)
	}
	return nil
}

// LoadJSON is the common case of ReadJSON: decode into a fresh DataSet and
// finalize it, ready for Compile/BuildLevelMap.
func LoadJSON(r io.Reader) (*osm.DataSet, error) {
	ds := osm.NewDataSet()
	reader := NewReader(ds)
	if err := ReadJSON(r, reader); err != nil {
		return nil, err
	}
	ds.Finalize()
	return ds, nil
}
