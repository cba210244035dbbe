// Command indoormap loads a JSON OSM element dump, evaluates it against a
// MapCSS-like style, and either paints it to a PNG, builds a navmesh
// triangle soup and debug artifacts from it, or reports decode statistics.
// Real .osm.pbf/.o5m/.osm.xml wire-format decoding is out of scope; a
// caller with a real decoder feeds it through loader.Reader the same way
// loader.ReadJSON does.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
