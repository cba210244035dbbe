// Package config holds the command-line-configurable settings shared by the
// render, navmesh, and stats subcommands: which style to load, the
// geographic filter, and the navmesh solver's tunables, modeled on the
// osm2pgsql importer's flat Config struct.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// BBox is a geographic bounding box filter, inclusive on all sides. An unset
// BBox contains every point.
type BBox struct {
	MinLon, MinLat, MaxLon, MaxLat float64
	IsSet                          bool
}

// Contains reports whether (lat, lon) falls within b, or always true if b is
// unset.
func (b *BBox) Contains(lat, lon float64) bool {
	if !b.IsSet {
		return true
	}
	return lon >= b.MinLon && lon <= b.MaxLon && lat >= b.MinLat && lat <= b.MaxLat
}

// ParseBBox parses "minlon,minlat,maxlon,maxlat". An empty string yields an
// unset BBox rather than an error.
func ParseBBox(s string) (*BBox, error) {
	if s == "" {
		return &BBox{IsSet: false}, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("bbox must have 4 values: minlon,minlat,maxlon,maxlat")
	}

	var coords [4]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid bbox coordinate %q: %w", p, err)
		}
		coords[i] = v
	}

	b := &BBox{MinLon: coords[0], MinLat: coords[1], MaxLon: coords[2], MaxLat: coords[3], IsSet: true}
	if b.MinLon > b.MaxLon {
		return nil, fmt.Errorf("minlon (%f) must be <= maxlon (%f)", b.MinLon, b.MaxLon)
	}
	if b.MinLat > b.MaxLat {
		return nil, fmt.Errorf("minlat (%f) must be <= maxlat (%f)", b.MinLat, b.MaxLat)
	}
	return b, nil
}

// PartitionType selects the navmesh solver's region-partitioning strategy.
type PartitionType int

const (
	PartitionWatershed PartitionType = iota
	PartitionMonotone
	PartitionLayers
)

// SolverParams are the navmesh voxelizer's agent and cell tunables, named
// and defaulted after Recast's canonical demo config.
type SolverParams struct {
	CellSize               float64       `yaml:"cell_size"`
	CellHeight             float64       `yaml:"cell_height"`
	AgentHeight            float64       `yaml:"agent_height"`
	AgentRadius            float64       `yaml:"agent_radius"`
	AgentMaxClimb          float64       `yaml:"agent_max_climb"`
	AgentMaxSlope          float64       `yaml:"agent_max_slope"`
	RegionMinArea          float64       `yaml:"region_min_area"`
	RegionMergeArea        float64       `yaml:"region_merge_area"`
	MaxEdgeLen             float64       `yaml:"max_edge_len"`
	MaxSimplificationError float64       `yaml:"max_simplification_error"`
	DetailSampleDist       float64       `yaml:"detail_sample_dist"`
	DetailSampleMaxError   float64       `yaml:"detail_sample_max_error"`
	Partition              PartitionType `yaml:"partition"`
}

// DefaultSolverParams returns the Recast demo's default agent/cell tuning.
func DefaultSolverParams() SolverParams {
	return SolverParams{
		CellSize:               0.3,
		CellHeight:             0.2,
		AgentHeight:            2.0,
		AgentRadius:            0.6,
		AgentMaxClimb:          0.9,
		AgentMaxSlope:          45,
		RegionMinArea:          8,
		RegionMergeArea:        20,
		MaxEdgeLen:             12,
		MaxSimplificationError: 1.3,
		DetailSampleDist:       6,
		DetailSampleMaxError:   1,
		Partition:              PartitionWatershed,
	}
}

// Config is the process-wide configuration assembled from flags and,
// optionally, a YAML file.
type Config struct {
	StylePath string `yaml:"style_path"`
	StyleName string `yaml:"style_name"`
	BBox      *BBox  `yaml:"-"`
	BBoxStr   string `yaml:"bbox"`

	LogFile string `yaml:"log_file"`
	Verbose bool   `yaml:"verbose"`

	Solver SolverParams `yaml:"solver"`
}

// DefaultConfig returns a Config with the Recast demo's default solver
// tuning and no style or bbox selected.
func DefaultConfig() *Config {
	return &Config{Solver: DefaultSolverParams()}
}

// LoadFile merges YAML-file settings from path into c, overwriting only the
// fields the file sets. Flags applied after LoadFile still take precedence
// since cobra binds flags directly onto c's fields.
func LoadFile(c *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	if c.BBoxStr != "" {
		bbox, err := ParseBBox(c.BBoxStr)
		if err != nil {
			return fmt.Errorf("config: %s: %w", path, err)
		}
		c.BBox = bbox
	}
	return nil
}

// Validate checks that the configuration is usable before any subcommand
// runs the pipeline.
func (c *Config) Validate() error {
	if c.StylePath == "" && c.StyleName == "" {
		return fmt.Errorf("config: a style path or a built-in style name is required")
	}
	if c.Solver.CellSize <= 0 || c.Solver.CellHeight <= 0 {
		return fmt.Errorf("config: solver cell size and cell height must be positive")
	}
	if c.Solver.AgentRadius <= 0 || c.Solver.AgentHeight <= 0 {
		return fmt.Errorf("config: solver agent radius and height must be positive")
	}
	return nil
}
