package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/indoormapgo/indoormap/config"
	"github.com/indoormapgo/indoormap/logging"
)

var (
	cfg = config.DefaultConfig()

	bboxFlag   string
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "indoormap",
	Short: "Render and build navmeshes from indoor OSM extracts",
	Long: `indoormap loads a JSON indoor-mapping element dump, evaluates it
against a MapCSS-like style, and either:
  - paints the active floor to a PNG (render)
  - builds a navigation-mesh triangle soup and writes debug artifacts (navmesh)
  - reports node/way/relation decode statistics (stats)`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configFile != "" {
			if err := mergeConfigFile(cmd, configFile); err != nil {
				return err
			}
		}
		if cfg.LogFile != "" {
			logging.InitWithFile(cfg.Verbose, cfg.LogFile)
		} else {
			logging.Init(cfg.Verbose)
		}
		if bboxFlag != "" {
			bbox, err := config.ParseBBox(bboxFlag)
			if err != nil {
				return err
			}
			cfg.BBox = bbox
		}
		return nil
	},
}

// mergeConfigFile loads path with config.LoadFile into a scratch Config,
// then copies its fields onto cfg — except any field whose flag the user
// set explicitly on this invocation, which keeps the flag's value. This
// gives a config file the same "defaults, overridable by flags" role cobra
// already gives DefaultConfig.
func mergeConfigFile(cmd *cobra.Command, path string) error {
	file := config.DefaultConfig()
	if err := config.LoadFile(file, path); err != nil {
		return err
	}
	flags := cmd.Flags()

	if !flags.Changed("style") && file.StyleName != "" {
		cfg.StyleName = file.StyleName
	}
	if file.StylePath != "" {
		cfg.StylePath = file.StylePath
	}
	if !flags.Changed("bbox") && file.BBox != nil {
		cfg.BBox = file.BBox
	}
	if !flags.Changed("log-file") && file.LogFile != "" {
		cfg.LogFile = file.LogFile
	}
	if !flags.Changed("verbose") {
		cfg.Verbose = cfg.Verbose || file.Verbose
	}

	solver := file.Solver
	if flags.Changed("cell-size") {
		solver.CellSize = cfg.Solver.CellSize
	}
	if flags.Changed("cell-height") {
		solver.CellHeight = cfg.Solver.CellHeight
	}
	if flags.Changed("agent-height") {
		solver.AgentHeight = cfg.Solver.AgentHeight
	}
	if flags.Changed("agent-radius") {
		solver.AgentRadius = cfg.Solver.AgentRadius
	}
	if flags.Changed("agent-max-climb") {
		solver.AgentMaxClimb = cfg.Solver.AgentMaxClimb
	}
	if flags.Changed("agent-max-slope") {
		solver.AgentMaxSlope = cfg.Solver.AgentMaxSlope
	}
	cfg.Solver = solver
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&cfg.LogFile, "log-file", "", "also write rotated JSON logs to this path, alongside console output")
	rootCmd.PersistentFlags().StringVar(&cfg.StyleName, "style", "default", "built-in style name (breeze-light, breeze-dark, diagnostic, default)")
	rootCmd.PersistentFlags().StringVar(&bboxFlag, "bbox", "", "minlon,minlat,maxlon,maxlat filter; empty means unfiltered")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file merged in as defaults before flag overrides")

	solver := &cfg.Solver
	rootCmd.PersistentFlags().Float64Var(&solver.CellSize, "cell-size", solver.CellSize, "navmesh solver voxel cell size, meters")
	rootCmd.PersistentFlags().Float64Var(&solver.CellHeight, "cell-height", solver.CellHeight, "navmesh solver voxel cell height, meters")
	rootCmd.PersistentFlags().Float64Var(&solver.AgentHeight, "agent-height", solver.AgentHeight, "navmesh agent height, meters")
	rootCmd.PersistentFlags().Float64Var(&solver.AgentRadius, "agent-radius", solver.AgentRadius, "navmesh agent radius, meters")
	rootCmd.PersistentFlags().Float64Var(&solver.AgentMaxClimb, "agent-max-climb", solver.AgentMaxClimb, "navmesh agent max climbable step, meters")
	rootCmd.PersistentFlags().Float64Var(&solver.AgentMaxSlope, "agent-max-slope", solver.AgentMaxSlope, "navmesh agent max walkable slope, degrees")
}

func exitWithError(msg string, err error) {
	logging.Get().Error(msg, zap.Error(err))
	os.Exit(1)
}
