package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/indoormapgo/indoormap/config"
)

func TestMergeConfigFileFillsDefaultsWithoutOverridingFlags(t *testing.T) {
	// cfg's fields have flag.Value pointers bound to them at package init,
	// so tests must reset it in place (*cfg = ...) rather than repointing
	// the cfg variable itself, or the bound flags would write to a struct
	// this test can no longer see.
	saved := *cfg
	defer func() { *cfg = saved }()
	*cfg = *config.DefaultConfig()

	yamlPath := filepath.Join(t.TempDir(), "indoormap.yaml")
	body := "style_name: diagnostic\nsolver:\n  cell_size: 0.5\n  agent_radius: 0.6\n"
	if err := os.WriteFile(yamlPath, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cmd := rootCmd
	if err := cmd.ParseFlags([]string{"--cell-size", "0.1"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}

	if err := mergeConfigFile(cmd, yamlPath); err != nil {
		t.Fatalf("mergeConfigFile: %v", err)
	}
	if cfg.StyleName != "diagnostic" {
		t.Errorf("StyleName = %q, want diagnostic (from file, flag unset)", cfg.StyleName)
	}
	if cfg.Solver.CellSize != 0.1 {
		t.Errorf("Solver.CellSize = %v, want 0.1 (explicit flag wins over file)", cfg.Solver.CellSize)
	}
	if cfg.Solver.AgentRadius != 0.6 {
		t.Errorf("Solver.AgentRadius = %v, want 0.6 (from file, flag unset)", cfg.Solver.AgentRadius)
	}
}
