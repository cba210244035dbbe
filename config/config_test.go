package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseBBoxValid(t *testing.T) {
	b, err := ParseBBox("10,20,30,40")
	if err != nil {
		t.Fatalf("ParseBBox: %v", err)
	}
	if !b.IsSet {
		t.Fatal("expected IsSet true")
	}
	if !b.Contains(25, 15) {
		t.Error("expected point inside bbox to be contained")
	}
	if b.Contains(50, 15) {
		t.Error("expected point outside bbox to be rejected")
	}
}

func TestParseBBoxEmptyIsUnset(t *testing.T) {
	b, err := ParseBBox("")
	if err != nil {
		t.Fatalf("ParseBBox: %v", err)
	}
	if b.IsSet {
		t.Error("expected IsSet false for empty string")
	}
	if !b.Contains(1000, 1000) {
		t.Error("an unset bbox must contain every point")
	}
}

func TestParseBBoxRejectsInverted(t *testing.T) {
	if _, err := ParseBBox("30,20,10,40"); err == nil {
		t.Error("expected an error for minlon > maxlon")
	}
}

func TestValidateRequiresStyle(t *testing.T) {
	c := DefaultConfig()
	if err := c.Validate(); err == nil {
		t.Error("expected an error with no style configured")
	}
	c.StyleName = "default"
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestLoadFileMergesYAMLAndBBox(t *testing.T) {
	path := filepath.Join(t.TempDir(), "indoormap.yaml")
	body := "style_name: breeze-dark\nbbox: \"1,2,3,4\"\nsolver:\n  cell_size: 0.5\n  agent_radius: 0.75\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	c := DefaultConfig()
	if err := LoadFile(c, path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if c.StyleName != "breeze-dark" {
		t.Errorf("StyleName = %q, want breeze-dark", c.StyleName)
	}
	if c.BBox == nil || !c.BBox.IsSet {
		t.Fatal("expected LoadFile to parse the bbox field into BBox")
	}
	if !c.BBox.Contains(3, 2) {
		t.Error("parsed bbox does not contain a point that should be inside it")
	}
	if c.Solver.CellSize != 0.5 || c.Solver.AgentRadius != 0.75 {
		t.Errorf("Solver = %+v, want CellSize=0.5 AgentRadius=0.75", c.Solver)
	}
}

func TestLoadFileMissingFile(t *testing.T) {
	c := DefaultConfig()
	if err := LoadFile(c, filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}
