package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "maze.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoader_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, "version: v1\nmaze:\n  rows: 8\n")
	l, err := NewLoader(path)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	cfg := l.Config()
	if cfg.Maze.Rows != 8 {
		t.Errorf("rows = %d, want 8", cfg.Maze.Rows)
	}
	if cfg.Maze.Columns != 50 || cfg.Maze.TileSize != 600 || cfg.Maze.Algorithm != "random_dfs" {
		t.Errorf("defaults not applied: %+v", cfg.Maze)
	}
	if !cfg.Scheduler.Async || !cfg.Scheduler.ErodeOldWalls || cfg.Scheduler.IntervalMs != 5000 {
		t.Errorf("scheduler defaults not applied: %+v", cfg.Scheduler)
	}
	if got := cfg.EffectTypes(); len(got) != 1 || got[0] != "log" {
		t.Errorf("effects = %v", got)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoader_ExplicitValuesOverrideDefaults(t *testing.T) {
	path := writeConfig(t, `
version: v1
maze:
  rows: 0
  algorithm: random_kruskal
  origin: {x: 1, y: 2, z: 3}
scheduler:
  async: false
  erode_old_walls: false
effects: []
`)
	l, err := NewLoader(path)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	cfg := l.Config()
	if cfg.Maze.Rows != 0 {
		t.Errorf("explicit zero rows replaced by %d", cfg.Maze.Rows)
	}
	if cfg.Scheduler.Async || cfg.Scheduler.ErodeOldWalls {
		t.Errorf("explicit false flags lost: %+v", cfg.Scheduler)
	}
	if len(cfg.Effects) != 0 {
		t.Errorf("effects = %v, want none", cfg.Effects)
	}
	if cfg.Maze.Origin != (Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("origin = %+v", cfg.Maze.Origin)
	}
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "maze.rows") {
		t.Errorf("Validate err = %v, want rows error", err)
	}
}

func TestLoader_ReloadNotifies(t *testing.T) {
	path := writeConfig(t, "version: v1\n")
	l, err := NewLoader(path)
	if err != nil {
		t.Fatal(err)
	}
	var got *MazeConfig
	l.OnChange(func(c *MazeConfig) { got = c })
	if err := os.WriteFile(path, []byte("version: v2\nmaze: {rows: 3, columns: 4}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := l.Reload()
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if got != cfg || got.Version != "v2" || got.Maze.Columns != 4 {
		t.Errorf("callback saw %+v", got)
	}
	if l.Config() != cfg {
		t.Error("Config() not updated")
	}
}

func TestLoader_ReloadRejectsInvalid(t *testing.T) {
	path := writeConfig(t, "version: v1\nmaze: {rows: 5}\n")
	l, err := NewLoader(path)
	if err != nil {
		t.Fatal(err)
	}
	before := l.Config()
	called := false
	l.OnChange(func(*MazeConfig) { called = true })

	if err := os.WriteFile(path, []byte("version: v2\nmaze: {rows: -1}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = l.Reload()
	if !errors.Is(err, ErrInvalid) || !strings.Contains(err.Error(), "maze.rows") {
		t.Fatalf("Reload err = %v, want ErrInvalid with rows error", err)
	}
	if l.Config() != before || l.Config().Maze.Rows != 5 {
		t.Errorf("rejected config replaced the current one: %+v", l.Config().Maze)
	}
	if called {
		t.Error("OnChange ran for a rejected config")
	}
}

func TestLoader_BadYAML(t *testing.T) {
	path := writeConfig(t, "version: [v1\n")
	if _, err := NewLoader(path); err == nil {
		t.Error("expected parse error")
	}
	if _, err := NewLoader(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected read error")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*MazeConfig)
		wantErr string
	}{
		{name: "defaults", mutate: func(c *MazeConfig) {}},
		{name: "missing version", mutate: func(c *MazeConfig) { c.Version = "" }, wantErr: "version is required"},
		{name: "negative columns", mutate: func(c *MazeConfig) { c.Maze.Columns = -3 }, wantErr: "maze.columns"},
		{name: "zero tile", mutate: func(c *MazeConfig) { c.Maze.TileSize = 0 }, wantErr: "maze.tile_size"},
		{name: "unknown algorithm", mutate: func(c *MazeConfig) { c.Maze.Algorithm = "wilson" }, wantErr: "unknown algorithm"},
		{name: "reserved algorithm", mutate: func(c *MazeConfig) { c.Maze.Algorithm = "random_prim" }, wantErr: "not implemented"},
		{name: "negative interval", mutate: func(c *MazeConfig) { c.Scheduler.IntervalMs = -1 }, wantErr: "interval_ms"},
		{name: "zero frame rate", mutate: func(c *MazeConfig) { c.Scheduler.FrameRate = 0 }, wantErr: "frame_rate"},
		{name: "empty effect", mutate: func(c *MazeConfig) { c.Effects = []EffectDef{{}} }, wantErr: "type is required"},
		{name: "duplicate effect", mutate: func(c *MazeConfig) { c.Effects = []EffectDef{{Type: "log"}, {Type: "log"}} }, wantErr: "duplicate effect"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			cfg.Version = "v1"
			tc.mutate(&cfg)
			err := Validate(&cfg)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("err = %v, want containing %q", err, tc.wantErr)
			}
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Version = "v1"
	cfg.Maze.Rows = 0
	cfg.Maze.Columns = 0
	err := Validate(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "maze.rows") || !strings.Contains(err.Error(), "maze.columns") {
		t.Errorf("not all errors reported: %v", err)
	}
}

func TestMazeConf_Params(t *testing.T) {
	c := Default().Maze
	c.Algorithm = "random_kruskal"
	c.Origin = Vec3{X: 5}
	p, err := c.Params()
	if err != nil {
		t.Fatalf("Params: %v", err)
	}
	if p.Rows != 50 || p.Origin.X != 5 || p.Algorithm.String() != "random_kruskal" || p.MaxAttempts != 3 {
		t.Errorf("unexpected params %+v", p)
	}
	c.TileSize = -1
	if _, err := c.Params(); err == nil {
		t.Error("expected tile size error")
	}
}
