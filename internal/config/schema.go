package config

// MazeConfig is the top-level YAML structure.
type MazeConfig struct {
	Version   string        `yaml:"version" json:"version"`
	Maze      MazeConf      `yaml:"maze" json:"maze"`
	Scheduler SchedulerConf `yaml:"scheduler" json:"scheduler"`
	Effects   []EffectDef   `yaml:"effects" json:"effects"`
}

// MazeConf describes the grid and how it is carved.
type MazeConf struct {
	Rows             int     `yaml:"rows" json:"rows"`
	Columns          int     `yaml:"columns" json:"columns"`
	TileSize         float64 `yaml:"tile_size" json:"tile_size"`
	Origin           Vec3    `yaml:"origin" json:"origin"`
	Algorithm        string  `yaml:"algorithm" json:"algorithm"`
	Seed             uint64  `yaml:"seed" json:"seed"` // 0 = fresh seed per generation
	MaxCarveAttempts int     `yaml:"max_carve_attempts" json:"max_carve_attempts"`
}

// Vec3 is a world-space point.
type Vec3 struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	Z float64 `yaml:"z" json:"z"`
}

// SchedulerConf holds the live-mutation settings.
type SchedulerConf struct {
	IntervalMs    int  `yaml:"interval_ms" json:"interval_ms"` // 0 disables live mutation
	Async         bool `yaml:"async" json:"async"`
	ErodeOldWalls bool `yaml:"erode_old_walls" json:"erode_old_walls"`
	FrameRate     int  `yaml:"frame_rate" json:"frame_rate"`
}

// EffectDef selects a registered transition effect by type.
type EffectDef struct {
	Type string `yaml:"type" json:"type"`
}

// Default returns the configuration used for every key the file leaves out.
func Default() MazeConfig {
	return MazeConfig{
		Maze: MazeConf{
			Rows:             50,
			Columns:          50,
			TileSize:         600,
			Algorithm:        "random_dfs",
			MaxCarveAttempts: 3,
		},
		Scheduler: SchedulerConf{
			IntervalMs:    5000,
			Async:         true,
			ErodeOldWalls: true,
			FrameRate:     60,
		},
		Effects: []EffectDef{{Type: "log"}},
	}
}
