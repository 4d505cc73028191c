package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/lixenwraith/flowgrid/parameter"
)

// EnvPrefix namespaces environment overrides, e.g. FLOWGRID_NAV_RADIUS
const EnvPrefix = "FLOWGRID"

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Nav      NavConfig      `mapstructure:"nav"`
	World    WorldConfig    `mapstructure:"world"`
	Sim      SimConfig      `mapstructure:"sim"`
	Log      LogConfig      `mapstructure:"log"`
	Observer ObserverConfig `mapstructure:"observer"`
	Sandbox  SandboxConfig  `mapstructure:"sandbox"`
}

type NavConfig struct {
	// Radius is the Chebyshev radius of the flow field in tiles
	Radius int `mapstructure:"radius"`
}

type WorldConfig struct {
	Seed             uint64  `mapstructure:"seed"`
	ChunkSize        int     `mapstructure:"chunk_size"`
	TileSize         float64 `mapstructure:"tile_size"`
	WallDensity      float64 `mapstructure:"wall_density"`
	SafeMargin       int     `mapstructure:"safe_margin"`
	SpawnChunkRadius int     `mapstructure:"spawn_chunk_radius"`
	Machines         bool    `mapstructure:"machines"`
}

type SimConfig struct {
	TickRate    int     `mapstructure:"tick_rate"`
	Followers   int     `mapstructure:"followers"`
	AgentSpeed  float64 `mapstructure:"agent_speed"`
	MaxTicks    int64   `mapstructure:"max_ticks"` // 0 runs until interrupted
	GoalWanders bool    `mapstructure:"goal_wanders"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"` // text or json
	File       string `mapstructure:"file"`   // Empty logs to stderr
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

type ObserverConfig struct {
	// Addr is the listen address of the websocket observer, empty disables it
	Addr string `mapstructure:"addr"`
}

type SandboxConfig struct {
	Sound bool `mapstructure:"sound"`
}

// setDefaults registers every key so env overrides resolve without a config file
func setDefaults(v *viper.Viper) {
	v.SetDefault("nav.radius", parameter.NavFlowRadius)

	v.SetDefault("world.seed", parameter.WorldSeed)
	v.SetDefault("world.chunk_size", parameter.ChunkSize)
	v.SetDefault("world.tile_size", parameter.TileSize)
	v.SetDefault("world.wall_density", parameter.WorldWallDensity)
	v.SetDefault("world.safe_margin", parameter.WorldSafeMargin)
	v.SetDefault("world.spawn_chunk_radius", parameter.WorldSpawnChunkRadius)
	v.SetDefault("world.machines", true)

	v.SetDefault("sim.tick_rate", parameter.TickRate)
	v.SetDefault("sim.followers", parameter.SimFollowers)
	v.SetDefault("sim.agent_speed", parameter.AgentSpeed)
	v.SetDefault("sim.max_ticks", 0)
	v.SetDefault("sim.goal_wanders", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 7)

	v.SetDefault("observer.addr", "")
	v.SetDefault("sandbox.sound", false)
}

// Default returns the built-in configuration
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	// Defaults alone always decode
	_ = v.Unmarshal(cfg)
	return cfg
}

// Load reads configuration from path (TOML), a .env file if present, and FLOWGRID_* variables
// An empty path skips the file; a missing explicit path is an error
func Load(path string) (*Config, error) {
	// .env is optional, real environment wins over it
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "config: read %s", path)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "config: decode")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the engine cannot run with
func (c *Config) Validate() error {
	switch {
	case c.Nav.Radius <= 0:
		return errors.Wrapf(ErrInvalid, "nav.radius must be positive, got %d", c.Nav.Radius)
	case c.World.ChunkSize <= 0:
		return errors.Wrapf(ErrInvalid, "world.chunk_size must be positive, got %d", c.World.ChunkSize)
	case c.World.TileSize <= 0:
		return errors.Wrapf(ErrInvalid, "world.tile_size must be positive, got %v", c.World.TileSize)
	case c.World.WallDensity < 0 || c.World.WallDensity > 1:
		return errors.Wrapf(ErrInvalid, "world.wall_density must be in [0,1], got %v", c.World.WallDensity)
	case c.World.SpawnChunkRadius < 0:
		return errors.Wrapf(ErrInvalid, "world.spawn_chunk_radius must not be negative, got %d", c.World.SpawnChunkRadius)
	case c.Sim.TickRate <= 0:
		return errors.Wrapf(ErrInvalid, "sim.tick_rate must be positive, got %d", c.Sim.TickRate)
	case c.Sim.Followers < 0:
		return errors.Wrapf(ErrInvalid, "sim.followers must not be negative, got %d", c.Sim.Followers)
	}
	return nil
}
