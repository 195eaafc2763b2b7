package config

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	WindowWidth  = 1280
	WindowHeight = 720

	// Area chart
	AreaRetention      = 240
	AreaSeedCount      = 220
	AreaWindow         = 140
	AreaStepsPerFrame  = 2
	AreaSeedValue      = 100.0
	AreaSeedDrift      = 0.002
	AreaDrift          = 0.0015
	AreaDriftAmplitude = 0.001
	AreaDriftRate      = 0.05
	AreaMomentumDecay  = 0.9
	AreaNoise          = 0.02
	AreaSpeed          = 0.06
	AreaMAPeriod       = 12
	AreaPadTop         = 60
	AreaPadBottom      = 60

	// Candlestick chart
	CandleWindowSize     = 100
	CandleBasePrice      = 100.0
	CandleVolatility     = 0.012
	CandleWickJitter     = 0.003
	CandlePeriodFrames   = 240
	CandleTickEvery      = 2
	CandleTickVolatility = 0.0025
	CandleDrift          = 0.0002
	CandleDriftRate      = 0.05
	CandlePadTop         = 50
	CandlePadBottom      = 70

	// Particle overlay
	ParticleCount    = 120
	ParticleLinkDist = 120

	// Hosts
	ServerAddr           = ":8080"
	ServerFPS            = 30
	ServerFeedIntervalMS = 250
	SnapshotDir          = "snapshots"

	envPrefix = "NEONCHARTS"
)

// Config is the full runtime configuration. The zero value is not usable;
// start from Default or Load.
type Config struct {
	Window   WindowConfig   `mapstructure:"window" yaml:"window"`
	Area     AreaConfig     `mapstructure:"area" yaml:"area"`
	Candles  CandleConfig   `mapstructure:"candles" yaml:"candles"`
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	Snapshot SnapshotConfig `mapstructure:"snapshot" yaml:"snapshot"`
}

type WindowConfig struct {
	Width     int    `mapstructure:"width" yaml:"width"`
	Height    int    `mapstructure:"height" yaml:"height"`
	Chart     string `mapstructure:"chart" yaml:"chart"`
	Particles bool   `mapstructure:"particles" yaml:"particles"`
	Chime     bool   `mapstructure:"chime" yaml:"chime"`
}

type AreaConfig struct {
	Retention      int     `mapstructure:"retention" yaml:"retention"`
	SeedCount      int     `mapstructure:"seed_count" yaml:"seed_count"`
	Window         int     `mapstructure:"window" yaml:"window"`
	StepsPerFrame  int     `mapstructure:"steps_per_frame" yaml:"steps_per_frame"`
	SeedValue      float64 `mapstructure:"seed_value" yaml:"seed_value"`
	SeedDrift      float64 `mapstructure:"seed_drift" yaml:"seed_drift"`
	Drift          float64 `mapstructure:"drift" yaml:"drift"`
	DriftAmplitude float64 `mapstructure:"drift_amplitude" yaml:"drift_amplitude"`
	DriftRate      float64 `mapstructure:"drift_rate" yaml:"drift_rate"`
	MomentumDecay  float64 `mapstructure:"momentum_decay" yaml:"momentum_decay"`
	Noise          float64 `mapstructure:"noise" yaml:"noise"`
	Speed          float64 `mapstructure:"speed" yaml:"speed"`
	MAPeriod       int     `mapstructure:"ma_period" yaml:"ma_period"`
	PadTop         float64 `mapstructure:"pad_top" yaml:"pad_top"`
	PadBottom      float64 `mapstructure:"pad_bottom" yaml:"pad_bottom"`
}

type CandleConfig struct {
	WindowSize     int     `mapstructure:"window_size" yaml:"window_size"`
	BasePrice      float64 `mapstructure:"base_price" yaml:"base_price"`
	Volatility     float64 `mapstructure:"volatility" yaml:"volatility"`
	WickJitter     float64 `mapstructure:"wick_jitter" yaml:"wick_jitter"`
	PeriodFrames   int     `mapstructure:"period_frames" yaml:"period_frames"`
	TickEvery      int     `mapstructure:"tick_every" yaml:"tick_every"`
	TickVolatility float64 `mapstructure:"tick_volatility" yaml:"tick_volatility"`
	Drift          float64 `mapstructure:"drift" yaml:"drift"`
	DriftRate      float64 `mapstructure:"drift_rate" yaml:"drift_rate"`
	PadTop         float64 `mapstructure:"pad_top" yaml:"pad_top"`
	PadBottom      float64 `mapstructure:"pad_bottom" yaml:"pad_bottom"`
}

type ServerConfig struct {
	Addr           string `mapstructure:"addr" yaml:"addr"`
	FPS            int    `mapstructure:"fps" yaml:"fps"`
	Width          int    `mapstructure:"width" yaml:"width"`
	Height         int    `mapstructure:"height" yaml:"height"`
	FeedIntervalMS int    `mapstructure:"feed_interval_ms" yaml:"feed_interval_ms"`
}

// SnapshotConfig controls periodic PNG snapshots. An empty Cron disables them.
type SnapshotConfig struct {
	Cron string `mapstructure:"cron" yaml:"cron"`
	Dir  string `mapstructure:"dir" yaml:"dir"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:  WindowWidth,
			Height: WindowHeight,
			Chart:  "candles",
		},
		Area: AreaConfig{
			Retention:      AreaRetention,
			SeedCount:      AreaSeedCount,
			Window:         AreaWindow,
			StepsPerFrame:  AreaStepsPerFrame,
			SeedValue:      AreaSeedValue,
			SeedDrift:      AreaSeedDrift,
			Drift:          AreaDrift,
			DriftAmplitude: AreaDriftAmplitude,
			DriftRate:      AreaDriftRate,
			MomentumDecay:  AreaMomentumDecay,
			Noise:          AreaNoise,
			Speed:          AreaSpeed,
			MAPeriod:       AreaMAPeriod,
			PadTop:         AreaPadTop,
			PadBottom:      AreaPadBottom,
		},
		Candles: CandleConfig{
			WindowSize:     CandleWindowSize,
			BasePrice:      CandleBasePrice,
			Volatility:     CandleVolatility,
			WickJitter:     CandleWickJitter,
			PeriodFrames:   CandlePeriodFrames,
			TickEvery:      CandleTickEvery,
			TickVolatility: CandleTickVolatility,
			Drift:          CandleDrift,
			DriftRate:      CandleDriftRate,
			PadTop:         CandlePadTop,
			PadBottom:      CandlePadBottom,
		},
		Server: ServerConfig{
			Addr:           ServerAddr,
			FPS:            ServerFPS,
			Width:          WindowWidth,
			Height:         WindowHeight,
			FeedIntervalMS: ServerFeedIntervalMS,
		},
		Snapshot: SnapshotConfig{
			Dir: SnapshotDir,
		},
	}
}

// Load builds the configuration from the defaults, an optional YAML file at
// path and NEONCHARTS_* environment variables, in increasing precedence.
// Nested keys map to env names with "_" (NEONCHARTS_SERVER_ADDR).
func Load(path string) (*Config, error) {
	var base bytes.Buffer
	if err := Write(&base, Default()); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(&base); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Write encodes cfg as YAML.
func Write(w io.Writer, cfg Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

// Validate checks value ranges the engine relies on.
func (c *Config) Validate() error {
	switch c.Window.Chart {
	case "area", "candles":
	default:
		return fmt.Errorf("window.chart must be \"area\" or \"candles\", got %q", c.Window.Chart)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window.width and window.height must be positive")
	}

	a := c.Area
	if a.Window <= 1 {
		return fmt.Errorf("area.window must be greater than 1")
	}
	if a.Retention < a.Window {
		return fmt.Errorf("area.retention (%d) must be at least area.window (%d)", a.Retention, a.Window)
	}
	if a.SeedCount <= 0 || a.SeedCount > a.Retention {
		return fmt.Errorf("area.seed_count must be in 1..%d", a.Retention)
	}
	if a.StepsPerFrame < 1 {
		return fmt.Errorf("area.steps_per_frame must be at least 1")
	}
	if a.MAPeriod < 1 {
		return fmt.Errorf("area.ma_period must be at least 1")
	}
	if a.MomentumDecay < 0 || a.MomentumDecay >= 1 {
		return fmt.Errorf("area.momentum_decay must be in [0, 1)")
	}
	if a.SeedValue <= 0 {
		return fmt.Errorf("area.seed_value must be positive")
	}

	k := c.Candles
	if k.WindowSize <= 1 {
		return fmt.Errorf("candles.window_size must be greater than 1")
	}
	if k.TickEvery < 1 {
		return fmt.Errorf("candles.tick_every must be at least 1")
	}
	if k.PeriodFrames < 1 {
		return fmt.Errorf("candles.period_frames must be at least 1")
	}
	if k.BasePrice <= 0 {
		return fmt.Errorf("candles.base_price must be positive")
	}

	if c.Server.FPS < 1 || c.Server.FPS > 240 {
		return fmt.Errorf("server.fps must be in 1..240")
	}
	if c.Server.Width <= 0 || c.Server.Height <= 0 {
		return fmt.Errorf("server.width and server.height must be positive")
	}
	if c.Server.FeedIntervalMS < 10 {
		return fmt.Errorf("server.feed_interval_ms must be at least 10")
	}
	if c.Snapshot.Cron != "" && c.Snapshot.Dir == "" {
		return fmt.Errorf("snapshot.dir is required when snapshot.cron is set")
	}
	return nil
}
