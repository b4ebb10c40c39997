package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	FileName  = "panner.cfg.json"
	EnvPrefix = "PANNER"

	// Marker dimensions
	MarkerRadius    = 5
	MarkerHitRadius = 9

	// Speaker glyphs, degrees clockwise from the listener's front
	SpeakerDistance = 0.92 // fraction of the canvas radius
	SpeakerSize     = 9

	// Result panel below the canvas
	PanelLineHeight = 18
	PanelFontSize   = 14

	// Marker trail
	TrailSize = 48

	// Held nudge keys, in ticks
	KeyRepeatDelay    = 30
	KeyRepeatInterval = 3

	RotationSpeed = 0.004
)

// SpeakerAngles places L, C, R, LS and RS around the canvas.
var SpeakerAngles = []float64{-30, 0, 30, -110, 110}

// Config is the runtime configuration for the panner and the gain service.
type Config struct {
	LogLevel string         `mapstructure:"logLevel"`
	Window   WindowConfig   `mapstructure:"window"`
	Canvas   CanvasConfig   `mapstructure:"canvas"`
	Listener ListenerConfig `mapstructure:"listener"`
	Gain     GainConfig     `mapstructure:"gain"`
	Notify   NotifyConfig   `mapstructure:"notify"`
	Server   ServerConfig   `mapstructure:"server"`
}

type WindowConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

type CanvasConfig struct {
	Margin      int `mapstructure:"margin"`
	PanelHeight int `mapstructure:"panelHeight"`
}

type ListenerConfig struct {
	StartLocked bool `mapstructure:"startLocked"`
}

type GainConfig struct {
	ServiceURL       string        `mapstructure:"serviceUrl"`
	Timeout          time.Duration `mapstructure:"timeout"`
	CancelSuperseded bool          `mapstructure:"cancelSuperseded"`
}

type NotifyConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type ServerConfig struct {
	Listen        string `mapstructure:"listen"`
	AllowedOrigin string `mapstructure:"allowedOrigin"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")

	v.SetDefault("window.width", 520)
	v.SetDefault("window.height", 680)
	v.SetDefault("window.title", "Surround Panner - click the dot to lock, arrows/hjkl to nudge, C: center, Esc/Q: quit")

	v.SetDefault("canvas.margin", 60)
	v.SetDefault("canvas.panelHeight", 160)

	v.SetDefault("listener.startLocked", false)

	v.SetDefault("gain.serviceUrl", "http://localhost:5174")
	v.SetDefault("gain.timeout", "5s")
	v.SetDefault("gain.cancelSuperseded", true)

	v.SetDefault("notify.enabled", true)

	v.SetDefault("server.listen", ":5174")
	v.SetDefault("server.allowedOrigin", "http://localhost:5173")
}

// Load reads panner.cfg.json from configDir when it exists, applies
// PANNER_* environment overrides and fills in defaults.
func Load(configDir string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(FileName)
	v.SetConfigType("json")
	if configDir != "" {
		v.AddConfigPath(configDir)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the panner cannot run with.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Canvas.Margin < 0 || c.Canvas.PanelHeight < 0 {
		return fmt.Errorf("invalid canvas layout: margin %d, panel %d", c.Canvas.Margin, c.Canvas.PanelHeight)
	}
	if c.Gain.ServiceURL == "" {
		return errors.New("gain.serviceUrl must be set")
	}
	if c.Gain.Timeout < 0 {
		return fmt.Errorf("invalid gain.timeout %s", c.Gain.Timeout)
	}
	return nil
}
