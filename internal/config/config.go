// Package config provides Viper-based configuration loading for hexmarch.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// BattleConfig holds the combat tunables the engine treats as policy rather
// than code: grid size, the minimum residual damage floor, and the fixed
// action-point cost of an attack.
type BattleConfig struct {
	// Cols and Rows are the battlefield dimensions in hexes.
	Cols int `mapstructure:"cols"`
	Rows int `mapstructure:"rows"`
	// MinDamage is the residual damage floor: an attack never deals less.
	MinDamage int `mapstructure:"min_damage"`
	// AttackCost is the action-point cost of one attack.
	AttackCost int `mapstructure:"attack_cost"`
}

// HexConfig holds the pixel layout of the hex grid.
type HexConfig struct {
	// Size is the hex radius in pixels (center to corner).
	Size float64 `mapstructure:"size"`
	// OriginX and OriginY are the pixel offset of the battlefield.
	OriginX float64 `mapstructure:"origin_x"`
	OriginY float64 `mapstructure:"origin_y"`
}

// AnimConfig holds animation playback tunables.
type AnimConfig struct {
	// MoveSpeed is movement playback speed in hexes per second.
	MoveSpeed float64 `mapstructure:"move_speed"`
	// AttackOffset is how far an attacker lunges toward its target, in pixels.
	AttackOffset float64 `mapstructure:"attack_offset"`
	// AttackDuration is the total attack animation length in seconds
	// (forward plus back).
	AttackDuration float64 `mapstructure:"attack_duration"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// Config is the top-level application configuration.
type Config struct {
	Battle  BattleConfig  `mapstructure:"battle"`
	Hex     HexConfig     `mapstructure:"hex"`
	Anim    AnimConfig    `mapstructure:"anim"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// setDefaults registers default values for all configuration keys.
func setDefaults(v *viper.Viper) {
	v.SetDefault("battle.cols", 10)
	v.SetDefault("battle.rows", 10)
	v.SetDefault("battle.min_damage", 1)
	v.SetDefault("battle.attack_cost", 4)

	v.SetDefault("hex.size", 30.0)
	v.SetDefault("hex.origin_x", 50.0)
	v.SetDefault("hex.origin_y", 50.0)

	v.SetDefault("anim.move_speed", 3.0)
	v.SetDefault("anim.attack_offset", 25.0)
	v.SetDefault("anim.attack_duration", 0.25)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Load reads configuration from an optional hexmarch.yaml plus HEXMARCH_*
// environment variables, applying defaults for anything unset.
//
// Precondition: path, if non-empty, names a directory to search for
// hexmarch.yaml in addition to the working directory.
// Postcondition: returns a validated Config or a non-nil error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("hexmarch")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if path != "" {
		v.AddConfigPath(path)
	}

	v.SetEnvPrefix("HEXMARCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults plus env carry the load.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration without touching files or env.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("unmarshaling default config: %v", err))
	}
	return &cfg
}

// Validate checks the configuration for values the engine cannot run with.
func (c *Config) Validate() error {
	if c.Battle.Cols < 2 || c.Battle.Rows < 2 {
		return fmt.Errorf("battlefield %dx%d too small, need at least 2x2", c.Battle.Cols, c.Battle.Rows)
	}
	if c.Battle.MinDamage < 0 {
		return fmt.Errorf("min_damage %d must not be negative", c.Battle.MinDamage)
	}
	if c.Battle.AttackCost < 1 {
		return fmt.Errorf("attack_cost %d must be at least 1", c.Battle.AttackCost)
	}
	if c.Hex.Size <= 0 {
		return fmt.Errorf("hex size %v must be positive", c.Hex.Size)
	}
	if c.Anim.MoveSpeed <= 0 {
		return fmt.Errorf("move_speed %v must be positive", c.Anim.MoveSpeed)
	}
	if c.Anim.AttackDuration <= 0 {
		return fmt.Errorf("attack_duration %v must be positive", c.Anim.AttackDuration)
	}
	return nil
}
