// Package config defines the arm configuration read by the planarik driver and CLI.
package config

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/a8m/envsubst"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/planarik/kinematics"
	"go.viam.com/planarik/logging"
	"go.viam.com/planarik/utils"
)

const (
	// DefaultLength is the link length used when none is configured.
	DefaultLength = 128.
	// DefaultStepHz is the driver loop rate used when none is configured.
	DefaultStepHz = 60.
	maxStepHz     = 1000.
)

// Config describes an arm and how it is driven.
type Config struct {
	FirstLength    float64 `json:"first_length,omitempty"`
	SecondLength   float64 `json:"second_length,omitempty"`
	DirectionAngle float64 `json:"direction_angle,omitempty"`
	// TargetDistance defaults to full extension when unset.
	TargetDistance *float64              `json:"target_distance,omitempty"`
	FollowPointer  bool                  `json:"follow_pointer,omitempty"`
	Solver         kinematics.SolverType `json:"solver,omitempty"`
	StepHz         float64               `json:"step_hz,omitempty"`
	LogLevel       string                `json:"log_level,omitempty"`
}

// Default returns the configuration of the fully extended 128/128 arm.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Read reads a config from the given file, expanding environment variables first.
func Read(filePath string, logger logging.Logger) (*Config, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read config %q", filePath)
	}

	return FromReader(filePath, bytes.NewReader(buf), logger)
}

// FromReader reads a config from the given reader and specifies
// where, if applicable, the file the reader originated from.
func FromReader(originalPath string, r io.Reader, logger logging.Logger) (*Config, error) {
	cfg := &Config{}
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		return nil, errors.Wrapf(err, "cannot parse config %q", originalPath)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(originalPath); err != nil {
		return nil, err
	}
	logger.Debugw("read arm config", "path", originalPath, "config", cfg)
	return cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.FirstLength == 0 {
		cfg.FirstLength = DefaultLength
	}
	if cfg.SecondLength == 0 {
		cfg.SecondLength = DefaultLength
	}
	if cfg.Solver == "" {
		cfg.Solver = kinematics.AnalyticSolverType
	}
	if cfg.StepHz == 0 {
		cfg.StepHz = DefaultStepHz
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

// Validate ensures all parts of the config are valid. Configs built in code rather than read must
// name a solver; Read fills in the default.
func (cfg *Config) Validate(path string) error {
	if cfg.Solver == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "solver")
	}
	var err error
	if !utils.IsFinite(cfg.FirstLength) || cfg.FirstLength <= 0 {
		err = multierr.Append(err, errors.Errorf("first_length must be positive, got %g", cfg.FirstLength))
	}
	if !utils.IsFinite(cfg.SecondLength) || cfg.SecondLength <= 0 {
		err = multierr.Append(err, errors.Errorf("second_length must be positive, got %g", cfg.SecondLength))
	}
	if !utils.IsFinite(cfg.DirectionAngle) {
		err = multierr.Append(err, errors.New("direction_angle must be finite"))
	}
	if cfg.TargetDistance != nil && (!utils.IsFinite(*cfg.TargetDistance) || *cfg.TargetDistance < 0) {
		err = multierr.Append(err, errors.Errorf("target_distance must be non-negative, got %g", *cfg.TargetDistance))
	}
	if cfg.StepHz <= 0 || cfg.StepHz > maxStepHz {
		err = multierr.Append(err, utils.NewOutOfRangeError("step_hz", cfg.StepHz, 1, maxStepHz))
	}
	if _, solverErr := kinematics.NewSolver(cfg.Solver); solverErr != nil {
		err = multierr.Append(err, solverErr)
	}
	if _, levelErr := logging.LevelFromString(cfg.LogLevel); levelErr != nil {
		err = multierr.Append(err, levelErr)
	}
	if err != nil {
		return utils.NewConfigValidationError(path, err)
	}
	return nil
}

// Level returns the configured log level. Validate has already rejected unknown levels.
func (cfg *Config) Level() logging.Level {
	level, err := logging.LevelFromString(cfg.LogLevel)
	if err != nil {
		return logging.INFO
	}
	return level
}

// Request returns the solver request described by the config.
func (cfg *Config) Request() kinematics.Request {
	distance := cfg.FirstLength + cfg.SecondLength
	if cfg.TargetDistance != nil {
		distance = *cfg.TargetDistance
	}
	return kinematics.Request{
		FirstLength:    cfg.FirstLength,
		SecondLength:   cfg.SecondLength,
		DirectionAngle: cfg.DirectionAngle,
		Distance:       distance,
	}
}
