// Package config holds the settings of the commands.
// Defaults are overlaid by a YAML file and then by command line flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/natevvv/osm-delivery-routing/pkg/cluster"
	"github.com/natevvv/osm-delivery-routing/pkg/route"
	"github.com/natevvv/osm-delivery-routing/pkg/solver"
)

type Config struct {
	DataDir    string       `yaml:"dataDir" validate:"required"`
	OutputsDir string       `yaml:"outputsDir" validate:"required"`
	Deliveries string       `yaml:"deliveries"`
	Solver     SolverConfig `yaml:"solver"`
	Server     ServerConfig `yaml:"server"`
	Log        LogConfig    `yaml:"log"`
}

type SolverConfig struct {
	Origin        int    `yaml:"origin" validate:"gte=0"`
	K             int    `yaml:"k" validate:"gte=1"`
	MaxIterations int    `yaml:"maxIterations" validate:"gte=1"`
	Seed          int64  `yaml:"seed"`
	Workers       int    `yaml:"workers" validate:"gte=0"`
	Mode          string `yaml:"mode" validate:"oneof=astar dijkstra"`
}

type ServerConfig struct {
	Address          string        `yaml:"address" validate:"required"`
	ReadTimeout      time.Duration `yaml:"readTimeout" validate:"gte=0"`
	WriteTimeout     time.Duration `yaml:"writeTimeout" validate:"gte=0"`
	SolveTimeout     time.Duration `yaml:"solveTimeout" validate:"gte=0"`
	MaxStoredResults int           `yaml:"maxStoredResults" validate:"gte=1"`
}

type LogConfig struct {
	Development bool   `yaml:"development"`
	Level       string `yaml:"level" validate:"oneof=debug info warn error"`
}

func Default() *Config {
	return &Config{
		DataDir:    "data",
		OutputsDir: "outputs",
		Deliveries: "deliveries.csv",
		Solver: SolverConfig{
			Origin:        0,
			K:             3,
			MaxIterations: cluster.DefaultMaxIterations,
			Seed:          cluster.DefaultSeed,
			Workers:       0,
			Mode:          string(route.ModeAStar),
		},
		Server: ServerConfig{
			Address:          ":8080",
			ReadTimeout:      10 * time.Second,
			WriteTimeout:     60 * time.Second,
			SolveTimeout:     30 * time.Second,
			MaxStoredResults: 1000,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load the defaults overlaid by the YAML file. An empty filename only returns the defaults.
// The result is not validated, since flags may still change it.
func Load(filename string) (*Config, error) {
	cfg := Default()
	if filename == "" {
		return cfg, nil
	}
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	if err := cfg.Decode(file); err != nil {
		return nil, fmt.Errorf("config %s: %w", filename, err)
	}
	return cfg, nil
}

// Overlay the settings of the YAML document. Unknown keys are rejected.
func (c *Config) Decode(r io.Reader) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

var validate = validator.New()

func (c *Config) Validate() error {
	return validate.Struct(c)
}

// Return the settings of a solve run
func (c SolverConfig) SolverConfig() (solver.Config, error) {
	mode, err := route.ParseSearchMode(c.Mode)
	if err != nil {
		return solver.Config{}, err
	}
	return solver.Config{
		Origin:        c.Origin,
		K:             c.K,
		MaxIterations: c.MaxIterations,
		Seed:          c.Seed,
		Workers:       c.Workers,
		Mode:          mode,
	}, nil
}

// Create the zap logger for the log settings
func (c LogConfig) NewLogger() (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	}
	if c.Level != "" {
		level, err := zap.ParseAtomicLevel(c.Level)
		if err != nil {
			return nil, err
		}
		zc.Level = level
	}
	return zc.Build()
}
