// Package config resolves hostbridge CLI settings from an optional
// hostbridge.yaml, HOSTBRIDGE_* environment variables and the enclosing
// go.mod.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/hostbridge/pkg/codec"
	"github.com/go-drift/hostbridge/pkg/logging"
)

// FileName is the name of the optional configuration file.
const FileName = "hostbridge.yaml"

// DefaultContainer is the container id previews mount into.
const DefaultContainer = "root"

// Config represents the optional hostbridge.yaml configuration. Fields
// tagged env are overridden by the named environment variable when set.
type Config struct {
	App    AppConfig    `yaml:"app"`
	Render RenderConfig `yaml:"render"`
	Log    LogConfig    `yaml:"log"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty" env:"HOSTBRIDGE_APP_NAME"`
}

// RenderConfig controls the in-memory host used by previews.
type RenderConfig struct {
	Container   string `yaml:"container,omitempty" env:"HOSTBRIDGE_CONTAINER"`
	Codec       string `yaml:"codec,omitempty" env:"HOSTBRIDGE_CODEC"`
	StrictSlots *bool  `yaml:"strict_slots,omitempty" env:"HOSTBRIDGE_STRICT_SLOTS"`
}

// LogConfig controls CLI logging.
type LogConfig struct {
	Level   string `yaml:"level,omitempty" env:"HOSTBRIDGE_LOG_LEVEL"`
	Verbose bool   `yaml:"verbose,omitempty" env:"HOSTBRIDGE_VERBOSE"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root        string
	ModulePath  string
	AppName     string
	Container   string
	Codec       codec.Format
	StrictSlots bool
	LogLevel    slog.Level
	Verbose     bool
}

// LoadOptional reads hostbridge.yaml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Default returns the configuration init writes for a new project.
func Default(appName string) *Config {
	strict := true
	return &Config{
		App: AppConfig{Name: appName},
		Render: RenderConfig{
			Container:   DefaultContainer,
			Codec:       codec.JSON.Name(),
			StrictSlots: &strict,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Write stores cfg as hostbridge.yaml in dir. An existing file is only
// replaced when overwrite is set.
func Write(dir string, cfg *Config, overwrite bool) (string, error) {
	path := filepath.Join(dir, FileName)
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("%s already exists", path)
		}
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", FileName, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", FileName, err)
	}
	return path, nil
}

// Resolve loads hostbridge.yaml (if present), applies environment
// overrides and resolves defaults. dir need not contain a go.mod.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	modulePath, err := modulePath(dir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultAppName(modulePath, dir)
	}

	container := strings.TrimSpace(cfg.Render.Container)
	if container == "" {
		container = DefaultContainer
	}

	codecName := strings.ToLower(strings.TrimSpace(cfg.Render.Codec))
	if codecName == "" {
		codecName = codec.DefaultFormat.Name()
	}
	format, ok := codec.Lookup(codecName)
	if !ok {
		return nil, fmt.Errorf("render.codec must be one of %s (got %q)", strings.Join(codec.Names(), ", "), cfg.Render.Codec)
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}

	strict := true
	if cfg.Render.StrictSlots != nil {
		strict = *cfg.Render.StrictSlots
	}

	if err := validateContainerID(container); err != nil {
		return nil, err
	}

	return &Resolved{
		Root:        dir,
		ModulePath:  modulePath,
		AppName:     appName,
		Container:   container,
		Codec:       format,
		StrictSlots: strict,
		LogLevel:    level,
		Verbose:     cfg.Log.Verbose,
	}, nil
}

// FindProjectRoot walks up from the current directory to find go.mod. When
// there is none it returns the current directory.
func FindProjectRoot() (string, error) {
	start, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := start
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return start, nil
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", err
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

// DefaultAppName derives an application name from the go.mod in dir,
// falling back to the directory name.
func DefaultAppName(dir string) string {
	path, _ := modulePath(dir)
	return defaultAppName(path, dir)
}

func defaultAppName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modulePath != "" {
		modName, _, ok := module.SplitPathVersion(modulePath)
		if ok {
			parts := strings.Split(modName, "/")
			base = parts[len(parts)-1]
		}
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "hostbridge_app"
	}
	return base
}

func validateContainerID(id string) error {
	for _, r := range id {
		if r == ' ' || r == '\t' || r == '\n' || r == '"' || r == '<' || r == '>' {
			return fmt.Errorf("render.container contains invalid character %q in %q", r, id)
		}
	}
	return nil
}
