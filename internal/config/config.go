// Package config resolves runtime settings from defaults, an optional YAML
// file, a project .env file and the process environment, in that order.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultServiceURL     = "https://echo.merit.systems"
	DefaultRouterURL      = "https://echo.router.merit.systems"
	DefaultAppID          = "46e0ce04-641d-4238-93c9-2482668de9bc"
	DefaultLogLevel       = "info"
	DefaultImageProvider  = "openai"
	DefaultRefineProvider = "openai"
	DefaultRefineModel    = "gpt-4o-mini"

	appDirName     = "memerender"
	configFileName = "config.yaml"
)

const (
	EnvServiceURL     = "ECHO_URL"
	EnvRouterURL      = "ECHO_ROUTER_URL"
	EnvAppID          = "ECHO_APP_ID"
	EnvDBPath         = "MEMERENDER_DB_PATH"
	EnvLogLevel       = "LOG_LEVEL"
	EnvImageProvider  = "MEMERENDER_IMAGE_PROVIDER"
	EnvRefineProvider = "MEMERENDER_REFINE_PROVIDER"
	EnvRefineModel    = "MEMERENDER_REFINE_MODEL"
)

// Config captures the recognised options. Empty DBPath means "use the
// build's default location".
type Config struct {
	ServiceURL     string `yaml:"service_url"`
	RouterURL      string `yaml:"router_url"`
	AppID          string `yaml:"app_id"`
	DBPath         string `yaml:"db_path"`
	LogLevel       string `yaml:"log_level"`
	ImageProvider  string `yaml:"image_provider"`
	RefineProvider string `yaml:"refine_provider"`
	RefineModel    string `yaml:"refine_model"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ServiceURL:     DefaultServiceURL,
		RouterURL:      DefaultRouterURL,
		AppID:          DefaultAppID,
		LogLevel:       DefaultLogLevel,
		ImageProvider:  DefaultImageProvider,
		RefineProvider: DefaultRefineProvider,
		RefineModel:    DefaultRefineModel,
	}
}

// Options controls where Load looks for its inputs.
type Options struct {
	// ConfigFile overrides the YAML location. Empty uses the user config dir.
	ConfigFile string
	// EnvFile is loaded into the process environment when present. Empty
	// looks for .env at the project root.
	EnvFile string
	// SkipEnvFile disables .env loading entirely.
	SkipEnvFile bool
}

// Load resolves the configuration. A missing YAML or .env file is not an
// error; a malformed one is.
func Load(opts Options) (Config, error) {
	cfg := Default()

	path := opts.ConfigFile
	if path == "" {
		if p, err := DefaultConfigPath(); err == nil {
			path = p
		}
	}
	if path != "" {
		if err := mergeFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	if !opts.SkipEnvFile {
		if err := loadEnvFile(opts.EnvFile); err != nil {
			return Config{}, err
		}
	}

	if err := mergeEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DefaultConfigPath returns <UserConfigDir>/memerender/config.yaml.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName, configFileName), nil
}

// Validate checks the URLs and the provider names.
func (c Config) Validate() error {
	for name, raw := range map[string]string{"service url": c.ServiceURL, "router url": c.RouterURL} {
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("%s is invalid: %w", name, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("%s must use http or https: %q", name, raw)
		}
	}
	if strings.TrimSpace(c.AppID) == "" {
		return errors.New("app id must not be empty")
	}
	switch c.ImageProvider {
	case "openai", "gemini":
	default:
		return fmt.Errorf("unsupported image provider %q", c.ImageProvider)
	}
	switch c.RefineProvider {
	case "openai", "anthropic", "gemini":
	default:
		return fmt.Errorf("unsupported refine provider %q", c.RefineProvider)
	}
	return nil
}

func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fromFile Config
	if err := yaml.Unmarshal(data, &fromFile); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	overlay(&cfg.ServiceURL, fromFile.ServiceURL)
	overlay(&cfg.RouterURL, fromFile.RouterURL)
	overlay(&cfg.AppID, fromFile.AppID)
	overlay(&cfg.DBPath, fromFile.DBPath)
	overlay(&cfg.LogLevel, fromFile.LogLevel)
	overlay(&cfg.ImageProvider, fromFile.ImageProvider)
	overlay(&cfg.RefineProvider, fromFile.RefineProvider)
	overlay(&cfg.RefineModel, fromFile.RefineModel)
	return nil
}

func overlay(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func loadEnvFile(path string) error {
	if path == "" {
		root, err := FindProjectRoot()
		if err != nil {
			return nil
		}
		path = filepath.Join(root, ".env")
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

func mergeEnv(cfg *Config) error {
	fields := []struct {
		key string
		dst *string
	}{
		{EnvServiceURL, &cfg.ServiceURL},
		{EnvRouterURL, &cfg.RouterURL},
		{EnvAppID, &cfg.AppID},
		{EnvDBPath, &cfg.DBPath},
		{EnvLogLevel, &cfg.LogLevel},
		{EnvImageProvider, &cfg.ImageProvider},
		{EnvRefineProvider, &cfg.RefineProvider},
		{EnvRefineModel, &cfg.RefineModel},
	}
	for _, f := range fields {
		v, err := readRequiredOrDefault(f.key, *f.dst)
		if err != nil {
			return err
		}
		*f.dst = v
	}
	return nil
}

func readRequiredOrDefault(key, fallback string) (string, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	if strings.TrimSpace(raw) == "" {
		return "", fmt.Errorf("%s must not be empty", key)
	}
	return strings.TrimSpace(raw), nil
}

// FindProjectRoot walks up from the working directory to the first go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}
