package dieselxr

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/andewx/dieselxr/internal/logging"
	"github.com/andewx/dieselxr/xr"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Environment overrides applied by LoadConfig.
const (
	EnvRuntime       = "DIESELXR_RUNTIME"
	EnvProfile       = "DIESELXR_PROFILE"
	EnvLogFile       = "DIESELXR_LOG_FILE"
	EnvLogLevel      = "DIESELXR_LOG_LEVEL"
	EnvVulkanVersion = "DIESELXR_VULKAN_VERSION"
)

// Config is the demo and platform configuration, read from YAML.
type Config struct {
	AppName       string `yaml:"app_name"`
	AppVersion    string `yaml:"app_version"`
	EngineName    string `yaml:"engine_name"`
	EngineVersion string `yaml:"engine_version"`
	// VulkanVersion is the graphics API version offered to the XR runtime.
	VulkanVersion string `yaml:"vulkan_version"`

	// Runtime names the registered XR loader; empty picks the first one.
	Runtime string `yaml:"runtime"`
	// Profile is a YAML device profile for the simulated runtime.
	Profile string `yaml:"profile"`

	LogFile        string `yaml:"log_file"`
	LogLevel       string `yaml:"log_level"`
	LogDevelopment bool   `yaml:"log_development"`

	ValidationLayers []string `yaml:"validation_layers"`
}

// DefaultConfig targets Vulkan 1.1 on the simulated runtime.
func DefaultConfig() Config {
	return Config{
		AppName:       "dieselxr",
		AppVersion:    "0.1.0",
		EngineName:    "dieselxr",
		EngineVersion: "0.1.0",
		VulkanVersion: "1.1.0",
		Runtime:       "simulated",
		LogLevel:      "info",
	}
}

// LoadConfig reads path (if non-empty) over DefaultConfig and applies
// environment overrides. envFiles are loaded with godotenv first; missing
// files are ignored and variables already set win.
func LoadConfig(path string, envFiles ...string) (Config, error) {
	cfg := DefaultConfig()
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, name := range envFiles {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, name, err)
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
		}
	}
	cfg.applyEnv()
	if _, err := cfg.BackendVersion(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	for env, field := range map[string]*string{
		EnvRuntime:       &c.Runtime,
		EnvProfile:       &c.Profile,
		EnvLogFile:       &c.LogFile,
		EnvLogLevel:      &c.LogLevel,
		EnvVulkanVersion: &c.VulkanVersion,
	} {
		if v, ok := os.LookupEnv(env); ok {
			*field = v
		}
	}
}

// BackendVersion parses VulkanVersion.
func (c Config) BackendVersion() (xr.Version, error) {
	v, err := xr.ParseVersion(c.VulkanVersion)
	if err != nil {
		return 0, fmt.Errorf("%w: vulkan_version: %w", ErrInvalidConfig, err)
	}
	return v, nil
}

func (c Config) parseVersion(field, s string) uint32 {
	v, err := xr.ParseVersion(s)
	if err != nil {
		logger().Warn("ignoring unparsable version", zap.String("field", field), zap.String("value", s))
		return 0
	}
	return v.Vulkan()
}

// ApplicationInfo is what the XR runtime sees of this application.
func (c Config) ApplicationInfo() xr.ApplicationInfo {
	return xr.ApplicationInfo{
		ApplicationName:    c.AppName,
		ApplicationVersion: c.parseVersion("app_version", c.AppVersion),
		EngineName:         c.EngineName,
		EngineVersion:      c.parseVersion("engine_version", c.EngineVersion),
	}
}

// PlatformConfig fills the headless Vulkan bootstrap from the config.
func (c Config) PlatformConfig() (PlatformConfig, error) {
	v, err := c.BackendVersion()
	if err != nil {
		return PlatformConfig{}, err
	}
	return PlatformConfig{
		AppName:          c.AppName,
		AppVersion:       c.parseVersion("app_version", c.AppVersion),
		EngineName:       c.EngineName,
		APIVersion:       v.Vulkan(),
		ValidationLayers: c.ValidationLayers,
	}, nil
}

// NewLogger builds the logger described by the log_* fields.
func (c Config) NewLogger() *zap.Logger {
	return logging.New(logging.Options{
		FilePath:    c.LogFile,
		Level:       c.LogLevel,
		Development: c.LogDevelopment,
	})
}
