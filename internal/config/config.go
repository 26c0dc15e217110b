package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/packetplay/internal/model"
)

const (
	DefaultDestination = "255.255.255.255:3000"
	DefaultSourcePort  = 3001
	DefaultTTL         = 1

	envPrefix = "PACKETPLAY_"
)

// ErrInvalidSettings is returned by ValidateSettings.
var ErrInvalidSettings = errors.New("invalid settings")

type Config struct {
	Destination   string `koanf:"destination"`    // host:port, IPv4 unicast, broadcast or multicast
	SourcePort    int    `koanf:"source_port"`    // local UDP port, 0 picks one
	TTL           int    `koanf:"ttl"`            // unicast and multicast TTL
	AutoPlay      bool   `koanf:"auto_play"`      // start playback as soon as a file opens
	DefaultFolder string `koanf:"default_folder"` // where the open prompt starts, empty means cwd

	Bridge BridgeConfig `koanf:"bridge"`

	MPRIS         bool `koanf:"mpris"`
	Notifications bool `koanf:"notifications"`

	Log LogConfig `koanf:"log"`
}

// BridgeConfig configures the local JSON control socket.
type BridgeConfig struct {
	Listen string `koanf:"listen"` // "host:port" or "unix:/path", empty disables
}

// LogConfig configures the slog output.
type LogConfig struct {
	Level string `koanf:"level"` // debug, info, warn, error
	File  string `koanf:"file"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Destination:   DefaultDestination,
		SourcePort:    DefaultSourcePort,
		TTL:           DefaultTTL,
		MPRIS:         true,
		Notifications: true,
		Log:           LogConfig{Level: "info"},
	}
}

func Load() (*Config, error) {
	return load(getConfigPaths())
}

// LoadFile reads path instead of the standard locations. Environment
// overrides still apply.
func LoadFile(path string) (*Config, error) {
	path = expandPath(path)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	return load([]string{path})
}

func load(paths []string) (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	// Environment overrides every file.
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.DefaultFolder != "" {
		cfg.DefaultFolder = expandPath(cfg.DefaultFolder)
	}
	if cfg.Log.File != "" {
		cfg.Log.File = expandPath(cfg.Log.File)
	}

	return cfg, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	}
	return nil, fmt.Errorf("unsupported config file %q", path)
}

// nestedEnvKeys maps flattened environment names onto nested keys.
var nestedEnvKeys = map[string]string{
	"bridge_listen": "bridge.listen",
	"log_level":     "log.level",
	"log_file":      "log.file",
}

// envKey turns PACKETPLAY_SOURCE_PORT into source_port.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	if nested, ok := nestedEnvKeys[key]; ok {
		return nested
	}
	return key
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. $XDG_CONFIG_HOME/packetplay/config.{toml,yaml}
	dir := filepath.Join(xdg.ConfigHome, "packetplay")
	paths = append(paths,
		filepath.Join(dir, "config.toml"),
		filepath.Join(dir, "config.yaml"),
	)

	// 2. ./config.{toml,yaml} (pwd, highest priority)
	paths = append(paths, "config.toml", "config.yaml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// Settings returns the validated replay settings.
func (c *Config) Settings() (model.Settings, error) {
	s := model.Settings{Destination: c.Destination, SourcePort: c.SourcePort, TTL: c.TTL}
	if err := ValidateSettings(s); err != nil {
		return model.Settings{}, err
	}
	return s, nil
}

// HasBridge returns true if the JSON bridge should be started.
func (c *Config) HasBridge() bool {
	return c.Bridge.Listen != ""
}

// ValidateSettings checks that s can be used to dial a sender.
func ValidateSettings(s model.Settings) error {
	host, port, err := net.SplitHostPort(s.Destination)
	if err != nil {
		return fmt.Errorf("%w: destination %q: %w", ErrInvalidSettings, s.Destination, err)
	}
	if ip := net.ParseIP(host); ip == nil || ip.To4() == nil {
		return fmt.Errorf("%w: destination host %q is not an IPv4 address", ErrInvalidSettings, host)
	}
	if p, err := strconv.Atoi(port); err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("%w: destination port %q out of range 1-65535", ErrInvalidSettings, port)
	}
	if s.SourcePort < 0 || s.SourcePort > 65535 {
		return fmt.Errorf("%w: source port %d out of range 0-65535", ErrInvalidSettings, s.SourcePort)
	}
	if s.TTL < 1 || s.TTL > 255 {
		return fmt.Errorf("%w: ttl %d out of range 1-255", ErrInvalidSettings, s.TTL)
	}
	return nil
}
