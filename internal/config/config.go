// Package config owns the .zklens/config.toml project configuration. The
// configuration is loaded once at command entry and passed explicitly into the
// operations that need it; every mutation is persisted immediately.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// DirName is the per-project configuration directory.
	DirName = ".zklens"

	configFile = "config.toml"

	// SchemaVersion is bumped whenever the persisted layout changes shape.
	SchemaVersion = 1

	// DefaultWebAppURL is the hosted report viewer front-end.
	DefaultWebAppURL = "https://zklens.dev/viewer"
)

// ErrNotInitialized marks commands run against a project that has no .zklens
// directory yet. Recoverable by running init.
var ErrNotInitialized = errors.New("project not initialized (run 'zklens init' first)")

// Config is the persisted per-project configuration.
type Config struct {
	SchemaVersion int     `toml:"schema_version"`
	InitializedAt int64   `toml:"initialized_at"`
	Network       Network `toml:"network"`
	RPCURL        string  `toml:"rpc_url"`
	CustomRPC     bool    `toml:"custom_rpc"`
	WebAppURL     string  `toml:"web_app_url"`
}

// New returns the default configuration for a fresh project.
func New() *Config {
	return &Config{
		SchemaVersion: SchemaVersion,
		InitializedAt: time.Now().Unix(),
		Network:       Devnet,
		RPCURL:        Devnet.DefaultRPCURL(),
		CustomRPC:     false,
		WebAppURL:     DefaultWebAppURL,
	}
}

// Dir returns the configuration directory for a project root.
func Dir(root string) string {
	return filepath.Join(root, DirName)
}

// Path returns the config file path for a project root.
func Path(root string) string {
	return filepath.Join(Dir(root), configFile)
}

// IsInitialized reports whether the project has a .zklens directory.
func IsInitialized(root string) bool {
	info, err := os.Stat(Dir(root))
	return err == nil && info.IsDir()
}

// Load reads the project configuration. A missing directory or file yields
// ErrNotInitialized; a present but unparseable file is a hard error.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(Path(root))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotInitialized
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", Path(root), err)
	}
	if cfg.RPCURL == "" {
		cfg.RPCURL = cfg.Network.DefaultRPCURL()
	}
	if cfg.WebAppURL == "" {
		cfg.WebAppURL = DefaultWebAppURL
	}
	return &cfg, nil
}

// Save writes the configuration, creating the .zklens directory if needed.
func (c *Config) Save(root string) error {
	if err := os.MkdirAll(Dir(root), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(Path(root), []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// SetNetwork switches clusters. Unless a custom RPC endpoint is pinned, the
// RPC URL follows the new network's default.
func (c *Config) SetNetwork(n Network) {
	c.Network = n
	if !c.CustomRPC {
		c.RPCURL = n.DefaultRPCURL()
	}
}

// SetRPCURL pins a custom RPC endpoint. The scheme must be http or https.
func (c *Config) SetRPCURL(url string) error {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return fmt.Errorf("RPC URL must start with http:// or https://, got %q", url)
	}
	c.RPCURL = url
	c.CustomRPC = true
	return nil
}

// ResetRPCURL restores the current network's default endpoint.
func (c *Config) ResetRPCURL() string {
	c.RPCURL = c.Network.DefaultRPCURL()
	c.CustomRPC = false
	return c.RPCURL
}
