package config

import (
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultSystemInstruction is the assistant persona passed to the
// completion backend with every request.
const DefaultSystemInstruction = "You are a safe, friendly, and helpful Family Assistant. " +
	"Your goal is to help parents and children organize their lives, learn together, " +
	"and manage family plans. Always be respectful and age-appropriate."

// Default returns the built-in configuration.
func Default() *Config {
	c := &Config{}
	c.Server.Address = "127.0.0.1"
	c.Server.Port = 8080
	c.Server.DBPath = "./familyconnect-data"
	c.Logging.Level = "info"
	c.Security.RateLimit.RPS = 25
	c.Security.RateLimit.Burst = 50
	c.Assistant.Model = "gemini-3-flash-preview"
	c.Assistant.APIKeyEnv = "FAMILYCONNECT_ASSISTANT_API_KEY"
	c.Assistant.SystemInstruction = DefaultSystemInstruction
	c.Assistant.Timeout = Duration(20e9)
	c.Assistant.MaxResponseBytes = 64 << 10
	c.Retention.Enabled = true
	c.Retention.Cron = "*/15 * * * *"
	c.Retention.Lifetime = Duration(24 * 3600 * 1e9)
	c.Retention.BatchSize = 200
	return c
}

// Load reads the YAML config file at path (if non-empty), merges it over
// the defaults and then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	applyEnv(cfg)
	return cfg, nil
}

// applyEnv overrides config values from FAMILYCONNECT_* environment
// variables. Env wins over file, flags win over both (resolved in main).
func applyEnv(c *Config) {
	if v := os.Getenv("FAMILYCONNECT_ADDR"); v != "" {
		if host, port, err := net.SplitHostPort(v); err == nil {
			c.Server.Address = host
			if pi, err := strconv.Atoi(port); err == nil {
				c.Server.Port = pi
			}
		} else {
			c.Server.Address = v
		}
	}
	if v := os.Getenv("FAMILYCONNECT_PORT"); v != "" {
		if pi, err := strconv.Atoi(v); err == nil {
			c.Server.Port = pi
		}
	}
	if v := os.Getenv("FAMILYCONNECT_DB"); v != "" {
		c.Server.DBPath = v
	}
	if v := os.Getenv("FAMILYCONNECT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("FAMILYCONNECT_ASSISTANT_ENDPOINT"); v != "" {
		c.Assistant.Endpoint = v
	}
	if v := os.Getenv("FAMILYCONNECT_ASSISTANT_MODEL"); v != "" {
		c.Assistant.Model = v
	}
	if v := os.Getenv("FAMILYCONNECT_OFFLINE"); v != "" {
		offline := v == "1" || strings.EqualFold(v, "true")
		online := !offline
		c.Assistant.Online = &online
	}
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	host := c.Server.Address
	if host == "" {
		host = "127.0.0.1"
	}
	port := c.Server.Port
	if port == 0 {
		port = 8080
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// AssistantOnline resolves the optional online flag, defaulting to true.
func (c *Config) AssistantOnline() bool {
	if c.Assistant.Online == nil {
		return true
	}
	return *c.Assistant.Online
}

// AssistantAPIKey resolves the backend API key from the configured
// environment variable. Empty means unauthenticated (mock backends).
func (c *Config) AssistantAPIKey() string {
	if c.Assistant.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.Assistant.APIKeyEnv)
}

// Flags holds command-line values and which of them were explicitly set.
type Flags struct {
	Addr   string
	DB     string
	Config string
	Set    map[string]bool
}

// ParseCommandFlags centralizes flag parsing for the server binary.
func ParseCommandFlags() Flags {
	addr := flag.String("addr", "", "listen address (host:port)")
	db := flag.String("db", "", "path to the pebble database directory")
	cfg := flag.String("config", "", "path to YAML config file")
	flag.Parse()
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return Flags{Addr: *addr, DB: *db, Config: *cfg, Set: set}
}

// ResolveConfigPath picks the config file path: flag wins over the
// FAMILYCONNECT_CONFIG environment variable.
func ResolveConfigPath(f Flags) string {
	if f.Set["config"] {
		return f.Config
	}
	return os.Getenv("FAMILYCONNECT_CONFIG")
}
