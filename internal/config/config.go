package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrMissingAPIKey is returned by Validate when no bearer token is configured.
var ErrMissingAPIKey = errors.New("missing API key")

type Config struct {
	Provider  string        `yaml:"provider"`
	APIKey    string        `yaml:"api_key,omitempty"`
	Model     string        `yaml:"model"`
	BaseURL   string        `yaml:"base_url,omitempty"`
	MaxTokens int           `yaml:"max_tokens"`
	Timeout   time.Duration `yaml:"timeout,omitempty"`

	// Sent to OpenRouter as X-Title / HTTP-Referer.
	AppTitle string `yaml:"app_title,omitempty"`
	Referer  string `yaml:"referer,omitempty"`

	OutputDir string `yaml:"output_dir"`
	TempDir   string `yaml:"temp_dir,omitempty"`

	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type LogConfig struct {
	Mode string `yaml:"mode"`
	File string `yaml:"file,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Provider:  "openrouter",
		MaxTokens: 800,
		AppTitle:  "PlaneaDocente",
		OutputDir: ".",
		Server: ServerConfig{
			Addr: ":8501",
		},
		Log: LogConfig{
			Mode: "dev",
		},
	}
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "planea"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// DefaultLogFile is where the terminal UI writes its log, since it owns stdout.
func DefaultLogFile() string {
	dir, err := ConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "planea.log")
	}
	return filepath.Join(dir, "planea.log")
}

func Exists() bool {
	path, err := ConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Load reads the yaml config at path on top of DefaultConfig and then applies
// environment overrides. An empty path means the default location, which may
// be absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		p, err := ConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyProviderDefaults()
	return cfg, nil
}

// applyProviderDefaults fills an unset model from the provider catalogue.
func (c *Config) applyProviderDefaults() {
	if c.Model != "" {
		return
	}
	if info := GetProvider(c.Provider); info != nil {
		c.Model = info.DefaultModel
	}
}

func (c *Config) applyEnv() error {
	strOverrides := []struct {
		keys []string
		dst  *string
	}{
		{[]string{"OPENROUTER_API_KEY", "PLANEA_API_KEY"}, &c.APIKey},
		{[]string{"PLANEA_PROVIDER"}, &c.Provider},
		{[]string{"PLANEA_MODEL"}, &c.Model},
		{[]string{"PLANEA_BASE_URL"}, &c.BaseURL},
		{[]string{"PLANEA_ADDR"}, &c.Server.Addr},
		{[]string{"PLANEA_OUTPUT_DIR"}, &c.OutputDir},
		{[]string{"PLANEA_TEMP_DIR"}, &c.TempDir},
		{[]string{"PLANEA_LOG_MODE"}, &c.Log.Mode},
		{[]string{"PLANEA_LOG_FILE"}, &c.Log.File},
	}
	for _, o := range strOverrides {
		for _, k := range o.keys {
			if v := strings.TrimSpace(os.Getenv(k)); v != "" {
				*o.dst = v
				break
			}
		}
	}

	if v := strings.TrimSpace(os.Getenv("PLANEA_MAX_TOKENS")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("PLANEA_MAX_TOKENS: invalid value %q", v)
		}
		c.MaxTokens = n
	}
	if v := strings.TrimSpace(os.Getenv("PLANEA_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("PLANEA_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	return nil
}

// Validate checks the settings every front-end needs before the first request.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return ErrMissingAPIKey
	}
	if GetProvider(c.Provider) == nil {
		return fmt.Errorf("unknown provider: %s", c.Provider)
	}
	if c.Provider == "custom" && c.BaseURL == "" {
		return fmt.Errorf("custom provider requires base_url")
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must not be negative")
	}
	return nil
}

func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}
