// Package config loads settings for the project viewer server and its front
// ends.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// PROJECTVIEW_* environment variables (a .env file in the working directory is
// read first), then command-line flags that were explicitly set.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

type Config struct {
	Env            string   `yaml:"env"`
	Addr           string   `yaml:"addr"`
	DataDir        string   `yaml:"data_dir"`
	WebDir         string   `yaml:"web_dir"`
	APIOrigin      string   `yaml:"api_origin"`
	ProjectID      int64    `yaml:"project_id"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	Seed           bool     `yaml:"seed"`

	// MarkdownDescriptions renders project descriptions as Markdown in the
	// browser. They are shown verbatim otherwise.
	MarkdownDescriptions bool `yaml:"markdown_descriptions"`
}

// Default returns the settings of a local development setup: API on port
// 8000 showing project 1.
func Default() Config {
	return Config{
		Env:            EnvLocal,
		Addr:           ":8000",
		DataDir:        "data",
		WebDir:         "web",
		APIOrigin:      "http://localhost:8000",
		ProjectID:      1,
		AllowedOrigins: []string{"http://localhost:3000"},
		Seed:           true,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// LoadFile reads a YAML file over the defaults. An empty path yields the
// defaults unchanged.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Load reads the optional YAML file at path and applies environment
// overrides on top of it.
func Load(path string) (Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from PROJECTVIEW_* environment variables.
func (c *Config) ApplyEnv() error {
	c.Env = getEnv("PROJECTVIEW_ENV", c.Env)
	c.Addr = getEnv("PROJECTVIEW_ADDR", c.Addr)
	c.DataDir = getEnv("PROJECTVIEW_DATA_DIR", c.DataDir)
	c.WebDir = getEnv("PROJECTVIEW_WEB_DIR", c.WebDir)
	c.APIOrigin = getEnv("PROJECTVIEW_API_ORIGIN", c.APIOrigin)

	if v := os.Getenv("PROJECTVIEW_PROJECT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("PROJECTVIEW_PROJECT_ID: %w", err)
		}
		c.ProjectID = id
	}
	if v := os.Getenv("PROJECTVIEW_ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("PROJECTVIEW_SEED"); v != "" {
		seed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("PROJECTVIEW_SEED: %w", err)
		}
		c.Seed = seed
	}
	if v := os.Getenv("PROJECTVIEW_MARKDOWN"); v != "" {
		md, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("PROJECTVIEW_MARKDOWN: %w", err)
		}
		c.MarkdownDescriptions = md
	}
	return nil
}

// RegisterFlags defines the override flags on fs. Only flags the user sets
// are applied by ApplyFlags.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String("env", d.Env, "environment: local, dev or prod")
	fs.String("addr", d.Addr, "listen address")
	fs.String("data-dir", d.DataDir, "directory holding the SQLite database")
	fs.String("web-dir", d.WebDir, "directory holding app.wasm")
	fs.String("api-origin", d.APIOrigin, "origin of the project API")
	fs.Int64("project", d.ProjectID, "project id to display")
	fs.StringSlice("allowed-origin", d.AllowedOrigins, "browser origin allowed to call the API (repeatable)")
	fs.Bool("seed", d.Seed, "populate demo data into an empty database")
	fs.Bool("markdown", d.MarkdownDescriptions, "render project descriptions as Markdown in the browser")
}

// ApplyFlags copies explicitly set flags from fs into c.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	var err error
	str := func(name string, dst *string) {
		if err == nil && fs.Changed(name) {
			*dst, err = fs.GetString(name)
		}
	}
	str("env", &c.Env)
	str("addr", &c.Addr)
	str("data-dir", &c.DataDir)
	str("web-dir", &c.WebDir)
	str("api-origin", &c.APIOrigin)
	if err == nil && fs.Changed("project") {
		c.ProjectID, err = fs.GetInt64("project")
	}
	if err == nil && fs.Changed("allowed-origin") {
		c.AllowedOrigins, err = fs.GetStringSlice("allowed-origin")
	}
	if err == nil && fs.Changed("seed") {
		c.Seed, err = fs.GetBool("seed")
	}
	if err == nil && fs.Changed("markdown") {
		c.MarkdownDescriptions, err = fs.GetBool("markdown")
	}
	return err
}

func (c Config) Validate() error {
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("unknown env %q", c.Env)
	}
	if c.ProjectID <= 0 {
		return fmt.Errorf("project id must be positive, got %d", c.ProjectID)
	}
	u, err := url.Parse(c.APIOrigin)
	if err != nil {
		return fmt.Errorf("api origin: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api origin %q must be an absolute http(s) URL", c.APIOrigin)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
