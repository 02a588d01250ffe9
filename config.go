package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type SiteConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
	Css         string `yaml:"css"`
	BaseURL     string `yaml:"base_url"`
	Language    string `yaml:"language"`
}

type Config struct {
	Server          string        `yaml:"server"`
	Database        string        `yaml:"database"`
	Dsn             string        `yaml:"dsn"`
	Cache           bool          `yaml:"cache"`
	ItemsPerPage    int           `yaml:"items_per_page"`
	PostBlockExpire time.Duration `yaml:"post_block_expire"`
	Translations    string        `yaml:"translations"`
	Site            SiteConfig    `yaml:"site"`
}

func NewConfig() *Config {
	return &Config{
		Server:          ":8080",
		Database:        "sqlite",
		Dsn:             "./blogboard.db?_pragma=foreign_keys(1)",
		ItemsPerPage:    10,
		PostBlockExpire: 30 * time.Second,
		Translations:    "./translations",
		Site: SiteConfig{
			Title:       "Blogboard",
			Description: "Stories, notes and comments",
			Language:    "en",
		},
	}
}

// Load overlays the YAML file at path on the defaults. An empty path keeps
// the defaults.
func (c *Config) Load(path string) error {
	if path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if port := os.Getenv("PORT"); port != "" {
		c.Server = port
	}
	return c.validate()
}

func (c *Config) validate() error {
	switch c.Database {
	case "sqlite", "postgres", "memory":
	default:
		return fmt.Errorf("unsupported database %q", c.Database)
	}
	if c.ItemsPerPage <= 0 {
		return fmt.Errorf("items_per_page must be positive, got %d", c.ItemsPerPage)
	}
	return nil
}
