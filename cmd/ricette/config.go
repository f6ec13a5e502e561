package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fwojciec/ricette/crawl"
	"github.com/fwojciec/ricette/gemini"
	ricettehttp "github.com/fwojciec/ricette/http"
	"gopkg.in/yaml.v3"
)

// Config holds all ricette configuration. Values come from an optional YAML
// file; command-line flags and RICETTE_* environment variables override it.
type Config struct {
	OutputDir                string        `yaml:"output_dir"`
	RequestDelay             time.Duration `yaml:"request_delay"`
	CategoryPages            *int          `yaml:"category_pages"`
	DeleteFrontierOnComplete *bool         `yaml:"delete_frontier_on_complete"`
	BaseURL                  string        `yaml:"base_url"`
	Concurrency              int           `yaml:"concurrency"`
	Timeout                  time.Duration `yaml:"timeout"`
	UserAgent                string        `yaml:"user_agent"`
	Browser                  bool          `yaml:"browser"`

	DBPath string `yaml:"db_path"`
	Index  string `yaml:"index"`

	GeminiAPIKey string `yaml:"gemini_api_key"`
	GeminiModel  string `yaml:"gemini_model"`
}

// defaults fills unset fields. A negative RequestDelay disables the delay.
// CategoryPages and DeleteFrontierOnComplete are only defaulted when nil, so
// an explicit zero or false survives.
func (c *Config) defaults() {
	if c.OutputDir == "" {
		c.OutputDir = "data"
	}
	if c.RequestDelay == 0 {
		c.RequestDelay = crawl.DefaultRequestDelay
	}
	if c.CategoryPages == nil {
		c.CategoryPages = ptr(crawl.DefaultCategoryPages)
	}
	if c.DeleteFrontierOnComplete == nil {
		c.DeleteFrontierOnComplete = ptr(false)
	}
	if c.BaseURL == "" {
		c.BaseURL = crawl.DefaultBaseURL
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 1
	}
	if c.Timeout <= 0 {
		c.Timeout = ricettehttp.DefaultFetchTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = ricettehttp.DefaultUserAgent
	}
	if c.DBPath == "" {
		c.DBPath = "ricette.db"
	}
	if c.Index == "" {
		c.Index = crawl.DefaultIndexName
	}
	if c.GeminiModel == "" {
		c.GeminiModel = gemini.DefaultModel
	}
}

// override copies every set field of o into c.
func (c *Config) override(o Config) {
	if o.OutputDir != "" {
		c.OutputDir = o.OutputDir
	}
	if o.RequestDelay != 0 {
		c.RequestDelay = o.RequestDelay
	}
	if o.CategoryPages != nil {
		c.CategoryPages = o.CategoryPages
	}
	if o.DeleteFrontierOnComplete != nil {
		c.DeleteFrontierOnComplete = o.DeleteFrontierOnComplete
	}
	if o.BaseURL != "" {
		c.BaseURL = o.BaseURL
	}
	if o.Concurrency != 0 {
		c.Concurrency = o.Concurrency
	}
	if o.Timeout != 0 {
		c.Timeout = o.Timeout
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.Browser {
		c.Browser = true
	}
	if o.DBPath != "" {
		c.DBPath = o.DBPath
	}
	if o.Index != "" {
		c.Index = o.Index
	}
	if o.GeminiAPIKey != "" {
		c.GeminiAPIKey = o.GeminiAPIKey
	}
	if o.GeminiModel != "" {
		c.GeminiModel = o.GeminiModel
	}
}

func ptr[T any](v T) *T { return &v }

// LoadConfigFile reads a YAML config file.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadConfig layers flags over the config file at path, if any, and then
// applies defaults.
func LoadConfig(path string, flags Config) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		var err error
		if cfg, err = LoadConfigFile(path); err != nil {
			return nil, err
		}
	}
	cfg.override(flags)
	cfg.defaults()
	return cfg, nil
}
