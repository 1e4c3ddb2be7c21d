package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/urlcrawl"
	"github.com/fwojciec/urlcrawl/crawl"
	"github.com/fwojciec/urlcrawl/fs"
	crawlhttp "github.com/fwojciec/urlcrawl/http"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the configuration file looked up when --config is not given.
const DefaultConfigFile = ".urlcrawl.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// Link extractor names.
const (
	ExtractorPattern = "pattern"
	ExtractorDOM     = "dom"
)

// Config holds the crawl settings after defaults, the config file and
// command-line flags have been merged, in that order of precedence.
type Config struct {
	Target    int           `yaml:"target"`
	Wait      time.Duration `yaml:"wait"`
	Workers   int           `yaml:"workers"`
	Grace     time.Duration `yaml:"grace"`
	Timeout   time.Duration `yaml:"timeout"`
	Output    string        `yaml:"output"`
	DB        string        `yaml:"db"`
	Extractor string        `yaml:"extractor"`
	UserAgent string        `yaml:"user_agent"`
	Verbose   bool          `yaml:"verbose"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		Target:    crawl.DefaultTarget,
		Wait:      crawl.DefaultWaitTimeout,
		Workers:   crawl.DefaultWorkers,
		Grace:     crawl.DefaultGracePeriod,
		Timeout:   crawlhttp.DefaultFetchTimeout,
		Output:    fs.DefaultPath,
		Extractor: ExtractorPattern,
		UserAgent: crawlhttp.DefaultUserAgent,
	}
}

// Apply overrides c with every non-zero field of o.
func (c *Config) Apply(o Config) {
	if o.Target != 0 {
		c.Target = o.Target
	}
	if o.Wait != 0 {
		c.Wait = o.Wait
	}
	if o.Workers != 0 {
		c.Workers = o.Workers
	}
	if o.Grace != 0 {
		c.Grace = o.Grace
	}
	if o.Timeout != 0 {
		c.Timeout = o.Timeout
	}
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.DB != "" {
		c.DB = o.DB
	}
	if o.Extractor != "" {
		c.Extractor = o.Extractor
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.Verbose {
		c.Verbose = true
	}
}

// Validate returns an error if the configuration cannot drive a crawl.
func (c Config) Validate() error {
	if c.Target < 1 {
		return urlcrawl.Errorf(urlcrawl.EINVALID, "target must be at least 1, got %d", c.Target)
	}
	if c.Workers < 1 {
		return urlcrawl.Errorf(urlcrawl.EINVALID, "workers must be at least 1, got %d", c.Workers)
	}
	if c.Wait <= 0 {
		return urlcrawl.Errorf(urlcrawl.EINVALID, "wait timeout must be positive")
	}
	if c.Grace <= 0 {
		return urlcrawl.Errorf(urlcrawl.EINVALID, "grace period must be positive")
	}
	if c.Timeout <= 0 {
		return urlcrawl.Errorf(urlcrawl.EINVALID, "fetch timeout must be positive")
	}
	switch c.Extractor {
	case ExtractorPattern, ExtractorDOM:
	default:
		return urlcrawl.Errorf(urlcrawl.EINVALID, "extractor must be %q or %q, got %q", ExtractorPattern, ExtractorDOM, c.Extractor)
	}
	return nil
}

// LoadConfigFile loads settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, urlcrawl.Errorf(urlcrawl.EINVALID, "invalid config file %s: %v", path, err)
	}
	return &cfg, nil
}

// FindConfigFile returns the config file to load: configPath when given,
// otherwise DefaultConfigFile in the current directory, then in the user's
// home directory. It returns "" when none exists.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		return configPath
	}

	if cwd, err := os.Getwd(); err == nil {
		p := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// loadConfig resolves defaults and the config file. An explicitly named
// file must exist.
func loadConfig(configPath string) (Config, error) {
	cfg := DefaultConfig()

	path := FindConfigFile(configPath)
	if path == "" {
		return cfg, nil
	}

	file, err := LoadConfigFile(path)
	if err != nil {
		return cfg, fmt.Errorf("loading config %s: %w", path, err)
	}
	cfg.Apply(*file)
	return cfg, nil
}
