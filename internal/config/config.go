package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/shwimple/shwimple/internal/errors"
	"github.com/shwimple/shwimple/pkg/dom"
)

const (
	// ConfigName is the config file name without extension.
	ConfigName = "shwimple"

	// ConfigFileName is the file written by shwimple init.
	ConfigFileName = ConfigName + ".yaml"

	// EnvPrefix prefixes environment overrides (SHWIMPLE_SERVER_PORT, ...).
	EnvPrefix = "SHWIMPLE"

	// DefaultPort is the default preview server port.
	DefaultPort = 3000

	// DefaultHost is the default preview server host.
	DefaultHost = "localhost"

	// DefaultPages is the default page file directory.
	DefaultPages = "pages"

	// DefaultOutput is the default render output directory.
	DefaultOutput = "dist"

	// DefaultConcurrency is the default number of parallel uploads.
	DefaultConcurrency = 4
)

// Config represents shwimple.yaml.
type Config struct {
	// Pages is the directory holding page files.
	Pages string `mapstructure:"pages" yaml:"pages"`

	// Output is the directory rendered pages are written to.
	Output string `mapstructure:"output" yaml:"output"`

	// Layout is the default boilerplate layout for page files that do not
	// name one.
	Layout string `mapstructure:"layout" yaml:"layout"`

	// Server contains preview server configuration.
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	// Publish contains bucket upload configuration.
	Publish PublishConfig `mapstructure:"publish" yaml:"publish"`

	// Log contains logging configuration.
	Log LogConfig `mapstructure:"log" yaml:"log"`

	// configPath stores the path where the config was loaded from.
	configPath string

	// baseDir resolves relative paths when no file was loaded.
	baseDir string
}

// ServerConfig contains preview server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the port to listen on.
	Port int `mapstructure:"port" yaml:"port"`

	// Reload injects the live reload client and watches the pages directory.
	Reload bool `mapstructure:"reload" yaml:"reload"`
}

// PublishConfig contains S3 publishing settings.
type PublishConfig struct {
	// Bucket is the destination bucket.
	Bucket string `mapstructure:"bucket" yaml:"bucket"`

	// Prefix is prepended to every object key.
	Prefix string `mapstructure:"prefix" yaml:"prefix"`

	// Region is the bucket region.
	Region string `mapstructure:"region" yaml:"region"`

	// Endpoint overrides the S3 endpoint for compatible stores (MinIO, R2).
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint,omitempty"`

	// Concurrency bounds parallel uploads.
	Concurrency int `mapstructure:"concurrency" yaml:"concurrency"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level" yaml:"level"`

	// Format is text or json.
	Format string `mapstructure:"format" yaml:"format"`

	// File enables a rotated log file in addition to stderr.
	File string `mapstructure:"file" yaml:"file,omitempty"`

	MaxSizeMB  int  `mapstructure:"maxSizeMB" yaml:"maxSizeMB"`
	MaxBackups int  `mapstructure:"maxBackups" yaml:"maxBackups"`
	MaxAgeDays int  `mapstructure:"maxAgeDays" yaml:"maxAgeDays"`
	Compress   bool `mapstructure:"compress" yaml:"compress"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Pages:  DefaultPages,
		Output: DefaultOutput,
		Layout: dom.LayoutStandard.String(),
		Server: ServerConfig{
			Host:   DefaultHost,
			Port:   DefaultPort,
			Reload: true,
		},
		Publish: PublishConfig{
			Region:      "us-east-1",
			Concurrency: DefaultConcurrency,
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// NewViper returns a viper instance seeded with defaults and environment
// overrides. Callers bind command line flags to it before calling LoadWith.
func NewViper() *viper.Viper {
	v := viper.New()
	d := New()
	v.SetDefault("pages", d.Pages)
	v.SetDefault("output", d.Output)
	v.SetDefault("layout", d.Layout)
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.reload", d.Server.Reload)
	v.SetDefault("publish.bucket", "")
	v.SetDefault("publish.prefix", "")
	v.SetDefault("publish.region", d.Publish.Region)
	v.SetDefault("publish.endpoint", "")
	v.SetDefault("publish.concurrency", d.Publish.Concurrency)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", "")
	v.SetDefault("log.maxSizeMB", d.Log.MaxSizeMB)
	v.SetDefault("log.maxBackups", d.Log.MaxBackups)
	v.SetDefault("log.maxAgeDays", d.Log.MaxAgeDays)
	v.SetDefault("log.compress", d.Log.Compress)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads shwimple.yaml (or .yml/.json) from dir. A missing file is not
// an error: defaults and environment overrides apply.
func Load(dir string) (*Config, error) {
	return LoadWith(NewViper(), dir, "")
}

// LoadFile reads configuration from the specified file path. The file must
// exist.
func LoadFile(path string) (*Config, error) {
	return LoadWith(NewViper(), filepath.Dir(path), path)
}

// LoadWith reads configuration through v. When file is empty dir is searched
// for a config file; otherwise file is read and must exist.
func LoadWith(v *viper.Viper, dir, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(dir)
		v.SetConfigName(ConfigName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := stderrors.As(err, &notFound) || stderrors.Is(err, fs.ErrNotExist)
		switch {
		case missing && file == "":
			// Defaults and env only.
		case missing:
			return nil, errors.New("E101").
				WithDetail("No config file at " + file).
				WithSuggestion("Run 'shwimple init' to create one or drop the --config flag").
				Wrap(err)
		default:
			return nil, errors.New("E102").
				WithLocationFromError(v.ConfigFileUsed(), err).
				WithSuggestion("Check the YAML or JSON syntax of the config file").
				Wrap(err)
		}
	}

	cfg := New()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.New("E103").
			WithDetail("Failed to decode config: " + err.Error()).
			Wrap(err)
	}

	cfg.configPath = v.ConfigFileUsed()
	cfg.baseDir = dir
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveTo writes the configuration as YAML to path.
func (c *Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.New("E503").Wrap(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E503").Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory relative paths are resolved against.
func (c *Config) Dir() string {
	if c.configPath != "" {
		return filepath.Dir(c.configPath)
	}
	return c.baseDir
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Pages == "" {
		c.Pages = DefaultPages
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.Layout == "" {
		c.Layout = dom.LayoutStandard.String()
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Publish.Concurrency == 0 {
		c.Publish.Concurrency = DefaultConcurrency
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, ok := dom.ParseLayout(c.Layout); !ok {
		return errors.New("E104").
			WithDetail("Unknown layout " + strconv.Quote(c.Layout) + ". Layouts are standard, docs and landing.").
			WithExample("layout: docs")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.New("E103").
			WithDetail("server.port must be between 1 and 65535").
			WithExample("server:\n  port: 3000")
	}
	if c.Publish.Concurrency < 1 {
		return errors.New("E103").
			WithDetail("publish.concurrency must be at least 1")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("E103").
			WithDetail("log.level must be one of debug, info, warn, error")
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return errors.New("E103").
			WithDetail("log.format must be text or json")
	}
	return nil
}

// ParsedLayout returns the configured default layout.
func (c *Config) ParsedLayout() dom.Layout {
	layout, _ := dom.ParseLayout(c.Layout)
	return layout
}

// Address returns the preview server listen address.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// URL returns the preview server URL.
func (c *Config) URL() string {
	return "http://" + c.Address()
}

// PagesPath returns the absolute path to the pages directory.
func (c *Config) PagesPath() string {
	return c.resolve(c.Pages)
}

// OutputPath returns the absolute path to the output directory.
func (c *Config) OutputPath() string {
	return c.resolve(c.Output)
}

func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, ext := range []string{".yaml", ".yml", ".json"} {
		if _, err := os.Stat(filepath.Join(dir, ConfigName+ext)); err == nil {
			return true
		}
	}
	return false
}
