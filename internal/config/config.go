package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vango-dev/markup/internal/errors"
	"github.com/vango-dev/markup/pkg/markup"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "markup.json"

	// DefaultPort is the default preview server port.
	DefaultPort = 3000

	// DefaultHost is the default preview server host.
	DefaultHost = "localhost"

	// DefaultOutput is the default publish output directory.
	DefaultOutput = "dist"

	// DefaultExtension is appended to document names written to disk or S3.
	DefaultExtension = ".html"

	// DefaultRegion is the S3 region used when none is configured.
	DefaultRegion = "us-east-1"

	// DefaultNamespace prefixes every exported Prometheus metric.
	DefaultNamespace = "markup"
)

// Config represents the complete markup.json configuration.
type Config struct {
	// Render controls how documents are turned into text.
	Render RenderConfig `json:"render"`

	// Output controls where rendered documents are written on disk.
	Output OutputConfig `json:"output"`

	// Serve contains preview server configuration.
	Serve ServeConfig `json:"serve"`

	// Publish contains S3 publishing configuration.
	Publish PublishConfig `json:"publish"`

	// Metrics contains Prometheus configuration for the preview server.
	Metrics MetricsConfig `json:"metrics"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// RenderConfig contains rendering settings.
type RenderConfig struct {
	// Format is one of "none", "pretty" or "newline".
	Format string `json:"format,omitempty"`

	// Doctype is written before every document's root section.
	Doctype string `json:"doctype,omitempty"`
}

// OutputConfig contains settings for the directory sink.
type OutputConfig struct {
	// Dir is the output directory for rendered documents.
	Dir string `json:"dir,omitempty"`

	// Extension is appended to each document name (e.g., ".html").
	Extension string `json:"extension,omitempty"`
}

// ServeConfig contains preview server settings.
type ServeConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`

	// Reload pushes a reload message to connected browsers when a page is
	// republished.
	Reload bool `json:"reload"`
}

// PublishConfig contains S3 sink settings.
type PublishConfig struct {
	// Bucket is the destination bucket. Empty disables S3 publishing.
	Bucket string `json:"bucket,omitempty"`

	// Prefix is prepended to every object key.
	Prefix string `json:"prefix,omitempty"`

	// Region is the bucket's AWS region.
	Region string `json:"region,omitempty"`

	// Endpoint overrides the S3 endpoint (MinIO, LocalStack).
	Endpoint string `json:"endpoint,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled exposes /metrics and records request metrics.
	Enabled bool `json:"enabled"`

	// Namespace prefixes every metric name.
	Namespace string `json:"namespace,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Render: RenderConfig{
			Format:  markup.FormatPretty.String(),
			Doctype: markup.DefaultDoctype,
		},
		Output: OutputConfig{
			Dir:       DefaultOutput,
			Extension: DefaultExtension,
		},
		Serve: ServeConfig{
			Host:   DefaultHost,
			Port:   DefaultPort,
			Reload: true,
		},
		Publish: PublishConfig{
			Region: DefaultRegion,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultNamespace,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for markup.json in the directory.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	return LoadFile(configPath)
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("C001").
				WithDetail("No markup.json found in " + filepath.Dir(path)).
				WithSuggestion("Create markup.json in the project root or run without one to use defaults")
		}
		return nil, errors.New("C002").Wrap(err)
	}

	// Fields absent from the file keep their defaults.
	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("C002").
			WithDetail("Failed to parse markup.json: " + err.Error()).
			WithSuggestion("Check that markup.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("C002").Wrap(err)
	}

	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("C002").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for fields set to "" or 0.
func (c *Config) applyDefaults() {
	if c.Render.Format == "" {
		c.Render.Format = markup.FormatPretty.String()
	}
	if c.Output.Dir == "" {
		c.Output.Dir = DefaultOutput
	}
	if c.Output.Extension == "" {
		c.Output.Extension = DefaultExtension
	}
	if c.Serve.Host == "" {
		c.Serve.Host = DefaultHost
	}
	if c.Serve.Port == 0 {
		c.Serve.Port = DefaultPort
	}
	if c.Publish.Region == "" {
		c.Publish.Region = DefaultRegion
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := markup.ParseFormatting(c.Render.Format); err != nil {
		return errors.New("C003").
			WithDetail("render.format: " + err.Error())
	}
	if c.Serve.Port < 0 || c.Serve.Port > 65535 {
		return errors.New("C003").
			WithDetail("serve.port must be between 0 and 65535")
	}
	if c.Output.Extension != "" && !strings.HasPrefix(c.Output.Extension, ".") {
		return errors.New("C003").
			WithDetailf("output.extension %q must start with a dot", c.Output.Extension)
	}
	if strings.HasPrefix(c.Publish.Prefix, "/") {
		return errors.New("C003").
			WithDetail("publish.prefix must not start with a slash").
			WithSuggestion("S3 object keys are relative to the bucket root")
	}
	return nil
}

// Format returns the configured rendering mode, falling back to pretty for
// a value Validate would reject.
func (c *Config) Format() markup.Formatting {
	f, err := markup.ParseFormatting(c.Render.Format)
	if err != nil {
		return markup.FormatPretty
	}
	return f
}

// ServeAddress returns the address string for the preview server.
func (c *Config) ServeAddress() string {
	return c.Serve.Host + ":" + strconv.Itoa(c.Serve.Port)
}

// ServeURL returns the full URL for the preview server.
func (c *Config) ServeURL() string {
	return "http://" + c.ServeAddress()
}

// OutputPath returns the absolute path to the output directory.
func (c *Config) OutputPath() string {
	if filepath.IsAbs(c.Output.Dir) {
		return c.Output.Dir
	}
	return filepath.Join(c.Dir(), c.Output.Dir)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	path := filepath.Join(dir, ConfigFileName)
	_, err := os.Stat(path)
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing markup.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("C001").
				WithDetail("No markup.json found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory
// or its nearest parent holding markup.json. Without one it returns the
// defaults, rooted at the working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		cfg := New()
		cfg.configPath = filepath.Join(wd, ConfigFileName)
		return cfg, nil
	}

	return Load(root)
}
