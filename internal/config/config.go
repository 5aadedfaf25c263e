package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/glintkit/glint/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "glint.json"

	// DefaultPort is the default server port.
	DefaultPort = 3000

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultSnapshotDir is the default directory for rendered snapshots.
	DefaultSnapshotDir = "snapshots"
)

// Config represents the complete glint.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Version is the project version.
	Version string `json:"version,omitempty"`

	// Host is the host the server binds to.
	Host string `json:"host,omitempty"`

	// Port is the port the server listens on.
	Port int `json:"port,omitempty"`

	// Snapshot contains snapshot store configuration.
	Snapshot SnapshotConfig `json:"snapshot,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// SnapshotConfig selects where rendered snapshots are stored. When
// Bucket is set the S3 store is used; otherwise snapshots go to Dir on
// local disk.
type SnapshotConfig struct {
	// Dir is the local directory for snapshots.
	Dir string `json:"dir,omitempty"`

	// Bucket is the S3 bucket name. Empty means local disk.
	Bucket string `json:"bucket,omitempty"`

	// Prefix is the key prefix inside the bucket.
	Prefix string `json:"prefix,omitempty"`

	// Region is the bucket's AWS region.
	Region string `json:"region,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Version: "0.1.0",
		Host:    DefaultHost,
		Port:    DefaultPort,
		Snapshot: SnapshotConfig{
			Dir: DefaultSnapshotDir,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for glint.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E020").
				WithDetail("No glint.json found in " + filepath.Dir(path)).
				WithSuggestion("Create glint.json or pass an explicit path")
		}
		return nil, errors.New("E020").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E021").
			WithDetail("Failed to parse glint.json: " + err.Error()).
			WithSuggestion("Check that glint.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
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
		return errors.New("E021").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E020").Wrap(err)
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

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Snapshot.Dir == "" {
		c.Snapshot.Dir = DefaultSnapshotDir
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return errors.New("E022").
			WithDetail("Port must be between 0 and 65535, got " + strconv.Itoa(c.Port))
	}
	if c.Snapshot.Bucket != "" && c.Snapshot.Region == "" {
		return errors.New("E022").
			WithDetail("snapshot.region is required when snapshot.bucket is set")
	}
	return nil
}

// Address returns the listen address string.
func (c *Config) Address() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// SnapshotPath returns the absolute path to the local snapshot directory.
func (c *Config) SnapshotPath() string {
	if filepath.IsAbs(c.Snapshot.Dir) {
		return c.Snapshot.Dir
	}
	return filepath.Join(c.Dir(), c.Snapshot.Dir)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing glint.json, or an error if not found.
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
			return "", errors.New("E020").
				WithDetail("No glint.json found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}
