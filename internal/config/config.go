// Package config loads the captainslog YAML configuration from
// ~/.captains-log/config.yml.
//
// The file maps project names to their root directories and optional
// per-project log repositories, plus an optional global log repository:
//
//	global_log_repo: /home/me/worklog
//	projects:
//	  captainslog: /home/me/src/captainslog
//	  bigproject:
//	    root: /home/me/src/bigproject
//	    log_repo: /home/me/src/bigproject-logs
//
// A missing configuration file is not an error; it degrades to
// local-only logging under ~/.captains-log/projects.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/bashhack/captainslog/internal/errors"
	"github.com/bashhack/captainslog/internal/logger"
)

// ProjectConfig holds the settings for a single tracked project.
type ProjectConfig struct {
	Root    string `yaml:"root"`
	LogRepo string `yaml:"log_repo"`
}

// UnmarshalYAML accepts either the mapping form or a bare string, which
// is shorthand for the project root.
func (p *ProjectConfig) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var root string
		if err := node.Decode(&root); err != nil {
			return err
		}
		p.Root = root
		return nil
	}

	type plain ProjectConfig
	var decoded plain
	if err := node.Decode(&decoded); err != nil {
		return err
	}
	*p = ProjectConfig(decoded)
	return nil
}

// Config holds all captainslog settings.
type Config struct {
	GlobalLogRepo string                   `yaml:"global_log_repo"`
	Projects      map[string]ProjectConfig `yaml:"projects"`
}

// New creates an empty Config.
func New() *Config {
	return &Config{Projects: make(map[string]ProjectConfig)}
}

// Project returns the configuration for a named project, or a zero
// value if the project is not configured.
func (c *Config) Project(name string) ProjectConfig {
	return c.Projects[name]
}

// ConfigDir returns the captainslog configuration directory
// (~/.captains-log). Falls back to the current directory when the home
// directory cannot be determined.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".captains-log"
	}
	return filepath.Join(home, ".captains-log")
}

// DefaultPath returns the default configuration file path.
func DefaultPath() string {
	return filepath.Join(ConfigDir(), "config.yml")
}

// DefaultBaseDir returns the directory that holds per-project logs when
// no log repository is configured.
func DefaultBaseDir() string {
	return filepath.Join(ConfigDir(), "projects")
}

// DefaultLogFile returns the debug log file path, following the XDG
// Base Directory Specification like the rest of the tool's state.
func DefaultLogFile() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			dataDir = filepath.Join(home, ".local", "share")
		} else {
			dataDir = os.TempDir()
		}
	}
	return filepath.Join(dataDir, "captainslog", "logs", "captainslog.log")
}

// Load reads the configuration from path. A missing file yields an
// empty configuration. An unreadable or invalid file yields an empty
// configuration plus a warning; configuration problems never block a
// log update.
func Load(path string, log logger.Logger) *Config {
	cfg := New()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warning("Could not read config %s: %v", path, err)
		}
		return cfg
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		log.Warning("Could not parse config %s: %v",
			path, errors.NewConfigError("config", path, errors.Wrap(errors.ErrInvalidConfiguration, err.Error())))
		return New()
	}
	if cfg.Projects == nil {
		cfg.Projects = make(map[string]ProjectConfig)
	}
	return cfg
}
