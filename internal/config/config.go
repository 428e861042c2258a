// Package config loads planner configuration from YAML files and the environment.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the full planner configuration
type Config struct {
	// SQLite database file
	DBPath string `yaml:"db_path" mapstructure:"db_path"`

	// debug, info, warn or error
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`

	Search SearchConfig `yaml:"search" mapstructure:"search"`
	List   ListConfig   `yaml:"list" mapstructure:"list"`
}

// SearchConfig configures query defaults
type SearchConfig struct {
	CaseSensitive bool `yaml:"case_sensitive" mapstructure:"case_sensitive"`
}

// ListConfig configures task listing defaults
type ListConfig struct {
	Sort  string `yaml:"sort" mapstructure:"sort"`
	Limit int    `yaml:"limit" mapstructure:"limit"`
}

const (
	dirName   = ".task-planner"
	fileName  = "config.yaml"
	envPrefix = "TASK_PLANNER"
)

// DefaultConfig returns the configuration used when no file sets a value.
func DefaultConfig() *Config {
	return &Config{
		DBPath:   filepath.Join(GlobalDir(), "planner.db"),
		LogLevel: "warn",
		List: ListConfig{
			Sort: "date-desc",
		},
	}
}

// Load merges defaults, the global config file, the project config file and
// TASK_PLANNER_* environment variables, in increasing precedence.
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return LoadFrom(GlobalConfigPath(), filepath.Join(cwd, dirName, fileName))
}

// LoadFrom is Load with explicit file paths. Missing files are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		if err := loadFile(path, cfg); err != nil && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range []string{"db", "log_level", "search.case_sensitive", "list.sort", "list.limit"} {
		v.BindEnv(key)
	}
	if db := v.GetString("db"); db != "" {
		cfg.DBPath = db
	}
	if v.IsSet("log_level") {
		cfg.LogLevel = v.GetString("log_level")
	}
	if v.IsSet("search.case_sensitive") {
		cfg.Search.CaseSensitive = v.GetBool("search.case_sensitive")
	}
	if v.IsSet("list.sort") {
		cfg.List.Sort = v.GetString("list.sort")
	}
	if v.IsSet("list.limit") {
		cfg.List.Limit = v.GetInt("list.limit")
	}

	cfg.DBPath = expandHome(cfg.DBPath)
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	return v.Unmarshal(cfg)
}

// GlobalDir returns the per-user planner directory
func GlobalDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, dirName)
}

// GlobalConfigPath returns the path to the global config file
func GlobalConfigPath() string {
	return filepath.Join(GlobalDir(), fileName)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
