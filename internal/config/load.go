package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/qjebbs/go-jsons"
)

const (
	envItemHeight = "MENUBOARD_ITEM_HEIGHT"
	envOverscan   = "MENUBOARD_OVERSCAN"
	envDebug      = "MENUBOARD_DEBUG"
	envMenu       = "MENUBOARD_MENU"
)

// Load reads the global, data and project config files, later files
// overriding earlier ones, then applies the environment on top.
func Load(workingDir string, debug bool) (*Config, error) {
	return load(workingDir, debug, os.Getenv)
}

func load(workingDir string, debug bool, getenv func(string) string) (*Config, error) {
	configPaths := []string{
		globalConfig(getenv),
		globalConfigData(getenv),
	}
	for _, name := range defaultProjectConfigs {
		configPaths = append(configPaths, filepath.Join(workingDir, name))
	}

	cfg, err := loadFromConfigPaths(configPaths)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.dataConfigPath = globalConfigData(getenv)
	cfg.setDefaults(workingDir)
	if err := cfg.applyEnv(getenv); err != nil {
		return nil, err
	}
	if debug {
		cfg.Options.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFromConfigPaths(configPaths []string) (*Config, error) {
	var configs []io.Reader

	for _, path := range configPaths {
		fd, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to open config file %s: %w", path, err)
		}
		defer fd.Close()

		configs = append(configs, fd)
	}

	return loadFromReaders(configs)
}

func loadFromReaders(readers []io.Reader) (*Config, error) {
	if len(readers) == 0 {
		return &Config{raw: []byte("{}")}, nil
	}

	merged, err := jsons.Merge(readers)
	if err != nil {
		return nil, fmt.Errorf("failed to merge configuration readers: %w", err)
	}

	return loadFromBytes(merged)
}

func loadFromBytes(data []byte) (*Config, error) {
	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	config.raw = data
	return &config, nil
}

func (c *Config) setDefaults(workingDir string) {
	c.workingDir = workingDir
	if c.Options == nil {
		c.Options = &Options{}
	}
	if c.Options.DataDirectory == "" {
		c.Options.DataDirectory = defaultDataDirectory
	}
	if c.Menu == nil {
		c.Menu = &MenuOptions{}
	}
	if c.List == nil {
		c.List = &ListOptions{}
	}
	if c.List.ItemHeight == 0 {
		c.List.ItemHeight = defaultItemHeight
	}
	// Overscan is left alone when the file sets it, including to 0.
	if !fieldSet(c.raw, "list.overscan") {
		c.List.Overscan = defaultOverscan
	}
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(envItemHeight); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", envItemHeight, v, err)
		}
		c.List.ItemHeight = n
	}
	if v := getenv(envOverscan); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", envOverscan, v, err)
		}
		c.List.Overscan = n
	}
	if v := getenv(envDebug); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", envDebug, v, err)
		}
		c.Options.Debug = debug
	}
	if v := getenv(envMenu); v != "" {
		c.Menu.Path = v
	}
	return nil
}

// GlobalConfig returns the path to the main config file for the user.
func GlobalConfig() string {
	return globalConfig(os.Getenv)
}

func globalConfig(getenv func(string) string) string {
	xdgConfigHome := getenv("XDG_CONFIG_HOME")
	if xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, appName, fmt.Sprintf("%s.json", appName))
	}

	// for windows, it should be in `%LOCALAPPDATA%/menuboard/`
	// for linux and macOS, it should be in `$HOME/.config/menuboard/`
	if runtime.GOOS == "windows" {
		localAppData := getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(getenv("USERPROFILE"), "AppData", "Local")
		}
		return filepath.Join(localAppData, appName, fmt.Sprintf("%s.json", appName))
	}

	return filepath.Join(getenv("HOME"), ".config", appName, fmt.Sprintf("%s.json", appName))
}

// GlobalConfigData returns the path to the main data directory for the
// application. This config is written by the app itself, e.g. by
// SetConfigField.
func GlobalConfigData() string {
	return globalConfigData(os.Getenv)
}

func globalConfigData(getenv func(string) string) string {
	xdgDataHome := getenv("XDG_DATA_HOME")
	if xdgDataHome != "" {
		return filepath.Join(xdgDataHome, appName, fmt.Sprintf("%s.json", appName))
	}

	if runtime.GOOS == "windows" {
		localAppData := getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(getenv("USERPROFILE"), "AppData", "Local")
		}
		return filepath.Join(localAppData, appName, fmt.Sprintf("%s.json", appName))
	}

	return filepath.Join(getenv("HOME"), ".local", "share", appName, fmt.Sprintf("%s.json", appName))
}
