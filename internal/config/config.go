package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/menuboard/menuboard/internal/window"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const (
	appName              = "menuboard"
	defaultDataDirectory = ".menuboard"
	defaultItemHeight    = 1
	defaultOverscan      = 3
)

var defaultProjectConfigs = []string{
	appName + ".json",
	"." + appName + ".json",
}

type MenuOptions struct {
	// Path of the menu file shown when no file is given on the command line.
	Path  string `json:"path,omitempty" jsonschema:"description=Menu file to open (JSON or YAML),example=menu.yaml"`
	Watch bool   `json:"watch,omitempty" jsonschema:"description=Reload the menu when the file changes,default=false"`
}

type ListOptions struct {
	ItemHeight int   `json:"item_height,omitempty" jsonschema:"description=Lines taken by every row,minimum=1,default=1"`
	Overscan   int   `json:"overscan,omitempty" jsonschema:"description=Rows rendered past each edge of the viewport,minimum=0,default=3"`
	Scrollbar  *bool `json:"scrollbar,omitempty" jsonschema:"description=Show a scrollbar next to the list,default=true"`
	Wrap       bool  `json:"wrap,omitempty" jsonschema:"description=Wrap the selection around at both ends,default=false"`
}

type Options struct {
	Debug         bool   `json:"debug,omitempty" jsonschema:"description=Log at debug level,default=false"`
	DataDirectory string `json:"data_directory,omitempty" jsonschema:"description=Directory for logs and state relative to the working directory,default=.menuboard"` // Relative to the cwd
}

// Config holds the configuration for menuboard.
type Config struct {
	Menu    *MenuOptions `json:"menu,omitempty" jsonschema:"description=Menu source"`
	List    *ListOptions `json:"list,omitempty" jsonschema:"description=List rendering"`
	Options *Options     `json:"options,omitempty" jsonschema:"description=General options"`

	// Internal
	workingDir     string `json:"-"`
	dataConfigPath string `json:"-"`
	raw            []byte `json:"-"`
}

func (c *Config) WorkingDir() string {
	return c.workingDir
}

// DataDirectory is the absolute data directory.
func (c *Config) DataDirectory() string {
	if filepath.IsAbs(c.Options.DataDirectory) {
		return c.Options.DataDirectory
	}
	return filepath.Join(c.workingDir, c.Options.DataDirectory)
}

// LogFile is where the rotating log is written.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDirectory(), "logs", appName+".log")
}

func (c *Config) ScrollbarEnabled() bool {
	return c.List.Scrollbar == nil || *c.List.Scrollbar
}

// Validate checks the list geometry with the same rules the window engine
// applies.
func (c *Config) Validate() error {
	cfg := window.Config{
		ItemHeight: float64(c.List.ItemHeight),
		Overscan:   c.List.Overscan,
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid list options: %w", err)
	}
	return nil
}

// Field returns the raw merged value at key, in gjson path syntax.
func (c *Config) Field(key string) (string, bool) {
	res := gjson.GetBytes(c.raw, key)
	if !res.Exists() {
		return "", false
	}
	return res.String(), true
}

// SetConfigField persists a single field to the data config file.
func (c *Config) SetConfigField(key string, value any) error {
	// read the data
	data, err := os.ReadFile(c.dataConfigPath)
	if err != nil {
		if os.IsNotExist(err) {
			data = []byte("{}")
		} else {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	newValue, err := sjson.Set(string(data), key, value)
	if err != nil {
		return fmt.Errorf("failed to set config field %s: %w", key, err)
	}
	if err := os.MkdirAll(filepath.Dir(c.dataConfigPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(c.dataConfigPath, []byte(newValue), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func fieldSet(raw []byte, key string) bool {
	return gjson.GetBytes(raw, key).Exists()
}
