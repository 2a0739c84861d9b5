// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Dictionaries DictionariesConfig `toml:"dictionaries"`
	Index        IndexConfig        `toml:"index"`
	Filters      FiltersConfig      `toml:"filters"`
	Expect       ExpectConfig       `toml:"expect"`
	Log          LogConfig          `toml:"log"`
}

// DictionariesConfig locates the two dictionaries being compared.
type DictionariesConfig struct {
	Left      *string `toml:"left"`
	LeftName  *string `toml:"left-name"`
	Right     *string `toml:"right"`
	RightName *string `toml:"right-name"`
}

// IndexConfig maps index construction policies.
type IndexConfig struct {
	BlankLines *string `toml:"blank-lines"`
	Comments   *string `toml:"comments"`
}

// FiltersConfig lists the line skippers applied before indexing.
type FiltersConfig struct {
	Skip         []string `toml:"skip"`
	LeftSkip     []string `toml:"left-skip"`
	RightSkip    []string `toml:"right-skip"`
	SkipComments *bool    `toml:"skip-comments"`
	SkipVerbs    *bool    `toml:"skip-verbs"`
}

// ExpectConfig maps defaults for the expect command.
type ExpectConfig struct {
	Has      []string `toml:"has"`
	Collapse []string `toml:"collapse"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
