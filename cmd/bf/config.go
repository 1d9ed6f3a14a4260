package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// userConfig models ~/.bf/config.toml, which supplies defaults for the
// interpreter policy options.
type userConfig struct {
	Interpreter configInterpreter `toml:"interpreter"`
}

type configInterpreter struct {
	TapeSize int    `toml:"tape-size"`
	EOF      string `toml:"eof"`
	Trace    bool   `toml:"trace"`
}

// loadUserConfig reads config.toml from the bf home directory. A missing file
// is not an error; a malformed one is.
func loadUserConfig() (*userConfig, error) {
	home, err := resolveBfHome()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(home, "config.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var config userConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if config.Interpreter.TapeSize < 0 {
		return nil, fmt.Errorf("config %s: interpreter.tape-size must not be negative", path)
	}
	return &config, nil
}
