// Package config loads user preferences from ~/.todo/config.toml.
//
// Precedence, lowest to highest: defaults, config file, environment. CLI
// flags are applied on top by the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	configFileName = "config.toml"

	GlyphsUnicode = "unicode"
	GlyphsASCII   = "ascii"
)

type Config struct {
	Store StoreConfig `toml:"store"`
	UI    UIConfig    `toml:"ui"`
	Log   LogConfig   `toml:"log"`
}

type StoreConfig struct {
	// Dir holds todo.sqlite. Empty means <config dir>/data.
	Dir string `toml:"dir"`
}

type UIConfig struct {
	// Glyphs is one of: unicode|ascii
	Glyphs string `toml:"glyphs"`
	// Mouse enables click handling in the TUI.
	Mouse bool `toml:"mouse"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	// File defaults to <store dir>/todo.log (see LogPath).
	File string `toml:"file"`
}

func Default() Config {
	return Config{
		UI:  UIConfig{Glyphs: GlyphsUnicode, Mouse: true},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// Dir returns the config directory. TODO_CONFIG_DIR overrides ~/.todo (keeps tests off $HOME).
func Dir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("TODO_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".todo"), nil
}

func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads path (or the default path when empty). A missing file yields defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		p, err := Path()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("loading config file %s: %w", path, err)
	}

	applyEnv(&cfg)

	if err := cfg.finalize(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("TODO_DIR")); v != "" {
		cfg.Store.Dir = v
	}
	if v := strings.TrimSpace(os.Getenv("TODO_TUI_GLYPHS")); v != "" {
		cfg.UI.Glyphs = v
	}
	if v := strings.TrimSpace(os.Getenv("TODO_LOG_LEVEL")); v != "" {
		cfg.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("TODO_LOG_FILE")); v != "" {
		cfg.Log.File = v
	}
}

func (c *Config) finalize() error {
	c.UI.Glyphs = strings.ToLower(strings.TrimSpace(c.UI.Glyphs))
	switch c.UI.Glyphs {
	case "", "utf8":
		c.UI.Glyphs = GlyphsUnicode
	case GlyphsUnicode, GlyphsASCII:
	default:
		return fmt.Errorf("invalid ui.glyphs %q (want unicode|ascii)", c.UI.Glyphs)
	}

	if c.Store.Dir == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		c.Store.Dir = filepath.Join(dir, "data")
	}
	return nil
}

// LogPath is log.file, or todo.log next to the database when unset.
func (c Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(c.Store.Dir, "todo.log")
}

// Save writes cfg as TOML to path (or the default path when empty).
func Save(path string, cfg Config) error {
	if path == "" {
		p, err := Path()
		if err != nil {
			return err
		}
		path = p
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return err
	}
	return atomicWriteFile(dir, "config.toml.*.tmp", path, buf.Bytes(), 0o600)
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}
