// Package config resolves CLI defaults from a YAML file, a project .env.local
// and ITINERARY_* environment variables. Command-line flags are applied by
// the caller on top of the returned Config.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

const envPrefix = "ITINERARY_"

type Config struct {
	DBPath   string `yaml:"db_path"`
	Actor    string `yaml:"actor"`
	TripID   string `yaml:"trip"`
	Format   string `yaml:"format"`
	Pretty   bool   `yaml:"pretty"`
	LogLevel string `yaml:"log_level"`
}

func Defaults() Config {
	return Config{
		Actor:    "local",
		Format:   "json",
		LogLevel: "warn",
	}
}

// Sources locates the optional inputs to Load. Zero fields fall back to the
// process working directory, the user's home directory, and os.LookupEnv.
type Sources struct {
	Dir       string
	HomeDir   string
	LookupEnv func(string) (string, bool)
}

func Load() (Config, error) { return LoadFrom(Sources{}) }

// LoadFrom applies, lowest precedence first: defaults, the YAML file at
// <home>/.config/itinerary/config.yaml, the nearest .env.local, and the
// process environment. Missing files are skipped; unreadable ones are errors.
func LoadFrom(src Sources) (Config, error) {
	if src.Dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Config{}, err
		}
		src.Dir = wd
	}
	if src.HomeDir == "" {
		if h, err := os.UserHomeDir(); err == nil {
			src.HomeDir = h
		}
	}
	if src.LookupEnv == nil {
		src.LookupEnv = os.LookupEnv
	}

	cfg := Defaults()
	if src.HomeDir != "" {
		if err := loadYAML(&cfg, filepath.Join(src.HomeDir, ".config", "itinerary", "config.yaml")); err != nil {
			return Config{}, err
		}
	}

	dotenv := map[string]string{}
	if p := findEnvLocal(src.Dir, src.HomeDir); p != "" {
		m, err := godotenv.Read(p)
		if err != nil {
			return Config{}, fmt.Errorf("read %s: %w", p, err)
		}
		dotenv = m
	}
	lookup := func(key string) (string, bool) {
		if v, ok := src.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := applyEnv(&cfg, lookup); err != nil {
		return Config{}, err
	}
	if cfg.DBPath != "" {
		p, err := homedir.Expand(cfg.DBPath)
		if err != nil {
			return Config{}, fmt.Errorf("db path: %w", err)
		}
		cfg.DBPath = p
	}
	return cfg, nil
}

func loadYAML(cfg *Config, path string) error {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(envPrefix + name); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	str("DB", &cfg.DBPath)
	str("ACTOR", &cfg.Actor)
	str("TRIP", &cfg.TripID)
	str("FORMAT", &cfg.Format)
	str("LOG_LEVEL", &cfg.LogLevel)
	if v, ok := lookup(envPrefix + "PRETTY"); ok && strings.TrimSpace(v) != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%sPRETTY: %w", envPrefix, err)
		}
		cfg.Pretty = b
	}
	return nil
}

// findEnvLocal walks up from dir looking for .env.local, stopping after home
// (or at the filesystem root when home is not an ancestor).
func findEnvLocal(dir, home string) string {
	dir = filepath.Clean(dir)
	home = filepath.Clean(home)
	for {
		p := filepath.Join(dir, ".env.local")
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p
		}
		if dir == home {
			return ""
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
