package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/claes/mediaweb/internal/media"
	"github.com/claes/mediaweb/internal/model"
)

const (
	DefaultMediaRoot = "media_files"
	DefaultHost      = "0.0.0.0"
	DefaultPort      = "5000"
	DefaultEnvFile   = ".env"
)

// Config is the immutable runtime configuration handed to every component.
type Config struct {
	MediaRoot  string              `yaml:"media_root"`
	Host       string              `yaml:"host"`
	Port       string              `yaml:"port"`
	LogLevel   string              `yaml:"log_level"`
	LogFormat  string              `yaml:"log_format"`
	Debug      bool                `yaml:"debug"`
	Extensions map[string][]string `yaml:"extensions"`
}

// Overrides carries values set explicitly on the command line. Empty strings
// and a nil Debug mean "not set".
type Overrides struct {
	MediaRoot string
	Host      string
	Port      string
	LogLevel  string
	LogFormat string
	Debug     *bool
}

// Sources lists where Load reads configuration from, lowest precedence first:
// defaults, File, EnvFile + environment, Flags.
type Sources struct {
	File      string // YAML file; falls back to $MEDIAWEB_CONFIG
	EnvFile   string // optional dotenv file; missing is not an error
	LookupEnv func(string) (string, bool)
	Flags     Overrides
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MediaRoot: DefaultMediaRoot,
		Host:      DefaultHost,
		Port:      DefaultPort,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load merges all sources and validates the result.
func Load(src Sources) (Config, error) {
	cfg := Default()

	dotenv := map[string]string{}
	if src.EnvFile != "" {
		m, err := godotenv.Read(src.EnvFile)
		switch {
		case err == nil:
			dotenv = m
		case errors.Is(err, fs.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("read env file %s: %w", src.EnvFile, err)
		}
	}
	lookup := src.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	// process environment wins over the dotenv file, like godotenv.Load
	env := func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}

	file := src.File
	if file == "" {
		file, _ = env("MEDIAWEB_CONFIG")
	}
	if file != "" {
		if err := readFile(file, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg, env); err != nil {
		return Config{}, err
	}
	applyFlags(&cfg, src.Flags)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config, env func(string) (string, bool)) error {
	set := func(key string, dst *string) {
		if v, ok := env(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	set("MEDIA_ROOT", &cfg.MediaRoot)
	set("HOST", &cfg.Host)
	set("PORT", &cfg.Port)
	set("LOG_LEVEL", &cfg.LogLevel)
	set("LOG_FORMAT", &cfg.LogFormat)
	if v, ok := env("MEDIAWEB_DEBUG"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("MEDIAWEB_DEBUG: %w", err)
		}
		cfg.Debug = b
	}
	return nil
}

func applyFlags(cfg *Config, o Overrides) {
	if o.MediaRoot != "" {
		cfg.MediaRoot = o.MediaRoot
	}
	if o.Host != "" {
		cfg.Host = o.Host
	}
	if o.Port != "" {
		cfg.Port = o.Port
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	if o.LogFormat != "" {
		cfg.LogFormat = o.LogFormat
	}
	if o.Debug != nil {
		cfg.Debug = *o.Debug
	}
}

// Validate checks field values without touching the filesystem.
func (c Config) Validate() error {
	if strings.TrimSpace(c.MediaRoot) == "" {
		return errors.New("media root must not be empty")
	}
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %q", c.Port)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q (want text or json)", c.LogFormat)
	}
	for k := range c.Extensions {
		switch model.Category(k) {
		case model.CategoryVideo, model.CategoryAudio, model.CategoryImage:
		default:
			return fmt.Errorf("extensions: unknown category %q", k)
		}
	}
	return nil
}

// Prepare creates MediaRoot when missing and replaces it with its absolute,
// symlink-free path.
func (c *Config) Prepare() error {
	abs, err := filepath.Abs(c.MediaRoot)
	if err != nil {
		return fmt.Errorf("resolve media root %s: %w", c.MediaRoot, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return fmt.Errorf("create media root %s: %w", abs, err)
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("stat media root %s: %w", abs, err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("media root %s is not a directory", abs)
	}
	real, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return fmt.Errorf("resolve media root %s: %w", abs, err)
	}
	c.MediaRoot = real
	return nil
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// Table returns the extension table, with per-category overrides applied.
func (c Config) Table() media.Table {
	t := media.DefaultTable()
	for k, exts := range c.Extensions {
		t[model.Category(k)] = append([]string(nil), exts...)
	}
	return t
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

// NewLogger builds the process logger writing to w.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := c.Level()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
