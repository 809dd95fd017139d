package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/pflag"
)

// DefaultPath — файл конфигурации по умолчанию; его отсутствие не ошибка.
const DefaultPath = "aind.json"

type Config struct {
	Port      string `json:"port" env:"AIND_PORT"`
	DSLDir    string `json:"dslDir" env:"AIND_DSL_DIR"`
	DSLGlob   string `json:"dslGlob" env:"AIND_DSL_GLOB"`
	EnumsDir  string `json:"enumsDir" env:"AIND_ENUMS_DIR"`
	DBURL     string `json:"dbUrl" env:"AIND_DB_URL"`
	OutputDir string `json:"outputDir" env:"AIND_OUTPUT_DIR"`

	LogLevel  string `json:"logLevel" env:"AIND_LOG_LEVEL"`   // debug | info | warn | error
	LogFormat string `json:"logFormat" env:"AIND_LOG_FORMAT"` // text | json

	// Браузер каталога
	Watch        bool    `json:"watch" env:"AIND_WATCH"`
	RateLimit    float64 `json:"rateLimit" env:"AIND_RATE_LIMIT"` // запросов в секунду на IP; 0 — без ограничения
	RateBurst    int     `json:"rateBurst" env:"AIND_RATE_BURST"`
	CacheSeconds int     `json:"cacheSeconds" env:"AIND_CACHE_SECONDS"` // 0 — без кэша GET
}

func Default() Config {
	return Config{
		Port:         "8080",
		DSLDir:       "dsl",
		DSLGlob:      "**/*.dsl",
		EnumsDir:     "reference/enums",
		OutputDir:    ".",
		LogLevel:     "info",
		LogFormat:    "text",
		RateLimit:    10,
		RateBurst:    20,
		CacheSeconds: 60,
	}
}

// Load: значения по умолчанию, затем JSON-файл (если есть), затем переменные AIND_*.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist) && path == DefaultPath:
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := json.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// RegisterFlags объявляет флаги, перекрывающие конфигурацию.
func RegisterFlags(flags *pflag.FlagSet) {
	d := Default()
	flags.String("config", DefaultPath, "Path to config JSON")
	flags.String("port", d.Port, "HTTP port")
	flags.String("dsl", d.DSLDir, "Path to DSL directory")
	flags.String("dsl-glob", d.DSLGlob, "Glob for DSL files inside the DSL directory")
	flags.String("enums", d.EnumsDir, "Path to enums directory")
	flags.String("db", d.DBURL, "Postgres URL")
	flags.String("out", d.OutputDir, "Output directory for written files")
	flags.String("log-level", d.LogLevel, "Log level (debug, info, warn, error)")
	flags.String("log-format", d.LogFormat, "Log format (text, json)")
	flags.Bool("watch", d.Watch, "Reload the catalog when DSL or enum files change")
	flags.Float64("rate-limit", d.RateLimit, "Requests per second per client IP (0 = unlimited)")
	flags.Int("rate-burst", d.RateBurst, "Rate limiter burst")
	flags.Int("cache-seconds", d.CacheSeconds, "GET response cache lifetime (0 = off)")
}

// ApplyFlags переносит в cfg только явно заданные флаги.
func ApplyFlags(flags *pflag.FlagSet, cfg *Config) error {
	var errs []error
	flags.Visit(func(f *pflag.Flag) {
		v := strings.TrimSpace(f.Value.String())
		var err error
		switch f.Name {
		case "port":
			cfg.Port = v
		case "dsl":
			cfg.DSLDir = v
		case "dsl-glob":
			cfg.DSLGlob = v
		case "enums":
			cfg.EnumsDir = v
		case "db":
			cfg.DBURL = v
		case "out":
			cfg.OutputDir = v
		case "log-level":
			cfg.LogLevel = v
		case "log-format":
			cfg.LogFormat = v
		case "watch":
			cfg.Watch, err = strconv.ParseBool(v)
		case "rate-limit":
			cfg.RateLimit, err = strconv.ParseFloat(v, 64)
		case "rate-burst":
			cfg.RateBurst, err = strconv.Atoi(v)
		case "cache-seconds":
			cfg.CacheSeconds, err = strconv.Atoi(v)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("flag --%s: %w", f.Name, err))
		}
	})
	return errors.Join(errs...)
}

func (c Config) Validate() error {
	var errs []error
	if p, err := strconv.Atoi(c.Port); err != nil || p <= 0 || p > 65535 {
		errs = append(errs, fmt.Errorf("port %q is not a valid TCP port", c.Port))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("log format %q: want text or json", c.LogFormat))
	}
	if c.RateLimit < 0 || c.RateBurst < 0 || c.CacheSeconds < 0 {
		errs = append(errs, errors.New("rate limit, burst and cache lifetime must not be negative"))
	}
	if c.RateLimit > 0 && c.RateBurst == 0 {
		errs = append(errs, errors.New("rate burst must be positive when rate limit is set"))
	}
	return errors.Join(errs...)
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// NewLogger строит slog-логгер по LogLevel и LogFormat.
func (c Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}
