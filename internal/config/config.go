package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"vet-records/internal/pdfdoc"
)

// Config es la configuración resuelta: defaults -> archivo YAML -> env.
type Config struct {
	AppName string
	Port    int

	StorageDriver string // memory | postgres | mysql | sqlite | redis
	DBDSN         string
	RedisURL      string

	UploadDir string
	OutputDir string

	PageSize      string
	TaxRate       decimal.Decimal
	Letterhead    string
	MarginsMM     float64 // 0 => márgenes propios de cada documento
	RemoteTimeout time.Duration

	LogLevel  string
	LogFormat string
}

type configFile struct {
	App struct {
		Name string `yaml:"name"`
		Port int    `yaml:"port"`
	} `yaml:"app"`
	Storage struct {
		Driver   string `yaml:"driver"`
		DSN      string `yaml:"dsn"`
		RedisURL string `yaml:"redis_url"`
	} `yaml:"storage"`
	Files struct {
		UploadDir            string `yaml:"upload_dir"`
		OutputDir            string `yaml:"output_dir"`
		RemoteTimeoutSeconds int    `yaml:"remote_timeout_seconds"`
	} `yaml:"files"`
	PDF struct {
		PageSize   string  `yaml:"page_size"`
		TaxRate    string  `yaml:"tax_rate"`
		Letterhead string  `yaml:"letterhead"`
		MarginsMM  float64 `yaml:"margins_mm"`
	} `yaml:"pdf"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

func Default() Config {
	return Config{
		AppName:       "vet-records",
		Port:          8080,
		StorageDriver: "memory",
		UploadDir:     "static/uploads",
		OutputDir:     os.TempDir(),
		PageSize:      "A4",
		TaxRate:       decimal.RequireFromString("0.20"),
		RemoteTimeout: 10 * time.Second,
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// Load lee el archivo (si existe) y aplica overrides de entorno.
func Load(path string) (Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := applyFile(&cfg, raw); err != nil {
				return Config{}, err
			}
		case errors.Is(err, os.ErrNotExist):
			// archivo opcional
		default:
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func applyFile(cfg *Config, raw []byte) error {
	var f configFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if f.App.Name != "" {
		cfg.AppName = f.App.Name
	}
	if f.App.Port > 0 {
		cfg.Port = f.App.Port
	}
	if f.Storage.Driver != "" {
		cfg.StorageDriver = f.Storage.Driver
	}
	if f.Storage.DSN != "" {
		cfg.DBDSN = f.Storage.DSN
	}
	if f.Storage.RedisURL != "" {
		cfg.RedisURL = f.Storage.RedisURL
	}
	if f.Files.UploadDir != "" {
		cfg.UploadDir = f.Files.UploadDir
	}
	if f.Files.OutputDir != "" {
		cfg.OutputDir = f.Files.OutputDir
	}
	if f.Files.RemoteTimeoutSeconds > 0 {
		cfg.RemoteTimeout = time.Duration(f.Files.RemoteTimeoutSeconds) * time.Second
	}
	if f.PDF.PageSize != "" {
		cfg.PageSize = f.PDF.PageSize
	}
	if f.PDF.TaxRate != "" {
		rate, err := decimal.NewFromString(f.PDF.TaxRate)
		if err != nil {
			return fmt.Errorf("parse config file: pdf.tax_rate: %w", err)
		}
		cfg.TaxRate = rate
	}
	if f.PDF.Letterhead != "" {
		cfg.Letterhead = f.PDF.Letterhead
	}
	if f.PDF.MarginsMM > 0 {
		cfg.MarginsMM = f.PDF.MarginsMM
	}
	if f.Log.Level != "" {
		cfg.LogLevel = f.Log.Level
	}
	if f.Log.Format != "" {
		cfg.LogFormat = f.Log.Format
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.AppName = envOrDefault("APP_NAME", cfg.AppName)
	cfg.Port = envInt("PORT", cfg.Port)
	cfg.StorageDriver = strings.ToLower(envOrDefault("STORAGE_DRIVER", cfg.StorageDriver))
	cfg.DBDSN = envOrDefault("DB_DSN", cfg.DBDSN)
	cfg.RedisURL = envOrDefault("REDIS_URL", cfg.RedisURL)
	cfg.UploadDir = envOrDefault("UPLOAD_DIR", cfg.UploadDir)
	cfg.OutputDir = envOrDefault("OUTPUT_DIR", cfg.OutputDir)
	cfg.PageSize = envOrDefault("PAGE_SIZE", cfg.PageSize)
	cfg.Letterhead = envOrDefault("LETTERHEAD_PDF", cfg.Letterhead)
	cfg.RemoteTimeout = time.Duration(envInt("REMOTE_FILES_TIMEOUT_SECONDS", int(cfg.RemoteTimeout.Seconds()))) * time.Second
	cfg.LogLevel = envOrDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = envOrDefault("LOG_FORMAT", cfg.LogFormat)

	if v := strings.TrimSpace(os.Getenv("TAX_RATE")); v != "" {
		rate, err := decimal.NewFromString(v)
		if err != nil {
			return fmt.Errorf("TAX_RATE: %w", err)
		}
		cfg.TaxRate = rate
	}
	return nil
}

func (c Config) Validate() error {
	switch c.StorageDriver {
	case "memory", "postgres", "mysql", "sqlite", "redis":
	default:
		return fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
	if c.StorageDriver == "redis" && c.RedisURL == "" {
		return errors.New("storage driver redis requires REDIS_URL")
	}
	if (c.StorageDriver == "postgres" || c.StorageDriver == "mysql") && c.DBDSN == "" {
		return fmt.Errorf("storage driver %s requires DB_DSN", c.StorageDriver)
	}
	if c.TaxRate.IsNegative() {
		return errors.New("tax rate must not be negative")
	}
	return nil
}

// Render devuelve la configuración inmutable que reciben los builders.
func (c Config) Render() pdfdoc.RenderConfig {
	rc := pdfdoc.DefaultRenderConfig()
	if c.PageSize != "" {
		rc.PageSize = c.PageSize
	}
	if !c.TaxRate.IsZero() {
		rc.TaxRate = c.TaxRate
	}
	rc.Letterhead = c.Letterhead
	if c.MarginsMM > 0 {
		m := pdfdoc.UniformMargins(c.MarginsMM)
		rc.Margins = &m
	}
	return rc
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
