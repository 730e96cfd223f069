package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hengadev/errsx"
	"github.com/spf13/viper"
)

type Config struct {
	Port      string `mapstructure:"PORT"`
	Env       string `mapstructure:"ENV"`
	AppName   string `mapstructure:"APP_NAME"`
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// DBDriver vacío => repos en memoria.
	DBDriver    string `mapstructure:"DB_DRIVER"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	AutoMigrate bool   `mapstructure:"AUTO_MIGRATE"`

	JWTSecret string        `mapstructure:"JWT_SECRET"`
	JWTIssuer string        `mapstructure:"JWT_ISSUER"`
	JWTTTL    time.Duration `mapstructure:"JWT_TTL"`

	StorageBackend string `mapstructure:"STORAGE_BACKEND"`
	UploadDir      string `mapstructure:"UPLOAD_DIR"`
	S3Bucket       string `mapstructure:"S3_BUCKET"`
	S3Prefix       string `mapstructure:"S3_PREFIX"`
	MaxUploadMB    int64  `mapstructure:"MAX_UPLOAD_MB"`

	LLMAPIKey      string        `mapstructure:"LLM_API_KEY"`
	LLMBaseURL     string        `mapstructure:"LLM_BASE_URL"`
	LLMModel       string        `mapstructure:"LLM_MODEL"`
	LLMTimeout     time.Duration `mapstructure:"LLM_TIMEOUT"`
	LLMMaxTokens   int           `mapstructure:"LLM_MAX_TOKENS"`
	LLMTemperature float64       `mapstructure:"LLM_TEMPERATURE"`

	KafkaBrokers    string `mapstructure:"KAFKA_BROKERS"`
	KafkaAuditTopic string `mapstructure:"KAFKA_AUDIT_TOPIC"`
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	StorageLocal  = "local"
	StorageS3     = "s3"
	StorageMemory = "memory"

	MaxLLMTimeout = 30 * time.Second
)

var keys = []string{
	"PORT", "ENV", "APP_NAME", "LOG_LEVEL", "LOG_FORMAT",
	"DB_DRIVER", "DATABASE_URL", "AUTO_MIGRATE",
	"JWT_SECRET", "JWT_ISSUER", "JWT_TTL",
	"STORAGE_BACKEND", "UPLOAD_DIR", "S3_BUCKET", "S3_PREFIX", "MAX_UPLOAD_MB",
	"LLM_API_KEY", "LLM_BASE_URL", "LLM_MODEL", "LLM_TIMEOUT", "LLM_MAX_TOKENS", "LLM_TEMPERATURE",
	"KAFKA_BROKERS", "KAFKA_AUDIT_TOPIC",
}

// Load lee variables de entorno y, si existe, el archivo .env del cwd.
func Load() (*Config, error) {
	return LoadFile(".env")
}

func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("APP_NAME", "health-records-portal")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("AUTO_MIGRATE", true)
	v.SetDefault("JWT_ISSUER", "health-records-portal")
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("STORAGE_BACKEND", StorageLocal)
	v.SetDefault("UPLOAD_DIR", "./uploads")
	v.SetDefault("MAX_UPLOAD_MB", 10)
	v.SetDefault("LLM_BASE_URL", "https://api.openai.com/v1")
	v.SetDefault("LLM_MODEL", "gpt-4o-mini")
	v.SetDefault("LLM_TIMEOUT", "30s")
	v.SetDefault("LLM_MAX_TOKENS", 512)
	v.SetDefault("LLM_TEMPERATURE", 0.2)
	v.SetDefault("KAFKA_AUDIT_TOPIC", "portal.audit")

	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	// .env es opcional.
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	cfg.StorageBackend = strings.ToLower(strings.TrimSpace(cfg.StorageBackend))
	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

func (c *Config) Brokers() []string {
	var out []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

// Validate rechaza combinaciones con las que el server no puede arrancar.
func (c *Config) Validate() error {
	errs := errsx.Map{}

	switch c.DBDriver {
	case "":
	case DriverPostgres, DriverSQLite:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			errs.Set("DATABASE_URL", fmt.Errorf("required when DB_DRIVER is %q", c.DBDriver))
		}
	default:
		errs.Set("DB_DRIVER", fmt.Errorf("must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.DBDriver))
	}

	if c.IsProduction() && strings.TrimSpace(c.JWTSecret) == "" {
		errs.Set("JWT_SECRET", errors.New("required in production"))
	}
	if c.JWTTTL <= 0 {
		errs.Set("JWT_TTL", errors.New("must be positive"))
	}

	switch c.StorageBackend {
	case StorageLocal, StorageMemory:
	case StorageS3:
		if strings.TrimSpace(c.S3Bucket) == "" {
			errs.Set("S3_BUCKET", errors.New("required when STORAGE_BACKEND is s3"))
		}
	default:
		errs.Set("STORAGE_BACKEND", fmt.Errorf("unknown backend %q", c.StorageBackend))
	}

	if c.MaxUploadMB <= 0 {
		errs.Set("MAX_UPLOAD_MB", errors.New("must be positive"))
	}
	if c.LLMTimeout <= 0 || c.LLMTimeout > MaxLLMTimeout {
		errs.Set("LLM_TIMEOUT", fmt.Errorf("must be between 0 and %s", MaxLLMTimeout))
	}

	return errs.AsError()
}
