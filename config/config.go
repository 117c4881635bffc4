package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	App      AppConfig      `toml:"app"`
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	JWT      JWTConfig      `toml:"jwt"`
	Setup    SetupConfig    `toml:"setup"`
	Logging  LoggingConfig  `toml:"logging"`
	Ledger   LedgerConfig   `toml:"ledger"`
}

type AppConfig struct {
	Name        string `toml:"name"`
	Environment string `toml:"environment"`
}

type ServerConfig struct {
	Port            string   `toml:"port"`
	CORSOrigins     []string `toml:"cors_origins"`
	PublicRateLimit int      `toml:"public_rate_limit"`
	UserRateLimit   int      `toml:"user_rate_limit"`
}

type DatabaseConfig struct {
	Driver          string `toml:"driver"`
	DSN             string `toml:"dsn"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime string `toml:"conn_max_lifetime"`
}

// GetConnMaxLifetime devuelve 30m cuando el valor no es una duración válida.
func (d DatabaseConfig) GetConnMaxLifetime() time.Duration {
	if dur, err := time.ParseDuration(d.ConnMaxLifetime); err == nil && dur > 0 {
		return dur
	}
	return 30 * time.Minute
}

// ConnectionString arma el DSN de postgres cuando no se configuró uno explícito.
func (d DatabaseConfig) ConnectionString() string {
	if d.DSN != "" {
		return d.DSN
	}
	if d.Driver == "sqlite" {
		return "file:azell.db?_foreign_keys=on"
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

type JWTConfig struct {
	Secret     string `toml:"secret"`
	Expiry     string `toml:"expiry"`
	CookieName string `toml:"cookie_name"`
	Secure     bool   `toml:"secure"`
}

func (j JWTConfig) GetExpiry() time.Duration {
	if dur, err := time.ParseDuration(j.Expiry); err == nil && dur > 0 {
		return dur
	}
	return 7 * 24 * time.Hour
}

type SetupConfig struct {
	Key string `toml:"key"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Pretty bool   `toml:"pretty"`
}

// LedgerConfig controla el devengo de rendimiento y los límites de retiros.
type LedgerConfig struct {
	// AccrualMode es "fixed" (AccrualDays por aporte) o "elapsed" (días desde el último devengo).
	AccrualMode           string `toml:"accrual_mode"`
	AccrualDays           int    `toml:"accrual_days"`
	MaxPendingWithdrawals int    `toml:"max_pending_withdrawals"`
	Currency              string `toml:"currency"`
	TermMonths            int    `toml:"term_months"`
}

const (
	AccrualFixed   = "fixed"
	AccrualElapsed = "elapsed"
)

func NewDefaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:        "azell-web",
			Environment: "development",
		},
		Server: ServerConfig{
			Port:            "8080",
			CORSOrigins:     []string{"http://localhost:3000"},
			PublicRateLimit: 30,
			UserRateLimit:   100,
		},
		Database: DatabaseConfig{
			Driver:          "postgres",
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			Password:        "postgres",
			DBName:          "azell",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: "30m",
		},
		JWT: JWTConfig{
			Expiry:     "168h",
			CookieName: "azell_session",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Ledger: LedgerConfig{
			AccrualMode:           AccrualFixed,
			AccrualDays:           1,
			MaxPendingWithdrawals: 5,
			Currency:              "MXN",
			TermMonths:            12,
		},
	}
}

// Load lee config.toml (o AZELL_CONFIG) si existe y aplica las variables de entorno encima.
func Load() (*Config, error) {
	return LoadFrom(getEnv("AZELL_CONFIG", "config.toml"))
}

func LoadFrom(paths ...string) (*Config, error) {
	cfg := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	cfg.App.Environment = getEnv("APP_ENV", cfg.App.Environment)

	cfg.Server.Port = getEnv("PORT", cfg.Server.Port)
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.Server.CORSOrigins = splitList(origins)
	}
	cfg.Server.PublicRateLimit = getEnvAsInt("PUBLIC_RATE_LIMIT", cfg.Server.PublicRateLimit)
	cfg.Server.UserRateLimit = getEnvAsInt("USER_RATE_LIMIT", cfg.Server.UserRateLimit)

	cfg.Database.Driver = getEnv("DB_DRIVER", cfg.Database.Driver)
	cfg.Database.DSN = getEnv("DATABASE_URL", cfg.Database.DSN)
	cfg.Database.Host = getEnv("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = getEnvAsInt("DB_PORT", cfg.Database.Port)
	cfg.Database.User = getEnv("DB_USER", cfg.Database.User)
	cfg.Database.Password = getEnv("DB_PASSWORD", cfg.Database.Password)
	cfg.Database.DBName = getEnv("DB_NAME", cfg.Database.DBName)
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", cfg.Database.SSLMode)

	cfg.JWT.Secret = getEnv("JWT_SECRET", cfg.JWT.Secret)
	cfg.JWT.Expiry = getEnv("JWT_EXPIRY", cfg.JWT.Expiry)
	cfg.JWT.Secure = getEnvAsBool("COOKIE_SECURE", cfg.JWT.Secure)

	cfg.Setup.Key = getEnv("SETUP_KEY", cfg.Setup.Key)

	cfg.Logging.Level = getEnv("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Pretty = getEnvAsBool("LOG_PRETTY", cfg.Logging.Pretty)

	cfg.Ledger.AccrualMode = getEnv("ACCRUAL_MODE", cfg.Ledger.AccrualMode)
	cfg.Ledger.AccrualDays = getEnvAsInt("ACCRUAL_DAYS", cfg.Ledger.AccrualDays)
	cfg.Ledger.MaxPendingWithdrawals = getEnvAsInt("MAX_PENDING_WITHDRAWALS", cfg.Ledger.MaxPendingWithdrawals)
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.IsProduction() && c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required in production")
	}
	switch c.Ledger.AccrualMode {
	case AccrualFixed, AccrualElapsed:
	default:
		return fmt.Errorf("unsupported accrual mode %q", c.Ledger.AccrualMode)
	}
	if c.Ledger.AccrualDays < 1 {
		c.Ledger.AccrualDays = 1
	}
	if c.Ledger.TermMonths < 1 {
		c.Ledger.TermMonths = 12
	}
	return nil
}

func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.App.Environment)
	return env == "production" || env == "prod"
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
