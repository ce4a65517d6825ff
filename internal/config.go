package internal

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// MinJWTSecretLength is the shortest signing key the service will accept.
// A shorter key is a fatal startup error, never a runtime warning.
const MinJWTSecretLength = 32

type Config struct {
	Server        ServerConfig        `mapstructure:"http_server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Security      SecurityConfig      `mapstructure:"security"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port"`
	BaseURL           string        `mapstructure:"base_url"`
	AllowedOrigins    string        `mapstructure:"allowed_origins"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	QueryTimeout    time.Duration `mapstructure:"query_timeout"`
	Source          string        `mapstructure:"source"`
}

type SecurityConfig struct {
	JWTSecret            string        `mapstructure:"jwt_secret"`
	JWTRefreshSecret     string        `mapstructure:"jwt_refresh_secret"`
	JWTIssuer            string        `mapstructure:"jwt_issuer"`
	JWTAudience          string        `mapstructure:"jwt_audience"`
	AccessTokenDuration  time.Duration `mapstructure:"access_token_duration"`
	RefreshTokenDuration time.Duration `mapstructure:"refresh_token_duration"`
	BCryptCost           int           `mapstructure:"bcrypt_cost"`
	// PrincipalAdminEmail identifies the seeded administrator account that
	// can never be deleted, by any caller.
	PrincipalAdminEmail string `mapstructure:"principal_admin_email"`
}

type ObservabilityConfig struct {
	Logging LoggingConfig `mapstructure:"logging"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ----------------- DEFAULTS -----------------

const (
	DefaultAccessTokenDuration  = 60 * time.Minute
	DefaultRefreshTokenDuration = 7 * 24 * time.Hour
	DefaultIssuer               = "extrahours-api"
	DefaultAudience             = "extrahours-client"
	DefaultPrincipalAdminEmail  = "admin@admin.com"
)

func (c *Config) ApplyDefaults() {
	if c.Security.AccessTokenDuration <= 0 {
		c.Security.AccessTokenDuration = DefaultAccessTokenDuration
	}
	if c.Security.RefreshTokenDuration <= 0 {
		c.Security.RefreshTokenDuration = DefaultRefreshTokenDuration
	}
	if c.Security.JWTIssuer == "" {
		c.Security.JWTIssuer = DefaultIssuer
	}
	if c.Security.JWTAudience == "" {
		c.Security.JWTAudience = DefaultAudience
	}
	if c.Security.JWTRefreshSecret == "" {
		c.Security.JWTRefreshSecret = c.Security.JWTSecret
	}
	if c.Security.PrincipalAdminEmail == "" {
		c.Security.PrincipalAdminEmail = DefaultPrincipalAdminEmail
	}
	if c.Security.BCryptCost == 0 {
		c.Security.BCryptCost = 12
	}
	if c.Database.QueryTimeout <= 0 {
		c.Database.QueryTimeout = DefaultStoreTimeout
	}
}

// ----------------- ENV LOADING -----------------

// LoadConfigFromEnv builds a Config from environment variables, used for
// container deployments where no config file is mounted.
func LoadConfigFromEnv() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port:              getEnvAsInt("HTTP_PORT", 8080),
			BaseURL:           getEnv("BASE_URL", ""),
			AllowedOrigins:    getEnv("ALLOWED_ORIGINS", ""),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		Database: DatabaseConfig{
			Source:          getEnv("DATABASE_URL", ""),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: 30 * time.Minute,
		},
		Security: SecurityConfig{
			JWTSecret:           getEnv("JWT_SECRET", ""),
			JWTRefreshSecret:    getEnv("JWT_REFRESH_SECRET", ""),
			JWTIssuer:           getEnv("JWT_ISSUER", DefaultIssuer),
			JWTAudience:         getEnv("JWT_AUDIENCE", DefaultAudience),
			PrincipalAdminEmail: getEnv("PRINCIPAL_ADMIN_EMAIL", DefaultPrincipalAdminEmail),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("LOG_LEVEL", "info"),
				Format: getEnv("LOG_FORMAT", "json"),
			},
		},
	}
	if mins := getEnvAsInt("JWT_EXPIRES_IN_MINUTES", 0); mins > 0 {
		cfg.Security.AccessTokenDuration = time.Duration(mins) * time.Minute
	}
	cfg.ApplyDefaults()
	return cfg
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}

	if err := c.Security.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("security config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.AllowedOrigins != "" {
		origins := strings.Split(c.AllowedOrigins, ",")
		for _, origin := range origins {
			origin = strings.TrimSpace(origin)
			if origin == "*" {
				continue
			}
			if _, err := url.Parse(origin); err != nil {
				return fmt.Errorf("invalid allowed origin %s: %w", origin, err)
			}
		}
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *DatabaseConfig) Validate() error {
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *DatabaseConfig) GetDSN() string {
	return c.Source
}

func (c *SecurityConfig) Validate() error {
	if len(c.JWTSecret) < MinJWTSecretLength {
		return fmt.Errorf("jwt_secret must be at least %d bytes", MinJWTSecretLength)
	}
	if len(c.JWTRefreshSecret) < MinJWTSecretLength {
		return fmt.Errorf("jwt_refresh_secret must be at least %d bytes", MinJWTSecretLength)
	}
	if c.JWTIssuer == "" {
		return errors.New("jwt_issuer is required")
	}
	if c.JWTAudience == "" {
		return errors.New("jwt_audience is required")
	}
	if c.AccessTokenDuration <= 0 || c.AccessTokenDuration > 24*time.Hour {
		return errors.New("access_token_duration must be between 1m and 24h")
	}
	if c.RefreshTokenDuration < c.AccessTokenDuration {
		return errors.New("refresh_token_duration must be >= access_token_duration")
	}
	if c.PrincipalAdminEmail == "" {
		return errors.New("principal_admin_email is required")
	}
	return nil
}
