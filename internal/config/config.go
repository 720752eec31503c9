package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env      string         `mapstructure:"env"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Session  SessionConfig  `mapstructure:"session"`
	Weather  WeatherConfig  `mapstructure:"weather"`
	Mail     MailConfig     `mapstructure:"mail"`
}

type ServerConfig struct {
	Port            string `mapstructure:"port"`
	ReadTimeout     int    `mapstructure:"read_timeout_seconds"`
	WriteTimeout    int    `mapstructure:"write_timeout_seconds"`
	IdleTimeout     int    `mapstructure:"idle_timeout_seconds"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout_seconds"`
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            string `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime_seconds"`
	MigrateOnStart  bool   `mapstructure:"migrate_on_start"`
}

type SessionConfig struct {
	Name   string `mapstructure:"name"`
	Secret string `mapstructure:"secret"`
	MaxAge int    `mapstructure:"max_age_seconds"`
	Secure bool   `mapstructure:"secure"`
}

type WeatherConfig struct {
	URL     string `mapstructure:"url"`
	APIKey  string `mapstructure:"api_key"`
	City    string `mapstructure:"city"`
	Units   string `mapstructure:"units"`
	Lang    string `mapstructure:"lang"`
	Timeout int    `mapstructure:"timeout_seconds"`
}

type MailConfig struct {
	SendgridAPIKey string `mapstructure:"sendgrid_api_key"`
	FromEmail      string `mapstructure:"from_email"`
	FromName       string `mapstructure:"from_name"`
	Timeout        int    `mapstructure:"timeout_seconds"`
}

// DSN returns the postgres URL understood by both lib/pq and golang-migrate.
func (c DatabaseConfig) DSN() string {
	q := make(url.Values)
	q.Set("sslmode", c.SSLMode)

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     c.DBName,
		RawQuery: q.Encode(),
	}
	return u.String()
}

func (c WeatherConfig) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

func (c MailConfig) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// IsLocal reports whether the process runs on a developer machine or in tests.
func (c *Config) IsLocal() bool {
	return c.Env == "local" || c.Env == "test"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout_seconds", 15)
	v.SetDefault("server.write_timeout_seconds", 15)
	v.SetDefault("server.idle_timeout_seconds", 60)
	v.SetDefault("server.shutdown_timeout_seconds", 10)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "school_schedule")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 25)
	v.SetDefault("database.conn_max_lifetime_seconds", 300)
	v.SetDefault("database.migrate_on_start", true)

	v.SetDefault("session.name", "app-session")
	v.SetDefault("session.secret", "")
	v.SetDefault("session.max_age_seconds", 7*24*60*60)
	v.SetDefault("session.secure", false)

	v.SetDefault("weather.url", "https://api.openweathermap.org/data/2.5/weather")
	v.SetDefault("weather.api_key", "")
	v.SetDefault("weather.city", "Kyiv")
	v.SetDefault("weather.units", "metric")
	v.SetDefault("weather.lang", "uk")
	v.SetDefault("weather.timeout_seconds", 5)

	v.SetDefault("mail.sendgrid_api_key", "")
	v.SetDefault("mail.from_email", "noreply@localhost")
	v.SetDefault("mail.from_name", "School Planner")
	v.SetDefault("mail.timeout_seconds", 10)
}

// Load reads .env (if present), an optional configs/config.<env>.yaml and the
// environment, in increasing order of precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	env := os.Getenv("ENV")
	if env == "" {
		env = "local"
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	v.SetConfigType("yaml")
	v.AddConfigPath("/configs")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	binds := map[string]string{
		"env":                   "ENV",
		"server.port":           "PORT",
		"database.host":         "DB_HOST",
		"database.port":         "DB_PORT",
		"database.user":         "DB_USER",
		"database.password":     "DB_PASSWORD",
		"database.name":         "DB_NAME",
		"database.ssl_mode":     "DB_SSLMODE",
		"session.secret":        "SESSION_SECRET",
		"weather.api_key":       "WEATHER_API_KEY",
		"mail.sendgrid_api_key": "SENDGRID_API_KEY",
	}
	for key, envVar := range binds {
		if err := v.BindEnv(key, envVar); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", envVar, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.ensureSessionSecret(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) ensureSessionSecret() error {
	if c.Session.Secret != "" {
		return nil
	}
	if !c.IsLocal() {
		return errors.New("SESSION_SECRET must be set outside local and test environments")
	}

	c.Session.Secret = string(securecookie.GenerateRandomKey(32))
	slog.Warn("no session secret configured, using a random key; sessions will not survive a restart", "env", c.Env)
	return nil
}
