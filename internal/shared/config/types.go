package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host         string        `mapstructure:"host" validate:"required"`
	Port         int           `mapstructure:"port" validate:"gte=1,lte=65535"`
	Mode         string        `mapstructure:"mode"`
	BaseURL      string        `mapstructure:"base_url"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`

	AllowedOrigins []string `mapstructure:"allowed_origins"`

	// RateLimit caps /sub requests per client IP and window. Zero disables
	// it; a Redis server is required otherwise.
	RateLimit       int           `mapstructure:"rate_limit" validate:"gte=0"`
	RateLimitWindow time.Duration `mapstructure:"rate_limit_window"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig selects between a MySQL server and an embedded SQLite file.
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver" validate:"oneof=mysql sqlite"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	Path            string `mapstructure:"path"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns" validate:"gte=0"`
	MaxOpenConns    int    `mapstructure:"max_open_conns" validate:"gte=0"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime" validate:"gte=0"`
}

func (d *DatabaseConfig) GetDSN() string {
	if d.Driver == "sqlite" {
		return d.Path
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&collation=utf8mb4_general_ci&parseTime=true&loc=Local",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level" validate:"omitempty,oneof=debug info warn warning error"`
	Format     string `mapstructure:"format" validate:"omitempty,oneof=console json"`
	OutputPath string `mapstructure:"output_path"`
}

// SubconverterConfig bounds every outbound call to a conversion service.
type SubconverterConfig struct {
	Timeout      time.Duration `mapstructure:"timeout" validate:"gt=0"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes" validate:"gt=0"`
	UserAgent    string        `mapstructure:"user_agent"`
}

type CacheConfig struct {
	Driver string        `mapstructure:"driver" validate:"oneof=none memory redis"`
	TTL    time.Duration `mapstructure:"ttl"`
}

func (c *CacheConfig) Enabled() bool {
	return c.Driver != "" && c.Driver != "none" && c.TTL > 0
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// AdminConfig guards the management API. An empty token disables it.
type AdminConfig struct {
	Token string `mapstructure:"token"`
}

type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Path      string `mapstructure:"path"`
	Namespace string `mapstructure:"namespace"`
}

type ProbeConfig struct {
	Schedule string `mapstructure:"schedule"`
	// MinVersion flags subconverters reporting an older semantic version.
	MinVersion string `mapstructure:"min_version"`
}
