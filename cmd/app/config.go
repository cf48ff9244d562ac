package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"github.com/sushihentaime/currytech/internal/common"
	"github.com/sushihentaime/currytech/internal/mailservice"
)

type Config struct {
	Port           int      `mapstructure:"PORT"`
	Environment    string   `mapstructure:"ENVIRONMENT"`
	Version        string   `mapstructure:"VERSION"`
	TrustedOrigins []string `mapstructure:"TRUSTED_ORIGINS"`

	DBHost         string        `mapstructure:"POSTGRES_HOST"`
	DBPort         string        `mapstructure:"POSTGRES_PORT"`
	DBUser         string        `mapstructure:"POSTGRES_USER"`
	DBPassword     string        `mapstructure:"POSTGRES_PASSWORD"`
	DBName         string        `mapstructure:"POSTGRES_DB"`
	DBSSLMode      string        `mapstructure:"POSTGRES_SSLMODE"`
	DBMaxOpenConns int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBMaxIdleTime  time.Duration `mapstructure:"DB_MAX_IDLE_TIME"`

	JWTSecret string        `mapstructure:"JWT_SECRET"`
	JWTExpire time.Duration `mapstructure:"JWT_EXPIRE"`

	RateLimitEnabled bool    `mapstructure:"RATE_LIMIT_ENABLED"`
	RateLimitRPS     float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst   int     `mapstructure:"RATE_LIMIT_BURST"`

	MailHost     string `mapstructure:"MAIL_HOST"`
	MailPort     int    `mapstructure:"MAIL_PORT"`
	MailUser     string `mapstructure:"MAIL_USER"`
	MailPassword string `mapstructure:"MAIL_PASSWORD"`
	MailSender   string `mapstructure:"MAIL_SENDER"`
	AdminEmail   string `mapstructure:"ADMIN_EMAIL"`

	MQHost     string `mapstructure:"RABBITMQ_HOST"`
	MQPort     int    `mapstructure:"RABBITMQ_PORT"`
	MQUser     string `mapstructure:"RABBITMQ_USER"`
	MQPassword string `mapstructure:"RABBITMQ_PASSWORD"`

	SentryDSN   string `mapstructure:"SENTRY_DSN"`
	TLSCertFile string `mapstructure:"TLS_CERT_FILE"`
	TLSKeyFile  string `mapstructure:"TLS_KEY_FILE"`
}

var defaults = map[string]any{
	"PORT":               5000,
	"ENVIRONMENT":        "development",
	"VERSION":            "1.0.0",
	"TRUSTED_ORIGINS":    "*",
	"POSTGRES_HOST":      "localhost",
	"POSTGRES_PORT":      "5432",
	"POSTGRES_USER":      "postgres",
	"POSTGRES_PASSWORD":  "",
	"POSTGRES_DB":        "currytech",
	"POSTGRES_SSLMODE":   "disable",
	"DB_MAX_OPEN_CONNS":  25,
	"DB_MAX_IDLE_CONNS":  25,
	"DB_MAX_IDLE_TIME":   "15m",
	"JWT_SECRET":         "",
	"JWT_EXPIRE":         "720h",
	"RATE_LIMIT_ENABLED": true,
	"RATE_LIMIT_RPS":     2,
	"RATE_LIMIT_BURST":   4,
	"MAIL_HOST":          "localhost",
	"MAIL_PORT":          25,
	"MAIL_USER":          "",
	"MAIL_PASSWORD":      "",
	"MAIL_SENDER":        "CurryTech Solutions <no-reply@currytech.example>",
	"ADMIN_EMAIL":        "admin@currytech.example",
	"RABBITMQ_HOST":      "localhost",
	"RABBITMQ_PORT":      5672,
	"RABBITMQ_USER":      "guest",
	"RABBITMQ_PASSWORD":  "guest",
	"SENTRY_DSN":         "",
	"TLS_CERT_FILE":      "",
	"TLS_KEY_FILE":       "",
}

// loadConfig reads the dotenv file at path when it exists. Environment
// variables always take precedence over the file.
func loadConfig(path string) (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, err
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	switch c.Environment {
	case "development", "production", "test":
	default:
		return fmt.Errorf("invalid ENVIRONMENT %q", c.Environment)
	}

	if len(c.JWTSecret) < 16 {
		return errors.New("JWT_SECRET must be at least 16 bytes long")
	}

	return nil
}

func (c *Config) isDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) dbConfig() common.DBConfig {
	return common.DBConfig{
		Host:         c.DBHost,
		Port:         c.DBPort,
		User:         c.DBUser,
		Password:     c.DBPassword,
		Name:         c.DBName,
		SSLMode:      c.DBSSLMode,
		MaxOpenConns: c.DBMaxOpenConns,
		MaxIdleConns: c.DBMaxIdleConns,
		MaxIdleTime:  c.DBMaxIdleTime,
	}
}

func (c *Config) mailConfig() mailservice.MailConfig {
	return mailservice.MailConfig{
		Host:       c.MailHost,
		Port:       c.MailPort,
		Username:   c.MailUser,
		Password:   c.MailPassword,
		Sender:     c.MailSender,
		AdminEmail: c.AdminEmail,
	}
}

func (c *Config) amqpURI() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/", c.MQUser, c.MQPassword, c.MQHost, c.MQPort)
}
