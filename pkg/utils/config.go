package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"

	NotifyDriverLog    = "log"
	NotifyDriverResend = "resend"
	NotifyDriverAMQP   = "amqp"
	NotifyDriverKafka  = "kafka"
)

type Config struct {
	App      AppConfig
	Store    StoreConfig
	Database DatabaseConfig
	Admin    AdminConfig
	Studio   StudioConfig
	Notify   NotifyConfig
	Email    EmailConfig
	AMQP     AMQPConfig
	Kafka    KafkaConfig
	Redis    RedisConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type StoreConfig struct {
	Driver string
}

type DatabaseConfig struct {
	Host        string
	Port        string
	Name        string
	User        string
	Password    string
	MaxConns    int32
	AutoMigrate bool
}

type AdminConfig struct {
	Password     string
	PasswordHash string
}

type StudioConfig struct {
	Timezone  string
	OpenHour  int
	CloseHour int
}

type NotifyConfig struct {
	Driver string
}

type EmailConfig struct {
	APIKey  string
	BaseURL string
	From    string
}

type AMQPConfig struct {
	URL      string
	Exchange string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// LoadConfig reads an optional env-format file at path, then lets
// environment variables override it.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	v.SetDefault("APP_NAME", "studio-booking")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("STUDIO_TIMEZONE", "Local")
	v.SetDefault("STUDIO_OPEN_HOUR", 9)
	v.SetDefault("STUDIO_CLOSE_HOUR", 17)
	v.SetDefault("NOTIFY_DRIVER", NotifyDriverLog)
	v.SetDefault("RESEND_BASE_URL", "https://api.resend.com")
	v.SetDefault("EMAIL_FROM", "Kapture Nook <studio@kapturenook.com>")
	v.SetDefault("AMQP_EXCHANGE", "studio.bookings")
	v.SetDefault("KAFKA_TOPIC", "booking-confirmations")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL_SECONDS", 60)

	if err := v.ReadInConfig(); err != nil && !isMissingConfig(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    v.GetString("APP_NAME"),
			Port:    v.GetString("PORT"),
			Debug:   v.GetBool("DEBUG"),
			LogPath: v.GetString("LOG_PATH"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(v.GetString("STORE_DRIVER")),
		},
		Database: DatabaseConfig{
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetString("DB_PORT"),
			Name:        v.GetString("DB_NAME"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASS"),
			MaxConns:    v.GetInt32("DB_MAX_CONNS"),
			AutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),
		},
		Admin: AdminConfig{
			Password:     v.GetString("ADMIN_PASSWORD"),
			PasswordHash: v.GetString("ADMIN_PASSWORD_HASH"),
		},
		Studio: StudioConfig{
			Timezone:  v.GetString("STUDIO_TIMEZONE"),
			OpenHour:  v.GetInt("STUDIO_OPEN_HOUR"),
			CloseHour: v.GetInt("STUDIO_CLOSE_HOUR"),
		},
		Notify: NotifyConfig{
			Driver: strings.ToLower(v.GetString("NOTIFY_DRIVER")),
		},
		Email: EmailConfig{
			APIKey:  v.GetString("RESEND_API_KEY"),
			BaseURL: v.GetString("RESEND_BASE_URL"),
			From:    v.GetString("EMAIL_FROM"),
		},
		AMQP: AMQPConfig{
			URL:      v.GetString("AMQP_URL"),
			Exchange: v.GetString("AMQP_EXCHANGE"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(v.GetString("KAFKA_BROKERS")),
			Topic:   v.GetString("KAFKA_TOPIC"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			TTL:      time.Duration(v.GetInt("CACHE_TTL_SECONDS")) * time.Second,
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks driver selections and the settings each driver needs.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreDriverPostgres:
		if c.Database.Host == "" || c.Database.Name == "" {
			return errors.New("config: DB_HOST and DB_NAME are required for the postgres store")
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.Store.Driver)
	}

	switch c.Notify.Driver {
	case NotifyDriverLog:
	case NotifyDriverResend:
		if c.Email.APIKey == "" {
			return errors.New("config: RESEND_API_KEY is required for the resend notifier")
		}
	case NotifyDriverAMQP:
		if c.AMQP.URL == "" {
			return errors.New("config: AMQP_URL is required for the amqp notifier")
		}
	case NotifyDriverKafka:
		if len(c.Kafka.Brokers) == 0 {
			return errors.New("config: KAFKA_BROKERS is required for the kafka notifier")
		}
	default:
		return fmt.Errorf("config: unknown NOTIFY_DRIVER %q", c.Notify.Driver)
	}

	if c.Studio.OpenHour < 0 || c.Studio.CloseHour > 24 {
		return fmt.Errorf("config: studio hours %d-%d out of range", c.Studio.OpenHour, c.Studio.CloseHour)
	}

	return nil
}

// Location resolves the studio's fallback time zone.
func (s StudioConfig) Location() *time.Location {
	if s.Timezone == "" || strings.EqualFold(s.Timezone, "local") {
		return time.Local
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func isMissingConfig(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
