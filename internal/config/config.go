// Package config предоставялет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Поддерживаемые драйверы хранилища.
const (
	DriverPostgres = "postgresql"
	DriverMongo    = "mongodb"
)

// Config общая структура для хранения настроек
type Config struct {
	Env             string `yaml:"env" env:"ENV" env-default:"local"`
	Storage         `yaml:"storage"`
	RedisConnection `yaml:"redis_connection"`
	HTTPServer      `yaml:"http_server"`
	JWTToken        `yaml:"jwttoken"`
	Payment         `yaml:"payment"`
	RabbitMQ        `yaml:"rabbitmq"`
	SMTP            `yaml:"smtp"`
	RateLimit       `yaml:"rate_limit"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":3000"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"15s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// Storage структура для настройки хранилища: драйвер, строки подключения и таймаут на запрос.
type Storage struct {
	Driver           string        `yaml:"driver" env:"STORAGE_DRIVER" env-default:"postgresql"`
	ConnectionString string        `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	MigrationsPath   string        `yaml:"migrations_path" env-default:"./migrations"`
	MongoURI         string        `yaml:"mongo_uri" env:"MONGO_URI"`
	MongoDatabase    string        `yaml:"mongo_database" env-default:"digital_life_lesson"`
	StorageTimeout   time.Duration `yaml:"storage_timeout" env-default:"5s"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
	LessonTTL    time.Duration `yaml:"lesson_ttl" env-default:"10m"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// Payment структура для настройки платежного провайдера (Stripe Checkout).
type Payment struct {
	StripeSecret    string        `yaml:"stripe_secret" env:"STRIPE_SECRET"`
	WebhookSecret   string        `yaml:"webhook_secret" env:"STRIPE_WEBHOOK_SECRET"`
	SiteDomain      string        `yaml:"site_domain" env:"SITE_DOMAIN" env-default:"http://localhost:5173"`
	Currency        string        `yaml:"currency" env-default:"bdt"`
	DefaultCost     int64         `yaml:"default_cost" env-default:"1500"`
	ProviderTimeout time.Duration `yaml:"provider_timeout" env-default:"10s"`
}

// RabbitMQ структура для настройки брокера сообщений.
type RabbitMQ struct {
	RabbitMQURL        string        `yaml:"url" env:"RABBITMQ_URL"`
	RabbitMQMaxRetries int           `yaml:"max_retries" env-default:"5"`
	RabbitMQRetryDelay time.Duration `yaml:"retry_delay" env-default:"2s"`
}

// SMTP структура для настройки почтового транспорта.
type SMTP struct {
	SMTPHost string `yaml:"host" env:"SMTP_HOST"`
	SMTPPort string `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	SMTPUser string `yaml:"user" env:"SMTP_USER"`
	SMTPPass string `yaml:"password" env:"SMTP_PASSWORD"`
}

// RateLimit структура для настройки ограничения частоты запросов на проверку оплаты.
type RateLimit struct {
	RPS   float64 `yaml:"rps" env-default:"5"`
	Burst int     `yaml:"burst" env-default:"10"`
}

// MustLoad функция для загрузки конфига, путь к файлу берется из CONFIG_PATH.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// Load читает конфиг из файла, переменные окружения перекрывают значения из файла.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет согласованность настроек.
func (c *Config) Validate() error {
	switch c.Driver {
	case DriverPostgres:
		if c.ConnectionString == "" {
			return errors.New("storage_connection_string is required for postgresql driver")
		}
	case DriverMongo:
		if c.MongoURI == "" {
			return errors.New("mongo_uri is required for mongodb driver")
		}
	default:
		return fmt.Errorf("unknown storage driver: %q", c.Driver)
	}
	if c.DefaultCost <= 0 {
		return errors.New("payment default_cost must be positive")
	}
	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"Storage:\n"+
			"  Driver: %s\n"+
			"  Timeout: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"Payment:\n"+
			"  SiteDomain: %s\n"+
			"  Currency: %s\n"+
			"  DefaultCost: %d\n",
		c.Env,
		c.Driver,
		c.StorageTimeout,
		c.AddressRedis,
		c.DB,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.SiteDomain,
		c.Currency,
		c.DefaultCost,
	)
}
