// Package config предоставляет структуры и функции для парсинга и загрузки конфига
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING" env-required:"true"`
	MigrationsPath          string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	HTTPServer              `yaml:"http_server"`
	RedisConnection         `yaml:"redis_connection"`
	Cache                   `yaml:"cache"`
	Supabase                `yaml:"supabase"`
	RateLimit               `yaml:"rate_limit"`
	RabbitMQ                `yaml:"rabbitmq"`
	Inventory               `yaml:"inventory"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP     string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP     time.Duration `yaml:"timeouthttp" env-default:"5s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"15s"`
}

// RedisConnection структура для настройки подключения к redis.
// Пустой адрес отключает кэширование.
type RedisConnection struct {
	AddressRedis  string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	RedisPassword string        `yaml:"password" env:"REDIS_PASSWORD"`
	RedisUser     string        `yaml:"user"`
	RedisDB       int           `yaml:"db"`
	MaxRetries    int           `yaml:"max_retries" env-default:"3"`
	DialTimeout   time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis  time.Duration `yaml:"timeoutredis" env-default:"3s"`
}

// Cache настройки кэширования сущностей
type Cache struct {
	CacheTTL time.Duration `yaml:"ttl" env-default:"10m"`
}

// Supabase настройки проверки токенов провайдера аутентификации.
// Если задан JWTSecret, токены проверяются локально, иначе запросом к URL.
type Supabase struct {
	SupabaseURL     string        `yaml:"url" env:"SUPABASE_URL"`
	AnonKey         string        `yaml:"anon_key" env:"SUPABASE_ANON_KEY"`
	JWTSecret       string        `yaml:"jwt_secret" env:"SUPABASE_JWT_SECRET"`
	Audience        string        `yaml:"audience" env-default:"authenticated"`
	SupabaseTimeout time.Duration `yaml:"timeout" env-default:"5s"`
}

// RateLimit ограничение частоты запросов на одного клиента
type RateLimit struct {
	RPS   float64 `yaml:"rps" env-default:"10"`
	Burst int     `yaml:"burst" env-default:"20"`
}

// RabbitMQ настройки публикации событий. Пустой URL отключает публикацию.
type RabbitMQ struct {
	RabbitURL      string        `yaml:"url" env:"RABBITMQ_URL"`
	Exchange       string        `yaml:"exchange" env-default:"fitness.events"`
	ConnectRetries int           `yaml:"connect_retries" env-default:"5"`
	RetryDelay     time.Duration `yaml:"retry_delay" env-default:"2s"`
}

// Inventory настройки складского учёта
type Inventory struct {
	LowStockThreshold int `yaml:"low_stock_threshold" env-default:"5"`
}

// Load читает конфиг из YAML-файла и переменных окружения.
func Load(configPath string) (*Config, error) {
	const op = "config.Load"

	if configPath == "" {
		return nil, fmt.Errorf("%s: config path is not set", op)
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: file %s does not exist", op, configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%s: cannot read config: %w", op, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.SupabaseURL == "" && c.JWTSecret == "" {
		return errors.New("supabase: either url or jwt_secret must be set")
	}
	if c.JWTSecret == "" && c.AnonKey == "" {
		return errors.New("supabase: anon_key is required for remote token verification")
	}
	if c.RPS <= 0 || c.Burst <= 0 {
		return errors.New("rate_limit: rps and burst must be positive")
	}
	return nil
}

// String печатает конфиг без секретов.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"MigrationsPath: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"Cache:\n"+
			"  TTL: %s\n"+
			"Supabase:\n"+
			"  URL: %s\n"+
			"  LocalVerification: %t\n"+
			"RateLimit:\n"+
			"  RPS: %g\n"+
			"  Burst: %d\n"+
			"RabbitMQ:\n"+
			"  Enabled: %t\n"+
			"  Exchange: %s\n"+
			"Inventory:\n"+
			"  LowStockThreshold: %d\n",
		c.Env,
		c.MigrationsPath,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.AddressRedis,
		c.RedisDB,
		c.CacheTTL,
		c.SupabaseURL,
		c.JWTSecret != "",
		c.RPS,
		c.Burst,
		c.RabbitURL != "",
		c.Exchange,
		c.LowStockThreshold,
	)
}
