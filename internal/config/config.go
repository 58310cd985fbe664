package config

import (
	"errors"
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env           string
	HTTPServer    HTTPServer
	Database      Database
	JWT           JWT
	Redis         Redis
	Prometheus    Prometheus
	Cache         Cache
	Notifications Notifications
}

type HTTPServer struct {
	Address string
	Port    int
}

type Database struct {
	Username       string
	Password       string
	Host           string
	Port           string
	DbName         string
	MigrationsPath string
}

type JWT struct {
	Secret    string
	ExpiresIn time.Duration
}

type Redis struct {
	Address  string
	Port     int
	Password string
	DB       int
	PoolSize int
}

type Prometheus struct {
	Address string
	Port    int
}

type Cache struct {
	PostTTL time.Duration
}

type Notifications struct {
	TTL time.Duration
}

func MustLoad() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")

	viper.SetDefault("env", "dev")

	viper.SetDefault("http_server.address", "0.0.0.0")
	viper.SetDefault("http_server.port", 8080)

	viper.SetDefault("database.username", "postgres")
	viper.SetDefault("database.password", "admin")
	viper.SetDefault("database.host", "blog-db")
	viper.SetDefault("database.port", "5432")
	viper.SetDefault("database.db_name", "blogservice")
	viper.SetDefault("database.migrations_path", "migrations")

	viper.SetDefault("jwt.secret", "dev-secret-change-me")
	viper.SetDefault("jwt.expires_in", "24h")

	viper.SetDefault("redis.address", "redis")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.pool_size", 10)

	viper.SetDefault("prometheus.address", "0.0.0.0")
	viper.SetDefault("prometheus.port", 9104)

	viper.SetDefault("cache.post_ttl", "5m")

	viper.SetDefault("notifications.ttl", "5s")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Printf("Config file not found, using defaults: %s", err)
		} else {
			log.Fatalf("Error reading config file: %s", err)
		}
	}

	config := &Config{
		Env: viper.GetString("env"),
		HTTPServer: HTTPServer{
			Address: viper.GetString("http_server.address"),
			Port:    viper.GetInt("http_server.port"),
		},
		Database: Database{
			Username:       viper.GetString("database.username"),
			Password:       viper.GetString("database.password"),
			Host:           viper.GetString("database.host"),
			Port:           viper.GetString("database.port"),
			DbName:         viper.GetString("database.db_name"),
			MigrationsPath: viper.GetString("database.migrations_path"),
		},
		JWT: JWT{
			Secret:    viper.GetString("jwt.secret"),
			ExpiresIn: viper.GetDuration("jwt.expires_in"),
		},
		Redis: Redis{
			Address:  viper.GetString("redis.address"),
			Port:     viper.GetInt("redis.port"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
			PoolSize: viper.GetInt("redis.pool_size"),
		},
		Prometheus: Prometheus{
			Address: viper.GetString("prometheus.address"),
			Port:    viper.GetInt("prometheus.port"),
		},
		Cache: Cache{
			PostTTL: viper.GetDuration("cache.post_ttl"),
		},
		Notifications: Notifications{
			TTL: viper.GetDuration("notifications.ttl"),
		},
	}

	return config
}
