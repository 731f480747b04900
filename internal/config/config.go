package config

import (
	"os"
	"strconv"
	"strings"

	"microblog/internal/pkg"
)

type Config struct {
	ListenAddr    string
	MySQLDSN      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	KafkaBrokers  []string
	KafkaTopic    string
	MediaDir      string
	SessionSecret string
	SMTP          pkg.SMTPConfig
}

// Load reads the environment, falling back to development defaults.
func Load() Config {
	return Config{
		ListenAddr:    getenv("LISTEN_ADDR", ":8080"),
		MySQLDSN:      getenv("MYSQL_DSN", "user:password@tcp(127.0.0.1:3306)/microblog?charset=utf8mb4&parseTime=True"),
		RedisAddr:     getenv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getenvInt("REDIS_DB", 0),
		KafkaBrokers:  getenvList("KAFKA_BROKERS"),
		KafkaTopic:    getenv("KAFKA_TOPIC", "microblog-events"),
		MediaDir:      getenv("MEDIA_DIR", "./media"),
		SessionSecret: getenv("SESSION_SECRET", "secret-key"),
		SMTP: pkg.SMTPConfig{
			Host:     getenv("SMTP_HOST", "127.0.0.1"),
			Port:     getenvInt("SMTP_PORT", 587),
			Username: getenv("SMTP_USERNAME", "no-reply@example.com"),
			Password: getenv("SMTP_PASSWORD", ""),
			From:     getenv("SMTP_FROM", "NoReply <no-reply@example.com>"),
		},
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getenvList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	return strings.Split(v, ",")
}
