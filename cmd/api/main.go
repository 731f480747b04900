package main

import (
	"log/slog"
	"os"

	"microblog/internal/config"
	"microblog/internal/pkg"
	"microblog/internal/repository/mysql"
	"microblog/internal/repository/redis"
	"microblog/internal/router"
	"microblog/internal/service"
)

func main() {
	cfg := config.Load()
	pkg.SessionSecret = []byte(cfg.SessionSecret)

	if err := mysql.InitDB(cfg.MySQLDSN); err != nil {
		slog.Error("mysql init failed", "err", err)
		os.Exit(1)
	}
	if err := mysql.Migrate(mysql.DB); err != nil {
		slog.Error("migrate failed", "err", err)
		os.Exit(1)
	}
	if err := redis.Init(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
		slog.Error("redis init failed", "err", err)
		os.Exit(1)
	}
	defer redis.Close()

	blobs, err := pkg.NewBlobStore(cfg.MediaDir)
	if err != nil {
		slog.Error("blob store init failed", "err", err)
		os.Exit(1)
	}

	events := service.EventSender(service.LogSender)
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := pkg.NewKafkaProducer(pkg.KafkaConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
		})
		if err != nil {
			slog.Error("kafka init failed", "err", err)
			os.Exit(1)
		}
		defer producer.Close()
		events = producer.Send
	}

	r := router.InitRouter(router.Deps{
		DB:       mysql.DB,
		Cache:    redis.NewFeedCacheRepository(),
		Sessions: &redis.SessionRepository{},
		Resets:   &redis.ResetRepository{},
		Mailer:   pkg.NewMailer(cfg.SMTP),
		Blobs:    blobs,
		Events:   events,
	})

	if err := r.Run(cfg.ListenAddr); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
