package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/lucasvgarcia/contas/internal/bill"
	billCache "github.com/lucasvgarcia/contas/internal/bill/cache"
	billStore "github.com/lucasvgarcia/contas/internal/bill/store"
	"github.com/lucasvgarcia/contas/internal/config"
	"github.com/lucasvgarcia/contas/internal/database"
	eventsKafka "github.com/lucasvgarcia/contas/internal/events/kafka"
	contasHttp "github.com/lucasvgarcia/contas/internal/http"
	billHandler "github.com/lucasvgarcia/contas/internal/http/bill"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	opts := []bill.Option{}

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		opts = append(opts, bill.WithCache(billCache.New(rdb, cfg.Redis.TTL)))

		slog.Info("bill list caching enabled", "addr", cfg.Redis.Addr)
	}

	if brokers := cfg.KafkaBrokers(); len(brokers) > 0 {
		publisher := eventsKafka.NewPublisher(brokers, cfg.Kafka.Topic)
		defer publisher.Close()

		opts = append(opts, bill.WithEvents(publisher))

		slog.Info("bill event publishing enabled", "brokers", brokers, "topic", cfg.Kafka.Topic)
	}

	billService := bill.NewService(billStore.New(db), opts...)

	router := contasHttp.New(billHandler.NewHandler(billService))

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
