package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"restaurant-reviews/agg-svc/internal/service"
	"restaurant-reviews/agg-svc/internal/storage"
	"restaurant-reviews/config"
)

func main() {
	settings, err := config.LoadAggregator()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db := config.MustInitPostgres(settings.Postgres)
	defer db.Close()

	rdb := config.MustInitRedis(settings.Redis)
	defer rdb.Close()

	reader := config.NewKafkaReader(settings.Kafka, settings.EventsTopic, settings.ConsumerGroup)
	defer reader.Close()

	store := storage.NewStore(db, rdb, settings.SnapshotTTL)
	if err := store.RebuildAll(ctx); err != nil {
		log.Printf("Warning: initial rating rebuild failed: %v", err)
	}

	service.NewConsumer(reader, store).Start(ctx)
}
