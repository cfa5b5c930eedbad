package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"restaurant-reviews/config"
	httpapi "restaurant-reviews/review-svc/internal/api/http"
	"restaurant-reviews/review-svc/internal/service"
	"restaurant-reviews/review-svc/internal/storage"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store service.Store
	switch settings.StoreDriver {
	case "memory":
		log.Println("Using in-memory store")
		store = storage.NewMemoryStore(storage.SeedRestaurants()...)
	default:
		db := config.MustInitPostgres(settings.Postgres)
		defer db.Close()

		repo := storage.NewPostgresRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatal("Failed to ensure schema:", err)
		}
		store = repo
	}

	var publisher service.EventPublisher
	if settings.EnableKafka {
		writer := config.NewKafkaWriter(settings.Kafka, settings.EventsTopic)
		defer writer.Close()
		publisher = storage.NewKafkaPublisher(writer)
	}

	var guard httpapi.SubmissionGuard
	if settings.EnableRedis {
		rdb := config.MustInitRedis(settings.Redis)
		defer rdb.Close()
		guard = storage.NewRedisMarkers(rdb, settings.MarkerTTL)
	}

	integrity := service.NewIntegrityManager(store, publisher)
	coordinator := service.NewCoordinator(store, integrity, publisher)
	catalog := service.NewCatalog(store)
	qr := service.DefaultQRGenerator{BaseURL: settings.PublicBaseURL}

	if settings.EnableKafka {
		reader := config.NewKafkaReader(settings.Kafka, settings.IdentityTopic, settings.ConsumerGroup)
		defer reader.Close()
		go service.NewIdentityConsumer(reader, integrity).Start(ctx)
	}

	handler := httpapi.NewHandler(coordinator, catalog, integrity, qr, guard)
	router := httpapi.NewRouter(handler, httpapi.NewAuthenticator(settings.JWTSecret))
	if err := httpapi.StartServer(ctx, settings.HTTPAddr, router); err != nil {
		log.Printf("ERROR: server stopped: %v", err)
		return
	}
	log.Println("Review Service stopped")
}
