package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restaurant-reviews/api-gateway/internal/gateway"
	"restaurant-reviews/config"

	"github.com/rs/cors"
)

func main() {
	settings, err := config.LoadGateway()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	gw := gateway.NewGateway(gateway.Config{
		ReviewSvcURL: settings.ReviewSvcURL,
		FrontendDir:  settings.FrontendDir,
	}, &http.Client{Timeout: settings.ProxyTimeout})

	r := gw.SetupRoutes()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8080", "http://127.0.0.1:8080", "*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	handler := c.Handler(r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := &http.Server{Addr: settings.HTTPAddr, Handler: handler, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("ERROR: gateway shutdown: %v", err)
		}
	}()

	log.Printf("API Gateway starting on %s", settings.HTTPAddr)
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Println("API Gateway stopped")
}
