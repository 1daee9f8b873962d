//	@title			Message Ingest API
//	@version		1.0
//	@description	Posts messages onto the ingestion queue and retrieves stored content by id.
//
//	@host		localhost:8080
//	@BasePath	/api/v1

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/ancas/message-ingest/internal/api"
	"github.com/ancas/message-ingest/internal/config"
	appMiddleware "github.com/ancas/message-ingest/internal/middleware"
	"github.com/ancas/message-ingest/internal/queue"
	"github.com/ancas/message-ingest/internal/storage"

	_ "github.com/ancas/message-ingest/docs/swagger"
)

func main() {
	cfg := config.Load()

	store, err := storage.NewMinioStorage(
		cfg.StorageEndpoint,
		cfg.StorageAccessKey,
		cfg.StorageSecretKey,
		cfg.StorageBucket,
		cfg.StorageUseSSL,
	)
	if err != nil {
		log.Fatalf("object storage init failed: %v", err)
	}

	sqsClient, err := queue.NewClient(context.Background(), cfg.AWSRegion, cfg.AWSEndpoint)
	if err != nil {
		log.Fatalf("queue client init failed: %v", err)
	}
	publisher := queue.NewSQSPublisher(sqsClient, cfg.QueueURL)

	msgHandler := api.NewHandler(publisher, store)

	// Router
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Swagger UI — available at http://localhost:8080/swagger/
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/messages", msgHandler.PostMessage)
		r.Get("/messages/{id}", msgHandler.GetMessage)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("api listening on :%s (env=%s, bucket=%s)", cfg.Port, cfg.AppEnv, cfg.StorageBucket)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-quit
	log.Println("shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}

	log.Println("server stopped")
}
