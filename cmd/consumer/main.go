// The consumer drains the ingestion queue: each message's content is written
// to the object store under the message's id. It runs until SIGINT/SIGTERM,
// finishing in-flight messages before exiting; anything received but not yet
// acknowledged is redelivered by the queue, which the idempotent handler
// makes harmless.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/ancas/message-ingest/internal/config"
	"github.com/ancas/message-ingest/internal/ingest"
	"github.com/ancas/message-ingest/internal/message"
	"github.com/ancas/message-ingest/internal/queue"
	"github.com/ancas/message-ingest/internal/storage"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sqsClient, err := queue.NewClient(ctx, cfg.AWSRegion, cfg.AWSEndpoint)
	if err != nil {
		log.Fatalf("queue client init failed: %v", err)
	}

	handler := ingest.NewHandler(store)

	// Permanent storage failures (bad credentials, missing bucket) still
	// propagate so the redrive policy dead-letters the message, but they get
	// a louder log line since retrying cannot fix them.
	handle := func(ctx context.Context, msg message.Message) error {
		err := handler.Handle(ctx, msg)
		if err != nil && storage.IsPermanent(err) {
			log.Printf("ingest: permanent storage failure on %s, operator attention needed: %v", msg.Key(), err)
		}
		return err
	}

	consumer := queue.NewConsumer(sqsClient, cfg.QueueURL, cfg.ConsumerWorkers, handle)

	log.Printf("consumer starting (env=%s, queue=%s, bucket=%s)", cfg.AppEnv, cfg.QueueName, cfg.StorageBucket)
	if err := consumer.Run(ctx); err != nil {
		log.Fatalf("consumer stopped with error: %v", err)
	}
	log.Println("consumer stopped")
}
