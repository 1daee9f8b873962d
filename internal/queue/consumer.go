package queue

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"github.com/ancas/message-ingest/internal/message"
)

const (
	receiveBatchSize = 10
	waitTimeSeconds  = 20
	receiveBackoff   = time.Second
)

// HandleFunc processes one decoded message. Returning nil acknowledges the
// message (it is deleted from the queue); returning an error leaves it for
// redelivery once its visibility timeout expires.
type HandleFunc func(ctx context.Context, msg message.Message) error

// Consumer long-polls the queue and dispatches messages to a fixed pool of
// workers. It never retries a message itself: failed messages reappear via
// the queue's visibility timeout, and the queue's redrive policy moves
// persistently failing ones to the dead-letter queue.
type Consumer struct {
	client   API
	queueURL string
	handler  HandleFunc
	workers  int
}

// NewConsumer builds a consumer with the given worker count (minimum 1).
func NewConsumer(client API, queueURL string, workers int, handler HandleFunc) *Consumer {
	if workers < 1 {
		workers = 1
	}
	return &Consumer{client: client, queueURL: queueURL, handler: handler, workers: workers}
}

// Run receives messages until ctx is cancelled. On shutdown it stops
// receiving, lets in-flight workers finish their current message (write and
// ack included), and returns; messages that were received but never reached
// a worker simply reappear after their visibility timeout, which the
// idempotent handler makes safe.
func (c *Consumer) Run(ctx context.Context) error {
	jobs := make(chan types.Message)
	var wg sync.WaitGroup
	wg.Add(c.workers)
	for i := 0; i < c.workers; i++ {
		go func() {
			defer wg.Done()
			// Detached so a shutdown mid-message does not abort its
			// storage write or its ack; the visibility timeout bounds
			// each attempt either way.
			drainCtx := context.WithoutCancel(ctx)
			for m := range jobs {
				c.process(drainCtx, m)
			}
		}()
	}
	defer func() {
		close(jobs)
		wg.Wait()
	}()

	log.Printf("consumer: polling %s with %d workers", c.queueURL, c.workers)
	for {
		out, err := c.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(c.queueURL),
			MaxNumberOfMessages: receiveBatchSize,
			WaitTimeSeconds:     waitTimeSeconds,
		})
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.Printf("consumer: receive failed: %v", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(receiveBackoff):
			}
			continue
		}
		for _, m := range out.Messages {
			select {
			case jobs <- m:
			case <-ctx.Done():
				return nil
			}
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// process applies the acknowledgement contract to one raw queue message.
func (c *Consumer) process(ctx context.Context, m types.Message) {
	msgID := aws.ToString(m.MessageId)

	msg, err := message.Decode([]byte(aws.ToString(m.Body)))
	if err != nil {
		// An unparseable payload never succeeds; leave it unacknowledged so
		// the redrive policy routes it to the dead-letter queue for
		// inspection instead of redelivering it forever.
		log.Printf("consumer: message %s is malformed, leaving for dead-letter: %v", msgID, err)
		return
	}

	if err := c.handler(ctx, msg); err != nil {
		if errors.Is(err, message.ErrMalformed) {
			log.Printf("consumer: message %s (%s) rejected as malformed, leaving for dead-letter: %v", msgID, msg.Key(), err)
			return
		}
		log.Printf("consumer: message %s (%s) failed, will be redelivered: %v", msgID, msg.Key(), err)
		return
	}

	if _, err := c.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(c.queueURL),
		ReceiptHandle: m.ReceiptHandle,
	}); err != nil {
		// The write succeeded, so redelivery after a failed ack is harmless.
		log.Printf("consumer: delete of %s failed (redelivery is safe): %v", msgID, err)
	}
}
