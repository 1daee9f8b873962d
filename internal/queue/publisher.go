package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/ancas/message-ingest/internal/message"
)

// SQSPublisher sends messages to a FIFO queue. The message ID is used as the
// group id, so ordering holds per identifier and nothing more; duplicate
// submissions collapse via the queue's content-based deduplication.
type SQSPublisher struct {
	client   API
	queueURL string
}

var _ Publisher = (*SQSPublisher)(nil)

// NewSQSPublisher returns a publisher bound to the given queue URL.
func NewSQSPublisher(client API, queueURL string) *SQSPublisher {
	return &SQSPublisher{client: client, queueURL: queueURL}
}

// Publish enqueues one message as a JSON payload.
func (p *SQSPublisher) Publish(ctx context.Context, msg message.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode message %s: %w", msg.Key(), err)
	}
	_, err = p.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:       aws.String(p.queueURL),
		MessageBody:    aws.String(string(body)),
		MessageGroupId: aws.String(msg.Key()),
	})
	if err != nil {
		return fmt.Errorf("send message %s: %w", msg.Key(), err)
	}
	return nil
}
