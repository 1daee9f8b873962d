// Package queue connects the service to its SQS FIFO transport: a Publisher
// used by the API to enqueue messages and a Consumer that feeds them to the
// ingestion handler under at-least-once semantics.
package queue

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/ancas/message-ingest/internal/message"
)

// API is the subset of the SQS client used by this package. Tests substitute
// a fake; production code passes *sqs.Client.
type API interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// Publisher enqueues messages for ingestion.
type Publisher interface {
	Publish(ctx context.Context, msg message.Message) error
}

// NewClient builds an SQS client for the configured region. A non-empty
// endpoint routes all calls to an emulator (LocalStack) with the stock test
// credentials; an empty endpoint uses the live service and the default
// credential chain.
func NewClient(ctx context.Context, region, endpoint string) (*sqs.Client, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if endpoint != "" {
		loadOpts = append(loadOpts,
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("test", "test", "")))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return sqs.NewFromConfig(cfg, func(o *sqs.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}
