// Provision declares the ingestion infrastructure: the message bucket, the
// FIFO ingestion queue, and its dead-letter queue. Run with `pulumi up`
// against LocalStack for development or a real AWS account for production;
// the exported outputs feed the runtime configuration.
package main

import (
	"encoding/json"

	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/s3"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/sqs"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/ancas/message-ingest/internal/iac"
)

// maxReceiveCount is how many deliveries a message gets before the redrive
// policy moves it to the dead-letter queue.
const maxReceiveCount = 5

func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		cfg, err := iac.LoadStackConfig("application.yml")
		if err != nil {
			return err
		}

		bucket, err := s3.NewBucket(ctx, cfg.Bucket, &s3.BucketArgs{
			Bucket:       pulumi.String(cfg.Bucket),
			ForceDestroy: pulumi.Bool(true),
		})
		if err != nil {
			return err
		}

		dlq, err := sqs.NewQueue(ctx, cfg.DeadLetterQueueName(), &sqs.QueueArgs{
			Name:                      pulumi.String(cfg.DeadLetterQueueName()),
			FifoQueue:                 pulumi.Bool(true),
			ContentBasedDeduplication: pulumi.Bool(true),
		})
		if err != nil {
			return err
		}

		redrivePolicy := dlq.Arn.ApplyT(func(arn string) (string, error) {
			policy, err := json.Marshal(map[string]interface{}{
				"deadLetterTargetArn": arn,
				"maxReceiveCount":     maxReceiveCount,
			})
			return string(policy), err
		}).(pulumi.StringOutput)

		queue, err := sqs.NewQueue(ctx, cfg.QueueName(), &sqs.QueueArgs{
			Name:                      pulumi.String(cfg.QueueName()),
			FifoQueue:                 pulumi.Bool(true),
			ContentBasedDeduplication: pulumi.Bool(true),
			RedrivePolicy:             redrivePolicy,
		})
		if err != nil {
			return err
		}

		ctx.Export("bucketArn", bucket.Arn)
		ctx.Export("queueUrl", queue.Url)
		ctx.Export("deadLetterQueueUrl", dlq.Url)
		return nil
	})
}
