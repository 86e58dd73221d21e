package lib

import (
	"context"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqsTypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

var sqsClient *sqs.Client

func AWSGetSQSClient() *sqs.Client {
	if sqsClient != nil {
		return sqsClient
	}
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Printf("Failed to initialize SQS client: %s\n", err.Error())
		return nil
	}
	client := sqs.NewFromConfig(cfg)
	sqsClient = client
	return client
}

// NewSQSClient Replace sqs instance with custom client implementation
func NewSQSClient(c *sqs.Client) {
	sqsClient = c
}

func SQSProduceMessage(queue string, body string) error {
	client := AWSGetSQSClient()
	qurl, err := client.GetQueueUrl(context.Background(), &sqs.GetQueueUrlInput{
		QueueName: aws.String(queue),
	})
	if err != nil {
		log.Printf("Error retrieving queue URL for %s: %s\n", queue, err.Error())
		return err
	}
	out, err := client.SendMessage(context.Background(), &sqs.SendMessageInput{
		QueueUrl:    qurl.QueueUrl,
		MessageBody: aws.String(body),
	})
	if err != nil {
		log.Printf("Could not send message to queue: %s\n", err.Error())
		return err
	}
	log.Printf("Message sent to queue: %s\n", *out.MessageId)
	return nil
}

// SQSConsumeMessages long-polls the queue and logs received payment
// operation messages, deleting each after the log line lands. Downstream
// ledger services own the real processing from their own queues.
func SQSConsumeMessages(queue string) {
	client := AWSGetSQSClient()
	if client == nil {
		return
	}
	qurl, err := client.GetQueueUrl(context.Background(), &sqs.GetQueueUrlInput{
		QueueName: aws.String(queue),
	})
	if err != nil {
		log.Printf("[SQS] Error retrieving queue URL for %s: %s\n", queue, err.Error())
		return
	}
	log.Println("[BACKGROUND]: waiting for messages...")
	for {
		out, err := client.ReceiveMessage(context.Background(), &sqs.ReceiveMessageInput{
			QueueUrl:            qurl.QueueUrl,
			MaxNumberOfMessages: 10,
			WaitTimeSeconds:     20,
		})
		if err != nil {
			log.Printf("[SQS] Error receiving from %s: %s\n", queue, err.Error())
			return
		}
		for _, m := range out.Messages {
			log.Printf("message received: %s\n", *m.Body)
			SQSDeleteMessage(client, qurl.QueueUrl, &m)
		}
	}
}

func SQSDeleteMessage(client *sqs.Client, queueUrl *string, m *sqsTypes.Message) {
	_, err := client.DeleteMessage(context.Background(), &sqs.DeleteMessageInput{
		QueueUrl:      queueUrl,
		ReceiptHandle: m.ReceiptHandle,
	})
	if err != nil {
		log.Printf("[SQS] Error deleting message %s: %s\n", *m.MessageId, err.Error())
	}
}

// WithSuffix appends the API_ENV to a queue name so test and prod traffic
// never share a queue.
func WithSuffix(queue string) string {
	env := os.Getenv("API_ENV")
	if env == "" {
		return queue
	}
	return queue + "-" + env
}
