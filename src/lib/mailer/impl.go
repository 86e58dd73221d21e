package mailer

import (
	"clubops/src/config"
	"clubops/src/lib"
	"clubops/src/types"
	"encoding/json"
	"fmt"
	"os"
)

// NewMailerMessage hands a message to the outbound email queue. Local
// environments publish to Kafka so the dev mail worker can pick it up;
// everything else goes through SQS.
func NewMailerMessage(input *lib.SendMailInput) error {
	apiEnv := os.Getenv("API_ENV")
	emailBody := &types.JSONB{
		"from":      input.From,
		"from-name": input.FromName,
		"to":        input.To,
		"body":      input.Body,
		"html":      input.Html,
		"subject":   input.Subject,
	}
	if apiEnv == "local" {
		if err := lib.KafkaProduceMessage("emails", lib.WithSuffix(config.EmailQueue), *emailBody); err != nil {
			return fmt.Errorf("error sending message to queue: %s", err.Error())
		}
		return nil
	}
	body, err := json.Marshal(&emailBody)
	if err != nil {
		return err
	}
	if err := lib.SQSProduceMessage(lib.WithSuffix(config.EmailQueue), string(body)); err != nil {
		return fmt.Errorf("error sending message to queue: %s", err.Error())
	}
	return nil
}
