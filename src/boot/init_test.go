package boot

import (
	"clubops/src/lib"
	"clubops/src/lib/mailer"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func restoreDunningSeams() {
	queueDunningMail = mailer.NewMailerMessage
	sendDunningMail = lib.SendMail
}

func TestDeliverDunningNotice(t *testing.T) {
	input := &lib.SendMailInput{
		To:      []string{"pat@example.com"},
		Subject: "Action needed on your recent payment",
	}

	t.Run("Should prefer the queue when it accepts the message", func(t *testing.T) {
		defer restoreDunningSeams()
		queued, sent := 0, 0
		queueDunningMail = func(in *lib.SendMailInput) error {
			queued++
			return nil
		}
		sendDunningMail = func(in *lib.SendMailInput) error {
			sent++
			return nil
		}

		assert.Nil(t, deliverDunningNotice(input))
		assert.Equal(t, 1, queued)
		assert.Equal(t, 0, sent)
	})

	t.Run("Should fall back to a direct send when queueing fails", func(t *testing.T) {
		defer restoreDunningSeams()
		sent := 0
		queueDunningMail = func(in *lib.SendMailInput) error {
			return errors.New("broker unavailable")
		}
		sendDunningMail = func(in *lib.SendMailInput) error {
			sent++
			assert.Equal(t, input.To, in.To)
			return nil
		}

		assert.Nil(t, deliverDunningNotice(input))
		assert.Equal(t, 1, sent)
	})

	t.Run("Should surface the direct-send error", func(t *testing.T) {
		defer restoreDunningSeams()
		queueDunningMail = func(in *lib.SendMailInput) error {
			return errors.New("broker unavailable")
		}
		sendDunningMail = func(in *lib.SendMailInput) error {
			return errors.New("smtp dial failed")
		}

		assert.NotNil(t, deliverDunningNotice(input))
	})
}
