package boot

import (
	"clubops/src/common"
	"clubops/src/config"
	"clubops/src/db"
	"clubops/src/lib"
	"clubops/src/lib/mailer"
	"clubops/src/models"
	"clubops/src/types"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// Waivers unreviewed past this cutoff get flagged by the hourly sweep.
const waiverStaleCutoff = 7 * 24 * time.Hour

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.Member{},
		&models.Transaction{},
		&models.PendingAuthorization{},
		&models.FailedPayment{},
		&models.Refund{},
		&models.Booking{},
		&models.FeeWaiver{},
		&models.Subscription{},
		&models.Invoice{},
		&models.AuditLog{},
		&models.PaymentNote{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

func InitBroker() {
	apiEnv := os.Getenv("API_ENV")
	if apiEnv == "test" || apiEnv == "production" {
		go lib.SQSConsumeMessages(lib.WithSuffix(config.PaymentEventsQueue))
	} else {
		go lib.KafkaCreateTopics(lib.WithSuffix(config.PaymentEventsQueue), lib.WithSuffix(config.EmailQueue))
		go lib.KafkaConsumer("payments", lib.WithSuffix(config.PaymentEventsQueue))
	}
	go lib.PingSummaryCache()
}

func InitScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	id, err := lib.CreateCronJob(MarkStaleWaivers, time.Hour)
	if err != nil {
		log.Printf("Error running job: %s\n", err.Error())
		return
	}
	log.Printf("Job ID: %s\n", *id)
	j, err := sched.NewJob(
		gocron.CronJob("0 9 * * *", false),
		gocron.NewTask(SendDunningNotices),
	)
	if err != nil {
		log.Printf("Error running job: %s\n", err.Error())
		return
	}
	log.Printf("Job ID: %s %s\n", j.Name(), j.ID().String())
	sched.Start()
}

func StopScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	if err = sched.Shutdown(); err != nil {
		log.Println("An error has occurred while stopping Scheduler. Check logs for info")
		return
	}
}

// MarkStaleWaivers flips the stale flag on waivers left unreviewed past the
// cutoff.
func MarkStaleWaivers() error {
	db := db.GetDb()
	cutoff := time.Now().Add(-waiverStaleCutoff)
	res := db.
		Model(&models.FeeWaiver{}).
		Where("reviewed_at IS NULL").
		Where("stale = ?", false).
		Where("created_at < ?", cutoff).
		Update("stale", true)
	if res.Error != nil {
		log.Printf("Error marking stale waivers: %s\n", res.Error.Error())
		return res.Error
	}
	if res.RowsAffected > 0 {
		log.Printf("Marked %d waivers stale\n", res.RowsAffected)
	}
	return nil
}

var (
	queueDunningMail = mailer.NewMailerMessage
	sendDunningMail  = lib.SendMail
)

// deliverDunningNotice hands the notice to the outbound email queue and
// falls back to a direct SMTP send when queueing fails.
func deliverDunningNotice(input *lib.SendMailInput) error {
	if err := queueDunningMail(input); err != nil {
		log.Printf("Error queueing dunning notice, sending directly: %s\n", err.Error())
		return sendDunningMail(input)
	}
	return nil
}

// SendDunningNotices emails members whose failed payments were never
// notified or whose last notice is over a week old.
func SendDunningNotices() error {
	db := db.GetDb()
	cutoff := time.Now().Add(-7 * 24 * time.Hour)
	var failed []models.FailedPayment
	if err := db.
		Model(&models.FailedPayment{}).
		Preload("Member").
		Where("dunning_notified_at IS NULL OR dunning_notified_at < ?", cutoff).
		Find(&failed).
		Error; err != nil {
		log.Printf("Error loading failed payments for dunning: %s\n", err.Error())
		return err
	}
	for _, fp := range failed {
		if fp.Member == nil || fp.Member.Email == "" {
			continue
		}
		input := &lib.SendMailInput{
			From:     os.Getenv("SMTP_FROM"),
			FromName: "Billing",
			To:       []string{fp.Member.Email},
			Subject:  "Action needed on your recent payment",
			Body: fmt.Sprintf(
				"Hi %s,\n\nA payment of $%.2f did not go through. View your account to update your card or retry the charge.\n",
				fp.Member.Name,
				float64(fp.AmountCents)/100,
			),
		}
		if err := deliverDunningNotice(input); err != nil {
			log.Printf("Error delivering dunning notice for %s: %s\n", fp.PaymentIntentId, err.Error())
			continue
		}
		now := time.Now()
		if err := db.
			Model(&models.FailedPayment{}).
			Where("id = ?", fp.ID).
			Update("dunning_notified_at", now).
			Error; err != nil {
			log.Printf("Error recording dunning notice for %s: %s\n", fp.PaymentIntentId, err.Error())
			continue
		}
		go common.RecordActivity(common.SystemActor, "send_dunning_notice", "payment", fp.PaymentIntentId, fp.Member.Name, types.JSONB{
			"member_email": fp.Member.Email,
			"amount":       fp.AmountCents,
		})
	}
	return nil
}
