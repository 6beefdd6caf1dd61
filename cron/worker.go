package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"panchakarma/config"
	sessionRepo "panchakarma/database/repository/session"
	"panchakarma/models"
	"panchakarma/services/notification"
	"panchakarma/services/tasks"

	"github.com/hibiken/asynq"
)

// InitReminderWorker runs the async reminder worker in background.
func InitReminderWorker(sessions sessionRepo.SessionRepository, notifSvc notification.NotificationService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSessionReminder, handleSessionReminder(sessions, notifSvc))

	// Start async worker with retry logic.
	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleSessionReminder(sessions sessionRepo.SessionRepository, notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.SessionReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		sess, err := sessions.GetByID(p.SessionID)
		if err != nil {
			return err
		}
		// Cancelled, completed or rescheduled-out-of-window sessions get no reminder.
		if sess == nil || sess.Status != models.SessionStatusScheduled {
			return nil
		}
		if time.Until(sess.Date) > 25*time.Hour {
			return nil
		}

		msg := fmt.Sprintf("Reminder: your %s session is scheduled for %s.",
			sess.Therapy, sess.Date.UTC().Format("2006-01-02 15:04"))
		notifSvc.Notify(ctx, sess.PatientUID, msg, "session_reminder")
		return nil
	}
}
