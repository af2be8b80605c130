package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"salonbook/config"
	appointmentRepo "salonbook/database/repository/appointment"
	"salonbook/models"
	"salonbook/services/notification"
	"salonbook/services/tasks"

	"github.com/hibiken/asynq"
)

// reminderHour is the local hour at which reminder emails fire the day
// before the appointment.
const reminderHour = 18

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
}

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(notifSvc notification.NotificationService) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(notifSvc))

	// Start async worker with retry logic.
	go func() {
		log.Println("[ReminderWorker] starting async worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		log.Printf("[ReminderHandler] sending reminder for appointment %s to %s", p.AppointmentID, p.Email)
		if err := notifSvc.SendAppointmentReminder(ctx, p); err != nil {
			log.Printf("[ReminderHandler] failed to send reminder: %v", err)
			return err
		}
		return nil
	}
}

// InitReminderScheduler scans once a day for the next day's accepted
// appointments and enqueues one reminder task per participant email.
func InitReminderScheduler(repo appointmentRepo.AppointmentRepository, lookupEmail func(ctx context.Context, userID string) (string, string, error)) {
	client := asynq.NewClient(redisOpts())

	go func() {
		for {
			if err := enqueueTomorrowsReminders(context.Background(), client, repo, lookupEmail); err != nil {
				log.Printf("[ReminderScheduler] enqueue failed: %v", err)
			}
			time.Sleep(24 * time.Hour)
		}
	}()
}

func enqueueTomorrowsReminders(ctx context.Context, client *asynq.Client, repo appointmentRepo.AppointmentRepository, lookupEmail func(ctx context.Context, userID string) (string, string, error)) error {
	tomorrow := time.Now().AddDate(0, 0, 1)
	list, err := repo.ListByDate(ctx, tomorrow.Format("2006-01-02"))
	if err != nil {
		return err
	}

	fireAt := time.Date(time.Now().Year(), time.Now().Month(), time.Now().Day(), reminderHour, 0, 0, 0, time.Local)
	if fireAt.Before(time.Now()) {
		fireAt = time.Now().Add(time.Minute)
	}

	for _, d := range list {
		if d.Status != models.AppointmentAccepted {
			continue
		}
		for _, userID := range []string{d.ConsumerID, d.ProviderID} {
			email, name, err := lookupEmail(ctx, userID)
			if err != nil || email == "" {
				continue
			}
			task, opts, err := tasks.NewReminderTask(models.ReminderPayload{
				AppointmentID: d.ID,
				Email:         email,
				Name:          name,
				Date:          d.Date,
				Slot:          d.Slot,
				Venue:         d.Venue,
			}, fireAt)
			if err != nil {
				log.Printf("[ReminderScheduler] could not build task for %s: %v", d.ID, err)
				continue
			}
			if _, err := client.EnqueueContext(ctx, task, opts...); err != nil {
				log.Printf("[ReminderScheduler] could not enqueue reminder for %s: %v", d.ID, err)
			}
		}
	}
	return nil
}
