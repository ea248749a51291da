package tasks

import (
	"encoding/json"
	"time"

	"calendrix/config"
	"calendrix/models"

	"github.com/hibiken/asynq"
)

const TypeBookingReminder = "reminder:booking"

// NewBookingReminderTask packs a reminder payload into an asynq task
// scheduled to fire at the given time.
func NewBookingReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.MaxRetry(3),
	}
	return asynq.NewTask(TypeBookingReminder, data), opts, nil
}

// ReminderQueue enqueues booking reminders onto the shared Redis queue.
type ReminderQueue struct {
	client *asynq.Client
}

func NewReminderQueue() *ReminderQueue {
	return &ReminderQueue{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		}),
	}
}

func (q *ReminderQueue) ScheduleBookingReminder(record models.BookingRecord, fireAt time.Time) error {
	task, opts, err := NewBookingReminderTask(models.ReminderPayload{
		BookingID: record.ID,
		Name:      record.Name,
		Title:     record.Title,
		FireDate:  fireAt.Format(time.RFC3339),
		EventLink: record.EventLink,
	}, fireAt)
	if err != nil {
		return err
	}
	_, err = q.client.Enqueue(task, opts...)
	return err
}

func (q *ReminderQueue) Close() error {
	return q.client.Close()
}
