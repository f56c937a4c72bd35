package cron

import (
	"context"
	"encoding/json"

	"festoria/models"

	"github.com/hibiken/asynq"
)

const TypeReminderSend = "reminder:send"

// NewReminderTask wraps a reminder payload as an asynq task.
func NewReminderTask(payload models.ReminderPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeReminderSend, b), nil
}

// AsynqReminderQueue implements ReminderQueue on an asynq client.
type AsynqReminderQueue struct {
	Client *asynq.Client
}

func (q *AsynqReminderQueue) EnqueueReminder(ctx context.Context, payload models.ReminderPayload) error {
	task, err := NewReminderTask(payload)
	if err != nil {
		return err
	}
	_, err = q.Client.EnqueueContext(ctx, task)
	return err
}
