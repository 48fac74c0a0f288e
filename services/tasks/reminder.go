package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"agendador/models"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const TypeSendReminder = "reminder:send"

func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// AsynqReminderScheduler enqueues pre-meeting reminders on the Redis-backed
// asynq queue.
type AsynqReminderScheduler struct {
	client *asynq.Client
	lead   time.Duration
	zone   *time.Location
}

func NewAsynqReminderScheduler(redisOpt asynq.RedisClientOpt, lead time.Duration, zone *time.Location) *AsynqReminderScheduler {
	return &AsynqReminderScheduler{
		client: asynq.NewClient(redisOpt),
		lead:   lead,
		zone:   zone,
	}
}

// ScheduleEventReminder enqueues a reminder for the given booking, fired
// `lead` before the meeting start. Meetings too close or in the past are
// skipped.
func (s *AsynqReminderScheduler) ScheduleEventReminder(ctx context.Context, userID string, draft *models.ConversationDraft) error {
	start, err := time.ParseInLocation("2006-01-02 15:04", draft.Date+" "+draft.Time, s.zone)
	if err != nil {
		return fmt.Errorf("invalid meeting start: %w", err)
	}

	fireAt := start.Add(-s.lead)
	if !fireAt.After(time.Now()) {
		return nil
	}

	payload := models.ReminderPayload{
		ReminderID: uuid.NewString(),
		UserID:     userID,
		Title:      draft.Title,
		Date:       draft.Date,
		Time:       draft.Time,
	}
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	if _, err := s.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return nil
}

// Close releases the asynq client connection.
func (s *AsynqReminderScheduler) Close() error {
	return s.client.Close()
}
