package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TypeSessionReminder = "reminder:session"

// reminderLead is how long before the scheduled instant the reminder fires.
const reminderLead = 24 * time.Hour

// SessionReminderPayload identifies the session to remind about. The handler
// re-reads the session so a reminder for a cancelled or moved session is
// silently dropped.
type SessionReminderPayload struct {
	SessionID string `json:"sessionId"`
}

// NewSessionReminderTask builds the asynq task and its schedule option.
func NewSessionReminderTask(sessionID string, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(SessionReminderPayload{SessionID: sessionID})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSessionReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// ReminderScheduler enqueues session reminders.
type ReminderScheduler struct {
	client *asynq.Client
}

// NewReminderScheduler connects an asynq client to the reminder queue.
func NewReminderScheduler(redisOpt asynq.RedisClientOpt) *ReminderScheduler {
	return &ReminderScheduler{client: asynq.NewClient(redisOpt)}
}

// ScheduleSessionReminder enqueues a reminder 24h before the session. Sessions
// already inside the lead window get no reminder.
func (s *ReminderScheduler) ScheduleSessionReminder(sessionID string, sessionDate time.Time) error {
	fireAt := sessionDate.Add(-reminderLead)
	if !fireAt.After(time.Now()) {
		return nil
	}
	task, opts, err := NewSessionReminderTask(sessionID, fireAt)
	if err != nil {
		return err
	}
	_, err = s.client.Enqueue(task, opts...)
	return err
}
