package models

// ReminderPayload is the asynq task payload for a pre-meeting reminder.
type ReminderPayload struct {
	ReminderID string `json:"reminderId"`
	UserID     string `json:"userId"`
	Title      string `json:"title"`
	Date       string `json:"date"`
	Time       string `json:"time"`
}
