package models

// ReminderPayload is the asynq task body for a scheduled booking reminder.
type ReminderPayload struct {
	BookingID string `json:"bookingId"`
	Name      string `json:"name"`
	Title     string `json:"title"`
	FireDate  string `json:"fireDate"`
	EventLink string `json:"eventLink,omitempty"`
}
