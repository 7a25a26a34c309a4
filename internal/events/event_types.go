package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventOTPRequested   EventType = "otp_requested"
	EventPasswordReset  EventType = "password_reset"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Email     string      `json:"email"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

// OTPRequestedPayload payload.
type OTPRequestedPayload struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// PasswordResetPayload payload.
type PasswordResetPayload struct {
	Name string `json:"name"`
}
