package domain

import "time"

// NotificationPayload pairs a completed verification with its principal for
// operator reporting. Built by the verification service on genuine success
// only; the formatter renders it into text for the chat-delivery layer.
type NotificationPayload struct {
	Principal   Principal
	Bundle      AttributeBundle
	CompletedAt time.Time
}
