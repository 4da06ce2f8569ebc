package domain

// Message is a rendered notification body for a single recipient.
type Message struct {
	Body string
}

// DispatchOutcome is the result of one notification attempt. It is never
// persisted.
type DispatchOutcome struct {
	RecipientID string `json:"recipient_id"`
	Success     bool   `json:"success"`
	MessageID   string `json:"message_id,omitempty"`
	Error       string `json:"error,omitempty"`
}

// CountSent returns how many outcomes were successful.
func CountSent(outcomes []DispatchOutcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Success {
			n++
		}
	}
	return n
}
