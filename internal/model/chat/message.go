package chat

import "time"

// Message is a single turn in the transcript. Immutable once appended.
type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	FromUser  bool      `json:"fromUser"`
	CreatedAt time.Time `json:"createdAt"`
}
