package models

import "time"

// AIConversation is one question/answer exchange with the assistant.
type AIConversation struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
	PostID    *string   `json:"post_id,omitempty"`
}
