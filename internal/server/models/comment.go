package models

import "time"

// Comment is a reader comment on a post. ParentID links replies.
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	Author    string    `json:"author"`
	Email     string    `json:"email"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	ParentID  *string   `json:"parent_id"`
}
