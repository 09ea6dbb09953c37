package domain

import "time"

type ChatMessage struct {
	ID        int64     `db:"id" json:"id"`
	Content   string    `db:"content" json:"content"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Level     int       `db:"level" json:"level"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ChatMessageView is a message joined with its author, the shape returned
// by the chat endpoints.
type ChatMessageView struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Level     int       `json:"level"`
	CreatedAt time.Time `json:"createdAt"`
	Username  string    `json:"username"`
	UserID    int64     `json:"userId"`
	IsAdmin   bool      `json:"isAdmin"`
}
