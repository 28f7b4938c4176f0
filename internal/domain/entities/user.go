package entities

import "time"

// User is a Telegram user who has talked to the bot.
type User struct {
	ID         int64 // Telegram user ID
	ChatID     int64
	Username   string
	CreatedAt  time.Time
	LastSeenAt time.Time
}

func NewUser(id, chatID int64, username string) *User {
	now := time.Now()
	return &User{
		ID:         id,
		ChatID:     chatID,
		Username:   username,
		CreatedAt:  now,
		LastSeenAt: now,
	}
}
