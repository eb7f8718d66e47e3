package session

import "time"

type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// TTL is how long a server session stays valid; the JWT carries the same
// lifetime so both expire together.
const TTL = time.Hour

type Repository interface {
	Create(userID int64, sessionID string) (string, error)
	IsValid(userID int64) (bool, error)
	Invalidate(userID int64) error
}
