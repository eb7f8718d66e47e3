package session

import (
	"database/sql"
	"time"
)

type MySQLRepo struct {
	DB *sql.DB
}

func NewMySQLRepo(db *sql.DB) *MySQLRepo {
	return &MySQLRepo{DB: db}
}

func (r *MySQLRepo) Create(userID int64, sessionID string) (string, error) {
	_, err := r.DB.Exec(`
		INSERT INTO sessions (id, user_id, created_at, expires_at)
		VALUES (?, ?, ?, ?)
	`, sessionID, userID, time.Now(), time.Now().Add(TTL))

	return sessionID, err
}

func (r *MySQLRepo) IsValid(userID int64) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM sessions
			WHERE user_id = ? AND expires_at > ?
		)
	`, userID, time.Now().UTC()).Scan(&exists)
	return exists, err
}

func (r *MySQLRepo) Invalidate(userID int64) error {
	_, err := r.DB.Exec(`
		DELETE FROM sessions WHERE user_id = ?
	`, userID)
	return err
}
