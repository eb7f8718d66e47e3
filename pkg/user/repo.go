package user

import (
	"database/sql"
	"errors"
)

type MySQLRepo struct {
	DB *sql.DB
}

func NewMySQLRepo(db *sql.DB) *MySQLRepo {
	return &MySQLRepo{DB: db}
}

func (r *MySQLRepo) Create(user *User) error {
	res, err := r.DB.Exec(
		"INSERT INTO users (login_id, name, age, email, password) VALUES (?, ?, ?, ?, ?)",
		user.LoginID, user.Name, user.Age, user.Email, user.Password,
	)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = id

	return nil
}

func (r *MySQLRepo) FindByLoginID(loginID string) (*User, error) {
	return r.findOne("SELECT id, login_id, name, age, email, password FROM users WHERE login_id = ?", loginID)
}

func (r *MySQLRepo) FindByID(id int64) (*User, error) {
	return r.findOne("SELECT id, login_id, name, age, email, password FROM users WHERE id = ?", id)
}

func (r *MySQLRepo) findOne(query string, arg any) (*User, error) {
	var u User
	var email sql.NullString

	err := r.DB.QueryRow(query, arg).Scan(&u.ID, &u.LoginID, &u.Name, &u.Age, &email, &u.Password)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("user not found")
		}
		return nil, err
	}

	u.Email = email.String
	return &u, nil
}
