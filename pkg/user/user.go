package user

type User struct {
	ID       int64  `json:"id"`
	LoginID  string `json:"loginId"`
	Name     string `json:"name"`
	Age      *int   `json:"age,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"-"`
}

type Repository interface {
	Create(user *User) error
	FindByLoginID(loginID string) (*User, error)
	FindByID(id int64) (*User, error)
}
