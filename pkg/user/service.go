package user

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"flashcards/pkg/generator"
	"flashcards/pkg/session"
)

type RegisterForm struct {
	LoginID  string `json:"loginId"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Age      *int   `json:"age,omitempty"`
	Email    string `json:"email,omitempty"`
}

type ServiceInterface interface {
	Register(form RegisterForm) (*User, error)
	Login(loginID, password string) (*User, error)
	GetByID(id int64) (*User, error)
}

type Service struct {
	Repo    Repository
	Session session.Repository
}

func NewService(repo Repository, session session.Repository) *Service {
	return &Service{Repo: repo, Session: session}
}

func (s *Service) Register(form RegisterForm) (*User, error) {
	exist, err := s.Repo.FindByLoginID(form.LoginID)
	if exist != nil && err == nil {
		return nil, errors.New("user already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password error: %s", err)
	}

	user := &User{
		LoginID:  form.LoginID,
		Name:     form.Name,
		Age:      form.Age,
		Email:    form.Email,
		Password: string(hashedPassword),
	}

	if err := s.Repo.Create(user); err != nil {
		return nil, err
	}

	if err := s.openSession(user.ID); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) Login(loginID, password string) (*User, error) {
	user, err := s.Repo.FindByLoginID(loginID)
	if err != nil {
		return nil, errors.New("user not found")
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	if err != nil {
		return nil, errors.New("invalid credentials")
	}

	if err := s.openSession(user.ID); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) GetByID(id int64) (*User, error) {
	return s.Repo.FindByID(id)
}

func (s *Service) openSession(userID int64) error {
	sessionID, err := generator.GenerateRandomID(generator.SessionIDLength)
	if err != nil {
		return fmt.Errorf("SessionID gen error: %s", err)
	}
	if _, err := s.Session.Create(userID, sessionID); err != nil {
		return errors.New("failed to create session")
	}
	return nil
}
