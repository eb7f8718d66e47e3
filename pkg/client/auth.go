package client

import (
	"context"

	"flashcards/pkg/user"
)

type LoginRequest struct {
	LoginID  string `json:"loginId"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"tokenType"`
	User      user.User `json:"user"`
}

// Auth wraps the login/register/logout flows around the gateway and the
// auth store, toggling the loading flag for the duration of the call.
type Auth struct {
	api   *Client
	store *AuthStore
}

func NewAuth(api *Client, store *AuthStore) *Auth {
	return &Auth{api: api, store: store}
}

func (a *Auth) Login(ctx context.Context, loginID, password string) (*user.User, error) {
	a.store.SetLoading(true)
	defer a.store.SetLoading(false)

	var resp LoginResponse
	if err := a.api.Post(ctx, "/auth/login", LoginRequest{LoginID: loginID, Password: password}, &resp); err != nil {
		return nil, err
	}

	a.store.Login(resp.Token, &resp.User)
	return &resp.User, nil
}

func (a *Auth) Register(ctx context.Context, form user.RegisterForm) (*user.User, error) {
	a.store.SetLoading(true)
	defer a.store.SetLoading(false)

	var resp LoginResponse
	if err := a.api.Post(ctx, "/auth/register", form, &resp); err != nil {
		return nil, err
	}

	a.store.Login(resp.Token, &resp.User)
	return &resp.User, nil
}

// Me fetches the authenticated user's own record; the server answer is
// the lazy confirmation that a restored token is still valid.
func (a *Auth) Me(ctx context.Context) (*user.User, error) {
	var u user.User
	if err := a.api.Get(ctx, "/auth/me", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (a *Auth) Logout() {
	a.store.Logout()
}
