package handlers

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	jwt "github.com/dgrijalva/jwt-go"

	"flashcards/pkg/api"
	"flashcards/pkg/claims"
	"flashcards/pkg/loginlimit"
	"flashcards/pkg/session"
	"flashcards/pkg/user"
)

type LoginForm struct {
	LoginID  string `json:"loginId"`
	Password string `json:"password"`
}

// LoginResponse is the data payload of a successful login or registration.
type LoginResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"tokenType"`
	User      user.User `json:"user"`
}

type AuthHandler struct {
	Service user.ServiceInterface
	Limiter *loginlimit.Limiter
	Logger  *slog.Logger
}

func NewAuthHandler(service user.ServiceInterface, limiter *loginlimit.Limiter, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		Service: service,
		Limiter: limiter,
		Logger:  logger,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req user.RegisterForm
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}

	if req.LoginID == "" || req.Password == "" || req.Name == "" {
		api.WriteError(w, http.StatusBadRequest, "loginId, password and name are required")
		return
	}

	newUser, err := h.Service.Register(req)
	if err != nil {
		if err.Error() == "user already exists" {
			api.WriteError(w, http.StatusConflict, err.Error())
			return
		}
		h.Logger.Error("register", "error", err.Error())
		api.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeToken(w, newUser, "register")
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginForm
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}

	addr := clientAddr(r)
	if h.Limiter.IsBlocked(addr) {
		api.WriteError(w, http.StatusTooManyRequests, "too many login attempts, try again later")
		return
	}

	loggedUser, err := h.Service.Login(req.LoginID, req.Password)
	if err != nil {
		h.Limiter.RegisterFailure(addr)

		var msg string
		if err.Error() == "user not found" {
			msg = "user not found"
		} else {
			msg = "invalid password"
		}
		api.WriteError(w, http.StatusUnauthorized, msg)
		h.Logger.Error("login", "error", "unauthorized", "loginId", req.LoginID)
		return
	}

	h.Limiter.RegisterSuccess(addr)
	h.writeToken(w, loggedUser, "login")
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	var c claims.Claims
	if ok := getClaimsFromContext(w, r, &c); !ok {
		return
	}

	u, err := h.Service.GetByID(c.User.ID)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	api.WriteData(w, h.Logger, u, http.StatusOK)
}

func (h *AuthHandler) writeToken(w http.ResponseWriter, u *user.User, action string) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user": map[string]any{
			"loginId": u.LoginID,
			"id":      u.ID,
		},
		"iat": time.Now().UTC().Unix(),
		"exp": time.Now().Add(session.TTL).UTC().Unix(),
	})
	JWTSecret := os.Getenv("JWT_SECRET")
	tokenString, err := token.SignedString([]byte(JWTSecret))
	if err != nil {
		h.Logger.Error("token signing", "error", err)
		api.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := LoginResponse{
		Token:     tokenString,
		TokenType: "Bearer",
		User:      *u,
	}

	if ok := api.WriteData(w, h.Logger, resp, http.StatusOK); ok {
		h.Logger.Info(action, "user", u.ID)
	}
}
