package claims

import jwt "github.com/dgrijalva/jwt-go"

type contextKey string

const (
	TokenContextKey contextKey = "token"
)

type Claims struct {
	User struct {
		LoginID string `json:"loginId"`
		ID      int64  `json:"id"`
	} `json:"user"`
	jwt.StandardClaims
}
