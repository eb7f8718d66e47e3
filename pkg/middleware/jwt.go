package middleware

import (
	"context"
	"net/http"
	"os"
	"strings"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gorilla/mux"

	"flashcards/pkg/api"
	"flashcards/pkg/claims"
	"flashcards/pkg/session"
)

var (
	noSessUrls = map[string]string{
		"/api/v1/auth/login":    http.MethodPost,
		"/api/v1/auth/register": http.MethodPost,
	}
)

func CheckJWT(sessionStore session.Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := mux.CurrentRoute(r)
			template, err := route.GetPathTemplate()

			if err != nil {
				api.WriteError(w, http.StatusNotFound, "route not found")
				return
			}

			if method, ok := noSessUrls[template]; ok && method == r.Method {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				api.WriteError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			token := strings.TrimPrefix(auth, "Bearer ")

			hashSecretGetter := func(token *jwt.Token) (interface{}, error) {
				method, ok := token.Method.(*jwt.SigningMethodHMAC)
				if !ok || method.Alg() != "HS256" {
					api.WriteError(w, http.StatusUnauthorized, "bad sign method")
					return nil, nil
				}
				JWTSecret := os.Getenv("JWT_SECRET")
				return []byte(JWTSecret), nil
			}

			parsedClaims := &claims.Claims{}

			parsedToken, err := jwt.ParseWithClaims(token, parsedClaims, hashSecretGetter)
			if err != nil || !parsedToken.Valid || parsedClaims.User.LoginID == "" {
				api.WriteError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			ok, err := sessionStore.IsValid(parsedClaims.User.ID)
			if err != nil || !ok {
				api.WriteError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), claims.TokenContextKey, parsedClaims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
