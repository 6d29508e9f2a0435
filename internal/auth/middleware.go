package auth

import (
	"context"
	"log"
	"net/http"
	"strings"
)

type ctxKey string

const subjectKey ctxKey = "subject"

type Middleware struct {
	secret []byte
}

// New builds the bearer-token middleware. With an empty secret every
// request passes through unauthenticated.
func New(secret []byte) Middleware {
	if len(secret) == 0 {
		log.Println("[WARN] JWT_SECRET is empty, API runs without auth")
	}
	return Middleware{secret: secret}
}

func (m Middleware) Enabled() bool {
	return len(m.secret) > 0
}

func (m Middleware) Wrap(next http.HandlerFunc) http.HandlerFunc {
	if !m.Enabled() {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}

		tokenString := strings.TrimPrefix(h, "Bearer ")
		subject, err := ParseToken(m.secret, tokenString)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), subjectKey, subject)
		next(w, r.WithContext(ctx))
	}
}

func SubjectFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(subjectKey).(string)
	return v, ok && v != ""
}
