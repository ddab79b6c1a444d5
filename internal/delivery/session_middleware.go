package delivery

import (
	"context"
	"net/http"

	"github.com/Vovarama1992/voice_assist/internal/session"
)

const sessionCookie = "session_id"

type sessionCtxKey struct{}

// SessionMiddleware находит сессию по cookie. Новая заводится только на запись (POST):
// чтение без сессии её не создаёт. Чужие/устаревшие id не принимаем.
func SessionMiddleware(reg *session.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sess *session.Session
			if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
				sess, _ = reg.Get(c.Value)
			}

			if sess == nil && r.Method == http.MethodPost {
				sess = reg.Create()
				http.SetCookie(w, &http.Cookie{
					Name:     sessionCookie,
					Value:    sess.ID,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), sessionCtxKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// sessionFrom — nil только для чтений без живой сессии
func sessionFrom(r *http.Request) *session.Session {
	s, _ := r.Context().Value(sessionCtxKey{}).(*session.Session)
	return s
}
