package internal

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/kwkoo/quizrunner/internal/api"
)

const cookieKey = api.SessionCookie

// CookieGenerator makes sure every page load carries a session id before the
// websocket is opened.
type CookieGenerator struct {
	next http.Handler
}

func InitCookieGenerator(next http.Handler) *CookieGenerator {
	return &CookieGenerator{next: next}
}

func (s CookieGenerator) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// copied from https://medium.com/wesionary-team/cookies-and-session-management-using-cookies-in-go-7801f935a1c8
	if _, err := r.Cookie(cookieKey); err != nil {
		id := uuid.NewString()
		cookie := &http.Cookie{
			Name:     cookieKey,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		}
		log.Printf("cookie not found - generating new cookie %s", id)
		http.SetCookie(w, cookie)
	}
	s.next.ServeHTTP(w, r)
}

// SessionID returns the caller's session id, if any.
func SessionID(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(cookieKey)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}
