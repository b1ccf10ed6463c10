package server

import (
	"fmt"
	"net/http"
	"time"

	"bloodnet/internal/utils"
)

// adminSession is what the encrypted admin cookie carries. The cookie is the
// only admin state this app holds; the backing service keeps no session of
// its own.
type adminSession struct {
	ID       string    `json:"id"`
	Email    string    `json:"email"`
	IssuedAt time.Time `json:"issued_at"`
}

func (s *Service) issueAdminSession(w http.ResponseWriter, email string) error {
	session := adminSession{
		ID:       utils.NanoID(),
		Email:    email,
		IssuedAt: time.Now(),
	}

	encoded, err := s.cookie.Encode(s.config.CookieName, session)
	if err != nil {
		return fmt.Errorf("encode admin session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.config.CookieName,
		Value:    encoded,
		HttpOnly: true,
		Secure:   s.config.Environment != "development",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   s.config.SessionMaxAgeSec,
		Path:     "/",
	})

	return nil
}

func (s *Service) adminSessionFromRequest(r *http.Request) (*adminSession, error) {
	cookie, err := r.Cookie(s.config.CookieName)
	if err != nil {
		return nil, err
	}

	session := new(adminSession)
	if err := s.cookie.Decode(s.config.CookieName, cookie.Value, session); err != nil {
		return nil, fmt.Errorf("decode admin session: %w", err)
	}

	maxAge := time.Duration(s.config.SessionMaxAgeSec) * time.Second
	if time.Since(session.IssuedAt) > maxAge {
		return nil, fmt.Errorf("admin session expired")
	}

	return session, nil
}

func (s *Service) clearAdminSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.config.CookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   s.config.Environment != "development",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Path:     "/",
	})
}

func (s *Service) setRedirectCookie(w http.ResponseWriter, path string, age time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     redirectCookieName,
		Value:    path,
		HttpOnly: true,
		Secure:   s.config.Environment != "development",
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   int(age.Seconds()),
	})
}

func (s *Service) clearRedirectCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     redirectCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   s.config.Environment != "development",
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})
}

const redirectCookieName = "bloodnet_redirect"
