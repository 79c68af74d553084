package session

import (
	"fmt"
	"net/http"
	"time"

	"parish/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const cookieName = "session"

// Session is the authenticated identity derived from the signed cookie.
type Session struct {
	UserID domain.UserID
	Role   domain.Role
	Email  string
	Name   string
}

// Manager issues and validates the session cookie. The signed token is
// the only source of truth; the userId/role/email/name cookies exist
// for the UI and are never trusted server-side.
type Manager struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

func NewManager(secret string, ttl time.Duration, secure bool) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl, secure: secure}
}

func (m *Manager) Issue(w http.ResponseWriter, u *domain.User) error {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":   u.ID.String(),
		"role":  string(u.Role),
		"email": u.Email,
		"name":  u.Name,
		"iat":   now.Unix(),
		"exp":   now.Add(m.ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return err
	}

	maxAge := int(m.ttl.Seconds())
	m.setCookie(w, cookieName, signed, maxAge, true)
	m.setCookie(w, "userId", u.ID.String(), maxAge, true)
	m.setCookie(w, "role", string(u.Role), maxAge, true)
	m.setCookie(w, "email", u.Email, maxAge, true)
	m.setCookie(w, "name", u.Name, maxAge, true)
	return nil
}

func (m *Manager) Clear(w http.ResponseWriter) {
	for _, name := range []string{cookieName, "userId", "role", "email", "name"} {
		m.setCookie(w, name, "", -1, true)
	}
}

func (m *Manager) setCookie(w http.ResponseWriter, name, value string, maxAge int, httpOnly bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: httpOnly,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// FromRequest re-derives the session from the request. Absence or any
// validation failure means anonymous (domain.ErrNoSession).
func (m *Manager) FromRequest(r *http.Request) (*Session, error) {
	c, err := r.Cookie(cookieName)
	if err != nil || c.Value == "" {
		return nil, domain.ErrNoSession
	}

	token, err := jwt.Parse(c.Value, func(token *jwt.Token) (interface{}, error) {
		// Ensure HS* (HMAC) only
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %T", token.Method)
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrNoSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrNoSession
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, domain.ErrNoSession
	}
	role, _ := claims["role"].(string)
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	if domain.Role(role).Level() == 0 {
		return nil, domain.ErrNoSession
	}

	return &Session{
		UserID: userID,
		Role:   domain.Role(role),
		Email:  email,
		Name:   name,
	}, nil
}
