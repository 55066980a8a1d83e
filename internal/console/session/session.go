// Package session replaces the original persistent logged-in flag with an
// explicit session: acquired on successful login, carried as a signed
// cookie, cleared on logout or expiry.
package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ovenside/bakery-admin/internal/platform/logger"
)

const CookieName = "console_session"

var ErrInvalidSession = errors.New("invalid or expired session")

type Session struct {
	Email     string
	ExpiresAt time.Time
}

type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	if secret == "" {
		logger.Warn("SESSION_SECRET_KEY not set, using default insecure key")
		secret = "bakery-console-dev-secret"
	}
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a session token for a freshly logged-in admin.
func (m *Manager) Issue(email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"email": email,
		"jti":   uuid.NewString(),
		"iat":   now.Unix(),
		"exp":   now.Add(m.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses and validates a session token.
func (m *Manager) Verify(tokenString string) (*Session, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidSession
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return nil, ErrInvalidSession
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, ErrInvalidSession
	}
	return &Session{Email: email, ExpiresAt: exp.Time}, nil
}

// SetCookie attaches the session token to the response.
func (m *Manager) SetCookie(c *gin.Context, token string) {
	c.SetCookie(CookieName, token, int(m.ttl.Seconds()), "/", "", false, true)
}

// Clear drops the session cookie.
func (m *Manager) Clear(c *gin.Context) {
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
}

// RequireSession guards console routes: without a valid session the browser
// is sent back to the login page.
func RequireSession(m *Manager, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(CookieName)
		if err != nil {
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}
		sess, err := m.Verify(tokenString)
		if err != nil {
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}
		c.Set("session", sess)
		c.Next()
	}
}
