package middleware

import (
	"crypto/rand"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"repobrowser/internal/config"
)

const (
	// SessionIDKey is the gin context key holding the session ID
	SessionIDKey = "session_id"

	sessionIssuer = "repobrowser"
)

// SessionMiddleware gives every browser a signed session cookie.
// The cookie is an HS256 JWT whose subject is the session ID.
type SessionMiddleware struct {
	secret     []byte
	cookieName string
	maxAge     time.Duration
	secure     bool
	now        func() time.Time
}

// NewSessionMiddleware creates a new session middleware. Without a
// configured secret a random one is generated, so sessions end on restart.
func NewSessionMiddleware(cfg *config.Config) (*SessionMiddleware, error) {
	secret := []byte(cfg.Session.Secret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("failed to generate session secret: %w", err)
		}
	}

	return &SessionMiddleware{
		secret:     secret,
		cookieName: cfg.Session.CookieName,
		maxAge:     cfg.SessionIdleTimeout(),
		secure:     cfg.Session.SecureCookie,
		now:        time.Now,
	}, nil
}

// RequireSession is a Gin middleware that resolves or issues the session
func (m *SessionMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if cookie, err := c.Cookie(m.cookieName); err == nil {
			if sessionID, err := m.Parse(cookie); err == nil {
				c.Set(SessionIDKey, sessionID)
				// Sliding expiry
				_ = m.setCookie(c, sessionID)
				c.Next()
				return
			}
		}

		sessionID := uuid.New().String()
		if err := m.setCookie(c, sessionID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "internal_error",
				"message": "Failed to issue session",
				"details": err.Error(),
			})
			c.Abort()
			return
		}

		c.Set(SessionIDKey, sessionID)
		c.Next()
	}
}

// Issue signs a session token for the session ID
func (m *SessionMiddleware) Issue(sessionID string) (string, error) {
	now := m.now()
	claims := jwt.RegisteredClaims{
		Subject:   sessionID,
		Issuer:    sessionIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.maxAge)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Parse verifies a session token and returns its session ID
func (m *SessionMiddleware) Parse(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return "", fmt.Errorf("failed to parse session token: %w", err)
	}
	if !parsed.Valid {
		return "", fmt.Errorf("invalid session token")
	}

	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", fmt.Errorf("invalid session ID: %w", err)
	}
	return claims.Subject, nil
}

func (m *SessionMiddleware) setCookie(c *gin.Context, sessionID string) error {
	token, err := m.Issue(sessionID)
	if err != nil {
		return fmt.Errorf("failed to sign session token: %w", err)
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, token, int(m.maxAge.Seconds()), "/", "", m.secure, true)
	return nil
}

// SessionID returns the session ID resolved by RequireSession
func SessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}
