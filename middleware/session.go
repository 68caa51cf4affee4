package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const SessionCookie = "cc_session"

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// SessionIssuer signs and reads the session token set after the simulated login.
// Cookies it writes are marked Secure when secure is set (release mode).
type SessionIssuer struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

func NewSessionIssuer(secret string, ttl time.Duration, secure bool) *SessionIssuer {
	return &SessionIssuer{secret: []byte(secret), ttl: ttl, secure: secure}
}

// SecureCookies reports whether cookies must only be sent over HTTPS.
func (s *SessionIssuer) SecureCookies() bool {
	return s.secure
}

// Issue creates a signed token for email.
func (s *SessionIssuer) Issue(email string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Parse validates tokenString and returns its claims.
func (s *SessionIssuer) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// SetCookie stores token in the session cookie.
func (s *SessionIssuer) SetCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(s.ttl.Seconds()), "/", "", s.secure, true)
}

// ClearCookie removes the session cookie.
func (s *SessionIssuer) ClearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", s.secure, true)
}

// SessionMiddleware exposes the signed-in email as "email" in the context when
// a valid session cookie is present. It never rejects a request: the
// dashboard is reachable without signing in.
func SessionMiddleware(issuer *SessionIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(SessionCookie)
		if err == nil && raw != "" {
			if claims, err := issuer.Parse(raw); err == nil {
				c.Set("email", claims.Email)
			}
		}
		c.Next()
	}
}

// CurrentEmail returns the email stored by SessionMiddleware, if any.
func CurrentEmail(c *gin.Context) string {
	return c.GetString("email")
}
