package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the name of the session cookie.
const CookieName = "userdir_session"

// cookieClaims carries the opaque session id inside the signed token.
type cookieClaims struct {
	SID string `json:"sid"`
	jwt.RegisteredClaims
}

// CookieCodec signs and verifies the session cookie. The cookie value is
// an HS256 JWT whose sid claim is the session id; the signing key comes
// from process configuration, never from user input.
type CookieCodec struct {
	key    []byte
	secure bool
}

// NewCookieCodec creates a codec signing with the given key.
func NewCookieCodec(key string) *CookieCodec {
	return &CookieCodec{key: []byte(key)}
}

// Encode produces the signed cookie value for a session.
func (c *CookieCodec) Encode(sessionID string, expiresAt time.Time) (string, error) {
	claims := &cookieClaims{
		SID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   sessionID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("session: failed to sign cookie: %w", err)
	}
	return signed, nil
}

// Decode verifies a cookie value and extracts the session id. Malformed,
// unsigned or tampered cookies simply report no session.
func (c *CookieCodec) Decode(value string) (string, bool) {
	token, err := jwt.ParseWithClaims(value, &cookieClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.key, nil
	})
	if err != nil || !token.Valid {
		return "", false
	}

	claims, ok := token.Claims.(*cookieClaims)
	if !ok || claims.SID == "" {
		return "", false
	}
	return claims.SID, true
}

// ReadCookie extracts the session id from the request's cookie, if a
// valid one is present.
func (c *CookieCodec) ReadCookie(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return c.Decode(cookie.Value)
}

// SetCookie issues the session cookie to the client.
func (c *CookieCodec) SetCookie(w http.ResponseWriter, sessionID string, expiresAt time.Time) error {
	value, err := c.Encode(sessionID, expiresAt)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearCookie removes the session cookie from the client.
func (c *CookieCodec) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
