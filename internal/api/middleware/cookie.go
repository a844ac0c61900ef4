package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

var errNoCookie = errors.New("no session cookie")

// Cookies issues and reads the session cookie. The cookie value is an HS256
// token whose jti is the session id; the session itself lives server side.
type Cookies struct {
	Name   string
	Secret []byte
	TTL    time.Duration
	Secure bool

	now func() time.Time
}

func (k Cookies) clock() time.Time {
	if k.now != nil {
		return k.now()
	}
	return time.Now()
}

// Issue sets a cookie carrying sessionID.
func (k Cookies) Issue(c echo.Context, sessionID string) error {
	now := k.clock()
	exp := now.Add(k.TTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := token.SignedString(k.Secret)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     k.Name,
		Value:    signed,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		Secure:   k.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear expires the cookie in the browser.
func (k Cookies) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     k.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   k.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Read returns the session id from a valid cookie.
func (k Cookies) Read(c echo.Context) (string, error) {
	cookie, err := c.Cookie(k.Name)
	if err != nil || cookie.Value == "" {
		return "", errNoCookie
	}

	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(cookie.Value, claims, func(*jwt.Token) (interface{}, error) {
		return k.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(k.clock))
	if err != nil {
		return "", err
	}
	if !tkn.Valid {
		return "", errors.New("invalid session cookie")
	}
	if claims.ID == "" {
		return "", errors.New("session cookie without id")
	}
	return claims.ID, nil
}
