// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

// Cookie attributes of the admin session.
const (
	CookieName = "taproom_admin"
	CookiePath = "/admin"
)

var (
	// ErrNoCookie is returned when the request carries no session cookie.
	ErrNoCookie = errors.New("session cookie not present")
	// ErrInvalidCookie is returned when the cookie fails signature or age checks.
	ErrInvalidCookie = errors.New("session cookie invalid")
)

// CookieCodec writes and reads the signed session cookie.
type CookieCodec struct {
	sc     *securecookie.SecureCookie
	maxAge int
	secure bool
}

// NewCookieCodec creates a codec signing cookies with secret. The cookie lives
// as long as ttl; secure marks it Secure.
func NewCookieCodec(secret string, ttl time.Duration, secure bool) *CookieCodec {
	maxAge := int(ttl / time.Second)
	sc := securecookie.New([]byte(secret), nil)
	sc.MaxAge(maxAge)
	sc.SetSerializer(securecookie.JSONEncoder{})

	return &CookieCodec{
		sc:     sc,
		maxAge: maxAge,
		secure: secure,
	}
}

// Set writes the cookie carrying token.
func (c *CookieCodec) Set(w http.ResponseWriter, token string) error {
	encoded, err := c.sc.Encode(CookieName, token)
	if err != nil {
		return err
	}
	http.SetCookie(w, c.cookie(encoded, c.maxAge))
	return nil
}

// Read returns the token carried by the request cookie.
func (c *CookieCodec) Read(r *http.Request) (string, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", ErrNoCookie
	}

	var token string
	if err := c.sc.Decode(CookieName, cookie.Value, &token); err != nil {
		return "", ErrInvalidCookie
	}
	return token, nil
}

// Clear expires the cookie on the client.
func (c *CookieCodec) Clear(w http.ResponseWriter) {
	http.SetCookie(w, c.cookie("", -1))
}

func (c *CookieCodec) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     CookiePath,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
