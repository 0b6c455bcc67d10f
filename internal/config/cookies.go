package config

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	authCookie = "auth"
	signCookie = "sign"
)

// Cookies stores a JWT split in two: header and payload in a script
// readable "auth" cookie, the signature in an HttpOnly "sign" cookie.
type Cookies struct {
	Domain   string
	Secure   bool
	SameSite http.SameSite
	jwt      *JWT
}

func parseSameSite(s string) http.SameSite {
	switch strings.ToUpper(s) {
	case "DEFAULT":
		return http.SameSiteDefaultMode
	case "LAX":
		return http.SameSiteLaxMode
	case "NONE":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteStrictMode
	}
}

func NewCookies(jwt *JWT) (*Cookies, error) {
	domain, err := mustLookup("COOKIES_DOMAIN")
	if err != nil {
		return nil, err
	}
	return &Cookies{
		Domain:   domain,
		Secure:   lookupOr("COOKIES_SECURE", "1") != "0",
		SameSite: parseSameSite(lookupOr("COOKIES_SAMESITE", "STRICT")),
		jwt:      jwt,
	}, nil
}

func NewCookiesWith(domain string, secure bool, sameSite http.SameSite, jwt *JWT) *Cookies {
	return &Cookies{Domain: domain, Secure: secure, SameSite: sameSite, jwt: jwt}
}

func (c *Cookies) cookie(name, value string, httpOnly bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Path:     "/",
		Value:    value,
		HttpOnly: httpOnly,
		Domain:   c.Domain,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	}
}

func (c *Cookies) Clear(w http.ResponseWriter) {
	for _, name := range []string{authCookie, signCookie} {
		cookie := c.cookie(name, "delete", name == signCookie)
		cookie.MaxAge = -1
		http.SetCookie(w, cookie)
	}
}

// Refresh signs claims and stores the token in the response cookies.
func (c *Cookies) Refresh(w http.ResponseWriter, claims *PlayerClaims) error {
	fresh := NewPlayerClaims(claims.PlayerID, claims.Username, c.jwt.TokenLifetime)
	token, err := c.jwt.Sign(fresh)
	if err != nil {
		return fmt.Errorf("unable to sign claims: %w", err)
	}
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return fmt.Errorf("malformed JWT token generated")
	}
	expires := time.Now().Add(c.jwt.TokenLifetime)

	auth := c.cookie(authCookie, parts[0]+"."+parts[1], false)
	auth.Expires = expires
	http.SetCookie(w, auth)

	sign := c.cookie(signCookie, parts[2], true)
	sign.Expires = expires
	http.SetCookie(w, sign)
	return nil
}

func (c *Cookies) ParsePlayerClaims(r *http.Request) (*PlayerClaims, error) {
	auth, err := r.Cookie(authCookie)
	if err != nil {
		return nil, err
	}
	sign, err := r.Cookie(signCookie)
	if err != nil {
		return nil, err
	}
	return c.jwt.ParsePlayerClaims(auth.Value + "." + sign.Value)
}
