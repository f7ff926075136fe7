// Package token generates and checks the opaque signing-link credentials
// that authenticate a recipient. A token is random, URL-safe, and scoped
// to a single document/recipient pair by being stored on that recipient's
// row; resolving the signing link is the sole authentication mechanism.
package token

import (
	"crypto/hmac"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/url"
)

// tokenBytes gives 192 bits of entropy, enough that tokens are
// unguessable without rate limiting.
const tokenBytes = 24

// New returns a fresh random signing token, URL-safe base64 without
// padding.
func New() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate signing token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Match compares a presented token against the stored one in constant
// time.
func Match(presented, stored string) bool {
	return hmac.Equal([]byte(presented), []byte(stored))
}

// SigningLink builds the recipient-facing URL carrying the document ID
// and the opaque token.
func SigningLink(baseURL, documentID, tok string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		u = &url.URL{Scheme: "https", Host: baseURL}
	}
	u.Path = "/sign/" + documentID
	q := u.Query()
	q.Set("token", tok)
	u.RawQuery = q.Encode()
	return u.String()
}
