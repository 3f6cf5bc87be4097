package domain

import "time"

// Claims is the verified identity payload decoded from a bearer token.
// It is threaded explicitly through handlers and use cases; the server keeps
// no session state beyond it.
type Claims struct {
	Subject   string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Owns reports whether the claims identify the given user id.
func (c *Claims) Owns(userID string) bool {
	return c != nil && c.Subject != "" && c.Subject == userID
}
