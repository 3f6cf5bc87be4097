package audit

import (
	"time"

	"github.com/google/uuid"
)

// Event is an authentication outcome kept in the local audit trail. It never
// contains passwords, hashes or tokens.
type Event struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Email      string    `json:"email,omitempty"`
	UserID     string    `json:"user_id,omitempty"`
	RemoteAddr string    `json:"remote_addr,omitempty"`
	Timestamp  time.Time `json:"timestamp"`

	storeKey []byte
}

func (e *Event) normalize() {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
}
