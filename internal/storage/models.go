package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// RefreshEntry is one recorded remote refresh attempt.
type RefreshEntry struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Status    string    `json:"status"` // "ok", "empty", "failed"
	Count     int       `json:"count"`
	Error     string    `json:"error,omitempty"`
}
