package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Kind represents the severity of a user notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

var (
	ErrInvalidKind = errors.New("invalid notification kind")
	ErrEmptyTitle  = errors.New("notification title is required")
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindSuccess, KindError, KindWarning, KindInfo:
		return true
	}
	return false
}

// Notification is a toast shown to the operator.
type Notification struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewNotification creates a new Notification and validates it.
func NewNotification(kind Kind, title, body string) (*Notification, error) {
	if !kind.Valid() {
		return nil, ErrInvalidKind
	}
	if title == "" {
		return nil, ErrEmptyTitle
	}

	return &Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now(),
	}, nil
}
