package notification

import (
	"context"
	c "fintrack/internal/core/domain/common"
	"time"
)

type Kind string

const (
	KindPasswordChanged Kind = "password_changed"
)

type Notification struct {
	Recipient c.Email
	Kind      Kind
	Message   string
	At        time.Time
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}
