package notifier

import (
	"context"
	e "fintrack/internal/core/domain/errors"
	"fintrack/internal/core/domain/logging"
	"fintrack/internal/core/domain/notification"
)

// LogNotifier writes notifications to the log.
// Used when no message broker is configured.
type LogNotifier struct {
	log logging.Logger
}

func NewLogNotifier(log logging.Logger) *LogNotifier {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(ctx context.Context, msg notification.Notification) error {
	n.log.Info(
		ctx,
		"Notification.",
		logging.Entry("recipient", msg.Recipient),
		logging.Entry("kind", msg.Kind),
		logging.Entry("message", msg.Message),
		logging.Entry("at", msg.At),
	)
	return nil
}
