package notifier

import (
	"context"
	e "fintrack/internal/core/domain/errors"
	"fintrack/internal/core/domain/logging"
	"fintrack/internal/core/domain/notification"
	"fintrack/internal/rabbitmq/schema"

	"github.com/rabbitmq/amqp091-go"
)

type publisher interface {
	PublishWithContext(
		ctx context.Context,
		exchange string,
		key string,
		mandatory bool,
		immediate bool,
		msg amqp091.Publishing,
	) error
}

// RabbitMQ publishes notifications to an exchange,
// the notification kind is used as the routing key.
type RabbitMQ struct {
	log      logging.Logger
	channel  publisher
	exchange string
}

func NewRabbitMQ(log logging.Logger, channel publisher, exchange string) *RabbitMQ {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	return &RabbitMQ{log: log, channel: channel, exchange: exchange}
}

func (s *RabbitMQ) Notify(ctx context.Context, n notification.Notification) error {
	msg := schema.Notification{
		Recipient: string(n.Recipient),
		Kind:      string(n.Kind),
		Message:   n.Message,
		At:        n.At,
	}
	body, err := msg.Marshal()
	if err != nil {
		return err
	}

	routingKey := string(n.Kind)
	err = s.channel.PublishWithContext(ctx, s.exchange, routingKey, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    n.At,
		Body:         body,
	})
	if err != nil {
		logging.Error(ctx, s.log, err)
		return err
	}
	s.log.Info(
		ctx,
		"AMQP message has been successfully published.",
		logging.Entry("exchange", s.exchange),
		logging.Entry("RK", routingKey),
		logging.Entry("recipient", n.Recipient),
	)
	return nil
}
