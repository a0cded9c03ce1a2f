package rabbitmq

import (
	"context"
	e "fintrack/internal/core/domain/errors"
	"fintrack/internal/core/domain/logging"
	"sync"
	"sync/atomic"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const reconnectDelay = 3 * time.Second

// Connection redials the broker whenever the underlying connection
// drops, until Close is called.
type Connection struct {
	conn   *amqp.Connection
	lock   sync.RWMutex
	closed int32
	log    logging.Logger
}

func Dial(url string, log logging.Logger) (*Connection, error) {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	connection := &Connection{conn: conn, log: log}
	go connection.watch(url)
	return connection, nil
}

func (c *Connection) current() *amqp.Connection {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.conn
}

func (c *Connection) IsClosed() bool {
	return atomic.LoadInt32(&c.closed) == 1
}

func (c *Connection) Close() error {
	if !atomic.CompareAndSwapInt32(&c.closed, 0, 1) {
		return amqp.ErrClosed
	}
	return c.current().Close()
}

func (c *Connection) watch(url string) {
	ctx := context.Background()
	for {
		reason, ok := <-c.current().NotifyClose(make(chan *amqp.Error, 1))
		if !ok || c.IsClosed() {
			c.log.Info(ctx, "Notification broker connection closed.")
			return
		}

		c.log.Warning(ctx, "Notification broker connection lost, redialing.", logging.Entry("reason", reason.Error()))
		redialed := retryUntil(reconnectDelay, c.IsClosed, func() error {
			conn, err := amqp.Dial(url)
			if err != nil {
				return err
			}
			c.lock.Lock()
			c.conn = conn
			c.lock.Unlock()
			return nil
		}, func(err error) {
			c.log.Error(ctx, "Could not redial notification broker.", logging.Entry("err", err))
		})
		if !redialed {
			return
		}
		c.log.Info(ctx, "Notification broker connection restored.")
	}
}

// Channel opens a channel that is reopened after the broker closes it.
func (c *Connection) Channel() (*Channel, error) {
	ch, err := c.current().Channel()
	if err != nil {
		return nil, err
	}

	channel := &Channel{ch: ch, log: c.log}
	go channel.watch(c)
	return channel, nil
}

type Channel struct {
	ch     *amqp.Channel
	lock   sync.RWMutex
	closed int32
	log    logging.Logger
}

func (ch *Channel) current() *amqp.Channel {
	ch.lock.RLock()
	defer ch.lock.RUnlock()
	return ch.ch
}

func (ch *Channel) IsClosed() bool {
	return atomic.LoadInt32(&ch.closed) == 1
}

func (ch *Channel) Close() error {
	if !atomic.CompareAndSwapInt32(&ch.closed, 0, 1) {
		return amqp.ErrClosed
	}
	return ch.current().Close()
}

func (ch *Channel) watch(conn *Connection) {
	ctx := context.Background()
	for {
		reason, ok := <-ch.current().NotifyClose(make(chan *amqp.Error, 1))
		if !ok || ch.IsClosed() {
			atomic.StoreInt32(&ch.closed, 1)
			return
		}

		ch.log.Warning(ctx, "Notification channel closed, reopening.", logging.Entry("reason", reason.Error()))
		stop := func() bool { return ch.IsClosed() || conn.IsClosed() }
		reopened := retryUntil(reconnectDelay, stop, func() error {
			c, err := conn.current().Channel()
			if err != nil {
				return err
			}
			ch.lock.Lock()
			ch.ch = c
			ch.lock.Unlock()
			return nil
		}, func(err error) {
			ch.log.Error(ctx, "Could not reopen notification channel.", logging.Entry("err", err))
		})
		if !reopened {
			return
		}
		ch.log.Info(ctx, "Notification channel reopened.")
	}
}

func (ch *Channel) PublishWithContext(
	ctx context.Context,
	exchange string,
	key string,
	mandatory bool,
	immediate bool,
	msg amqp.Publishing,
) error {
	return ch.current().PublishWithContext(ctx, exchange, key, mandatory, immediate, msg)
}

// DeclareExchange declares a durable exchange of the given kind.
func (ch *Channel) DeclareExchange(name string, kind string) error {
	return ch.current().ExchangeDeclare(name, kind, true, false, false, false, nil)
}

// retryUntil calls attempt every delay until it succeeds or stop reports true.
// It returns whether attempt succeeded.
func retryUntil(delay time.Duration, stop func() bool, attempt func() error, onError func(error)) bool {
	for {
		time.Sleep(delay)
		if stop() {
			return false
		}
		err := attempt()
		if err == nil {
			return true
		}
		onError(err)
	}
}
