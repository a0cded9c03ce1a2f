package notification

import (
	"context"
	"fmt"
	"sync"
)

type FakeNotifier struct {
	Sent        []Notification
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeNotifier() *FakeNotifier {
	return &FakeNotifier{}
}

func (n *FakeNotifier) Notify(ctx context.Context, notification Notification) error {
	if n.ReturnError {
		return fmt.Errorf("could not send notification %v", notification.Kind)
	}
	n.lock.Lock()
	defer n.lock.Unlock()
	n.Sent = append(n.Sent, notification)
	return nil
}

func (n *FakeNotifier) SentCount() int {
	n.lock.Lock()
	defer n.lock.Unlock()
	return len(n.Sent)
}
