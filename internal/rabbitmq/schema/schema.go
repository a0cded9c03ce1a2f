package schema

import (
	"encoding/json"
	"time"
)

type Notification struct {
	Recipient string    `json:"recipient"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	At        time.Time `json:"at"`
}

func (n *Notification) Marshal() ([]byte, error) {
	return json.Marshal(n)
}

func (n *Notification) Unmarshal(data []byte) error {
	return json.Unmarshal(data, n)
}
