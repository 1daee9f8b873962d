// Package message defines the wire shape shared by the queue payload and the
// REST API body.
package message

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrMalformed is returned when a payload cannot be turned into a valid
// Message. A malformed message can never succeed on redelivery, so consumers
// should dead-letter it instead of leaving it on the queue.
var ErrMalformed = errors.New("malformed message")

// Message is one logical message. The caller supplies the ID; it is unique
// per logical message and doubles as the storage key.
type Message struct {
	ID      uuid.UUID `json:"id"`
	Content string    `json:"content"`
}

// Key returns the storage key for the message: the canonical string form of
// its ID.
func (m Message) Key() string {
	return m.ID.String()
}

// Validate reports whether the message carries a usable identifier.
func (m Message) Validate() error {
	if m.ID == uuid.Nil {
		return fmt.Errorf("%w: missing id", ErrMalformed)
	}
	return nil
}

// Decode parses a JSON payload of the form {"id": "<uuid>", "content": "..."}.
// Any decoding or identifier problem is reported as ErrMalformed.
func Decode(data []byte) (Message, error) {
	var raw struct {
		ID      string `json:"id"`
		Content string `json:"content"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if raw.ID == "" {
		return Message{}, fmt.Errorf("%w: missing id", ErrMalformed)
	}
	id, err := uuid.Parse(raw.ID)
	if err != nil {
		return Message{}, fmt.Errorf("%w: invalid id %q: %v", ErrMalformed, raw.ID, err)
	}
	if id == uuid.Nil {
		return Message{}, fmt.Errorf("%w: nil id", ErrMalformed)
	}
	return Message{ID: id, Content: raw.Content}, nil
}
