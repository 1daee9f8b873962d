// Package ingest persists queue messages into the object store.
//
// The handler is deliberately thin: key derivation plus a single put. Because
// the key is the message's own identifier and the put overwrites in place,
// redelivering the same message any number of times leaves the store in the
// same state as delivering it once. That property is what makes at-least-once
// delivery safe here — the transport retries, the handler never has to.
package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/ancas/message-ingest/internal/message"
)

const contentType = "text/plain; charset=utf-8"

// Store is the slice of the object store the handler needs.
type Store interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
}

// Handler writes message content into the object store, keyed by message ID.
// It holds no per-message state and is safe for concurrent use.
type Handler struct {
	store Store
}

// NewHandler returns a Handler writing through the given store. The store is
// already bound to its bucket; the handler only ever supplies keys and bytes.
func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// Handle stores one message: key = canonical string form of the ID, body =
// UTF-8 bytes of the content. Exactly one write attempt is made; on failure
// the error is returned unwrapped enough for errors.Is/As so the caller can
// decide between redelivery and dead-lettering. Handle never retries.
func (h *Handler) Handle(ctx context.Context, msg message.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	body := []byte(msg.Content)
	if err := h.store.Upload(ctx, msg.Key(), bytes.NewReader(body), int64(len(body)), contentType); err != nil {
		return fmt.Errorf("store message %s: %w", msg.Key(), err)
	}
	return nil
}
