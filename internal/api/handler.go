// Package api implements the companion REST API: posting messages onto the
// ingestion queue and retrieving stored content by id.
package api

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ancas/message-ingest/internal/message"
	"github.com/ancas/message-ingest/internal/queue"
	"github.com/ancas/message-ingest/internal/response"
	"github.com/ancas/message-ingest/internal/storage"
)

// Fetcher is the read side of the object store used by the GET endpoint.
type Fetcher interface {
	Fetch(ctx context.Context, key string) (io.ReadCloser, error)
}

// Handler holds HTTP handlers for message endpoints.
type Handler struct {
	publisher queue.Publisher
	store     Fetcher
}

// NewHandler creates a new message Handler.
func NewHandler(publisher queue.Publisher, store Fetcher) *Handler {
	return &Handler{publisher: publisher, store: store}
}

// PostMessage godoc
//
//	@Summary		Submit a message
//	@Description	Accepts a message and places it on the ingestion queue. The content becomes retrievable once the consumer has stored it.
//	@Tags			messages
//	@Accept			json
//	@Produce		json
//	@Param			message	body		message.Message	true	"message to ingest"
//	@Success		201		{object}	response.Envelope{data=message.Message}
//	@Failure		400		{object}	response.Envelope
//	@Failure		502		{object}	response.Envelope
//	@Router			/messages [post]
func (h *Handler) PostMessage(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		response.BadRequest(w, "unreadable request body")
		return
	}
	msg, err := message.Decode(body)
	if err != nil {
		response.BadRequest(w, "message requires a valid uuid id and utf-8 content")
		return
	}

	if err := h.publisher.Publish(r.Context(), msg); err != nil {
		log.Printf("api: publish %s failed: %v", msg.Key(), err)
		response.BadGateway(w, "could not enqueue message")
		return
	}

	response.Created(w, msg)
}

// GetMessage godoc
//
//	@Summary		Retrieve a message
//	@Description	Returns the stored content for the given message id.
//	@Tags			messages
//	@Produce		json
//	@Param			id	path		string	true	"message id (uuid)"
//	@Success		200	{object}	response.Envelope{data=message.Message}
//	@Failure		400	{object}	response.Envelope
//	@Failure		404	{object}	response.Envelope
//	@Failure		500	{object}	response.Envelope
//	@Router			/messages/{id} [get]
func (h *Handler) GetMessage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil || id == uuid.Nil {
		response.BadRequest(w, "id must be a valid uuid")
		return
	}

	obj, err := h.store.Fetch(r.Context(), id.String())
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			response.NotFound(w, "message not found")
			return
		}
		log.Printf("api: fetch %s failed: %v", id, err)
		response.InternalError(w)
		return
	}
	defer obj.Close()

	content, err := io.ReadAll(obj)
	if err != nil {
		log.Printf("api: read %s failed: %v", id, err)
		response.InternalError(w)
		return
	}

	response.OK(w, message.Message{ID: id, Content: string(content)})
}

// maxBodyBytes caps POST bodies; SQS rejects payloads over 256 KiB anyway.
const maxBodyBytes = 256 << 10
