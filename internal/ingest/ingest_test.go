package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ancas/message-ingest/internal/message"
)

// memStore records objects in a map, mimicking the overwrite semantics of an
// object store bucket.
type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	puts    int
	failErr error
}

func newMemStore() *memStore {
	return &memStore{objects: make(map[string][]byte)}
}

func (s *memStore) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.puts++
	if s.failErr != nil {
		return s.failErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	if int64(len(data)) != size {
		return fmt.Errorf("size mismatch: declared %d, read %d", size, len(data))
	}
	s.objects[key] = data
	return nil
}

func (s *memStore) get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.objects[key]
	return b, ok
}

func (s *memStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

func TestHandle_StoresContentUnderID(t *testing.T) {
	store := newMemStore()
	h := NewHandler(store)

	msg := message.Message{
		ID:      uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		Content: "Hello, World!",
	}
	require.NoError(t, h.Handle(context.Background(), msg))

	body, ok := store.get("11111111-1111-1111-1111-111111111111")
	require.True(t, ok, "object missing at key")
	assert.Equal(t, "Hello, World!", string(body))
	assert.Equal(t, 1, store.count())
}

func TestHandle_IdempotentRedelivery(t *testing.T) {
	store := newMemStore()
	h := NewHandler(store)

	msg := message.Message{ID: uuid.New(), Content: "same payload every time"}
	for i := 0; i < 5; i++ {
		require.NoError(t, h.Handle(context.Background(), msg))
	}

	assert.Equal(t, 1, store.count(), "redelivery must not create extra objects")
	body, _ := store.get(msg.Key())
	assert.Equal(t, msg.Content, string(body))
	assert.Equal(t, 5, store.puts, "one write attempt per invocation")
}

func TestHandle_ContentFidelity(t *testing.T) {
	store := newMemStore()
	h := NewHandler(store)

	content := "multi-byte: ✓ ☃ 你好 — and a newline\nand a tab\t."
	msg := message.Message{ID: uuid.New(), Content: content}
	require.NoError(t, h.Handle(context.Background(), msg))

	body, _ := store.get(msg.Key())
	assert.Equal(t, content, string(body))
}

func TestHandle_PropagatesStorageFailure(t *testing.T) {
	store := newMemStore()
	store.failErr = errors.New("dial tcp: connection refused")
	h := NewHandler(store)

	err := h.Handle(context.Background(), message.Message{ID: uuid.New(), Content: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, 0, store.count())
	assert.Equal(t, 1, store.puts, "no handler-level retry")
}

func TestHandle_MalformedID(t *testing.T) {
	store := newMemStore()
	h := NewHandler(store)

	err := h.Handle(context.Background(), message.Message{Content: "orphan"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, message.ErrMalformed))
	assert.Equal(t, 0, store.puts, "malformed messages must not reach storage")
}

func TestHandle_ConcurrentDistinctKeys(t *testing.T) {
	store := newMemStore()
	h := NewHandler(store)

	const n = 50
	msgs := make([]message.Message, n)
	for i := range msgs {
		msgs[i] = message.Message{ID: uuid.New(), Content: fmt.Sprintf("payload-%d", i)}
	}

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := range msgs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = h.Handle(context.Background(), msgs[i])
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "message %d", i)
	}
	assert.Equal(t, n, store.count())
	for i, msg := range msgs {
		body, ok := store.get(msg.Key())
		require.True(t, ok, "message %d missing", i)
		assert.Equal(t, msg.Content, string(body), "cross-written content for message %d", i)
	}
}
