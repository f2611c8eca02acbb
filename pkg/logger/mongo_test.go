package logger

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sinkHandler builds a MongoHandler over an in-memory insert function so
// the drain loop runs without a database.
func sinkHandler() (*MongoHandler, func() []logDocument) {
	var mu sync.Mutex
	var stored []logDocument

	h := &MongoHandler{
		queue:   make(chan logDocument, mongoQueueSize),
		done:    make(chan struct{}),
		flushed: make(chan struct{}),
		insert: func(_ context.Context, batch []interface{}) error {
			mu.Lock()
			defer mu.Unlock()
			for _, doc := range batch {
				stored = append(stored, doc.(logDocument))
			}
			return nil
		},
	}
	go h.drainLoop()

	return h, func() []logDocument {
		mu.Lock()
		defer mu.Unlock()
		return append([]logDocument(nil), stored...)
	}
}

func record(msg string) slog.Record {
	return slog.NewRecord(time.Now(), slog.LevelInfo, msg, 0)
}

func TestMongoHandlerCloseFlushesPendingRecords(t *testing.T) {
	h, stored := sinkHandler()

	for _, msg := range []string{"first", "second", "third"} {
		require.NoError(t, h.Handle(context.Background(), record(msg)))
	}

	// Close must not return before the drain goroutine has written
	// everything still sitting in the queue.
	h.Close()

	docs := stored()
	require.Len(t, docs, 3)
	assert.Equal(t, "first", docs[0].Msg)
	assert.Equal(t, "third", docs[2].Msg)

	// second Close is a no-op
	h.Close()
	assert.Len(t, stored(), 3)
}

func TestMongoHandlerExtractsRequestID(t *testing.T) {
	h, stored := sinkHandler()

	r := record("handled")
	r.AddAttrs(slog.String("request_id", "abc123"), slog.Int("status", 200))
	require.NoError(t, h.Handle(context.Background(), r))
	h.Close()

	docs := stored()
	require.Len(t, docs, 1)
	assert.Equal(t, "abc123", docs[0].RequestID)
	assert.NotContains(t, docs[0].Attrs, "request_id")
	assert.Equal(t, int64(200), docs[0].Attrs["status"])
}
