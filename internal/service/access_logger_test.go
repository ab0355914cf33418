package service_test

import (
	"context"
	"github.com/stretchr/testify/assert"
	"lookescolar-server/internal/model"
	"lookescolar-server/internal/service"
	"sync"
	"testing"
)

type recordingWriter struct {
	mu      sync.Mutex
	entries []model.AccessLogEntry
	block   chan struct{}
}

func (w *recordingWriter) LogAccess(ctx context.Context, entry model.AccessLogEntry) bool {
	if w.block != nil {
		<-w.block
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.entries = append(w.entries, entry)
	return true
}

func (w *recordingWriter) actions() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.entries))
	for _, e := range w.entries {
		out = append(out, e.Action)
	}
	return out
}

func TestAccessLogger_DrainsOnClose(t *testing.T) {
	writer := &recordingWriter{}
	logger := service.NewAccessLogger(writer, 8)

	for _, action := range []string{"validate", "view", "download"} {
		assert.True(t, logger.Enqueue(model.AccessLogEntry{Action: action}))
	}
	logger.Close()

	assert.Equal(t, []string{"validate", "view", "download"}, writer.actions())
	assert.False(t, logger.Enqueue(model.AccessLogEntry{Action: "late"}))
}

func TestAccessLogger_DropsWhenFull(t *testing.T) {
	writer := &recordingWriter{block: make(chan struct{})}
	logger := service.NewAccessLogger(writer, 1)

	accepted := 0
	for i := 0; i < 10; i++ {
		if logger.Enqueue(model.AccessLogEntry{Action: "view"}) {
			accepted++
		}
	}

	// воркер держит не больше одной записи, ещё одна лежит в очереди
	assert.LessOrEqual(t, accepted, 2)
	assert.GreaterOrEqual(t, accepted, 1)

	close(writer.block)
	logger.Close()
	assert.Len(t, writer.actions(), accepted)
}

func TestAccessLogger_CloseTwice(t *testing.T) {
	logger := service.NewAccessLogger(&recordingWriter{}, 0)
	logger.Close()
	logger.Close()
}
