package service

import (
	"context"
	"github.com/sirupsen/logrus"
	"lookescolar-server/internal/metrics"
	"lookescolar-server/internal/model"
	"lookescolar-server/internal/ports"
	"lookescolar-server/internal/util"
	"sync"
	"time"
)

const (
	DefaultAccessLogQueue = 256
	accessLogWriteTimeout = 5 * time.Second
)

type accessLogWriter interface {
	LogAccess(ctx context.Context, entry model.AccessLogEntry) bool
}

// AccessLogger : пишет аудит в фоне, чтобы запрос не ждал БД. При полной очереди запись теряется.
type AccessLogger struct {
	writer accessLogWriter
	queue  chan model.AccessLogEntry
	logger logrus.FieldLogger

	closeOnce sync.Once
	mu        sync.RWMutex
	closed    bool
	done      chan struct{}
}

var _ ports.AccessLogQueue = (*AccessLogger)(nil)

func NewAccessLogger(writer accessLogWriter, size int) *AccessLogger {
	if size <= 0 {
		size = DefaultAccessLogQueue
	}

	l := &AccessLogger{
		writer: writer,
		queue:  make(chan model.AccessLogEntry, size),
		logger: util.Logger.WithField("component", "access_logger"),
		done:   make(chan struct{}),
	}
	go l.run()
	return l
}

// Enqueue : никогда не блокирует
func (l *AccessLogger) Enqueue(entry model.AccessLogEntry) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.closed {
		return false
	}

	select {
	case l.queue <- entry:
		return true
	default:
		metrics.AccessLogDropped.Inc()
		l.logger.WithField("action", entry.Action).Warn("очередь журнала доступа заполнена, запись отброшена")
		return false
	}
}

func (l *AccessLogger) run() {
	defer close(l.done)
	for entry := range l.queue {
		ctx, cancel := context.WithTimeout(context.Background(), accessLogWriteTimeout)
		l.writer.LogAccess(ctx, entry)
		cancel()
	}
}

// Close : перестаёт принимать записи и ждёт, пока очередь будет записана
func (l *AccessLogger) Close() {
	l.closeOnce.Do(func() {
		l.mu.Lock()
		l.closed = true
		close(l.queue)
		l.mu.Unlock()
	})
	<-l.done
}
