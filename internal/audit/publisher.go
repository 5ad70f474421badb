package audit

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

var (
	ErrBufferFull = errors.New("audit buffer full")
	ErrClosed     = errors.New("audit publisher closed")
)

// Publisher delivers audit events to a sink.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
}

// LogPublisher writes events to a structured logger. Used when no broker is
// configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Emit(ctx context.Context, event Event) error {
	event = withTimestamp(event)
	p.logger.InfoContext(ctx, "audit event",
		"action", event.Action,
		"request_id", event.RequestID,
		"subject_id_hash", event.SubjectIDHash,
		"country", event.Country,
		"outcome", event.Outcome,
		"error_code", event.ErrorCode,
		"timestamp", event.Timestamp,
	)
	return nil
}

// AsyncPublisher buffers events and hands them to a sink on a background
// worker, so request handling never waits on the broker. Close drains the
// buffer.
type AsyncPublisher struct {
	sink   Publisher
	inbox  chan Event
	logger *slog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewAsyncPublisher(sink Publisher, buffer int, logger *slog.Logger) *AsyncPublisher {
	if buffer <= 0 {
		buffer = 1
	}
	p := &AsyncPublisher{
		sink:   sink,
		inbox:  make(chan Event, buffer),
		logger: logger,
	}
	worker := NewWorker(sink, p.inbox, logger)
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		worker.Run(context.Background())
	}()
	return p
}

// Emit enqueues event. It never blocks: a full buffer returns ErrBufferFull.
func (p *AsyncPublisher) Emit(_ context.Context, event Event) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}
	select {
	case p.inbox <- withTimestamp(event):
		return nil
	default:
		return ErrBufferFull
	}
}

// Close stops accepting events and waits for buffered events to be delivered.
func (p *AsyncPublisher) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.inbox)
	p.mu.Unlock()
	p.wg.Wait()
}

// MemoryPublisher keeps events in memory.
type MemoryPublisher struct {
	mu     sync.Mutex
	events []Event
}

func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{}
}

func (p *MemoryPublisher) Emit(_ context.Context, event Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, withTimestamp(event))
	return nil
}

// Events returns a copy of the recorded events.
func (p *MemoryPublisher) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Event, len(p.events))
	copy(out, p.events)
	return out
}

func withTimestamp(event Event) Event {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	return event
}
