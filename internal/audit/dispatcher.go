package audit

import (
	"sync"

	"github.com/rs/zerolog"
)

type Event struct {
	UserID    *uint
	Action    string
	Entity    string
	EntityID  *uint
	RequestID string
	Metadata  any
}

type sink interface {
	Log(ev Event) error
}

// Dispatcher writes audit events off the request path. Events are dropped
// when the queue is full; auditing never fails an operation.
type Dispatcher struct {
	sink  sink
	log   zerolog.Logger
	queue chan Event

	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
	done      chan struct{}
}

func NewDispatcher(s sink, log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		sink:  s,
		log:   log,
		queue: make(chan Event, 100),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		if err := d.sink.Log(ev); err != nil {
			d.log.Error().
				Err(err).
				Str("action", ev.Action).
				Str("request_id", ev.RequestID).
				Msg("audit write failed")
		}
	}
}

// Dispatch discards the event on a nil or closed Dispatcher.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.log.Warn().
			Str("action", ev.Action).
			Msg("audit dispatcher closed, dropping event")
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn().
			Str("action", ev.Action).
			Msg("audit queue full, dropping event")
	}
}

// Close stops accepting events and waits for the queue to drain.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.closeOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		close(d.queue)
		d.mu.Unlock()
	})
	<-d.done
}
