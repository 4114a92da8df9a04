package huly

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bnema/huly-agent/internal/domain"
)

// EventTx is the event name under which server-pushed transactions are
// dispatched.
const EventTx = domain.EventTx

// Listener handles one pushed event. Listeners run off the transport's read
// goroutine, so they may issue calls on the same connection.
type Listener func(data json.RawMessage)

// Dispatcher is an instance-owned event table. For each event the listeners
// run one after another in registration order; events are delivered in
// arrival order.
type Dispatcher struct {
	mu        sync.RWMutex
	listeners map[string][]Listener
	logger    *slog.Logger
}

func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		listeners: map[string][]Listener{},
		logger:    logger,
	}
}

// On appends a listener for event. Registering the same function twice makes
// it run twice.
func (d *Dispatcher) On(event string, listener Listener) {
	if listener == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners[event] = append(d.listeners[event], listener)
}

func (d *Dispatcher) emit(event string, data json.RawMessage) {
	d.mu.RLock()
	listeners := make([]Listener, len(d.listeners[event]))
	copy(listeners, d.listeners[event])
	d.mu.RUnlock()

	for i, listener := range listeners {
		if err := d.invoke(listener, data); err != nil {
			d.logger.Error("event listener failed",
				"event", event,
				"listener", i,
				"error", err,
			)
		}
	}
}

func (d *Dispatcher) invoke(listener Listener, data json.RawMessage) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("listener panic: %v", recovered)
		}
	}()

	listener(data)
	return nil
}

type queuedEvent struct {
	name string
	data json.RawMessage
}

// eventQueue hands pushed events from the reader to a single delivery
// goroutine. push never blocks.
type eventQueue struct {
	mu     sync.Mutex
	ready  *sync.Cond
	items  []queuedEvent
	closed bool
}

func newEventQueue() *eventQueue {
	q := &eventQueue{}
	q.ready = sync.NewCond(&q.mu)
	return q
}

func (q *eventQueue) push(name string, data json.RawMessage) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.items = append(q.items, queuedEvent{name: name, data: data})
	q.ready.Signal()
}

// close stops the queue once the events already pushed are delivered.
func (q *eventQueue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.ready.Broadcast()
}

func (q *eventQueue) next() (queuedEvent, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 && !q.closed {
		q.ready.Wait()
	}
	if len(q.items) == 0 {
		return queuedEvent{}, false
	}
	item := q.items[0]
	q.items[0] = queuedEvent{}
	q.items = q.items[1:]
	return item, true
}

// deliver runs until the queue is closed and drained.
func (q *eventQueue) deliver(d *Dispatcher) {
	for {
		item, ok := q.next()
		if !ok {
			return
		}
		d.emit(item.name, item.data)
	}
}
