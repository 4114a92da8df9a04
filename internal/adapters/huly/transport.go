package huly

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/bnema/huly-agent/internal/domain"
)

const (
	defaultCallTimeout  = 30 * time.Second
	defaultWriteTimeout = 10 * time.Second
	maxInboundBytes     = 32 << 20
)

type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

type TransportConfig struct {
	// URL is the transactor base; the token is appended as the last path
	// segment on connect.
	URL string

	// CallTimeout bounds each Call. Zero means 30 seconds.
	CallTimeout time.Duration

	Dialer *websocket.Dialer
	Logger *slog.Logger
}

// Transport owns the single websocket to the transactor. Requests are
// correlated to responses by id only; pushed messages go to the dispatcher.
type Transport struct {
	url         string
	callTimeout time.Duration
	dialer      *websocket.Dialer
	logger      *slog.Logger
	events      *Dispatcher

	seq atomic.Uint64

	// mu guards conn, state and pending. It is shared by the call path and
	// the reader goroutine.
	mu      sync.Mutex
	conn    *websocket.Conn
	state   State
	pending map[string]*pendingRequest

	writeMu sync.Mutex
}

type pendingRequest struct {
	method string
	// outcome has capacity one. Only the party that removes the request
	// from the pending table sends on it.
	outcome chan callOutcome
}

type callOutcome struct {
	result json.RawMessage
	err    error
}

type rpcRequest struct {
	ID     string `json:"id"`
	Method string `json:"method"`
	Params []any  `json:"params"`
}

type inboundMessage struct {
	ID     json.RawMessage `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  json.RawMessage `json:"error"`
	Event  json.RawMessage `json:"event"`
	Data   json.RawMessage `json:"data"`
}

type rpcErrorBody struct {
	Message string          `json:"message"`
	Code    json.RawMessage `json:"code"`
}

func NewTransport(cfg TransportConfig, events *Dispatcher) *Transport {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if events == nil {
		events = NewDispatcher(logger)
	}
	dialer := cfg.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}
	callTimeout := cfg.CallTimeout
	if callTimeout <= 0 {
		callTimeout = defaultCallTimeout
	}

	return &Transport{
		url:         strings.TrimRight(cfg.URL, "/"),
		callTimeout: callTimeout,
		dialer:      dialer,
		logger:      logger,
		events:      events,
		pending:     map[string]*pendingRequest{},
	}
}

func (t *Transport) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Pending reports the number of outstanding requests.
func (t *Transport) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending)
}

// Connect dials transactorURL/token and returns once the connection is open.
// A closed transport may be connected again; nothing reconnects on its own.
func (t *Transport) Connect(ctx context.Context, token string) error {
	if t.url == "" {
		return fmt.Errorf("%w: transactor url is required", domain.ErrState)
	}
	if token == "" {
		return fmt.Errorf("connect transactor: %w", domain.ErrNotLoggedIn)
	}

	t.mu.Lock()
	if t.state == StateConnecting || t.state == StateConnected {
		state := t.state
		t.mu.Unlock()
		return fmt.Errorf("%w: transport is %s", domain.ErrState, state)
	}
	t.state = StateConnecting
	t.mu.Unlock()

	conn, resp, err := t.dialer.DialContext(ctx, t.url+"/"+token, http.Header{})
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		t.mu.Lock()
		t.state = StateDisconnected
		t.mu.Unlock()
		if resp != nil {
			err = fmt.Errorf("%w (status %d)", err, resp.StatusCode)
		}
		return &domain.TransportError{Op: "connect", Err: err}
	}
	conn.SetReadLimit(maxInboundBytes)

	t.mu.Lock()
	if t.state != StateConnecting {
		// Disconnect ran while dialing.
		t.mu.Unlock()
		_ = conn.Close()
		return &domain.TransportError{Op: "connect", Err: fmt.Errorf("disconnected while dialing")}
	}
	t.conn = conn
	t.state = StateConnected
	t.mu.Unlock()

	t.logger.Info("connected to transactor", "url", t.url)

	queue := newEventQueue()
	go queue.deliver(t.events)
	go t.readLoop(conn, queue)
	return nil
}

// Disconnect closes the connection if open. It is safe to call from any
// state and more than once.
func (t *Transport) Disconnect() {
	t.mu.Lock()
	conn := t.conn
	t.conn = nil
	if t.state != StateDisconnected {
		t.state = StateClosed
	}
	t.mu.Unlock()

	if conn == nil {
		return
	}

	t.writeMu.Lock()
	_ = conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	t.writeMu.Unlock()
	_ = conn.Close()
}

// Call sends {id, method, params} and waits for the response carrying the
// same id. Responses may arrive in any order.
func (t *Transport) Call(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	if params == nil {
		params = []any{}
	}

	id := fmt.Sprintf("req-%d", t.seq.Add(1))
	payload, err := json.Marshal(rpcRequest{ID: id, Method: method, Params: params})
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", method, err)
	}

	request := &pendingRequest{method: method, outcome: make(chan callOutcome, 1)}

	t.mu.Lock()
	conn := t.conn
	if conn == nil || t.state != StateConnected {
		t.mu.Unlock()
		return nil, fmt.Errorf("call %s: %w", method, domain.ErrNotConnected)
	}
	t.pending[id] = request
	t.mu.Unlock()

	if err := t.write(conn, payload); err != nil {
		t.forget(id)
		return nil, &domain.TransportError{Op: method, Err: err}
	}

	timer := time.NewTimer(t.callTimeout)
	defer timer.Stop()

	select {
	case outcome := <-request.outcome:
		return outcome.result, outcome.err
	case <-timer.C:
		if t.forget(id) {
			return nil, &domain.TimeoutError{Method: method, ID: id}
		}
	case <-ctx.Done():
		if t.forget(id) {
			return nil, ctx.Err()
		}
	}

	// The reader removed the request first; its outcome is already buffered.
	outcome := <-request.outcome
	return outcome.result, outcome.err
}

// FindAll queries documents of class. An absent value field is treated as an
// empty result.
func (t *Transport) FindAll(ctx context.Context, class string, query map[string]any) ([]json.RawMessage, error) {
	if query == nil {
		query = map[string]any{}
	}

	result, err := t.Call(ctx, "findAll", class, query)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Value *[]json.RawMessage `json:"value"`
	}
	if isPresent(result) {
		if err := json.Unmarshal(result, &envelope); err != nil {
			return nil, fmt.Errorf("decode findAll %s result: %w", class, &domain.ParseError{Payload: result, Err: err})
		}
	}
	if envelope.Value == nil {
		t.logger.Debug("findAll result has no value field", "class", class)
		return []json.RawMessage{}, nil
	}
	if len(*envelope.Value) == 0 {
		t.logger.Debug("findAll returned no documents", "class", class)
		return []json.RawMessage{}, nil
	}

	return *envelope.Value, nil
}

func (t *Transport) write(conn *websocket.Conn, payload []byte) error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	if err := conn.SetWriteDeadline(time.Now().Add(defaultWriteTimeout)); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}

// forget removes a pending request and reports whether it was still there.
func (t *Transport) forget(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.pending[id]; !ok {
		return false
	}
	delete(t.pending, id)
	return true
}

func (t *Transport) take(id string) (*pendingRequest, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	request, ok := t.pending[id]
	if ok {
		delete(t.pending, id)
	}
	return request, ok
}

func (t *Transport) readLoop(conn *websocket.Conn, queue *eventQueue) {
	defer queue.close()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.closed(conn, err)
			return
		}
		t.handleMessage(data, queue)
	}
}

// closed records an asynchronous close. Outstanding requests are left to
// their own timeouts.
func (t *Transport) closed(conn *websocket.Conn, cause error) {
	t.mu.Lock()
	current := t.conn == conn
	if current {
		t.conn = nil
		t.state = StateClosed
	}
	outstanding := len(t.pending)
	t.mu.Unlock()

	if !current {
		return
	}
	_ = conn.Close()

	if websocket.IsCloseError(cause, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		t.logger.Info("transactor connection closed", "pending", outstanding)
		return
	}
	t.logger.Warn("transactor connection lost",
		"error", &domain.TransportError{Op: "read", Err: cause},
		"pending", outstanding,
	)
}

func (t *Transport) handleMessage(data []byte, queue *eventQueue) {
	var message inboundMessage
	if err := json.Unmarshal(data, &message); err != nil {
		t.logger.Warn("dropping inbound message", "error", &domain.ParseError{Payload: data, Err: err})
		return
	}

	id := decodeID(message.ID)
	if id != "" {
		if request, ok := t.take(id); ok {
			request.outcome <- settle(request.method, message)
			return
		}
	}

	event, hasEvent := eventName(message.Event)
	switch {
	case hasEvent:
		queue.push(event, message.Data)
	case isArray(message.Result):
		var txes []json.RawMessage
		if err := json.Unmarshal(message.Result, &txes); err != nil {
			t.logger.Warn("dropping pushed transactions", "error", &domain.ParseError{Payload: message.Result, Err: err})
			return
		}
		for _, tx := range txes {
			queue.push(EventTx, tx)
		}
	case isPing(message.Result):
	case id != "":
		t.logger.Warn("unmatched response", "id", id, "payload", excerpt(data))
	default:
		t.logger.Warn("unrecognized inbound message", "payload", excerpt(data))
	}
}

func settle(method string, message inboundMessage) callOutcome {
	if !isPresent(message.Error) {
		return callOutcome{result: message.Result}
	}

	rpcErr := &domain.RPCError{Method: method}
	var body rpcErrorBody
	if err := json.Unmarshal(message.Error, &body); err == nil {
		rpcErr.Message = body.Message
		rpcErr.Code = body.Code
	} else {
		var text string
		if json.Unmarshal(message.Error, &text) == nil {
			rpcErr.Message = text
		}
	}
	if rpcErr.Message == "" {
		rpcErr.Message = string(message.Error)
	}
	return callOutcome{err: rpcErr}
}

func decodeID(raw json.RawMessage) string {
	if !isPresent(raw) {
		return ""
	}
	var id string
	if err := json.Unmarshal(raw, &id); err == nil {
		return id
	}
	return string(bytes.TrimSpace(raw))
}

// eventName reports the event of a pushed message. A non-string event is not
// an event.
func eventName(raw json.RawMessage) (string, bool) {
	if !isPresent(raw) {
		return "", false
	}
	var name string
	if err := json.Unmarshal(raw, &name); err != nil {
		return "", false
	}
	return name, true
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

func isPing(raw json.RawMessage) bool {
	var text string
	return json.Unmarshal(raw, &text) == nil && text == "ping"
}

func excerpt(data []byte) string {
	if len(data) > 200 {
		return string(data[:200]) + "..."
	}
	return string(data)
}
