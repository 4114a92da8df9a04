package huly

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func signedToken(t *testing.T, claims gojwt.MapClaims) string {
	t.Helper()

	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func rawToken(payload string) string {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"typ":"JWT"}`))
	return header + "." + base64.RawURLEncoding.EncodeToString([]byte(payload)) + ".sig"
}

type serverRequest struct {
	ID     string            `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

// fakeTransactor is a websocket server speaking the transactor protocol.
// handle runs on the server's read goroutine for every decoded request.
type fakeTransactor struct {
	t        *testing.T
	server   *httptest.Server
	handle   func(f *fakeTransactor, req serverRequest)
	requests chan serverRequest
	paths    chan string

	mu   sync.Mutex
	conn *websocket.Conn
}

func newFakeTransactor(t *testing.T, handle func(f *fakeTransactor, req serverRequest)) *fakeTransactor {
	t.Helper()

	f := &fakeTransactor{
		t:        t,
		handle:   handle,
		requests: make(chan serverRequest, 64),
		paths:    make(chan string, 8),
	}
	upgrader := websocket.Upgrader{}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		f.mu.Lock()
		f.conn = conn
		f.mu.Unlock()
		f.paths <- r.URL.Path

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var req serverRequest
			if err := json.Unmarshal(data, &req); err != nil {
				continue
			}
			select {
			case f.requests <- req:
			default:
			}
			if f.handle != nil {
				f.handle(f, req)
			}
		}
	}))
	t.Cleanup(f.server.Close)

	return f
}

func (f *fakeTransactor) URL() string {
	return "ws" + strings.TrimPrefix(f.server.URL, "http")
}

func (f *fakeTransactor) send(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		f.t.Errorf("encode server message: %v", err)
		return
	}
	f.sendRaw(data)
}

func (f *fakeTransactor) sendRaw(data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.conn == nil {
		f.t.Error("transactor has no client connection")
		return
	}
	_ = f.conn.WriteMessage(websocket.TextMessage, data)
}

func (f *fakeTransactor) closeConn() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.conn != nil {
		_ = f.conn.Close()
	}
}

func (f *fakeTransactor) nextRequest(t *testing.T) serverRequest {
	t.Helper()

	select {
	case req := <-f.requests:
		return req
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for transactor request")
		return serverRequest{}
	}
}

// respondWith answers every request with the same result.
func respondWith(result any) func(f *fakeTransactor, req serverRequest) {
	return func(f *fakeTransactor, req serverRequest) {
		f.send(map[string]any{"id": req.ID, "result": result})
	}
}

func connectedTransport(t *testing.T, f *fakeTransactor, events *Dispatcher, callTimeout time.Duration) *Transport {
	t.Helper()

	transport := NewTransport(TransportConfig{
		URL:         f.URL(),
		CallTimeout: callTimeout,
		Logger:      discardLogger(),
	}, events)
	require.NoError(t, transport.Connect(t.Context(), "token-1"))
	t.Cleanup(transport.Disconnect)
	return transport
}
