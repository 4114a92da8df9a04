package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrAuth      = errors.New("authentication failed")
	ErrRPC       = errors.New("rpc error")
	ErrTimeout   = errors.New("request timed out")
	ErrTransport = errors.New("transport error")
	ErrState     = errors.New("invalid client state")
	ErrParse     = errors.New("malformed payload")

	ErrNotLoggedIn    = fmt.Errorf("%w: not logged in", ErrState)
	ErrNotConnected   = fmt.Errorf("%w: not connected to transactor", ErrState)
	ErrNoWorkspaces   = errors.New("no workspaces available")
	ErrStateNotFound  = errors.New("agent state not found")
	ErrSecretNotFound = errors.New("secret not found")
)

// AuthError is returned when the account service rejects a call. Payload
// holds the raw server error for diagnostics and is never interpreted.
type AuthError struct {
	Method  string
	Payload json.RawMessage
}

func (e *AuthError) Error() string {
	if len(e.Payload) == 0 {
		return fmt.Sprintf("account %s failed: no result received", e.Method)
	}
	return fmt.Sprintf("account %s failed: %s", e.Method, string(e.Payload))
}

func (e *AuthError) Is(target error) bool {
	return target == ErrAuth
}

// RPCError is an explicit error answer from the transactor to a correlated
// request.
type RPCError struct {
	Method  string
	Message string
	Code    json.RawMessage
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc %s: %s", e.Method, e.Message)
}

func (e *RPCError) Is(target error) bool {
	return target == ErrRPC
}

type TimeoutError struct {
	Method string
	ID     string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request %s (%s) timed out", e.Method, e.ID)
}

func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

// TransportError wraps a connection-level failure.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// ParseError describes an inbound payload that could not be decoded. It is
// logged by the transport and never returned to callers.
type ParseError struct {
	Payload []byte
	Err     error
}

func (e *ParseError) Error() string {
	excerpt := e.Payload
	if len(excerpt) > 120 {
		excerpt = excerpt[:120]
	}
	return fmt.Sprintf("parse inbound message %q: %v", excerpt, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
