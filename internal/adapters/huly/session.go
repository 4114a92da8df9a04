package huly

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/bnema/huly-agent/internal/domain"
)

// SessionStore holds the current token, workspace and account id. It is
// created empty and replaced wholesale by login, signup, workspace selection
// and explicit token injection.
type SessionStore struct {
	mu      sync.RWMutex
	session domain.Session
	// pinned is set when the account id came from an explicit identity hint;
	// later token replacements keep it instead of re-deriving from the token.
	pinned bool
}

func (s *SessionStore) Snapshot() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Token
}

func (s *SessionStore) AccountID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.AccountID
}

// Set injects a token. A non-empty identityHint becomes the account id;
// otherwise the id is decoded from the token and stays empty when that fails.
func (s *SessionStore) Set(token, workspaceID, identityHint string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.Token = token
	if workspaceID != "" {
		s.session.WorkspaceID = workspaceID
	}
	if identityHint != "" {
		s.session.AccountID = identityHint
		s.pinned = true
		return
	}
	s.pinned = false
	s.session.AccountID = deriveAccountID(token)
}

// replace stores a token returned by the account service.
func (s *SessionStore) replace(token, workspaceID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.Token = token
	if workspaceID != "" {
		s.session.WorkspaceID = workspaceID
	}
	if !s.pinned {
		s.session.AccountID = deriveAccountID(token)
	}
}

type accountClaims struct {
	Account   string `json:"account"`
	Workspace string `json:"workspace,omitempty"`
	gojwt.RegisteredClaims
}

func deriveAccountID(token string) string {
	accountID, err := AccountIDFromToken(token)
	if err != nil {
		return ""
	}
	return accountID
}

// AccountIDFromToken reads the "account" claim without verifying the
// signature. Tokens whose header does not parse are still accepted as long
// as the middle segment is a base64url JSON object.
func AccountIDFromToken(token string) (string, error) {
	parser := gojwt.NewParser(gojwt.WithPaddingAllowed())

	claims := &accountClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err == nil {
		if claims.Account == "" {
			return "", errors.New("token has no account claim")
		}
		return claims.Account, nil
	}

	segments := strings.Split(token, ".")
	if len(segments) < 2 {
		return "", errors.New("token is not segmented")
	}

	payload, err := parser.DecodeSegment(segments[1])
	if err != nil {
		return "", fmt.Errorf("decode token payload: %w", err)
	}

	var fallback struct {
		Account string `json:"account"`
	}
	if err := json.Unmarshal(payload, &fallback); err != nil {
		return "", fmt.Errorf("decode token claims: %w", err)
	}
	if fallback.Account == "" {
		return "", errors.New("token has no account claim")
	}

	return fallback.Account, nil
}
