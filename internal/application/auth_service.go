package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bnema/huly-agent/internal/domain"
	"github.com/bnema/huly-agent/internal/ports"
)

// TokenSecretKey is the secret store key of a cached workspace token.
func TokenSecretKey(email, workspaceID string) string {
	return fmt.Sprintf("huly/%s/%s/token", strings.ToLower(strings.TrimSpace(email)), workspaceID)
}

// AuthService turns credentials into an authenticated platform session.
type AuthService struct {
	platform ports.Platform
	secrets  ports.SecretStore
	logger   *slog.Logger
}

// NewAuthService builds the service. secrets may be nil, which disables the
// token cache.
func NewAuthService(platform ports.Platform, secrets ports.SecretStore, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{platform: platform, secrets: secrets, logger: logger}
}

// Authenticate prefers an explicit token, then a cached workspace token, then
// the login flow.
func (s *AuthService) Authenticate(ctx context.Context, creds Credentials) (AuthResult, error) {
	if creds.Token != "" {
		s.platform.SetToken(creds.Token, creds.WorkspaceID, creds.IdentityHint)
		s.logger.Info("using pre-generated token", "workspace", creds.WorkspaceID)
		return AuthResult{
			Source:    AuthSourceToken,
			Session:   s.platform.Session(),
			Workspace: domain.Workspace{ID: creds.WorkspaceID},
		}, nil
	}

	if cached, ok := s.cachedToken(ctx, creds); ok {
		s.platform.SetToken(cached, creds.WorkspaceID, creds.IdentityHint)
		s.logger.Info("using cached workspace token", "workspace", creds.WorkspaceID)
		return AuthResult{
			Source:    AuthSourceCache,
			Session:   s.platform.Session(),
			Workspace: domain.Workspace{ID: creds.WorkspaceID},
		}, nil
	}

	return s.Login(ctx, creds)
}

// Login always goes through the account service and refreshes the cached
// token.
func (s *AuthService) Login(ctx context.Context, creds Credentials) (AuthResult, error) {
	source, err := s.signIn(ctx, creds)
	if err != nil {
		return AuthResult{}, err
	}

	workspaces, err := s.platform.Workspaces(ctx)
	if err != nil {
		return AuthResult{}, fmt.Errorf("list workspaces: %w", err)
	}
	s.logger.Info("workspaces found", "count", len(workspaces))

	workspace, err := chooseWorkspace(workspaces, creds.WorkspaceID)
	if err != nil {
		if errors.Is(err, domain.ErrNoWorkspaces) {
			s.logger.Warn("bot needs to be invited to a workspace", "email", creds.Email)
		}
		return AuthResult{}, err
	}

	token, err := s.platform.SelectWorkspace(ctx, workspace.ID)
	if err != nil {
		return AuthResult{}, fmt.Errorf("select workspace %s: %w", workspace.DisplayName(), err)
	}
	if creds.IdentityHint != "" {
		s.platform.SetToken(token, workspace.ID, creds.IdentityHint)
	}

	s.storeToken(ctx, creds.Email, workspace.ID, token)

	return AuthResult{
		Source:    source,
		Session:   s.platform.Session(),
		Workspace: workspace,
	}, nil
}

// Workspaces signs in without selecting a workspace and lists the ones the
// account can access.
func (s *AuthService) Workspaces(ctx context.Context, creds Credentials) ([]domain.Workspace, error) {
	if creds.Token != "" && !creds.HasPassword() {
		s.platform.SetToken(creds.Token, creds.WorkspaceID, creds.IdentityHint)
	} else if _, err := s.signIn(ctx, creds); err != nil {
		return nil, err
	}

	workspaces, err := s.platform.Workspaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	return workspaces, nil
}

// Join accepts an invite and returns the workspaces available afterwards.
func (s *AuthService) Join(ctx context.Context, creds Credentials, inviteID string) ([]domain.Workspace, error) {
	if _, err := s.signIn(ctx, creds); err != nil {
		return nil, err
	}

	if err := s.platform.Join(ctx, inviteID); err != nil {
		return nil, fmt.Errorf("join workspace: %w", err)
	}
	s.logger.Info("invite accepted", "invite", inviteID)

	workspaces, err := s.platform.Workspaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	return workspaces, nil
}

// Forget removes the cached token for the given workspace.
func (s *AuthService) Forget(ctx context.Context, email, workspaceID string) error {
	if s.secrets == nil || email == "" || workspaceID == "" {
		return nil
	}
	if err := s.secrets.Delete(ctx, TokenSecretKey(email, workspaceID)); err != nil {
		return fmt.Errorf("delete cached token: %w", err)
	}
	return nil
}

// signIn logs in and falls back to signing up. When both fail the login
// error is returned.
func (s *AuthService) signIn(ctx context.Context, creds Credentials) (AuthSource, error) {
	if !creds.HasPassword() {
		return "", fmt.Errorf("sign in: %w", domain.ErrNotLoggedIn)
	}

	_, loginErr := s.platform.Login(ctx, creds.Email, creds.Password)
	if loginErr == nil {
		return AuthSourceLogin, nil
	}
	if ctx.Err() != nil {
		return "", fmt.Errorf("login: %w", loginErr)
	}

	s.logger.Info("login failed, attempting to create account", "email", creds.Email, "error", loginErr)
	if _, err := s.platform.SignUp(ctx, creds.Email, creds.Password, creds.DisplayName); err != nil {
		s.logger.Error("both login and signup failed", "email", creds.Email, "signup_error", err)
		return "", fmt.Errorf("login: %w", loginErr)
	}

	return AuthSourceSignUp, nil
}

func (s *AuthService) cachedToken(ctx context.Context, creds Credentials) (string, bool) {
	if s.secrets == nil || creds.Email == "" || creds.WorkspaceID == "" {
		return "", false
	}

	token, err := s.secrets.Get(ctx, TokenSecretKey(creds.Email, creds.WorkspaceID))
	if err != nil {
		if !errors.Is(err, domain.ErrSecretNotFound) {
			s.logger.Warn("read cached token", "error", err)
		}
		return "", false
	}
	return token, token != ""
}

func (s *AuthService) storeToken(ctx context.Context, email, workspaceID, token string) {
	if s.secrets == nil || email == "" {
		return
	}
	if err := s.secrets.Put(ctx, TokenSecretKey(email, workspaceID), token); err != nil {
		s.logger.Warn("cache workspace token", "error", err)
	}
}

func chooseWorkspace(workspaces []domain.Workspace, wanted string) (domain.Workspace, error) {
	if len(workspaces) == 0 {
		return domain.Workspace{}, domain.ErrNoWorkspaces
	}
	if wanted == "" {
		return workspaces[0], nil
	}
	for _, workspace := range workspaces {
		if workspace.ID == wanted || workspace.URL == wanted || workspace.Name == wanted {
			return workspace, nil
		}
	}
	return domain.Workspace{}, fmt.Errorf("workspace %q is not available to this account", wanted)
}
