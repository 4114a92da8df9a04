package application

import "github.com/bnema/huly-agent/internal/domain"

type AuthSource string

const (
	AuthSourceToken  AuthSource = "token"
	AuthSourceCache  AuthSource = "cache"
	AuthSourceLogin  AuthSource = "login"
	AuthSourceSignUp AuthSource = "signup"
)

// AuthResult describes the session the platform ended up with.
type AuthResult struct {
	Source    AuthSource
	Session   domain.Session
	Workspace domain.Workspace
}
