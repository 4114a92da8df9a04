package domain

// Session is the authentication context shared by the account and
// transactor clients. Every field may be empty.
type Session struct {
	Token       string
	WorkspaceID string
	// AccountID is the author stamped on outgoing transactions. When empty,
	// writes omit the author fields.
	AccountID string
}

func (s Session) LoggedIn() bool {
	return s.Token != ""
}

type Workspace struct {
	ID   string `json:"workspaceId"`
	Name string `json:"workspaceName"`
	URL  string `json:"workspaceUrl"`
}

// DisplayName returns the workspace name, falling back to its id.
func (w Workspace) DisplayName() string {
	if w.Name != "" {
		return w.Name
	}
	return w.ID
}
