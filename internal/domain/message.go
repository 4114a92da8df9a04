package domain

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is the subset of a chunter chat message the agent reads.
// Message holds the serialized rich-text document.
type ChatMessage struct {
	ID          string `json:"_id"`
	Message     string `json:"message"`
	AttachedTo  string `json:"attachedTo,omitempty"`
	CreatedBy   string `json:"createdBy,omitempty"`
	ModifiedBy  string `json:"modifiedBy,omitempty"`
	CreatedOn   int64  `json:"createdOn,omitempty"`
	ModifiedOn  int64  `json:"modifiedOn,omitempty"`
	ObjectSpace string `json:"space,omitempty"`
}

// AuthoredBy reports whether any of the given identities wrote the message.
func (m ChatMessage) AuthoredBy(ids ...string) bool {
	for _, id := range ids {
		if id == "" {
			continue
		}
		if m.CreatedBy == id || (m.CreatedBy == "" && m.ModifiedBy == id) {
			return true
		}
	}
	return false
}

// ChatTurn is one entry of an LLM conversation.
type ChatTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// MaxConversationTurns caps the stored history of one conversation.
const MaxConversationTurns = 20
