package application

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/bnema/huly-agent/internal/domain"
	"github.com/bnema/huly-agent/internal/ports"
)

const DefaultSystemPrompt = "You are a helpful assistant taking part in a team chat. " +
	"Reply in plain text only, without JSON, markdown or code blocks. Keep replies short."

const respondPrompt = `You are %s, a bot in a team chat that can answer questions and create tracker issues.
Decide whether you should reply to the next message.
Reply YES when someone asks a question, needs help, greets the chat, mentions you, or asks you to create or do something.
Reply NO for private conversations between others, bare acknowledgements, and system notifications.
When in doubt, reply YES.
Answer with just YES or NO.`

const intentPrompt = `You detect intents for a project management bot that can create issues.
If the user wants to create an issue, task, bug or ticket, the intent is create_issue. Otherwise it is chat.
For create_issue extract issueTitle (short, required), issueDescription (optional) and issuePriority (Urgent, High, Medium or Low; default Medium).
Respond with JSON only, either
{"type": "chat"}
or
{"type": "create_issue", "issueTitle": "...", "issueDescription": "...", "issuePriority": "Medium"}`

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// Classifier asks the language model to triage and answer chat messages.
type Classifier struct {
	completer ports.Completer
}

func NewClassifier(completer ports.Completer) *Classifier {
	return &Classifier{completer: completer}
}

func (c *Classifier) Available(ctx context.Context) bool {
	return c.completer.Available(ctx)
}

func (c *Classifier) ShouldRespond(ctx context.Context, botName, text string) (bool, error) {
	answer, err := c.completer.Complete(ctx, ports.CompletionRequest{
		Messages: []domain.ChatTurn{
			{Role: domain.RoleSystem, Content: fmt.Sprintf(respondPrompt, botName)},
			{Role: domain.RoleUser, Content: text},
		},
		Temperature: 0.3,
		MaxTokens:   10,
	})
	if err != nil {
		return false, fmt.Errorf("classify message: %w", err)
	}

	return strings.Contains(strings.ToUpper(answer), "YES"), nil
}

type intentPayload struct {
	Type             string `json:"type"`
	IssueTitle       string `json:"issueTitle"`
	IssueDescription string `json:"issueDescription"`
	IssuePriority    string `json:"issuePriority"`
}

// DetectIntent falls back to a chat intent when the model answer holds no
// usable JSON.
func (c *Classifier) DetectIntent(ctx context.Context, text string) (domain.Intent, error) {
	answer, err := c.completer.Complete(ctx, ports.CompletionRequest{
		Messages: []domain.ChatTurn{
			{Role: domain.RoleSystem, Content: intentPrompt},
			{Role: domain.RoleUser, Content: text},
		},
		Temperature: 0.1,
		MaxTokens:   200,
	})
	if err != nil {
		return domain.Intent{Kind: domain.IntentChat}, fmt.Errorf("detect intent: %w", err)
	}

	return parseIntent(answer), nil
}

func parseIntent(answer string) domain.Intent {
	match := jsonObjectPattern.FindString(answer)
	if match == "" {
		return domain.Intent{Kind: domain.IntentChat}
	}

	var payload intentPayload
	if err := json.Unmarshal([]byte(match), &payload); err != nil {
		return domain.Intent{Kind: domain.IntentChat}
	}

	if domain.IntentKind(strings.ToLower(strings.TrimSpace(payload.Type))) != domain.IntentCreateIssue {
		return domain.Intent{Kind: domain.IntentChat}
	}

	title := strings.TrimSpace(payload.IssueTitle)
	if title == "" {
		title = "New issue"
	}
	return domain.Intent{
		Kind:        domain.IntentCreateIssue,
		Title:       title,
		Description: strings.TrimSpace(payload.IssueDescription),
		Priority:    domain.ParseIssuePriority(payload.IssuePriority),
	}
}

// Reply answers text given the stored conversation. Long histories are cut
// down to the latest turns.
func (c *Classifier) Reply(ctx context.Context, systemPrompt string, history []domain.ChatTurn, text string) (string, error) {
	if len(history) >= domain.MaxConversationTurns {
		history = history[len(history)-domain.MaxConversationTurns/2:]
	}

	messages := make([]domain.ChatTurn, 0, len(history)+2)
	messages = append(messages, domain.ChatTurn{Role: domain.RoleSystem, Content: systemPrompt})
	messages = append(messages, history...)
	messages = append(messages, domain.ChatTurn{Role: domain.RoleUser, Content: text})

	answer, err := c.completer.Complete(ctx, ports.CompletionRequest{
		Messages:    messages,
		Temperature: 0.8,
		MaxTokens:   500,
	})
	if err != nil {
		return "", fmt.Errorf("generate reply: %w", err)
	}

	return cleanReply(answer), nil
}

// cleanReply unwraps answers where the model ignored the plain text
// instruction and returned a JSON object anyway.
func cleanReply(answer string) string {
	answer = strings.TrimSpace(answer)
	match := jsonObjectPattern.FindString(answer)
	if match == "" {
		return answer
	}

	var wrapped struct {
		Content     string `json:"content"`
		Description string `json:"description"`
		Reason      string `json:"reason"`
	}
	if err := json.Unmarshal([]byte(match), &wrapped); err != nil {
		return answer
	}
	for _, candidate := range []string{wrapped.Content, wrapped.Description, wrapped.Reason} {
		if strings.TrimSpace(candidate) != "" {
			return strings.TrimSpace(candidate)
		}
	}
	return answer
}
