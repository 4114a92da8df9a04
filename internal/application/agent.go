package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/bnema/huly-agent/internal/domain"
	"github.com/bnema/huly-agent/internal/ports"
)

const (
	maxRecentActivity = 20
	txBacklog         = 64
)

var errRateLimited = errors.New("action rate limit reached")

// Agent polls the workspace chat and answers through the language model.
type Agent struct {
	cfg        AgentConfig
	platform   ports.Platform
	auth       *AuthService
	classifier *Classifier
	history    ports.ConversationStore
	state      ports.StateRepository
	clock      ports.Clock
	logger     *slog.Logger
	limiter    *rate.Limiter
	runID      string

	txEvents chan json.RawMessage

	mu        sync.Mutex
	cursor    domain.AgentState
	workspace string
	activity  []string
}

type AgentDeps struct {
	Platform     ports.Platform
	Auth         *AuthService
	Completer    ports.Completer
	Conversation ports.ConversationStore
	State        ports.StateRepository
	Clock        ports.Clock
	Logger       *slog.Logger
}

func NewAgent(cfg AgentConfig, deps AgentDeps) *Agent {
	cfg = cfg.withDefaults()

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clock := deps.Clock
	if clock == nil {
		clock = ports.SystemClock{}
	}
	auth := deps.Auth
	if auth == nil {
		auth = NewAuthService(deps.Platform, nil, logger)
	}

	runID := uuid.NewString()
	perMinute := rate.Every(time.Minute / time.Duration(cfg.MaxActionsPerMinute))

	return &Agent{
		cfg:        cfg,
		platform:   deps.Platform,
		auth:       auth,
		classifier: NewClassifier(deps.Completer),
		history:    deps.Conversation,
		state:      deps.State,
		clock:      clock,
		logger:     logger.With("run", runID),
		limiter:    rate.NewLimiter(perMinute, cfg.MaxActionsPerMinute),
		runID:      runID,
		txEvents:   make(chan json.RawMessage, txBacklog),
	}
}

func (a *Agent) RunID() string {
	return a.runID
}

// Start authenticates, connects and positions the message cursor so that
// messages already in the channel are not answered.
func (a *Agent) Start(ctx context.Context) error {
	a.logger.Info("starting agent", "bot", a.cfg.BotName)

	if a.classifier.Available(ctx) {
		a.logger.Info("language model endpoint reachable")
	} else {
		a.logger.Warn("language model endpoint unavailable, replies will fail until it is up")
	}

	result, err := a.auth.Authenticate(ctx, a.cfg.Credentials)
	if err != nil {
		return fmt.Errorf("authenticate: %w", err)
	}

	if err := a.platform.Connect(ctx); err != nil {
		if result.Source != AuthSourceCache {
			return fmt.Errorf("connect: %w", err)
		}
		a.logger.Warn("cached token rejected, logging in again", "error", err)
		if forgetErr := a.auth.Forget(ctx, a.cfg.Credentials.Email, a.cfg.Credentials.WorkspaceID); forgetErr != nil {
			a.logger.Warn("drop cached token", "error", forgetErr)
		}
		if result, err = a.auth.Login(ctx, a.cfg.Credentials); err != nil {
			return fmt.Errorf("authenticate: %w", err)
		}
		if err := a.platform.Connect(ctx); err != nil {
			return fmt.Errorf("connect: %w", err)
		}
	}

	a.mu.Lock()
	a.workspace = result.Session.WorkspaceID
	if a.workspace == "" {
		a.workspace = result.Workspace.ID
	}
	a.mu.Unlock()

	a.platform.On(domain.EventTx, a.enqueueTx)
	a.platform.Subscribe(ctx, func(tx json.RawMessage) {
		a.logger.Debug("transaction received", "tx", truncate(string(tx), 200))
	})

	a.explore(ctx)

	if err := a.initCursor(ctx); err != nil {
		return fmt.Errorf("initialize message cursor: %w", err)
	}

	a.logger.Info("agent running",
		"workspace", a.workspaceID(),
		"interval", a.cfg.ActionInterval,
		"max_actions_per_minute", a.cfg.MaxActionsPerMinute,
	)
	return nil
}

// Run polls until ctx is cancelled. Tick failures are logged and the loop
// continues.
func (a *Agent) Run(ctx context.Context) error {
	defer a.platform.Disconnect()

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return a.poll(groupCtx)
	})
	group.Go(func() error {
		return a.recordActivity(groupCtx)
	})

	err := group.Wait()
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		a.logger.Info("agent stopped")
		return nil
	}
	return err
}

func (a *Agent) poll(ctx context.Context) error {
	ticker := time.NewTicker(a.cfg.ActionInterval)
	defer ticker.Stop()

	for {
		if err := a.Tick(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			a.logger.Error("tick failed", "error", err)
			a.addActivity("error: " + err.Error())
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Tick handles every chat message that arrived since the last tick.
func (a *Agent) Tick(ctx context.Context) error {
	messages, err := a.chatMessages(ctx)
	if err != nil {
		return err
	}

	a.mu.Lock()
	cursor := a.cursor
	a.mu.Unlock()

	start := resumeIndex(messages, cursor)
	if start >= len(messages) {
		return nil
	}
	a.logger.Info("new messages", "count", len(messages)-start)

	session := a.platform.Session()
	processed := start
	for _, message := range messages[start:] {
		if message.AuthoredBy(session.AccountID, a.cfg.Credentials.IdentityHint) {
			a.logger.Debug("skipping own message", "id", message.ID)
			processed++
			continue
		}

		err := a.handleMessage(ctx, message)
		if errors.Is(err, errRateLimited) {
			a.logger.Warn("rate limit reached, deferring remaining messages", "pending", len(messages)-processed)
			break
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			a.logger.Error("handle message", "id", message.ID, "error", err)
		}
		processed++
	}

	if processed == start {
		return nil
	}
	return a.advanceCursor(ctx, processed, messages[processed-1].ID)
}

func (a *Agent) handleMessage(ctx context.Context, message domain.ChatMessage) error {
	text := domain.PlainText(message.Message)
	if text == "" {
		return nil
	}
	a.logger.Info("message from others", "id", message.ID, "text", truncate(text, 100))

	respond, err := a.classifier.ShouldRespond(ctx, a.cfg.BotName, text)
	if err != nil {
		a.logger.Warn("respond check failed", "error", err)
		return nil
	}
	if !respond {
		return nil
	}

	if !a.limiter.Allow() {
		return errRateLimited
	}

	intent, err := a.classifier.DetectIntent(ctx, text)
	if err != nil {
		a.logger.Warn("intent detection failed, treating as chat", "error", err)
	}

	channel := message.AttachedTo
	if channel == "" {
		channel = a.cfg.Channel
	}

	if intent.Kind == domain.IntentCreateIssue {
		return a.fileIssue(ctx, channel, intent.Draft())
	}
	return a.reply(ctx, channel, text)
}

func (a *Agent) reply(ctx context.Context, channel, text string) error {
	history, err := a.history.Load(ctx, channel)
	if err != nil {
		a.logger.Warn("load conversation", "channel", channel, "error", err)
		history = nil
	}

	answer, err := a.classifier.Reply(ctx, a.cfg.SystemPrompt, history, text)
	if err != nil {
		return err
	}
	if strings.TrimSpace(answer) == "" {
		a.logger.Warn("model returned an empty reply", "channel", channel)
		return nil
	}

	if _, err := a.platform.SendChatMessage(ctx, channel, answer); err != nil {
		return fmt.Errorf("send reply: %w", err)
	}
	a.addActivity("replied in " + channel)

	if err := a.history.Append(ctx, channel,
		domain.ChatTurn{Role: domain.RoleUser, Content: text},
		domain.ChatTurn{Role: domain.RoleAssistant, Content: answer},
	); err != nil {
		a.logger.Warn("save conversation", "channel", channel, "error", err)
	}
	return nil
}

func (a *Agent) fileIssue(ctx context.Context, channel string, draft domain.IssueDraft) error {
	issueID, err := a.CreateIssue(ctx, draft)
	if err != nil {
		a.logger.Error("create issue", "title", draft.Title, "error", err)
		if _, sendErr := a.platform.SendChatMessage(ctx, channel, fmt.Sprintf("I could not create the issue %q.", draft.Title)); sendErr != nil {
			return errors.Join(err, fmt.Errorf("send failure notice: %w", sendErr))
		}
		return nil
	}

	a.addActivity("created issue " + issueID)
	ack := fmt.Sprintf("Created issue %q with %s priority.", draft.Title, draft.Priority)
	if _, err := a.platform.SendChatMessage(ctx, channel, ack); err != nil {
		return fmt.Errorf("send issue confirmation: %w", err)
	}
	return nil
}

type trackerProject struct {
	ID                 string `json:"_id"`
	Identifier         string `json:"identifier"`
	DefaultIssueStatus string `json:"defaultIssueStatus"`
}

// CreateIssue files draft in the first tracker project of the workspace.
func (a *Agent) CreateIssue(ctx context.Context, draft domain.IssueDraft) (string, error) {
	docs, err := a.platform.FindAll(ctx, domain.ClassProject, map[string]any{})
	if err != nil {
		return "", fmt.Errorf("find tracker projects: %w", err)
	}
	if len(docs) == 0 {
		return "", errors.New("workspace has no tracker project")
	}

	var project trackerProject
	if err := json.Unmarshal(docs[0], &project); err != nil {
		return "", fmt.Errorf("decode tracker project: %w", &domain.ParseError{Payload: docs[0], Err: err})
	}
	if project.ID == "" {
		return "", errors.New("tracker project has no id")
	}

	attributes := map[string]any{
		"title":         draft.Title,
		"description":   draft.Description,
		"priority":      int(draft.Priority),
		"assignee":      nil,
		"component":     nil,
		"milestone":     nil,
		"dueDate":       nil,
		"estimation":    0,
		"remainingTime": 0,
		"reportedTime":  0,
		"reports":       0,
		"subIssues":     0,
		"parents":       []any{},
		"childInfo":     []any{},
		"comments":      0,
		"labels":        0,
	}
	if project.DefaultIssueStatus != "" {
		attributes["status"] = project.DefaultIssueStatus
	}

	issueID, err := a.platform.CreateDoc(ctx, domain.ClassIssue, project.ID, attributes)
	if err != nil {
		return "", fmt.Errorf("create issue: %w", err)
	}
	a.logger.Info("issue created", "id", issueID, "project", project.ID, "priority", draft.Priority.String())
	return issueID, nil
}

func (a *Agent) chatMessages(ctx context.Context) ([]domain.ChatMessage, error) {
	docs, err := a.platform.FindAll(ctx, domain.ClassChatMessage, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("find chat messages: %w", err)
	}

	messages := make([]domain.ChatMessage, 0, len(docs))
	for _, doc := range docs {
		var message domain.ChatMessage
		if err := json.Unmarshal(doc, &message); err != nil {
			a.logger.Warn("skipping undecodable chat message", "error", &domain.ParseError{Payload: doc, Err: err})
			continue
		}
		messages = append(messages, message)
	}

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedOn < messages[j].CreatedOn
	})
	return messages, nil
}

// resumeIndex returns the index of the first unhandled message. The last
// handled id wins over the stored count when it is still present.
func resumeIndex(messages []domain.ChatMessage, cursor domain.AgentState) int {
	if cursor.LastMessageID != "" {
		for i := len(messages) - 1; i >= 0; i-- {
			if messages[i].ID == cursor.LastMessageID {
				return i + 1
			}
		}
	}
	return min(cursor.SeenMessages, len(messages))
}

func (a *Agent) initCursor(ctx context.Context) error {
	workspace := a.workspaceID()

	if a.state != nil && workspace != "" {
		stored, err := a.state.Get(ctx, workspace)
		switch {
		case err == nil:
			a.mu.Lock()
			a.cursor = stored
			a.mu.Unlock()
			a.logger.Info("resuming from saved position", "seen", stored.SeenMessages, "last", stored.LastMessageID)
			return nil
		case !errors.Is(err, domain.ErrStateNotFound):
			a.logger.Warn("read agent state", "error", err)
		}
	}

	messages, err := a.chatMessages(ctx)
	if err != nil {
		return err
	}
	lastID := ""
	if len(messages) > 0 {
		lastID = messages[len(messages)-1].ID
	}
	a.logger.Info("ignoring existing messages", "count", len(messages))
	return a.advanceCursor(ctx, len(messages), lastID)
}

func (a *Agent) advanceCursor(ctx context.Context, seen int, lastID string) error {
	a.mu.Lock()
	a.cursor = domain.AgentState{
		WorkspaceID:   a.workspace,
		SeenMessages:  seen,
		LastMessageID: lastID,
		UpdatedAt:     a.clock.Now(),
	}
	cursor := a.cursor
	a.mu.Unlock()

	if a.state == nil || cursor.WorkspaceID == "" {
		return nil
	}
	if err := a.state.Save(ctx, cursor); err != nil {
		return fmt.Errorf("save agent state: %w", err)
	}
	return nil
}

func (a *Agent) Cursor() domain.AgentState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cursor
}

func (a *Agent) workspaceID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.workspace
}

func (a *Agent) explore(ctx context.Context) {
	for _, class := range domain.ExploreClasses {
		docs, err := a.platform.FindAll(ctx, class, map[string]any{})
		if err != nil {
			a.logger.Warn("could not query class", "class", class, "error", err)
			continue
		}
		a.logger.Info("explored class", "class", class, "count", len(docs))
		a.addActivity(fmt.Sprintf("explored %s: %d items", class, len(docs)))
	}
}

func (a *Agent) enqueueTx(tx json.RawMessage) {
	select {
	case a.txEvents <- tx:
	default:
		a.logger.Debug("transaction backlog full, dropping event")
	}
}

func (a *Agent) recordActivity(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case tx := <-a.txEvents:
			a.addActivity("event: " + truncate(string(tx), 100))
		}
	}
}

func (a *Agent) addActivity(entry string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.activity = append(a.activity, a.clock.Now().UTC().Format(time.RFC3339)+" "+entry)
	if len(a.activity) > maxRecentActivity {
		a.activity = append([]string(nil), a.activity[len(a.activity)-maxRecentActivity:]...)
	}
}

// RecentActivity returns the latest activity entries, oldest first.
func (a *Agent) RecentActivity() []string {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]string, len(a.activity))
	copy(out, a.activity)
	return out
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
