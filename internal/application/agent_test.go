package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/huly-agent/internal/domain"
	"github.com/bnema/huly-agent/internal/ports"
	"github.com/bnema/huly-agent/internal/ports/mocks"
)

var agentNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

type agentFixture struct {
	platform  *mocks.MockPlatform
	completer *mocks.MockCompleter
	history   *mocks.MockConversationStore
	state     *mocks.MockStateRepository
	secrets   *mocks.MockSecretStore
	agent     *Agent
}

func newAgentFixture(t *testing.T, cfg AgentConfig) *agentFixture {
	t.Helper()

	clock := mocks.NewMockClock(t)
	clock.EXPECT().Now().Return(agentNow).Maybe()

	f := &agentFixture{
		platform:  mocks.NewMockPlatform(t),
		completer: mocks.NewMockCompleter(t),
		history:   mocks.NewMockConversationStore(t),
		state:     mocks.NewMockStateRepository(t),
		secrets:   mocks.NewMockSecretStore(t),
	}
	f.agent = NewAgent(cfg, AgentDeps{
		Platform:     f.platform,
		Auth:         NewAuthService(f.platform, f.secrets, discardLogger()),
		Completer:    f.completer,
		Conversation: f.history,
		State:        f.state,
		Clock:        clock,
		Logger:       discardLogger(),
	})
	return f
}

// positioned puts the agent on workspace ws-1 with the given cursor, as
// Start would.
func (f *agentFixture) positioned(cursor domain.AgentState) *agentFixture {
	f.agent.workspace = "ws-1"
	f.agent.cursor = cursor
	return f
}

// answers scripts the model: respond decides the triage answer, intent and
// reply are returned for the later calls.
func (f *agentFixture) answers(respond, intent, reply string) {
	f.completer.EXPECT().Complete(mockAnyContext(), mock.Anything).
		RunAndReturn(func(_ context.Context, request ports.CompletionRequest) (string, error) {
			switch request.MaxTokens {
			case 10:
				return respond, nil
			case 200:
				return intent, nil
			default:
				return reply, nil
			}
		}).Maybe()
}

func chatDoc(t *testing.T, id, author, attachedTo, text string, createdOn int64) json.RawMessage {
	t.Helper()

	markup, err := json.Marshal(domain.TextDocument(text))
	require.NoError(t, err)

	doc, err := json.Marshal(domain.ChatMessage{
		ID:         id,
		Message:    string(markup),
		AttachedTo: attachedTo,
		CreatedBy:  author,
		CreatedOn:  createdOn,
	})
	require.NoError(t, err)
	return doc
}

func TestTickRepliesToOthersAndSkipsOwnMessages(t *testing.T) {
	f := newAgentFixture(t, AgentConfig{}).positioned(domain.AgentState{WorkspaceID: "ws-1"})

	docs := []json.RawMessage{
		chatDoc(t, "m2", "acc-alice", "chan-1", "hello bot", 200),
		chatDoc(t, "m1", "acc-bot", "chan-1", "I am the bot", 100),
	}
	f.platform.EXPECT().FindAll(mockAnyContext(), domain.ClassChatMessage, mock.Anything).Return(docs, nil)
	f.platform.EXPECT().Session().Return(domain.Session{AccountID: "acc-bot"})
	f.answers("YES", `{"type":"chat"}`, "Hi Alice")
	f.history.EXPECT().Load(mockAnyContext(), "chan-1").Return(nil, nil)
	f.platform.EXPECT().SendChatMessage(mockAnyContext(), "chan-1", "Hi Alice").Return(nil, nil)
	f.history.EXPECT().Append(mockAnyContext(), "chan-1",
		domain.ChatTurn{Role: domain.RoleUser, Content: "hello bot"},
		domain.ChatTurn{Role: domain.RoleAssistant, Content: "Hi Alice"},
	).Return(nil)
	f.state.EXPECT().Save(mockAnyContext(), domain.AgentState{
		WorkspaceID:   "ws-1",
		SeenMessages:  2,
		LastMessageID: "m2",
		UpdatedAt:     agentNow,
	}).Return(nil)

	require.NoError(t, f.agent.Tick(context.Background()))
	assert.Equal(t, "m2", f.agent.Cursor().LastMessageID)
}

func TestTickSkipsBlankReply(t *testing.T) {
	f := newAgentFixture(t, AgentConfig{}).positioned(domain.AgentState{WorkspaceID: "ws-1"})

	f.platform.EXPECT().FindAll(mockAnyContext(), domain.ClassChatMessage, mock.Anything).
		Return([]json.RawMessage{chatDoc(t, "m1", "acc-alice", "chan-1", "hello bot", 100)}, nil)
	f.platform.EXPECT().Session().Return(domain.Session{AccountID: "acc-bot"})
	f.answers("YES", `{"type":"chat"}`, "   ")
	f.history.EXPECT().Load(mockAnyContext(), "chan-1").Return(nil, nil)
	f.state.EXPECT().Save(mockAnyContext(), mock.MatchedBy(func(state domain.AgentState) bool {
		return state.LastMessageID == "m1"
	})).Return(nil)

	require.NoError(t, f.agent.Tick(context.Background()))
	f.platform.AssertNotCalled(t, "SendChatMessage", mock.Anything, mock.Anything, mock.Anything)
}

func TestTickWithoutNewMessagesDoesNothing(t *testing.T) {
	f := newAgentFixture(t, AgentConfig{}).positioned(domain.AgentState{WorkspaceID: "ws-1", SeenMessages: 1, LastMessageID: "m1"})

	f.platform.EXPECT().FindAll(mockAnyContext(), domain.ClassChatMessage, mock.Anything).
		Return([]json.RawMessage{chatDoc(t, "m1", "acc-alice", "", "old", 100)}, nil)

	require.NoError(t, f.agent.Tick(context.Background()))
}

func TestTickIgnoresMessagesTheModelDeclines(t *testing.T) {
	f := newAgentFixture(t, AgentConfig{}).positioned(domain.AgentState{WorkspaceID: "ws-1"})

	f.platform.EXPECT().FindAll(mockAnyContext(), domain.ClassChatMessage, mock.Anything).
		Return([]json.RawMessage{chatDoc(t, "m1", "acc-alice", "", "thanks bob", 100)}, nil)
	f.platform.EXPECT().Session().Return(domain.Session{AccountID: "acc-bot"})
	f.answers("NO", "", "")
	f.state.EXPECT().Save(mockAnyContext(), mock.MatchedBy(func(state domain.AgentState) bool {
		return state.SeenMessages == 1 && state.LastMessageID == "m1"
	})).Return(nil)

	require.NoError(t, f.agent.Tick(context.Background()))
}

func TestTickCreatesIssueAndAcknowledges(t *testing.T) {
	f := newAgentFixture(t, AgentConfig{}).positioned(domain.AgentState{WorkspaceID: "ws-1"})

	f.platform.EXPECT().FindAll(mockAnyContext(), domain.ClassChatMessage, mock.Anything).
		Return([]json.RawMessage{chatDoc(t, "m1", "acc-alice", "", "please file a bug: login fails", 100)}, nil)
	f.platform.EXPECT().Session().Return(domain.Session{AccountID: "acc-bot"})
	f.answers("YES", `{"type":"create_issue","issueTitle":"Login fails","issueDescription":"500 on submit","issuePriority":"High"}`, "")
	f.platform.EXPECT().FindAll(mockAnyContext(), domain.ClassProject, mock.Anything).
		Return([]json.RawMessage{json.RawMessage(`{"_id":"proj-1","identifier":"TSK","defaultIssueStatus":"status-backlog"}`)}, nil)
	f.platform.EXPECT().CreateDoc(mockAnyContext(), domain.ClassIssue, "proj-1", mock.MatchedBy(func(attributes map[string]any) bool {
		return attributes["title"] == "Login fails" &&
			attributes["description"] == "500 on submit" &&
			attributes["priority"] == int(domain.IssuePriorityHigh) &&
			attributes["status"] == "status-backlog"
	})).Return("issue-1", nil)
	f.platform.EXPECT().SendChatMessage(mockAnyContext(), domain.SpaceGeneral, mock.MatchedBy(func(text string) bool {
		return strings.Contains(text, "Login fails") && strings.Contains(text, "High")
	})).Return(nil, nil)
	f.state.EXPECT().Save(mockAnyContext(), mock.Anything).Return(nil)

	require.NoError(t, f.agent.Tick(context.Background()))
}

func TestTickReportsIssueCreationFailureInChat(t *testing.T) {
	f := newAgentFixture(t, AgentConfig{Channel: "chan-ops"}).positioned(domain.AgentState{WorkspaceID: "ws-1"})

	f.platform.EXPECT().FindAll(mockAnyContext(), domain.ClassChatMessage, mock.Anything).
		Return([]json.RawMessage{chatDoc(t, "m1", "acc-alice", "", "create a task", 100)}, nil)
	f.platform.EXPECT().Session().Return(domain.Session{AccountID: "acc-bot"})
	f.answers("YES", `{"type":"create_issue","issueTitle":"Task"}`, "")
	f.platform.EXPECT().FindAll(mockAnyContext(), domain.ClassProject, mock.Anything).Return(nil, nil)
	f.platform.EXPECT().SendChatMessage(mockAnyContext(), "chan-ops", mock.MatchedBy(func(text string) bool {
		return strings.Contains(text, "could not create")
	})).Return(nil, nil)
	f.state.EXPECT().Save(mockAnyContext(), mock.Anything).Return(nil)

	require.NoError(t, f.agent.Tick(context.Background()))
}

func TestTickStopsAtRateLimitWithoutAdvancingPastDeferredMessages(t *testing.T) {
	f := newAgentFixture(t, AgentConfig{MaxActionsPerMinute: 1}).positioned(domain.AgentState{WorkspaceID: "ws-1"})

	f.platform.EXPECT().FindAll(mockAnyContext(), domain.ClassChatMessage, mock.Anything).Return([]json.RawMessage{
		chatDoc(t, "m1", "acc-alice", "chan-1", "first question?", 100),
		chatDoc(t, "m2", "acc-bob", "chan-1", "second question?", 200),
	}, nil)
	f.platform.EXPECT().Session().Return(domain.Session{AccountID: "acc-bot"})
	f.answers("YES", `{"type":"chat"}`, "answer")
	f.history.EXPECT().Load(mockAnyContext(), "chan-1").Return(nil, nil)
	f.platform.EXPECT().SendChatMessage(mockAnyContext(), "chan-1", "answer").Return(nil, nil).Once()
	f.history.EXPECT().Append(mockAnyContext(), "chan-1", mock.Anything, mock.Anything).Return(nil)
	f.state.EXPECT().Save(mockAnyContext(), mock.MatchedBy(func(state domain.AgentState) bool {
		return state.SeenMessages == 1 && state.LastMessageID == "m1"
	})).Return(nil)

	require.NoError(t, f.agent.Tick(context.Background()))
	assert.Equal(t, "m1", f.agent.Cursor().LastMessageID)
}

func TestTickKeepsGoingWhenReplyFails(t *testing.T) {
	f := newAgentFixture(t, AgentConfig{}).positioned(domain.AgentState{WorkspaceID: "ws-1"})

	f.platform.EXPECT().FindAll(mockAnyContext(), domain.ClassChatMessage, mock.Anything).
		Return([]json.RawMessage{chatDoc(t, "m1", "acc-alice", "chan-1", "hi?", 100)}, nil)
	f.platform.EXPECT().Session().Return(domain.Session{AccountID: "acc-bot"})
	f.answers("YES", `{"type":"chat"}`, "hello")
	f.history.EXPECT().Load(mockAnyContext(), "chan-1").Return(nil, errors.New("redis down"))
	f.platform.EXPECT().SendChatMessage(mockAnyContext(), "chan-1", "hello").Return(nil, &domain.RPCError{Method: "tx", Message: "forbidden"})
	f.state.EXPECT().Save(mockAnyContext(), mock.Anything).Return(nil)

	require.NoError(t, f.agent.Tick(context.Background()))
	assert.Equal(t, "m1", f.agent.Cursor().LastMessageID)
}

func TestTickReturnsFindError(t *testing.T) {
	f := newAgentFixture(t, AgentConfig{}).positioned(domain.AgentState{WorkspaceID: "ws-1"})

	f.platform.EXPECT().FindAll(mockAnyContext(), domain.ClassChatMessage, mock.Anything).Return(nil, domain.ErrNotConnected)

	err := f.agent.Tick(context.Background())
	require.ErrorIs(t, err, domain.ErrNotConnected)
}

func TestResumeIndex(t *testing.T) {
	t.Parallel()

	messages := []domain.ChatMessage{{ID: "m1"}, {ID: "m2"}, {ID: "m3"}}

	tests := []struct {
		name   string
		cursor domain.AgentState
		want   int
	}{
		{name: "fresh", cursor: domain.AgentState{}, want: 0},
		{name: "by id", cursor: domain.AgentState{SeenMessages: 1, LastMessageID: "m2"}, want: 2},
		{name: "unknown id falls back to count", cursor: domain.AgentState{SeenMessages: 1, LastMessageID: "gone"}, want: 1},
		{name: "count beyond list", cursor: domain.AgentState{SeenMessages: 9}, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, resumeIndex(messages, tt.cursor))
		})
	}
}

func expectStartupQueries(f *agentFixture, chat []json.RawMessage) {
	f.platform.EXPECT().On(domain.EventTx, mock.Anything).Return()
	f.platform.EXPECT().Subscribe(mockAnyContext(), mock.Anything).Return()
	f.platform.EXPECT().FindAll(mockAnyContext(), mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, class string, _ map[string]any) ([]json.RawMessage, error) {
			if class == domain.ClassChatMessage {
				return chat, nil
			}
			return nil, nil
		})
}

func TestStartPositionsCursorAfterExistingMessages(t *testing.T) {
	f := newAgentFixture(t, AgentConfig{Credentials: Credentials{Token: "tok", WorkspaceID: "ws-1"}})

	f.completer.EXPECT().Available(mockAnyContext()).Return(false)
	f.platform.EXPECT().SetToken("tok", "ws-1", "").Return()
	f.platform.EXPECT().Session().Return(domain.Session{Token: "tok", WorkspaceID: "ws-1"})
	f.platform.EXPECT().Connect(mockAnyContext()).Return(nil)
	expectStartupQueries(f, []json.RawMessage{
		chatDoc(t, "m1", "acc-alice", "", "old", 100),
		chatDoc(t, "m2", "acc-alice", "", "older still", 200),
	})
	f.state.EXPECT().Get(mockAnyContext(), "ws-1").Return(domain.AgentState{}, domain.ErrStateNotFound)
	f.state.EXPECT().Save(mockAnyContext(), domain.AgentState{
		WorkspaceID:   "ws-1",
		SeenMessages:  2,
		LastMessageID: "m2",
		UpdatedAt:     agentNow,
	}).Return(nil)

	require.NoError(t, f.agent.Start(context.Background()))
	assert.Equal(t, 2, f.agent.Cursor().SeenMessages)
	assert.NotEmpty(t, f.agent.RecentActivity())
}

func TestStartResumesFromSavedState(t *testing.T) {
	f := newAgentFixture(t, AgentConfig{Credentials: Credentials{Token: "tok", WorkspaceID: "ws-1"}})

	saved := domain.AgentState{WorkspaceID: "ws-1", SeenMessages: 5, LastMessageID: "m5"}
	f.completer.EXPECT().Available(mockAnyContext()).Return(true)
	f.platform.EXPECT().SetToken("tok", "ws-1", "").Return()
	f.platform.EXPECT().Session().Return(domain.Session{Token: "tok", WorkspaceID: "ws-1"})
	f.platform.EXPECT().Connect(mockAnyContext()).Return(nil)
	expectStartupQueries(f, nil)
	f.state.EXPECT().Get(mockAnyContext(), "ws-1").Return(saved, nil)

	require.NoError(t, f.agent.Start(context.Background()))
	assert.Equal(t, saved, f.agent.Cursor())
}

func TestStartReplacesRejectedCachedToken(t *testing.T) {
	creds := Credentials{Email: "bot@example.com", Password: "secret", WorkspaceID: "ws-1"}
	f := newAgentFixture(t, AgentConfig{Credentials: creds})
	key := TokenSecretKey(creds.Email, creds.WorkspaceID)

	f.completer.EXPECT().Available(mockAnyContext()).Return(true)
	f.secrets.EXPECT().Get(mockAnyContext(), key).Return("stale", nil)
	f.platform.EXPECT().SetToken("stale", "ws-1", "").Return()
	f.platform.EXPECT().Connect(mockAnyContext()).Return(&domain.TransportError{Op: "dial", Err: errors.New("401")}).Once()
	f.secrets.EXPECT().Delete(mockAnyContext(), key).Return(nil)
	f.platform.EXPECT().Login(mockAnyContext(), creds.Email, creds.Password).Return("account-token", nil)
	f.platform.EXPECT().Workspaces(mockAnyContext()).Return([]domain.Workspace{{ID: "ws-1"}}, nil)
	f.platform.EXPECT().SelectWorkspace(mockAnyContext(), "ws-1").Return("fresh", nil)
	f.secrets.EXPECT().Put(mockAnyContext(), key, "fresh").Return(nil)
	f.platform.EXPECT().Session().Return(domain.Session{Token: "fresh", WorkspaceID: "ws-1"})
	f.platform.EXPECT().Connect(mockAnyContext()).Return(nil).Once()
	expectStartupQueries(f, nil)
	f.state.EXPECT().Get(mockAnyContext(), "ws-1").Return(domain.AgentState{}, domain.ErrStateNotFound)
	f.state.EXPECT().Save(mockAnyContext(), mock.Anything).Return(nil)

	require.NoError(t, f.agent.Start(context.Background()))
}

func TestStartFailsWhenConnectRejectsExplicitToken(t *testing.T) {
	f := newAgentFixture(t, AgentConfig{Credentials: Credentials{Token: "tok", WorkspaceID: "ws-1"}})

	f.completer.EXPECT().Available(mockAnyContext()).Return(true)
	f.platform.EXPECT().SetToken("tok", "ws-1", "").Return()
	f.platform.EXPECT().Session().Return(domain.Session{Token: "tok", WorkspaceID: "ws-1"})
	f.platform.EXPECT().Connect(mockAnyContext()).Return(&domain.TransportError{Op: "dial", Err: errors.New("refused")})

	err := f.agent.Start(context.Background())
	require.ErrorIs(t, err, domain.ErrTransport)
}

func TestRunStopsOnCancelAndDisconnects(t *testing.T) {
	f := newAgentFixture(t, AgentConfig{ActionInterval: time.Hour}).positioned(domain.AgentState{WorkspaceID: "ws-1"})

	ctx, cancel := context.WithCancel(context.Background())
	f.platform.EXPECT().FindAll(mockAnyContext(), domain.ClassChatMessage, mock.Anything).
		RunAndReturn(func(context.Context, string, map[string]any) ([]json.RawMessage, error) {
			cancel()
			return nil, nil
		})
	f.platform.EXPECT().Disconnect().Return()

	require.NoError(t, f.agent.Run(ctx))
}

func TestRecentActivityKeepsLatestEntries(t *testing.T) {
	f := newAgentFixture(t, AgentConfig{})

	for i := range maxRecentActivity + 5 {
		f.agent.addActivity(fmt.Sprintf("entry-%d", i))
	}

	activity := f.agent.RecentActivity()
	require.Len(t, activity, maxRecentActivity)
	assert.True(t, strings.HasSuffix(activity[0], "entry-5"))
	assert.True(t, strings.HasSuffix(activity[len(activity)-1], "entry-24"))
}

func TestEnqueueTxIsRecordedAsActivity(t *testing.T) {
	f := newAgentFixture(t, AgentConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.agent.recordActivity(ctx) }()

	f.agent.enqueueTx(json.RawMessage(`{"_class":"core:class:TxCreateDoc"}`))

	require.Eventually(t, func() bool {
		return len(f.agent.RecentActivity()) == 1
	}, time.Second, 10*time.Millisecond)
	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

func mockAnyContext() interface{} {
	return mock.Anything
}
