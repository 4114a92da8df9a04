package workspaces

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/huly-agent/internal/domain"
)

func TestRenderWorkspaces(t *testing.T) {
	output, err := Render([]domain.Workspace{
		{ID: "ws-1", Name: "Engineering", URL: "eng"},
		{ID: "ws-2", Name: "ws-2"},
	}, RenderOptions{
		Account:  "bot@example.com",
		Selected: "eng",
		Cached:   map[string]bool{"ws-1": true},
	})

	require.NoError(t, err)
	assert.Contains(t, output, "Huly Workspaces")
	assert.Contains(t, output, "workspaces: 2")
	assert.Contains(t, output, "account: bot@example.com")
	assert.Contains(t, output, "Engineering (ws-1)")
	assert.Contains(t, output, "[selected]")
	assert.Contains(t, output, "url: eng")
	assert.Contains(t, output, "token: cached")
	assert.NotContains(t, output, "ws-2 (ws-2)")
}

func TestRenderWithoutWorkspaces(t *testing.T) {
	output, err := Render(nil, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "workspaces: 0")
	assert.Contains(t, output, "needs to be invited")
	assert.NotContains(t, output, "account:")
}

func TestIsSelected(t *testing.T) {
	t.Parallel()

	workspace := domain.Workspace{ID: "ws-1", Name: "Team", URL: "team-url"}

	tests := []struct {
		selected string
		want     bool
	}{
		{selected: "", want: false},
		{selected: "ws-1", want: true},
		{selected: "team-url", want: true},
		{selected: "Team", want: true},
		{selected: "other", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.selected, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, isSelected(workspace, tt.selected))
		})
	}
}
