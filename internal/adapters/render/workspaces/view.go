package workspaces

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/huly-agent/internal/domain"
)

type RenderOptions struct {
	// Account is the email the list was fetched for.
	Account string
	// Selected matches a workspace by id, url or name.
	Selected string
	// Cached holds the ids of workspaces with a stored token.
	Cached map[string]bool
}

func renderView(workspaces []domain.Workspace, opts RenderOptions, s styles) string {
	lines := []string{s.title.Render("Huly Workspaces")}

	header := fmt.Sprintf("workspaces: %d", len(workspaces))
	if account := strings.TrimSpace(opts.Account); account != "" {
		header = fmt.Sprintf("%s  account: %s", header, account)
	}
	lines = append(lines, s.header.Render(header))

	if len(workspaces) == 0 {
		lines = append(lines, s.empty.Render("No workspaces available. The bot needs to be invited first."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, workspace := range workspaces {
		lines = append(lines, s.section.Render(renderWorkspace(workspace, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderWorkspace(workspace domain.Workspace, opts RenderOptions, s styles) string {
	title := s.workspace.Render(workspaceTitle(workspace))
	if isSelected(workspace, opts.Selected) {
		title = lipgloss.JoinHorizontal(lipgloss.Top, title, " ", s.selected.Render("[selected]"))
	}

	parts := []string{title}
	if workspace.URL != "" {
		parts = append(parts, s.detail.Render("url: "+workspace.URL))
	}
	if opts.Cached[workspace.ID] {
		parts = append(parts, s.cached.Render("token: cached"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func workspaceTitle(workspace domain.Workspace) string {
	name := strings.TrimSpace(workspace.Name)
	if name == "" || name == workspace.ID {
		return workspace.ID
	}
	return fmt.Sprintf("%s (%s)", name, workspace.ID)
}

func isSelected(workspace domain.Workspace, selected string) bool {
	if selected == "" {
		return false
	}
	return workspace.ID == selected || workspace.URL == selected || workspace.Name == selected
}
