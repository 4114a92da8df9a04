package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bnema/huly-agent/internal/application"
)

func newRunCmd(app *app) *cobra.Command {
	var workspace string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Connect to the workspace and answer chat until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runAgent(ctx, cmd, app, workspace)
		},
	}

	cmd.Flags().StringVar(&workspace, "workspace", "", "Workspace id (default: HULY_WORKSPACE_ID or the first workspace)")

	return cmd
}

func runAgent(ctx context.Context, cmd *cobra.Command, app *app, workspace string) error {
	svc, err := app.services(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	history, closeHistory, err := app.conversationStore(ctx, svc.logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeHistory(); err != nil {
			svc.logger.Warn("close conversation store", "error", err)
		}
	}()

	state, err := app.stateRepository()
	if err != nil {
		return err
	}

	agent := application.NewAgent(application.AgentConfig{
		Credentials:         app.credentials(workspace),
		Channel:             app.cfg.Bot.Channel,
		BotName:             app.cfg.Bot.DisplayName,
		SystemPrompt:        app.cfg.Bot.SystemPrompt,
		ActionInterval:      app.cfg.Bot.ActionInterval,
		MaxActionsPerMinute: app.cfg.Bot.MaxActionsPerMinute,
	}, application.AgentDeps{
		Platform:     svc.platform,
		Auth:         svc.auth,
		Completer:    app.completer(svc.logger),
		Conversation: history,
		State:        state,
		Clock:        app.clock,
		Logger:       svc.logger,
	})

	if err := agent.Start(ctx); err != nil {
		svc.platform.Disconnect()
		return err
	}

	return agent.Run(ctx)
}
