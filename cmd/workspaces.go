package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	workspacesrender "github.com/bnema/huly-agent/internal/adapters/render/workspaces"
	"github.com/bnema/huly-agent/internal/application"
	"github.com/bnema/huly-agent/internal/domain"
)

func newWorkspacesCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "workspaces",
		Aliases: []string{"ws"},
		Short:   "List the workspaces the bot account can access",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.cfg.ValidateAccount(); err != nil {
				return err
			}

			svc, err := app.services(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			creds := app.credentials("")
			var workspaces []domain.Workspace
			fetch := func(ctx context.Context) error {
				var fetchErr error
				workspaces, fetchErr = svc.auth.Workspaces(ctx, creds)
				return fetchErr
			}

			if asJSON {
				if err := fetch(cmd.Context()); err != nil {
					return err
				}
			} else if err := runAccountStep(cmd.Context(), cmd.ErrOrStderr(), accountStep{Pending: "Fetching workspaces..."}, fetch); err != nil {
				return err
			}

			return writeWorkspacesOutput(cmd, app, svc, creds, workspaces, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newJoinCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "join <invite-id>",
		Short: "Accept a workspace invite and list the resulting workspaces",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.cfg.ValidateAccount(); err != nil {
				return err
			}
			if app.cfg.Huly.Password == "" {
				return errors.New("join requires HULY_EMAIL and HULY_PASSWORD")
			}

			svc, err := app.services(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			creds := app.credentials("")
			var workspaces []domain.Workspace
			join := func(ctx context.Context) error {
				var joinErr error
				workspaces, joinErr = svc.auth.Join(ctx, creds, args[0])
				return joinErr
			}

			if asJSON {
				if err := join(cmd.Context()); err != nil {
					return err
				}
			} else if err := runAccountStep(cmd.Context(), cmd.ErrOrStderr(), accountStep{
				Pending: "Accepting invite " + args[0] + "...",
				Done:    "Joined with invite " + args[0],
			}, join); err != nil {
				return err
			}

			return writeWorkspacesOutput(cmd, app, svc, creds, workspaces, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func writeWorkspacesOutput(cmd *cobra.Command, app *app, svc *services, creds application.Credentials, workspaces []domain.Workspace, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(workspaces)
	}

	rendered, err := app.workspacesRenderer(workspaces, workspacesrender.RenderOptions{
		Account:  creds.Email,
		Selected: creds.WorkspaceID,
		Cached:   cachedWorkspaces(cmd.Context(), svc, creds.Email, workspaces),
	})
	if err != nil {
		return fmt.Errorf("render workspaces: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func cachedWorkspaces(ctx context.Context, svc *services, email string, workspaces []domain.Workspace) map[string]bool {
	cached := map[string]bool{}
	if email == "" {
		return cached
	}

	for _, workspace := range workspaces {
		token, err := svc.secrets.Get(ctx, application.TokenSecretKey(email, workspace.ID))
		if err != nil {
			if !errors.Is(err, domain.ErrSecretNotFound) {
				svc.logger.Debug("check cached token", "workspace", workspace.ID, "error", err)
			}
			continue
		}
		cached[workspace.ID] = token != ""
	}
	return cached
}
