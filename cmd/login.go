package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/huly-agent/internal/application"
)

func newLoginCmd(app *app) *cobra.Command {
	var workspace string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in (signing up when needed), select a workspace and cache its token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.cfg.ValidateAccount(); err != nil {
				return err
			}
			if app.cfg.Huly.Password == "" {
				return errors.New("login requires HULY_EMAIL and HULY_PASSWORD")
			}

			svc, err := app.services(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			creds := app.credentials(workspace)
			creds.Token = ""
			var result application.AuthResult
			login := func(ctx context.Context) error {
				var loginErr error
				result, loginErr = svc.auth.Login(ctx, creds)
				return loginErr
			}
			if err := runAccountStep(cmd.Context(), cmd.ErrOrStderr(), accountStep{
				Pending: "Logging in as " + creds.Email + "...",
			}, login); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintf(out, "Logged in as %s (%s)\n", creds.Email, result.Source); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(out, "Workspace: %s (%s)\n", result.Workspace.DisplayName(), result.Workspace.ID); err != nil {
				return err
			}
			if result.Session.AccountID != "" {
				if _, err := fmt.Fprintf(out, "Account: %s\n", result.Session.AccountID); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&workspace, "workspace", "", "Workspace id, url or name (default: HULY_WORKSPACE_ID or the first workspace)")

	return cmd
}

func newLogoutCmd(app *app) *cobra.Command {
	var workspace string

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Delete the cached workspace token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			creds := app.credentials(workspace)
			if creds.Email == "" || creds.WorkspaceID == "" {
				return errors.New("logout requires HULY_EMAIL and a workspace id (--workspace or HULY_WORKSPACE_ID)")
			}

			svc, err := app.services(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			if err := svc.auth.Forget(cmd.Context(), creds.Email, creds.WorkspaceID); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Removed cached token for %s in %s\n", creds.Email, creds.WorkspaceID)
			return err
		},
	}

	cmd.Flags().StringVar(&workspace, "workspace", "", "Workspace id (default: HULY_WORKSPACE_ID)")

	return cmd
}
