package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "hulybot",
		Short:         "Huly chat bot: answers workspace chat through a local language model",
		Long:          "hulybot logs into a Huly workspace, watches its chat, answers messages through an OpenAI-compatible model endpoint (such as Ollama) and files tracker issues on request.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(app),
		newLoginCmd(app),
		newLogoutCmd(app),
		newJoinCmd(app),
		newWorkspacesCmd(app),
	)

	return rootCmd
}
