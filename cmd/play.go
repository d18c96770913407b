package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/luminar/internal/app"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the interactive app",
	RunE: func(cmd *cobra.Command, args []string) error {
		skip, _ := cmd.Flags().GetBool("no-splash")
		return runApp(cmd, skip)
	},
}

func init() {
	playCmd.Flags().Bool("no-splash", false, "Skip the welcome screen")
}

func runApp(cmd *cobra.Command, skipSplash bool) error {
	rt, err := newRuntime(cmd, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	questions, err := rt.questions()
	if err != nil {
		return fmt.Errorf("load questions: %w", err)
	}

	return app.Run(cmd.Context(), app.Options{
		Backend:    rt.client,
		Tokens:     rt.tokens,
		Questions:  questions,
		Logger:     rt.log,
		SkipSplash: skipSplash,
	})
}
