package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var configPath string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styleError.Render(err.Error()))
		os.Exit(1)
	}
}

// newRootCmd assembles the command tree.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cinemart",
		Short: "Random movie suggestions from TMDb",
		Long: "Cinemart picks a random movie for a genre and a rating band and shows its trailer.\n" +
			"Browse interactively in the terminal, ask once from the shell, or chat with the Telegram bot.",
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/cinemart.yaml", "path to configuration file")

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(
		newVersionCmd(),
		newBrowseCmd(),
		newSuggestCmd(),
		newGenresCmd(),
		newRatingsCmd(),
		newBotCmd(),
		newConfigCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Cinemart v%s\n", version)
		},
	}
}
