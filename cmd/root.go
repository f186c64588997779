package cmd

import (
	"log/slog"
	"os"

	"github.com/inovacc/ghsecrets/internal/application"
	"github.com/spf13/cobra"
)

var (
	profileFlag string
	tokenFlag   string
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   application.AppName,
	Short: "Sync global and per-repository secrets to GitHub",
	Long: `ghsecrets keeps a local set of secrets and pushes them to GitHub
Actions repository secrets.

Global secrets apply to every tracked repository; a repository secret with
the same name overrides the global one for that repository. Each push is
recorded, so repeated syncs only write what changed.

Secrets are grouped into profiles, each backed by its own YAML file.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verboseFlag {
			level = slog.LevelDebug
		}

		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetRootCmd returns the root command for introspection purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&profileFlag, "profile", "p", "", "Profile to use instead of the current one")
	rootCmd.PersistentFlags().StringVar(&tokenFlag, "token", "", "GitHub token for this run (not saved)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")
}
