package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/inovacc/ghsecrets/internal/core"
	"github.com/spf13/cobra"
)

var syncRepo string

var syncCmd = &cobra.Command{
	Use:   "sync [name]",
	Short: "Push secrets to GitHub",
	Long: `Push secrets to the tracked repositories.

Without a name every secret is synced. Pairs already pushed since the
secret last changed are skipped. The sync record is saved even when a
GitHub call fails, so completed pushes are not repeated.

Repositories come from the include list, or from every repository the
token can see minus the exclude list when no include list is set.

Examples:
  ghsecrets sync
  ghsecrets sync NPM_TOKEN
  ghsecrets sync NPM_TOKEN --repo acme/api`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)

	addRepositoryFlag(syncCmd.Flags(), &syncRepo, "Only sync to this repository (owner/name)")
}

func runSync(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}

	if err := s.useResolvedToken(); err != nil {
		return err
	}

	target := "all secrets"
	if len(args) == 1 {
		target = "secret " + styledName(args[0])
	}

	_, _ = fmt.Fprintf(os.Stdout, "%s %s\n", syncing(), target)

	var report *core.SyncReport

	if len(args) == 1 {
		report, err = s.manager.SyncSecret(cmd.Context(), args[0], syncRepo)
	} else {
		report, err = s.manager.SyncAll(cmd.Context(), syncRepo)
	}

	if report != nil {
		printSyncReport(report)

		if saveErr := s.save(); saveErr != nil {
			slog.Error("failed to save sync records", slog.Any("error", saveErr))

			if err == nil {
				err = saveErr
			}
		}
	}

	return wrapTokenError(err)
}

func printSyncReport(report *core.SyncReport) {
	for _, res := range report.Results {
		if res.Outcome == core.OutcomeUpToDate {
			slog.Debug("skipped up-to-date secret",
				slog.String("secret", res.Secret),
				slog.String("repository", res.Repository),
			)

			continue
		}

		_, _ = fmt.Fprintf(os.Stdout, "%s %s secret %s to %s (%s)\n",
			synced(), scopeLabel(res.Scope, ""), styledName(res.Secret), styledName(res.Repository), res.Outcome)
	}

	skipped := len(report.Results) - report.Written()

	_, _ = fmt.Fprintf(os.Stdout, "%d written, %s\n", report.Written(),
		mutedStyle.Render(fmt.Sprintf("%d already up to date", skipped)))
}
