package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/inovacc/ghsecrets/internal/core"
	"github.com/spf13/cobra"
)

// errOutOfSync makes check exit non-zero for scripts and CI.
var errOutOfSync = errors.New("secrets are out of sync")

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report unsynced secrets and new repositories",
	Long: `Report, without writing anything, which secrets still need a sync and
which repositories visible to the token are neither included nor excluded.

Exits with a non-zero status when anything is pending.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}

	if err := s.useResolvedToken(); err != nil {
		return err
	}

	report, err := s.manager.Check(cmd.Context())
	if err != nil {
		return wrapTokenError(err)
	}

	printCheckReport(report)

	if !report.OK() {
		return errOutOfSync
	}

	return nil
}

func printCheckReport(report *core.CheckReport) {
	if report.OK() {
		_, _ = fmt.Fprintln(os.Stdout, createStyle.Render("All secrets are synced."))
		return
	}

	if len(report.NewRepositories) > 0 {
		_, _ = fmt.Fprintln(os.Stdout, warnStyle.Render("New repositories (include or exclude them):"))

		for _, repo := range report.NewRepositories {
			_, _ = fmt.Fprintf(os.Stdout, "  %s\n", styledName(repo))
		}
	}

	if len(report.Unsynced) > 0 {
		_, _ = fmt.Fprintln(os.Stdout, warnStyle.Render("Unsynced secrets:"))

		for _, p := range report.Unsynced {
			last := mutedStyle.Render("never synced")
			if !p.LastSynced.IsZero() {
				last = "last synced " + formatAge(p.LastSynced)
			}

			_, _ = fmt.Fprintf(os.Stdout, "  %s %s in %s, %s\n",
				scopeLabel(p.Scope, ""), styledName(p.Secret), styledName(p.Repository), last)
		}
	}
}
