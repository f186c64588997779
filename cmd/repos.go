package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var reposCmd = &cobra.Command{
	Use:   "repos",
	Short: "Manage which repositories receive secrets",
	Long: `Manage the include and exclude lists of the current profile.

When the include list is set it is used verbatim. Otherwise every
repository the token can see is a target, except excluded ones.

Examples:
  ghsecrets repos bootstrap
  ghsecrets repos new
  ghsecrets repos include acme/api
  ghsecrets repos exclude acme/playground`,
	Aliases: []string{"repo"},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var reposBootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Include every visible repository that is not excluded",
	Long: `Set the include list to every repository the token can see, minus the
exclude list. Repositories created later are reported by 'repos new' and
'check' until they are included or excluded.`,
	Args: cobra.NoArgs,
	RunE: runReposBootstrap,
}

var reposListCmd = &cobra.Command{
	Use:     "list",
	Short:   "Show the include and exclude lists",
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE:    runReposList,
}

var reposNewCmd = &cobra.Command{
	Use:   "new",
	Short: "List visible repositories that are neither included nor excluded",
	Args:  cobra.NoArgs,
	RunE:  runReposNew,
}

var reposIncludeCmd = &cobra.Command{
	Use:   "include <owner/name>...",
	Short: "Add repositories to the include list",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runReposInclude,
}

var reposExcludeCmd = &cobra.Command{
	Use:   "exclude <owner/name>...",
	Short: "Add repositories to the exclude list",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runReposExclude,
}

func init() {
	rootCmd.AddCommand(reposCmd)
	reposCmd.AddCommand(reposBootstrapCmd)
	reposCmd.AddCommand(reposListCmd)
	reposCmd.AddCommand(reposNewCmd)
	reposCmd.AddCommand(reposIncludeCmd)
	reposCmd.AddCommand(reposExcludeCmd)
}

func runReposBootstrap(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}

	if err := s.useResolvedToken(); err != nil {
		return err
	}

	repos, err := s.manager.BootstrapRepositories(cmd.Context())
	if err != nil {
		return wrapTokenError(err)
	}

	for _, repo := range repos {
		_, _ = fmt.Fprintf(os.Stdout, "%s repository %s\n", included(), styledName(repo))
	}

	for _, repo := range s.manager.ExcludeRepositories() {
		_, _ = fmt.Fprintf(os.Stdout, "%s repository %s\n", excluded(), mutedStyle.Render(repo))
	}

	return s.save()
}

func runReposList(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}

	include := s.manager.IncludeRepositories()
	exclude := s.manager.ExcludeRepositories()

	if len(include) == 0 && len(exclude) == 0 {
		_, _ = fmt.Fprintln(os.Stdout, "No include or exclude list; every visible repository is a target.")
		_, _ = fmt.Fprintln(os.Stdout, "Pin the current set with: ghsecrets repos bootstrap")

		return nil
	}

	_, _ = fmt.Fprintln(os.Stdout, headerStyle.Render("Included"))

	if len(include) == 0 {
		_, _ = fmt.Fprintln(os.Stdout, mutedStyle.Render("  (not set, every visible repository that is not excluded)"))
	}

	for _, repo := range include {
		_, _ = fmt.Fprintf(os.Stdout, "  %s\n", styledName(repo))
	}

	if len(exclude) > 0 {
		_, _ = fmt.Fprintln(os.Stdout, headerStyle.Render("Excluded"))

		for _, repo := range exclude {
			_, _ = fmt.Fprintf(os.Stdout, "  %s\n", mutedStyle.Render(repo))
		}
	}

	return nil
}

func runReposNew(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}

	if err := s.useResolvedToken(); err != nil {
		return err
	}

	repos, err := s.manager.NewRepositories(cmd.Context())
	if err != nil {
		return wrapTokenError(err)
	}

	if len(repos) == 0 {
		_, _ = fmt.Fprintln(os.Stdout, "No new repositories.")
		return nil
	}

	for _, repo := range repos {
		_, _ = fmt.Fprintln(os.Stdout, styledName(repo))
	}

	return nil
}

func runReposInclude(_ *cobra.Command, args []string) error {
	return updateRepositoryLists(args, true)
}

func runReposExclude(_ *cobra.Command, args []string) error {
	return updateRepositoryLists(args, false)
}

func updateRepositoryLists(repos []string, include bool) error {
	s, err := openSession()
	if err != nil {
		return err
	}

	for _, repo := range repos {
		var changed bool

		if include {
			changed, err = s.manager.IncludeRepository(repo)
		} else {
			changed, err = s.manager.ExcludeRepository(repo)
		}

		if err != nil {
			return err
		}

		label := included()
		if !include {
			label = excluded()
		}

		if !changed {
			_, _ = fmt.Fprintf(os.Stdout, "Repository %s unchanged\n", styledName(repo))
			continue
		}

		_, _ = fmt.Fprintf(os.Stdout, "%s repository %s\n", label, styledName(repo))
	}

	return s.save()
}
