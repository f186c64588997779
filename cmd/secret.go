package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/inovacc/ghsecrets/internal/core"
	"github.com/spf13/cobra"
)

var (
	secretRepo     string
	secretListJSON bool
)

var secretCmd = &cobra.Command{
	Use:   "secret",
	Short: "Manage global and repository secrets",
	Long: `Manage the secrets of the current profile.

Secrets without --repo are global and apply to every tracked repository.
With --repo the secret only applies to that repository and overrides a
global secret of the same name there.

Examples:
  ghsecrets secret add NPM_TOKEN
  ghsecrets secret add DEPLOY_KEY --repo acme/api
  ghsecrets secret remove DEPLOY_KEY --repo acme/api
  ghsecrets secret list`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var secretAddCmd = &cobra.Command{
	Use:   "add <name> [value]",
	Short: "Create or update a secret",
	Long: `Create or update a secret.

When the value is omitted it is read from the terminal without echo, or
from stdin when piped.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSecretAdd,
}

var secretRemoveCmd = &cobra.Command{
	Use:     "remove <name>",
	Short:   "Remove a secret",
	Long:    `Remove a secret locally. The secret is not deleted on GitHub.`,
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE:    runSecretRemove,
}

var secretListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List secret names and scopes",
	Aliases: []string{"ls"},
	RunE:    runSecretList,
}

func init() {
	rootCmd.AddCommand(secretCmd)
	secretCmd.AddCommand(secretAddCmd)
	secretCmd.AddCommand(secretRemoveCmd)
	secretCmd.AddCommand(secretListCmd)

	addRepositoryFlag(secretAddCmd.Flags(), &secretRepo, "Repository (owner/name) for a local secret")
	addRepositoryFlag(secretRemoveCmd.Flags(), &secretRepo, "Repository (owner/name) of a local secret")
	secretListCmd.Flags().BoolVar(&secretListJSON, "json", false, "Output as JSON")
}

func runSecretAdd(_ *cobra.Command, args []string) error {
	secretName := args[0]

	value, err := valueArg(args, 1, fmt.Sprintf("Value for %s: ", secretName))
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}

	isNew, err := s.manager.AddSecret(secretName, value, secretRepo)
	if err != nil {
		return err
	}

	secretScope := core.ScopeGlobal
	if secretRepo != "" {
		secretScope = core.ScopeLocal
	}

	_, _ = fmt.Fprintf(os.Stdout, "%s %s secret %s\n",
		createdOrUpdated(isNew), scopeLabel(secretScope, secretRepo), styledName(secretName))

	return s.save()
}

func runSecretRemove(_ *cobra.Command, args []string) error {
	secretName := args[0]

	s, err := openSession()
	if err != nil {
		return err
	}

	removed, err := s.manager.RemoveSecret(secretName, secretRepo)
	if err != nil {
		return err
	}

	secretScope := core.ScopeGlobal
	if secretRepo != "" {
		secretScope = core.ScopeLocal
	}

	if !removed {
		_, _ = fmt.Fprintf(os.Stdout, "No %s secret %s, nothing to remove\n",
			scopeLabel(secretScope, secretRepo), styledName(secretName))

		return nil
	}

	_, _ = fmt.Fprintf(os.Stdout, "%s %s secret %s\n",
		deleted(), scopeLabel(secretScope, secretRepo), styledName(secretName))

	return s.save()
}

// SecretListItem represents a secret in JSON output. Values are never printed.
type SecretListItem struct {
	Name       string    `json:"name"`
	Scope      string    `json:"scope"`
	Repository string    `json:"repository,omitempty"`
	Created    time.Time `json:"created"`
	Updated    time.Time `json:"updated"`
}

func runSecretList(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}

	entries := s.manager.Secrets()

	if secretListJSON {
		items := make([]SecretListItem, 0, len(entries))

		for _, e := range entries {
			items = append(items, SecretListItem{
				Name:       e.Name,
				Scope:      string(e.Scope),
				Repository: e.Repository,
				Created:    e.Created,
				Updated:    e.Updated,
			})
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		return enc.Encode(items)
	}

	if len(entries) == 0 {
		printEmptyResult("secrets", "ghsecrets secret add <name>")
		return nil
	}

	maxName := 4
	for _, e := range entries {
		maxName = max(maxName, len(e.Name))
	}

	_, _ = fmt.Fprintf(os.Stdout, "%s  %s  %s  %s\n",
		headerStyle.Render(padRight("NAME", maxName)),
		headerStyle.Render(padRight("SCOPE", 6)),
		headerStyle.Render(padRight("UPDATED", 20)),
		headerStyle.Render("REPOSITORY"),
	)
	_, _ = fmt.Fprintln(os.Stdout, strings.Repeat("-", maxName+42))

	for _, e := range entries {
		repository := mutedStyle.Render("-")
		if e.Repository != "" {
			repository = styledName(e.Repository)
		}

		_, _ = fmt.Fprintf(os.Stdout, "%s  %s  %s  %s\n",
			padRight(e.Name, maxName),
			scopeStyle.Render(padRight(string(e.Scope), 6)),
			padRight(e.Updated.Local().Format(time.DateTime), 20),
			repository,
		)
	}

	_, _ = fmt.Fprintf(os.Stdout, "\nTotal: %d secrets (profile %s)\n", len(entries), styledName(s.profile.Name))

	return nil
}
