package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/inovacc/ghsecrets/internal/auth"
	"github.com/spf13/cobra"
)

var (
	tokenKeyring bool
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage the GitHub token of the current profile",
	Long: `Manage the GitHub token used to list repositories and write secrets.

The token needs the repo scope (or a fine-grained token with secrets
write access). It is looked up in this order:
  1. --token flag
  2. GITHUB_SECRETS_GITHUB_TOKEN environment variable
  3. GITHUB_TOKEN environment variable
  4. System keyring entry of the profile
  5. Token saved in the profile's secrets file`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var tokenSetCmd = &cobra.Command{
	Use:   "set [token]",
	Short: "Save the token",
	Long: `Save the token in the profile's secrets file, or in the system keyring
with --keyring. When omitted the token is read without echo.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokenSet,
}

var tokenShowSourceCmd = &cobra.Command{
	Use:   "show-source",
	Short: "Show where the token would be taken from",
	Args:  cobra.NoArgs,
	RunE:  runTokenShowSource,
}

var tokenClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the saved token",
	Long:  `Remove the token from the profile's secrets file, or from the system keyring with --keyring.`,
	Args:  cobra.NoArgs,
	RunE:  runTokenClear,
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(tokenSetCmd)
	tokenCmd.AddCommand(tokenShowSourceCmd)
	tokenCmd.AddCommand(tokenClearCmd)

	tokenSetCmd.Flags().BoolVar(&tokenKeyring, "keyring", false, "Store the token in the system keyring")
	tokenClearCmd.Flags().BoolVar(&tokenKeyring, "keyring", false, "Remove the token from the system keyring")
}

func runTokenSet(_ *cobra.Command, args []string) error {
	token, err := valueArg(args, 0, "GitHub token: ")
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}

	if tokenKeyring {
		if err := auth.SetToken(s.profile.Name, token); err != nil {
			return err
		}

		_, _ = fmt.Fprintf(os.Stdout, "%s token for profile %s in the system keyring\n", setLabel(), styledName(s.profile.Name))

		return nil
	}

	s.manager.SetToken(token)

	_, _ = fmt.Fprintf(os.Stdout, "%s token for profile %s\n", setLabel(), styledName(s.profile.Name))

	return s.save()
}

func runTokenShowSource(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}

	result, err := s.tokenResolver().Resolve()
	if errors.Is(err, auth.ErrTokenNotFound) {
		_, _ = fmt.Fprintln(os.Stdout, "No token configured.")
		_, _ = fmt.Fprintln(os.Stdout, tokenHelp)

		return nil
	}

	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Source: %s (%s)\n", result.Source, result.Name)

	return nil
}

func runTokenClear(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}

	if tokenKeyring {
		if err := auth.DeleteToken(s.profile.Name); err != nil {
			return err
		}

		_, _ = fmt.Fprintf(os.Stdout, "%s keyring token of profile %s\n", deleted(), styledName(s.profile.Name))

		return nil
	}

	if s.manager.StoredToken() == "" {
		_, _ = fmt.Fprintln(os.Stdout, "No token saved in the secrets file.")
		return nil
	}

	s.manager.SetToken("")

	_, _ = fmt.Fprintf(os.Stdout, "%s token of profile %s\n", deleted(), styledName(s.profile.Name))

	return s.save()
}
