package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/inovacc/ghsecrets/internal/auth"
	"github.com/spf13/cobra"
)

var (
	profileCreatePath  string
	profileDeleteForce bool
	profileListJSON    bool
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage secrets profiles",
	Long: `Manage secrets profiles.

Each profile has its own secrets file, repository lists and token. The
default profile is created on first use.

Available Commands:
  create       Create a new profile
  list         List all profiles
  use          Set the current profile
  delete       Delete a profile

Examples:
  ghsecrets profile create work
  ghsecrets profile create ci --path ./secrets.yaml
  ghsecrets profile use work
  ghsecrets profile list
  ghsecrets profile delete old`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var profileCreateCmd = &cobra.Command{
	Use:     "create <name>",
	Short:   "Create a new profile",
	Aliases: []string{"add"},
	Args:    cobra.ExactArgs(1),
	RunE:    runProfileCreate,
}

var profileListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List all profiles",
	Long:    `List all profiles. The current profile is marked with an asterisk (*).`,
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE:    runProfileList,
}

var profileUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Set the current profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileUse,
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a profile",
	Long: `Delete a profile and its keyring token. The current profile cannot be
deleted. The secrets file is left on disk.`,
	Aliases: []string{"rm", "remove"},
	Args:    cobra.ExactArgs(1),
	RunE:    runProfileDelete,
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileCreateCmd)
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileUseCmd)
	profileCmd.AddCommand(profileDeleteCmd)

	profileCreateCmd.Flags().StringVar(&profileCreatePath, "path", "", "Secrets file path (default: application directory)")
	profileDeleteCmd.Flags().BoolVarP(&profileDeleteForce, "force", "f", false, "Skip confirmation")
	profileListCmd.Flags().BoolVar(&profileListJSON, "json", false, "Output as JSON")
}

func runProfileCreate(_ *cobra.Command, args []string) error {
	pm, err := openProfiles()
	if err != nil {
		return err
	}

	path := profileCreatePath
	if path != "" {
		if path, err = expandPath(path); err != nil {
			return err
		}
	}

	profile, err := pm.CreateProfile(args[0], path)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "%s profile %s with path %s\n", created(), styledName(profile.Name), profile.ConfigPath)
	_, _ = fmt.Fprintf(os.Stdout, "To make it current: ghsecrets profile use %s\n", profile.Name)

	return nil
}

// ProfileListItem represents a profile in JSON output
type ProfileListItem struct {
	Name       string    `json:"name"`
	ConfigPath string    `json:"config_path"`
	Current    bool      `json:"current"`
	CreatedAt  time.Time `json:"created_at"`
	LastUsedAt time.Time `json:"last_used_at,omitzero"`
}

func runProfileList(_ *cobra.Command, _ []string) error {
	pm, err := openProfiles()
	if err != nil {
		return err
	}

	// Make sure the default profile exists before listing.
	if _, err := pm.CurrentProfile(); err != nil {
		return err
	}

	profiles, err := pm.ListProfiles()
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}

	if profileListJSON {
		items := make([]ProfileListItem, 0, len(profiles))

		for _, p := range profiles {
			items = append(items, ProfileListItem{
				Name:       p.Name,
				ConfigPath: p.ConfigPath,
				Current:    p.Active,
				CreatedAt:  p.CreatedAt,
				LastUsedAt: p.LastUsedAt,
			})
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		return enc.Encode(items)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintln(w, "NAME\tPATH\tCURRENT")
	_, _ = fmt.Fprintln(w, "----\t----\t-------")

	for _, p := range profiles {
		marker := ""
		if p.Active {
			marker = "*"
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, p.ConfigPath, marker)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	return nil
}

func runProfileUse(_ *cobra.Command, args []string) error {
	profileName := args[0]

	pm, err := openProfiles()
	if err != nil {
		return err
	}

	if err := pm.SetProfile(profileName); err != nil {
		return err
	}

	profile, err := pm.GetProfile(profileName)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "%s profile %s with path %s\n", setLabel(), styledName(profile.Name), profile.ConfigPath)

	return nil
}

func runProfileDelete(_ *cobra.Command, args []string) error {
	profileName := args[0]

	pm, err := openProfiles()
	if err != nil {
		return err
	}

	if _, err := pm.GetProfile(profileName); err != nil {
		return err
	}

	if !profileDeleteForce && !promptConfirm(fmt.Sprintf("Delete profile '%s'? [y/N]: ", profileName)) {
		_, _ = fmt.Fprintln(os.Stdout, "Cancelled.")
		return nil
	}

	if err := pm.DeleteProfile(profileName); err != nil {
		return err
	}

	if err := auth.DeleteToken(profileName); err != nil {
		slog.Warn("failed to remove keyring token", slog.String("profile", profileName), slog.Any("error", err))
	}

	_, _ = fmt.Fprintf(os.Stdout, "%s profile %s\n", deleted(), styledName(profileName))

	return nil
}
