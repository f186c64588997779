package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/inovacc/ghsecrets/internal/auth"
	"github.com/inovacc/ghsecrets/internal/core"
	"github.com/inovacc/ghsecrets/internal/model"
	"github.com/inovacc/ghsecrets/internal/remote"
	"github.com/inovacc/ghsecrets/internal/store"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

const tokenHelp = `Set a token with one of:
  ghsecrets token set
  ghsecrets token set --keyring
  export GITHUB_SECRETS_GITHUB_TOKEN=<token>`

// session is the state a command works on: the selected profile and the
// secrets manager loaded from its snapshot.
type session struct {
	profile *model.Profile
	file    *store.File
	manager *core.Manager
}

func openProfiles() (*core.ProfileManager, error) {
	db, err := store.GetDB()
	if err != nil {
		return nil, err
	}

	return core.NewProfileManager(db), nil
}

// selectedProfile returns the --profile profile or the current one.
func selectedProfile(pm *core.ProfileManager) (*model.Profile, error) {
	if profileFlag != "" {
		return pm.GetProfile(profileFlag)
	}

	return pm.CurrentProfile()
}

func openSession() (*session, error) {
	pm, err := openProfiles()
	if err != nil {
		return nil, err
	}

	profile, err := selectedProfile(pm)
	if err != nil {
		return nil, err
	}

	file := store.NewFile(profile.ConfigPath)
	logger := slog.Default().With(slog.String("profile", profile.Name))

	manager, err := core.NewManager(file, remote.NewGitHub(remote.WithLogger(logger)), core.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	return &session{profile: profile, file: file, manager: manager}, nil
}

// tokenResolver lists the token sources in priority order.
func (s *session) tokenResolver() *auth.Resolver {
	return auth.NewResolver().
		WithFlagValue(tokenFlag).
		WithEnvs(auth.EnvToken, auth.EnvGitHubToken).
		WithKeyring(s.profile.Name).
		WithConfigValue(s.manager.StoredToken()).
		WithHelpMessage(tokenHelp)
}

// useResolvedToken points the manager at the highest priority token. A
// missing token is left for the manager to report.
func (s *session) useResolvedToken() error {
	result, err := s.tokenResolver().Resolve()

	switch {
	case errors.Is(err, auth.ErrTokenNotFound):
		return nil
	case err != nil:
		return err
	}

	slog.Debug("token resolved", slog.String("source", result.Name))
	s.manager.UseToken(result.Token)

	return nil
}

func (s *session) save() error {
	if err := s.manager.Save(); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "%s secrets config at path %s\n", saved(), s.file.Location())

	return nil
}

// wrapTokenError adds setup hints to a missing token error.
func wrapTokenError(err error) error {
	if errors.Is(err, core.ErrMissingToken) {
		return fmt.Errorf("%w\n\n%s", err, tokenHelp)
	}

	return err
}

// addRepositoryFlag registers the shared --repo flag.
func addRepositoryFlag(fs *pflag.FlagSet, target *string, usage string) {
	fs.StringVarP(target, "repo", "r", "", usage)
}

// promptConfirm asks the user for confirmation and returns true if they confirm
func promptConfirm(prompt string) bool {
	_, _ = fmt.Fprint(os.Stdout, prompt)

	var response string

	_, _ = fmt.Scanln(&response)

	return response == "y" || response == "Y"
}

// readHidden reads a value from the terminal without echoing
func readHidden(prompt string) (string, error) {
	_, _ = fmt.Fprint(os.Stderr, prompt)

	fd := int(syscall.Stdin)
	if term.IsTerminal(fd) {
		value, err := term.ReadPassword(fd)
		_, _ = fmt.Fprintln(os.Stderr)

		if err != nil {
			return "", err
		}

		return string(value), nil
	}

	return readLine(os.Stdin)
}

// readLine reads one line of piped input.
func readLine(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	if scanner.Scan() {
		return strings.TrimRight(scanner.Text(), "\r"), nil
	}

	if err := scanner.Err(); err != nil {
		return "", err
	}

	return "", errors.New("no input")
}

// valueArg returns args[i] when present, otherwise prompts for it.
func valueArg(args []string, i int, prompt string) (string, error) {
	if len(args) > i {
		return args[i], nil
	}

	value, err := readHidden(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read value: %w", err)
	}

	if value == "" {
		return "", errors.New("value is empty")
	}

	return value, nil
}

// expandPath expands ~ to the user's home directory and returns an absolute path
func expandPath(path string) (string, error) {
	if path == "" {
		return "", errors.New("path is empty")
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}

		path = filepath.Join(home, path[1:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	return absPath, nil
}

// printEmptyResult prints a "no results" message with a create hint
func printEmptyResult(resourceType, createCmd string) {
	_, _ = fmt.Fprintf(os.Stdout, "No %s configured.\n", resourceType)
	_, _ = fmt.Fprintf(os.Stdout, "Create one with: %s\n", createCmd)
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}

	return s + strings.Repeat(" ", length-len(s))
}

// formatAge renders t relative to now, falling back to a date past a month.
func formatAge(t time.Time) string {
	d := time.Since(t)

	plural := func(n int, unit string) string {
		if n == 1 {
			return "1 " + unit + " ago"
		}

		return fmt.Sprintf("%d %ss ago", n, unit)
	}

	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour")
	case d < 30*24*time.Hour:
		return plural(int(d.Hours()/24), "day")
	default:
		return t.Local().Format(time.DateOnly)
	}
}
