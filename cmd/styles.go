package cmd

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/inovacc/ghsecrets/internal/core"
)

var (
	createStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	deleteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	nameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	scopeStyle  = lipgloss.NewStyle().Bold(true)
	syncStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

func created() string  { return createStyle.Render("Created") }
func updated() string  { return createStyle.Render("Updated") }
func saved() string    { return createStyle.Render("Saved") }
func included() string { return createStyle.Render("Included") }
func excluded() string { return createStyle.Render("Excluded") }
func deleted() string  { return deleteStyle.Render("Deleted") }
func syncing() string  { return syncStyle.Render("Syncing") }
func synced() string   { return syncStyle.Render("Synced") }
func setLabel() string { return syncStyle.Render("Set") }

func styledName(s string) string {
	return nameStyle.Render(s)
}

// scopeLabel renders the scope label, with the repository for local secrets.
func scopeLabel(s core.Scope, repository string) string {
	if s == core.ScopeLocal && repository != "" {
		return scopeStyle.Render(string(s)) + " (" + styledName(repository) + ")"
	}

	return scopeStyle.Render(string(s))
}

// createdOrUpdated picks the verb for an upsert.
func createdOrUpdated(wasCreated bool) string {
	if wasCreated {
		return created()
	}

	return updated()
}
