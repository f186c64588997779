package cmd

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/inovacc/ghsecrets/internal/core"
)

func TestExpandPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:    "empty path",
			input:   "",
			wantErr: true,
		},
		{
			name:    "absolute path",
			input:   "/tmp/secrets.yaml",
			wantErr: false,
		},
		{
			name:    "home path",
			input:   "~/secrets.yaml",
			wantErr: false,
		},
		{
			name:    "relative path",
			input:   "secrets.yaml",
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := expandPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expandPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}

			if !tt.wantErr && !filepath.IsAbs(result) {
				t.Errorf("expandPath(%q) = %q, want an absolute path", tt.input, result)
			}

			if tt.input == "~/secrets.yaml" && strings.Contains(result, "~") {
				t.Errorf("expandPath(%q) = %q, ~ was not expanded", tt.input, result)
			}
		})
	}
}

func TestReadLine(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"single line", "s3cret\n", "s3cret", false},
		{"windows line ending", "s3cret\r\n", "s3cret", false},
		{"no trailing newline", "s3cret", "s3cret", false},
		{"first line only", "one\ntwo\n", "one", false},
		{"empty input", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readLine(strings.NewReader(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("readLine() error = %v, wantErr %v", err, tt.wantErr)
			}

			if got != tt.want {
				t.Errorf("readLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValueArg(t *testing.T) {
	got, err := valueArg([]string{"NAME", "value"}, 1, "unused: ")
	if err != nil {
		t.Fatalf("valueArg() error = %v", err)
	}

	if got != "value" {
		t.Errorf("valueArg() = %q, want %q", got, "value")
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input  string
		length int
		want   string
	}{
		{"abc", 5, "abc  "},
		{"abcdef", 3, "abcdef"},
		{"", 2, "  "},
	}

	for _, tt := range tests {
		if got := padRight(tt.input, tt.length); got != tt.want {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.length, got, tt.want)
		}
	}
}

func TestFormatAge(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"just now", now.Add(-10 * time.Second), "just now"},
		{"one minute", now.Add(-90 * time.Second), "1 minute ago"},
		{"minutes", now.Add(-5 * time.Minute), "5 minutes ago"},
		{"hours", now.Add(-3 * time.Hour), "3 hours ago"},
		{"one day", now.Add(-25 * time.Hour), "1 day ago"},
		{"old", now.Add(-90 * 24 * time.Hour), now.Add(-90 * 24 * time.Hour).Local().Format(time.DateOnly)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatAge(tt.t); got != tt.want {
				t.Errorf("formatAge() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScopeLabel(t *testing.T) {
	global := scopeLabel(core.ScopeGlobal, "acme/api")
	if !strings.Contains(global, "global") || strings.Contains(global, "acme/api") {
		t.Errorf("scopeLabel(global) = %q", global)
	}

	local := scopeLabel(core.ScopeLocal, "acme/api")
	if !strings.Contains(local, "local") || !strings.Contains(local, "acme/api") {
		t.Errorf("scopeLabel(local) = %q", local)
	}
}

func TestWrapTokenError(t *testing.T) {
	err := wrapTokenError(core.ErrMissingToken)
	if !errors.Is(err, core.ErrMissingToken) {
		t.Fatalf("wrapTokenError() lost the sentinel: %v", err)
	}

	if !strings.Contains(err.Error(), "ghsecrets token set") {
		t.Errorf("wrapTokenError() = %q, want setup hints", err.Error())
	}

	other := errors.New("boom")
	if got := wrapTokenError(other); !errors.Is(got, other) || got.Error() != "boom" {
		t.Errorf("wrapTokenError(other) = %v, want it unchanged", got)
	}

	if wrapTokenError(nil) != nil {
		t.Error("wrapTokenError(nil) should be nil")
	}
}
