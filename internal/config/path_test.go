package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("Failed to get home directory: %v", err)
	}
	t.Setenv("SMARTSPEND_TEST_DIR", "/tmp/spend")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty path",
			input: "",
			want:  "",
		},
		{
			name:  "bare tilde",
			input: "~",
			want:  home,
		},
		{
			name:  "tilde prefix",
			input: "~/data/spend.db",
			want:  filepath.Join(home, "data", "spend.db"),
		},
		{
			name:  "environment variable",
			input: "$SMARTSPEND_TEST_DIR/spend.db",
			want:  "/tmp/spend/spend.db",
		},
		{
			name:  "plain path untouched",
			input: "/var/lib/spend.db",
			want:  "/var/lib/spend.db",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandPath(tt.input); got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
