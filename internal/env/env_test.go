package env

import (
	"path/filepath"
	"testing"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name     string
		override string
		xdg      string
		home     string
		want     string
	}{
		{
			name:     "override wins",
			override: "/etc/rsycle.yaml",
			xdg:      "/xdg",
			home:     "/home/u",
			want:     "/etc/rsycle.yaml",
		},
		{
			name: "xdg dir",
			xdg:  "/xdg",
			home: "/home/u",
			want: filepath.Join("/xdg", "rsycle", "config.yaml"),
		},
		{
			name: "home fallback",
			home: "/home/u",
			want: filepath.Join("/home/u", ".config", "rsycle", "config.yaml"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_RSYCLE_OVERRIDE", tt.override)
			t.Setenv("TEST_RSYCLE_XDG", tt.xdg)
			t.Setenv("HOME", tt.home)
			got := lookup("TEST_RSYCLE_OVERRIDE", "TEST_RSYCLE_XDG", defaultXDGConfigDirname, "config.yaml")
			if got != tt.want {
				t.Errorf("lookup() = %q, want %q", got, tt.want)
			}
		})
	}
}
