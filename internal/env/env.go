package env

import (
	"os"
	"path/filepath"
)

const (
	defaultXDGConfigDirname = ".config"
	defaultXDGDataDirname   = ".local/share"
)

var (
	RSYCLE_CONFIG_PATH string

	RSYCLE_LOG_PATH string
)

func init() {
	// https://github.com/charmbracelet/log/issues/35
	os.Setenv("CLICOLOR_FORCE", "1")

	RSYCLE_CONFIG_PATH = lookup("RSYCLE_CONFIG_PATH", "XDG_CONFIG_HOME", defaultXDGConfigDirname, "config.yaml")
	RSYCLE_LOG_PATH = lookup("RSYCLE_LOG_PATH", "XDG_DATA_HOME", defaultXDGDataDirname, "debug.log")
}

// lookup follows https://specifications.freedesktop.org/basedir-spec/latest/
// with an explicit override taking precedence. Without a home directory the
// files land under the system temp dir.
func lookup(override, xdg, fallback, file string) string {
	if e := os.Getenv(override); e != "" {
		return e
	}
	dir := os.Getenv(xdg)
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = os.TempDir()
		}
		dir = filepath.Join(home, fallback)
	}
	return filepath.Join(dir, "rsycle", file)
}
