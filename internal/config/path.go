// Package config holds configuration helpers shared by the commands.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultDatabasePath is where statements and the training corpus live
// unless the user points elsewhere.
const DefaultDatabasePath = "~/.local/share/cardledger/cardledger.db"

// ExpandPath expands a leading ~ and $VAR style environment variables in a
// file path so config values like ~/.local/share/cardledger work as written.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return os.ExpandEnv(home)
		}
	} else if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}

	return os.ExpandEnv(path)
}
