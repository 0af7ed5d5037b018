package cli

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvStorageRoot overrides the storage root directory when set.
const EnvStorageRoot = "STUFFLOG_DIR"

// ResolveStorageRoot determines the directory holding the storage units.
//
// Resolution order: the STUFFLOG_DIR override, then ~/.stufflog. The lookup
// function is injected so resolution stays a pure function of its input; the
// core packages never read the environment themselves.
func ResolveStorageRoot(getenv func(string) string) (string, error) {
	if dir := getenv(EnvStorageRoot); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve storage root: %w", err)
	}
	return filepath.Join(home, ".stufflog"), nil
}
