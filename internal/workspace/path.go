// ABOUTME: Workspace root normalization: tilde expansion, NFC and cleaning
// ABOUTME: Keeps package locations comparable regardless of how the root was typed

package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeRoot expands a leading "~", converts root to NFC and returns it as
// a clean absolute path. An empty root is the current directory.
func NormalizeRoot(root string) (string, error) {
	if root == "" {
		root = "."
	}
	if root == "~" || strings.HasPrefix(root, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding %s: %w", root, err)
		}
		root = home + root[1:]
	}
	root = norm.NFC.String(root)

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", root, err)
	}
	return filepath.Clean(abs), nil
}
