package sessions

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// IndexFile is the name of the generated catalog index under the root.
const IndexFile = "README.md"

// WriteIndex regenerates the top-level index at root/README.md from the given
// sessions. Links are relative so the index works on disk and in rendered
// views alike.
func WriteIndex(root string, sessions []Session) error {
	var b strings.Builder
	b.WriteString("# Session Catalog\n\n")
	b.WriteString(fmt.Sprintf("%d sessions. Regenerate with `fieldops sessions index`.\n\n", len(sessions)))
	b.WriteString("| Session | Title |\n")
	b.WriteString("|---------|-------|\n")
	for _, s := range sessions {
		fmt.Fprintf(&b, "| [%s](%s/README.md) | %s |\n", s.ID, s.Path, escapeCell(s.Title))
	}

	path := filepath.Join(root, IndexFile)
	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}
	return nil
}

// escapeCell keeps table syntax intact when a title contains a pipe.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
