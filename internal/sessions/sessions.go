// Package sessions maintains the conference session catalog.
//
// Sessions live under sessions/<SESSION-ID>/README.md where the ID is three
// uppercase letters followed by three digits (for example CNS422). The package
// scans that tree, regenerates the top-level index, and lints the catalog for
// broken cross references.
package sessions

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// sessionsDir is the catalog directory name under the repository root.
const sessionsDir = "sessions"

var idPattern = regexp.MustCompile(`^[A-Z]{3}[0-9]{3}$`)

// Session is one catalog entry discovered by Scan.
type Session struct {
	// ID is the session identifier, e.g. "CNS422".
	ID string
	// Title is the text of the first level-one heading in the session README,
	// with any leading "<ID>:" prefix removed. Falls back to the ID when the
	// README has no heading.
	Title string
	// Path is the session directory relative to the scan root, e.g.
	// "sessions/CNS422".
	Path string
}

// ValidID reports whether id is a well-formed session identifier.
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}

// Scan walks root/sessions and returns the sessions found there, sorted by ID.
//
// Directories whose name is not a valid session ID, or that have no README.md,
// are skipped; Check reports those as issues.
func Scan(root string) ([]Session, error) {
	entries, err := os.ReadDir(filepath.Join(root, sessionsDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read sessions directory: %w", err)
	}

	var found []Session
	for _, entry := range entries {
		if !entry.IsDir() || !ValidID(entry.Name()) {
			continue
		}
		id := entry.Name()
		readme := filepath.Join(root, sessionsDir, id, "README.md")
		title, err := firstHeading(readme)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read session %s: %w", id, err)
		}
		if title == "" {
			title = id
		}
		found = append(found, Session{
			ID:    id,
			Title: title,
			Path:  filepath.ToSlash(filepath.Join(sessionsDir, id)),
		})
	}

	sort.Slice(found, func(i, j int) bool { return found[i].ID < found[j].ID })
	return found, nil
}

// firstHeading returns the text of the first "# " heading in the file, with a
// leading "<ID>:" or "<ID> -" prefix stripped. Returns "" when the file has no
// level-one heading.
func firstHeading(path string) (string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "# ") {
			continue
		}
		title := strings.TrimSpace(strings.TrimPrefix(line, "# "))
		if id, rest, ok := strings.Cut(title, ":"); ok && ValidID(strings.TrimSpace(id)) {
			title = strings.TrimSpace(rest)
		}
		return title, nil
	}
	return "", scanner.Err()
}

// headingID returns the session ID mentioned in the first "# " heading of the
// file, or "" when the heading carries no ID.
func headingID(path string) (string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "# ") {
			continue
		}
		for _, word := range strings.FieldsFunc(line, func(r rune) bool {
			return r == ' ' || r == ':' || r == '#'
		}) {
			if ValidID(word) {
				return word, nil
			}
		}
		return "", nil
	}
	return "", scanner.Err()
}
