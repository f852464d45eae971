package sessions

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// IssueKind classifies a catalog lint finding.
type IssueKind string

const (
	// IssueBadDirName flags a directory under sessions/ whose name is not a
	// valid session ID.
	IssueBadDirName IssueKind = "bad_dir_name"
	// IssueMissingReadme flags a session directory without a README.md.
	IssueMissingReadme IssueKind = "missing_readme"
	// IssueIDMismatch flags a README whose heading names a different session
	// than its directory.
	IssueIDMismatch IssueKind = "id_mismatch"
	// IssueMissingSession flags an index entry pointing at a session that does
	// not exist on disk.
	IssueMissingSession IssueKind = "missing_session"
	// IssueBrokenLink flags a relative link that does not resolve to a file.
	IssueBrokenLink IssueKind = "broken_link"
)

// Issue is one lint finding from Check.
type Issue struct {
	Kind   IssueKind
	Path   string // file or directory the issue was found in, relative to root
	Detail string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s", i.Path, i.Kind, i.Detail)
}

var linkPattern = regexp.MustCompile(`\[[^\]]*\]\(([^)\s]+)\)`)

// Check lints the catalog under root and returns all findings. A nil issue
// slice means the catalog is consistent. The error return is reserved for I/O
// failures, not lint findings.
func Check(root string) ([]Issue, error) {
	var issues []Issue

	entries, err := os.ReadDir(filepath.Join(root, sessionsDir))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read sessions directory: %w", err)
	}

	existing := make(map[string]bool)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		rel := filepath.ToSlash(filepath.Join(sessionsDir, name))
		if !ValidID(name) {
			issues = append(issues, Issue{
				Kind:   IssueBadDirName,
				Path:   rel,
				Detail: "directory name is not a valid session ID",
			})
			continue
		}
		existing[name] = true

		readme := filepath.Join(root, sessionsDir, name, "README.md")
		relReadme := filepath.ToSlash(filepath.Join(sessionsDir, name, "README.md"))
		if _, err := os.Stat(readme); err != nil {
			issues = append(issues, Issue{
				Kind:   IssueMissingReadme,
				Path:   rel,
				Detail: "session has no README.md",
			})
			continue
		}

		id, err := headingID(readme)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", relReadme, err)
		}
		if id != "" && id != name {
			issues = append(issues, Issue{
				Kind:   IssueIDMismatch,
				Path:   relReadme,
				Detail: fmt.Sprintf("heading names session %s but directory is %s", id, name),
			})
		}

		linkIssues, err := checkLinks(root, relReadme)
		if err != nil {
			return nil, err
		}
		issues = append(issues, linkIssues...)
	}

	indexIssues, err := checkIndex(root, existing)
	if err != nil {
		return nil, err
	}
	issues = append(issues, indexIssues...)

	return issues, nil
}

// checkIndex verifies that every session the top-level index links to exists
// on disk. A missing index is not an issue, the catalog may not have been
// indexed yet.
func checkIndex(root string, existing map[string]bool) ([]Issue, error) {
	data, err := os.ReadFile(filepath.Join(root, IndexFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read index: %w", err)
	}

	var issues []Issue
	seen := make(map[string]bool)
	for _, match := range linkPattern.FindAllStringSubmatch(string(data), -1) {
		target := match[1]
		rest, ok := strings.CutPrefix(target, sessionsDir+"/")
		if !ok {
			continue
		}
		id, _, _ := strings.Cut(rest, "/")
		if !ValidID(id) || seen[id] {
			continue
		}
		seen[id] = true
		if !existing[id] {
			issues = append(issues, Issue{
				Kind:   IssueMissingSession,
				Path:   IndexFile,
				Detail: fmt.Sprintf("index references session %s which does not exist", id),
			})
		}
	}
	return issues, nil
}

// checkLinks verifies every relative link in the file resolves to something on
// disk. External URLs and in-page anchors are skipped.
func checkLinks(root, rel string) ([]Issue, error) {
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", rel, err)
	}

	dir := filepath.Dir(filepath.Join(root, filepath.FromSlash(rel)))
	var issues []Issue
	for _, match := range linkPattern.FindAllStringSubmatch(string(data), -1) {
		target := match[1]
		if strings.Contains(target, "://") || strings.HasPrefix(target, "mailto:") || strings.HasPrefix(target, "#") {
			continue
		}
		target, _, _ = strings.Cut(target, "#")
		if target == "" {
			continue
		}
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(target))); err != nil {
			issues = append(issues, Issue{
				Kind:   IssueBrokenLink,
				Path:   rel,
				Detail: fmt.Sprintf("link target %s does not exist", target),
			})
		}
	}
	return issues, nil
}
