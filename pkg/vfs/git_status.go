package vfs

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/mattsolo1/grove-core/util/pathutil"

	"github.com/mattsolo1/grove-explorer/pkg/models"
)

// gitFileStatus runs `git status --porcelain=v1` and returns a map of
// absolute, normalized file paths to their status codes.
func gitFileStatus(repoPath string) (map[string]string, error) {
	cmd := exec.Command("git", "status", "--porcelain=v1")
	cmd.Dir = repoPath
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("git status failed: %w\n%s", err, string(output))
	}

	statusMap := make(map[string]string)
	for _, line := range strings.Split(string(output), "\n") {
		if len(line) < 4 {
			continue
		}
		statusCode := line[:2]
		filePath := strings.TrimSpace(line[3:])
		absPath := filepath.Join(repoPath, filePath)

		normalizedPath, err := pathutil.NormalizeForLookup(absPath)
		if err == nil {
			statusMap[normalizedPath] = statusCode
		}
	}

	return statusMap, nil
}

// applyGitStatus sets the modified flag on files git reports as changed.
// Outside a git repo every flag stays false.
func (s *Store) applyGitStatus() {
	statuses, err := gitFileStatus(s.root)
	if err != nil {
		return
	}
	models.Walk(s.forest, func(it *models.Item, _ int) {
		if it.IsFolder() {
			return
		}
		normalized, err := pathutil.NormalizeForLookup(it.Path)
		if err != nil {
			return
		}
		_, it.Modified = statuses[normalized]
	})
}
