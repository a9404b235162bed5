package vfs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/mattsolo1/grove-explorer/pkg/models"
)

// Refresh rescans the root directory and rebuilds the forest. Identity and
// open flags survive the rescan for every path that still exists; items whose
// paths disappeared are dropped. A failed rescan leaves the previous forest
// and lookup maps untouched.
func (s *Store) Refresh() error {
	byID := make(map[string]*models.Item)
	byPath := make(map[string]*models.Item)

	forest, err := s.scanDir(s.root, nil, s.byPath, byID, byPath)
	if err != nil {
		return err
	}
	s.forest = forest
	s.byID = byID
	s.byPath = byPath

	if s.selectedFile != "" {
		if _, ok := s.byID[s.selectedFile]; !ok {
			s.selectedFile = ""
		}
	}

	s.applyGitStatus()
	return nil
}

func (s *Store) scanDir(dir string, parent *models.Item, prev, byID, byPath map[string]*models.Item) ([]*models.Item, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	var items []*models.Item
	for _, entry := range entries {
		name := entry.Name()
		if s.skip(name) {
			continue
		}

		path := filepath.Join(dir, name)
		kind := models.KindFile
		if entry.IsDir() {
			kind = models.KindFolder
		}

		it := &models.Item{
			Name:   name,
			Path:   path,
			Kind:   kind,
			Parent: parent,
		}
		if old := prev[path]; old != nil && old.Kind == kind {
			it.ID = old.ID
			it.Open = old.Open
		} else {
			it.ID = uuid.NewString()
		}

		if entry.IsDir() {
			// An unreadable subdirectory shows up as an empty folder.
			if children, err := s.scanDir(path, it, prev, byID, byPath); err == nil {
				it.Children = children
			}
		}

		byID[it.ID] = it
		byPath[it.Path] = it
		items = append(items, it)
	}

	models.SortChildren(items)
	return items, nil
}

func (s *Store) skip(name string) bool {
	if name == ".git" {
		return true
	}
	if !s.cfg.ShowHidden && strings.HasPrefix(name, ".") {
		return true
	}
	for _, pattern := range s.cfg.Ignore {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
