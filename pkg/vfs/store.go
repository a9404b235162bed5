// Package vfs implements the explorer's file-system store: an ordered forest
// of items mirroring a directory tree, plus the mutation operations the TUI
// issues against it. The TUI never touches the disk itself; every create,
// rename and delete goes through the store, which applies it on disk and to
// the in-memory forest in one step.
package vfs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/mattsolo1/grove-explorer/pkg/models"
)

// Config controls what the store exposes from the underlying directory.
type Config struct {
	ShowHidden bool
	Ignore     []string // name patterns (filepath.Match) to skip
}

// Store holds the item forest for a single root directory.
type Store struct {
	root   string
	cfg    Config
	forest []*models.Item
	byID   map[string]*models.Item
	byPath map[string]*models.Item

	selectedFile string
}

// New creates a store rooted at dir and performs the initial scan.
func New(dir string, cfg Config) (*Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", abs)
	}

	s := &Store{root: abs, cfg: cfg}
	if err := s.Refresh(); err != nil {
		return nil, err
	}
	return s, nil
}

// Root returns the absolute root directory of the store.
func (s *Store) Root() string {
	return s.root
}

// Items returns the current forest snapshot, ordered for display.
func (s *Store) Items() []*models.Item {
	return s.forest
}

// Get returns the item with the given identity, or nil.
func (s *Store) Get(id string) *models.Item {
	return s.byID[id]
}

// Lookup returns the item at the given absolute path, or nil.
func (s *Store) Lookup(path string) *models.Item {
	return s.byPath[path]
}

// SelectFile marks a file as the currently selected one. Folders cannot be
// selected.
func (s *Store) SelectFile(id string) error {
	it := s.byID[id]
	if it == nil {
		return fmt.Errorf("unknown item: %s", id)
	}
	if it.IsFolder() {
		return fmt.Errorf("cannot select a folder: %s", it.Name)
	}
	s.selectedFile = id
	return nil
}

// SelectedFile returns the currently selected file, or nil.
func (s *Store) SelectedFile() *models.Item {
	if s.selectedFile == "" {
		return nil
	}
	return s.byID[s.selectedFile]
}

// Create makes a new file or folder under parentPath. An empty parentPath
// targets the root. The name is trimmed; an empty result is an error.
func (s *Store) Create(parentPath, name string, kind models.ItemKind) (*models.Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name required")
	}
	if strings.ContainsRune(name, filepath.Separator) {
		return nil, fmt.Errorf("name must not contain path separators: %q", name)
	}

	parentDir := s.root
	var parent *models.Item
	if parentPath != "" && parentPath != s.root {
		parent = s.byPath[parentPath]
		if parent == nil {
			return nil, fmt.Errorf("unknown parent: %s", parentPath)
		}
		if !parent.IsFolder() {
			return nil, fmt.Errorf("parent is not a folder: %s", parent.Name)
		}
		parentDir = parent.Path
	}

	path := filepath.Join(parentDir, name)
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("already exists: %s", name)
	}

	switch kind {
	case models.KindFolder:
		if err := os.Mkdir(path, 0755); err != nil {
			return nil, fmt.Errorf("create folder: %w", err)
		}
	case models.KindFile:
		if err := os.WriteFile(path, nil, 0644); err != nil {
			return nil, fmt.Errorf("create file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown kind: %s", kind)
	}

	it := &models.Item{
		ID:     uuid.NewString(),
		Name:   name,
		Path:   path,
		Kind:   kind,
		Parent: parent,
	}
	s.insert(it, parent)
	return it, nil
}

// Rename changes an item's name, preserving its identity. The new name is
// trimmed; an empty result is an error, not a rename to "".
func (s *Store) Rename(id, newName string) error {
	it := s.byID[id]
	if it == nil {
		return fmt.Errorf("unknown item: %s", id)
	}
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return fmt.Errorf("name required")
	}
	if strings.ContainsRune(newName, filepath.Separator) {
		return fmt.Errorf("name must not contain path separators: %q", newName)
	}
	if newName == it.Name {
		return nil
	}

	newPath := filepath.Join(filepath.Dir(it.Path), newName)
	if _, err := os.Stat(newPath); err == nil {
		return fmt.Errorf("already exists: %s", newName)
	}
	if err := os.Rename(it.Path, newPath); err != nil {
		return fmt.Errorf("rename: %w", err)
	}

	oldPath := it.Path
	it.Name = newName
	it.Path = newPath
	delete(s.byPath, oldPath)
	s.byPath[newPath] = it
	// A folder rename moves its whole subtree.
	models.Walk(it.Children, func(child *models.Item, _ int) {
		delete(s.byPath, child.Path)
		child.Path = newPath + strings.TrimPrefix(child.Path, oldPath)
		s.byPath[child.Path] = child
	})

	if it.Parent != nil {
		models.SortChildren(it.Parent.Children)
	} else {
		models.SortChildren(s.forest)
	}
	return nil
}

// Delete removes an item, and for folders its entire subtree.
func (s *Store) Delete(id string) error {
	it := s.byID[id]
	if it == nil {
		return fmt.Errorf("unknown item: %s", id)
	}
	if err := os.RemoveAll(it.Path); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	s.detach(it)
	models.Walk([]*models.Item{it}, func(gone *models.Item, _ int) {
		delete(s.byID, gone.ID)
		delete(s.byPath, gone.Path)
		if s.selectedFile == gone.ID {
			s.selectedFile = ""
		}
	})
	return nil
}

// ToggleFolder flips a folder's open flag. No disk I/O is involved.
func (s *Store) ToggleFolder(id string) error {
	it := s.byID[id]
	if it == nil {
		return fmt.Errorf("unknown item: %s", id)
	}
	if !it.IsFolder() {
		return fmt.Errorf("not a folder: %s", it.Name)
	}
	it.Open = !it.Open
	return nil
}

// Search returns every item whose name contains the query, case-insensitively,
// in depth-first forest order. Both files and folders match. An empty query
// returns nil.
func (s *Store) Search(query string) []*models.Item {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	var results []*models.Item
	models.Walk(s.forest, func(it *models.Item, _ int) {
		if strings.Contains(strings.ToLower(it.Name), query) {
			results = append(results, it)
		}
	})
	return results
}

// FolderPaths returns the root plus every folder path in the forest, for the
// watcher to track.
func (s *Store) FolderPaths() []string {
	paths := []string{s.root}
	models.Walk(s.forest, func(it *models.Item, _ int) {
		if it.IsFolder() {
			paths = append(paths, it.Path)
		}
	})
	return paths
}

func (s *Store) insert(it *models.Item, parent *models.Item) {
	s.byID[it.ID] = it
	s.byPath[it.Path] = it
	if parent != nil {
		parent.Children = append(parent.Children, it)
		models.SortChildren(parent.Children)
		// Reveal the new row; children only render while the parent is open.
		parent.Open = true
	} else {
		s.forest = append(s.forest, it)
		models.SortChildren(s.forest)
	}
}

func (s *Store) detach(it *models.Item) {
	siblings := s.forest
	if it.Parent != nil {
		siblings = it.Parent.Children
	}
	for i, sib := range siblings {
		if sib == it {
			siblings = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	if it.Parent != nil {
		it.Parent.Children = siblings
	} else {
		s.forest = siblings
	}
}
