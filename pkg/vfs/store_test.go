package vfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-explorer/pkg/models"
)

// newTestStore builds a store over a scratch directory with a small tree:
//
//	docs/
//	  README.md
//	src/
//	  main.go
//	notes.txt
func newTestStore(t *testing.T) *Store {
	t.Helper()
	root := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "docs", "README.md"), []byte("# readme"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "main.go"), []byte("package main"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("notes"), 0644))

	s, err := New(root, Config{})
	require.NoError(t, err)
	return s
}

func findByName(s *Store, name string) *models.Item {
	var found *models.Item
	models.Walk(s.Items(), func(it *models.Item, _ int) {
		if found == nil && it.Name == name {
			found = it
		}
	})
	return found
}

func TestScanOrdersFoldersFirst(t *testing.T) {
	s := newTestStore(t)

	roots := s.Items()
	require.Len(t, roots, 3)
	assert.Equal(t, "docs", roots[0].Name)
	assert.Equal(t, "src", roots[1].Name)
	assert.Equal(t, "notes.txt", roots[2].Name)

	docs := roots[0]
	require.Len(t, docs.Children, 1)
	assert.Equal(t, "README.md", docs.Children[0].Name)
	assert.Same(t, docs, docs.Children[0].Parent)
}

func TestCreateFile(t *testing.T) {
	s := newTestStore(t)
	docs := findByName(s, "docs")

	it, err := s.Create(docs.Path, "guide.md", models.KindFile)
	require.NoError(t, err)
	assert.Equal(t, "guide.md", it.Name)
	assert.Equal(t, models.KindFile, it.Kind)
	assert.True(t, docs.Open, "creating under a folder should reveal it")

	_, err = os.Stat(filepath.Join(docs.Path, "guide.md"))
	assert.NoError(t, err)

	// Case-insensitive name order within the folder.
	require.Len(t, docs.Children, 2)
	assert.Equal(t, "guide.md", docs.Children[0].Name)
	assert.Equal(t, "README.md", docs.Children[1].Name)
}

func TestCreateAtRoot(t *testing.T) {
	s := newTestStore(t)

	it, err := s.Create("", "vendor", models.KindFolder)
	require.NoError(t, err)
	assert.True(t, it.IsFolder())

	info, err := os.Stat(filepath.Join(s.Root(), "vendor"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCreateRejectsEmptyName(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Create("", "", models.KindFile)
	assert.Error(t, err)
	_, err = s.Create("", "   ", models.KindFile)
	assert.Error(t, err)
}

func TestCreateRejectsDuplicate(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Create("", "notes.txt", models.KindFile)
	assert.Error(t, err)
}

func TestRenamePreservesIdentity(t *testing.T) {
	s := newTestStore(t)
	notes := findByName(s, "notes.txt")
	id := notes.ID

	require.NoError(t, s.Rename(id, "journal.txt"))

	renamed := s.Get(id)
	require.NotNil(t, renamed)
	assert.Equal(t, "journal.txt", renamed.Name)
	assert.Equal(t, filepath.Join(s.Root(), "journal.txt"), renamed.Path)

	_, err := os.Stat(filepath.Join(s.Root(), "journal.txt"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(s.Root(), "notes.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestRenameFolderMovesSubtree(t *testing.T) {
	s := newTestStore(t)
	src := findByName(s, "src")
	mainGo := findByName(s, "main.go")

	require.NoError(t, s.Rename(src.ID, "lib"))

	assert.Equal(t, filepath.Join(s.Root(), "lib", "main.go"), mainGo.Path)
	assert.Same(t, mainGo, s.Lookup(mainGo.Path))
	_, err := os.Stat(mainGo.Path)
	assert.NoError(t, err)
}

func TestRenameRejectsEmptyName(t *testing.T) {
	s := newTestStore(t)
	notes := findByName(s, "notes.txt")

	assert.Error(t, s.Rename(notes.ID, ""))
	assert.Error(t, s.Rename(notes.ID, "  "))
	assert.Equal(t, "notes.txt", notes.Name, "failed rename must leave the name unchanged")
}

func TestDeleteRemovesFromForest(t *testing.T) {
	s := newTestStore(t)
	docs := findByName(s, "docs")

	require.NoError(t, s.Delete(docs.ID))

	assert.Nil(t, s.Get(docs.ID))
	assert.Nil(t, findByName(s, "docs"))
	assert.Nil(t, findByName(s, "README.md"), "folder delete takes the subtree with it")
	_, err := os.Stat(docs.Path)
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteClearsSelection(t *testing.T) {
	s := newTestStore(t)
	notes := findByName(s, "notes.txt")

	require.NoError(t, s.SelectFile(notes.ID))
	require.NoError(t, s.Delete(notes.ID))
	assert.Nil(t, s.SelectedFile())
}

func TestToggleFolder(t *testing.T) {
	s := newTestStore(t)
	docs := findByName(s, "docs")

	require.False(t, docs.Open)
	require.NoError(t, s.ToggleFolder(docs.ID))
	assert.True(t, docs.Open)
	require.NoError(t, s.ToggleFolder(docs.ID))
	assert.False(t, docs.Open)

	notes := findByName(s, "notes.txt")
	assert.Error(t, s.ToggleFolder(notes.ID), "files have no open flag")
}

func TestSearch(t *testing.T) {
	s := newTestStore(t)

	// Forest traversal order: docs/README.md before the root-level reader.
	_, err := s.Create("", "reader.ts", models.KindFile)
	require.NoError(t, err)

	results := s.Search("read")
	require.Len(t, results, 2)
	assert.Equal(t, "README.md", results[0].Name)
	assert.Equal(t, "reader.ts", results[1].Name)

	assert.Empty(t, s.Search("zzz"))
	assert.Nil(t, s.Search(""))
	assert.Nil(t, s.Search("   "))
}

func TestSearchMatchesFolders(t *testing.T) {
	s := newTestStore(t)

	results := s.Search("doc")
	require.Len(t, results, 1)
	assert.True(t, results[0].IsFolder())
}

func TestSelectFile(t *testing.T) {
	s := newTestStore(t)
	notes := findByName(s, "notes.txt")
	docs := findByName(s, "docs")

	require.NoError(t, s.SelectFile(notes.ID))
	assert.Equal(t, notes.ID, s.SelectedFile().ID)

	assert.Error(t, s.SelectFile(docs.ID))
	assert.Equal(t, notes.ID, s.SelectedFile().ID, "failed select keeps previous selection")
}

func TestRefreshPreservesIdentityAndOpenFlags(t *testing.T) {
	s := newTestStore(t)
	docs := findByName(s, "docs")
	require.NoError(t, s.ToggleFolder(docs.ID))
	id := docs.ID

	// Simulate an external change.
	require.NoError(t, os.WriteFile(filepath.Join(s.Root(), "extern.txt"), []byte("x"), 0644))
	require.NoError(t, s.Refresh())

	docs = findByName(s, "docs")
	require.NotNil(t, docs)
	assert.Equal(t, id, docs.ID)
	assert.True(t, docs.Open)
	assert.NotNil(t, findByName(s, "extern.txt"))
}

func TestScanToleratesUnreadableSubdir(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	root := t.TempDir()
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.MkdirAll(filepath.Join(locked, "inner"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "seen.txt"), []byte("x"), 0644))
	require.NoError(t, os.Chmod(locked, 0000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0755) })

	s, err := New(root, Config{})
	require.NoError(t, err)

	// The unreadable folder renders empty instead of failing the scan.
	dir := s.Lookup(locked)
	require.NotNil(t, dir)
	assert.Empty(t, dir.Children)
	assert.NotNil(t, s.Lookup(filepath.Join(root, "seen.txt")))
}

func TestRefreshFailureKeepsForest(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	s := newTestStore(t)
	notes := findByName(s, "notes.txt")

	require.NoError(t, os.Chmod(s.Root(), 0000))
	t.Cleanup(func() { _ = os.Chmod(s.Root(), 0755) })

	require.Error(t, s.Refresh())
	assert.Same(t, notes, s.Get(notes.ID), "a failed rescan must not clear the lookup maps")
	assert.Same(t, notes, s.Lookup(notes.Path))
	assert.Len(t, s.Items(), 3)
}

func TestHiddenFilesSkipped(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".hidden"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "seen.txt"), []byte("x"), 0644))

	s, err := New(root, Config{})
	require.NoError(t, err)
	require.Len(t, s.Items(), 1)
	assert.Equal(t, "seen.txt", s.Items()[0].Name)

	shown, err := New(root, Config{ShowHidden: true})
	require.NoError(t, err)
	assert.Len(t, shown.Items(), 2)
}

func TestIgnorePatterns(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "node_modules"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "kept.go"), []byte("x"), 0644))

	s, err := New(root, Config{Ignore: []string{"node_modules"}})
	require.NoError(t, err)
	require.Len(t, s.Items(), 1)
	assert.Equal(t, "kept.go", s.Items()[0].Name)
}

func TestLoadConfig(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName),
		[]byte("show_hidden: true\nignore:\n  - \"*.tmp\"\n"), 0644))

	cfg := LoadConfig(root, Config{Ignore: []string{"dist"}})
	assert.True(t, cfg.ShowHidden)
	assert.Equal(t, []string{"dist", "*.tmp"}, cfg.Ignore)

	// Missing file keeps the base config.
	base := LoadConfig(t.TempDir(), Config{ShowHidden: true})
	assert.True(t, base.ShowHidden)
}
