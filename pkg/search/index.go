// Package search maintains the sqlite-backed content index behind `xp search
// --content`, `xp index` and the TUI's grep mode. Name search never touches
// this index; that is the store's substring scan over the forest.
package search

import (
	"bytes"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mattsolo1/grove-explorer/pkg/models"
)

// maxIndexedSize caps how much of a file gets indexed.
const maxIndexedSize = 512 * 1024

// Index manages the content-search index.
type Index struct {
	db     *sql.DB
	useFTS bool
}

// Result is one content-search hit.
type Result struct {
	Path    string
	Name    string
	Ext     string
	Snippet string
}

// NewIndex opens (creating if needed) the index at dbPath.
func NewIndex(dbPath string) (*Index, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	idx := &Index{db: db}
	if err := idx.init(); err != nil {
		return nil, err
	}
	return idx, nil
}

// init creates the database schema.
func (idx *Index) init() error {
	idx.useFTS = idx.checkFTS5Support()

	metaSchema := `
	CREATE TABLE IF NOT EXISTS files_meta (
		path TEXT PRIMARY KEY,
		name TEXT,
		ext TEXT,
		content TEXT,
		indexed_at TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_files_meta_name ON files_meta(name);
	CREATE INDEX IF NOT EXISTS idx_files_meta_ext ON files_meta(ext);
	`
	if _, err := idx.db.Exec(metaSchema); err != nil {
		return err
	}

	if idx.useFTS {
		ftsSchema := `
		CREATE VIRTUAL TABLE IF NOT EXISTS files_fts USING fts5(
			path UNINDEXED,
			name,
			content,
			tokenize = 'porter unicode61'
		);
		`
		if _, err := idx.db.Exec(ftsSchema); err != nil {
			// If FTS creation fails, disable FTS and continue.
			idx.useFTS = false
		}
	}

	return nil
}

// checkFTS5Support checks if the FTS5 module is available.
func (idx *Index) checkFTS5Support() bool {
	_, err := idx.db.Exec("CREATE VIRTUAL TABLE IF NOT EXISTS fts5_test USING fts5(content)")
	if err != nil {
		return false
	}
	_, _ = idx.db.Exec("DROP TABLE IF EXISTS fts5_test")
	return true
}

// IndexFile indexes or reindexes one file's content.
func (idx *Index) IndexFile(path, name, ext, content string) error {
	tx, err := idx.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if idx.useFTS {
		if _, err = tx.Exec("DELETE FROM files_fts WHERE path = ?", path); err != nil {
			return err
		}
		if _, err = tx.Exec(`
			INSERT INTO files_fts (path, name, content) VALUES (?, ?, ?)
		`, path, name, content); err != nil {
			return err
		}
	}

	if _, err = tx.Exec("DELETE FROM files_meta WHERE path = ?", path); err != nil {
		return err
	}
	if _, err = tx.Exec(`
		INSERT INTO files_meta (path, name, ext, content, indexed_at)
		VALUES (?, ?, ?, ?, ?)
	`, path, name, ext, content, time.Now()); err != nil {
		return err
	}

	return tx.Commit()
}

// Remove drops a file from the index.
func (idx *Index) Remove(path string) error {
	tx, err := idx.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if idx.useFTS {
		if _, err = tx.Exec("DELETE FROM files_fts WHERE path = ?", path); err != nil {
			return err
		}
	}
	if _, err = tx.Exec("DELETE FROM files_meta WHERE path = ?", path); err != nil {
		return err
	}

	return tx.Commit()
}

// Rebuild reindexes every file in the forest, replacing previous contents.
// Binary and oversized files are skipped.
func (idx *Index) Rebuild(forest []*models.Item) (int, error) {
	if _, err := idx.db.Exec("DELETE FROM files_meta"); err != nil {
		return 0, err
	}
	if idx.useFTS {
		if _, err := idx.db.Exec("DELETE FROM files_fts"); err != nil {
			return 0, err
		}
	}

	indexed := 0
	var failed error
	models.Walk(forest, func(it *models.Item, _ int) {
		if failed != nil || it.IsFolder() {
			return
		}
		content, ok := readIndexable(it.Path)
		if !ok {
			return
		}
		if err := idx.IndexFile(it.Path, it.Name, it.Ext(), content); err != nil {
			failed = fmt.Errorf("index %s: %w", it.Path, err)
			return
		}
		indexed++
	})
	return indexed, failed
}

// Search performs a content search, via FTS5 when available.
func (idx *Index) Search(query string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 50
	}
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	if idx.useFTS {
		return idx.searchWithFTS(query, limit)
	}
	return idx.searchWithoutFTS(query, limit)
}

func (idx *Index) searchWithFTS(query string, limit int) ([]Result, error) {
	rows, err := idx.db.Query(`
		SELECT
			f.path, f.name, m.ext,
			snippet(files_fts, 2, '<match>', '</match>', '...', 32) as snippet
		FROM files_fts f
		JOIN files_meta m ON f.path = m.path
		WHERE files_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.Path, &r.Name, &r.Ext, &r.Snippet); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

func (idx *Index) searchWithoutFTS(query string, limit int) ([]Result, error) {
	pattern := "%" + strings.ReplaceAll(query, " ", "%") + "%"
	rows, err := idx.db.Query(`
		SELECT path, name, ext
		FROM files_meta
		WHERE name LIKE ? OR content LIKE ?
		ORDER BY name
		LIMIT ?
	`, pattern, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.Path, &r.Name, &r.Ext); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// Close closes the index.
func (idx *Index) Close() error {
	return idx.db.Close()
}

// readIndexable reads a file for indexing, refusing binaries and files over
// the size cap.
func readIndexable(path string) (string, bool) {
	info, err := os.Stat(path)
	if err != nil || info.Size() > maxIndexedSize {
		return "", false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return "", false
	}
	return string(data), true
}
