// Package synctex stores the mapping between source lines and page regions
// used for forward search (source to page) and inverse search (page to source).
package synctex

import (
	"context"
	"database/sql"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/cristianoliveira/docview/internal/errors"
	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS sync_records (
	id   INTEGER PRIMARY KEY AUTOINCREMENT,
	file TEXT    NOT NULL,
	line INTEGER NOT NULL,
	col  INTEGER NOT NULL DEFAULT 0,
	page INTEGER NOT NULL,
	x    INTEGER NOT NULL,
	y    INTEGER NOT NULL,
	w    INTEGER NOT NULL,
	h    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sync_records_file_line ON sync_records(file, line);
CREATE INDEX IF NOT EXISTS idx_sync_records_page ON sync_records(page);
`

// Record maps a source position to a region of a page.
type Record struct {
	File   string
	Line   int
	Column int
	Page   int
	Rect   image.Rectangle
}

// Store is a SQLite-backed sync index.
type Store struct {
	db *sql.DB
}

// Open opens or creates the index at dbPath.
func Open(dbPath string) (*Store, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("synctex: db path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("synctex: create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("synctex: open db: %w", err)
	}

	s := &Store{db: db}
	if err := s.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	if _, err := s.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("synctex: set busy timeout: %w", err)
	}
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("synctex: create schema: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func normalizeFile(file string) string {
	return filepath.ToSlash(filepath.Clean(file))
}

// Add inserts records in a single transaction.
func (s *Store) Add(ctx context.Context, records ...Record) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("synctex: begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO sync_records (file, line, col, page, x, y, w, h) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("synctex: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if err := validateRecord(r); err != nil {
			return err
		}
		rect := r.Rect.Canon()
		if _, err := stmt.ExecContext(ctx, normalizeFile(r.File), r.Line, r.Column, r.Page,
			rect.Min.X, rect.Min.Y, rect.Dx(), rect.Dy()); err != nil {
			return fmt.Errorf("synctex: insert %s:%d: %w", r.File, r.Line, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("synctex: commit: %w", err)
	}
	return nil
}

func validateRecord(r Record) error {
	switch {
	case strings.TrimSpace(r.File) == "":
		return fmt.Errorf("synctex: record file cannot be empty")
	case r.Line < 1:
		return fmt.Errorf("synctex: invalid line %d", r.Line)
	case r.Page < 1:
		return fmt.Errorf("synctex: invalid page %d", r.Page)
	}
	return nil
}

// Clear removes all records of file, or every record when file is empty.
func (s *Store) Clear(ctx context.Context, file string) error {
	var err error
	if file == "" {
		_, err = s.db.ExecContext(ctx, `DELETE FROM sync_records`)
	} else {
		_, err = s.db.ExecContext(ctx, `DELETE FROM sync_records WHERE file = ?`, normalizeFile(file))
	}
	if err != nil {
		return fmt.Errorf("synctex: clear: %w", err)
	}
	return nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sync_records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("synctex: count: %w", err)
	}
	return n, nil
}

// Files lists the distinct source files in the index.
func (s *Store) Files(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT file FROM sync_records ORDER BY file`)
	if err != nil {
		return nil, fmt.Errorf("synctex: list files: %w", err)
	}
	defer rows.Close()

	var files []string
	for rows.Next() {
		var f string
		if err := rows.Scan(&f); err != nil {
			return nil, fmt.Errorf("synctex: scan file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// resolveFile maps file to the stored name, matching on the base name when
// the exact path is unknown.
func (s *Store) resolveFile(ctx context.Context, file string) (string, error) {
	file = normalizeFile(file)
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM sync_records WHERE file = ? LIMIT 1`, file).Scan(&exists)
	if err == nil {
		return file, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("synctex: lookup file: %w", err)
	}

	files, err := s.Files(ctx)
	if err != nil {
		return "", err
	}
	base := filepath.Base(file)
	for _, f := range files {
		if filepath.Base(f) == base {
			return f, nil
		}
	}
	return "", errors.New(errors.KindNotFound, "forward search", file, nil)
}

// Forward returns the page and regions for the indexed line nearest to line
// in file. When a line spans several pages the first page wins.
func (s *Store) Forward(ctx context.Context, file string, line int) (int, []image.Rectangle, error) {
	stored, err := s.resolveFile(ctx, file)
	if err != nil {
		return 0, nil, err
	}

	var nearest int
	err = s.db.QueryRowContext(ctx,
		`SELECT line FROM sync_records WHERE file = ? ORDER BY ABS(line - ?), line LIMIT 1`,
		stored, line).Scan(&nearest)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil, errors.New(errors.KindNotFound, "forward search", fmt.Sprintf("%s:%d", file, line), nil)
	}
	if err != nil {
		return 0, nil, fmt.Errorf("synctex: nearest line: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT page, x, y, w, h FROM sync_records WHERE file = ? AND line = ? ORDER BY page, y, x`,
		stored, nearest)
	if err != nil {
		return 0, nil, fmt.Errorf("synctex: forward query: %w", err)
	}
	defer rows.Close()

	page := 0
	var rects []image.Rectangle
	for rows.Next() {
		var p, x, y, w, h int
		if err := rows.Scan(&p, &x, &y, &w, &h); err != nil {
			return 0, nil, fmt.Errorf("synctex: scan record: %w", err)
		}
		if page == 0 {
			page = p
		}
		if p != page {
			break
		}
		rects = append(rects, image.Rect(x, y, x+w, y+h))
	}
	if err := rows.Err(); err != nil {
		return 0, nil, fmt.Errorf("synctex: forward rows: %w", err)
	}
	return page, rects, nil
}

// Inverse returns the record under pt on page, or the closest one on that page.
func (s *Store) Inverse(ctx context.Context, page int, pt image.Point) (Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT file, line, col, x, y, w, h FROM sync_records WHERE page = ? ORDER BY id`, page)
	if err != nil {
		return Record{}, fmt.Errorf("synctex: inverse query: %w", err)
	}
	defer rows.Close()

	var best Record
	bestDist := -1
	for rows.Next() {
		r := Record{Page: page}
		var x, y, w, h int
		if err := rows.Scan(&r.File, &r.Line, &r.Column, &x, &y, &w, &h); err != nil {
			return Record{}, fmt.Errorf("synctex: scan record: %w", err)
		}
		r.Rect = image.Rect(x, y, x+w, y+h)
		d := distance(r.Rect, pt)
		if bestDist < 0 || d < bestDist {
			best, bestDist = r, d
		}
		if d == 0 {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return Record{}, fmt.Errorf("synctex: inverse rows: %w", err)
	}
	if bestDist < 0 {
		return Record{}, errors.New(errors.KindNotFound, "inverse search", fmt.Sprintf("page %d (%d,%d)", page, pt.X, pt.Y), nil)
	}
	return best, nil
}

// distance is the squared distance from pt to r, zero inside r.
func distance(r image.Rectangle, pt image.Point) int {
	dx := max(r.Min.X-pt.X, 0, pt.X-(r.Max.X-1))
	dy := max(r.Min.Y-pt.Y, 0, pt.Y-(r.Max.Y-1))
	return dx*dx + dy*dy
}
