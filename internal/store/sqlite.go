package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"todo-cli/internal/model"

	_ "modernc.org/sqlite"
)

const (
	sqliteFileName = "todo.sqlite"
	schemaVersion  = 1
)

type SQLite struct {
	Dir string
	db  *sql.DB
}

func SQLitePath(dir string) string {
	return filepath.Join(dir, sqliteFileName)
}

// OpenSQLite opens (creating if needed) the task database under dir.
func OpenSQLite(ctx context.Context, dir string) (*SQLite, error) {
	if dir == "" {
		return nil, errors.New("store dir is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", SQLitePath(dir))
	if err != nil {
		return nil, err
	}
	// The TUI and scripted CLI calls may share the file.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate %s: %w", SQLitePath(dir), err)
	}
	return &SQLite{Dir: dir, db: db}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			done INTEGER NOT NULL DEFAULT 0,
			created_at_unixms INTEGER NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}

	var v string
	err := db.QueryRowContext(ctx, `SELECT v FROM meta WHERE k = 'schema_version'`).Scan(&v)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = db.ExecContext(ctx, `INSERT INTO meta(k, v) VALUES('schema_version', ?)`, strconv.Itoa(schemaVersion))
		return err
	case err != nil:
		return err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid schema_version %q", v)
	}
	if n > schemaVersion {
		return fmt.Errorf("database schema %d is newer than supported %d", n, schemaVersion)
	}
	return nil
}

func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLite) List(ctx context.Context) ([]model.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, done, created_at_unixms, updated_at_unixms FROM tasks ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Task{}
	for rows.Next() {
		var (
			t                  model.Task
			done               int
			createdMs, updated int64
		)
		if err := rows.Scan(&t.ID, &t.Title, &done, &createdMs, &updated); err != nil {
			return nil, err
		}
		t.Done = done != 0
		t.CreatedAt = time.UnixMilli(createdMs).UTC()
		t.UpdatedAt = time.UnixMilli(updated).UTC()
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *SQLite) Create(ctx context.Context, title string) (model.Task, error) {
	now := nowUTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks(title, done, created_at_unixms, updated_at_unixms) VALUES(?, 0, ?, ?)`,
		title, now.UnixMilli(), now.UnixMilli(),
	)
	if err != nil {
		return model.Task{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Task{}, err
	}
	return model.Task{ID: id, Title: title, CreatedAt: now, UpdatedAt: now}, nil
}

func (s *SQLite) Update(ctx context.Context, t model.Task) (model.Task, error) {
	t.UpdatedAt = nowUTC()
	res, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET title = ?, done = ?, updated_at_unixms = ? WHERE id = ?`,
		t.Title, boolInt(t.Done), t.UpdatedAt.UnixMilli(), t.ID,
	)
	if err != nil {
		return model.Task{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return model.Task{}, err
	} else if n == 0 {
		return model.Task{}, notFound(t.ID)
	}
	return t, nil
}

func (s *SQLite) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(id)
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
