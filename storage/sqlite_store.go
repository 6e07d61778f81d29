package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"xpquest/ledger"
	"xpquest/storage/migrations"
	"xpquest/story"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps progress and history in a SQLite database.
type SQLiteStore struct {
	sqlDB *sql.DB
}

// OpenSQLite opens the database at path and applies embedded migrations.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := migrate(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &SQLiteStore{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *SQLiteStore) Load(ctx context.Context) (story.GameState, error) {
	if err := ctx.Err(); err != nil {
		return story.GameState{}, err
	}
	var snap ledger.Snapshot
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT xp, level, total_xp FROM progress WHERE id = 1`,
	).Scan(&snap.XP, &snap.Level, &snap.TotalXP)
	if errors.Is(err, sql.ErrNoRows) {
		return story.GameState{}, ErrNotFound
	}
	if err != nil {
		return story.GameState{}, fmt.Errorf("load progress: %w", err)
	}

	rows, err := s.sqlDB.QueryContext(ctx, `SELECT role, content FROM history ORDER BY seq`)
	if err != nil {
		return story.GameState{}, fmt.Errorf("load history: %w", err)
	}
	defer rows.Close()

	st := story.GameState{Snapshot: snap, History: []story.Turn{}}
	for rows.Next() {
		var turn story.Turn
		if err := rows.Scan(&turn.Role, &turn.Content); err != nil {
			return story.GameState{}, fmt.Errorf("scan history: %w", err)
		}
		st.History = append(st.History, turn)
	}
	if err := rows.Err(); err != nil {
		return story.GameState{}, fmt.Errorf("iterate history: %w", err)
	}
	return st, nil
}

// Save replaces the stored progress and history in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, st story.GameState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO progress (id, xp, level, total_xp, updated_at) VALUES (1, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   xp = excluded.xp,
		   level = excluded.level,
		   total_xp = excluded.total_xp,
		   updated_at = excluded.updated_at`,
		st.XP, st.Level, st.TotalXP, time.Now().UTC().UnixMilli(),
	); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM history`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	for i, turn := range st.History {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO history (seq, role, content) VALUES (?, ?, ?)`,
			i, turn.Role, turn.Content,
		); err != nil {
			return fmt.Errorf("save history turn %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// migrate applies the embedded .sql files in name order. PRAGMA user_version
// holds how many have run.
func migrate(sqlDB *sql.DB, migrationFS fs.FS) error {
	files, err := fs.Glob(migrationFS, "*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	var version int
	if err := sqlDB.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version > len(files) {
		return fmt.Errorf("schema version %d is newer than this build (%d)", version, len(files))
	}
	for i := version; i < len(files); i++ {
		schema, err := fs.ReadFile(migrationFS, files[i])
		if err != nil {
			return fmt.Errorf("read migration %s: %w", files[i], err)
		}
		tx, err := sqlDB.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %s: %w", files[i], err)
		}
		if _, err := tx.Exec(string(schema)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("exec migration %s: %w", files[i], err)
		}
		// PRAGMA statements take no bind parameters.
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %s: %w", files[i], err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", files[i], err)
		}
	}
	return nil
}
