package projectstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"montage/internal/config"
	"montage/internal/project"
)

// ErrProjectNotFound indicates the requested project id is not stored.
var ErrProjectNotFound = errors.New("project not found")

// Store manages project persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open initializes or connects to the project database, acquires the write
// lock, and applies migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.ProjectDir(), "projects.db")
	lock := flock.New(dbPath + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire project lock: %w", err)
	}
	if !ok {
		return nil, errors.New("another montage instance holds the project database")
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lock: lock}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}

	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection and releases the write lock.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	if s.lock != nil {
		if unlockErr := s.lock.Unlock(); unlockErr != nil && err == nil {
			err = unlockErr
		}
	}
	return err
}

// Save upserts the project, preserving created_at on updates.
func (s *Store) Save(ctx context.Context, p *project.Project) error {
	if p == nil || p.ID == "" {
		return errors.New("save project: missing project id")
	}

	tracks, err := encodeTracks(p.Tracks)
	if err != nil {
		return fmt.Errorf("save project %s: %w", p.ID, err)
	}
	effectsRaw, err := encodeEffects(p.Effects)
	if err != nil {
		return fmt.Errorf("save project %s: %w", p.ID, err)
	}
	recordings, err := encodeRecordings(p.Recordings)
	if err != nil {
		return fmt.Errorf("save project %s: %w", p.ID, err)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO projects (id, name, created_at, updated_at, tracks, effects, recordings)
         VALUES (?, ?, ?, ?, ?, ?, ?)
         ON CONFLICT(id) DO UPDATE SET
            name = excluded.name,
            updated_at = excluded.updated_at,
            tracks = excluded.tracks,
            effects = excluded.effects,
            recordings = excluded.recordings`,
		p.ID, p.Name, now, now, string(tracks), string(effectsRaw), string(recordings),
	)
	if err != nil {
		return fmt.Errorf("save project %s: %w", p.ID, err)
	}
	return nil
}

// Load reads the project with the given id.
func (s *Store) Load(ctx context.Context, id string) (*project.Project, error) {
	row := s.db.QueryRowContext(
		ctx,
		"SELECT id, name, tracks, effects, recordings FROM projects WHERE id = ?",
		id,
	)

	var (
		p          project.Project
		tracks     string
		effectsRaw string
		recordings string
	)
	if err := row.Scan(&p.ID, &p.Name, &tracks, &effectsRaw, &recordings); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("load project %s: %w", id, ErrProjectNotFound)
		}
		return nil, fmt.Errorf("load project %s: %w", id, err)
	}

	var err error
	if p.Tracks, err = decodeTracks([]byte(tracks)); err != nil {
		return nil, fmt.Errorf("load project %s: %w", id, err)
	}
	if p.Effects, err = decodeEffects([]byte(effectsRaw)); err != nil {
		return nil, fmt.Errorf("load project %s: %w", id, err)
	}
	if p.Recordings, err = decodeRecordings([]byte(recordings)); err != nil {
		return nil, fmt.Errorf("load project %s: %w", id, err)
	}
	return &p, nil
}

// List returns stored project summaries, most recently updated first.
func (s *Store) List(ctx context.Context) ([]Info, error) {
	rows, err := s.db.QueryContext(
		ctx,
		"SELECT id, name, created_at, updated_at FROM projects ORDER BY updated_at DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var infos []Info
	for rows.Next() {
		var (
			info      Info
			createdAt string
			updatedAt string
		)
		if err := rows.Scan(&info.ID, &info.Name, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan project row: %w", err)
		}
		info.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		info.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate project rows: %w", err)
	}
	return infos, nil
}

// Delete removes the stored project with the given id.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("delete project %s: %w", id, ErrProjectNotFound)
	}
	return nil
}
