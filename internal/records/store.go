package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"lathe/internal/config"
)

// Store manages format record persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the record database and verifies the schema.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.LogDir, "formats.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
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
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// GetOrCreate returns the record for (owner, format), inserting a fresh one
// with zero progress and no output file when none exists. The UNIQUE
// constraint makes this safe under concurrent callers; the loser of an
// insert race reads the winner's row.
func (s *Store) GetOrCreate(ctx context.Context, owner OwnerRef, format string) (*Record, bool, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO format_records (
            owner_kind, owner_id, field_name, format_name,
            progress, output_file, created_at, updated_at
        ) VALUES (?, ?, ?, ?, 0, NULL, ?, ?)
        ON CONFLICT (owner_kind, owner_id, field_name, format_name) DO NOTHING`,
		owner.Kind, owner.ID, owner.Field, format,
		timestamp, timestamp,
	)
	if err != nil {
		return nil, false, fmt.Errorf("insert record: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("rows affected: %w", err)
	}

	record, err := s.Get(ctx, owner, format)
	if err != nil {
		return nil, false, err
	}
	if record == nil {
		return nil, false, errors.New("record vanished after insert")
	}
	return record, affected > 0, nil
}

// Get fetches the record for (owner, format), or nil when absent.
func (s *Store) Get(ctx context.Context, owner OwnerRef, format string) (*Record, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+recordColumns+` FROM format_records
         WHERE owner_kind = ? AND owner_id = ? AND field_name = ? AND format_name = ?`,
		owner.Kind, owner.ID, owner.Field, format,
	)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	return record, nil
}

// SetProgress persists a new progress value and mirrors it on rec.
func (s *Store) SetProgress(ctx context.Context, rec *Record, progress int) error {
	if rec == nil {
		return errors.New("record is nil")
	}
	now := time.Now().UTC()
	_, err := s.db.ExecContext(
		ctx,
		`UPDATE format_records SET progress = ?, updated_at = ? WHERE id = ?`,
		progress, now.Format(time.RFC3339Nano), rec.ID,
	)
	if err != nil {
		return fmt.Errorf("update progress: %w", err)
	}
	rec.Progress = progress
	rec.UpdatedAt = now
	return nil
}

// ResetProgress returns the record to zero progress before a fresh encode.
func (s *Store) ResetProgress(ctx context.Context, rec *Record) error {
	return s.SetProgress(ctx, rec, 0)
}

// SetOutputFile commits the produced artifact on the record. An output file
// implies a finished encode, so progress is forced to 100 in the same write.
func (s *Store) SetOutputFile(ctx context.Context, rec *Record, name string) error {
	if rec == nil {
		return errors.New("record is nil")
	}
	if name == "" {
		return errors.New("output file name is empty")
	}
	now := time.Now().UTC()
	_, err := s.db.ExecContext(
		ctx,
		`UPDATE format_records SET output_file = ?, progress = 100, updated_at = ? WHERE id = ?`,
		name, now.Format(time.RFC3339Nano), rec.ID,
	)
	if err != nil {
		return fmt.Errorf("set output file: %w", err)
	}
	rec.OutputFile = name
	rec.Progress = 100
	rec.UpdatedAt = now
	return nil
}

// Delete removes a record by identifier. A failed encode leaves no row.
func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM format_records WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete record: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// ListByOwner returns records for an owning entity ordered by creation.
// When owner.Field is empty, records for every field of the entity match.
func (s *Store) ListByOwner(ctx context.Context, owner OwnerRef) ([]*Record, error) {
	query := `SELECT ` + recordColumns + ` FROM format_records WHERE owner_kind = ? AND owner_id = ?`
	args := []any{owner.Kind, owner.ID}
	if owner.Field != "" {
		query += ` AND field_name = ?`
		args = append(args, owner.Field)
	}
	query += ` ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list by owner: %w", err)
	}
	defer rows.Close()

	var results []*Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, record)
	}
	return results, rows.Err()
}

// List returns all records ordered by creation.
func (s *Store) List(ctx context.Context) ([]*Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+recordColumns+` FROM format_records ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var results []*Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, record)
	}
	return results, rows.Err()
}

const recordColumns = "id, owner_kind, owner_id, field_name, format_name, progress, output_file, created_at, updated_at"

func scanRecord(scanner interface{ Scan(dest ...any) error }) (*Record, error) {
	var (
		id         int64
		ownerKind  string
		ownerID    string
		fieldName  string
		formatName string
		progress   int
		outputFile sql.NullString
		createdRaw string
		updatedRaw string
	)

	if err := scanner.Scan(
		&id, &ownerKind, &ownerID, &fieldName, &formatName,
		&progress, &outputFile, &createdRaw, &updatedRaw,
	); err != nil {
		return nil, err
	}

	record := &Record{
		ID:         id,
		Owner:      OwnerRef{Kind: ownerKind, ID: ownerID, Field: fieldName},
		Format:     formatName,
		Progress:   progress,
		OutputFile: outputFile.String,
	}
	if created, err := time.Parse(time.RFC3339Nano, createdRaw); err == nil {
		record.CreatedAt = created
	}
	if updated, err := time.Parse(time.RFC3339Nano, updatedRaw); err == nil {
		record.UpdatedAt = updated
	}
	return record, nil
}
