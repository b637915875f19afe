package issue

import (
	"context"
	"database/sql"
	"errors"
)

// SQLiteStore persists issues in a single SQLite table. The schema mirrors
// the service contract: status/priority are CHECK-constrained enumerations
// and updated_at stays NULL until the first status change.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	const q = `
CREATE TABLE IF NOT EXISTS issues (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    status TEXT CHECK(status IN ('Open', 'In Progress', 'Resolved')) NOT NULL DEFAULT 'Open',
    priority TEXT CHECK(priority IN ('Low', 'Medium', 'High')) NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME
);
`
	_, err := s.db.ExecContext(ctx, q)
	return err
}

func (s *SQLiteStore) List(ctx context.Context, limit, offset int) ([]Issue, int, error) {
	const q = `
SELECT id, title, description, status, priority, created_at, updated_at
FROM issues
ORDER BY id
LIMIT ? OFFSET ?;
`
	rows, err := s.db.QueryContext(ctx, q, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = rows.Close() }()

	out := []Issue{}
	for rows.Next() {
		is, err := scanIssue(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, is)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM issues;`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (Issue, error) {
	const q = `
SELECT id, title, description, status, priority, created_at, updated_at
FROM issues
WHERE id = ?;
`
	is, err := scanIssue(s.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Issue{}, ErrNotFound
		}
		return Issue{}, err
	}
	return is, nil
}

func (s *SQLiteStore) Insert(ctx context.Context, is Issue) (int64, error) {
	const q = `
INSERT INTO issues (title, description, status, priority, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, NULL);
`
	res, err := s.db.ExecContext(ctx, q, is.Title, is.Description, string(is.Status), string(is.Priority), is.CreatedAt)
	if err != nil {
		return 0, err
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return 0, ErrNothingInserted
	}
	return res.LastInsertId()
}

func (s *SQLiteStore) UpdateStatus(ctx context.Context, id int64, status Status, updatedAt string) (int64, error) {
	const q = `
UPDATE issues
SET status = ?, updated_at = ?
WHERE id = ?;
`
	res, err := s.db.ExecContext(ctx, q, string(status), updatedAt, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *SQLiteStore) DeleteByID(ctx context.Context, id int64) (int64, error) {
	const q = `
DELETE FROM issues
WHERE id = ?;
`
	res, err := s.db.ExecContext(ctx, q, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIssue(row rowScanner) (Issue, error) {
	var (
		is        Issue
		updatedAt sql.NullString
	)
	err := row.Scan(&is.ID, &is.Title, &is.Description, &is.Status, &is.Priority, &is.CreatedAt, &updatedAt)
	if err != nil {
		return Issue{}, err
	}
	if updatedAt.Valid {
		is.UpdatedAt = &updatedAt.String
	}
	return is, nil
}
