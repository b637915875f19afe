package issue

import (
	"context"
	"database/sql"
	"errors"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	const q = `
CREATE TABLE IF NOT EXISTS issues (
    id BIGSERIAL PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'Open' CHECK (status IN ('Open', 'In Progress', 'Resolved')),
    priority TEXT NOT NULL CHECK (priority IN ('Low', 'Medium', 'High')),
    created_at TEXT NOT NULL,
    updated_at TEXT
);
`
	_, err := s.db.ExecContext(ctx, q)
	return err
}

func (s *PostgresStore) List(ctx context.Context, limit, offset int) ([]Issue, int, error) {
	const q = `
SELECT id, title, description, status, priority, created_at, updated_at
FROM issues
ORDER BY id
LIMIT $1 OFFSET $2;
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

func (s *PostgresStore) GetByID(ctx context.Context, id int64) (Issue, error) {
	const q = `
SELECT id, title, description, status, priority, created_at, updated_at
FROM issues
WHERE id = $1;
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

func (s *PostgresStore) Insert(ctx context.Context, is Issue) (int64, error) {
	const q = `
INSERT INTO issues (title, description, status, priority, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, NULL)
RETURNING id;
`
	var id int64
	err := s.db.QueryRowContext(ctx, q,
		is.Title, is.Description, string(is.Status), string(is.Priority), is.CreatedAt,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNothingInserted
		}
		return 0, err
	}
	return id, nil
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, id int64, status Status, updatedAt string) (int64, error) {
	const q = `
UPDATE issues
SET status = $2, updated_at = $3
WHERE id = $1;
`
	res, err := s.db.ExecContext(ctx, q, id, string(status), updatedAt)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *PostgresStore) DeleteByID(ctx context.Context, id int64) (int64, error) {
	const q = `
DELETE FROM issues
WHERE id = $1;
`
	res, err := s.db.ExecContext(ctx, q, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
