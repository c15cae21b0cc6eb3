package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jojiiikol/notes-backend/internal/common"
	"github.com/jojiiikol/notes-backend/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, note *Note) (*Note, error) {

	query :=
		`INSERT INTO notes (owner_id, title, description, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		note.OwnerID, note.Title, note.Description, note.CreatedAt, note.UpdatedAt).Scan(&note.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return note, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*Note, error) {

	query :=
		`SELECT id, owner_id, title, description, created_at, updated_at FROM notes
		 WHERE id = $1
		 `

	note := &Note{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&note.ID, &note.OwnerID, &note.Title, &note.Description, &note.CreatedAt, &note.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return note, nil
}

func (r *PostgresRepository) GetByOwner(ctx context.Context, ownerID int64) ([]*Note, error) {

	query :=
		`SELECT id, owner_id, title, description, created_at, updated_at FROM notes
		 WHERE owner_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return scanNotes(rows)
}

func (r *PostgresRepository) GetAll(ctx context.Context) ([]*Note, error) {

	query :=
		`SELECT id, owner_id, title, description, created_at, updated_at FROM notes
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return scanNotes(rows)
}

func (r *PostgresRepository) Update(ctx context.Context, note *Note) (*Note, error) {

	query :=
		`UPDATE notes SET title = $1, description = $2, updated_at = $3
		 WHERE id = $4
		 RETURNING id, owner_id, title, description, created_at, updated_at
		 `

	updated := &Note{}
	err := r.db.QueryRowContext(ctx, query,
		note.Title, note.Description, note.UpdatedAt, note.ID).Scan(
		&updated.ID, &updated.OwnerID, &updated.Title, &updated.Description, &updated.CreatedAt, &updated.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {

	query := `DELETE FROM notes WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}

	return nil
}

func scanNotes(rows *sql.Rows) ([]*Note, error) {
	var result []*Note
	for rows.Next() {
		note := &Note{}
		if err := rows.Scan(&note.ID, &note.OwnerID, &note.Title, &note.Description, &note.CreatedAt, &note.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
