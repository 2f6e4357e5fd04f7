// Package repository provides data persistence implementations for class entities.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/school/internal/class/domain"
	"github.com/allisson/school/internal/database"

	apperrors "github.com/allisson/school/internal/errors"
)

// PostgreSQLClassRepository handles class persistence for PostgreSQL
type PostgreSQLClassRepository struct {
	db *sql.DB
}

// NewPostgreSQLClassRepository creates a new PostgreSQLClassRepository
func NewPostgreSQLClassRepository(db *sql.DB) *PostgreSQLClassRepository {
	return &PostgreSQLClassRepository{
		db: db,
	}
}

// Create inserts a new class
func (r *PostgreSQLClassRepository) Create(ctx context.Context, class *domain.Class) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO classes (id, name, description, created_at, updated_at)
			  VALUES ($1, $2, $3, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query, class.ID, class.Name, class.Description)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrClassNameInUse
		}
		return apperrors.Wrap(err, "failed to create class")
	}
	return nil
}

// GetByID retrieves a class by ID
func (r *PostgreSQLClassRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Class, error) {
	var class domain.Class
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, description, created_at, updated_at
			  FROM classes WHERE id = $1`

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&class.ID, &class.Name, &class.Description, &class.CreatedAt, &class.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrClassNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get class by id")
	}

	return &class, nil
}

// Search retrieves classes matching the filter, ordered by name.
// Pages are 1-indexed; the zero-value filter lists the first page of everything.
func (r *PostgreSQLClassRepository) Search(
	ctx context.Context,
	filter domain.Filter,
) ([]*domain.Class, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, description, created_at, updated_at FROM classes`
	var args []any
	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		query += " WHERE name ILIKE $1"
	}
	query += fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to search classes")
	}
	defer func() { _ = rows.Close() }()

	return scanClasses(rows)
}

// NameExists reports whether a class other than excludeID uses the name.
// Pass uuid.Nil to check against all classes.
func (r *PostgreSQLClassRepository) NameExists(
	ctx context.Context,
	name string,
	excludeID uuid.UUID,
) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM classes WHERE name = $1 AND id <> $2)`

	var exists bool
	if err := querier.QueryRowContext(ctx, query, name, excludeID).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check class name")
	}
	return exists, nil
}

// Update overwrites the mutable fields of a class and refreshes updated_at
func (r *PostgreSQLClassRepository) Update(ctx context.Context, class *domain.Class) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE classes
			  SET name = $1, description = $2, updated_at = NOW()
			  WHERE id = $3`

	result, err := querier.ExecContext(ctx, query, class.Name, class.Description, class.ID)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrClassNameInUse
		}
		return apperrors.Wrap(err, "failed to update class")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to update class")
	}
	if affected == 0 {
		return domain.ErrClassNotFound
	}
	return nil
}

// Delete removes a class; enrollments cascade at the database level
func (r *PostgreSQLClassRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM classes WHERE id = $1`

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete class")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to delete class")
	}
	if affected == 0 {
		return domain.ErrClassNotFound
	}
	return nil
}

// scanClasses reads every row into a slice of classes.
func scanClasses(rows *sql.Rows) ([]*domain.Class, error) {
	var classes []*domain.Class
	for rows.Next() {
		var class domain.Class
		err := rows.Scan(&class.ID, &class.Name, &class.Description, &class.CreatedAt, &class.UpdatedAt)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan class row")
		}
		classes = append(classes, &class)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate class rows")
	}
	return classes, nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// PostgreSQL: "duplicate key value violates unique constraint" or "pq: duplicate key"
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}
