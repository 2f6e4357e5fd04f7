package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/school/internal/class/domain"
	"github.com/allisson/school/internal/database"

	apperrors "github.com/allisson/school/internal/errors"
)

// MySQLClassRepository handles class persistence for MySQL
type MySQLClassRepository struct {
	db *sql.DB
}

// NewMySQLClassRepository creates a new MySQLClassRepository
func NewMySQLClassRepository(db *sql.DB) *MySQLClassRepository {
	return &MySQLClassRepository{
		db: db,
	}
}

// Create inserts a new class
func (r *MySQLClassRepository) Create(ctx context.Context, class *domain.Class) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO classes (id, name, description, created_at, updated_at)
			  VALUES (?, ?, ?, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query, class.ID, class.Name, class.Description)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrClassNameInUse
		}
		return apperrors.Wrap(err, "failed to create class")
	}
	return nil
}

// GetByID retrieves a class by ID
func (r *MySQLClassRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Class, error) {
	var class domain.Class
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, description, created_at, updated_at
			  FROM classes WHERE id = ?`

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
func (r *MySQLClassRepository) Search(
	ctx context.Context,
	filter domain.Filter,
) ([]*domain.Class, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, description, created_at, updated_at FROM classes`
	var args []any
	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		query += " WHERE name LIKE ?"
	}
	query += " ORDER BY name ASC LIMIT ? OFFSET ?"
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
func (r *MySQLClassRepository) NameExists(
	ctx context.Context,
	name string,
	excludeID uuid.UUID,
) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM classes WHERE name = ? AND id <> ?)`

	var exists bool
	if err := querier.QueryRowContext(ctx, query, name, excludeID).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check class name")
	}
	return exists, nil
}

// Update overwrites the mutable fields of a class and refreshes updated_at
func (r *MySQLClassRepository) Update(ctx context.Context, class *domain.Class) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE classes
			  SET name = ?, description = ?, updated_at = NOW()
			  WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, class.Name, class.Description, class.ID)
	if err != nil {
		if isMySQLUniqueViolation(err) {
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
func (r *MySQLClassRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM classes WHERE id = ?`

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

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint violation
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// MySQL: "Error 1062: Duplicate entry"
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "1062")
}
