package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/school/internal/database"
	"github.com/allisson/school/internal/student/domain"

	apperrors "github.com/allisson/school/internal/errors"
)

// MySQLStudentRepository handles student persistence for MySQL
type MySQLStudentRepository struct {
	db *sql.DB
}

// NewMySQLStudentRepository creates a new MySQLStudentRepository
func NewMySQLStudentRepository(db *sql.DB) *MySQLStudentRepository {
	return &MySQLStudentRepository{
		db: db,
	}
}

// Create inserts a new student
func (r *MySQLStudentRepository) Create(ctx context.Context, student *domain.Student) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO students (id, name, birth_date, cpf, email, password, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, NOW(), NOW())`

	_, err := querier.ExecContext(
		ctx,
		query,
		student.ID,
		student.Name,
		student.BirthDate,
		student.CPF,
		student.Email,
		student.Password,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return uniqueViolationToDomainError(err)
		}
		return apperrors.Wrap(err, "failed to create student")
	}
	return nil
}

// GetByID retrieves a student by ID
func (r *MySQLStudentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Student, error) {
	var student domain.Student
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, birth_date, cpf, email, password, created_at, updated_at
			  FROM students WHERE id = ?`

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&student.ID,
		&student.Name,
		&student.BirthDate,
		&student.CPF,
		&student.Email,
		&student.Password,
		&student.CreatedAt,
		&student.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStudentNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get student by id")
	}

	return &student, nil
}

// Search retrieves students matching the filter, ordered by name.
// Pages are 1-indexed; the zero-value filter lists the first page of everyone.
func (r *MySQLStudentRepository) Search(
	ctx context.Context,
	filter domain.Filter,
) ([]*domain.Student, error) {
	querier := database.GetTx(ctx, r.db)

	where, args := buildStudentWhere(filter, mysqlPlaceholder, "LIKE")

	query := `SELECT id, name, birth_date, cpf, email, password, created_at, updated_at
			  FROM students` + where + ` ORDER BY name ASC LIMIT ? OFFSET ?`
	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to search students")
	}
	defer func() { _ = rows.Close() }()

	return scanStudents(rows)
}

// ListAll retrieves every student ordered by name. Used for roster exports.
func (r *MySQLStudentRepository) ListAll(ctx context.Context) ([]*domain.Student, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, birth_date, cpf, email, password, created_at, updated_at
			  FROM students ORDER BY name ASC`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list students")
	}
	defer func() { _ = rows.Close() }()

	return scanStudents(rows)
}

// EmailExists reports whether a student other than excludeID uses the email.
// Pass uuid.Nil to check against all students.
func (r *MySQLStudentRepository) EmailExists(
	ctx context.Context,
	email string,
	excludeID uuid.UUID,
) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM students WHERE email = ? AND id <> ?)`

	var exists bool
	if err := querier.QueryRowContext(ctx, query, email, excludeID).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check student email")
	}
	return exists, nil
}

// CPFExists reports whether a student other than excludeID uses the CPF.
// Pass uuid.Nil to check against all students.
func (r *MySQLStudentRepository) CPFExists(
	ctx context.Context,
	cpf string,
	excludeID uuid.UUID,
) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM students WHERE cpf = ? AND id <> ?)`

	var exists bool
	if err := querier.QueryRowContext(ctx, query, cpf, excludeID).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check student cpf")
	}
	return exists, nil
}

// Update overwrites the mutable fields of a student and refreshes updated_at
func (r *MySQLStudentRepository) Update(ctx context.Context, student *domain.Student) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE students
			  SET name = ?, birth_date = ?, cpf = ?, email = ?, updated_at = NOW()
			  WHERE id = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		student.Name,
		student.BirthDate,
		student.CPF,
		student.Email,
		student.ID,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return uniqueViolationToDomainError(err)
		}
		return apperrors.Wrap(err, "failed to update student")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to update student")
	}
	if affected == 0 {
		return domain.ErrStudentNotFound
	}
	return nil
}

// Delete removes a student; enrollments cascade at the database level
func (r *MySQLStudentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM students WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete student")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to delete student")
	}
	if affected == 0 {
		return domain.ErrStudentNotFound
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
