// Package repository provides data persistence implementations for student entities.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/school/internal/database"
	"github.com/allisson/school/internal/student/domain"

	apperrors "github.com/allisson/school/internal/errors"
)

// PostgreSQLStudentRepository handles student persistence for PostgreSQL
type PostgreSQLStudentRepository struct {
	db *sql.DB
}

// NewPostgreSQLStudentRepository creates a new PostgreSQLStudentRepository
func NewPostgreSQLStudentRepository(db *sql.DB) *PostgreSQLStudentRepository {
	return &PostgreSQLStudentRepository{
		db: db,
	}
}

// Create inserts a new student
func (r *PostgreSQLStudentRepository) Create(ctx context.Context, student *domain.Student) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO students (id, name, birth_date, cpf, email, password, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())`

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
		if isPostgreSQLUniqueViolation(err) {
			return uniqueViolationToDomainError(err)
		}
		return apperrors.Wrap(err, "failed to create student")
	}
	return nil
}

// GetByID retrieves a student by ID
func (r *PostgreSQLStudentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Student, error) {
	var student domain.Student
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, birth_date, cpf, email, password, created_at, updated_at
			  FROM students WHERE id = $1`

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
func (r *PostgreSQLStudentRepository) Search(
	ctx context.Context,
	filter domain.Filter,
) ([]*domain.Student, error) {
	querier := database.GetTx(ctx, r.db)

	where, args := buildStudentWhere(filter, postgresPlaceholder, "ILIKE")

	query := fmt.Sprintf(
		`SELECT id, name, birth_date, cpf, email, password, created_at, updated_at
		 FROM students%s ORDER BY name ASC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2,
	)
	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to search students")
	}
	defer func() { _ = rows.Close() }()

	return scanStudents(rows)
}

// ListAll retrieves every student ordered by name. Used for roster exports.
func (r *PostgreSQLStudentRepository) ListAll(ctx context.Context) ([]*domain.Student, error) {
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
func (r *PostgreSQLStudentRepository) EmailExists(
	ctx context.Context,
	email string,
	excludeID uuid.UUID,
) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM students WHERE email = $1 AND id <> $2)`

	var exists bool
	if err := querier.QueryRowContext(ctx, query, email, excludeID).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check student email")
	}
	return exists, nil
}

// CPFExists reports whether a student other than excludeID uses the CPF.
// Pass uuid.Nil to check against all students.
func (r *PostgreSQLStudentRepository) CPFExists(
	ctx context.Context,
	cpf string,
	excludeID uuid.UUID,
) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM students WHERE cpf = $1 AND id <> $2)`

	var exists bool
	if err := querier.QueryRowContext(ctx, query, cpf, excludeID).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check student cpf")
	}
	return exists, nil
}

// Update overwrites the mutable fields of a student and refreshes updated_at
func (r *PostgreSQLStudentRepository) Update(ctx context.Context, student *domain.Student) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE students
			  SET name = $1, birth_date = $2, cpf = $3, email = $4, updated_at = NOW()
			  WHERE id = $5`

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
		if isPostgreSQLUniqueViolation(err) {
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
func (r *PostgreSQLStudentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM students WHERE id = $1`

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

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// PostgreSQL: "duplicate key value violates unique constraint" or "pq: duplicate key"
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}

// uniqueViolationToDomainError maps a unique violation to the field-specific
// domain error using the constraint name embedded in the driver message.
func uniqueViolationToDomainError(err error) error {
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "cpf") {
		return domain.ErrCPFAlreadyRegistered
	}
	return domain.ErrEmailAlreadyRegistered
}
