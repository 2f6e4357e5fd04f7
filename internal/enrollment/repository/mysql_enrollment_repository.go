package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/school/internal/database"
	"github.com/allisson/school/internal/enrollment/domain"

	apperrors "github.com/allisson/school/internal/errors"
)

// MySQLEnrollmentRepository handles enrollment persistence for MySQL
type MySQLEnrollmentRepository struct {
	db *sql.DB
}

// NewMySQLEnrollmentRepository creates a new MySQLEnrollmentRepository
func NewMySQLEnrollmentRepository(db *sql.DB) *MySQLEnrollmentRepository {
	return &MySQLEnrollmentRepository{
		db: db,
	}
}

// Create inserts a new enrollment
func (r *MySQLEnrollmentRepository) Create(ctx context.Context, enrollment *domain.Enrollment) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO enrollments (student_id, class_id, registration_date, created_at, updated_at)
			  VALUES (?, ?, ?, NOW(), NOW())`

	_, err := querier.ExecContext(
		ctx,
		query,
		enrollment.StudentID,
		enrollment.ClassID,
		enrollment.RegistrationDate,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrEnrollmentAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create enrollment")
	}
	return nil
}

// ListWithNames retrieves all enrollments joined with student and class names,
// ordered by student name then class name.
func (r *MySQLEnrollmentRepository) ListWithNames(ctx context.Context) ([]*domain.View, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT e.student_id, s.name, e.class_id, c.name, e.registration_date
			  FROM enrollments e
			  JOIN students s ON s.id = e.student_id
			  JOIN classes c ON c.id = e.class_id
			  ORDER BY s.name ASC, c.name ASC`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list enrollments")
	}
	defer func() { _ = rows.Close() }()

	var views []*domain.View
	for rows.Next() {
		var view domain.View
		err := rows.Scan(
			&view.StudentID,
			&view.StudentName,
			&view.ClassID,
			&view.ClassName,
			&view.RegistrationDate,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan enrollment row")
		}
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate enrollment rows")
	}
	return views, nil
}

// UpdateRegistrationDate overwrites the registration date of the identified pair
func (r *MySQLEnrollmentRepository) UpdateRegistrationDate(
	ctx context.Context,
	studentID, classID uuid.UUID,
	registrationDate time.Time,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE enrollments
			  SET registration_date = ?, updated_at = NOW()
			  WHERE student_id = ? AND class_id = ?`

	result, err := querier.ExecContext(ctx, query, registrationDate, studentID, classID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update enrollment")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to update enrollment")
	}
	if affected == 0 {
		return domain.ErrEnrollmentNotFound
	}
	return nil
}

// DeleteByFilter removes every enrollment matching the filter and returns
// the number of rows deleted. The caller guarantees a non-empty filter.
func (r *MySQLEnrollmentRepository) DeleteByFilter(
	ctx context.Context,
	filter domain.DeleteFilter,
) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	var conditions []string
	var args []any
	if filter.StudentID != uuid.Nil {
		args = append(args, filter.StudentID)
		conditions = append(conditions, "student_id = ?")
	}
	if filter.ClassID != uuid.Nil {
		args = append(args, filter.ClassID)
		conditions = append(conditions, "class_id = ?")
	}

	query := "DELETE FROM enrollments WHERE " + strings.Join(conditions, " AND ")

	result, err := querier.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete enrollments")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete enrollments")
	}
	return affected, nil
}

// StudentExists reports whether a student with the given id exists.
func (r *MySQLEnrollmentRepository) StudentExists(ctx context.Context, id uuid.UUID) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM students WHERE id = ?)`
	if err := querier.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check student existence")
	}
	return exists, nil
}

// ClassExists reports whether a class with the given id exists.
func (r *MySQLEnrollmentRepository) ClassExists(ctx context.Context, id uuid.UUID) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM classes WHERE id = ?)`
	if err := querier.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check class existence")
	}
	return exists, nil
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
