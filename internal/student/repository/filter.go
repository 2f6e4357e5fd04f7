package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/school/internal/student/domain"

	apperrors "github.com/allisson/school/internal/errors"
)

// placeholderFunc renders the n-th (1-indexed) query placeholder for a driver.
type placeholderFunc func(n int) string

func postgresPlaceholder(n int) string { return fmt.Sprintf("$%d", n) }

func mysqlPlaceholder(int) string { return "?" }

// buildStudentWhere assembles a conjunctive WHERE clause from the non-zero
// filter fields. Name matches by substring via likeOp (ILIKE on PostgreSQL,
// LIKE on MySQL); the remaining fields match by equality. Returns an empty
// string when no filter field is set.
func buildStudentWhere(filter domain.Filter, ph placeholderFunc, likeOp string) (string, []any) {
	var conditions []string
	var args []any

	if filter.ID != uuid.Nil {
		args = append(args, filter.ID)
		conditions = append(conditions, "id = "+ph(len(args)))
	}
	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		conditions = append(conditions, "name "+likeOp+" "+ph(len(args)))
	}
	if filter.Email != "" {
		args = append(args, filter.Email)
		conditions = append(conditions, "email = "+ph(len(args)))
	}
	if filter.CPF != "" {
		args = append(args, filter.CPF)
		conditions = append(conditions, "cpf = "+ph(len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// scanStudents reads every row into a slice of students.
func scanStudents(rows *sql.Rows) ([]*domain.Student, error) {
	var students []*domain.Student
	for rows.Next() {
		var student domain.Student
		err := rows.Scan(
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
			return nil, apperrors.Wrap(err, "failed to scan student row")
		}
		students = append(students, &student)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate student rows")
	}
	return students, nil
}
