package domain

import (
	"github.com/allisson/school/internal/errors"
)

// Student-specific error definitions.
var (
	// ErrStudentNotFound indicates the requested student does not exist.
	ErrStudentNotFound = errors.Wrap(errors.ErrNotFound, "student not found")

	// ErrEmailAlreadyRegistered indicates another student already uses the email.
	ErrEmailAlreadyRegistered = errors.Wrap(errors.ErrConflict, "Email already registered")

	// ErrCPFAlreadyRegistered indicates another student already uses the CPF.
	ErrCPFAlreadyRegistered = errors.Wrap(errors.ErrConflict, "CPF already registered")
)
