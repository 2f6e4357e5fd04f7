// Package domain defines the core student entity and its errors.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Student represents an enrolled person in the school.
// The password is stored as an Argon2id hash and never leaves the domain.
type Student struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	BirthDate time.Time `json:"birth_date"`
	CPF       string    `json:"cpf"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Filter narrows student searches. Zero-value fields are ignored; the
// remaining fields combine conjunctively. Name matches by substring, the
// other fields by equality.
type Filter struct {
	ID       uuid.UUID
	Name     string
	Email    string
	CPF      string
	Page     int
	PageSize int
}
