// Package dto provides data transfer objects for the student HTTP layer.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	"github.com/allisson/school/internal/student/usecase"
	appValidation "github.com/allisson/school/internal/validation"
)

// birthDateLayout is the wire format for student birth dates.
const birthDateLayout = "2006-01-02"

// CreateStudentRequest represents the API request for enrolling a student.
type CreateStudentRequest struct {
	Name      string `json:"name"`
	BirthDate string `json:"birth_date"`
	CPF       string `json:"cpf"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Validate checks the request shape. Domain rules (CPF check digits, age
// bounds, uniqueness) are enforced by the use case.
func (r *CreateStudentRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required.Error("name is required")),
		validation.Field(&r.BirthDate,
			validation.Required.Error("birth_date is required"),
			validation.Date(birthDateLayout).Error("birth_date must be in YYYY-MM-DD format"),
		),
		validation.Field(&r.CPF, validation.Required.Error("cpf is required")),
		validation.Field(&r.Email, validation.Required.Error("email is required")),
		validation.Field(&r.Password, validation.Required.Error("password is required")),
	)
	return appValidation.WrapValidationError(err)
}

// ToCreateStudentInput converts a validated CreateStudentRequest to a use case input.
func ToCreateStudentInput(req CreateStudentRequest) usecase.CreateStudentInput {
	birthDate, _ := time.Parse(birthDateLayout, req.BirthDate)
	return usecase.CreateStudentInput{
		Name:      req.Name,
		BirthDate: birthDate,
		CPF:       req.CPF,
		Email:     req.Email,
		Password:  req.Password,
	}
}

// UpdateStudentRequest represents the API request for updating a student.
// The password cannot be changed through this endpoint.
type UpdateStudentRequest struct {
	Name      string `json:"name"`
	BirthDate string `json:"birth_date"`
	CPF       string `json:"cpf"`
	Email     string `json:"email"`
}

// Validate checks the request shape.
func (r *UpdateStudentRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required.Error("name is required")),
		validation.Field(&r.BirthDate,
			validation.Required.Error("birth_date is required"),
			validation.Date(birthDateLayout).Error("birth_date must be in YYYY-MM-DD format"),
		),
		validation.Field(&r.CPF, validation.Required.Error("cpf is required")),
		validation.Field(&r.Email, validation.Required.Error("email is required")),
	)
	return appValidation.WrapValidationError(err)
}

// ToUpdateStudentInput converts a validated UpdateStudentRequest to a use case input.
func ToUpdateStudentInput(req UpdateStudentRequest) usecase.UpdateStudentInput {
	birthDate, _ := time.Parse(birthDateLayout, req.BirthDate)
	return usecase.UpdateStudentInput{
		Name:      req.Name,
		BirthDate: birthDate,
		CPF:       req.CPF,
		Email:     req.Email,
	}
}
