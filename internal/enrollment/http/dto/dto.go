// Package dto provides data transfer objects for the enrollment HTTP layer.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/allisson/school/internal/enrollment/domain"
	"github.com/allisson/school/internal/enrollment/usecase"
	appValidation "github.com/allisson/school/internal/validation"
)

// registrationDateLayout is the wire format for enrollment registration dates.
const registrationDateLayout = "2006-01-02"

// EnrollmentRequest represents the API request for creating or updating an enrollment.
type EnrollmentRequest struct {
	StudentID        string `json:"student_id"`
	ClassID          string `json:"class_id"`
	RegistrationDate string `json:"registration_date"`
}

// Validate checks the request shape. Referential rules are enforced by the use case.
func (r *EnrollmentRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.StudentID,
			validation.Required.Error("student_id is required"),
			appValidation.UUID,
		),
		validation.Field(&r.ClassID,
			validation.Required.Error("class_id is required"),
			appValidation.UUID,
		),
		validation.Field(&r.RegistrationDate,
			validation.Required.Error("registration_date is required"),
			validation.Date(registrationDateLayout).Error("registration_date must be in YYYY-MM-DD format"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// ToEnrollInput converts a validated EnrollmentRequest to a use case input.
func ToEnrollInput(req EnrollmentRequest) usecase.EnrollInput {
	studentID, _ := uuid.Parse(req.StudentID)
	classID, _ := uuid.Parse(req.ClassID)
	registrationDate, _ := time.Parse(registrationDateLayout, req.RegistrationDate)
	return usecase.EnrollInput{
		StudentID:        studentID,
		ClassID:          classID,
		RegistrationDate: registrationDate,
	}
}

// EnrollmentResponse represents an enrollment joined with names in API responses.
type EnrollmentResponse struct {
	StudentID        string `json:"student_id"`
	StudentName      string `json:"student_name"`
	ClassID          string `json:"class_id"`
	ClassName        string `json:"class_name"`
	RegistrationDate string `json:"registration_date"`
}

// ListEnrollmentsResponse represents the full enrollment listing in API responses.
type ListEnrollmentsResponse struct {
	Data []EnrollmentResponse `json:"data"`
}

// MapEnrollmentsToListResponse converts a slice of enrollment views to a list response.
func MapEnrollmentsToListResponse(views []*domain.View) ListEnrollmentsResponse {
	data := make([]EnrollmentResponse, 0, len(views))
	for _, view := range views {
		data = append(data, EnrollmentResponse{
			StudentID:        view.StudentID.String(),
			StudentName:      view.StudentName,
			ClassID:          view.ClassID.String(),
			ClassName:        view.ClassName,
			RegistrationDate: view.RegistrationDate.Format(registrationDateLayout),
		})
	}

	return ListEnrollmentsResponse{
		Data: data,
	}
}
