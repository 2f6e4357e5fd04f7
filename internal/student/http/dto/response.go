package dto

import (
	"time"

	"github.com/allisson/school/internal/student/domain"
)

// StudentResponse represents a student in API responses.
// The password hash never leaves the domain.
type StudentResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	BirthDate string    `json:"birth_date"`
	CPF       string    `json:"cpf"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToStudentResponse converts a domain student to a StudentResponse DTO.
func ToStudentResponse(student *domain.Student) StudentResponse {
	return StudentResponse{
		ID:        student.ID.String(),
		Name:      student.Name,
		BirthDate: student.BirthDate.Format(birthDateLayout),
		CPF:       student.CPF,
		Email:     student.Email,
		CreatedAt: student.CreatedAt,
		UpdatedAt: student.UpdatedAt,
	}
}

// ListStudentsResponse represents a paginated list of students in API responses.
type ListStudentsResponse struct {
	Data     []StudentResponse `json:"data"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// MapStudentsToListResponse converts a slice of domain students to a list response.
func MapStudentsToListResponse(students []*domain.Student, page, pageSize int) ListStudentsResponse {
	data := make([]StudentResponse, 0, len(students))
	for _, student := range students {
		data = append(data, ToStudentResponse(student))
	}

	return ListStudentsResponse{
		Data:     data,
		Page:     page,
		PageSize: pageSize,
	}
}
