// Package dto provides data transfer objects for the class HTTP layer.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	"github.com/allisson/school/internal/class/domain"
	"github.com/allisson/school/internal/class/usecase"
	appValidation "github.com/allisson/school/internal/validation"
)

// ClassRequest represents the API request for creating or updating a class.
type ClassRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validate checks the request shape. Domain rules are enforced by the use case.
func (r *ClassRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required.Error("name is required")),
		validation.Field(&r.Description, validation.Required.Error("description is required")),
	)
	return appValidation.WrapValidationError(err)
}

// ToCreateClassInput converts a ClassRequest to a create use case input.
func ToCreateClassInput(req ClassRequest) usecase.CreateClassInput {
	return usecase.CreateClassInput{
		Name:        req.Name,
		Description: req.Description,
	}
}

// ToUpdateClassInput converts a ClassRequest to an update use case input.
func ToUpdateClassInput(req ClassRequest) usecase.UpdateClassInput {
	return usecase.UpdateClassInput{
		Name:        req.Name,
		Description: req.Description,
	}
}

// ClassResponse represents a class in API responses.
type ClassResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToClassResponse converts a domain class to a ClassResponse DTO.
func ToClassResponse(class *domain.Class) ClassResponse {
	return ClassResponse{
		ID:          class.ID.String(),
		Name:        class.Name,
		Description: class.Description,
		CreatedAt:   class.CreatedAt,
		UpdatedAt:   class.UpdatedAt,
	}
}

// ListClassesResponse represents a paginated list of classes in API responses.
type ListClassesResponse struct {
	Data     []ClassResponse `json:"data"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

// MapClassesToListResponse converts a slice of domain classes to a list response.
func MapClassesToListResponse(classes []*domain.Class, page, pageSize int) ListClassesResponse {
	data := make([]ClassResponse, 0, len(classes))
	for _, class := range classes {
		data = append(data, ToClassResponse(class))
	}

	return ListClassesResponse{
		Data:     data,
		Page:     page,
		PageSize: pageSize,
	}
}
