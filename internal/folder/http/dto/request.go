// Package dto provides data transfer objects for folder and file handling.
package dto

import (
	validation "github.com/jellydator/validation"

	appValidation "github.com/allisson/minidrive/internal/validation"
)

// CreateFolderRequest contains the parameters for creating a folder.
type CreateFolderRequest struct {
	Name string `json:"name"`
}

// Validate checks if the create folder request is valid.
func (r *CreateFolderRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
	)
}
