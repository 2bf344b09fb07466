// Package dto provides data transfer objects for authentication requests and responses.
package dto

import (
	validation "github.com/jellydator/validation"

	appValidation "github.com/allisson/minidrive/internal/validation"
)

// RegisterRequest contains the parameters for creating a new account.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks if the register request is valid.
func (r *RegisterRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			appValidation.Email,
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
		),
	)
}

// LoginRequest contains the parameters for establishing a session.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks if the login request is valid.
func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
		),
	)
}
