// Package dto provides data transfer objects for the echo endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/secure-transmission/internal/validation"
)

// EchoRequest is the payload echoed back by every echo endpoint. GET and DELETE
// receive it as the decrypted data query parameter, POST as the decrypted body.
type EchoRequest struct {
	Message string   `json:"message" form:"message"`
	Tags    []string `json:"tags"    form:"tags"`
}

// Validate checks if the echo request is valid.
func (r *EchoRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Message,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 1024),
		),
		validation.Field(&r.Tags,
			validation.Length(0, 16),
			validation.Each(validation.Required, validation.Length(1, 64)),
		),
	)
}
