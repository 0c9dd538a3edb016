package models

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared by every payload and request type in this package.
var validate *validator.Validate

func init() {
	validate = validator.New()

	_ = validate.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return Category(fl.Field().String()).Valid()
	})
	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// Validate checks a create request before it is sent.
func (n NewFailure) Validate() error {
	return validate.Struct(n)
}
