package domain

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Validate checks the struct tags of a record.
func Validate(record any) error {
	return validate.Struct(record)
}
