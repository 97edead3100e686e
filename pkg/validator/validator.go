package validator

import (
	v10 "github.com/go-playground/validator/v10"
)

// Validator provides validation functionality
type Validator interface {
	Validate(interface{}) error
}

type validator struct {
	v *v10.Validate
}

// New returns a Validator reading `validate` struct tags.
func New() Validator {
	return &validator{v: v10.New(v10.WithRequiredStructEnabled())}
}

func (v *validator) Validate(obj interface{}) error {
	return v.v.Struct(obj)
}
