package http

import (
	"github.com/go-playground/validator/v10"
)

// BodyValidator plugs go-playground/validator into echo.Context.Validate.
type BodyValidator struct {
	validate *validator.Validate
}

func NewBodyValidator() *BodyValidator {
	return &BodyValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *BodyValidator) Validate(i any) error {
	return v.validate.Struct(i)
}
