package utils

import (
	"github.com/go-playground/validator/v10"

	"github.com/waalid2540/gew-backend/internal/models"
)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()

	// Custom validations
	v.RegisterValidation("ticket_type", validateTicketType)

	return &Validator{
		validate: v,
	}
}

func (v *Validator) Struct(s interface{}) error {
	return v.validate.Struct(s)
}

func (v *Validator) Var(field interface{}, tag string) error {
	return v.validate.Var(field, tag)
}

func validateTicketType(fl validator.FieldLevel) bool {
	return models.TicketType(fl.Field().String()).Valid()
}
