package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/hms-suite/hms_accounting/internal/core/domain"
)

// RegisterCustomValidators attaches the domain enum validators to gin's binding
// engine so request DTOs can use them in binding tags.
func RegisterCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	validations := map[string]validator.Func{
		"accounttype": func(fl validator.FieldLevel) bool {
			return domain.AccountType(fl.Field().String()).IsValid()
		},
		"referencetype": func(fl validator.FieldLevel) bool {
			return domain.ReferenceType(fl.Field().String()).IsValid()
		},
	}
	for tag, fn := range validations {
		if err := v.RegisterValidation(tag, fn); err != nil {
			slog.Error("Failed to register binding validator", slog.String("tag", tag), slog.String("error", err.Error()))
		}
	}
}
