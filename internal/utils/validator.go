package utils

import (
	"Smart-Shelf-Backend/domain"
	"time"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func InitValidator() {
	Validate = validator.New()
	_ = Validate.RegisterValidation("timeofday", func(fl validator.FieldLevel) bool {
		return IsTimeOfDay(fl.Field().String())
	})
}

// IsTimeOfDay reports whether s is a 24h "HH:MM" value.
func IsTimeOfDay(s string) bool {
	if len(s) != len(domain.TimeOfDayLayout) {
		return false
	}
	_, err := time.Parse(domain.TimeOfDayLayout, s)
	return err == nil
}
