// internal/validator/validator.go
package validator

import (
	"regexp"
	"time"

	"expense-tracker/internal/domain"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func init() {
	Validate = validator.New()

	// "2025-06" style calendar month key
	_ = Validate.RegisterValidation("yearmonth", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		_, err := time.Parse("2006-01", s)
		return err == nil
	})

	// "2025-06-15" exact calendar date, kept as a string end to end
	_ = Validate.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		_, err := time.Parse("2006-01-02", s)
		return err == nil
	})

	// Member of the closed category set
	_ = Validate.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return domain.ValidCategory(fl.Field().String())
	})

	// Not empty and not only whitespace
	_ = Validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return len(regexp.MustCompile(`\S`).FindString(s)) > 0
	})
}
