package utils

import (
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	validate     *validator.Validate
	onceValidate sync.Once
)

// GetValidator returns the shared validator with the gateway's custom
// decimal-string validations registered:
//
//	decimal    – field parses as an arbitrary-precision decimal
//	posdecimal – field parses as a decimal strictly greater than zero
func GetValidator() *validator.Validate {
	onceValidate.Do(func() {
		validate = validator.New()
		validate.RegisterValidation("decimal", func(fl validator.FieldLevel) bool {
			_, err := decimal.NewFromString(fl.Field().String())
			return err == nil
		})
		validate.RegisterValidation("posdecimal", func(fl validator.FieldLevel) bool {
			d, err := decimal.NewFromString(fl.Field().String())
			return err == nil && d.IsPositive()
		})
	})
	return validate
}
