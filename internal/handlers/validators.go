package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/hetpatel672/BudgetWise/internal/models"
)

// RegisterValidators installs custom binding validations on Gin's
// validator engine. Call once at startup before routes are served.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("txtype", func(fl validator.FieldLevel) bool {
		return models.TransactionType(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("budgetperiod", func(fl validator.FieldLevel) bool {
		return models.BudgetPeriod(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("categorytype", func(fl validator.FieldLevel) bool {
		return models.CategoryType(fl.Field().String()).Valid()
	})
}
