package handlers

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/judeotine/SpendWise/internal/utils"
)

var registerValidatorsOnce sync.Once

// registerValidators adds the custom binding rules used by the request DTOs.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("currencycode", func(fl validator.FieldLevel) bool {
			return utils.IsCurrencyCode(fl.Field().String())
		})
	})
}
