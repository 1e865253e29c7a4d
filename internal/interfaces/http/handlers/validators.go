package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	vo "talenthub/internal/domain/subscription/valueobjects"
)

// RegisterCustomValidators adds the product_line binding tag so request
// validation rejects unknown product lines before the use case layer.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("productline", func(fl validator.FieldLevel) bool {
			_, err := vo.ParseProductLine(fl.Field().String())
			return err == nil
		})
	}
}
