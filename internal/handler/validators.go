package handler

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"gamebacklog/backend/internal/models"
)

// Enum validators on gin's binding engine, so unknown statuses and platforms
// are rejected at the DTO boundary with the other binding errors.
func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("gamestatus", func(fl validator.FieldLevel) bool {
		return models.Status(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("gameplatform", func(fl validator.FieldLevel) bool {
		return models.Platform(fl.Field().String()).Valid()
	})
}
