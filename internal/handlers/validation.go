package handlers

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var academicYearRe = regexp.MustCompile(`^\d{4}/\d{4}$`)

// RegisterValidations добавляет предметные правила в валидатор gin.
// academic_year — учебный год в формате "2023/2024".
func RegisterValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("academic_year", func(fl validator.FieldLevel) bool {
		return academicYearRe.MatchString(fl.Field().String())
	})
}
