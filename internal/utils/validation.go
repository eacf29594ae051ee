package utils

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// FormatValidationError flattens validator errors into a readable string.
func FormatValidationError(err error) string {
	if errs, ok := err.(validator.ValidationErrors); ok {
		var errorMessages []string
		for _, e := range errs {
			errorMessages = append(errorMessages, fmt.Sprintf("field %s failed on %s", e.Field(), e.Tag()))
		}
		return strings.Join(errorMessages, ", ")
	}
	return err.Error()
}

// BindAndValidate binds the request body to a struct and validates it.
// If binding or validation fails, it sends a BadRequest response and returns false.
func BindAndValidate(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			BadRequest(c, "Validation failed: "+FormatValidationError(errs))
			return false
		}
		BadRequest(c, "Invalid request payload: "+err.Error())
		return false
	}
	return true
}
