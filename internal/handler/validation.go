package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"housing-prediction-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	// Report validation failures by JSON field name instead of Go field name.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonTagName)
	}
}

func jsonTagName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

func respondValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, models.ValidationErrorResponse{
		Error:   "request validation failed",
		Details: fieldErrors(err),
	})
}

// fieldErrors converts a binding error into per-field details.
func fieldErrors(err error) []models.FieldError {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make([]models.FieldError, 0, len(validationErrs))
		for _, fe := range validationErrs {
			details = append(details, models.FieldError{
				Field:   fe.Field(),
				Message: validationMessage(fe),
			})
		}
		return details
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []models.FieldError{{
			Field:   typeErr.Field,
			Message: fmt.Sprintf("must be %s, got %s", typeName(typeErr.Type), typeErr.Value),
		}}
	}

	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &syntaxErr):
		return []models.FieldError{{Field: "body", Message: "malformed JSON"}}
	case errors.Is(err, io.EOF):
		return []models.FieldError{{Field: "body", Message: "request body is empty"}}
	case errors.Is(err, io.ErrUnexpectedEOF):
		return []models.FieldError{{Field: "body", Message: "malformed JSON"}}
	}

	return []models.FieldError{{Field: "body", Message: err.Error()}}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	}
	return fmt.Sprintf("failed %q validation", fe.Tag())
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "a valid value"
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.String:
		return "a string"
	}
	return t.String()
}
