package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
)

// PredictRequest is the full input schema accepted by POST /predict.
// Pointer fields let the binding layer tell a missing field from a zero value.
type PredictRequest struct {
	Age       *int     `json:"age" binding:"required" example:"40"`
	Income    *float64 `json:"income" binding:"required" example:"50000"`
	Zipcode   *Zipcode `json:"zipcode" binding:"required" swaggertype:"string" example:"98101"`
	Gender    *string  `json:"gender" binding:"required" example:"M"`
	Education *string  `json:"education" binding:"required" example:"PhD"`
}

// MinimalPredictRequest is the input schema accepted by POST /predict-minimal.
// Gender and education are completed from demographics or defaulted.
type MinimalPredictRequest struct {
	Age     *int     `json:"age" binding:"required" example:"34"`
	Income  *float64 `json:"income" binding:"required" example:"75000"`
	Zipcode *Zipcode `json:"zipcode" binding:"required" swaggertype:"string" example:"98101"`
}

// Zipcode is a postal code as sent by clients. JSON strings and non-negative
// integer numbers are both accepted and kept in their string form.
type Zipcode string

// UnmarshalJSON implements json.Unmarshaler.
func (z *Zipcode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return &json.UnmarshalTypeError{Value: "empty", Type: reflect.TypeOf("")}
	}

	switch data[0] {
	case 'n':
		// null leaves the value untouched, as encoding/json does for strings.
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*z = Zipcode(s)
		return nil
	case '-':
		return &json.UnmarshalTypeError{Value: "number " + string(data), Type: reflect.TypeOf("")}
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		if _, err := strconv.ParseUint(string(data), 10, 64); err != nil {
			return &json.UnmarshalTypeError{Value: "number " + string(data), Type: reflect.TypeOf("")}
		}
		*z = Zipcode(data)
		return nil
	case 't', 'f':
		return &json.UnmarshalTypeError{Value: "bool", Type: reflect.TypeOf("")}
	case '[':
		return &json.UnmarshalTypeError{Value: "array", Type: reflect.TypeOf("")}
	case '{':
		return &json.UnmarshalTypeError{Value: "object", Type: reflect.TypeOf("")}
	}
	return fmt.Errorf("models: invalid zipcode literal %q", data)
}

// String returns the zipcode as received.
func (z Zipcode) String() string {
	return string(z)
}

// FieldError describes one rejected request field.
type FieldError struct {
	Field   string `json:"field" example:"age"`
	Message string `json:"message" example:"field is required"`
}

// ValidationErrorResponse is returned with 422 when a request body fails the schema.
type ValidationErrorResponse struct {
	Error   string       `json:"error" example:"request validation failed"`
	Details []FieldError `json:"details"`
}

// ErrorResponse is the generic error body.
type ErrorResponse struct {
	Error string `json:"error" example:"internal server error"`
}
