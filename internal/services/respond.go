package services

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the JSON envelope for every failure path.
type ErrorResponse struct {
	Error      string            `json:"error"`                // user-facing message
	Details    map[string]string `json:"details,omitempty"`    // per-field validation detail
	OutOfStock []string          `json:"outOfStock,omitempty"` // titles blocking a checkout
}

// ValidationHelper provides shared validation functionality.
type ValidationHelper struct {
	validator *validator.Validate
}

func NewValidationHelper() *ValidationHelper {
	return &ValidationHelper{validator: validator.New()}
}

func (vh *ValidationHelper) ValidateStruct(s any) error {
	return vh.validator.Struct(s)
}

// SendJSON writes v with the right headers and status.
func SendJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// SendErrorResponse sends a JSON error, expanding validator errors into
// per-field details when present.
func SendErrorResponse(w http.ResponseWriter, message string, statusCode int, validationErr error) {
	errorResp := ErrorResponse{Error: message}
	if validationErr != nil {
		if fieldErrs, ok := validationErr.(validator.ValidationErrors); ok {
			errorResp.Details = make(map[string]string)
			for _, err := range fieldErrs {
				errorResp.Details[err.Field()] = fmt.Sprintf("Field Validation Failed on '%s' tag", err.Tag())
			}
		}
	}
	SendJSON(w, statusCode, errorResp)
}
