// SPDX-License-Identifier: MIT

package openapi_server

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
)

// ParsingError indicates that an error has occurred when parsing request parameters
type ParsingError struct {
	Err error
}

func (e *ParsingError) Unwrap() error {
	return e.Err
}

func (e *ParsingError) Error() string {
	return e.Err.Error()
}

// RequiredError indicates that an error has occurred when parsing request parameters
type RequiredError struct {
	Field string
}

func (e *RequiredError) Error() string {
	return fmt.Sprintf("required field '%s' is zero value.", e.Field)
}

// ValidationError indicates that a request was complete but has invalid values
type ValidationError struct {
	Err error
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Message string `json:"message"`
}

// ErrorHandler defines the required method for handling error. You may implement it and inject this into a controller if
// you would like errors to be handled differently from the DefaultErrorHandler
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error, result *ImplResponse)

// DefaultErrorHandler defines the default logic on how to handle errors from the controller. Any errors from parsing
// request params will return a StatusBadRequest. Otherwise, the error code originating from the servicer will be used.
func DefaultErrorHandler(w http.ResponseWriter, r *http.Request, err error, result *ImplResponse) {
	var (
		parsingError    *ParsingError
		requiredError   *RequiredError
		validationError *ValidationError
	)
	code := http.StatusInternalServerError
	switch {
	case errors.As(err, &parsingError):
		code = http.StatusBadRequest
	case errors.As(err, &requiredError), errors.As(err, &validationError):
		code = http.StatusUnprocessableEntity
	case result != nil && result.Code != 0:
		code = result.Code
	}
	EncodeJSONResponse(ErrorResponse{Message: err.Error()}, &code, w)
}

// IsZeroValue checks if the val is the zero-ed value.
func IsZeroValue(val interface{}) bool {
	return val == nil || reflect.DeepEqual(val, reflect.Zero(reflect.TypeOf(val)).Interface())
}
