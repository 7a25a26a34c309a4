package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

// Error codes surfaced to clients.
const (
	CodeUnauthorized = "UNAUTHORIZED"
	CodeNotFound     = "NOT_FOUND"
	CodeInternal     = "INTERNAL_SERVER_ERROR"
	CodeValidation   = "VALIDATION_ERROR"
)

// DomainError standardizes application errors. Fields carries the
// flattened per-field messages for validation failures.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Fields     map[string][]string
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewUnauthorized signals bad, expired, or missing credentials or tokens.
func NewUnauthorized(message string) error {
	return &DomainError{Code: CodeUnauthorized, Message: message, HTTPStatus: http.StatusUnauthorized}
}

// NewNotFound covers both unknown users and credential mismatches; the
// two are merged deliberately so the error does not reveal which case
// occurred.
func NewNotFound(message string) error {
	return &DomainError{Code: CodeNotFound, Message: message, HTTPStatus: http.StatusNotFound}
}

// NewValidation wraps schema validation failures with field-level detail.
func NewValidation(message string, fields map[string][]string) error {
	return &DomainError{Code: CodeValidation, Message: message, HTTPStatus: http.StatusBadRequest, Fields: fields}
}

// NewInternal wraps unexpected failures, hiding the cause from clients.
func NewInternal(err error) error {
	return &DomainError{Code: CodeInternal, Message: "internal server error", HTTPStatus: http.StatusInternalServerError, Err: err}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return &DomainError{Code: CodeNotFound, Message: "resource not found", HTTPStatus: http.StatusNotFound}
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		switch fiberErr.Code {
		case http.StatusNotFound:
			return &DomainError{Code: CodeNotFound, Message: fiberErr.Message, HTTPStatus: http.StatusNotFound}
		case http.StatusUnauthorized:
			return &DomainError{Code: CodeUnauthorized, Message: fiberErr.Message, HTTPStatus: http.StatusUnauthorized}
		case http.StatusBadRequest:
			return &DomainError{Code: CodeValidation, Message: fiberErr.Message, HTTPStatus: http.StatusBadRequest}
		}
	}
	return &DomainError{Code: CodeInternal, Message: "internal server error", HTTPStatus: http.StatusInternalServerError, Err: err}
}
