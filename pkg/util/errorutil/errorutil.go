package errorutil

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// Error codes surfaced to clients.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeNotFound           = "NOT_FOUND"
	CodeProductNotFound    = "PRODUCT_NOT_FOUND"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeForbidden          = "FORBIDDEN"
	CodeSessionLoading     = "SESSION_LOADING"
	CodeUpstream           = "UPSTREAM_ERROR"
	CodeInternal           = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
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

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	if message == "" {
		message = "البيانات المدخلة غير صالحة"
	}
	return NewDomainError(CodeValidation, message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	details["resource"] = resource
	return &DomainError{
		Code:       CodeNotFound,
		Message:    "العنصر المطلوب غير موجود",
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewProductNotFound(id int64) error {
	return NewDomainError(CodeProductNotFound, "المنتج غير موجود", http.StatusNotFound, map[string]any{"id": id})
}

func NewUnauthorized(message string) error {
	if message == "" {
		message = "يرجى تسجيل الدخول للمتابعة"
	}
	return NewDomainError(CodeUnauthorized, message, http.StatusUnauthorized, nil)
}

// NewInvalidCredentials does not reveal which field was wrong.
func NewInvalidCredentials() error {
	return NewDomainError(CodeInvalidCredentials, "اسم المستخدم أو كلمة المرور غير صحيحة", http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	if message == "" {
		message = "ليس لديك صلاحية للوصول إلى هذه الصفحة"
	}
	return NewDomainError(CodeForbidden, message, http.StatusForbidden, nil)
}

func NewSessionLoading() error {
	return NewDomainError(CodeSessionLoading, "جاري التحميل...", http.StatusServiceUnavailable, nil)
}

// NewUpstreamError wraps a failed call to an external collaborator such as the CMS.
func NewUpstreamError(service string, err error) error {
	details := map[string]any{"service": service}
	if err != nil {
		details["error"] = err.Error()
	}
	return &DomainError{
		Code:       CodeUpstream,
		Message:    "تعذر تحميل المحتوى، يرجى المحاولة لاحقاً",
		HTTPStatus: http.StatusBadGateway,
		Details:    details,
		Err:        err,
	}
}

func NewInternalError(err error) error {
	var details map[string]any
	if err != nil {
		details = map[string]any{"error": err.Error()}
	}
	return &DomainError{
		Code:       CodeInternal,
		Message:    "حدث خطأ غير متوقع",
		HTTPStatus: http.StatusInternalServerError,
		Details:    details,
		Err:        err,
	}
}

// WithRedirect attaches a navigation target for the caller.
func WithRedirect(err error, location string) error {
	de := ToDomainError(err)
	out := *de
	out.Details = make(map[string]any, len(de.Details)+1)
	for k, v := range de.Details {
		out.Details[k] = v
	}
	out.Details["redirect"] = location
	return &out
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
	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
		return NewNotFound("resource", nil).(*DomainError)
	}
	return NewInternalError(err).(*DomainError)
}

func MapError(err error) error {
	if err == nil {
		return nil
	}
	return ToDomainError(err)
}
