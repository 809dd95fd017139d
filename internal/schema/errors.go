package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bendichter/aind-data-schema/internal/vocab"
)

// Коды ошибок валидации.
const (
	CodeUnknownField    = "unknown_field"
	CodeRequired        = "required"
	CodeTypeMismatch    = "type_mismatch"
	CodeEnumInvalid     = "enum_invalid"
	CodeReadOnly        = "readonly_field"
	CodeOutOfRange      = "out_of_range"
	CodeUniqueViolation = "unique_violation"
)

var (
	ErrUnknownField    = errors.New("unknown field")
	ErrMissingRequired = errors.New("missing required field")
	ErrTypeCoercion    = errors.New("value cannot be coerced")
	ErrFrozenField     = errors.New("field is fixed")
	ErrOutOfRange      = errors.New("value out of range")
	ErrDuplicateItem   = errors.New("duplicate item")

	// ErrInvalidEnumMember — значение не из справочника или вне подмножества.
	ErrInvalidEnumMember = vocab.ErrInvalidEnumMember

	ErrInvalidSchema = errors.New("invalid schema")
	ErrNotCore       = errors.New("not a core record")
)

var codeErrors = map[string]error{
	CodeUnknownField:    ErrUnknownField,
	CodeRequired:        ErrMissingRequired,
	CodeTypeMismatch:    ErrTypeCoercion,
	CodeEnumInvalid:     ErrInvalidEnumMember,
	CodeReadOnly:        ErrFrozenField,
	CodeOutOfRange:      ErrOutOfRange,
	CodeUniqueViolation: ErrDuplicateItem,
}

// FieldError — одна ошибка поля. Field — путь вида cameras[0].camera.manufacturer.
type FieldError struct {
	Code    string   `json:"code"`
	Field   string   `json:"field"`
	Message string   `json:"message"`
	Allowed []string `json:"allowed,omitempty"`
}

func ferr(code, field, msg string) FieldError {
	return FieldError{Code: code, Field: field, Message: msg}
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e FieldError) Unwrap() error { return codeErrors[e.Code] }

// ValidationError собирает все ошибки полей одной записи.
type ValidationError struct {
	Entity string       `json:"entity"`
	Errors []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	if len(e.Errors) == 1 {
		fmt.Fprintf(&b, "%s: 1 validation error: ", e.Entity)
	} else {
		fmt.Fprintf(&b, "%s: %d validation errors: ", e.Entity, len(e.Errors))
	}
	for i, fe := range e.Errors {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(fe.Error())
	}
	return b.String()
}

func (e *ValidationError) Unwrap() []error {
	out := make([]error, len(e.Errors))
	for i := range e.Errors {
		out[i] = e.Errors[i]
	}
	return out
}

// Fields — пути полей с ошибками, в порядке обнаружения.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		out[i] = fe.Field
	}
	return out
}

// IOError — ошибка записи файла.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string { return "write " + e.Path + ": " + e.Err.Error() }

func (e *IOError) Unwrap() error { return e.Err }
