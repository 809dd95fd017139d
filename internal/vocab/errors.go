package vocab

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrNameNotFound         = fmt.Errorf("name %w", ErrNotFound)
	ErrTagNotFound          = fmt.Errorf("tag %w", ErrNotFound)
	ErrAbbreviationNotFound = fmt.Errorf("abbreviation %w", ErrNotFound)

	ErrInvalidEnumMember = errors.New("invalid enum member")
	ErrWrongEnum         = errors.New("member of another enumeration")

	// ошибки объявления справочника
	ErrEmptyMember        = errors.New("empty tag or name")
	ErrDuplicateTag       = errors.New("duplicate tag")
	ErrDuplicateName      = errors.New("duplicate name")
	ErrIncompleteIdentity = errors.New("registry_identifier without registry")
)

// NotFoundError — неудачный поиск в справочнике. Kind различает поиск по имени,
// по тегу и по аббревиатуре.
type NotFoundError struct {
	Enum string
	Key  string
	Kind error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %v: %q", e.Enum, e.Kind, e.Key)
}

func (e *NotFoundError) Unwrap() error { return e.Kind }

// InvalidMemberError — значение есть в базовом справочнике, но не входит в разрешённое подмножество
// (или вообще не найдено в справочнике).
type InvalidMemberError struct {
	Enum    string
	Value   string
	Allowed []string
}

func (e *InvalidMemberError) Error() string {
	return fmt.Sprintf("%s: %q is not allowed (allowed: %s)", e.Enum, e.Value, strings.Join(e.Allowed, ", "))
}

func (e *InvalidMemberError) Unwrap() error { return ErrInvalidEnumMember }
