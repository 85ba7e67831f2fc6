package tag

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrTargetMustBePointer = errors.New("target must be a pointer")
	ErrTargetIsNil         = errors.New("target is nil")
	ErrUnsupportedType     = errors.New("unsupported type")
)

// FieldError describes a failure to apply a default to a specific field.
type FieldError struct {
	Path     string
	Kind     reflect.Kind
	TagValue string
	Err      error
}

func newFieldError(path string, kind reflect.Kind, tagValue string, err error) *FieldError {
	return &FieldError{
		Path:     path,
		Kind:     kind,
		TagValue: tagValue,
		Err:      err,
	}
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s (%s): cannot apply default %q: %v", e.Path, e.Kind, e.TagValue, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
