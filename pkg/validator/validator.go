package validator

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/agenpets/scheduler-api/pkg/errors"
)

// Validator checks struct tags and reports failures as invalid-argument errors.
type Validator interface {
	Validate(obj interface{}) error
}

type tagValidator struct {
	v *validator.Validate
}

var (
	defaultOnce sync.Once
	defaultV    Validator
)

// New returns a validator that names fields after their json tags.
func New() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return &tagValidator{v: v}
}

// Default returns a shared validator instance.
func Default() Validator {
	defaultOnce.Do(func() { defaultV = New() })
	return defaultV
}

func (t *tagValidator) Validate(obj interface{}) error {
	err := t.v.Struct(obj)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.InvalidArgument("invalid request", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return errors.InvalidArgument(strings.Join(msgs, "; "), err)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "oneof":
		return fe.Field() + " must be one of [" + fe.Param() + "]"
	case "gte":
		return fe.Field() + " must be at least " + fe.Param()
	case "max":
		return fe.Field() + " must not exceed " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}
