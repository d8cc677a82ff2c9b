// Package validation wraps go-playground/validator so services report every
// violated rule as an *errs.ValidationError.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/corray333/backend-labs/store/internal/service/errs"
	validatorv10 "github.com/go-playground/validator/v10"
)

// Messages maps "StructField.tag" (or a bare "tag") to the text shown to the caller.
type Messages map[string]string

// New returns a validator that names fields the way they appear in JSON.
func New() *validatorv10.Validate {
	v := validatorv10.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		default:
			return name
		}
	})

	return v
}

// Struct validates s and converts validator failures into *errs.ValidationError.
func Struct(v *validatorv10.Validate, s any, msgs Messages) error {
	return Convert(v.Struct(s), msgs)
}

// StructExcept is Struct with the named Go fields skipped.
func StructExcept(v *validatorv10.Validate, s any, msgs Messages, fields ...string) error {
	return Convert(v.StructExcept(s, fields...), msgs)
}

// Convert turns validator.ValidationErrors into *errs.ValidationError.
// Other errors are returned unchanged.
func Convert(err error, msgs Messages) error {
	if err == nil {
		return nil
	}

	var ve validatorv10.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	out := &errs.ValidationError{}
	for _, fe := range ve {
		out.Add(fe.Field(), fe.Tag(), msgs.lookup(fe))
	}

	return out.OrNil()
}

func (m Messages) lookup(fe validatorv10.FieldError) string {
	field, _, _ := strings.Cut(fe.StructField(), "[")
	if msg, ok := m[field+"."+fe.Tag()]; ok {
		return msg
	}
	if msg, ok := m[fe.Tag()]; ok {
		return msg
	}

	return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
}
