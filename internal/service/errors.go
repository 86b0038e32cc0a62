package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

// newValidator reports field names from json tags so validation errors name
// fields the way the caller sent them.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// wrapInternal preserves typed errors coming out of the query layer and
// folds everything else into the internal taxonomy with a caller-safe
// message.
func wrapInternal(err error, message string) error {
	var typed *appErrors.Error
	if errors.As(err, &typed) {
		return err
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

// validationError converts validator output into a field-named validation
// error so every write endpoint reports the same shape.
func validationError(err error, message string) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			name := fe.Field()
			if tag := fe.StructField(); tag != "" && name == "" {
				name = tag
			}
			fields = append(fields, name)
		}
		return appErrors.Validation(message, fields...)
	}
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}
