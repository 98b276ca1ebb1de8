package binder

import (
	"fmt"
	"net/http"
	"reflect"

	"github.com/go-chi/chi/v5"
)

// PathExtractor returns the value of a named path parameter, or "" when the
// route has no such parameter.
type PathExtractor func(r *http.Request, name string) string

// Path binds path parameters into fields tagged `path:"name"`. Fields without
// a tag use their lowercased name; `path:"-"` skips the field. Parameters the
// route does not carry leave the field untouched.
func Path(extractor PathExtractor) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return fmt.Errorf("%w: %w", ErrFailedToParsePath, ErrNilExtractor)
		}

		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Ptr || rv.IsNil() {
			return fmt.Errorf("%w: target must be a non-nil pointer", ErrFailedToParsePath)
		}
		rv = rv.Elem()
		if rv.Kind() != reflect.Struct {
			return fmt.Errorf("%w: target must be a pointer to struct", ErrFailedToParsePath)
		}

		rt := rv.Type()
		for i := range rv.NumField() {
			field := rv.Field(i)
			fieldType := rt.Field(i)
			if !field.CanSet() {
				continue
			}

			name, skip := parseFieldTag(fieldType, "path")
			if skip {
				continue
			}

			value := extractor(r, name)
			if value == "" {
				continue
			}
			if err := setFieldValue(field, fieldType.Type, []string{value}); err != nil {
				return fmt.Errorf("%w: field %s: %v", ErrFailedToParsePath, fieldType.Name, err)
			}
		}
		return nil
	}
}

// ChiPath binds chi URL parameters.
func ChiPath() func(r *http.Request, v any) error {
	return Path(chi.URLParam)
}
