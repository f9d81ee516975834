package util

import (
	"reflect"

	"github.com/pkg/errors"
)

// IsStructInitialized checks whether all nil-able fields of the given struct
// (pointer to struct) are non-nil. Used by the server readiness probe to
// detect partially wired components.
func IsStructInitialized(s interface{}) error {
	v := reflect.ValueOf(s)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return errors.New("struct pointer is nil")
		}
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return errors.Errorf("expected struct, got %s", v.Kind())
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)

		switch field.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			if field.IsNil() {
				return errors.Errorf("field %q is not initialized", t.Field(i).Name)
			}
		default:
			// value types are always considered initialized
		}
	}

	return nil
}
