// Package configstruct fills option structures from config maps
package configstruct

import (
	"fmt"
	"reflect"

	"github.com/cldimg/cldimg/fs/config/configmap"
	"github.com/pkg/errors"
)

// Set looks up each field of opt tagged `config:"name"` in config and
// parses any value found into the field.
//
// opt must be a pointer to a struct.  String fields take the value as
// it is; every other tagged field must implement fmt.Scanner through
// its pointer.  An empty value leaves a non string field unchanged.
func Set(config configmap.Getter, opt interface{}) error {
	v := reflect.ValueOf(opt)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return errors.New("argument must be a pointer to a struct")
	}
	v = v.Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		name, ok := t.Field(i).Tag.Lookup("config")
		if !ok {
			continue
		}
		value, ok := config.Get(name)
		if !ok {
			continue
		}
		if err := setField(v.Field(i), value); err != nil {
			return errors.Wrapf(err, "couldn't parse config item %q = %q", name, value)
		}
	}
	return nil
}

// setField parses value into field
func setField(field reflect.Value, value string) error {
	if field.Kind() == reflect.String {
		field.SetString(value)
		return nil
	}
	if value == "" {
		return nil
	}
	scanner, ok := field.Addr().Interface().(fmt.Scanner)
	if !ok {
		return errors.Errorf("can't parse into %s", field.Type())
	}
	if _, err := fmt.Sscanln(value, scanner); err != nil {
		return errors.Wrapf(err, "parsing as %s failed", field.Type())
	}
	return nil
}
