package binder

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// bindToStruct copies values into the tagged fields of the struct v points to.
// Conversion failures wrap bindErr together with a *FieldError.
func bindToStruct(v any, tagName string, values map[string][]string, bindErr error) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: %w", bindErr, ErrInvalidTarget)
	}

	rv = rv.Elem()
	rt := rv.Type()

	for i := range rv.NumField() {
		field := rv.Field(i)
		sf := rt.Field(i)
		if !field.CanSet() {
			continue
		}

		name, skip := paramName(sf, tagName)
		if skip {
			continue
		}

		raw, ok := values[name]
		if !ok || len(raw) == 0 {
			continue
		}

		if err := setFieldValue(field, sf.Type, raw); err != nil {
			return fmt.Errorf("%w: %w", bindErr, &FieldError{Field: name, Value: raw[0], Err: err})
		}
	}

	return nil
}

func paramName(sf reflect.StructField, tagName string) (string, bool) {
	tag := sf.Tag.Get(tagName)
	switch tag {
	case "":
		return strings.ToLower(sf.Name), false
	case "-":
		return "", true
	}
	name, _, _ := strings.Cut(tag, ",")
	return name, false
}

func setFieldValue(field reflect.Value, typ reflect.Type, values []string) error {
	if typ.Kind() == reflect.Slice {
		return setSliceValue(field, typ, values)
	}

	value := strings.TrimSpace(values[0])
	if value == "" && typ.Kind() != reflect.String {
		// A blank input means "not provided" for everything but strings.
		return nil
	}

	if typ.Kind() == reflect.Pointer {
		elem := reflect.New(typ.Elem())
		if err := setFieldValue(elem.Elem(), typ.Elem(), values); err != nil {
			return err
		}
		field.Set(elem)
		return nil
	}

	switch typ.Kind() {
	case reflect.String:
		field.SetString(sanitizeStringValue(values[0]))

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, typ.Bits())
		if err != nil {
			return fmt.Errorf("invalid integer %q", value)
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, typ.Bits())
		if err != nil {
			return fmt.Errorf("invalid unsigned integer %q", value)
		}
		field.SetUint(n)

	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(value, typ.Bits())
		if err != nil {
			return fmt.Errorf("invalid number %q", value)
		}
		field.SetFloat(n)

	case reflect.Bool:
		switch strings.ToLower(value) {
		case "on", "yes", "1", "true":
			field.SetBool(true)
		case "off", "no", "0", "false":
			field.SetBool(false)
		default:
			return fmt.Errorf("invalid boolean %q", value)
		}

	default:
		return fmt.Errorf("unsupported type %s", typ.Kind())
	}

	return nil
}

func setSliceValue(field reflect.Value, typ reflect.Type, values []string) error {
	var all []string
	for _, v := range values {
		all = append(all, strings.Split(v, ",")...)
	}

	slice := reflect.MakeSlice(typ, 0, len(all))
	for _, v := range all {
		elem := reflect.New(typ.Elem()).Elem()
		if err := setFieldValue(elem, typ.Elem(), []string{v}); err != nil {
			return err
		}
		slice = reflect.Append(slice, elem)
	}

	field.Set(slice)
	return nil
}

// sanitizeStringValue drops NUL bytes, line breaks and invalid runes.
func sanitizeStringValue(value string) string {
	var b strings.Builder
	b.Grow(len(value))

	for _, r := range value {
		if r == '\r' || r == '\n' || r == 0 || r == utf8.RuneError {
			continue
		}
		if r == '\t' || unicode.IsGraphic(r) {
			b.WriteRune(r)
		}
	}

	return b.String()
}

func validateBoundary(boundary string) bool {
	if boundary == "" || len(boundary) > 70 {
		return false
	}
	return !strings.ContainsAny(boundary, "\x00\r\n")
}
