package sanitizer

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
)

// ErrInvalidTarget is returned by SanitizeStruct for anything but a struct pointer.
var ErrInvalidTarget = errors.New("sanitizer: must pass a pointer to struct")

var registry = map[string]func(string) string{
	"trim":        Trim,
	"lower":       ToLower,
	"single_line": SingleLine,
	"no_spaces":   RemoveExtraWhitespace,
	"no_control":  RemoveControlChars,
	"strip_html":  StripHTML,
	"text": func(s string) string {
		return RemoveExtraWhitespace(RemoveControlChars(s))
	},
}

// SanitizeStruct rewrites string fields in place according to their
// `sanitize` tags, applied left to right. "max:N" truncates to N runes.
//
//	Name string `sanitize:"trim,single_line,max:100"`
func SanitizeStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrInvalidTarget
	}
	sanitizeStruct(rv.Elem())
	return nil
}

func sanitizeStruct(rv reflect.Value) {
	rt := rv.Type()

	for i := range rv.NumField() {
		field := rv.Field(i)
		if !field.CanSet() {
			continue
		}

		tag := rt.Field(i).Tag.Get("sanitize")
		if tag == "-" {
			continue
		}

		if field.Kind() == reflect.Pointer {
			if field.IsNil() {
				continue
			}
			field = field.Elem()
		}

		switch field.Kind() {
		case reflect.String:
			if tag != "" {
				field.SetString(apply(field.String(), tag))
			}
		case reflect.Struct:
			sanitizeStruct(field)
		case reflect.Slice:
			if tag != "" && field.Type().Elem().Kind() == reflect.String {
				for j := range field.Len() {
					elem := field.Index(j)
					elem.SetString(apply(elem.String(), tag))
				}
			}
		}
	}
}

func apply(value, tag string) string {
	for name := range strings.SplitSeq(tag, ",") {
		name = strings.TrimSpace(name)
		if n, ok := strings.CutPrefix(name, "max:"); ok {
			if limit, err := strconv.Atoi(n); err == nil && limit > 0 {
				value = MaxLength(value, limit)
			}
			continue
		}
		if fn, ok := registry[name]; ok {
			value = fn(value)
		}
	}
	return value
}
