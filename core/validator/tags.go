package validator

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"unicode"
)

// ValidatorFunc builds the rule for one tag entry such as "between:1000,1000000".
type ValidatorFunc func(field string, value reflect.Value, params []string) Rule

var (
	registryMu sync.RWMutex
	registry   = map[string]ValidatorFunc{
		"required": requiredValidator,
		"min":      minValidator,
		"max":      maxValidator,
		"between":  betweenValidator,
		"len":      lenValidator,
		"alphanum": alphanumValidator,
	}
)

// RegisterValidator adds or replaces a tag rule.
func RegisterValidator(name string, fn ValidatorFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = fn
}

// ValidateStruct checks the `validate` tags of the struct v points to.
// Rules are separated by ";" and parameters by ",":
//
//	Price *int `validate:"required;between:1000,1000000"`
//
// A nil pointer only fails "required"; other rules apply to the pointee.
// Nested structs without a tag are walked and reported as "Outer.Inner".
func ValidateStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrInvalidTarget
	}

	var errs ValidationErrors
	walk(rv.Elem(), "", &errs)

	if errs.IsEmpty() {
		return nil
	}
	return errs
}

func walk(rv reflect.Value, prefix string, errs *ValidationErrors) {
	rt := rv.Type()

	for i := range rv.NumField() {
		field := rv.Field(i)
		if !field.CanSet() {
			continue
		}

		sf := rt.Field(i)
		tag := sf.Tag.Get("validate")
		if tag == "-" {
			continue
		}

		path := sf.Name
		if prefix != "" {
			path = prefix + "." + sf.Name
		}

		if field.Kind() == reflect.Pointer && !field.IsNil() {
			field = field.Elem()
		}

		switch {
		case tag == "" && field.Kind() == reflect.Struct:
			walk(field, path, errs)
		case tag != "":
			validateField(path, field, tag, errs)
		}
	}
}

func validateField(path string, field reflect.Value, tag string, errs *ValidationErrors) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for entry := range strings.SplitSeq(tag, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		name, rawParams, _ := strings.Cut(entry, ":")
		var params []string
		if rawParams = strings.TrimSpace(rawParams); rawParams != "" {
			params = strings.Split(rawParams, ",")
			for i := range params {
				params[i] = strings.TrimSpace(params[i])
			}
		}

		fn, ok := registry[strings.TrimSpace(name)]
		if !ok {
			continue
		}
		if rule := fn(path, field, params); rule.Check != nil && !rule.Check() {
			errs.Add(rule.Error)
		}
	}
}

func pass() Rule { return Rule{Check: func() bool { return true }} }

func isInt(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func requiredValidator(field string, value reflect.Value, _ []string) Rule {
	return Rule{
		Check: func() bool {
			switch value.Kind() {
			case reflect.String:
				return strings.TrimSpace(value.String()) != ""
			case reflect.Slice, reflect.Map, reflect.Array:
				return value.Len() > 0
			case reflect.Pointer, reflect.Interface:
				return !value.IsNil()
			case reflect.Invalid:
				return false
			default:
				return !value.IsZero()
			}
		},
		Error: ValidationError{
			Field:             field,
			Message:           "field is required",
			TranslationKey:    "validation.required",
			TranslationValues: map[string]any{"field": field},
		},
	}
}

func minValidator(field string, value reflect.Value, params []string) Rule {
	if len(params) < 1 {
		return pass()
	}
	switch {
	case value.Kind() == reflect.String:
		n, _ := strconv.Atoi(params[0])
		return MinLenString(field, value.String(), n)
	case isInt(value.Kind()):
		n, _ := strconv.ParseInt(params[0], 10, 64)
		return MinInt(field, value.Int(), n)
	}
	return pass()
}

func maxValidator(field string, value reflect.Value, params []string) Rule {
	if len(params) < 1 {
		return pass()
	}
	switch {
	case value.Kind() == reflect.String:
		n, _ := strconv.Atoi(params[0])
		return MaxLenString(field, value.String(), n)
	case isInt(value.Kind()):
		n, _ := strconv.ParseInt(params[0], 10, 64)
		return MaxInt(field, value.Int(), n)
	}
	return pass()
}

func betweenValidator(field string, value reflect.Value, params []string) Rule {
	if len(params) < 2 {
		return pass()
	}

	lo, _ := strconv.ParseInt(params[0], 10, 64)
	hi, _ := strconv.ParseInt(params[1], 10, 64)

	var n int64
	var unit string
	switch {
	case value.Kind() == reflect.String:
		n, unit = int64(len([]rune(value.String()))), " characters long"
	case isInt(value.Kind()):
		n = value.Int()
	default:
		return pass()
	}

	return Rule{
		Check: func() bool { return n >= lo && n <= hi },
		Error: ValidationError{
			Field:             field,
			Message:           fmt.Sprintf("must be between %d and %d%s", lo, hi, unit),
			TranslationKey:    "validation.between",
			TranslationValues: map[string]any{"field": field, "min": lo, "max": hi},
		},
	}
}

func lenValidator(field string, value reflect.Value, params []string) Rule {
	if len(params) < 1 || value.Kind() != reflect.String {
		return pass()
	}
	want, _ := strconv.Atoi(params[0])
	return Rule{
		Check: func() bool { return len([]rune(value.String())) == want },
		Error: ValidationError{
			Field:             field,
			Message:           fmt.Sprintf("must be exactly %d characters long", want),
			TranslationKey:    "validation.exact_length",
			TranslationValues: map[string]any{"field": field, "len": want},
		},
	}
}

func alphanumValidator(field string, value reflect.Value, _ []string) Rule {
	if value.Kind() != reflect.String {
		return pass()
	}
	return Rule{
		Check: func() bool {
			for _, r := range value.String() {
				if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
					return false
				}
			}
			return true
		},
		Error: ValidationError{
			Field:             field,
			Message:           "must contain only letters and digits",
			TranslationKey:    "validation.alphanum",
			TranslationValues: map[string]any{"field": field},
		},
	}
}
