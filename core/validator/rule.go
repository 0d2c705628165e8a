package validator

import "fmt"

// Rule couples a deferred check with the error reported when it fails.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// Apply evaluates rules and returns ValidationErrors for the failed ones.
func Apply(rules ...Rule) error {
	var errs ValidationErrors
	for _, r := range rules {
		if r.Check != nil && !r.Check() {
			errs.Add(r.Error)
		}
	}
	if errs.IsEmpty() {
		return nil
	}
	return errs
}

// Merge combines the ValidationErrors of several validation results.
// Errors that are not validation failures are returned unchanged.
func Merge(errs ...error) error {
	var all ValidationErrors
	for _, err := range errs {
		if err == nil {
			continue
		}
		ve := ExtractValidationErrors(err)
		if ve == nil {
			return err
		}
		all = append(all, ve...)
	}
	if all.IsEmpty() {
		return nil
	}
	return all
}

// Global builds an object-level rule, used for checks spanning several fields.
func Global(ok bool, key, message string, values map[string]any) Rule {
	return Rule{
		Check: func() bool { return ok },
		Error: ValidationError{
			Message:           message,
			TranslationKey:    key,
			TranslationValues: values,
		},
	}
}

// MinInt checks value >= min.
func MinInt(field string, value, min int64) Rule {
	return Rule{
		Check: func() bool { return value >= min },
		Error: ValidationError{
			Field:             field,
			Message:           fmt.Sprintf("must be at least %d", min),
			TranslationKey:    "validation.min",
			TranslationValues: map[string]any{"field": field, "min": min},
		},
	}
}

// MaxInt checks value <= max.
func MaxInt(field string, value, max int64) Rule {
	return Rule{
		Check: func() bool { return value <= max },
		Error: ValidationError{
			Field:             field,
			Message:           fmt.Sprintf("must be at most %d", max),
			TranslationKey:    "validation.max",
			TranslationValues: map[string]any{"field": field, "max": max},
		},
	}
}

// MinLenString checks the rune length of value.
func MinLenString(field, value string, min int) Rule {
	return Rule{
		Check: func() bool { return len([]rune(value)) >= min },
		Error: ValidationError{
			Field:             field,
			Message:           fmt.Sprintf("must be at least %d characters long", min),
			TranslationKey:    "validation.min_length",
			TranslationValues: map[string]any{"field": field, "min": min},
		},
	}
}

// MaxLenString checks the rune length of value.
func MaxLenString(field, value string, max int) Rule {
	return Rule{
		Check: func() bool { return len([]rune(value)) <= max },
		Error: ValidationError{
			Field:             field,
			Message:           fmt.Sprintf("must be at most %d characters long", max),
			TranslationKey:    "validation.max_length",
			TranslationValues: map[string]any{"field": field, "max": max},
		},
	}
}
