package web

import (
	"net/http"
	"reflect"

	"github.com/dmitrymomot/sessionlab/core/binder"
	"github.com/dmitrymomot/sessionlab/core/router"
	"github.com/dmitrymomot/sessionlab/core/sanitizer"
	"github.com/dmitrymomot/sessionlab/core/validator"
	"github.com/dmitrymomot/sessionlab/internal/member"
	"github.com/dmitrymomot/sessionlab/middleware"
)

// Context is the request context of the web handlers.
type Context struct {
	*router.Context
}

// NewContext is the router context factory.
func NewContext(w http.ResponseWriter, r *http.Request, params map[string]string) *Context {
	return &Context{Context: router.NewContext(w, r, params)}
}

// Member returns the logged-in member resolved for this request.
func (c *Context) Member() (member.Member, bool) {
	return middleware.GetMember[member.Member](c)
}

// Bind decodes the submitted form into v, sanitizes it and validates it.
// Input that cannot be converted is reported as a ValidationError on the
// matching struct field, so forms can show it next to the input.
func (c *Context) Bind(v any) error {
	if err := binder.Form()(c.Request(), v); err != nil {
		fe, ok := binder.IsFieldError(err)
		if !ok {
			return err
		}
		return validator.ValidationErrors{{
			Field:          structField(v, fe.Field),
			Message:        "invalid value",
			TranslationKey: "typeMismatch",
		}}
	}

	if err := sanitizer.SanitizeStruct(v); err != nil {
		return err
	}

	errs := []error{validator.ValidateStruct(v)}
	if f, ok := v.(interface{ Validate() error }); ok {
		errs = append(errs, f.Validate())
	}
	return validator.Merge(errs...)
}

// structField maps a form parameter back to the Go field name.
func structField(v any, param string) string {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return param
	}
	for i := range t.NumField() {
		if sf := t.Field(i); sf.Tag.Get("form") == param {
			return sf.Name
		}
	}
	return param
}
