package binder

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"
)

// DefaultMaxMemory bounds the memory used when parsing multipart forms.
const DefaultMaxMemory = 10 << 20

// Form binds application/x-www-form-urlencoded and multipart/form-data bodies.
//
// Fields are matched by the `form:"name"` tag, `form:"-"` skips a field and
// untagged fields use their lowercased name. Empty values leave the field
// untouched, so a *int stays nil when the input box was left blank.
//
//	type ItemForm struct {
//		Name     string `form:"itemName"`
//		Price    *int   `form:"price"`
//		Quantity *int   `form:"quantity"`
//	}
//
// A value that cannot be converted yields an error that wraps both
// ErrFailedToParseForm and a *FieldError naming the parameter.
func Form() Binder {
	return func(r *http.Request, v any) error {
		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			return fmt.Errorf("%w: expected application/x-www-form-urlencoded or multipart/form-data", ErrMissingContentType)
		}

		mediaType, params, err := mime.ParseMediaType(contentType)
		if err != nil {
			return fmt.Errorf("%w: malformed content type", ErrFailedToParseForm)
		}

		var values map[string][]string
		switch {
		case mediaType == "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
			}
			values = r.PostForm

		case strings.HasPrefix(mediaType, "multipart/form-data"):
			if !validateBoundary(params["boundary"]) {
				return fmt.Errorf("%w: invalid boundary parameter", ErrFailedToParseForm)
			}
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
			}
			values = r.MultipartForm.Value

		default:
			return fmt.Errorf("%w: got %s", ErrUnsupportedMediaType, mediaType)
		}

		return bindToStruct(v, "form", values, ErrFailedToParseForm)
	}
}

// Query binds URL query parameters using `query` tags.
func Query() Binder {
	return func(r *http.Request, v any) error {
		return bindToStruct(v, "query", r.URL.Query(), ErrFailedToParseQuery)
	}
}

// IsFieldError reports whether err carries a conversion failure and returns it.
func IsFieldError(err error) (*FieldError, bool) {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
