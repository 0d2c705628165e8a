package response

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"

	"github.com/dmitrymomot/sessionlab/core/handler"
)

// ErrNilTemplate is returned when a template response is built from a nil set.
var ErrNilTemplate = errors.New("template is nil")

// TemplateName renders the named template of a set with 200 OK.
// Output is buffered, so a failing template writes nothing.
func TemplateName(tmpl *template.Template, name string, data any) handler.Response {
	return TemplateNameWithStatus(tmpl, name, data, http.StatusOK)
}

// TemplateNameWithStatus renders the named template with a custom status code.
func TemplateNameWithStatus(tmpl *template.Template, name string, data any, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if tmpl == nil {
			return ErrNilTemplate
		}

		var buf bytes.Buffer
		if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
			return err
		}

		if status == 0 {
			status = http.StatusOK
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, err := w.Write(buf.Bytes())
		return err
	}
}
