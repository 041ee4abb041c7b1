package middleware

import (
	"net/http"
	"strings"
)

// MethodOverrideField is the form/query field carrying the intended verb.
const MethodOverrideField = "_method"

// MethodOverride lets HTML forms express PUT/PATCH/DELETE over POST by
// setting a hidden "_method" field or a "_method" query parameter. Must run
// after form parsing and before routing so the router matches the intended
// verb. Multipart forms must use the query parameter: their body fields are
// not parsed until the upload handler runs.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			verb := r.Form.Get(MethodOverrideField)
			if verb == "" {
				verb = r.URL.Query().Get(MethodOverrideField)
			}
			switch strings.ToUpper(verb) {
			case http.MethodPut:
				r.Method = http.MethodPut
			case http.MethodPatch:
				r.Method = http.MethodPatch
			case http.MethodDelete:
				r.Method = http.MethodDelete
			}
		}
		next.ServeHTTP(w, r)
	})
}
