package middleware

import (
	"net/http"
	"net/url"
	"strings"
)

// sanitizeReplacement substitutes characters that double as document-query
// operators when user input keys are fed to a query builder.
const sanitizeReplacement = "_"

// Sanitize renames any form or query key that starts with '$' or contains
// '.' so no operator-led key ever reaches a handler. Values are untouched;
// only keys are dangerous as injection vectors. Runs after form parsing.
func Sanitize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Form = sanitizeValues(r.Form)
		r.PostForm = sanitizeValues(r.PostForm)
		if q := sanitizeValues(r.URL.Query()); q != nil {
			r.URL.RawQuery = q.Encode()
		}
		next.ServeHTTP(w, r)
	})
}

func sanitizeValues(in url.Values) url.Values {
	if in == nil {
		return nil
	}
	out := make(url.Values, len(in))
	for k, vs := range in {
		out[SanitizeKey(k)] = vs
	}
	return out
}

// SanitizeKey rewrites one key: a leading '$' and every '.' become "_".
func SanitizeKey(k string) string {
	if strings.HasPrefix(k, "$") {
		k = sanitizeReplacement + k[1:]
	}
	return strings.ReplaceAll(k, ".", sanitizeReplacement)
}
