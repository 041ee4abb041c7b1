package middleware

import "net/http"

// ParseForm decodes the query string and any form-encoded request body into
// r.Form before anything downstream runs. Multipart bodies are left for the
// upload handlers, which parse them with an explicit memory cap.
func ParseForm(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad request body", http.StatusBadRequest)
			return
		}
		next.ServeHTTP(w, r)
	})
}
