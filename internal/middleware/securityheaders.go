package middleware

import (
	"net/http"
	"strings"
)

// cspDirectives is the fixed allow-list for the rendered pages: MapTiler for
// map tiles and workers, jsDelivr for Bootstrap, plus whatever image origins
// the deployment serves uploads from.
func cspDirectives(imageOrigins []string) string {
	imgSrc := append([]string{
		"'self'", "data:", "blob:",
		"https://api.maptiler.com", "https://*.maptiler.com",
		"https://images.unsplash.com", "https://*.unsplash.com",
	}, imageOrigins...)

	directives := []string{
		"default-src 'self'",
		"script-src 'self' https://cdn.maptiler.com https://cdn.jsdelivr.net",
		// MapTiler spawns web workers via blob: URLs.
		"worker-src 'self' blob:",
		"connect-src 'self' https://api.maptiler.com https://cdn.jsdelivr.net",
		"style-src 'self' 'unsafe-inline' https://cdn.maptiler.com https://cdn.jsdelivr.net",
		"img-src " + strings.Join(imgSrc, " "),
		"font-src 'self' data: https://cdn.jsdelivr.net",
		"object-src 'none'",
	}
	return strings.Join(directives, "; ")
}

// SecurityHeaders returns a middleware that sets security response headers
// for every page. imageOrigins extends the CSP img-src allow-list (e.g. the
// public object-store origin).
func SecurityHeaders(imageOrigins []string) func(http.Handler) http.Handler {
	csp := cspDirectives(imageOrigins)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Security-Policy", csp)
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "SAMEORIGIN")
			w.Header().Set("Referrer-Policy", "no-referrer")
			// Map workers need cross-origin resources; COEP stays off.
			w.Header().Set("Cross-Origin-Resource-Policy", "cross-origin")
			next.ServeHTTP(w, r)
		})
	}
}
