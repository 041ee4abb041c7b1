package middleware

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func overrideRequest(t *testing.T, method string, form url.Values) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, "/campgrounds/3", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if err := req.ParseForm(); err != nil {
		t.Fatalf("ParseForm: %v", err)
	}
	return req
}

func TestMethodOverride(t *testing.T) {
	cases := []struct {
		name     string
		method   string
		override string
		want     string
	}{
		{"post to delete", "POST", "DELETE", "DELETE"},
		{"post to put", "POST", "PUT", "PUT"},
		{"post to patch", "POST", "PATCH", "PATCH"},
		{"lowercase accepted", "POST", "delete", "DELETE"},
		{"get is never overridden", "GET", "DELETE", "GET"},
		{"unknown verb ignored", "POST", "TRACE", "POST"},
		{"no field", "POST", "", "POST"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var got string
			h := MethodOverride(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.Method
			}))

			form := url.Values{}
			if c.override != "" {
				form.Set(MethodOverrideField, c.override)
			}
			h.ServeHTTP(httptest.NewRecorder(), overrideRequest(t, c.method, form))

			if got != c.want {
				t.Errorf("method: got %s, want %s", got, c.want)
			}
		})
	}
}

// The edit form posts multipart with the override in the query string, since
// multipart body fields are not in r.Form when the override runs.
func TestMethodOverride_MultipartFormViaQuery(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("title", "Misty Hollow"); err != nil {
		t.Fatalf("WriteField: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	req := httptest.NewRequest("POST", "/campgrounds/3?_method=PUT", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var gotMethod, gotTitle string
	h := ParseForm(MethodOverride(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("ParseMultipartForm: %v", err)
		}
		gotTitle = r.FormValue("title")
	})))
	h.ServeHTTP(httptest.NewRecorder(), req)

	if gotMethod != http.MethodPut {
		t.Errorf("method: got %s, want PUT", gotMethod)
	}
	if gotTitle != "Misty Hollow" {
		t.Errorf("multipart body unreadable after override: title %q", gotTitle)
	}
}

func TestMethodOverride_MultipartBodyFieldIsNotSeen(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField(MethodOverrideField, "PUT"); err != nil {
		t.Fatalf("WriteField: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	req := httptest.NewRequest("POST", "/campgrounds/3", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var got string
	h := ParseForm(MethodOverride(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Method
	})))
	h.ServeHTTP(httptest.NewRecorder(), req)

	if got != http.MethodPost {
		t.Errorf("method: got %s, want POST", got)
	}
}
