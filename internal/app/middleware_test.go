package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func echoMethod() (http.Handler, *string) {
	var got string
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Method
		w.WriteHeader(http.StatusOK)
	}), &got
}

func TestMethodOverrideQueryMarker(t *testing.T) {
	inner, got := echoMethod()
	h := MethodOverride(inner)

	req := httptest.NewRequest(http.MethodPost, "/api/purchases/1?_method=PUT", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.Equal(t, http.MethodPut, *got)
}

func TestMethodOverrideMultipartHeader(t *testing.T) {
	inner, got := echoMethod()
	h := MethodOverride(inner)

	req := httptest.NewRequest(http.MethodPost, "/api/purchases/1", nil)
	req.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")
	req.Header.Set("X-HTTP-Method-Override", "PUT")
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.Equal(t, http.MethodPut, *got)
}

func TestMethodOverrideIgnoresUnknownVerbs(t *testing.T) {
	inner, got := echoMethod()
	h := MethodOverride(inner)

	req := httptest.NewRequest(http.MethodPost, "/api/purchases?_method=TRACE", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.Equal(t, http.MethodPost, *got)

	req = httptest.NewRequest(http.MethodGet, "/api/purchases?_method=DELETE", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.Equal(t, http.MethodGet, *got)
}
