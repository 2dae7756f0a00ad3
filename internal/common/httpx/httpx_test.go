package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"restaurant-floor/internal/common/apperr"
	"restaurant-floor/internal/common/logger"
)

func TestWriteErrorMapsKinds(t *testing.T) {
	lg := logger.NewWithWriter("test", io.Discard, "info")
	cases := []struct {
		err    error
		status int
		detail string
	}{
		{apperr.Validation("op", "name", "name is required"), http.StatusBadRequest, "name is required"},
		{apperr.NotFound("op", "waitId is invalid: number not in DB"), http.StatusNotFound, "waitId is invalid: number not in DB"},
		{apperr.Internal("op", errors.New("pq: connection refused")), http.StatusInternalServerError, "an unexpected error occurred"},
		{errors.New("unclassified"), http.StatusInternalServerError, "an unexpected error occurred"},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		WriteError(rec, httptest.NewRequest(http.MethodGet, "/x", nil), lg, c.err)
		if rec.Code != c.status {
			t.Errorf("%v: status = %d, want %d", c.err, rec.Code, c.status)
		}
		var body map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("body: %v", err)
		}
		if body["detail"] != c.detail {
			t.Errorf("%v: detail = %v, want %q", c.err, body["detail"], c.detail)
		}
	}
}

func TestInternalErrorsAreLogged(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter("test", &buf, "info")
	WriteError(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/orders", nil), lg,
		apperr.Internal("order.place", errors.New("insert failed")))
	if !strings.Contains(buf.String(), "insert failed") {
		t.Fatalf("cause not logged: %q", buf.String())
	}
}

func TestDecodeJSON(t *testing.T) {
	var v struct{ Name string }
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name": "Alice"}`))
	if err := DecodeJSON(r, "op", &v); err != nil || v.Name != "Alice" {
		t.Fatalf("decode = %+v, %v", v, err)
	}

	for _, body := range []string{"", "{", "[1,2"} {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		if err := DecodeJSON(r, "op", &v); !apperr.IsKind(err, apperr.KindValidation) {
			t.Errorf("body %q: expected validation error, got %v", body, err)
		}
	}
}

func TestWithRequestLogSetsRequestID(t *testing.T) {
	lg := logger.NewWithWriter("test", io.Discard, "debug")
	var seen string
	h := WithRequestLog(lg, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logger.RequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == "" || rec.Header().Get(RequestIDHeader) != seen {
		t.Fatalf("request id not propagated: ctx=%q header=%q", seen, rec.Header().Get(RequestIDHeader))
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if seen != "abc" {
		t.Fatalf("incoming request id ignored: %q", seen)
	}
}
