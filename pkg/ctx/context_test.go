package ctx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func newContext(method, target, body string) (*Context, *httptest.ResponseRecorder) {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	r := httptest.NewRequest(method, target, reader)
	if body != "" {
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	return acquire(w, r), w
}

func withParam(c *Context, key, value string) {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	c.R = c.R.WithContext(context.WithValue(c.R.Context(), chi.RouteCtxKey, rctx))
}

func TestParamUint(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/pets/42", "")
	withParam(c, "id", "42")

	if got := c.ParamUint("id"); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}

	withParam(c, "id", "abc")
	if got := c.ParamUint("id"); got != 0 {
		t.Errorf("expected 0 for junk, got %d", got)
	}
}

func TestQueryHelpers(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/pets?page=3&limit=10&q=rex", "")

	if got := c.Query("q"); got != "rex" {
		t.Errorf("Query: got %q", got)
	}
	if got := c.DefaultQuery("missing", "fallback"); got != "fallback" {
		t.Errorf("DefaultQuery: got %q", got)
	}
	if got := c.QueryInt("limit", 20); got != 10 {
		t.Errorf("QueryInt: got %d", got)
	}

	page, limit := c.Page()
	if page != 3 || limit != 10 {
		t.Errorf("Page: got (%d, %d)", page, limit)
	}
}

func TestPageDefaults(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/pets", "")
	page, limit := c.Page()
	if page != 1 || limit != 20 {
		t.Errorf("expected defaults (1, 20), got (%d, %d)", page, limit)
	}
}

func TestSuccessEnvelope(t *testing.T) {
	c, w := newContext(http.MethodGet, "/", "")
	c.Success(map[string]string{"name": "Rex"})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("wrong content type: %q", ct)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != float64(200) {
		t.Errorf("status field: %v", body["status"])
	}
	if body["data"] == nil {
		t.Error("data field missing")
	}
}

func TestValidationErrorEnvelope(t *testing.T) {
	c, w := newContext(http.MethodPost, "/", "")
	c.ValidationError(map[string]string{"email": "email must be a valid email address"})

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Errors["email"] == "" {
		t.Error("expected email error in envelope")
	}
}

func TestBindJSONInvalidBody(t *testing.T) {
	c, w := newContext(http.MethodPost, "/", "{not json")

	var dest struct {
		Name string `json:"name" validate:"required"`
	}
	if c.BindJSON(&dest) {
		t.Fatal("BindJSON should fail on malformed JSON")
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestBindJSONValidationFailure(t *testing.T) {
	c, w := newContext(http.MethodPost, "/", `{"name":""}`)

	var dest struct {
		Name string `json:"name" validate:"required"`
	}
	if c.BindJSON(&dest) {
		t.Fatal("BindJSON should fail validation")
	}
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}
}

func TestBindJSONOK(t *testing.T) {
	c, w := newContext(http.MethodPost, "/", `{"name":"Rex"}`)

	var dest struct {
		Name string `json:"name" validate:"required"`
	}
	if !c.BindJSON(&dest) {
		t.Fatalf("BindJSON failed: %d %s", w.Code, w.Body.String())
	}
	if dest.Name != "Rex" {
		t.Errorf("got %q", dest.Name)
	}
	if c.WrittenStatus() != 0 {
		t.Errorf("no response should be written yet, got %d", c.WrittenStatus())
	}
}

func TestClientIP(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/", "")
	c.R.RemoteAddr = "10.0.0.1:1234"
	if got := c.ClientIP(); got != "10.0.0.1" {
		t.Errorf("got %q", got)
	}

	c.R.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	if got := c.ClientIP(); got != "203.0.113.7" {
		t.Errorf("forwarded: got %q", got)
	}
}

func TestWrapReleasesContext(t *testing.T) {
	called := false
	h := Wrap(func(c *Context) {
		called = true
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if !called {
		t.Fatal("handler not called")
	}
	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", w.Code)
	}
}
