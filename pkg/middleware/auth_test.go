package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tanakrit/pawmart/pkg/auth"
)

func TestAuthRejectsMissingToken(t *testing.T) {
	h := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthRejectsBadToken(t *testing.T) {
	h := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer not-a-jwt")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthInjectsIdentity(t *testing.T) {
	token, err := auth.GenerateToken(7, "seller")
	if err != nil {
		t.Fatal(err)
	}

	var gotID uint
	var gotRole string
	h := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = UserIDFromCtx(r)
		gotRole, _ = RoleFromCtx(r)
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotID != 7 || gotRole != "seller" {
		t.Errorf("identity: id=%d role=%q", gotID, gotRole)
	}
}

func TestIdentityAbsentWithoutAuth(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := UserIDFromCtx(r); ok {
		t.Error("no user ID expected")
	}
	if _, ok := RoleFromCtx(r); ok {
		t.Error("no role expected")
	}
}
