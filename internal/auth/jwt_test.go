package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rmateos/taskdeck-be/internal/models"
)

func init() {
	Init("test-secret")
}

func TestGenerateAndValidateJWT(t *testing.T) {
	user := models.User{ID: "u-1", Username: "alice"}

	token, err := GenerateJWT(user)
	if err != nil {
		t.Fatalf("GenerateJWT error = %v", err)
	}

	claims, err := ValidateJWT(token)
	if err != nil {
		t.Fatalf("ValidateJWT error = %v", err)
	}
	if claims.UserID != "u-1" || claims.Username != "alice" {
		t.Fatalf("Claims = %+v, want u-1/alice", claims)
	}
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	if _, err := ValidateJWT("not.a.token"); err == nil {
		t.Fatal("ValidateJWT accepted garbage")
	}
}

func protectedEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, _ := FromContext(r.Context())
		w.Write([]byte(claims.Username))
	})
}

func TestRequireSession(t *testing.T) {
	handler := RequireSession()(protectedEcho())

	// No token: structured 401.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/account", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("Status = %d, want 401", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Content-Type = %q, want application/json", ct)
	}

	// Valid cookie: passes with claims in context.
	token, err := GenerateJWT(models.User{ID: "u-1", Username: "alice"})
	if err != nil {
		t.Fatalf("GenerateJWT error = %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/account", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "alice" {
		t.Fatalf("Authenticated request = (%d, %q), want (200, alice)", rec.Code, rec.Body.String())
	}

	// Bearer header works too.
	req = httptest.NewRequest(http.MethodGet, "/account", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Bearer request status = %d, want 200", rec.Code)
	}
}

func TestRequirePageRedirectsToLogin(t *testing.T) {
	handler := RequirePage()(protectedEcho())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("Status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("Location = %q, want /login", loc)
	}
}
