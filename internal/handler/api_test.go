package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/grocerly/grocerly/internal/handler/dto"
	"github.com/grocerly/grocerly/internal/middleware"
	"github.com/grocerly/grocerly/internal/service"
	"github.com/grocerly/grocerly/internal/testutil"
)

const testCookieName = "grocery_session"

// newTestRouter wires the real handlers, services, and session guard
// against in-memory stores and a miniredis-backed session cache.
func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessions, _ := testutil.NewMiniredisCache(t)

	accounts := service.NewAccountService(testutil.NewMemUserStore(), sessions, time.Hour, nil)
	groceries := service.NewGroceryService(testutil.NewMemGroceryStore(), nil)

	h := New()
	authHandler := NewAuthHandler(accounts, SessionCookie{Name: testCookieName, MaxAge: time.Hour}, logger)
	groceryHandler := NewGroceryHandler(groceries, logger)

	r := chi.NewRouter()
	r.Get("/", h.Hello)
	r.Post("/register", authHandler.Register)
	r.Post("/login", authHandler.Login)
	r.Post("/logout", authHandler.Logout)
	r.Get("/logout", authHandler.Logout)

	r.Route("/groceries", func(r chi.Router) {
		r.Use(middleware.SessionAuth(middleware.SessionAuthConfig{
			Logger:     logger,
			Accounts:   accounts,
			CookieName: testCookieName,
		}))
		r.Get("/", groceryHandler.List)
		r.Get("/stats", groceryHandler.Stats)
		r.Post("/", groceryHandler.Add)
		r.Put("/edit/{id}", groceryHandler.Edit)
		r.Put("/toggle/{id}", groceryHandler.Toggle)
		r.Delete("/completed", groceryHandler.ClearCompleted)
		r.Delete("/{id}", groceryHandler.Delete)
		r.Delete("/", groceryHandler.ClearAll)
	})

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}

func doJSON(t *testing.T, router http.Handler, method, target string, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(dst); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

// registerAndLogin creates an account and returns its session cookie.
func registerAndLogin(t *testing.T, router http.Handler, username, email string) *http.Cookie {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/register",
		`{"username":"`+username+`","email":"`+email+`","password":"secret123","confirmPassword":"secret123"}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/login",
		`{"username":"`+username+`","password":"secret123"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == testCookieName {
			return cookie
		}
	}
	t.Fatal("login response did not set the session cookie")
	return nil
}

func TestHandler_Hello(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if contentType := rec.Header().Get("Content-Type"); contentType != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", contentType)
	}

	var response map[string]string
	decodeBody(t, rec, &response)
	if response["message"] != "Grocerly API" {
		t.Errorf("unexpected message: %s", response["message"])
	}
	if response["version"] != "1.0.0" {
		t.Errorf("unexpected version: %s", response["version"])
	}
}

func TestHandler_NotFound(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/nonexistent", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}

	var response dto.ErrorResponse
	decodeBody(t, rec, &response)
	if response.Code != "NOT_FOUND" {
		t.Errorf("unexpected code: %s", response.Code)
	}
}

func TestRegister(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/register",
		`{"username":"alice","email":"alice@example.com","password":"secret123","confirmPassword":"secret123"}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	var response dto.UserResponse
	decodeBody(t, rec, &response)
	if response.ID == "" {
		t.Error("expected a generated user id")
	}
	if response.Username != "alice" {
		t.Errorf("Username = %q, want alice", response.Username)
	}
}

func TestRegister_ValidationFields(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/register",
		`{"username":"ab","email":"bad","password":"x","confirmPassword":"y"}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var response dto.ErrorResponse
	decodeBody(t, rec, &response)
	if response.Code != "VALIDATION_FAILED" {
		t.Errorf("unexpected code: %s", response.Code)
	}
	for _, field := range []string{"username", "email", "password", "confirmPassword"} {
		if _, ok := response.Fields[field]; !ok {
			t.Errorf("expected field %q in validation response", field)
		}
	}
}

func TestRegister_Duplicate(t *testing.T) {
	router := newTestRouter(t)
	registerAndLogin(t, router, "alice", "alice@example.com")

	rec := doJSON(t, router, http.MethodPost, "/register",
		`{"username":"alice","email":"fresh@example.com","password":"secret123","confirmPassword":"secret123"}`, nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}

	var response dto.ErrorResponse
	decodeBody(t, rec, &response)
	if response.Code != "CONFLICT" {
		t.Errorf("unexpected code: %s", response.Code)
	}
}

func TestRegister_InvalidJSON(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/register", `{not json`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	router := newTestRouter(t)
	cookie := registerAndLogin(t, router, "alice", "alice@example.com")

	if !cookie.HttpOnly {
		t.Error("session cookie should be httpOnly")
	}
	if cookie.Value == "" {
		t.Error("session cookie should carry the token")
	}
	if cookie.MaxAge != int(time.Hour.Seconds()) {
		t.Errorf("MaxAge = %d, want %d", cookie.MaxAge, int(time.Hour.Seconds()))
	}
}

func TestLogin_MissingCredentials(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/login", `{"username":"","password":""}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var response dto.ErrorResponse
	decodeBody(t, rec, &response)
	if response.Code != "MISSING_CREDENTIALS" {
		t.Errorf("unexpected code: %s", response.Code)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	router := newTestRouter(t)
	registerAndLogin(t, router, "alice", "alice@example.com")

	rec := doJSON(t, router, http.MethodPost, "/login",
		`{"username":"alice","password":"wrong-pass"}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var response dto.ErrorResponse
	decodeBody(t, rec, &response)
	if response.Code != "INVALID_CREDENTIALS" {
		t.Errorf("unexpected code: %s", response.Code)
	}
}

func TestGroceries_RequireSession(t *testing.T) {
	router := newTestRouter(t)

	requests := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/groceries"},
		{http.MethodGet, "/groceries/stats"},
		{http.MethodPost, "/groceries"},
		{http.MethodPut, "/groceries/edit/some-id"},
		{http.MethodPut, "/groceries/toggle/some-id"},
		{http.MethodDelete, "/groceries/some-id"},
		{http.MethodDelete, "/groceries/completed"},
		{http.MethodDelete, "/groceries"},
	}

	for _, req := range requests {
		rec := doJSON(t, router, req.method, req.target, "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", req.method, req.target, rec.Code)
		}
	}
}

func TestGroceries_RejectStaleCookie(t *testing.T) {
	router := newTestRouter(t)

	stale := &http.Cookie{Name: testCookieName, Value: "gs_0123456789abcdef0123456789abcdef"}
	rec := doJSON(t, router, http.MethodGet, "/groceries", "", stale)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for an unknown token, got %d", rec.Code)
	}
}

func TestGroceries_AddAndList(t *testing.T) {
	router := newTestRouter(t)
	cookie := registerAndLogin(t, router, "alice", "alice@example.com")

	rec := doJSON(t, router, http.MethodPost, "/groceries",
		`{"name":"Milk","quantity":2,"price":1500,"category":"Dairy"}`, cookie)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	var created dto.ItemResponse
	decodeBody(t, rec, &created)
	if created.ID == "" {
		t.Error("expected a generated item id")
	}
	if created.Quantity != 2 || created.Price != 1500 || created.Category != "Dairy" {
		t.Errorf("unexpected item: %+v", created)
	}
	if created.Completed {
		t.Error("new items start active")
	}

	rec = doJSON(t, router, http.MethodGet, "/groceries", "", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var items []dto.ItemResponse
	decodeBody(t, rec, &items)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Name != "Milk" {
		t.Errorf("Name = %q, want Milk", items[0].Name)
	}
}

// Form clients serialize numbers as strings; the API accepts both.
func TestGroceries_Add_StringNumbers(t *testing.T) {
	router := newTestRouter(t)
	cookie := registerAndLogin(t, router, "alice", "alice@example.com")

	rec := doJSON(t, router, http.MethodPost, "/groceries",
		`{"name":"Bread","quantity":"2","price":"500.50","category":"Bakery"}`, cookie)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	var created dto.ItemResponse
	decodeBody(t, rec, &created)
	if created.Quantity != 2 {
		t.Errorf("Quantity = %d, want 2", created.Quantity)
	}
	if created.Price != 500.50 {
		t.Errorf("Price = %v, want 500.50", created.Price)
	}
}

func TestGroceries_Add_InvalidCategory(t *testing.T) {
	router := newTestRouter(t)
	cookie := registerAndLogin(t, router, "alice", "alice@example.com")

	rec := doJSON(t, router, http.MethodPost, "/groceries",
		`{"name":"Phone","quantity":1,"price":1,"category":"Electronics"}`, cookie)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var response dto.ErrorResponse
	decodeBody(t, rec, &response)
	if _, ok := response.Fields["category"]; !ok {
		t.Error("expected category in validation fields")
	}
}

func TestGroceries_EditAndToggle(t *testing.T) {
	router := newTestRouter(t)
	cookie := registerAndLogin(t, router, "alice", "alice@example.com")

	rec := doJSON(t, router, http.MethodPost, "/groceries",
		`{"name":"Milk","quantity":2,"price":1500,"category":"Dairy"}`, cookie)
	var created dto.ItemResponse
	decodeBody(t, rec, &created)

	rec = doJSON(t, router, http.MethodPut, "/groceries/edit/"+created.ID,
		`{"price":1200}`, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("edit: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	var edited dto.ItemResponse
	decodeBody(t, rec, &edited)
	if edited.Price != 1200 {
		t.Errorf("Price = %v, want 1200", edited.Price)
	}
	if edited.Name != "Milk" || edited.Quantity != 2 {
		t.Errorf("untouched fields changed: %+v", edited)
	}

	rec = doJSON(t, router, http.MethodPut, "/groceries/toggle/"+created.ID, "", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle: expected 200, got %d", rec.Code)
	}

	var toggled dto.ItemResponse
	decodeBody(t, rec, &toggled)
	if !toggled.Completed {
		t.Error("expected item to be completed after toggle")
	}
}

func TestGroceries_DeleteNotFound(t *testing.T) {
	router := newTestRouter(t)
	cookie := registerAndLogin(t, router, "alice", "alice@example.com")

	rec := doJSON(t, router, http.MethodDelete, "/groceries/no-such-item", "", cookie)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var response dto.ErrorResponse
	decodeBody(t, rec, &response)
	if response.Code != "ITEM_NOT_FOUND" {
		t.Errorf("unexpected code: %s", response.Code)
	}
}

func TestGroceries_ClearCompleted(t *testing.T) {
	router := newTestRouter(t)
	cookie := registerAndLogin(t, router, "alice", "alice@example.com")

	var ids []string
	for _, body := range []string{
		`{"name":"Milk","quantity":1,"price":2,"category":"Dairy"}`,
		`{"name":"Bread","quantity":1,"price":3,"category":"Bakery"}`,
	} {
		rec := doJSON(t, router, http.MethodPost, "/groceries", body, cookie)
		var created dto.ItemResponse
		decodeBody(t, rec, &created)
		ids = append(ids, created.ID)
	}

	doJSON(t, router, http.MethodPut, "/groceries/toggle/"+ids[1], "", cookie)

	rec := doJSON(t, router, http.MethodDelete, "/groceries/completed", "", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var cleared dto.ClearResponse
	decodeBody(t, rec, &cleared)
	if cleared.Deleted != 1 {
		t.Errorf("Deleted = %d, want 1", cleared.Deleted)
	}

	rec = doJSON(t, router, http.MethodGet, "/groceries", "", cookie)
	var items []dto.ItemResponse
	decodeBody(t, rec, &items)
	if len(items) != 1 || items[0].Name != "Milk" {
		t.Errorf("expected only the active item to survive, got %+v", items)
	}
}

func TestGroceries_Stats(t *testing.T) {
	router := newTestRouter(t)
	cookie := registerAndLogin(t, router, "alice", "alice@example.com")

	rec := doJSON(t, router, http.MethodPost, "/groceries",
		`{"name":"Milk","quantity":2,"price":1500,"category":"Dairy"}`, cookie)
	var created dto.ItemResponse
	decodeBody(t, rec, &created)
	doJSON(t, router, http.MethodPut, "/groceries/toggle/"+created.ID, "", cookie)

	doJSON(t, router, http.MethodPost, "/groceries",
		`{"name":"Bread","quantity":1,"price":500,"category":"Bakery"}`, cookie)

	rec = doJSON(t, router, http.MethodGet, "/groceries/stats", "", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var stats struct {
		Total          int     `json:"total"`
		Completed      int     `json:"completed"`
		Active         int     `json:"active"`
		TotalPrice     float64 `json:"total_price"`
		CompletedPrice float64 `json:"completed_price"`
		ActivePrice    float64 `json:"active_price"`
	}
	decodeBody(t, rec, &stats)

	if stats.Total != 2 || stats.Completed != 1 || stats.Active != 1 {
		t.Errorf("unexpected counts: %+v", stats)
	}
	if stats.TotalPrice != 3500 || stats.CompletedPrice != 3000 || stats.ActivePrice != 500 {
		t.Errorf("unexpected price sums: %+v", stats)
	}
}

func TestGroceries_OwnerIsolation(t *testing.T) {
	router := newTestRouter(t)
	aliceCookie := registerAndLogin(t, router, "alice", "alice@example.com")
	bobCookie := registerAndLogin(t, router, "bob", "bob@example.com")

	rec := doJSON(t, router, http.MethodPost, "/groceries",
		`{"name":"Milk","quantity":1,"price":2,"category":"Dairy"}`, aliceCookie)
	var created dto.ItemResponse
	decodeBody(t, rec, &created)

	// Bob sees an empty list and cannot touch Alice's item
	rec = doJSON(t, router, http.MethodGet, "/groceries", "", bobCookie)
	var items []dto.ItemResponse
	decodeBody(t, rec, &items)
	if len(items) != 0 {
		t.Errorf("expected empty list for bob, got %d items", len(items))
	}

	rec = doJSON(t, router, http.MethodDelete, "/groceries/"+created.ID, "", bobCookie)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for cross-owner delete, got %d", rec.Code)
	}
}

func TestLogout(t *testing.T) {
	router := newTestRouter(t)
	cookie := registerAndLogin(t, router, "alice", "alice@example.com")

	rec := doJSON(t, router, http.MethodPost, "/logout", "", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var expired *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == testCookieName {
			expired = c
		}
	}
	if expired == nil {
		t.Fatal("logout should reset the session cookie")
	}
	if expired.MaxAge >= 0 {
		t.Errorf("MaxAge = %d, want negative to expire the cookie", expired.MaxAge)
	}

	// The old token no longer authenticates
	rec = doJSON(t, router, http.MethodGet, "/groceries", "", cookie)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 after logout, got %d", rec.Code)
	}

	// Logging out again still succeeds
	rec = doJSON(t, router, http.MethodPost, "/logout", "", cookie)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for repeated logout, got %d", rec.Code)
	}
}
