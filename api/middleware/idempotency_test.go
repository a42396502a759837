package middleware

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/decantiq/decantiq-backend/pkg/config"
)

type fakeStore struct {
	data map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string]string)}
}

func (f *fakeStore) Get(_ context.Context, key string) (string, error) {
	if v, ok := f.data[key]; ok {
		return v, nil
	}
	return "", redis.Nil
}

func (f *fakeStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	if _, ok := f.data[key]; ok {
		return false, nil
	}
	str, _ := value.(string)
	f.data[key] = str
	return true, nil
}

func (f *fakeStore) IdempotencyKey(scope, id string) string {
	return fmt.Sprintf("fake:%s:%s", scope, id)
}

func (f *fakeStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func requestWithPattern(method, url, pattern string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, url, body)
	rc := chi.NewRouteContext()
	rc.RoutePatterns = []string{pattern}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))
}

func TestRouteTTLSelection(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		pattern string
		want    time.Duration
		ok      bool
	}{
		{"checkout confirm", http.MethodPost, "/api/v1/checkout/confirm", criticalIdempotencyTTL, true},
		{"admin product create", http.MethodPost, "/api/admin/v1/products", defaultIdempotencyTTL, true},
		{"admin collection save", http.MethodPut, "/api/admin/v1/collections/{slug}", defaultIdempotencyTTL, true},
		{"cart add not covered", http.MethodPost, "/api/v1/cart", 0, false},
		{"collection read not covered", http.MethodGet, "/api/admin/v1/collections/{slug}", 0, false},
	}

	rules := idempotencyRules(config.CheckoutConfig{})
	for _, tt := range tests {
		ttl, ok := routeTTL(rules, tt.method, tt.pattern)
		if ok != tt.ok {
			t.Fatalf("%s: expected ok=%v got %v", tt.name, tt.ok, ok)
		}
		if ok && ttl != tt.want {
			t.Fatalf("%s: expected ttl=%v got %v", tt.name, tt.want, ttl)
		}
	}
}

func TestRouteTTLUsesConfiguredConfirmWindow(t *testing.T) {
	rules := idempotencyRules(config.CheckoutConfig{IdempotencyTTL: 48 * time.Hour})
	ttl, ok := routeTTL(rules, http.MethodPost, "/api/v1/checkout/confirm")
	if !ok {
		t.Fatalf("expected checkout confirm to be covered")
	}
	if ttl != 48*time.Hour {
		t.Fatalf("expected configured ttl 48h got %v", ttl)
	}

	// admin writes keep the default window regardless of the confirm setting
	ttl, ok = routeTTL(rules, http.MethodPost, "/api/admin/v1/products")
	if !ok || ttl != defaultIdempotencyTTL {
		t.Fatalf("expected admin ttl %v got %v (ok=%v)", defaultIdempotencyTTL, ttl, ok)
	}
}

func TestIdempotencyMiddlewareRequiresHeader(t *testing.T) {
	store := newFakeStore()
	mw := Idempotency(store, config.CheckoutConfig{}, nil)
	handlerCalled := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusCreated)
	})

	req := requestWithPattern(http.MethodPost, "/api/v1/checkout/confirm", "/api/v1/checkout/confirm", strings.NewReader(`{"email":"a@b.c"}`))
	resp := httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if handlerCalled {
		t.Fatalf("handler should not run without idempotency key")
	}
}

func TestIdempotencyMiddlewareReplaysStoredResponse(t *testing.T) {
	store := newFakeStore()
	mw := Idempotency(store, config.CheckoutConfig{}, nil)
	var calls int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	req := requestWithPattern(http.MethodPost, "/api/v1/checkout/confirm", "/api/v1/checkout/confirm", strings.NewReader(`{"email":"a@b.c"}`))
	req.Header.Set("Idempotency-Key", "abc")
	resp := httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected first response 201 got %d", resp.Code)
	}

	replay := requestWithPattern(http.MethodPost, "/api/v1/checkout/confirm", "/api/v1/checkout/confirm", strings.NewReader(`{"email":"a@b.c"}`))
	replay.Header.Set("Idempotency-Key", "abc")
	rec := httptest.NewRecorder()
	mw(handler).ServeHTTP(rec, replay)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected replay status 201 got %d", rec.Code)
	}
	if rec.Header().Get("Content-Type") != "application/json" {
		t.Fatalf("expected content-type header preserved")
	}
	if strings.TrimSpace(rec.Body.String()) != `{"ok":true}` {
		t.Fatalf("expected stored body got %s", rec.Body.String())
	}
	if calls != 1 {
		t.Fatalf("handler executed %d times, expected 1", calls)
	}
}

func TestIdempotencyMiddlewareDetectsBodyChange(t *testing.T) {
	store := newFakeStore()
	mw := Idempotency(store, config.CheckoutConfig{}, nil)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	first := requestWithPattern(http.MethodPost, "/api/v1/checkout/confirm", "/api/v1/checkout/confirm", strings.NewReader(`{"email":"a@b.c"}`))
	first.Header.Set("Idempotency-Key", "xyz")
	mw(handler).ServeHTTP(httptest.NewRecorder(), first)

	second := requestWithPattern(http.MethodPost, "/api/v1/checkout/confirm", "/api/v1/checkout/confirm", strings.NewReader(`{"email":"other@b.c"}`))
	second.Header.Set("Idempotency-Key", "xyz")
	rec := httptest.NewRecorder()
	mw(handler).ServeHTTP(rec, second)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for reused key with new body got %d", rec.Code)
	}
}

func TestIdempotencyMiddlewareScopesBySession(t *testing.T) {
	store := newFakeStore()
	mw := Idempotency(store, config.CheckoutConfig{}, nil)
	var calls int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
	})

	for _, session := range []string{"session-a", "session-b"} {
		req := requestWithPattern(http.MethodPost, "/api/v1/checkout/confirm", "/api/v1/checkout/confirm", strings.NewReader(`{"email":"a@b.c"}`))
		req = req.WithContext(WithSessionID(req.Context(), session))
		req.Header.Set("Idempotency-Key", "shared")
		rec := httptest.NewRecorder()
		mw(handler).ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("session %s: expected 201 got %d", session, rec.Code)
		}
	}

	if calls != 2 {
		t.Fatalf("expected both sessions to execute, handler ran %d times", calls)
	}
}
