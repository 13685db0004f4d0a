package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func newTestIdempotencyStore() *IdempotencyStore {
	return NewIdempotencyStore(IdempotencyConfig{
		TTL:     time.Hour,
		Cleanup: time.Hour,
	})
}

// createMandalartHandler builds a handler that simulates mandalart creation,
// returning a distinct record ID per invocation so replays are detectable.
func createMandalartHandler(calls *int32) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"data":{"id":"mandalart:%d","title":"2026 goals"}}`, n)
	})
}

func createMandalartRequest(key, title string) *http.Request {
	body := fmt.Sprintf(`{"title":%q}`, title)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/mandalarts", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	return req.WithContext(context.WithValue(req.Context(), UserIDKey, "users:alice"))
}

// ============================================================================
// Store Tests
// ============================================================================

func TestNewIdempotencyStore_Defaults(t *testing.T) {
	t.Parallel()

	store := NewIdempotencyStore(IdempotencyConfig{})
	defer store.Stop()

	if store.ttl != 24*time.Hour {
		t.Errorf("expected TTL 24h, got %v", store.ttl)
	}
	if store.entries == nil {
		t.Error("entries map should be initialized")
	}
}

func TestIdempotencyStore_Cleanup_DropsExpiredEntries(t *testing.T) {
	t.Parallel()

	store := newTestIdempotencyStore()
	defer store.Stop()

	store.mu.Lock()
	store.entries["expired"] = &idempotencyEntry{expiresAt: time.Now().Add(-time.Minute)}
	store.entries["live"] = &idempotencyEntry{expiresAt: time.Now().Add(time.Minute)}
	store.entries["in-flight"] = &idempotencyEntry{inFlight: true}
	store.mu.Unlock()

	store.cleanup()

	store.mu.RLock()
	defer store.mu.RUnlock()
	if _, ok := store.entries["expired"]; ok {
		t.Error("expired entry should be removed")
	}
	if _, ok := store.entries["live"]; !ok {
		t.Error("live entry should survive cleanup")
	}
	if _, ok := store.entries["in-flight"]; !ok {
		t.Error("in-flight entry should survive cleanup")
	}
}

func TestGenerateKey_SensitiveToAllInputs(t *testing.T) {
	t.Parallel()

	base := generateKey("users:alice", "key-1", http.MethodPost, "/api/v1/mandalarts", []byte(`{"title":"2026 goals"}`))

	variants := map[string]string{
		"user":   generateKey("users:bob", "key-1", http.MethodPost, "/api/v1/mandalarts", []byte(`{"title":"2026 goals"}`)),
		"key":    generateKey("users:alice", "key-2", http.MethodPost, "/api/v1/mandalarts", []byte(`{"title":"2026 goals"}`)),
		"method": generateKey("users:alice", "key-1", http.MethodPatch, "/api/v1/mandalarts", []byte(`{"title":"2026 goals"}`)),
		"path":   generateKey("users:alice", "key-1", http.MethodPost, "/api/v1/strategies", []byte(`{"title":"2026 goals"}`)),
		"body":   generateKey("users:alice", "key-1", http.MethodPost, "/api/v1/mandalarts", []byte(`{"title":"marathon"}`)),
	}
	for name, got := range variants {
		if got == base {
			t.Errorf("changing %s should change the composite key", name)
		}
	}
}

// ============================================================================
// Idempotency Middleware Tests
// ============================================================================

func TestIdempotency_ReplaysCachedCreateResponse(t *testing.T) {
	t.Parallel()

	store := newTestIdempotencyStore()
	defer store.Stop()

	var calls int32
	handler := Idempotency(store)(createMandalartHandler(&calls))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, createMandalartRequest("key-1", "2026 goals"))

	replay := httptest.NewRecorder()
	handler.ServeHTTP(replay, createMandalartRequest("key-1", "2026 goals"))

	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("expected handler to run once, ran %d times", calls)
	}
	if replay.Code != http.StatusCreated {
		t.Errorf("expected cached status 201, got %d", replay.Code)
	}
	if replay.Header().Get("X-Idempotency-Replayed") != "true" {
		t.Error("expected replay marker header")
	}
	if replay.Body.String() != first.Body.String() {
		t.Errorf("replay body %q does not match original %q", replay.Body.String(), first.Body.String())
	}

	var payload map[string]map[string]string
	if err := json.Unmarshal(replay.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unexpected replay body: %v", err)
	}
	if payload["data"]["id"] != "mandalart:1" {
		t.Errorf("replay must return the originally created record, got %q", payload["data"]["id"])
	}
}

func TestIdempotency_DifferentKeysCreateSeparately(t *testing.T) {
	t.Parallel()

	store := newTestIdempotencyStore()
	defer store.Stop()

	var calls int32
	handler := Idempotency(store)(createMandalartHandler(&calls))

	handler.ServeHTTP(httptest.NewRecorder(), createMandalartRequest("key-1", "2026 goals"))
	handler.ServeHTTP(httptest.NewRecorder(), createMandalartRequest("key-2", "2026 goals"))

	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("expected two creations for two keys, got %d", calls)
	}
}

func TestIdempotency_SameKeyDifferentBodyCreatesSeparately(t *testing.T) {
	t.Parallel()

	store := newTestIdempotencyStore()
	defer store.Stop()

	var calls int32
	handler := Idempotency(store)(createMandalartHandler(&calls))

	handler.ServeHTTP(httptest.NewRecorder(), createMandalartRequest("key-1", "2026 goals"))
	handler.ServeHTTP(httptest.NewRecorder(), createMandalartRequest("key-1", "marathon"))

	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("expected a changed body to miss the cache, got %d calls", calls)
	}
}

func TestIdempotency_DifferentUsersDoNotShareEntries(t *testing.T) {
	t.Parallel()

	store := newTestIdempotencyStore()
	defer store.Stop()

	var calls int32
	handler := Idempotency(store)(createMandalartHandler(&calls))

	alice := createMandalartRequest("key-1", "2026 goals")
	handler.ServeHTTP(httptest.NewRecorder(), alice)

	bob := createMandalartRequest("key-1", "2026 goals")
	bob = bob.WithContext(context.WithValue(bob.Context(), UserIDKey, "users:bob"))
	handler.ServeHTTP(httptest.NewRecorder(), bob)

	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("expected each user to get their own creation, got %d calls", calls)
	}
}

func TestIdempotency_MissingKeyProceedsNormally(t *testing.T) {
	t.Parallel()

	store := newTestIdempotencyStore()
	defer store.Stop()

	var calls int32
	handler := Idempotency(store)(createMandalartHandler(&calls))

	handler.ServeHTTP(httptest.NewRecorder(), createMandalartRequest("", "2026 goals"))
	handler.ServeHTTP(httptest.NewRecorder(), createMandalartRequest("", "2026 goals"))

	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("expected no caching without a key, got %d calls", calls)
	}
}

func TestIdempotency_GetRequestsBypassStore(t *testing.T) {
	t.Parallel()

	store := newTestIdempotencyStore()
	defer store.Stop()

	var calls int32
	handler := Idempotency(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/mandalarts", nil)
	req.Header.Set("Idempotency-Key", "key-1")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("GET requests must not be cached, got %d calls", calls)
	}

	store.mu.RLock()
	entries := len(store.entries)
	store.mu.RUnlock()
	if entries != 0 {
		t.Errorf("expected no entries for GET requests, got %d", entries)
	}
}

func TestIdempotency_HandlerBodyIsReadable(t *testing.T) {
	t.Parallel()

	store := newTestIdempotencyStore()
	defer store.Stop()

	var gotBody string
	handler := Idempotency(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusCreated)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), createMandalartRequest("key-1", "2026 goals"))

	if gotBody != `{"title":"2026 goals"}` {
		t.Errorf("handler saw body %q after the middleware read it", gotBody)
	}
}

func TestIdempotency_ConcurrentDuplicates_SingleCreation(t *testing.T) {
	t.Parallel()

	store := newTestIdempotencyStore()
	defer store.Stop()

	var calls int32
	release := make(chan struct{})
	handler := Idempotency(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		<-release
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":"mandalart:1"}}`))
	}))

	var wg sync.WaitGroup
	results := make([]*httptest.ResponseRecorder, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, createMandalartRequest("key-1", "2026 goals"))
			results[i] = rr
		}(i)
	}

	// Let the first request reach the handler, then release it so the
	// waiters can replay its cached response.
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("expected one creation for concurrent duplicates, got %d", got)
	}
	for i, rr := range results {
		if rr.Code != http.StatusCreated {
			t.Errorf("request %d: expected 201, got %d", i, rr.Code)
		}
		if rr.Body.String() != `{"data":{"id":"mandalart:1"}}` {
			t.Errorf("request %d: unexpected body %q", i, rr.Body.String())
		}
	}
}
