package cache

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCached_MissThenHit(t *testing.T) {
	store, _ := setupStore(t)
	mw := NewMiddleware(store, time.Minute, discardLogger())

	calls := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":[1,2,3]}`))
	})

	r := chi.NewRouter()
	r.With(mw.Cached("daily-totals")).Get("/users/{userID}/daily-totals", handler.ServeHTTP)

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/users/u1/daily-totals?startDate=2025-09-04&endDate=2025-09-06", nil))
	if calls != 1 {
		t.Fatalf("expected live computation on miss, calls=%d", calls)
	}

	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/users/u1/daily-totals?endDate=2025-09-06&startDate=2025-09-04", nil))
	if calls != 1 {
		t.Fatalf("expected cache hit on repeat, calls=%d", calls)
	}
	if second.Header().Get("X-Cache") != "HIT" {
		t.Fatal("expected X-Cache: HIT on repeat")
	}
	if first.Body.String() != second.Body.String() {
		t.Fatalf("expected byte-identical payloads:\n%q\n%q", first.Body.String(), second.Body.String())
	}
}

func TestCached_ErrorResponsesNotCached(t *testing.T) {
	store, _ := setupStore(t)
	mw := NewMiddleware(store, time.Minute, discardLogger())

	calls := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"error":"invalid period"}`))
	})

	r := chi.NewRouter()
	r.With(mw.Cached("daily-totals")).Get("/users/{userID}/daily-totals/{period}", handler.ServeHTTP)

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/users/u1/daily-totals/bogus", nil))
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
	}
	if calls != 2 {
		t.Fatalf("expected error responses to recompute every time, calls=%d", calls)
	}
}

func TestCached_UnsuccessfulEnvelopeWith200NotCached(t *testing.T) {
	store, _ := setupStore(t)
	mw := NewMiddleware(store, time.Minute, discardLogger())

	calls := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"success":false,"error":"oops"}`))
	})

	r := chi.NewRouter()
	r.With(mw.Cached("today")).Get("/users/{userID}/today", handler.ServeHTTP)

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/users/u1/today", nil))
		_ = rr
	}
	if calls != 2 {
		t.Fatalf("expected unsuccessful envelope to stay uncached, calls=%d", calls)
	}
}

func TestCached_FailOpenOnStoreOutage(t *testing.T) {
	store, mr := setupStore(t)
	mw := NewMiddleware(store, time.Minute, discardLogger())
	mr.Close()

	calls := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"success":true,"data":{"total_hours":2}}`))
	})

	r := chi.NewRouter()
	r.With(mw.Cached("total-hours")).Get("/users/{userID}/total-hours/{period}", handler.ServeHTTP)

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/users/u1/total-hours/week", nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("cache outage must not fail reads, got %d", rr.Code)
		}
		if rr.Body.String() != `{"success":true,"data":{"total_hours":2}}` {
			t.Fatalf("expected live payload, got %q", rr.Body.String())
		}
	}
	if calls != 2 {
		t.Fatalf("expected every request served live during outage, calls=%d", calls)
	}
}

func TestInvalidating_PurgesAffectedUserOnly(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	for _, k := range []string{"cache:today:u1", "cache:daily-totals:u1:week", "cache:today:u2"} {
		if err := store.SetWithTTL(ctx, k, "x", time.Minute); err != nil {
			t.Fatalf("failed to seed %s: %v", k, err)
		}
	}

	coord := NewCoordinator(store, discardLogger())
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"success":true,"data":{"id":"t1"}}`))
	})

	r := chi.NewRouter()
	r.With(coord.Invalidating()).Post("/users/{userID}/trackers", handler.ServeHTTP)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/users/u1/trackers", nil))
	if rr.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d", rr.Code)
	}
	coord.Wait()

	for _, k := range []string{"cache:today:u1", "cache:daily-totals:u1:week"} {
		if _, hit, _ := store.Get(ctx, k); hit {
			t.Fatalf("expected %s purged after mutation", k)
		}
	}
	if _, hit, _ := store.Get(ctx, "cache:today:u2"); !hit {
		t.Fatal("expected other user's entries untouched")
	}
}

func TestInvalidating_ResolvesUserFromPayload(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	if err := store.SetWithTTL(ctx, "cache:today:u9", "x", time.Minute); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}

	coord := NewCoordinator(store, discardLogger())
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"id":"s1","user_id":"u9"}}`))
	})

	r := chi.NewRouter()
	r.With(coord.Invalidating()).Post("/trackers/{trackerID}/start", handler.ServeHTTP)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/trackers/t1/start", nil))
	coord.Wait()

	if _, hit, _ := store.Get(ctx, "cache:today:u9"); hit {
		t.Fatal("expected payload-resolved user's entries purged")
	}
}

func TestInvalidating_SkipsFailedMutations(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	if err := store.SetWithTTL(ctx, "cache:today:u1", "x", time.Minute); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}

	coord := NewCoordinator(store, discardLogger())
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"error":"tracker is archived"}`))
	})

	r := chi.NewRouter()
	r.With(coord.Invalidating()).Post("/users/{userID}/trackers", handler.ServeHTTP)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/users/u1/trackers", nil))
	coord.Wait()

	if _, hit, _ := store.Get(ctx, "cache:today:u1"); !hit {
		t.Fatal("expected entries to survive a failed mutation")
	}
}

func TestInvalidating_UnresolvableUserLeavesCacheAlone(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	if err := store.SetWithTTL(ctx, "cache:today:u1", "x", time.Minute); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}

	coord := NewCoordinator(store, discardLogger())
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"id":"t1"}}`))
	})

	r := chi.NewRouter()
	r.With(coord.Invalidating()).Post("/trackers/{trackerID}/archive", handler.ServeHTTP)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/trackers/t1/archive", nil))
	coord.Wait()

	// Documented gap: no resolvable user means no invalidation; entries age
	// out via TTL instead.
	if _, hit, _ := store.Get(ctx, "cache:today:u1"); !hit {
		t.Fatal("expected entries untouched when user cannot be resolved")
	}
}

func TestInvalidating_FailOpenOnStoreOutage(t *testing.T) {
	store, mr := setupStore(t)
	mr.Close()

	coord := NewCoordinator(store, discardLogger())
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"id":"t1"}}`))
	})

	r := chi.NewRouter()
	r.With(coord.Invalidating()).Post("/users/{userID}/trackers", handler.ServeHTTP)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/users/u1/trackers", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("store outage must not fail the mutation response, got %d", rr.Code)
	}
	coord.Wait()
}
