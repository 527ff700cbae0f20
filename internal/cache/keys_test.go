package cache

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"pgregory.net/rapid"
)

func TestKey_Composition(t *testing.T) {
	cases := []struct {
		name   string
		route  string
		userID string
		params Params
		want   string
	}{
		{
			name:   "user only",
			route:  "today",
			userID: "u1",
			want:   "cache:today:u1",
		},
		{
			name:   "period",
			route:  "daily-totals",
			userID: "u1",
			params: Params{Period: "week"},
			want:   "cache:daily-totals:u1:week",
		},
		{
			name:   "tracker scope",
			route:  "total-hours",
			userID: "u1",
			params: Params{Period: "month", TrackerID: "t9"},
			want:   "cache:total-hours:u1:month:tracker:t9",
		},
		{
			name:   "literal range",
			route:  "daily-totals",
			userID: "u1",
			params: Params{StartDate: "2025-09-04", EndDate: "2025-09-06"},
			want:   "cache:daily-totals:u1:2025-09-04:2025-09-06",
		},
		{
			name:   "range and tracker",
			route:  "productivity-trend",
			userID: "u2",
			params: Params{TrackerID: "t1", StartDate: "2025-09-04", EndDate: "2025-09-06"},
			want:   "cache:productivity-trend:u2:tracker:t1:2025-09-04:2025-09-06",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Key(tc.route, tc.userID, tc.params); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

// Two logically identical requests must derive the same key regardless of
// query-parameter ordering.
func TestRequestKey_QueryOrderIndependent(t *testing.T) {
	a := chiRequest(t, "/api/v1/users/u1/daily-totals?startDate=2025-09-04&endDate=2025-09-06&trackerId=t1", "u1", "")
	b := chiRequest(t, "/api/v1/users/u1/daily-totals?trackerId=t1&endDate=2025-09-06&startDate=2025-09-04", "u1", "")

	keyA := requestKey("daily-totals", a)
	keyB := requestKey("daily-totals", b)
	if keyA == "" || keyA != keyB {
		t.Fatalf("expected identical keys, got %q and %q", keyA, keyB)
	}
}

func TestRequestKey_SkipsMutationsAndAnonymous(t *testing.T) {
	post := chiRequest(t, "/api/v1/users/u1/trackers", "u1", "")
	post.Method = http.MethodPost
	if key := requestKey("trackers", post); key != "" {
		t.Fatalf("expected no key for POST, got %q", key)
	}

	anon := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if key := requestKey("whoami", anon); key != "" {
		t.Fatalf("expected no key without user, got %q", key)
	}
}

func TestRequestKey_UserFromQueryFallback(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/report?userId=u7", nil)
	if key := requestKey("report", req); key != "cache:report:u7" {
		t.Fatalf("expected query fallback key, got %q", key)
	}
}

// Every derived key is matched by its own user's invalidation pattern prefix
// and never by another user's.
func TestKey_PropertyUserPatternScoping(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		route := rapid.SampledFrom([]string{"daily-totals", "total-hours", "productivity-trend", "today", "trackers"}).Draw(t, "route")
		userID := rapid.StringMatching(`u[a-z0-9]{1,8}`).Draw(t, "userID")
		params := Params{
			Period:    rapid.SampledFrom([]string{"", "week", "month", "year"}).Draw(t, "period"),
			TrackerID: rapid.SampledFrom([]string{"", "t1", "t2"}).Draw(t, "trackerID"),
		}

		key := Key(route, userID, params)
		prefix := "cache:" + route + ":" + userID
		if len(key) < len(prefix) || key[:len(prefix)] != prefix {
			t.Fatalf("key %q does not start with %q", key, prefix)
		}
	})
}

func chiRequest(t *testing.T, url, userID, period string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rctx := chi.NewRouteContext()
	if userID != "" {
		rctx.URLParams.Add("userID", userID)
	}
	if period != "" {
		rctx.URLParams.Add("period", period)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}
