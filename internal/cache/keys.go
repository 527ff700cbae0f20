package cache

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// keyPrefix namespaces every cache entry this service writes.
const keyPrefix = "cache"

// Params are the scope parameters that distinguish logically different
// requests on the same route.
type Params struct {
	Period    string
	TrackerID string
	StartDate string
	EndDate   string
}

// Key derives the deterministic cache key
// cache:<route>:<userID>[:<period>][:tracker:<trackerID>][:<start>:<end>].
// The composition order is fixed, so two logically identical requests yield
// the same key regardless of query-parameter ordering.
func Key(route, userID string, p Params) string {
	var b strings.Builder
	b.WriteString(keyPrefix)
	b.WriteByte(':')
	b.WriteString(route)
	b.WriteByte(':')
	b.WriteString(userID)

	if p.Period != "" {
		b.WriteByte(':')
		b.WriteString(p.Period)
	}
	if p.TrackerID != "" {
		b.WriteString(":tracker:")
		b.WriteString(p.TrackerID)
	}
	if p.StartDate != "" || p.EndDate != "" {
		b.WriteByte(':')
		b.WriteString(p.StartDate)
		b.WriteByte(':')
		b.WriteString(p.EndDate)
	}
	return b.String()
}

// UserPattern is the glob matching every cache entry scoped to the user,
// across all routes and parameter combinations.
func UserPattern(userID string) string {
	return keyPrefix + ":*:" + userID + "*"
}

// requestKey derives the key for a read request on the given route identity.
// The user comes from the path parameter first, then the query; an empty
// result means the request is uncacheable.
func requestKey(route string, r *http.Request) string {
	if r.Method != http.MethodGet {
		return ""
	}

	userID := chi.URLParam(r, "userID")
	if userID == "" {
		userID = r.URL.Query().Get("userId")
	}
	if userID == "" {
		return ""
	}

	query := r.URL.Query()
	return Key(route, userID, Params{
		Period:    chi.URLParam(r, "period"),
		TrackerID: query.Get("trackerId"),
		StartDate: query.Get("startDate"),
		EndDate:   query.Get("endDate"),
	})
}
