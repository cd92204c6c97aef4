package people

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

const testToken = "test-token"

// fakePeopleServer is an in-memory stand-in for the people API. It serves
// the collection at /people/ and records every request it sees.
type fakePeopleServer struct {
	*httptest.Server

	mu       sync.Mutex
	records  []map[string]any
	nextID   int
	requests []*http.Request

	// createStatus, when set, overrides the status of the n-th POST (1-based).
	createStatus map[int]int
	creates      int

	// posted holds every decoded POST body, in arrival order.
	posted []map[string]any

	// extra is merged into each created record, like server-side timestamps.
	extra map[string]any

	// deleteStatus, when set, overrides the status of a DELETE by id.
	deleteStatus map[string]int

	// pageSize truncates unpaged lists, like a server-side default limit.
	pageSize int
}

func newFakePeopleServer(t *testing.T, seed ...map[string]any) *fakePeopleServer {
	t.Helper()

	f := &fakePeopleServer{
		nextID:       1,
		createStatus: map[int]int{},
		deleteStatus: map[string]int{},
	}
	for _, r := range seed {
		f.insert(r)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/people/", f.handle)
	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)

	return f
}

// baseURL is the collection URL with a trailing slash.
func (f *fakePeopleServer) baseURL() string {
	return f.URL + "/people/"
}

func (f *fakePeopleServer) insert(r map[string]any) map[string]any {
	rec := map[string]any{}
	for k, v := range r {
		rec[k] = v
	}
	if _, ok := rec["id"]; !ok {
		rec["id"] = f.nextID
		f.nextID++
	}
	f.records = append(f.records, rec)
	return rec
}

// requestsBy returns the recorded requests with the given method.
func (f *fakePeopleServer) requestsBy(method string) []*http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*http.Request
	for _, r := range f.requests {
		if r.Method == method {
			out = append(out, r)
		}
	}
	return out
}

// postedBodies returns the decoded POST bodies seen so far.
func (f *fakePeopleServer) postedBodies() []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]any(nil), f.posted...)
}

func (f *fakePeopleServer) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakePeopleServer) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, r.Clone(r.Context()))
	w.Header().Set("Content-Type", "application/json")

	id := strings.TrimPrefix(r.URL.Path, "/people/")

	switch {
	case r.Method == http.MethodGet && id == "":
		f.list(w, r)
	case r.Method == http.MethodGet:
		rec, _ := f.find(id)
		if rec == nil {
			writeJSON(w, http.StatusNotFound, map[string]any{})
			return
		}
		writeJSON(w, http.StatusOK, rec)
	case r.Method == http.MethodPost && id == "":
		f.create(w, r)
	case r.Method == http.MethodDelete && id != "":
		f.remove(w, r, id)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"Error": "method not allowed"})
	}
}

func (f *fakePeopleServer) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var matched []map[string]any
	for _, rec := range f.records {
		if matches(rec, q) {
			matched = append(matched, rec)
		}
	}
	if matched == nil {
		matched = []map[string]any{}
	}

	limit, _ := strconv.Atoi(q.Get("_limit"))
	if limit <= 0 {
		if f.pageSize > 0 && len(matched) > f.pageSize {
			matched = matched[:f.pageSize]
		}
		writeJSON(w, http.StatusOK, matched)
		return
	}

	page, _ := strconv.Atoi(q.Get("_page"))
	if page < 1 {
		page = 1
	}

	w.Header().Set("X-Total-Count", strconv.Itoa(len(matched)))
	start := (page - 1) * limit
	end := start + limit
	if start > len(matched) {
		start = len(matched)
	}
	if end > len(matched) {
		end = len(matched)
	}
	writeJSON(w, http.StatusOK, matched[start:end])
}

func matches(rec map[string]any, q map[string][]string) bool {
	for key, values := range q {
		if strings.HasPrefix(key, "_") {
			continue
		}
		if key == "ip_address_like" {
			prefix := strings.TrimPrefix(values[0], "^")
			ip, _ := rec["ip_address"].(string)
			if !strings.HasPrefix(ip, prefix) {
				return false
			}
			continue
		}
		if v, _ := rec[key].(string); v != values[0] {
			return false
		}
	}
	return true
}

func (f *fakePeopleServer) create(w http.ResponseWriter, r *http.Request) {
	f.creates++

	if r.Header.Get("Authorization") != "Bearer "+testToken {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "unauthorized"})
		return
	}
	if status, ok := f.createStatus[f.creates]; ok {
		writeJSON(w, status, map[string]any{"error": "rejected record " + strconv.Itoa(f.creates)})
		return
	}

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "malformed body"})
		return
	}
	f.posted = append(f.posted, body)
	if email, _ := body["email"].(string); !strings.Contains(email, "@") {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "bad email"})
		return
	}

	rec := f.insert(body)
	for k, v := range f.extra {
		rec[k] = v
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (f *fakePeopleServer) remove(w http.ResponseWriter, r *http.Request, id string) {
	if r.Header.Get("Authorization") != "Bearer "+testToken {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"Error": "unauthorized"})
		return
	}
	if status, ok := f.deleteStatus[id]; ok {
		writeJSON(w, status, map[string]any{"Error": "delete failed"})
		return
	}

	rec, i := f.find(id)
	if rec == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{})
		return
	}
	f.records = append(f.records[:i], f.records[i+1:]...)
	writeJSON(w, http.StatusOK, map[string]any{})
}

func (f *fakePeopleServer) find(id string) (map[string]any, int) {
	for i, rec := range f.records {
		if idString(rec["id"]) == id {
			return rec, i
		}
	}
	return nil, -1
}

func idString(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case int:
		return strconv.Itoa(id)
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return ""
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// person builds a seed record.
func person(first, last, ip string) map[string]any {
	return map[string]any{
		"first_name": first,
		"last_name":  last,
		"email":      strings.ToLower(first) + "@example.com",
		"phone":      "555-0100",
		"ip_address": ip,
	}
}

// newMockClient builds a client for the fake server using the test token.
func newMockClient(f *fakePeopleServer, opts ...Option) *Client {
	return NewClient(f.baseURL(), testToken, opts...)
}
