package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/c8y-client/pkg/c8y"
)

// recordedRequest is a request as the fake tenant received it.
type recordedRequest struct {
	Method   string
	Path     string
	RawPath  string
	RawQuery string
	Header   http.Header
	Body     []byte
}

// fakeTenant is an in-memory inventory behind a gorilla/mux router. Writes
// are echoed back the way the platform does: the stored document plus id
// and self link.
type fakeTenant struct {
	mu       sync.Mutex
	nextID   int
	objects  map[string]map[string]interface{}
	requests []recordedRequest

	router *mux.Router
	server *httptest.Server
}

func newFakeTenant(t *testing.T) *fakeTenant {
	t.Helper()

	tenant := &fakeTenant{
		nextID:  100,
		objects: make(map[string]map[string]interface{}),
		router:  mux.NewRouter(),
	}

	tenant.router.UseEncodedPath()
	tenant.router.Use(tenant.record)
	tenant.router.NotFoundHandler = tenant.record(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeServerError(w, http.StatusNotFound, "general/notFound", "no route for "+r.URL.Path)
	}))

	tenant.router.HandleFunc("/inventory/managedObjects", tenant.listObjects).Methods(http.MethodGet)
	tenant.router.HandleFunc("/inventory/managedObjects", tenant.createObject).Methods(http.MethodPost)
	tenant.router.HandleFunc("/inventory/managedObjects/{id:[0-9]+}", tenant.getObject).Methods(http.MethodGet)
	tenant.router.HandleFunc("/inventory/managedObjects/{id:[0-9]+}", tenant.updateObject).Methods(http.MethodPut)
	tenant.router.HandleFunc("/inventory/managedObjects/{id:[0-9]+}", tenant.deleteObject).Methods(http.MethodDelete)

	tenant.server = httptest.NewServer(tenant.router)
	t.Cleanup(tenant.server.Close)

	return tenant
}

// handle registers an extra route. Routes registered here take precedence
// only when they do not overlap the inventory routes.
func (f *fakeTenant) handle(method, path string, handler http.HandlerFunc) {
	f.router.HandleFunc(path, handler).Methods(method)
}

// client returns a client for the fake tenant using basic authentication.
func (f *fakeTenant) client(t *testing.T, configure ...func(*c8y.Config)) *Client {
	t.Helper()

	config := &c8y.Config{
		BaseURL:  f.server.URL,
		Tenant:   "t100",
		Username: "admin",
		Password: "secret",
	}

	for _, fn := range configure {
		fn(config)
	}

	client, err := New(context.Background(), config)
	require.NoError(t, err)

	return client
}

func (f *fakeTenant) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()

		f.mu.Lock()
		f.requests = append(f.requests, recordedRequest{
			Method:   r.Method,
			Path:     r.URL.Path,
			RawPath:  r.URL.EscapedPath(),
			RawQuery: r.URL.RawQuery,
			Header:   r.Header.Clone(),
			Body:     body,
		})
		f.mu.Unlock()

		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}

// lastRequest returns the most recent request.
func (f *fakeTenant) lastRequest(t *testing.T) recordedRequest {
	t.Helper()

	f.mu.Lock()
	defer f.mu.Unlock()

	require.NotEmpty(t, f.requests, "no request reached the tenant")

	return f.requests[len(f.requests)-1]
}

func (f *fakeTenant) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.requests)
}

func (f *fakeTenant) self(id string) string {
	return f.server.URL + "/inventory/managedObjects/" + id
}

func (f *fakeTenant) createObject(w http.ResponseWriter, r *http.Request) {
	var doc map[string]interface{}

	err := json.NewDecoder(r.Body).Decode(&doc)
	if err != nil {
		writeServerError(w, http.StatusUnprocessableEntity, "inventory/invalidBody", err.Error())

		return
	}

	f.mu.Lock()
	f.nextID++
	id := strconv.Itoa(f.nextID)
	doc["id"] = id
	doc["self"] = f.self(id)
	f.objects[id] = doc
	f.mu.Unlock()

	writeJSON(w, http.StatusCreated, doc)
}

func (f *fakeTenant) getObject(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	f.mu.Lock()
	doc, ok := f.objects[id]
	f.mu.Unlock()

	if !ok {
		writeServerError(w, http.StatusNotFound, "inventory/notFound", "Finding device data from database failed : No managedObject for id '"+id+"'!")

		return
	}

	writeJSON(w, http.StatusOK, doc)
}

func (f *fakeTenant) updateObject(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var changes map[string]interface{}

	err := json.NewDecoder(r.Body).Decode(&changes)
	if err != nil {
		writeServerError(w, http.StatusUnprocessableEntity, "inventory/invalidBody", err.Error())

		return
	}

	f.mu.Lock()
	doc, ok := f.objects[id]

	if ok {
		for key, value := range changes {
			doc[key] = value
		}
	}
	f.mu.Unlock()

	if !ok {
		writeServerError(w, http.StatusNotFound, "inventory/notFound", "No managedObject for id '"+id+"'!")

		return
	}

	writeJSON(w, http.StatusOK, doc)
}

func (f *fakeTenant) deleteObject(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	f.mu.Lock()
	_, ok := f.objects[id]
	delete(f.objects, id)
	f.mu.Unlock()

	if !ok {
		writeServerError(w, http.StatusNotFound, "inventory/notFound", "No managedObject for id '"+id+"'!")

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (f *fakeTenant) listObjects(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()

	objects := make([]map[string]interface{}, 0, len(f.objects))
	for _, doc := range f.objects {
		objects = append(objects, doc)
	}
	f.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"self":           f.server.URL + r.URL.RequestURI(),
		"managedObjects": objects,
		"statistics":     map[string]interface{}{"currentPage": 1, "pageSize": 5},
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeServerError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", c8y.MediaTypeError)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   code,
		"message": message,
		"info":    "https://cumulocity.com/guides/reference/rest-implementation",
	})
}
