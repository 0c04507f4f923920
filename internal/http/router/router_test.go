package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/holodmoose/ds-lab1/internal/storage/sqlite"
	"github.com/holodmoose/ds-lab1/internal/types"
)

func setupServer(t *testing.T) http.Handler {
	t.Helper()

	store, err := sqlite.New(sqlite.InMemoryDSN)
	if err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { store.Db.Close() })

	return New(store)
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	h.ServeHTTP(resp, req)
	return resp
}

// TestPersonLifecycle walks the full resource lifecycle through the
// mounted router: create, read, list, update, delete, and the 404s in
// between.
func TestPersonLifecycle(t *testing.T) {
	h := setupServer(t)

	// Create.
	resp := do(t, h, http.MethodPost, "/api/v1/persons",
		`{"name":"John Doe","age":30,"address":"123","work":"123"}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	// The Location header is relative and carries no mount prefix; the
	// prefix is the routing layer's business.
	if loc := resp.Header().Get("Location"); loc != "/persons/1" {
		t.Fatalf("create: expected Location /persons/1, got %q", loc)
	}

	// Read it back under the mount.
	resp = do(t, h, http.MethodGet, "/api/v1/persons/1", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", resp.Code)
	}
	var got types.Person
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("get: decode: %v", err)
	}
	want := types.Person{ID: 1, Name: "John Doe", Age: 30, Address: "123", Work: "123"}
	if got != want {
		t.Fatalf("get: expected %+v, got %+v", want, got)
	}

	// Update.
	resp = do(t, h, http.MethodPatch, "/api/v1/persons/1",
		`{"name":"Jane Smith","age":25,"address":"456","work":"456"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("patch: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("patch: decode: %v", err)
	}
	if got.ID != 1 || got.Name != "Jane Smith" || got.Age != 25 {
		t.Fatalf("patch: unexpected record %+v", got)
	}

	// Delete, then confirm it is gone.
	resp = do(t, h, http.MethodDelete, "/api/v1/persons/1", "")
	if resp.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", resp.Code)
	}
	resp = do(t, h, http.MethodGet, "/api/v1/persons/1", "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404, got %d", resp.Code)
	}
}

func TestRoutesRequireMountPrefix(t *testing.T) {
	h := setupServer(t)

	resp := do(t, h, http.MethodGet, "/persons", "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 outside /api/v1, got %d", resp.Code)
	}
}
