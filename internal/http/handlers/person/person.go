// Package person contains all HTTP handlers for the Person resource.
//
// HANDLER PATTERN USED HERE — THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────────────────
// The router expects handler functions with the signature:
//
//	func(http.ResponseWriter, *http.Request)
//
// That signature has no room for extra parameters like a database.
// To inject dependencies we use a factory function that accepts the
// storage gateway and returns a function with the exact signature the
// router needs. The factory runs ONCE at startup; the returned closure
// runs on every request.
//
// The handlers are mount-agnostic: the /api/v1 prefix is applied by the
// router, and the Location header they emit is relative ("/persons/1").
package person

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/holodmoose/ds-lab1/internal/storage"
	"github.com/holodmoose/ds-lab1/internal/types"
	"github.com/holodmoose/ds-lab1/internal/utils/response"
)

// Routes returns the person resource router:
//
//	POST   /persons        → create a new person
//	GET    /persons        → list all persons
//	GET    /persons/{id}   → get one person by ID
//	PATCH  /persons/{id}   → partially update a person
//	DELETE /persons/{id}   → delete a person
func Routes(store storage.Storage) chi.Router {
	r := chi.NewRouter()

	r.Post("/", New(store))
	r.Get("/", GetList(store))
	r.Get("/{id}", GetByID(store))
	r.Patch("/{id}", Update(store))
	r.Delete("/{id}", Delete(store))

	return r
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /persons
// Creates a new person from the JSON request body.
//
// Request body (JSON), all four fields required:
//
//	{ "name": "John Doe", "age": 30, "address": "123", "work": "123" }
//
// Success response: 201 Created, empty body, header
//
//	Location: /persons/{id}
//
// Error responses:
//
//	422 Unprocessable Entity — empty/malformed body, missing fields,
//	                           or wrong-typed fields, with a per-field
//	                           diagnostic list
//	500 Internal             — database error
//
// ─────────────────────────────────────────────────────────────────────────────
func New(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a person")

		var req types.CreatePersonRequest
		if failure := decodeBody(r, &req); failure != nil {
			response.WriteJSON(w, http.StatusUnprocessableEntity, failure)
			return
		}

		// validator.Struct checks the validate:"required" tags: every
		// field must be present in the body. This runs before any store
		// access.
		if err := validator.New().Struct(req); err != nil {
			validateErrs := err.(validator.ValidationErrors)
			response.WriteJSON(w, http.StatusUnprocessableEntity,
				response.ValidationError(validateErrs))
			return
		}

		person, err := store.CreatePerson(*req.Name, *req.Age, *req.Address, *req.Work)
		if err != nil {
			slog.Error("error creating person", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		slog.Info("person created", slog.Int64("id", person.ID))

		// The new resource's address travels in the Location header,
		// relative like the rest of the API; the body stays empty.
		w.Header().Set("Location", fmt.Sprintf("/persons/%d", person.ID))
		w.WriteHeader(http.StatusCreated)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /persons/{id}
//
// Success response (200 OK):
//
//	{ "id": 1, "name": "John Doe", "age": 30, "address": "123", "work": "123" }
//
// Error responses:
//
//	404 — no person with that id: {"detail": "Not found"}
//	422 — id is not a valid integer
//	500 — database error
//
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}
		slog.Info("getting a person", slog.Int64("id", id))

		person, err := store.GetPersonByID(id)
		if errors.Is(err, storage.ErrNotFound) {
			response.WriteJSON(w, http.StatusNotFound, response.NotFound())
			return
		}
		if err != nil {
			slog.Error("error getting person",
				slog.Int64("id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, person)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /persons
// Returns a JSON array of all persons, in creation order.
// Returns an empty array [] (not null) when there are none.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all persons")

		persons, err := store.GetPersons()
		if err != nil {
			slog.Error("error getting persons", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, persons)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PATCH /persons/{id}
// Applies a partial update: the body names any subset of the four
// attribute fields.
//
// Success response (200 OK): the full updated person.
//
// Error responses:
//
//	404 — no person with that id
//	400 — {"message": "Invalid data"} when any field named in the body
//	      currently holds a falsy value on the stored record (empty
//	      string or zero), names an unknown key, or carries a value that
//	      does not decode into the field's type. Nothing is persisted.
//	422 — non-integer id, or a body that is not a JSON object
//	500 — database error
//
// Note the gate deliberately inspects the CURRENT stored value, not the
// incoming one. A record whose age is 0 can therefore never be patched
// at "age". That matches the deployed behaviour this service replaces
// and is kept for compatibility.
// ─────────────────────────────────────────────────────────────────────────────
func Update(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}
		slog.Info("updating a person", slog.Int64("id", id))

		current, err := store.GetPersonByID(id)
		if errors.Is(err, storage.ErrNotFound) {
			response.WriteJSON(w, http.StatusNotFound, response.NotFound())
			return
		}
		if err != nil {
			slog.Error("error getting person",
				slog.Int64("id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		// Raw messages keep each value undecoded until we know which
		// field (and therefore which Go type) it belongs to.
		var payload map[string]json.RawMessage
		if failure := decodeBody(r, &payload); failure != nil {
			response.WriteJSON(w, http.StatusUnprocessableEntity, failure)
			return
		}

		updated, ok := applyUpdate(current, payload)
		if !ok {
			slog.Info("update rejected", slog.Int64("id", id))
			response.WriteJSON(w, http.StatusBadRequest, response.InvalidData())
			return
		}

		// Nothing was written so far; the merge above happened purely
		// in memory. This is the single commit point.
		person, err := store.UpdatePersonByID(id, updated)
		if errors.Is(err, storage.ErrNotFound) {
			response.WriteJSON(w, http.StatusNotFound, response.NotFound())
			return
		}
		if err != nil {
			slog.Error("error updating person",
				slog.Int64("id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		slog.Info("person updated", slog.Int64("id", id))
		response.WriteJSON(w, http.StatusOK, person)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /persons/{id}
// Permanently removes a person record.
//
// Success response: 204 No Content, empty body.
//
// Error responses:
//
//	404 — no person with that id (including an id already deleted)
//	422 — non-integer id
//	500 — database error
//
// ─────────────────────────────────────────────────────────────────────────────
func Delete(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}
		slog.Info("deleting a person", slog.Int64("id", id))

		// Resolve first so a missing id is always 404, and a repeated
		// delete of the same id is 404 rather than a second 204.
		if _, err := store.GetPersonByID(id); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				response.WriteJSON(w, http.StatusNotFound, response.NotFound())
				return
			}
			slog.Error("error getting person",
				slog.Int64("id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		if err := store.DeletePersonByID(id); err != nil {
			slog.Error("error deleting person",
				slog.Int64("id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		slog.Info("person deleted", slog.Int64("id", id))
		w.WriteHeader(http.StatusNoContent)
	}
}

// parseID extracts and parses the {id} path parameter. On failure it
// answers 422 with a structured diagnostic (the path parameter is typed
// just like a body field) and reports false.
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.WriteJSON(w, http.StatusUnprocessableEntity,
			response.FieldFailure("path.id", "integer"))
		return 0, false
	}
	return id, true
}

// decodeBody reads the request body into v and maps decoding problems
// to 422 diagnostics. Returns nil on success.
func decodeBody(r *http.Request, v any) *response.ValidationFailure {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return nil
	}

	if errors.Is(err, io.EOF) {
		// Completely empty body — nothing to decode.
		failure := response.FieldFailure("body", "missing")
		return &failure
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		failure := response.FieldFailure("body."+typeErr.Field, "type")
		return &failure
	}

	failure := response.FieldFailure("body", "malformed")
	return &failure
}

// applyUpdate merges the PATCH payload into a copy of the current
// record. It reports false — and the caller answers 400 with nothing
// persisted — when any targeted field currently holds a falsy value,
// when a key outside the four attributes appears (ids are immutable),
// or when a value does not decode into the field's type.
func applyUpdate(current types.Person, payload map[string]json.RawMessage) (types.Person, bool) {
	updated := current

	for field, value := range payload {
		var err error

		switch field {
		case "name":
			if current.Name == "" {
				return types.Person{}, false
			}
			err = json.Unmarshal(value, &updated.Name)
		case "age":
			if current.Age == 0 {
				return types.Person{}, false
			}
			err = json.Unmarshal(value, &updated.Age)
		case "address":
			if current.Address == "" {
				return types.Person{}, false
			}
			err = json.Unmarshal(value, &updated.Address)
		case "work":
			if current.Work == "" {
				return types.Person{}, false
			}
			err = json.Unmarshal(value, &updated.Work)
		default:
			return types.Person{}, false
		}

		if err != nil {
			return types.Person{}, false
		}
	}

	return updated, true
}
