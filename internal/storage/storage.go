// Package storage defines the Storage interface — a contract that any
// database backend must satisfy to work with this application.
//
// WHY AN INTERFACE?
// ─────────────────
// Handlers (HTTP layer) should not know or care which database they are
// talking to. By depending only on this interface:
//
//   - Switching databases = implement the interface for the new DB,
//     change one line in main.go. Zero handler changes.
//
//   - Writing tests = run against the in-memory SQLite backend.
//     No networked database needed.
//
// This is the Dependency Inversion Principle in practice. It is also how
// the service runs against PostgreSQL in production and an ephemeral
// SQLite instance under TESTING=true.
package storage

import (
	"errors"

	"github.com/holodmoose/ds-lab1/internal/types"
)

// ErrNotFound is the uniform absence signal. Every backend translates
// its own "no rows" condition into this sentinel so handlers can check
// with errors.Is and answer 404 without knowing the driver.
var ErrNotFound = errors.New("person not found")

// Storage is the persistence gateway contract. Every operation is a
// single atomic row-level action; no method spans more than one person.
type Storage interface {
	// CreatePerson inserts a new row. The store assigns the id; the
	// fully materialized record (including that id) is returned.
	CreatePerson(name string, age int, address, work string) (types.Person, error)

	// GetPersonByID fetches a single person by primary key.
	// Returns ErrNotFound when no row matches.
	GetPersonByID(id int64) (types.Person, error)

	// GetPersons returns every person in primary-key order.
	// Returns an empty slice (not nil) if there are none.
	GetPersons() ([]types.Person, error)

	// UpdatePersonByID persists all four attribute columns of the given
	// record under id, then re-reads and returns the stored row.
	// Returns ErrNotFound when no row matches.
	UpdatePersonByID(id int64, person types.Person) (types.Person, error)

	// DeletePersonByID removes a person row permanently.
	DeletePersonByID(id int64) error
}
