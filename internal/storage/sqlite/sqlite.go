// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// WHY SQLite HERE?
// ────────────────
// This backend exists for test mode (TESTING=true): it runs entirely
// in memory, needs no network and no server process, and gives every
// test a fresh, disposable database. Production traffic goes through
// the postgres package instead.
//
// The blank import below registers the sqlite3 driver with database/sql.
// The driver's init() function does this automatically when the package
// is loaded — we never call anything from it directly.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/holodmoose/ds-lab1/internal/storage"
	"github.com/holodmoose/ds-lab1/internal/types"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// InMemoryDSN is the data source name for an ephemeral database that
// lives only as long as its connection.
const InMemoryDSN = ":memory:"

// SQLite is the concrete implementation of storage.Storage.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at the given DSN, creates the persons
// table if it does not already exist, and returns a ready-to-use *SQLite.
//
// The connection pool is capped at a single connection. An in-memory
// SQLite database belongs to the connection that created it, so letting
// database/sql open a second connection would silently hand out an
// empty database. (One connection is plenty for the test workload this
// backend serves.)
func New(dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	db.SetMaxOpenConns(1)

	// Idempotent — safe to run on every startup.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS persons (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			name    TEXT    NOT NULL,
			age     INTEGER NOT NULL,
			address TEXT    NOT NULL,
			work    TEXT    NOT NULL
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// CreatePerson inserts a new row and returns the materialized record,
// including the id SQLite assigned to it.
func (s *SQLite) CreatePerson(name string, age int, address, work string) (types.Person, error) {
	stmt, err := s.Db.Prepare(
		"INSERT INTO persons (name, age, address, work) VALUES (?, ?, ?, ?)",
	)
	if err != nil {
		return types.Person{}, fmt.Errorf("CreatePerson: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(name, age, address, work)
	if err != nil {
		return types.Person{}, fmt.Errorf("CreatePerson: exec: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return types.Person{}, fmt.Errorf("CreatePerson: last insert id: %w", err)
	}

	return types.Person{ID: lastID, Name: name, Age: age, Address: address, Work: work}, nil
}

// GetPersonByID fetches exactly one person row matched by primary key.
func (s *SQLite) GetPersonByID(id int64) (types.Person, error) {
	stmt, err := s.Db.Prepare(
		"SELECT id, name, age, address, work FROM persons WHERE id = ? LIMIT 1",
	)
	if err != nil {
		return types.Person{}, fmt.Errorf("GetPersonByID: prepare: %w", err)
	}
	defer stmt.Close()

	var person types.Person
	err = stmt.QueryRow(id).Scan(
		&person.ID,
		&person.Name,
		&person.Age,
		&person.Address,
		&person.Work,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return types.Person{}, storage.ErrNotFound
		}
		return types.Person{}, fmt.Errorf("GetPersonByID: scan: %w", err)
	}

	return person, nil
}

// GetPersons returns all person rows in primary-key order.
func (s *SQLite) GetPersons() ([]types.Person, error) {
	stmt, err := s.Db.Prepare(
		// Explicit column list and ordering — insertion order for an
		// auto-incrementing key, which is what the API promises.
		"SELECT id, name, age, address, work FROM persons ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("GetPersons: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query()
	if err != nil {
		return nil, fmt.Errorf("GetPersons: query: %w", err)
	}
	defer rows.Close()

	// Pre-allocate an empty (non-nil) slice.
	// Returning [] instead of null in JSON is better API behaviour.
	persons := make([]types.Person, 0)

	for rows.Next() {
		var person types.Person
		if err := rows.Scan(
			&person.ID,
			&person.Name,
			&person.Age,
			&person.Address,
			&person.Work,
		); err != nil {
			return nil, fmt.Errorf("GetPersons: scan row: %w", err)
		}
		persons = append(persons, person)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetPersons: rows iteration: %w", err)
	}

	return persons, nil
}

// UpdatePersonByID persists the given record's attributes under id and
// returns what is actually stored afterwards.
func (s *SQLite) UpdatePersonByID(id int64, person types.Person) (types.Person, error) {
	stmt, err := s.Db.Prepare(
		"UPDATE persons SET name = ?, age = ?, address = ?, work = ? WHERE id = ?",
	)
	if err != nil {
		return types.Person{}, fmt.Errorf("UpdatePersonByID: prepare: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(person.Name, person.Age, person.Address, person.Work, id)
	if err != nil {
		return types.Person{}, fmt.Errorf("UpdatePersonByID: exec: %w", err)
	}

	// Re-fetch the record so we return exactly what is stored in the DB.
	// Also surfaces ErrNotFound when the id never existed.
	return s.GetPersonByID(id)
}

// DeletePersonByID removes a person row by primary key.
func (s *SQLite) DeletePersonByID(id int64) error {
	stmt, err := s.Db.Prepare("DELETE FROM persons WHERE id = ?")
	if err != nil {
		return fmt.Errorf("DeletePersonByID: prepare: %w", err)
	}
	defer stmt.Close()

	if _, err := stmt.Exec(id); err != nil {
		return fmt.Errorf("DeletePersonByID: exec: %w", err)
	}

	return nil
}
