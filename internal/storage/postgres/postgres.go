// Package postgres provides the production PostgreSQL implementation of
// the storage.Storage interface, using database/sql over the pgx stdlib
// adapter.
package postgres

import (
	"database/sql"
	"fmt"

	"github.com/holodmoose/ds-lab1/internal/config"
	"github.com/holodmoose/ds-lab1/internal/storage"
	"github.com/holodmoose/ds-lab1/internal/types"

	// Blank import: registers the "pgx" driver with database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Postgres is the concrete implementation of storage.Storage.
// *sql.DB is a connection pool and is safe for concurrent use; every
// request borrows a connection for the duration of its statement and
// returns it to the pool on every exit path.
type Postgres struct {
	Db *sql.DB
}

// New connects to the database described by cfg, creates the persons
// table if it does not already exist, and returns a ready-to-use
// *Postgres.
func New(cfg *config.Config) (*Postgres, error) {
	db, err := sql.Open("pgx", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("postgres.New: open db: %w", err)
	}

	// sql.Open validates the DSN without dialing; Ping forces a real
	// connection so a bad host or password fails at startup, not on the
	// first request.
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS persons (
			id      SERIAL  PRIMARY KEY,
			name    TEXT    NOT NULL,
			age     INTEGER NOT NULL,
			address TEXT    NOT NULL,
			work    TEXT    NOT NULL
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: create table: %w", err)
	}

	return &Postgres{Db: db}, nil
}

// CreatePerson inserts a new row and returns the materialized record.
// PostgreSQL does not support LastInsertId, so the assigned primary key
// comes back through RETURNING.
func (p *Postgres) CreatePerson(name string, age int, address, work string) (types.Person, error) {
	person := types.Person{Name: name, Age: age, Address: address, Work: work}

	err := p.Db.QueryRow(
		"INSERT INTO persons (name, age, address, work) VALUES ($1, $2, $3, $4) RETURNING id",
		name, age, address, work,
	).Scan(&person.ID)
	if err != nil {
		return types.Person{}, fmt.Errorf("CreatePerson: insert: %w", err)
	}

	return person, nil
}

// GetPersonByID fetches exactly one person row matched by primary key.
func (p *Postgres) GetPersonByID(id int64) (types.Person, error) {
	var person types.Person

	err := p.Db.QueryRow(
		"SELECT id, name, age, address, work FROM persons WHERE id = $1",
		id,
	).Scan(
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
func (p *Postgres) GetPersons() ([]types.Person, error) {
	rows, err := p.Db.Query(
		"SELECT id, name, age, address, work FROM persons ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("GetPersons: query: %w", err)
	}
	defer rows.Close()

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
func (p *Postgres) UpdatePersonByID(id int64, person types.Person) (types.Person, error) {
	_, err := p.Db.Exec(
		"UPDATE persons SET name = $1, age = $2, address = $3, work = $4 WHERE id = $5",
		person.Name, person.Age, person.Address, person.Work, id,
	)
	if err != nil {
		return types.Person{}, fmt.Errorf("UpdatePersonByID: exec: %w", err)
	}

	return p.GetPersonByID(id)
}

// DeletePersonByID removes a person row by primary key.
func (p *Postgres) DeletePersonByID(id int64) error {
	if _, err := p.Db.Exec("DELETE FROM persons WHERE id = $1", id); err != nil {
		return fmt.Errorf("DeletePersonByID: exec: %w", err)
	}

	return nil
}
