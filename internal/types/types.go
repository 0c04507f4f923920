// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// handlers, storage, and utils can all import types without depending
// on each other.
package types

// Person represents a person record in our system.
//
// The json:"..." tags control how fields appear on the wire; lowercase
// names match the REST API contract.
type Person struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Age     int    `json:"age"`
	Address string `json:"address"`
	Work    string `json:"work"`
}

// CreatePersonRequest is the body shape accepted by POST /persons.
//
// Fields are pointers so that validate:"required" checks PRESENCE, not
// non-zeroness: a client sending {"age": 0} has supplied a perfectly
// valid value, while a client omitting "age" leaves the pointer nil and
// fails validation. Type mismatches (e.g. "age": "thirty") are caught
// earlier, by the JSON decoder itself.
type CreatePersonRequest struct {
	Name    *string `json:"name"    validate:"required"`
	Age     *int    `json:"age"     validate:"required"`
	Address *string `json:"address" validate:"required"`
	Work    *string `json:"work"    validate:"required"`
}
