// Package models defines the domain records of the address book: the
// Person and Company entities, the validated value objects they are built
// from, and the partial-update descriptors used by the edit command.
//
// All records are immutable values. Operations that "change" a record
// return a new value and leave the receiver untouched.
package models

import (
	"github.com/google/uuid"
)

// Entity carries the internal handle every record gets at construction.
// The handle is bookkeeping for containers and is never part of equality.
type Entity struct {
	handle uuid.UUID
}

func newEntity() Entity {
	return Entity{handle: uuid.New()}
}

// Handle returns the internal handle of the record.
func (e Entity) Handle() uuid.UUID {
	return e.handle
}
