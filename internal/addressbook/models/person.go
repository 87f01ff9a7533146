package models

import (
	"fmt"
	"hash/fnv"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Person is an immutable address book record.
// Only the name takes part in identity; every field takes part in equality.
type Person struct {
	Entity
	name     PersonName
	phone    PersonPhone
	email    PersonEmail
	address  PersonAddress
	tags     []Tag
	priority PersonPriority
}

// NewPerson builds a Person from already validated values.
// Tags are treated as a set: duplicates are dropped and order is not significant.
func NewPerson(name PersonName, phone PersonPhone, email PersonEmail, address PersonAddress,
	tags []Tag, priority PersonPriority) Person {
	return Person{
		Entity:   newEntity(),
		name:     name,
		phone:    phone,
		email:    email,
		address:  address,
		tags:     tagSet(tags),
		priority: priority,
	}
}

func tagSet(tags []Tag) []Tag {
	set := slices.Clone(tags)
	slices.SortFunc(set, func(a, b Tag) int { return strings.Compare(a.name, b.name) })
	return slices.Compact(set)
}

func (p Person) Name() PersonName         { return p.name }
func (p Person) Phone() PersonPhone       { return p.phone }
func (p Person) Email() PersonEmail       { return p.email }
func (p Person) Address() PersonAddress   { return p.address }
func (p Person) Priority() PersonPriority { return p.priority }

// Tags returns a copy of the tag set, sorted by name.
func (p Person) Tags() []Tag {
	return slices.Clone(p.tags)
}

// Key returns the business identity used in messages and event keys.
func (p Person) Key() string {
	return p.name.value
}

// Rank is the value persons are ordered by when ranked.
func (p Person) Rank() int {
	return p.priority.value
}

// WithHandle returns a copy of p carrying the given handle.
func (p Person) WithHandle(handle uuid.UUID) Person {
	p.Entity = Entity{handle: handle}
	return p
}

// IsSame reports whether both persons have the same name.
// This is the weaker notion of equality the unique lists enforce.
// Names are compared exactly, so case and whitespace differences count.
func (p Person) IsSame(other Person) bool {
	return p.name == other.name
}

// Equals reports whether every identity and data field matches.
func (p Person) Equals(other Person) bool {
	return p.name == other.name &&
		p.phone == other.phone &&
		p.email == other.email &&
		p.address == other.address &&
		slices.Equal(p.tags, other.tags) &&
		p.priority == other.priority
}

// Hash is consistent with Equals. Priority is left out.
func (p Person) Hash() uint64 {
	h := fnv.New64a()
	for _, s := range []string{p.name.value, p.phone.value, p.email.value, p.address.value} {
		_, _ = h.Write([]byte(s))
		_, _ = h.Write([]byte{0})
	}
	for _, t := range p.tags {
		_, _ = h.Write([]byte(t.name))
		_, _ = h.Write([]byte{0})
	}
	return h.Sum64()
}

func (p Person) String() string {
	names := make([]string, len(p.tags))
	for i, t := range p.tags {
		names[i] = t.name
	}
	return fmt.Sprintf("Person{name=%s, phone=%s, email=%s, address=%s, tags=[%s], priority=%d}",
		p.name, p.phone, p.email, p.address, strings.Join(names, ", "), p.priority.value)
}

// ComparePriority orders persons by ascending priority.
func ComparePriority(a, b Person) int {
	return a.priority.Compare(b.priority)
}
