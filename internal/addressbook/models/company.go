package models

import (
	"fmt"
	"slices"
	"strings"

	e "github.com/gartstein/connectify/internal/addressbook/errors"
	"github.com/google/uuid"
)

const MessageCompanyNameConstraints = "Company names should not be blank"

// CompanyDetails holds the descriptive fields of a Company.
type CompanyDetails struct {
	Industry    string
	Location    string
	Description string
	Website     string
	Email       string
	Phone       string
	Address     string
}

// Company is an immutable address book record owning a roster of persons.
// The roster keeps insertion order and may hold the same person more than once.
type Company struct {
	Entity
	name    string
	details CompanyDetails
	persons []Person
}

// NewCompany validates the name and builds a Company with the given roster.
func NewCompany(name string, details CompanyDetails, persons ...Person) (Company, error) {
	if strings.TrimSpace(name) == "" {
		return Company{}, fmt.Errorf("%w: %s", e.ErrValidation, MessageCompanyNameConstraints)
	}
	return Company{
		Entity:  newEntity(),
		name:    name,
		details: details,
		persons: slices.Clone(persons),
	}, nil
}

// NewNamedCompany builds a Company with empty descriptive fields and roster.
func NewNamedCompany(name string) (Company, error) {
	return NewCompany(name, CompanyDetails{})
}

func (c Company) Name() string            { return c.name }
func (c Company) Details() CompanyDetails { return c.details }
func (c Company) Industry() string        { return c.details.Industry }
func (c Company) Location() string        { return c.details.Location }
func (c Company) Description() string     { return c.details.Description }
func (c Company) Website() string         { return c.details.Website }
func (c Company) Email() string           { return c.details.Email }
func (c Company) Phone() string           { return c.details.Phone }
func (c Company) Address() string         { return c.details.Address }

// Persons returns a copy of the roster.
func (c Company) Persons() []Person {
	return slices.Clone(c.persons)
}

// PersonCount returns the roster size.
func (c Company) PersonCount() int {
	return len(c.persons)
}

// AddPersonToCompany returns a new Company whose roster is c's roster with
// person appended. c is not modified.
func (c Company) AddPersonToCompany(person Person) Company {
	roster := make([]Person, len(c.persons), len(c.persons)+1)
	copy(roster, c.persons)
	c.persons = append(roster, person)
	return c
}

// ReplacePersonAt returns a new Company with the zero-based roster slot i
// replaced by person.
func (c Company) ReplacePersonAt(i int, person Person) (Company, error) {
	if i < 0 || i >= len(c.persons) {
		return Company{}, fmt.Errorf("%w: roster position %d", e.ErrIndexOutOfRange, i+1)
	}
	roster := slices.Clone(c.persons)
	roster[i] = person
	c.persons = roster
	return c, nil
}

func (c Company) Key() string {
	return c.name
}

// WithHandle returns a copy of c carrying the given handle.
func (c Company) WithHandle(handle uuid.UUID) Company {
	c.Entity = Entity{handle: handle}
	return c
}

// IsSame reports whether both companies have the same name.
func (c Company) IsSame(other Company) bool {
	return c.name == other.name
}

// Equals compares every field, including the roster.
func (c Company) Equals(other Company) bool {
	return c.name == other.name &&
		c.details == other.details &&
		slices.EqualFunc(c.persons, other.persons, Person.Equals)
}

func (c Company) String() string {
	people := make([]string, len(c.persons))
	for i, p := range c.persons {
		people[i] = p.name.value
	}
	return fmt.Sprintf("Company{name=%s, phone=%s, email=%s, address=%s, industry=%s, location=%s, "+
		"description=%s, website=%s, people=[%s]}",
		c.name, c.details.Phone, c.details.Email, c.details.Address, c.details.Industry,
		c.details.Location, c.details.Description, c.details.Website, strings.Join(people, ", "))
}

// CompareName orders companies lexicographically by name.
func CompareName(a, b Company) int {
	return strings.Compare(a.name, b.name)
}
