// Package modeltest provides helpers for building valid records in tests.
package modeltest

import (
	"github.com/gartstein/connectify/internal/addressbook/models"
	"github.com/stretchr/testify/require"
)

// TB is the subset of testing.TB the helpers need. Both *testing.T and
// *rapid.T satisfy it.
type TB interface {
	Helper()
	require.TestingT
}

// PersonSpec lists the raw fields of a person. Empty optional fields are left unset.
type PersonSpec struct {
	Name     string
	Phone    string
	Email    string
	Address  string
	Tags     []string
	Priority int
}

// Person builds a Person from spec, failing the test on invalid input.
// An empty email defaults to someone@example.com.
func Person(t TB, spec PersonSpec) models.Person {
	t.Helper()
	if spec.Email == "" {
		spec.Email = "someone@example.com"
	}
	name, err := models.NewPersonName(spec.Name)
	require.NoError(t, err)
	phone, err := models.NewPersonPhone(spec.Phone)
	require.NoError(t, err)
	email, err := models.NewPersonEmail(spec.Email)
	require.NoError(t, err)
	address, err := models.NewPersonAddress(spec.Address)
	require.NoError(t, err)
	tags, err := models.NewTags(spec.Tags...)
	require.NoError(t, err)
	priority, err := models.NewPersonPriority(spec.Priority)
	require.NoError(t, err)
	return models.NewPerson(name, phone, email, address, tags, priority)
}

// Named builds a Person with only a name set.
func Named(t TB, name string) models.Person {
	t.Helper()
	return Person(t, PersonSpec{Name: name})
}

// Company builds a Company with the given name and roster.
func Company(t TB, name string, persons ...models.Person) models.Company {
	t.Helper()
	c, err := models.NewCompany(name, models.CompanyDetails{
		Industry: "Technology",
		Location: "Singapore",
	}, persons...)
	require.NoError(t, err)
	return c
}
