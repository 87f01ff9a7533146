package store

import (
	"fmt"
	"hash/fnv"

	"github.com/gartstein/connectify/internal/addressbook/models"
)

// ReadOnlyAddressBook is an unmodifiable snapshot source.
type ReadOnlyAddressBook interface {
	PersonList() View[models.Person]
	CompanyList() View[models.Company]
}

// AddressBook is the aggregate root: one unique person list and one unique
// company list. Duplicates are not allowed in either (by IsSame).
type AddressBook struct {
	persons   *UniquePersonList
	companies *UniqueCompanyList
}

func NewAddressBook() *AddressBook {
	return &AddressBook{
		persons:   NewUniquePersonList(),
		companies: NewUniqueCompanyList(),
	}
}

// NewAddressBookFrom creates an AddressBook holding copies of src's lists.
func NewAddressBookFrom(src ReadOnlyAddressBook) (*AddressBook, error) {
	ab := NewAddressBook()
	if err := ab.ResetData(src); err != nil {
		return nil, err
	}
	return ab, nil
}

// SetPersons replaces the person list. persons must not contain duplicates.
func (ab *AddressBook) SetPersons(persons []models.Person) error {
	return ab.persons.SetAll(persons)
}

// SetCompanies replaces the company list. companies must not contain duplicates.
func (ab *AddressBook) SetCompanies(companies []models.Company) error {
	return ab.companies.SetAll(companies)
}

// ResetData replaces both lists with the contents of data. Both lists are
// checked before either is replaced, so a failed reset keeps the old state.
func (ab *AddressBook) ResetData(data ReadOnlyAddressBook) error {
	if data == nil {
		return fmt.Errorf("reset address book: nil source")
	}
	persons := data.PersonList().Items()
	companies := data.CompanyList().Items()
	if err := checkUnique(persons); err != nil {
		return err
	}
	if err := checkUnique(companies); err != nil {
		return err
	}
	if err := ab.SetPersons(persons); err != nil {
		return err
	}
	return ab.SetCompanies(companies)
}

// HasPerson reports whether a person with the same identity exists.
func (ab *AddressBook) HasPerson(p models.Person) bool {
	return ab.persons.Contains(p)
}

// HasCompany reports whether a company with the same identity exists.
func (ab *AddressBook) HasCompany(c models.Company) bool {
	return ab.companies.Contains(c)
}

// AddPerson adds p. The person must not already exist.
func (ab *AddressBook) AddPerson(p models.Person) error {
	return ab.persons.Add(p)
}

// AddCompany adds c. The company must not already exist.
func (ab *AddressBook) AddCompany(c models.Company) error {
	return ab.companies.Add(c)
}

// SetPerson replaces target with edited. target must exist and edited must
// not share its identity with another person.
func (ab *AddressBook) SetPerson(target, edited models.Person) error {
	return ab.persons.SetElement(target, edited)
}

// SetCompany replaces target with edited under the same rules as SetPerson.
func (ab *AddressBook) SetCompany(target, edited models.Company) error {
	return ab.companies.SetElement(target, edited)
}

// RemovePerson removes key, which must exist.
func (ab *AddressBook) RemovePerson(key models.Person) error {
	return ab.persons.Remove(key)
}

// RemoveCompany removes key, which must exist.
func (ab *AddressBook) RemoveCompany(key models.Company) error {
	return ab.companies.Remove(key)
}

// Sort orders companies by companyCmp and persons by personCmp.
func (ab *AddressBook) Sort(companyCmp func(a, b models.Company) int, personCmp func(a, b models.Person) int) {
	ab.companies.Sort(companyCmp)
	ab.persons.Sort(personCmp)
}

func (ab *AddressBook) PersonList() View[models.Person] {
	return ab.persons.View()
}

func (ab *AddressBook) CompanyList() View[models.Company] {
	return ab.companies.View()
}

// Equals reports whether both address books hold equal lists in the same order.
func (ab *AddressBook) Equals(other *AddressBook) bool {
	if other == nil {
		return false
	}
	if ab == other {
		return true
	}
	return ab.companies.Equals(other.companies) && ab.persons.Equals(other.persons)
}

// Hash is derived from the person list only. Equal books still hash equal
// because person-list equality is required for Equals.
func (ab *AddressBook) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for _, p := range ab.persons.items {
		v := p.Hash()
		for i := range buf {
			buf[i] = byte(v >> (8 * i))
		}
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}

func (ab *AddressBook) String() string {
	return fmt.Sprintf("AddressBook{companies=%d, persons=%d}", len(ab.companies.items), len(ab.persons.items))
}
