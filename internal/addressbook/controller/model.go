package controller

import (
	"github.com/gartstein/connectify/internal/addressbook/models"
	"github.com/gartstein/connectify/internal/addressbook/store"
)

// ShowAllPersons and ShowAllCompanies are the predicates that display everything.
func ShowAllPersons(models.Person) bool    { return true }
func ShowAllCompanies(models.Company) bool { return true }

// Model pairs the address book with the displayed lists that command
// indices are resolved against.
type Model struct {
	book             *store.AddressBook
	personPredicate  func(models.Person) bool
	companyPredicate func(models.Company) bool
}

// NewModel wraps book. A nil book starts empty.
func NewModel(book *store.AddressBook) *Model {
	if book == nil {
		book = store.NewAddressBook()
	}
	return &Model{
		book:             book,
		personPredicate:  ShowAllPersons,
		companyPredicate: ShowAllCompanies,
	}
}

func (m *Model) AddressBook() *store.AddressBook {
	return m.book
}

// FilteredPersons returns the displayed persons in store order.
func (m *Model) FilteredPersons() []models.Person {
	out := make([]models.Person, 0, m.book.PersonList().Len())
	for _, p := range m.book.PersonList().All() {
		if m.personPredicate(p) {
			out = append(out, p)
		}
	}
	return out
}

// FilteredCompanies returns the displayed companies in store order.
func (m *Model) FilteredCompanies() []models.Company {
	out := make([]models.Company, 0, m.book.CompanyList().Len())
	for _, c := range m.book.CompanyList().All() {
		if m.companyPredicate(c) {
			out = append(out, c)
		}
	}
	return out
}

func (m *Model) UpdateFilteredPersonList(predicate func(models.Person) bool) {
	m.personPredicate = predicate
}

func (m *Model) UpdateFilteredCompanyList(predicate func(models.Company) bool) {
	m.companyPredicate = predicate
}

// ShowAll clears both filters.
func (m *Model) ShowAll() {
	m.personPredicate = ShowAllPersons
	m.companyPredicate = ShowAllCompanies
}
