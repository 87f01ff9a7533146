package controller

import (
	"errors"
	"fmt"

	e "github.com/gartstein/connectify/internal/addressbook/errors"
	"github.com/gartstein/connectify/internal/addressbook/models"
)

// CommandResult is what a command reports back to its caller.
type CommandResult struct {
	Feedback  string
	Exit      bool
	Person    *models.Person
	Company   *models.Company
	Persons   []models.Person
	Companies []models.Company
}

// Command is a typed request executed against the Model.
type Command interface {
	Execute(m *Model) (CommandResult, error)
	// Mutates reports whether a successful run changes the address book.
	Mutates() bool
	Name() string
}

func resolvePerson(persons []models.Person, index int) (models.Person, error) {
	if index <= 0 || index > len(persons) {
		return models.Person{}, fmt.Errorf("%w: %s", e.ErrIndexOutOfRange, MessageInvalidPersonIndex)
	}
	return persons[index-1], nil
}

func resolveCompany(companies []models.Company, index int) (models.Company, error) {
	if index <= 0 || index > len(companies) {
		return models.Company{}, fmt.Errorf("%w: %s", e.ErrIndexOutOfRange, MessageInvalidCompanyIndex)
	}
	return companies[index-1], nil
}

func duplicate(err error, message string) error {
	if errors.Is(err, e.ErrDuplicate) {
		return fmt.Errorf("%w: %s", e.ErrDuplicate, message)
	}
	return err
}

// AddCommand adds a person to the address book.
type AddCommand struct {
	Person models.Person
}

func (c AddCommand) Execute(m *Model) (CommandResult, error) {
	if err := m.book.AddPerson(c.Person); err != nil {
		return CommandResult{}, duplicate(err, MessageDuplicatePerson)
	}
	p := c.Person
	return CommandResult{Feedback: fmt.Sprintf(MessageAddSuccess, p), Person: &p}, nil
}

func (AddCommand) Mutates() bool { return true }
func (AddCommand) Name() string  { return "add" }

// AddCompanyCommand adds a company to the address book.
type AddCompanyCommand struct {
	Company models.Company
}

func (c AddCompanyCommand) Execute(m *Model) (CommandResult, error) {
	if err := m.book.AddCompany(c.Company); err != nil {
		return CommandResult{}, duplicate(err, MessageDuplicateCompany)
	}
	co := c.Company
	return CommandResult{Feedback: fmt.Sprintf(MessageAddCompanySuccess, co), Company: &co}, nil
}

func (AddCompanyCommand) Mutates() bool { return true }
func (AddCompanyCommand) Name() string  { return "addCompany" }

// DeletePersonCommand deletes the person at a 1-based index of the displayed list.
type DeletePersonCommand struct {
	Index int
}

func (c DeletePersonCommand) Execute(m *Model) (CommandResult, error) {
	target, err := resolvePerson(m.FilteredPersons(), c.Index)
	if err != nil {
		return CommandResult{}, err
	}
	if err := m.book.RemovePerson(target); err != nil {
		return CommandResult{}, err
	}
	return CommandResult{Feedback: fmt.Sprintf(MessageDeletePersonSuccess, target), Person: &target}, nil
}

func (DeletePersonCommand) Mutates() bool { return true }
func (DeletePersonCommand) Name() string  { return "deletePerson" }

// DeleteCompanyCommand deletes the company at a 1-based index of the displayed list.
type DeleteCompanyCommand struct {
	Index int
}

func (c DeleteCompanyCommand) Execute(m *Model) (CommandResult, error) {
	target, err := resolveCompany(m.FilteredCompanies(), c.Index)
	if err != nil {
		return CommandResult{}, err
	}
	if err := m.book.RemoveCompany(target); err != nil {
		return CommandResult{}, err
	}
	return CommandResult{Feedback: fmt.Sprintf(MessageDeleteCompanySuccess, target), Company: &target}, nil
}

func (DeleteCompanyCommand) Mutates() bool { return true }
func (DeleteCompanyCommand) Name() string  { return "deleteCompany" }

// AddPersonToCompanyCommand appends a displayed person to a displayed company's roster.
type AddPersonToCompanyCommand struct {
	PersonIndex  int
	CompanyIndex int
}

func (c AddPersonToCompanyCommand) Execute(m *Model) (CommandResult, error) {
	person, err := resolvePerson(m.FilteredPersons(), c.PersonIndex)
	if err != nil {
		return CommandResult{}, err
	}
	company, err := resolveCompany(m.FilteredCompanies(), c.CompanyIndex)
	if err != nil {
		return CommandResult{}, err
	}
	extended := company.AddPersonToCompany(person)
	if err := m.book.SetCompany(company, extended); err != nil {
		return CommandResult{}, err
	}
	return CommandResult{
		Feedback: fmt.Sprintf(MessageLinkSuccess, person.Key(), company.Name()),
		Person:   &person,
		Company:  &extended,
	}, nil
}

func (AddPersonToCompanyCommand) Mutates() bool { return true }
func (AddPersonToCompanyCommand) Name() string  { return "addPersonToCompany" }

// EditTarget selects which record an EditCommand changes.
type EditTarget int

const (
	// EditPerson edits a displayed person.
	EditPerson EditTarget = iota
	// EditCompany edits a displayed company.
	EditCompany
	// EditCompanyPerson edits a person inside a displayed company's roster.
	EditCompanyPerson
)

// EditCommand overlays supplied fields onto an existing record.
// Index is 1-based; CompanyIndex is required for EditCompanyPerson.
type EditCommand struct {
	Target       EditTarget
	Index        int
	CompanyIndex *int
	Person       *models.PersonUpdate
	Company      *models.CompanyUpdate
}

func (c EditCommand) anyFieldEdited() bool {
	if c.Target == EditCompany {
		return c.Company != nil && c.Company.IsAnyFieldEdited()
	}
	return c.Person != nil && c.Person.IsAnyFieldEdited()
}

// Execute reports problems in a fixed order: nothing to edit, invalid index,
// missing company, invalid company index, index out of bounds, duplicate.
func (c EditCommand) Execute(m *Model) (CommandResult, error) {
	if !c.anyFieldEdited() {
		return CommandResult{}, fmt.Errorf("%w: %s", e.ErrNoFieldEdited, MessageNotEdited)
	}
	if c.Index <= 0 {
		return CommandResult{}, fmt.Errorf("%w: %s", e.ErrInvalidIndex, MessageInvalidIndex)
	}

	switch c.Target {
	case EditCompany:
		return c.editCompany(m)
	case EditCompanyPerson:
		return c.editCompanyPerson(m)
	default:
		return c.editPerson(m)
	}
}

func (c EditCommand) editPerson(m *Model) (CommandResult, error) {
	target, err := resolvePerson(m.FilteredPersons(), c.Index)
	if err != nil {
		return CommandResult{}, err
	}
	edited := c.Person.Apply(target)
	if err := m.book.SetPerson(target, edited); err != nil {
		return CommandResult{}, duplicate(err, MessageDuplicatePerson)
	}
	m.ShowAll()
	return CommandResult{Feedback: fmt.Sprintf(MessageEditPersonSuccess, edited), Person: &edited}, nil
}

func (c EditCommand) editCompany(m *Model) (CommandResult, error) {
	target, err := resolveCompany(m.FilteredCompanies(), c.Index)
	if err != nil {
		return CommandResult{}, err
	}
	edited, err := c.Company.Apply(target)
	if err != nil {
		return CommandResult{}, err
	}
	if err := m.book.SetCompany(target, edited); err != nil {
		return CommandResult{}, duplicate(err, MessageDuplicateCompany)
	}
	m.ShowAll()
	return CommandResult{Feedback: fmt.Sprintf(MessageEditCompanySuccess, edited), Company: &edited}, nil
}

// editCompanyPerson edits a roster member. If the address book also holds a
// person of the same identity, that record receives the same edit. Roster
// entries are per-company copies: other companies' copies stay as they are,
// and editPerson never touches a roster.
func (c EditCommand) editCompanyPerson(m *Model) (CommandResult, error) {
	if c.CompanyIndex == nil {
		return CommandResult{}, fmt.Errorf("%w: %s", e.ErrMissingCompany, MessageMissingCompany)
	}
	companies := m.FilteredCompanies()
	ci := *c.CompanyIndex
	if ci <= 0 || ci > len(companies) {
		return CommandResult{}, fmt.Errorf("%w: %s", e.ErrInvalidCompanyIndex, MessageInvalidCompanyIndex)
	}
	company := companies[ci-1]
	target, err := resolvePerson(company.Persons(), c.Index)
	if err != nil {
		return CommandResult{}, err
	}
	edited := c.Person.Apply(target)

	for _, p := range m.book.PersonList().All() {
		if p.IsSame(target) {
			if err := m.book.SetPerson(p, c.Person.Apply(p)); err != nil {
				return CommandResult{}, duplicate(err, MessageDuplicatePerson)
			}
			break
		}
	}

	updated, err := company.ReplacePersonAt(c.Index-1, edited)
	if err != nil {
		return CommandResult{}, err
	}
	if err := m.book.SetCompany(company, updated); err != nil {
		return CommandResult{}, err
	}
	m.ShowAll()
	return CommandResult{
		Feedback: fmt.Sprintf(MessageEditPersonSuccess, edited),
		Person:   &edited,
		Company:  &updated,
	}, nil
}

func (EditCommand) Mutates() bool { return true }
func (EditCommand) Name() string  { return "edit" }

// ListCommand shows every person and company.
type ListCommand struct{}

func (ListCommand) Execute(m *Model) (CommandResult, error) {
	m.ShowAll()
	persons, companies := m.FilteredPersons(), m.FilteredCompanies()
	total := len(persons) + len(companies)
	feedback := fmt.Sprintf(MessageListEntities, total)
	if total == 0 {
		feedback = MessageNoEntities
	}
	return CommandResult{Feedback: feedback, Persons: persons, Companies: companies}, nil
}

func (ListCommand) Mutates() bool { return false }
func (ListCommand) Name() string  { return "list" }

// ListCompaniesCommand shows every company.
type ListCompaniesCommand struct{}

func (ListCompaniesCommand) Execute(m *Model) (CommandResult, error) {
	m.UpdateFilteredCompanyList(ShowAllCompanies)
	companies := m.FilteredCompanies()
	feedback := fmt.Sprintf(MessageListCompanies, len(companies))
	if len(companies) == 0 {
		feedback = MessageNoCompanies
	}
	return CommandResult{Feedback: feedback, Companies: companies}, nil
}

func (ListCompaniesCommand) Mutates() bool { return false }
func (ListCompaniesCommand) Name() string  { return "companies" }

// ListPeopleCommand shows every person.
type ListPeopleCommand struct{}

func (ListPeopleCommand) Execute(m *Model) (CommandResult, error) {
	m.UpdateFilteredPersonList(ShowAllPersons)
	persons := m.FilteredPersons()
	feedback := fmt.Sprintf(MessageListPeople, len(persons))
	if len(persons) == 0 {
		feedback = MessageNoPeople
	}
	return CommandResult{Feedback: feedback, Persons: persons}, nil
}

func (ListPeopleCommand) Mutates() bool { return false }
func (ListPeopleCommand) Name() string  { return "people" }

// RankCommand sorts companies by name and persons by priority.
type RankCommand struct{}

func (RankCommand) Execute(m *Model) (CommandResult, error) {
	m.book.Sort(models.CompareName, models.ComparePriority)
	return CommandResult{Feedback: MessageRankSuccess, Persons: m.FilteredPersons()}, nil
}

func (RankCommand) Mutates() bool { return true }
func (RankCommand) Name() string  { return "rank" }

// ExitCommand ends the session.
type ExitCommand struct{}

func (ExitCommand) Execute(*Model) (CommandResult, error) {
	return CommandResult{Feedback: MessageExit, Exit: true}, nil
}

func (ExitCommand) Mutates() bool { return false }
func (ExitCommand) Name() string  { return "exit" }
