package controller

import (
	"errors"
	"testing"

	e "github.com/gartstein/connectify/internal/addressbook/errors"
	"github.com/gartstein/connectify/internal/addressbook/models"
	"github.com/gartstein/connectify/internal/addressbook/models/modeltest"
	"github.com/gartstein/connectify/internal/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTypicalModel(t *testing.T) *Model {
	t.Helper()
	m := NewModel(nil)
	alice := modeltest.Person(t, modeltest.PersonSpec{Name: "Alice Pauline", Email: "alice@example.com", Priority: 2})
	benson := modeltest.Person(t, modeltest.PersonSpec{Name: "Benson Meier", Email: "benson@example.com", Priority: 1})
	require.NoError(t, m.AddressBook().AddPerson(alice))
	require.NoError(t, m.AddressBook().AddPerson(benson))
	require.NoError(t, m.AddressBook().AddCompany(modeltest.Company(t, "Shopee", alice)))
	require.NoError(t, m.AddressBook().AddCompany(modeltest.Company(t, "Google")))
	return m
}

func TestAddCommand(t *testing.T) {
	m := NewModel(nil)
	john := modeltest.Person(t, modeltest.PersonSpec{
		Name:  "John Doe",
		Email: "johndoe@example.com",
		Tags:  []string{"colleague"},
	})

	result, err := AddCommand{Person: john}.Execute(m)
	require.NoError(t, err)
	assert.Contains(t, result.Feedback, "New person added: ")
	require.NotNil(t, result.Person)
	assert.True(t, result.Person.Equals(john))
	assert.Equal(t, 1, m.AddressBook().PersonList().Len())
	assert.True(t, m.AddressBook().HasPerson(modeltest.Named(t, "John Doe")))

	_, err = AddCommand{Person: modeltest.Person(t, modeltest.PersonSpec{Name: "John Doe", Phone: "999"})}.Execute(m)
	assert.ErrorIs(t, err, e.ErrDuplicate)
	assert.Contains(t, err.Error(), MessageDuplicatePerson)
	assert.Equal(t, 1, m.AddressBook().PersonList().Len())
}

func TestAddCompanyCommand(t *testing.T) {
	m := newTypicalModel(t)

	_, err := AddCompanyCommand{Company: modeltest.Company(t, "Google")}.Execute(m)
	assert.ErrorIs(t, err, e.ErrDuplicate)
	assert.Contains(t, err.Error(), MessageDuplicateCompany)

	result, err := AddCompanyCommand{Company: modeltest.Company(t, "Grab")}.Execute(m)
	require.NoError(t, err)
	assert.Equal(t, "Grab", result.Company.Name())
	assert.Equal(t, 3, m.AddressBook().CompanyList().Len())
}

func TestDeletePersonCommand(t *testing.T) {
	m := NewModel(nil)
	require.NoError(t, m.AddressBook().AddPerson(modeltest.Named(t, "John Doe")))

	result, err := DeletePersonCommand{Index: 1}.Execute(m)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", result.Person.Key())
	assert.Equal(t, 0, m.AddressBook().PersonList().Len())

	_, err = DeletePersonCommand{Index: 1}.Execute(m)
	assert.ErrorIs(t, err, e.ErrIndexOutOfRange)
	assert.False(t, errors.Is(err, e.ErrNotFound), "index errors must be distinguishable")
	assert.Equal(t, 0, m.AddressBook().PersonList().Len())
}

func TestDeletePersonCommand_InvalidIndices(t *testing.T) {
	for _, index := range []int{-1, 0, 3} {
		m := newTypicalModel(t)
		_, err := DeletePersonCommand{Index: index}.Execute(m)
		assert.ErrorIs(t, err, e.ErrIndexOutOfRange, "index %d", index)
		assert.Equal(t, 2, m.AddressBook().PersonList().Len())
	}
}

func TestDeletePersonCommand_UsesDisplayedList(t *testing.T) {
	m := newTypicalModel(t)
	m.UpdateFilteredPersonList(func(p models.Person) bool { return p.Key() == "Benson Meier" })

	result, err := DeletePersonCommand{Index: 1}.Execute(m)
	require.NoError(t, err)
	assert.Equal(t, "Benson Meier", result.Person.Key())
	assert.True(t, m.AddressBook().HasPerson(modeltest.Named(t, "Alice Pauline")))

	_, err = DeletePersonCommand{Index: 1}.Execute(m)
	assert.ErrorIs(t, err, e.ErrIndexOutOfRange)
}

func TestDeleteCompanyCommand(t *testing.T) {
	m := newTypicalModel(t)

	result, err := DeleteCompanyCommand{Index: 2}.Execute(m)
	require.NoError(t, err)
	assert.Equal(t, "Google", result.Company.Name())

	_, err = DeleteCompanyCommand{Index: 2}.Execute(m)
	assert.ErrorIs(t, err, e.ErrIndexOutOfRange)
}

func TestAddPersonToCompanyCommand(t *testing.T) {
	m := newTypicalModel(t)
	before := m.AddressBook().CompanyList().At(0)

	result, err := AddPersonToCompanyCommand{PersonIndex: 2, CompanyIndex: 1}.Execute(m)
	require.NoError(t, err)

	after := m.AddressBook().CompanyList().At(0)
	require.Equal(t, 2, after.PersonCount())
	assert.Equal(t, "Alice Pauline", after.Persons()[0].Key())
	assert.Equal(t, "Benson Meier", after.Persons()[1].Key())
	assert.Equal(t, 1, before.PersonCount(), "previous company value must not change")
	assert.Equal(t, "Added Benson Meier to company Shopee", result.Feedback)

	_, err = AddPersonToCompanyCommand{PersonIndex: 1, CompanyIndex: 9}.Execute(m)
	assert.ErrorIs(t, err, e.ErrIndexOutOfRange)
}

func phoneUpdate(t *testing.T, raw string) *models.PersonUpdate {
	t.Helper()
	phone, err := models.NewPersonPhone(raw)
	require.NoError(t, err)
	return &models.PersonUpdate{Phone: &phone}
}

func nameUpdate(t *testing.T, raw string) *models.PersonUpdate {
	t.Helper()
	name, err := models.NewPersonName(raw)
	require.NoError(t, err)
	return &models.PersonUpdate{Name: &name}
}

func TestEditCommand_ChangePhoneOnly(t *testing.T) {
	m := NewModel(nil)
	original := modeltest.Person(t, modeltest.PersonSpec{
		Name:  "NewName",
		Email: "new@example.com",
		Tags:  []string{"friend"},
	})
	require.NoError(t, m.AddressBook().AddPerson(original))

	result, err := EditCommand{Target: EditPerson, Index: 1, Person: phoneUpdate(t, "91234567")}.Execute(m)
	require.NoError(t, err)

	edited := m.AddressBook().PersonList().At(0)
	assert.Equal(t, "91234567", edited.Phone().String())
	assert.True(t, edited.IsSame(original))
	assert.Equal(t, original.Email(), edited.Email())
	assert.Equal(t, original.Tags(), edited.Tags())
	assert.Equal(t, original.Handle(), edited.Handle())
	assert.True(t, result.Person.Equals(edited))
}

func TestEditCommand_DuplicateName(t *testing.T) {
	m := newTypicalModel(t)
	before := m.AddressBook().PersonList().Items()

	_, err := EditCommand{Target: EditPerson, Index: 2, Person: nameUpdate(t, "Alice Pauline")}.Execute(m)

	assert.ErrorIs(t, err, e.ErrDuplicate)
	assert.Contains(t, err.Error(), MessageDuplicatePerson)
	assert.Equal(t, before, m.AddressBook().PersonList().Items())
}

func TestEditCommand_Precedence(t *testing.T) {
	tests := []struct {
		name    string
		cmd     EditCommand
		wantErr error
	}{
		{
			name:    "nothing to edit wins over bad index",
			cmd:     EditCommand{Target: EditPerson, Index: 0, Person: &models.PersonUpdate{}},
			wantErr: e.ErrNoFieldEdited,
		},
		{
			name:    "nil descriptor counts as nothing to edit",
			cmd:     EditCommand{Target: EditCompany, Index: 1},
			wantErr: e.ErrNoFieldEdited,
		},
		{
			name:    "invalid index wins over missing company",
			cmd:     EditCommand{Target: EditCompanyPerson, Index: 0, Person: phoneUpdate(t, "123")},
			wantErr: e.ErrInvalidIndex,
		},
		{
			name:    "missing company reference",
			cmd:     EditCommand{Target: EditCompanyPerson, Index: 1, Person: phoneUpdate(t, "123")},
			wantErr: e.ErrMissingCompany,
		},
		{
			name: "invalid company index wins over out of bounds",
			cmd: EditCommand{Target: EditCompanyPerson, Index: 99, CompanyIndex: utils.Ptr(7),
				Person: phoneUpdate(t, "123")},
			wantErr: e.ErrInvalidCompanyIndex,
		},
		{
			name: "roster index out of bounds",
			cmd: EditCommand{Target: EditCompanyPerson, Index: 2, CompanyIndex: utils.Ptr(1),
				Person: phoneUpdate(t, "123")},
			wantErr: e.ErrIndexOutOfRange,
		},
		{
			name:    "person index out of bounds",
			cmd:     EditCommand{Target: EditPerson, Index: 3, Person: phoneUpdate(t, "123")},
			wantErr: e.ErrIndexOutOfRange,
		},
		{
			name:    "out of bounds wins over duplicate",
			cmd:     EditCommand{Target: EditPerson, Index: 3, Person: nameUpdate(t, "Alice Pauline")},
			wantErr: e.ErrIndexOutOfRange,
		},
		{
			name:    "company duplicate",
			cmd:     EditCommand{Target: EditCompany, Index: 2, Company: &models.CompanyUpdate{Name: utils.Ptr("Shopee")}},
			wantErr: e.ErrDuplicate,
		},
		{
			name:    "company validation",
			cmd:     EditCommand{Target: EditCompany, Index: 2, Company: &models.CompanyUpdate{Name: utils.Ptr(" ")}},
			wantErr: e.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTypicalModel(t)
			persons := m.AddressBook().PersonList().Items()
			companies := m.AddressBook().CompanyList().Items()

			_, err := tt.cmd.Execute(m)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, persons, m.AddressBook().PersonList().Items())
			assert.Equal(t, companies, m.AddressBook().CompanyList().Items())
		})
	}
}

func TestEditCommand_Company(t *testing.T) {
	m := newTypicalModel(t)

	result, err := EditCommand{
		Target:  EditCompany,
		Index:   1,
		Company: &models.CompanyUpdate{Website: utils.Ptr("shopee.sg")},
	}.Execute(m)
	require.NoError(t, err)

	shopee := m.AddressBook().CompanyList().At(0)
	assert.Equal(t, "shopee.sg", shopee.Website())
	assert.Equal(t, 1, shopee.PersonCount())
	assert.Equal(t, "shopee.sg", result.Company.Website())
}

func TestEditCommand_CompanyPerson(t *testing.T) {
	m := newTypicalModel(t)

	_, err := EditCommand{
		Target:       EditCompanyPerson,
		Index:        1,
		CompanyIndex: utils.Ptr(1),
		Person:       phoneUpdate(t, "87654321"),
	}.Execute(m)
	require.NoError(t, err)

	member := m.AddressBook().CompanyList().At(0).Persons()[0]
	assert.Equal(t, "87654321", member.Phone().String())
	top := m.AddressBook().PersonList().At(0)
	assert.Equal(t, "87654321", top.Phone().String(), "top-level record follows the roster edit")
}

func TestEditCommand_RosterEntriesAreCopies(t *testing.T) {
	m := newTypicalModel(t)
	_, err := AddPersonToCompanyCommand{PersonIndex: 1, CompanyIndex: 2}.Execute(m)
	require.NoError(t, err)
	book := m.AddressBook()

	_, err = EditCommand{Target: EditPerson, Index: 1, Person: phoneUpdate(t, "11111111")}.Execute(m)
	require.NoError(t, err)

	assert.Equal(t, "11111111", book.PersonList().At(0).Phone().String())
	assert.NotEqual(t, "11111111", book.CompanyList().At(0).Persons()[0].Phone().String(),
		"a top-level edit leaves Shopee's roster alone")
	assert.NotEqual(t, "11111111", book.CompanyList().At(1).Persons()[0].Phone().String(),
		"a top-level edit leaves Google's roster alone")

	_, err = EditCommand{
		Target:       EditCompanyPerson,
		Index:        1,
		CompanyIndex: utils.Ptr(1),
		Person:       phoneUpdate(t, "22222222"),
	}.Execute(m)
	require.NoError(t, err)

	assert.Equal(t, "22222222", book.CompanyList().At(0).Persons()[0].Phone().String())
	assert.Equal(t, "22222222", book.PersonList().At(0).Phone().String(), "the top-level record follows")
	assert.NotEqual(t, "22222222", book.CompanyList().At(1).Persons()[0].Phone().String(),
		"other companies keep their own copy")
}

func TestEditCommand_CompanyPersonDuplicate(t *testing.T) {
	m := newTypicalModel(t)
	companies := m.AddressBook().CompanyList().Items()

	_, err := EditCommand{
		Target:       EditCompanyPerson,
		Index:        1,
		CompanyIndex: utils.Ptr(1),
		Person:       nameUpdate(t, "Benson Meier"),
	}.Execute(m)

	assert.ErrorIs(t, err, e.ErrDuplicate)
	assert.Equal(t, companies, m.AddressBook().CompanyList().Items())
}

func TestListCommands(t *testing.T) {
	empty := NewModel(nil)
	tests := []struct {
		name     string
		model    *Model
		cmd      Command
		feedback string
	}{
		{"list empty", empty, ListCommand{}, MessageNoEntities},
		{"companies empty", empty, ListCompaniesCommand{}, MessageNoCompanies},
		{"people empty", empty, ListPeopleCommand{}, MessageNoPeople},
		{"list", newTypicalModel(t), ListCommand{}, "Listed 4 entities"},
		{"companies", newTypicalModel(t), ListCompaniesCommand{}, "Listed 2 companies"},
		{"people", newTypicalModel(t), ListPeopleCommand{}, "Listed 2 people"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.model.AddressBook().PersonList().Items()
			result, err := tt.cmd.Execute(tt.model)
			require.NoError(t, err)
			assert.Equal(t, tt.feedback, result.Feedback)
			assert.False(t, tt.cmd.Mutates())
			assert.Equal(t, before, tt.model.AddressBook().PersonList().Items())
		})
	}
}

func TestListCommand_EmptyListsAreNotNil(t *testing.T) {
	result, err := ListCommand{}.Execute(NewModel(nil))
	require.NoError(t, err)

	assert.NotNil(t, result.Persons)
	assert.NotNil(t, result.Companies)
	assert.Empty(t, result.Persons)
	assert.Empty(t, result.Companies)
}

func TestListPeopleCommand_ClearsFilter(t *testing.T) {
	m := newTypicalModel(t)
	m.UpdateFilteredPersonList(func(models.Person) bool { return false })
	require.Empty(t, m.FilteredPersons())

	result, err := ListPeopleCommand{}.Execute(m)
	require.NoError(t, err)
	assert.Len(t, result.Persons, 2)
}

func TestRankCommand(t *testing.T) {
	m := newTypicalModel(t)

	_, err := RankCommand{}.Execute(m)
	require.NoError(t, err)

	assert.Equal(t, "Benson Meier", m.AddressBook().PersonList().At(0).Key())
	assert.Equal(t, "Google", m.AddressBook().CompanyList().At(0).Name())
}

func TestExitCommand(t *testing.T) {
	result, err := ExitCommand{}.Execute(NewModel(nil))
	require.NoError(t, err)
	assert.True(t, result.Exit)
	assert.Equal(t, MessageExit, result.Feedback)
}
