package models

import (
	"testing"

	e "github.com/gartstein/connectify/internal/addressbook/errors"
	"github.com/gartstein/connectify/internal/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPerson(t *testing.T, name, email string, priority int, tags ...string) Person {
	t.Helper()
	n, err := NewPersonName(name)
	require.NoError(t, err)
	m, err := NewPersonEmail(email)
	require.NoError(t, err)
	pr, err := NewPersonPriority(priority)
	require.NoError(t, err)
	ts, err := NewTags(tags...)
	require.NoError(t, err)
	return NewPerson(n, PersonPhone{}, m, PersonAddress{}, ts, pr)
}

func TestValueObjectValidation(t *testing.T) {
	tests := []struct {
		name  string
		build func() error
		valid bool
	}{
		{"name alphanumeric with spaces", func() error { _, err := NewPersonName("John Doe 2"); return err }, true},
		{"name blank", func() error { _, err := NewPersonName(""); return err }, false},
		{"name leading space", func() error { _, err := NewPersonName(" John"); return err }, false},
		{"name with symbol", func() error { _, err := NewPersonName("John*"); return err }, false},
		{"phone empty", func() error { _, err := NewPersonPhone(""); return err }, true},
		{"phone digits", func() error { _, err := NewPersonPhone("91234567"); return err }, true},
		{"phone too short", func() error { _, err := NewPersonPhone("12"); return err }, false},
		{"phone with letters", func() error { _, err := NewPersonPhone("9011p041"); return err }, false},
		{"email simple", func() error { _, err := NewPersonEmail("johndoe@example.com"); return err }, true},
		{"email hyphenated domain", func() error { _, err := NewPersonEmail("a+b@exam-ple.co"); return err }, true},
		{"email no at", func() error { _, err := NewPersonEmail("johndoe.example.com"); return err }, false},
		{"email special first", func() error { _, err := NewPersonEmail("-john@example.com"); return err }, false},
		{"email short tld", func() error { _, err := NewPersonEmail("john@example.c"); return err }, false},
		{"email label ends with hyphen", func() error { _, err := NewPersonEmail("john@example-.com"); return err }, false},
		{"address empty", func() error { _, err := NewPersonAddress(""); return err }, true},
		{"address text", func() error { _, err := NewPersonAddress("Blk 456, Den Road, #01-355"); return err }, true},
		{"address leading space", func() error { _, err := NewPersonAddress(" Road"); return err }, false},
		{"tag alphanumeric", func() error { _, err := NewTag("colleague"); return err }, true},
		{"tag with space", func() error { _, err := NewTag("best friend"); return err }, false},
		{"priority lower bound", func() error { _, err := NewPersonPriority(MinPriority); return err }, true},
		{"priority upper bound", func() error { _, err := NewPersonPriority(MaxPriority); return err }, true},
		{"priority above range", func() error { _, err := NewPersonPriority(MaxPriority + 1); return err }, false},
		{"priority negative", func() error { _, err := NewPersonPriority(-1); return err }, false},
		{"priority not a number", func() error { _, err := ParsePersonPriority("high"); return err }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, e.ErrValidation)
			}
		})
	}
}

func TestPriorityCompare(t *testing.T) {
	low, _ := NewPersonPriority(1)
	high, _ := NewPersonPriority(4)

	assert.Equal(t, -1, low.Compare(high))
	assert.Equal(t, 1, high.Compare(low))
	assert.Equal(t, 0, low.Compare(low))
}

func TestPerson_IsSameAndEquals(t *testing.T) {
	alice := mustPerson(t, "Alice Pauline", "alice@example.com", 1, "friends")

	t.Run("same name different fields", func(t *testing.T) {
		other := mustPerson(t, "Alice Pauline", "other@example.com", 3, "owesMoney")
		assert.True(t, alice.IsSame(other))
		assert.False(t, alice.Equals(other))
	})

	t.Run("name comparison is case sensitive", func(t *testing.T) {
		lower := mustPerson(t, "alice pauline", "alice@example.com", 1, "friends")
		assert.False(t, alice.IsSame(lower))
	})

	t.Run("equal values have distinct handles", func(t *testing.T) {
		twin := mustPerson(t, "Alice Pauline", "alice@example.com", 1, "friends")
		assert.True(t, alice.Equals(twin))
		assert.NotEqual(t, alice.Handle(), twin.Handle())
		assert.Equal(t, alice.Hash(), twin.Hash())
	})

	t.Run("priority is part of equality but not hash", func(t *testing.T) {
		ranked := mustPerson(t, "Alice Pauline", "alice@example.com", 5, "friends")
		assert.False(t, alice.Equals(ranked))
		assert.Equal(t, alice.Hash(), ranked.Hash())
	})

	t.Run("tags behave as a set", func(t *testing.T) {
		a := mustPerson(t, "Bob", "bob@example.com", 0, "b", "a", "a")
		b := mustPerson(t, "Bob", "bob@example.com", 0, "a", "b")
		assert.True(t, a.Equals(b))
		assert.Len(t, a.Tags(), 2)
	})
}

func TestPerson_TagsAreCopied(t *testing.T) {
	p := mustPerson(t, "Carl", "carl@example.com", 0, "colleague")
	tags := p.Tags()
	tags[0] = Tag{name: "mutated"}

	assert.Equal(t, "colleague", p.Tags()[0].Name())
}

func TestComparePriority(t *testing.T) {
	a := mustPerson(t, "A", "a@example.com", 1)
	b := mustPerson(t, "B", "b@example.com", 3)

	assert.Negative(t, ComparePriority(a, b))
	assert.Positive(t, ComparePriority(b, a))
	assert.Equal(t, 3, b.Rank())
}

func TestCompany_AddPersonToCompany(t *testing.T) {
	p1 := mustPerson(t, "Person One", "one@example.com", 0)
	p2 := mustPerson(t, "Person Two", "two@example.com", 0)
	c, err := NewCompany("Google", CompanyDetails{Industry: "Technology"}, p1)
	require.NoError(t, err)

	extended := c.AddPersonToCompany(p2)

	require.Len(t, extended.Persons(), 2)
	assert.True(t, extended.Persons()[0].Equals(p1))
	assert.True(t, extended.Persons()[1].Equals(p2))
	assert.Len(t, c.Persons(), 1, "original roster must not change")
	assert.True(t, c.IsSame(extended))
	assert.False(t, c.Equals(extended))
}

func TestCompany_RosterAllowsDuplicates(t *testing.T) {
	p := mustPerson(t, "Person One", "one@example.com", 0)
	c, err := NewNamedCompany("Acme")
	require.NoError(t, err)

	c = c.AddPersonToCompany(p).AddPersonToCompany(p)

	assert.Equal(t, 2, c.PersonCount())
}

func TestCompany_AppendDoesNotAlias(t *testing.T) {
	p1 := mustPerson(t, "One", "one@example.com", 0)
	p2 := mustPerson(t, "Two", "two@example.com", 0)
	p3 := mustPerson(t, "Three", "three@example.com", 0)
	base, err := NewNamedCompany("Acme")
	require.NoError(t, err)
	base = base.AddPersonToCompany(p1)

	left := base.AddPersonToCompany(p2)
	right := base.AddPersonToCompany(p3)

	assert.Equal(t, "Two", left.Persons()[1].Key())
	assert.Equal(t, "Three", right.Persons()[1].Key())
}

func TestCompany_ReplacePersonAt(t *testing.T) {
	p1 := mustPerson(t, "One", "one@example.com", 0)
	p2 := mustPerson(t, "Two", "two@example.com", 0)
	c, err := NewNamedCompany("Acme")
	require.NoError(t, err)
	c = c.AddPersonToCompany(p1)

	replaced, err := c.ReplacePersonAt(0, p2)
	require.NoError(t, err)
	assert.Equal(t, "Two", replaced.Persons()[0].Key())
	assert.Equal(t, "One", c.Persons()[0].Key())

	_, err = c.ReplacePersonAt(1, p2)
	assert.ErrorIs(t, err, e.ErrIndexOutOfRange)
}

func TestNewCompany_BlankName(t *testing.T) {
	_, err := NewNamedCompany("   ")
	assert.ErrorIs(t, err, e.ErrValidation)
}

func TestPersonUpdate_Apply(t *testing.T) {
	p := mustPerson(t, "NewName", "new@example.com", 2, "friend")
	phone, err := NewPersonPhone("98765432")
	require.NoError(t, err)

	update := PersonUpdate{Phone: &phone}
	require.True(t, update.IsAnyFieldEdited())
	edited := update.Apply(p)

	assert.Equal(t, "98765432", edited.Phone().String())
	assert.True(t, edited.IsSame(p))
	assert.Equal(t, p.Handle(), edited.Handle())
	assert.Equal(t, p.Email(), edited.Email())
	assert.Equal(t, p.Tags(), edited.Tags())
	assert.Empty(t, p.Phone().String(), "receiver must not change")

	assert.False(t, PersonUpdate{}.IsAnyFieldEdited())
}

func TestCompanyUpdate_Apply(t *testing.T) {
	p := mustPerson(t, "One", "one@example.com", 0)
	c, err := NewCompany("Acme", CompanyDetails{Industry: "Retail"}, p)
	require.NoError(t, err)

	edited, err := CompanyUpdate{Location: utils.Ptr("Berlin")}.Apply(c)
	require.NoError(t, err)
	assert.Equal(t, "Berlin", edited.Location())
	assert.Equal(t, "Retail", edited.Industry())
	assert.Equal(t, 1, edited.PersonCount())

	_, err = CompanyUpdate{Name: utils.Ptr("")}.Apply(c)
	assert.ErrorIs(t, err, e.ErrValidation)
	assert.False(t, CompanyUpdate{}.IsAnyFieldEdited())
}
