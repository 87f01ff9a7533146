package events

import (
	"time"

	"github.com/gartstein/connectify/internal/addressbook/models"
	"github.com/gartstein/connectify/internal/addressbook/store"
)

type EventType string

const (
	PersonAdded     EventType = "person_added"
	PersonRemoved   EventType = "person_removed"
	PersonUpdated   EventType = "person_updated"
	PersonsReset    EventType = "persons_reset"
	PersonsSorted   EventType = "persons_sorted"
	CompanyAdded    EventType = "company_added"
	CompanyRemoved  EventType = "company_removed"
	CompanyUpdated  EventType = "company_updated"
	CompaniesReset  EventType = "companies_reset"
	CompaniesSorted EventType = "companies_sorted"
)

// PersonPayload is the wire form of a Person.
type PersonPayload struct {
	Handle   string   `json:"handle"`
	Name     string   `json:"name"`
	Phone    string   `json:"phone,omitempty"`
	Email    string   `json:"email"`
	Address  string   `json:"address,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Priority int      `json:"priority"`
}

// CompanyPayload is the wire form of a Company.
type CompanyPayload struct {
	Handle      string          `json:"handle"`
	Name        string          `json:"name"`
	Industry    string          `json:"industry,omitempty"`
	Location    string          `json:"location,omitempty"`
	Description string          `json:"description,omitempty"`
	Website     string          `json:"website,omitempty"`
	Email       string          `json:"email,omitempty"`
	Phone       string          `json:"phone,omitempty"`
	Address     string          `json:"address,omitempty"`
	Persons     []PersonPayload `json:"persons,omitempty"`
}

// Event is a change notification published for downstream consumers.
// Key is the business identity of the affected record, empty for whole-list changes.
type Event struct {
	Type       EventType       `json:"type"`
	Key        string          `json:"key,omitempty"`
	Index      int             `json:"index"`
	Person     *PersonPayload  `json:"person,omitempty"`
	Previous   *PersonPayload  `json:"previous,omitempty"`
	Company    *CompanyPayload `json:"company,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

func NewPersonPayload(p models.Person) *PersonPayload {
	tags := p.Tags()
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name()
	}
	return &PersonPayload{
		Handle:   p.Handle().String(),
		Name:     p.Name().String(),
		Phone:    p.Phone().String(),
		Email:    p.Email().String(),
		Address:  p.Address().String(),
		Tags:     names,
		Priority: p.Priority().Value(),
	}
}

func NewCompanyPayload(c models.Company) *CompanyPayload {
	roster := c.Persons()
	persons := make([]PersonPayload, len(roster))
	for i, p := range roster {
		persons[i] = *NewPersonPayload(p)
	}
	d := c.Details()
	return &CompanyPayload{
		Handle:      c.Handle().String(),
		Name:        c.Name(),
		Industry:    d.Industry,
		Location:    d.Location,
		Description: d.Description,
		Website:     d.Website,
		Email:       d.Email,
		Phone:       d.Phone,
		Address:     d.Address,
		Persons:     persons,
	}
}

// FromPersonChange converts a person list change into an Event.
func FromPersonChange(c store.Change[models.Person]) Event {
	ev := Event{Index: c.Index, OccurredAt: time.Now().UTC()}
	switch c.Kind {
	case store.Added:
		ev.Type, ev.Key, ev.Person = PersonAdded, c.New.Key(), NewPersonPayload(c.New)
	case store.Removed:
		ev.Type, ev.Key, ev.Person = PersonRemoved, c.Old.Key(), NewPersonPayload(c.Old)
	case store.Replaced:
		ev.Type, ev.Key = PersonUpdated, c.New.Key()
		ev.Person, ev.Previous = NewPersonPayload(c.New), NewPersonPayload(c.Old)
	case store.Sorted:
		ev.Type = PersonsSorted
	default:
		ev.Type = PersonsReset
	}
	return ev
}

// FromCompanyChange converts a company list change into an Event.
func FromCompanyChange(c store.Change[models.Company]) Event {
	ev := Event{Index: c.Index, OccurredAt: time.Now().UTC()}
	switch c.Kind {
	case store.Added:
		ev.Type, ev.Key, ev.Company = CompanyAdded, c.New.Key(), NewCompanyPayload(c.New)
	case store.Removed:
		ev.Type, ev.Key, ev.Company = CompanyRemoved, c.Old.Key(), NewCompanyPayload(c.Old)
	case store.Replaced:
		ev.Type, ev.Key, ev.Company = CompanyUpdated, c.New.Key(), NewCompanyPayload(c.New)
	case store.Sorted:
		ev.Type = CompaniesSorted
	default:
		ev.Type = CompaniesReset
	}
	return ev
}
