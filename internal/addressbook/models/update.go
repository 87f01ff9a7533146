package models

import (
	"fmt"
	"strings"

	e "github.com/gartstein/connectify/internal/addressbook/errors"
)

// PersonUpdate represents the fields that can be edited on a Person.
// Pointer types are used to allow partial updates.
type PersonUpdate struct {
	Name     *PersonName
	Phone    *PersonPhone
	Email    *PersonEmail
	Address  *PersonAddress
	Tags     *[]Tag
	Priority *PersonPriority
}

// IsAnyFieldEdited reports whether at least one field is set.
func (u PersonUpdate) IsAnyFieldEdited() bool {
	return u.Name != nil || u.Phone != nil || u.Email != nil ||
		u.Address != nil || u.Tags != nil || u.Priority != nil
}

// Apply overlays the supplied fields onto p. The result keeps p's handle.
func (u PersonUpdate) Apply(p Person) Person {
	if u.Name != nil {
		p.name = *u.Name
	}
	if u.Phone != nil {
		p.phone = *u.Phone
	}
	if u.Email != nil {
		p.email = *u.Email
	}
	if u.Address != nil {
		p.address = *u.Address
	}
	if u.Tags != nil {
		p.tags = tagSet(*u.Tags)
	}
	if u.Priority != nil {
		p.priority = *u.Priority
	}
	return p
}

// CompanyUpdate represents the fields that can be edited on a Company.
type CompanyUpdate struct {
	Name        *string
	Industry    *string
	Location    *string
	Description *string
	Website     *string
	Email       *string
	Phone       *string
	Address     *string
}

func (u CompanyUpdate) IsAnyFieldEdited() bool {
	return u.Name != nil || u.Industry != nil || u.Location != nil || u.Description != nil ||
		u.Website != nil || u.Email != nil || u.Phone != nil || u.Address != nil
}

// Apply overlays the supplied fields onto c. The roster and handle are kept.
func (u CompanyUpdate) Apply(c Company) (Company, error) {
	if u.Name != nil {
		if strings.TrimSpace(*u.Name) == "" {
			return Company{}, fmt.Errorf("%w: %s", e.ErrValidation, MessageCompanyNameConstraints)
		}
		c.name = *u.Name
	}
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&c.details.Industry, u.Industry)
	set(&c.details.Location, u.Location)
	set(&c.details.Description, u.Description)
	set(&c.details.Website, u.Website)
	set(&c.details.Email, u.Email)
	set(&c.details.Phone, u.Phone)
	set(&c.details.Address, u.Address)
	return c, nil
}
