package models

import (
	"fmt"
	"regexp"
	"strconv"

	e "github.com/gartstein/connectify/internal/addressbook/errors"
)

const (
	MessageNameConstraints = "Names should only contain alphanumeric characters and spaces, " +
		"and it should not be blank"
	MessagePhoneConstraints = "Phone numbers should only contain digits, " +
		"and they should be between 3 and 15 digits long"
	MessageEmailConstraints = "Emails should be of the format local-part@domain. " +
		"The local-part may only contain alphanumeric characters and the special characters +_.- " +
		"and may not start or end with a special character. " +
		"The domain is made of labels separated by periods; each label starts and ends with an " +
		"alphanumeric character, may contain hyphens, and the last label is at least 2 characters long"
	MessageAddressConstraints  = "Addresses can take any values, but they should not start with whitespace"
	MessageTagConstraints      = "Tags names should be alphanumeric"
	MessagePriorityConstraints = "Priority should be a whole number between 0 and 5"
)

const (
	MinPriority     = 0
	MaxPriority     = 5
	DefaultPriority = MinPriority
)

var (
	namePattern    = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} ]*$`)
	phonePattern   = regexp.MustCompile(`^\d{3,15}$`)
	addressPattern = regexp.MustCompile(`^\S.*$`)
	tagPattern     = regexp.MustCompile(`^[\p{L}\p{N}]+$`)
	emailPattern   = regexp.MustCompile(
		`^[A-Za-z0-9](?:[A-Za-z0-9+_.-]*[A-Za-z0-9])?` +
			`@(?:[A-Za-z0-9](?:[A-Za-z0-9-]*[A-Za-z0-9])?\.)*` +
			`[A-Za-z0-9][A-Za-z0-9-]*[A-Za-z0-9]$`)
)

func invalid(constraint string) error {
	return fmt.Errorf("%w: %s", e.ErrValidation, constraint)
}

// PersonName is the business identity of a Person.
type PersonName struct {
	value string
}

// NewPersonName validates raw and returns a PersonName.
func NewPersonName(raw string) (PersonName, error) {
	if !namePattern.MatchString(raw) {
		return PersonName{}, invalid(MessageNameConstraints)
	}
	return PersonName{value: raw}, nil
}

func (n PersonName) String() string { return n.value }

// PersonPhone is a phone number. The zero value means "not provided".
type PersonPhone struct {
	value string
}

// NewPersonPhone accepts an empty string or 3 to 15 digits.
func NewPersonPhone(raw string) (PersonPhone, error) {
	if raw != "" && !phonePattern.MatchString(raw) {
		return PersonPhone{}, invalid(MessagePhoneConstraints)
	}
	return PersonPhone{value: raw}, nil
}

func (p PersonPhone) String() string { return p.value }

// PersonEmail is a validated email address.
type PersonEmail struct {
	value string
}

func NewPersonEmail(raw string) (PersonEmail, error) {
	if !emailPattern.MatchString(raw) {
		return PersonEmail{}, invalid(MessageEmailConstraints)
	}
	return PersonEmail{value: raw}, nil
}

func (m PersonEmail) String() string { return m.value }

// PersonAddress is a postal address. The zero value means "not provided".
type PersonAddress struct {
	value string
}

func NewPersonAddress(raw string) (PersonAddress, error) {
	if raw != "" && !addressPattern.MatchString(raw) {
		return PersonAddress{}, invalid(MessageAddressConstraints)
	}
	return PersonAddress{value: raw}, nil
}

func (a PersonAddress) String() string { return a.value }

// PersonPriority ranks persons. It plays no part in identity.
type PersonPriority struct {
	value int
}

// NewPersonPriority validates that value lies in [MinPriority, MaxPriority].
func NewPersonPriority(value int) (PersonPriority, error) {
	if value < MinPriority || value > MaxPriority {
		return PersonPriority{}, invalid(MessagePriorityConstraints)
	}
	return PersonPriority{value: value}, nil
}

// ParsePersonPriority parses a decimal priority.
func ParsePersonPriority(raw string) (PersonPriority, error) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return PersonPriority{}, invalid(MessagePriorityConstraints)
	}
	return NewPersonPriority(v)
}

func (p PersonPriority) Value() int { return p.value }

// Compare returns -1, 0 or 1 as p is lower than, equal to or higher than other.
func (p PersonPriority) Compare(other PersonPriority) int {
	switch {
	case p.value < other.value:
		return -1
	case p.value > other.value:
		return 1
	default:
		return 0
	}
}

func (p PersonPriority) String() string { return strconv.Itoa(p.value) }

// Tag labels a Person.
type Tag struct {
	name string
}

func NewTag(raw string) (Tag, error) {
	if !tagPattern.MatchString(raw) {
		return Tag{}, invalid(MessageTagConstraints)
	}
	return Tag{name: raw}, nil
}

// NewTags validates every raw tag name.
func NewTags(raw ...string) ([]Tag, error) {
	tags := make([]Tag, 0, len(raw))
	for _, r := range raw {
		t, err := NewTag(r)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, nil
}

func (t Tag) Name() string { return t.name }

func (t Tag) String() string { return "[" + t.name + "]" }
