// Package models contains the persisted form of the address book,
// configured to work using GORM as the ORM.
package models

import (
	"time"

	"github.com/google/uuid"
)

// PersonRecord is a top-level person. Position preserves list order.
type PersonRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position  int       `gorm:"index;not null"`
	Name      string    `gorm:"uniqueIndex;not null"`
	Phone     string
	Email     string `gorm:"not null"`
	Address   string
	Tags      string
	Priority  int `gorm:"check:priority >= 0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CompanyRecord is a company and its roster.
type CompanyRecord struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position    int       `gorm:"index;not null"`
	Name        string    `gorm:"uniqueIndex;not null"`
	Industry    string
	Location    string
	Description string `gorm:"size:3000"`
	Website     string
	Email       string
	Phone       string
	Address     string
	Roster      []RosterRecord `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RosterRecord is one roster entry. A roster may hold the same person more
// than once, so entries carry their own key.
type RosterRecord struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	CompanyID uuid.UUID `gorm:"type:uuid;index;not null"`
	Position  int       `gorm:"not null"`
	PersonID  uuid.UUID `gorm:"type:uuid"`
	Name      string    `gorm:"not null"`
	Phone     string
	Email     string `gorm:"not null"`
	Address   string
	Tags      string
	Priority  int
}

// All lists every record type for migration.
func All() []any {
	return []any{&PersonRecord{}, &CompanyRecord{}, &RosterRecord{}}
}
