package db

import (
	"context"
	"fmt"
	"strings"

	records "github.com/gartstein/connectify/internal/addressbook/db/models"
	"github.com/gartstein/connectify/internal/addressbook/models"
	"github.com/gartstein/connectify/internal/addressbook/store"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const tagSeparator = ","

type Repository struct {
	db     *gorm.DB
	logger *zap.Logger
}

type Config struct {
	Driver     string
	Host       string
	Port       int
	User       string
	Password   string
	DBName     string
	SSLMode    string
	SQLitePath string
}

func (c *Config) dialector() (gorm.Dialector, error) {
	switch c.Driver {
	case DriverPostgres, "":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
		return postgres.Open(dsn), nil
	case DriverSQLite:
		path := c.SQLitePath
		if path == "" {
			path = ":memory:"
		}
		return sqlite.Open(path), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", c.Driver)
	}
}

// NewRepository opens the configured database and migrates the snapshot tables.
// A nil logger disables logging.
func NewRepository(cfg *Config, logger *zap.Logger) (*Repository, error) {
	dialector, err := cfg.dialector()
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if cfg.Driver == DriverSQLite {
		// sqlite allows a single writer, and each :memory: connection is its own database.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return newRepository(db, logger)
}

func newRepository(db *gorm.DB, logger *zap.Logger) (*Repository, error) {
	if err := db.AutoMigrate(records.All()...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{db: db, logger: logger.Named("snapshot_repository")}, nil
}

// SaveAddressBook replaces the stored snapshot with book.
func (r *Repository) SaveAddressBook(ctx context.Context, book store.ReadOnlyAddressBook) error {
	persons := make([]records.PersonRecord, 0, book.PersonList().Len())
	for i, p := range book.PersonList().All() {
		persons = append(persons, personRecord(i, p))
	}
	companies := make([]records.CompanyRecord, 0, book.CompanyList().Len())
	for i, c := range book.CompanyList().All() {
		companies = append(companies, companyRecord(i, c))
	}

	err := r.WithTransaction(ctx, func(repo *Repository) error {
		// Roster rows first: they reference companies.
		for _, model := range []any{&records.RosterRecord{}, &records.CompanyRecord{}, &records.PersonRecord{}} {
			if err := repo.db.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}
		if len(persons) > 0 {
			if err := repo.db.Create(&persons).Error; err != nil {
				return err
			}
		}
		if len(companies) > 0 {
			if err := repo.db.Create(&companies).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	r.logger.Debug("Snapshot saved",
		zap.Int("persons", len(persons)),
		zap.Int("companies", len(companies)),
	)
	return nil
}

// LoadAddressBook rebuilds the stored snapshot. Stored values pass through
// the same validation as user input.
func (r *Repository) LoadAddressBook(ctx context.Context) (*store.AddressBook, error) {
	var personRows []records.PersonRecord
	if err := r.db.WithContext(ctx).Order("position").Find(&personRows).Error; err != nil {
		return nil, fmt.Errorf("failed to load persons: %w", err)
	}
	var companyRows []records.CompanyRecord
	err := r.db.WithContext(ctx).
		Preload("Roster", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Order("position").
		Find(&companyRows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load companies: %w", err)
	}

	persons := make([]models.Person, 0, len(personRows))
	for _, row := range personRows {
		p, err := toPerson(row.Name, row.Phone, row.Email, row.Address, row.Tags, row.Priority)
		if err != nil {
			return nil, fmt.Errorf("stored person %q: %w", row.Name, err)
		}
		persons = append(persons, p.WithHandle(row.ID))
	}

	companies := make([]models.Company, 0, len(companyRows))
	for _, row := range companyRows {
		c, err := toCompany(row)
		if err != nil {
			return nil, fmt.Errorf("stored company %q: %w", row.Name, err)
		}
		companies = append(companies, c)
	}

	book := store.NewAddressBook()
	if err := book.SetPersons(persons); err != nil {
		return nil, err
	}
	if err := book.SetCompanies(companies); err != nil {
		return nil, err
	}
	r.logger.Debug("Snapshot loaded",
		zap.Int("persons", len(persons)),
		zap.Int("companies", len(companies)),
	)
	return book, nil
}

func (r *Repository) WithTransaction(ctx context.Context, fn func(repo *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx, logger: r.logger})
	})
}

func (r *Repository) Close() error {
	db, err := r.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

func joinTags(tags []models.Tag) string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name())
	}
	return strings.Join(names, tagSeparator)
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, tagSeparator)
}

func personRecord(position int, p models.Person) records.PersonRecord {
	return records.PersonRecord{
		ID:       p.Handle(),
		Position: position,
		Name:     p.Name().String(),
		Phone:    p.Phone().String(),
		Email:    p.Email().String(),
		Address:  p.Address().String(),
		Tags:     joinTags(p.Tags()),
		Priority: p.Priority().Value(),
	}
}

func companyRecord(position int, c models.Company) records.CompanyRecord {
	d := c.Details()
	roster := make([]records.RosterRecord, 0, c.PersonCount())
	for i, p := range c.Persons() {
		roster = append(roster, records.RosterRecord{
			CompanyID: c.Handle(),
			Position:  i,
			PersonID:  p.Handle(),
			Name:      p.Name().String(),
			Phone:     p.Phone().String(),
			Email:     p.Email().String(),
			Address:   p.Address().String(),
			Tags:      joinTags(p.Tags()),
			Priority:  p.Priority().Value(),
		})
	}
	return records.CompanyRecord{
		ID:          c.Handle(),
		Position:    position,
		Name:        c.Name(),
		Industry:    d.Industry,
		Location:    d.Location,
		Description: d.Description,
		Website:     d.Website,
		Email:       d.Email,
		Phone:       d.Phone,
		Address:     d.Address,
		Roster:      roster,
	}
}

func toPerson(rawName, rawPhone, rawEmail, rawAddress, rawTags string, rawPriority int) (models.Person, error) {
	name, err := models.NewPersonName(rawName)
	if err != nil {
		return models.Person{}, err
	}
	phone, err := models.NewPersonPhone(rawPhone)
	if err != nil {
		return models.Person{}, err
	}
	email, err := models.NewPersonEmail(rawEmail)
	if err != nil {
		return models.Person{}, err
	}
	address, err := models.NewPersonAddress(rawAddress)
	if err != nil {
		return models.Person{}, err
	}
	tags, err := models.NewTags(splitTags(rawTags)...)
	if err != nil {
		return models.Person{}, err
	}
	priority, err := models.NewPersonPriority(rawPriority)
	if err != nil {
		return models.Person{}, err
	}
	return models.NewPerson(name, phone, email, address, tags, priority), nil
}

func toCompany(row records.CompanyRecord) (models.Company, error) {
	persons := make([]models.Person, 0, len(row.Roster))
	for _, entry := range row.Roster {
		p, err := toPerson(entry.Name, entry.Phone, entry.Email, entry.Address, entry.Tags, entry.Priority)
		if err != nil {
			return models.Company{}, fmt.Errorf("roster entry %d: %w", entry.Position, err)
		}
		persons = append(persons, p.WithHandle(entry.PersonID))
	}
	c, err := models.NewCompany(row.Name, models.CompanyDetails{
		Industry:    row.Industry,
		Location:    row.Location,
		Description: row.Description,
		Website:     row.Website,
		Email:       row.Email,
		Phone:       row.Phone,
		Address:     row.Address,
	}, persons...)
	if err != nil {
		return models.Company{}, err
	}
	return c.WithHandle(row.ID), nil
}
