package db

import (
	"context"
	"errors"
	"testing"

	records "github.com/gartstein/connectify/internal/addressbook/db/models"
	e "github.com/gartstein/connectify/internal/addressbook/errors"
	"github.com/gartstein/connectify/internal/addressbook/models/modeltest"
	"github.com/gartstein/connectify/internal/addressbook/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupTestDB initializes an in-memory SQLite database for testing.
func SetupTestDB(t *testing.T) *Repository {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	repo, err := newRepository(db, zaptest.NewLogger(t))
	require.NoError(t, err, "failed to migrate test database")
	t.Cleanup(func() { _ = repo.Close() })

	return repo
}

func typicalAddressBook(t *testing.T) *store.AddressBook {
	t.Helper()
	alice := modeltest.Person(t, modeltest.PersonSpec{
		Name:     "Alice Pauline",
		Phone:    "94351253",
		Email:    "alice@example.com",
		Address:  "123, Jurong West Ave 6, #08-111",
		Tags:     []string{"friends", "colleagues"},
		Priority: 3,
	})
	benson := modeltest.Person(t, modeltest.PersonSpec{
		Name:  "Benson Meier",
		Email: "johnd@example.com",
	})

	book := store.NewAddressBook()
	require.NoError(t, book.AddPerson(alice))
	require.NoError(t, book.AddPerson(benson))
	require.NoError(t, book.AddCompany(modeltest.Company(t, "Shopee", alice, benson, alice)))
	require.NoError(t, book.AddCompany(modeltest.Company(t, "Google")))
	return book
}

// TestSaveAndLoad tests that a saved snapshot loads back unchanged.
func TestSaveAndLoad(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()
	book := typicalAddressBook(t)

	require.NoError(t, repo.SaveAddressBook(ctx, book), "SaveAddressBook should succeed")

	loaded, err := repo.LoadAddressBook(ctx)
	require.NoError(t, err, "LoadAddressBook should succeed")
	assert.True(t, loaded.Equals(book), "loaded address book should equal the saved one")

	// Order and handles survive the round trip.
	for i, p := range book.PersonList().All() {
		got := loaded.PersonList().At(i)
		assert.Equal(t, p.Key(), got.Key())
		assert.Equal(t, p.Handle(), got.Handle())
	}
	shopee := loaded.CompanyList().At(0)
	require.Equal(t, 3, shopee.PersonCount(), "roster duplicates should be kept")
	assert.Equal(t, "Alice Pauline", shopee.Persons()[0].Key())
	assert.Equal(t, "Benson Meier", shopee.Persons()[1].Key())
	assert.Equal(t, "Alice Pauline", shopee.Persons()[2].Key())
	assert.Equal(t, book.CompanyList().At(0).Handle(), shopee.Handle())
}

// TestSaveReplacesSnapshot verifies that saving overwrites earlier data.
func TestSaveReplacesSnapshot(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()
	book := typicalAddressBook(t)
	require.NoError(t, repo.SaveAddressBook(ctx, book))

	require.NoError(t, book.RemovePerson(book.PersonList().At(0)))
	require.NoError(t, book.RemoveCompany(book.CompanyList().At(0)))
	require.NoError(t, repo.SaveAddressBook(ctx, book))

	loaded, err := repo.LoadAddressBook(ctx)
	require.NoError(t, err)
	assert.True(t, loaded.Equals(book))

	var rosterRows int64
	require.NoError(t, repo.db.Model(&records.RosterRecord{}).Count(&rosterRows).Error)
	assert.Zero(t, rosterRows, "roster rows of removed companies should be gone")
}

// TestLoadEmpty checks that an empty database yields an empty address book.
func TestLoadEmpty(t *testing.T) {
	repo := SetupTestDB(t)

	loaded, err := repo.LoadAddressBook(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.PersonList().Len())
	assert.Equal(t, 0, loaded.CompanyList().Len())
}

// TestLoadRejectsInvalidRows ensures stored data passes validation on load.
func TestLoadRejectsInvalidRows(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.db.Create(&records.PersonRecord{
		ID:    uuid.New(),
		Name:  "Broken Person",
		Email: "not-an-email",
	}).Error)

	_, err := repo.LoadAddressBook(ctx)
	assert.ErrorIs(t, err, e.ErrValidation)
	assert.Contains(t, err.Error(), "Broken Person")
}

// TestWithTransaction ensures a failed transaction leaves no trace.
func TestWithTransaction(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := repo.WithTransaction(ctx, func(txRepo *Repository) error {
		if err := txRepo.SaveAddressBook(ctx, typicalAddressBook(t)); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	loaded, err := repo.LoadAddressBook(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.PersonList().Len(), "rolled back data should not be visible")
}

// TestNewRepository covers driver selection.
func TestNewRepository(t *testing.T) {
	t.Run("sqlite", func(t *testing.T) {
		repo, err := NewRepository(&Config{Driver: DriverSQLite}, nil)
		require.NoError(t, err)
		defer repo.Close()

		require.NoError(t, repo.SaveAddressBook(context.Background(), typicalAddressBook(t)))
	})

	t.Run("unsupported driver", func(t *testing.T) {
		_, err := NewRepository(&Config{Driver: "mysql"}, nil)
		assert.ErrorContains(t, err, "unsupported database driver")
	})
}
