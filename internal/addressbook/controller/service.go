// Package controller implements the command layer for the address book:
// typed commands resolved against the displayed lists, and the service that
// runs them, persists the result and publishes change events.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"

	e "github.com/gartstein/connectify/internal/addressbook/errors"
	"github.com/gartstein/connectify/internal/addressbook/events"
	"github.com/gartstein/connectify/internal/addressbook/models"
	"github.com/gartstein/connectify/internal/addressbook/store"
	"go.uber.org/zap"
)

type EventProducer interface {
	Produce(event events.Event)
}

// SnapshotRepository defines the storage interface for address book snapshots.
type SnapshotRepository interface {
	SaveAddressBook(ctx context.Context, book store.ReadOnlyAddressBook) error
	LoadAddressBook(ctx context.Context) (*store.AddressBook, error)
}

// CommandService executes commands against a Model. Commands run one at a
// time: the unique lists check then act, so concurrent writers would race.
type CommandService struct {
	mu          sync.Mutex
	model       *Model
	repo        SnapshotRepository
	producer    EventProducer
	logger      *zap.Logger
	done        chan struct{}
	exitOnce    sync.Once
	unsubscribe []func()
}

// NewCommandService constructs a CommandService and subscribes the event
// producer to both lists of the model's address book.
func NewCommandService(model *Model, repo SnapshotRepository, producer EventProducer, logger *zap.Logger) *CommandService {
	s := &CommandService{
		model:    model,
		repo:     repo,
		producer: producer,
		logger:   logger.Named("command_service"),
		done:     make(chan struct{}),
	}
	book := model.AddressBook()
	s.unsubscribe = append(s.unsubscribe,
		book.PersonList().Subscribe(func(c store.Change[models.Person]) {
			s.producer.Produce(events.FromPersonChange(c))
		}),
		book.CompanyList().Subscribe(func(c store.Change[models.Company]) {
			s.producer.Produce(events.FromCompanyChange(c))
		}),
	)
	return s
}

// Load replaces the model's data with the stored snapshot.
func (s *CommandService) Load(ctx context.Context) error {
	book, err := s.repo.LoadAddressBook(ctx)
	if err != nil {
		return fmt.Errorf("failed to load address book: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.model.AddressBook().ResetData(book); err != nil {
		return fmt.Errorf("failed to reset address book: %w", err)
	}
	s.logger.Info("Address book loaded",
		zap.Int("persons", book.PersonList().Len()),
		zap.Int("companies", book.CompanyList().Len()),
	)
	return nil
}

// Execute runs cmd. After a successful mutating command the address book
// is saved; a save failure is returned even though the change stays in memory.
func (s *CommandService) Execute(ctx context.Context, cmd Command) (CommandResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := cmd.Execute(s.model)
	if err != nil {
		if isUserError(err) {
			s.logger.Info("Command rejected", zap.String("command", cmd.Name()), zap.Error(err))
		} else {
			s.logger.Error("Command failed", zap.String("command", cmd.Name()), zap.Error(err))
		}
		return CommandResult{}, err
	}

	if cmd.Mutates() {
		if err := s.repo.SaveAddressBook(ctx, s.model.AddressBook()); err != nil {
			s.logger.Error("Failed to save address book",
				zap.Error(err),
				zap.String("command", cmd.Name()),
			)
			return CommandResult{}, fmt.Errorf("failed to save address book: %w", err)
		}
	}

	if result.Exit {
		s.exitOnce.Do(func() { close(s.done) })
	}
	s.logger.Debug("Command executed", zap.String("command", cmd.Name()), zap.String("feedback", result.Feedback))
	return result, nil
}

// Done is closed once an exit command has run.
func (s *CommandService) Done() <-chan struct{} {
	return s.done
}

// Close detaches the service from the address book.
func (s *CommandService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, fn := range s.unsubscribe {
		fn()
	}
	s.unsubscribe = nil
}

func isUserError(err error) bool {
	for _, target := range []error{
		e.ErrValidation, e.ErrDuplicate, e.ErrDuplicateList, e.ErrNotFound,
		e.ErrIndexOutOfRange, e.ErrInvalidIndex, e.ErrNoFieldEdited,
		e.ErrMissingCompany, e.ErrInvalidCompanyIndex, e.ErrInvalidInput,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
