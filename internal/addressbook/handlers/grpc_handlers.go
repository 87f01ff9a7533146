package handlers

import (
	"context"
	"fmt"

	"github.com/gartstein/connectify/internal/addressbook/auth"
	"github.com/gartstein/connectify/internal/addressbook/controller"
	e "github.com/gartstein/connectify/internal/addressbook/errors"
	"github.com/gartstein/connectify/internal/pkg/utils"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// CommandExecutor runs address book commands.
type CommandExecutor interface {
	Execute(ctx context.Context, cmd controller.Command) (controller.CommandResult, error)
}

// AddressBookHandler provides gRPC methods for address book operations,
// turning requests into commands for a CommandExecutor.
type AddressBookHandler struct {
	service CommandExecutor
	logger  *zap.Logger
}

var _ AddressBookServer = (*AddressBookHandler)(nil)

// errNoFieldEdited is checked ahead of the indexes so an empty edit reports
// the same error whatever else the request carries.
var errNoFieldEdited = fmt.Errorf("%w: %s", e.ErrNoFieldEdited, controller.MessageNotEdited)

// NewAddressBookHandler constructs a new AddressBookHandler with the given service and logger.
func NewAddressBookHandler(service CommandExecutor, logger *zap.Logger) *AddressBookHandler {
	return &AddressBookHandler{
		service: service,
		logger:  logger.Named("grpc_handler"),
	}
}

// execute runs cmd and converts the outcome into a response or a status error.
func (h *AddressBookHandler) execute(ctx context.Context, cmd controller.Command) (*structpb.Struct, error) {
	if cmd.Mutates() {
		subject, _ := auth.Subject(ctx)
		h.logger.Debug("Executing command", zap.String("command", cmd.Name()), zap.String("subject", subject))
	}
	result, err := h.service.Execute(ctx, cmd)
	if err != nil {
		return nil, h.mapServiceError(err)
	}
	resp, err := resultToStruct(result)
	if err != nil {
		h.logger.Error("Failed to encode response", zap.String("command", cmd.Name()), zap.Error(err))
		return nil, status.Error(codes.Internal, "failed to encode response")
	}
	return resp, nil
}

// AddPerson adds a person built from the request fields.
func (h *AddressBookHandler) AddPerson(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	person, err := requestToPerson(req)
	if err != nil {
		return nil, h.mapServiceError(err)
	}
	return h.execute(ctx, controller.AddCommand{Person: person})
}

// DeletePerson deletes the displayed person at "index".
func (h *AddressBookHandler) DeletePerson(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	index, err := requiredIndex(req, fieldIndex, e.ErrInvalidIndex)
	if err != nil {
		return nil, h.mapServiceError(err)
	}
	return h.execute(ctx, controller.DeletePersonCommand{Index: index})
}

// EditPerson edits the displayed person at "index".
func (h *AddressBookHandler) EditPerson(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return h.editPerson(ctx, req, controller.EditPerson)
}

// EditCompanyPerson edits roster entry "index" of the company at "company_index".
func (h *AddressBookHandler) EditCompanyPerson(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return h.editPerson(ctx, req, controller.EditCompanyPerson)
}

func (h *AddressBookHandler) editPerson(ctx context.Context, req *structpb.Struct, target controller.EditTarget) (*structpb.Struct, error) {
	update, err := requestToPersonUpdate(req)
	if err != nil {
		return nil, h.mapServiceError(err)
	}
	if !update.IsAnyFieldEdited() {
		return nil, h.mapServiceError(errNoFieldEdited)
	}
	index, err := requiredIndex(req, fieldIndex, e.ErrInvalidIndex)
	if err != nil {
		return nil, h.mapServiceError(err)
	}
	cmd := controller.EditCommand{Target: target, Index: index, Person: update}
	if _, ok := req.GetFields()[fieldCompanyIndex]; ok {
		companyIndex, err := requiredIndex(req, fieldCompanyIndex, e.ErrInvalidCompanyIndex)
		if err != nil {
			return nil, h.mapServiceError(err)
		}
		cmd.CompanyIndex = utils.Ptr(companyIndex)
	}
	return h.execute(ctx, cmd)
}

// AddCompany adds a company built from the request fields.
func (h *AddressBookHandler) AddCompany(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	company, err := requestToCompany(req)
	if err != nil {
		return nil, h.mapServiceError(err)
	}
	return h.execute(ctx, controller.AddCompanyCommand{Company: company})
}

// DeleteCompany deletes the displayed company at "index".
func (h *AddressBookHandler) DeleteCompany(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	index, err := requiredIndex(req, fieldIndex, e.ErrInvalidIndex)
	if err != nil {
		return nil, h.mapServiceError(err)
	}
	return h.execute(ctx, controller.DeleteCompanyCommand{Index: index})
}

// EditCompany edits the displayed company at "index".
func (h *AddressBookHandler) EditCompany(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	update, err := requestToCompanyUpdate(req)
	if err != nil {
		return nil, h.mapServiceError(err)
	}
	if !update.IsAnyFieldEdited() {
		return nil, h.mapServiceError(errNoFieldEdited)
	}
	index, err := requiredIndex(req, fieldIndex, e.ErrInvalidIndex)
	if err != nil {
		return nil, h.mapServiceError(err)
	}
	return h.execute(ctx, controller.EditCommand{Target: controller.EditCompany, Index: index, Company: update})
}

// AddPersonToCompany appends the person at "person_index" to the company at "company_index".
func (h *AddressBookHandler) AddPersonToCompany(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	personIndex, err := requiredIndex(req, fieldPersonIndex, e.ErrInvalidIndex)
	if err != nil {
		return nil, h.mapServiceError(err)
	}
	companyIndex, err := requiredIndex(req, fieldCompanyIndex, e.ErrInvalidCompanyIndex)
	if err != nil {
		return nil, h.mapServiceError(err)
	}
	return h.execute(ctx, controller.AddPersonToCompanyCommand{PersonIndex: personIndex, CompanyIndex: companyIndex})
}

func (h *AddressBookHandler) ListEntities(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return h.execute(ctx, controller.ListCommand{})
}

func (h *AddressBookHandler) ListCompanies(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return h.execute(ctx, controller.ListCompaniesCommand{})
}

func (h *AddressBookHandler) ListPeople(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return h.execute(ctx, controller.ListPeopleCommand{})
}

// Rank sorts companies by name and persons by priority.
func (h *AddressBookHandler) Rank(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return h.execute(ctx, controller.RankCommand{})
}

// Exit ends the session; the process shuts down once the response is sent.
func (h *AddressBookHandler) Exit(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return h.execute(ctx, controller.ExitCommand{})
}
