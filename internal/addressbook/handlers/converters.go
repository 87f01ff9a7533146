package handlers

import (
	"errors"
	"fmt"
	"math"

	"github.com/gartstein/connectify/internal/addressbook/controller"
	e "github.com/gartstein/connectify/internal/addressbook/errors"
	"github.com/gartstein/connectify/internal/addressbook/models"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// Request field names.
const (
	fieldName         = "name"
	fieldPhone        = "phone"
	fieldEmail        = "email"
	fieldAddress      = "address"
	fieldTags         = "tags"
	fieldPriority     = "priority"
	fieldIndustry     = "industry"
	fieldLocation     = "location"
	fieldDescription  = "description"
	fieldWebsite      = "website"
	fieldIndex        = "index"
	fieldCompanyIndex = "company_index"
	fieldPersonIndex  = "person_index"
)

func invalidField(key, want string) error {
	return fmt.Errorf("%w: field %q must be %s", e.ErrInvalidInput, key, want)
}

// stringField returns the string under key and whether it was present.
func stringField(req *structpb.Struct, key string) (string, bool, error) {
	v, ok := req.GetFields()[key]
	if !ok {
		return "", false, nil
	}
	s, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", true, invalidField(key, "a string")
	}
	return s.StringValue, true, nil
}

func requiredString(req *structpb.Struct, key string) (string, error) {
	s, ok, err := stringField(req, key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: field %q is required", e.ErrInvalidInput, key)
	}
	return s, nil
}

// intField returns the integer under key. JSON numbers arrive as doubles,
// so fractional values are rejected.
func intField(req *structpb.Struct, key string) (int, bool, error) {
	v, ok := req.GetFields()[key]
	if !ok {
		return 0, false, nil
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok || n.NumberValue != math.Trunc(n.NumberValue) ||
		n.NumberValue > math.MaxInt32 || n.NumberValue < math.MinInt32 {
		return 0, true, invalidField(key, "an integer")
	}
	return int(n.NumberValue), true, nil
}

// requiredIndex reads a one-based index. A missing or non-integer value is
// reported as invalidErr, the same way the commands report a bad index.
func requiredIndex(req *structpb.Struct, key string, invalidErr error) (int, error) {
	n, ok, err := intField(req, key)
	if err != nil || !ok {
		return 0, fmt.Errorf("%w: field %q must be a non-zero unsigned integer", invalidErr, key)
	}
	return n, nil
}

func stringsField(req *structpb.Struct, key string) ([]string, bool, error) {
	v, ok := req.GetFields()[key]
	if !ok {
		return nil, false, nil
	}
	list, ok := v.GetKind().(*structpb.Value_ListValue)
	if !ok {
		return nil, true, invalidField(key, "a list of strings")
	}
	out := make([]string, 0, len(list.ListValue.GetValues()))
	for _, item := range list.ListValue.GetValues() {
		s, ok := item.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, true, invalidField(key, "a list of strings")
		}
		out = append(out, s.StringValue)
	}
	return out, true, nil
}

// priorityField accepts a number or a numeric string.
func priorityField(req *structpb.Struct) (models.PersonPriority, bool, error) {
	v, ok := req.GetFields()[fieldPriority]
	if !ok {
		return models.PersonPriority{}, false, nil
	}
	if s, isString := v.GetKind().(*structpb.Value_StringValue); isString {
		p, err := models.ParsePersonPriority(s.StringValue)
		return p, true, err
	}
	n, _, err := intField(req, fieldPriority)
	if err != nil {
		return models.PersonPriority{}, true, err
	}
	p, err := models.NewPersonPriority(n)
	return p, true, err
}

// requestToPerson builds a Person from an add request. Name and email are
// required; the other fields default to not provided.
func requestToPerson(req *structpb.Struct) (models.Person, error) {
	rawName, err := requiredString(req, fieldName)
	if err != nil {
		return models.Person{}, err
	}
	rawEmail, err := requiredString(req, fieldEmail)
	if err != nil {
		return models.Person{}, err
	}
	rawPhone, _, err := stringField(req, fieldPhone)
	if err != nil {
		return models.Person{}, err
	}
	rawAddress, _, err := stringField(req, fieldAddress)
	if err != nil {
		return models.Person{}, err
	}
	rawTags, _, err := stringsField(req, fieldTags)
	if err != nil {
		return models.Person{}, err
	}

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
	tags, err := models.NewTags(rawTags...)
	if err != nil {
		return models.Person{}, err
	}
	priority, ok, err := priorityField(req)
	if err != nil {
		return models.Person{}, err
	}
	if !ok {
		priority, _ = models.NewPersonPriority(models.DefaultPriority)
	}
	return models.NewPerson(name, phone, email, address, tags, priority), nil
}

// requestToPersonUpdate collects the person fields present in req.
func requestToPersonUpdate(req *structpb.Struct) (*models.PersonUpdate, error) {
	var u models.PersonUpdate

	if raw, ok, err := stringField(req, fieldName); err != nil {
		return nil, err
	} else if ok {
		name, err := models.NewPersonName(raw)
		if err != nil {
			return nil, err
		}
		u.Name = &name
	}
	if raw, ok, err := stringField(req, fieldPhone); err != nil {
		return nil, err
	} else if ok {
		phone, err := models.NewPersonPhone(raw)
		if err != nil {
			return nil, err
		}
		u.Phone = &phone
	}
	if raw, ok, err := stringField(req, fieldEmail); err != nil {
		return nil, err
	} else if ok {
		email, err := models.NewPersonEmail(raw)
		if err != nil {
			return nil, err
		}
		u.Email = &email
	}
	if raw, ok, err := stringField(req, fieldAddress); err != nil {
		return nil, err
	} else if ok {
		address, err := models.NewPersonAddress(raw)
		if err != nil {
			return nil, err
		}
		u.Address = &address
	}
	if raw, ok, err := stringsField(req, fieldTags); err != nil {
		return nil, err
	} else if ok {
		tags, err := models.NewTags(raw...)
		if err != nil {
			return nil, err
		}
		u.Tags = &tags
	}
	if priority, ok, err := priorityField(req); err != nil {
		return nil, err
	} else if ok {
		u.Priority = &priority
	}
	return &u, nil
}

func requestToCompanyDetails(req *structpb.Struct) (models.CompanyDetails, error) {
	var d models.CompanyDetails
	for key, dst := range map[string]*string{
		fieldIndustry:    &d.Industry,
		fieldLocation:    &d.Location,
		fieldDescription: &d.Description,
		fieldWebsite:     &d.Website,
		fieldEmail:       &d.Email,
		fieldPhone:       &d.Phone,
		fieldAddress:     &d.Address,
	} {
		s, _, err := stringField(req, key)
		if err != nil {
			return models.CompanyDetails{}, err
		}
		*dst = s
	}
	return d, nil
}

func requestToCompany(req *structpb.Struct) (models.Company, error) {
	name, err := requiredString(req, fieldName)
	if err != nil {
		return models.Company{}, err
	}
	details, err := requestToCompanyDetails(req)
	if err != nil {
		return models.Company{}, err
	}
	return models.NewCompany(name, details)
}

// requestToCompanyUpdate collects the company fields present in req.
func requestToCompanyUpdate(req *structpb.Struct) (*models.CompanyUpdate, error) {
	var u models.CompanyUpdate
	for key, dst := range map[string]**string{
		fieldName:        &u.Name,
		fieldIndustry:    &u.Industry,
		fieldLocation:    &u.Location,
		fieldDescription: &u.Description,
		fieldWebsite:     &u.Website,
		fieldEmail:       &u.Email,
		fieldPhone:       &u.Phone,
		fieldAddress:     &u.Address,
	} {
		s, ok, err := stringField(req, key)
		if err != nil {
			return nil, err
		}
		if ok {
			*dst = &s
		}
	}
	return &u, nil
}

func personToMap(p models.Person) map[string]any {
	tags := make([]any, 0, len(p.Tags()))
	for _, t := range p.Tags() {
		tags = append(tags, t.Name())
	}
	return map[string]any{
		"handle":      p.Handle().String(),
		fieldName:     p.Name().String(),
		fieldPhone:    p.Phone().String(),
		fieldEmail:    p.Email().String(),
		fieldAddress:  p.Address().String(),
		fieldTags:     tags,
		fieldPriority: p.Priority().Value(),
	}
}

func companyToMap(c models.Company) map[string]any {
	persons := make([]any, 0, c.PersonCount())
	for _, p := range c.Persons() {
		persons = append(persons, personToMap(p))
	}
	return map[string]any{
		"handle":         c.Handle().String(),
		fieldName:        c.Name(),
		fieldIndustry:    c.Industry(),
		fieldLocation:    c.Location(),
		fieldDescription: c.Description(),
		fieldWebsite:     c.Website(),
		fieldEmail:       c.Email(),
		fieldPhone:       c.Phone(),
		fieldAddress:     c.Address(),
		"persons":        persons,
	}
}

// resultToStruct converts a command result into the response message.
func resultToStruct(result controller.CommandResult) (*structpb.Struct, error) {
	out := map[string]any{
		"feedback": result.Feedback,
		"exit":     result.Exit,
	}
	if result.Person != nil {
		out["person"] = personToMap(*result.Person)
	}
	if result.Company != nil {
		out["company"] = companyToMap(*result.Company)
	}
	if result.Persons != nil {
		persons := make([]any, 0, len(result.Persons))
		for _, p := range result.Persons {
			persons = append(persons, personToMap(p))
		}
		out["persons"] = persons
	}
	if result.Companies != nil {
		companies := make([]any, 0, len(result.Companies))
		for _, c := range result.Companies {
			companies = append(companies, companyToMap(c))
		}
		out["companies"] = companies
	}
	return structpb.NewStruct(out)
}

// mapServiceError maps domain errors to appropriate gRPC status codes.
func (h *AddressBookHandler) mapServiceError(err error) error {
	switch {
	case errors.Is(err, e.ErrValidation), errors.Is(err, e.ErrInvalidInput),
		errors.Is(err, e.ErrInvalidIndex), errors.Is(err, e.ErrInvalidCompanyIndex):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, e.ErrNoFieldEdited), errors.Is(err, e.ErrMissingCompany):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, e.ErrDuplicate), errors.Is(err, e.ErrDuplicateList):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, e.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, e.ErrIndexOutOfRange):
		return status.Error(codes.OutOfRange, err.Error())
	default:
		h.logger.Error("Internal server error", zap.Error(err))
		return status.Error(codes.Internal, fmt.Sprintf("internal server error: %v", err))
	}
}
