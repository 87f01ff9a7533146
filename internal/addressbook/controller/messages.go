package controller

const (
	MessageAddSuccess           = "New person added: %s"
	MessageAddCompanySuccess    = "New company added: %s"
	MessageDuplicatePerson      = "This person already exists in the address book"
	MessageDuplicateCompany     = "This company already exists in the address book"
	MessageDeletePersonSuccess  = "Deleted Person: %s"
	MessageDeleteCompanySuccess = "Deleted Company: %s"
	MessageInvalidPersonIndex   = "The person index provided is invalid"
	MessageInvalidCompanyIndex  = "The company index provided is invalid"
	MessageInvalidIndex         = "Index is not a non-zero unsigned integer"
	MessageNotEdited            = "At least one field to edit must be provided"
	MessageMissingCompany       = "A company index must be provided to edit a person in a company"
	MessageEditPersonSuccess    = "Edited Person: %s"
	MessageEditCompanySuccess   = "Edited Company: %s"
	MessageLinkSuccess          = "Added %s to company %s"
	MessageListEntities         = "Listed %d entities"
	MessageListCompanies        = "Listed %d companies"
	MessageListPeople           = "Listed %d people"
	MessageNoEntities           = "No entities found"
	MessageNoCompanies          = "No companies found"
	MessageNoPeople             = "No people found"
	MessageRankSuccess          = "Ranked companies by name and people by priority"
	MessageExit                 = "Exiting Connectify as requested ..."
)
