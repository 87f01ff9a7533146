package errors

import (
	"fmt"
)

var (
	ErrValidation      = fmt.Errorf("validation failed")
	ErrDuplicate       = fmt.Errorf("duplicate entity")
	ErrDuplicateList   = fmt.Errorf("list contains duplicate entities")
	ErrNotFound        = fmt.Errorf("not found")
	ErrIndexOutOfRange = fmt.Errorf("index out of range")
	ErrInvalidIndex    = fmt.Errorf("invalid index")
	ErrInvalidInput    = fmt.Errorf("invalid input")

	// Edit command precedence errors.
	ErrNoFieldEdited       = fmt.Errorf("no field edited")
	ErrMissingCompany      = fmt.Errorf("missing company reference")
	ErrInvalidCompanyIndex = fmt.Errorf("invalid company index")
)
