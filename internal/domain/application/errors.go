package application

import "errors"

var (
	ErrNotFound              = errors.New("application not found")
	ErrInvalidStatus         = errors.New("invalid status")
	ErrInvalidTransition     = errors.New("status transition not allowed")
	ErrDuplicateRegistration = errors.New("an application with this medical council registration number already exists")
	ErrDistrictMismatch      = errors.New("district does not belong to the selected state")
	ErrMissingDocument       = errors.New("required document missing")
)
