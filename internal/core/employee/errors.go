package employee

import "errors"

var (
	ErrInvalidID        = errors.New("employee: invalid id")
	ErrInvalidCompanyID = errors.New("employee: invalid company id")
	ErrInvalidName      = errors.New("employee: invalid name")
	ErrInvalidRole      = errors.New("employee: invalid role")
	ErrInvalidCPF       = errors.New("employee: invalid cpf")
	ErrEmployeeNotFound = errors.New("employee: not found")
	ErrCompanyNotFound  = errors.New("employee: company not found")
	ErrCPFAlreadyExists = errors.New("employee: cpf already exists")
)
