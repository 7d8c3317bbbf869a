package company

import "errors"

var (
	// ErrCompanyNotFound は会社が存在しない場合に返却されます。
	ErrCompanyNotFound = errors.New("company not found")
	// ErrCNPJAlreadyExists は CNPJ 重複時に返却されます。
	ErrCNPJAlreadyExists = errors.New("cnpj already exists")
	// ErrNameAlreadyExists は会社名重複時に返却されます。
	ErrNameAlreadyExists = errors.New("name already exists")
	// ErrInvalidName は会社名が空の場合に返却されます。
	ErrInvalidName = errors.New("invalid name")
	// ErrInvalidCNPJ は CNPJ が空、または 14 文字でない場合に返却されます。
	ErrInvalidCNPJ = errors.New("invalid cnpj")
	// ErrInvalidID は ID が正の整数でない場合に返却されます。
	ErrInvalidID = errors.New("invalid id")
)
