package employee

import "time"

// CPFLength は CPF の固定長です。
const CPFLength = 11

// Employee は社員 (funcionario) エンティティです。CompanyID は所属会社への唯一の参照です。
type Employee struct {
	ID        int64
	CompanyID int64
	Name      string
	Role      string
	CPF       string
	CreatedAt time.Time
	UpdatedAt time.Time
}
