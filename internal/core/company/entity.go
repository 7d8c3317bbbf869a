package company

import "time"

// CNPJLength は CNPJ の固定長です。
const CNPJLength = 14

// Company は会社 (empresa) エンティティです。
// Employees は empresa_id による派生クエリの結果であり、永続化されるのは社員側の外部キーのみです。
type Company struct {
	ID        int64
	Name      string
	CNPJ      string
	CreatedAt time.Time
	UpdatedAt time.Time
	Employees []Employee
}

// Employee は会社から見た所属社員の要約です。
type Employee struct {
	ID   int64
	Name string
	Role string
	CPF  string
}
