package company

import "context"

// Repository は会社エンティティの永続化を行うインターフェースです。
type Repository interface {
	Create(ctx context.Context, company *Company) (*Company, error)
	Update(ctx context.Context, company *Company) (*Company, error)
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*Company, error)
	FindByCNPJ(ctx context.Context, cnpj string) (*Company, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]*Company, error)
	// FindEmployees は指定した会社に所属する社員を会社 ID ごとにまとめて返します。
	FindEmployees(ctx context.Context, companyIDs ...int64) (map[int64][]Employee, error)
}
