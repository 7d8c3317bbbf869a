package employee

import "context"

// Repository は社員永続化の抽象です。
type Repository interface {
	Create(ctx context.Context, employee *Employee) (*Employee, error)
	// Update は名前と役職のみを更新します。CPF と所属会社は変更されません。
	Update(ctx context.Context, employee *Employee) (*Employee, error)
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*Employee, error)
	FindByCPF(ctx context.Context, cpf string) (*Employee, error)
	ListByCompany(ctx context.Context, companyID int64) ([]*Employee, error)
	CompanyExists(ctx context.Context, companyID int64) (bool, error)
}
