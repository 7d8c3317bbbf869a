package company

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ogurasousui/contratacao-empresa/internal/core/events"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// Service は会社に関するユースケースをまとめます。状態を持たず、プロセス起動時に一度だけ生成されます。
type Service struct {
	repo      Repository
	clock     Clock
	tx        TransactionManager
	publisher events.Publisher
}

// UseCase は会社ユースケースの公開インターフェースです。
type UseCase interface {
	ListCompanies(ctx context.Context) ([]*Company, error)
	GetCompany(ctx context.Context, in GetCompanyInput) (*Company, error)
	CreateCompany(ctx context.Context, in CreateCompanyInput) (*Company, error)
	UpdateCompany(ctx context.Context, in UpdateCompanyInput) (*Company, error)
	DeleteCompany(ctx context.Context, in DeleteCompanyInput) error
}

// NewService は Service を生成します。nil の依存はデフォルト実装に置き換えられます。
func NewService(repo Repository, clock Clock, tx TransactionManager, publisher events.Publisher) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &Service{repo: repo, clock: clock, tx: tx, publisher: publisher}
}

// CreateCompanyInput は会社作成時の入力です。ID は受け付けず、常に新規作成になります。
type CreateCompanyInput struct {
	Name string
	CNPJ string
}

// UpdateCompanyInput は会社更新時の入力です。名前と CNPJ を置き換えます。
type UpdateCompanyInput struct {
	ID   int64
	Name string
	CNPJ string
}

// DeleteCompanyInput は会社削除時の入力です。
type DeleteCompanyInput struct {
	ID int64
}

// GetCompanyInput は会社取得時の入力です。
type GetCompanyInput struct {
	ID int64
}

// ListCompanies は全ての会社を所属社員とともに取得します。
func (s *Service) ListCompanies(ctx context.Context) ([]*Company, error) {
	var companies []*Company
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.List(txCtx)
		if err != nil {
			return err
		}
		if err := s.attachEmployees(txCtx, found...); err != nil {
			return err
		}
		companies = found
		return nil
	}); err != nil {
		return nil, err
	}

	if companies == nil {
		companies = []*Company{}
	}
	return companies, nil
}

// GetCompany は ID で会社を取得します。
func (s *Service) GetCompany(ctx context.Context, in GetCompanyInput) (*Company, error) {
	if err := validateID(in.ID); err != nil {
		return nil, err
	}

	var company *Company
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}
		if err := s.attachEmployees(txCtx, found); err != nil {
			return err
		}
		company = found
		return nil
	}); err != nil {
		return nil, err
	}

	return company, nil
}

// CreateCompany は新しい会社を作成します。同じ CNPJ の会社が存在する場合は ErrCNPJAlreadyExists を返します。
func (s *Service) CreateCompany(ctx context.Context, in CreateCompanyInput) (*Company, error) {
	name, err := normalizeName(in.Name)
	if err != nil {
		return nil, err
	}

	cnpj, err := normalizeCNPJ(in.CNPJ)
	if err != nil {
		return nil, err
	}

	var created *Company
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		if err := s.ensureCNPJNotExists(txCtx, cnpj, 0); err != nil {
			return err
		}

		now := s.clock.Now()
		result, err := s.repo.Create(txCtx, &Company{
			Name:      name,
			CNPJ:      cnpj,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return err
		}

		created = result
		return nil
	}); err != nil {
		return nil, err
	}

	created.Employees = []Employee{}
	s.publish(ctx, events.TypeCompanyCreated, created.ID)
	return created, nil
}

// UpdateCompany は会社の名前と CNPJ を置き換えます。所属社員は変更しません。
func (s *Service) UpdateCompany(ctx context.Context, in UpdateCompanyInput) (*Company, error) {
	if err := validateID(in.ID); err != nil {
		return nil, err
	}

	name, err := normalizeName(in.Name)
	if err != nil {
		return nil, err
	}

	cnpj, err := normalizeCNPJ(in.CNPJ)
	if err != nil {
		return nil, err
	}

	var updated *Company
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}

		if cnpj != existing.CNPJ {
			if err := s.ensureCNPJNotExists(txCtx, cnpj, existing.ID); err != nil {
				return err
			}
		}

		existing.Name = name
		existing.CNPJ = cnpj
		existing.UpdatedAt = s.clock.Now()

		result, err := s.repo.Update(txCtx, existing)
		if err != nil {
			return err
		}
		if err := s.attachEmployees(txCtx, result); err != nil {
			return err
		}

		updated = result
		return nil
	}); err != nil {
		return nil, err
	}

	s.publish(ctx, events.TypeCompanyUpdated, updated.ID)
	return updated, nil
}

// DeleteCompany は会社を削除します。所属社員も同じトランザクションで削除されます。
func (s *Service) DeleteCompany(ctx context.Context, in DeleteCompanyInput) error {
	if err := validateID(in.ID); err != nil {
		return err
	}

	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		exists, err := s.repo.ExistsByID(txCtx, in.ID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrCompanyNotFound
		}
		return s.repo.Delete(txCtx, in.ID)
	}); err != nil {
		return err
	}

	s.publish(ctx, events.TypeCompanyDeleted, in.ID)
	return nil
}

func (s *Service) attachEmployees(ctx context.Context, companies ...*Company) error {
	if len(companies) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(companies))
	for _, c := range companies {
		ids = append(ids, c.ID)
	}

	byCompany, err := s.repo.FindEmployees(ctx, ids...)
	if err != nil {
		return fmt.Errorf("find employees: %w", err)
	}

	for _, c := range companies {
		employees := byCompany[c.ID]
		if employees == nil {
			employees = []Employee{}
		}
		c.Employees = employees
	}
	return nil
}

// ensureCNPJNotExists は selfID 以外の会社が cnpj を使用していれば ErrCNPJAlreadyExists を返します。
func (s *Service) ensureCNPJNotExists(ctx context.Context, cnpj string, selfID int64) error {
	found, err := s.repo.FindByCNPJ(ctx, cnpj)
	if err != nil && !errors.Is(err, ErrCompanyNotFound) {
		return err
	}
	if found != nil && found.ID != selfID {
		return ErrCNPJAlreadyExists
	}
	return nil
}

func (s *Service) publish(ctx context.Context, t events.Type, companyID int64) {
	s.publisher.Publish(ctx, events.Event{
		Type:       t,
		CompanyID:  companyID,
		OccurredAt: s.clock.Now(),
	})
}

func validateID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("id %d: %w", id, ErrInvalidID)
	}
	return nil
}

func normalizeName(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidName
	}
	return trimmed, nil
}

func normalizeCNPJ(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if utf8.RuneCountInString(trimmed) != CNPJLength {
		return "", ErrInvalidCNPJ
	}
	return trimmed, nil
}
