package employee

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

// Service は社員に関するユースケースをまとめます。
type Service struct {
	repo      Repository
	clock     Clock
	tx        TransactionManager
	publisher events.Publisher
}

// UseCase は社員ユースケースの公開インターフェースです。
type UseCase interface {
	ListEmployees(ctx context.Context, in ListEmployeesInput) ([]*Employee, error)
	GetEmployee(ctx context.Context, in GetEmployeeInput) (*Employee, error)
	HireEmployee(ctx context.Context, in HireEmployeeInput) (*Employee, error)
	UpdateEmployee(ctx context.Context, in UpdateEmployeeInput) (*Employee, error)
	DismissEmployee(ctx context.Context, in DismissEmployeeInput) error
}

// NewService は Service を生成します。
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

// ListEmployeesInput は会社単位の一覧取得時の入力です。
type ListEmployeesInput struct {
	CompanyID int64
}

// GetEmployeeInput は社員取得時の入力です。
type GetEmployeeInput struct {
	ID int64
}

// HireEmployeeInput は社員採用時の入力です。
type HireEmployeeInput struct {
	CompanyID int64
	Name      string
	Role      string
	CPF       string
}

// UpdateEmployeeInput は社員更新時の入力です。CPF と所属会社は更新できません。
type UpdateEmployeeInput struct {
	ID   int64
	Name string
	Role string
}

// DismissEmployeeInput は社員解雇 (削除) 時の入力です。
// 所属会社との突き合わせは行わず、ID のみで削除します。
type DismissEmployeeInput struct {
	ID int64
}

// ListEmployees は会社に所属する社員の一覧を取得します。
func (s *Service) ListEmployees(ctx context.Context, in ListEmployeesInput) ([]*Employee, error) {
	if in.CompanyID <= 0 {
		return nil, fmt.Errorf("company id %d: %w", in.CompanyID, ErrInvalidCompanyID)
	}

	var employees []*Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		if err := s.ensureCompanyExists(txCtx, in.CompanyID); err != nil {
			return err
		}

		found, err := s.repo.ListByCompany(txCtx, in.CompanyID)
		if err != nil {
			return err
		}
		employees = found
		return nil
	}); err != nil {
		return nil, err
	}

	if employees == nil {
		employees = []*Employee{}
	}
	return employees, nil
}

// GetEmployee は社員を取得します。
func (s *Service) GetEmployee(ctx context.Context, in GetEmployeeInput) (*Employee, error) {
	if err := validateID(in.ID); err != nil {
		return nil, err
	}

	var result *Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}
		result = found
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// HireEmployee は既存の会社に新しい社員を登録します。
func (s *Service) HireEmployee(ctx context.Context, in HireEmployeeInput) (*Employee, error) {
	if in.CompanyID <= 0 {
		return nil, fmt.Errorf("company id %d: %w", in.CompanyID, ErrInvalidCompanyID)
	}

	name, err := normalizeRequired(in.Name, ErrInvalidName)
	if err != nil {
		return nil, err
	}

	role, err := normalizeRequired(in.Role, ErrInvalidRole)
	if err != nil {
		return nil, err
	}

	cpf, err := normalizeCPF(in.CPF)
	if err != nil {
		return nil, err
	}

	var created *Employee
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		if err := s.ensureCompanyExists(txCtx, in.CompanyID); err != nil {
			return err
		}
		if err := s.ensureCPFNotExists(txCtx, cpf); err != nil {
			return err
		}

		now := s.clock.Now()
		result, err := s.repo.Create(txCtx, &Employee{
			CompanyID: in.CompanyID,
			Name:      name,
			Role:      role,
			CPF:       cpf,
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

	s.publish(ctx, events.TypeEmployeeHired, created.CompanyID, created.ID)
	return created, nil
}

// UpdateEmployee は社員の名前と役職を更新します。
func (s *Service) UpdateEmployee(ctx context.Context, in UpdateEmployeeInput) (*Employee, error) {
	if err := validateID(in.ID); err != nil {
		return nil, err
	}

	name, err := normalizeRequired(in.Name, ErrInvalidName)
	if err != nil {
		return nil, err
	}

	role, err := normalizeRequired(in.Role, ErrInvalidRole)
	if err != nil {
		return nil, err
	}

	var updated *Employee
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}

		existing.Name = name
		existing.Role = role
		existing.UpdatedAt = s.clock.Now()

		result, err := s.repo.Update(txCtx, existing)
		if err != nil {
			return err
		}

		updated = result
		return nil
	}); err != nil {
		return nil, err
	}

	s.publish(ctx, events.TypeEmployeeUpdated, updated.CompanyID, updated.ID)
	return updated, nil
}

// DismissEmployee は社員を削除します。
func (s *Service) DismissEmployee(ctx context.Context, in DismissEmployeeInput) error {
	if err := validateID(in.ID); err != nil {
		return err
	}

	var companyID int64
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}
		companyID = existing.CompanyID
		return s.repo.Delete(txCtx, in.ID)
	}); err != nil {
		return err
	}

	s.publish(ctx, events.TypeEmployeeDismissed, companyID, in.ID)
	return nil
}

func (s *Service) ensureCompanyExists(ctx context.Context, companyID int64) error {
	exists, err := s.repo.CompanyExists(ctx, companyID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrCompanyNotFound
	}
	return nil
}

func (s *Service) ensureCPFNotExists(ctx context.Context, cpf string) error {
	emp, err := s.repo.FindByCPF(ctx, cpf)
	if err != nil && !errors.Is(err, ErrEmployeeNotFound) {
		return err
	}
	if emp != nil {
		return ErrCPFAlreadyExists
	}
	return nil
}

func (s *Service) publish(ctx context.Context, t events.Type, companyID, employeeID int64) {
	s.publisher.Publish(ctx, events.Event{
		Type:       t,
		CompanyID:  companyID,
		EmployeeID: employeeID,
		OccurredAt: s.clock.Now(),
	})
}

func validateID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("id %d: %w", id, ErrInvalidID)
	}
	return nil
}

func normalizeRequired(raw string, invalid error) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", invalid
	}
	return trimmed, nil
}

func normalizeCPF(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if utf8.RuneCountInString(trimmed) != CPFLength {
		return "", ErrInvalidCPF
	}
	return trimmed, nil
}
