package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/contratacao-empresa/internal/core/employee"
	pgdb "github.com/ogurasousui/contratacao-empresa/internal/platform/db/postgres"
)

// EmployeeRepository は PostgreSQL を利用した社員永続化の実装です。
type EmployeeRepository struct {
	pool pgdb.Queryer
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(pool pgdb.Queryer) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

// Create は社員を新規作成します。
func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO funcionarios (empresa_id, nome, cargo, cpf, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, empresa_id, nome, cargo, cpf, created_at, updated_at
    `, e.CompanyID, e.Name, e.Role, e.CPF, e.CreatedAt, e.UpdatedAt)

	created, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return created, nil
}

// Update は社員の名前と役職を更新します。
func (r *EmployeeRepository) Update(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE funcionarios
           SET nome = $1,
               cargo = $2,
               updated_at = $3
         WHERE id = $4
        RETURNING id, empresa_id, nome, cargo, cpf, created_at, updated_at
    `, e.Name, e.Role, e.UpdatedAt, e.ID)

	updated, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return updated, nil
}

// Delete は社員を削除します。
func (r *EmployeeRepository) Delete(ctx context.Context, id int64) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM funcionarios WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// FindByID は ID で社員を取得します。
func (r *EmployeeRepository) FindByID(ctx context.Context, id int64) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, empresa_id, nome, cargo, cpf, created_at, updated_at
          FROM funcionarios
         WHERE id = $1
    `, id)
	return scanEmployee(row)
}

// FindByCPF は CPF で社員を取得します。
func (r *EmployeeRepository) FindByCPF(ctx context.Context, cpf string) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, empresa_id, nome, cargo, cpf, created_at, updated_at
          FROM funcionarios
         WHERE cpf = $1
    `, cpf)
	return scanEmployee(row)
}

// ListByCompany は会社に所属する社員を ID 順に取得します。
func (r *EmployeeRepository) ListByCompany(ctx context.Context, companyID int64) ([]*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT id, empresa_id, nome, cargo, cpf, created_at, updated_at
          FROM funcionarios
         WHERE empresa_id = $1
         ORDER BY id
    `, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []*employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return employees, nil
}

// CompanyExists は会社の存在有無を返します。
func (r *EmployeeRepository) CompanyExists(ctx context.Context, companyID int64) (bool, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)

	var exists bool
	if err := exec.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM empresas WHERE id = $1)`, companyID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func scanEmployee(row pgx.Row) (*employee.Employee, error) {
	var (
		e                    employee.Employee
		createdAt, updatedAt time.Time
	)

	if err := row.Scan(&e.ID, &e.CompanyID, &e.Name, &e.Role, &e.CPF, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, err
	}

	e.CreatedAt = createdAt
	e.UpdatedAt = updatedAt
	return &e, nil
}

func translateEmployeePgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case uniqueViolationCode:
		if pgErr.ConstraintName == "funcionarios_cpf_key" {
			return employee.ErrCPFAlreadyExists
		}
	case foreignKeyViolationCode:
		if pgErr.ConstraintName == "funcionarios_empresa_id_fkey" {
			return employee.ErrCompanyNotFound
		}
	case checkViolationCode:
		if pgErr.ConstraintName == "funcionarios_cpf_length" {
			return employee.ErrInvalidCPF
		}
	}
	return err
}
