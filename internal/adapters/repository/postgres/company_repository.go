package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/contratacao-empresa/internal/core/company"
	pgdb "github.com/ogurasousui/contratacao-empresa/internal/platform/db/postgres"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
)

// CompanyRepository は PostgreSQL を利用した会社永続化の実装です。
type CompanyRepository struct {
	pool pgdb.Queryer
}

// NewCompanyRepository は CompanyRepository を生成します。
func NewCompanyRepository(pool pgdb.Queryer) *CompanyRepository {
	return &CompanyRepository{pool: pool}
}

// Create は会社を新規作成します。ID はデータベースが採番します。
func (r *CompanyRepository) Create(ctx context.Context, c *company.Company) (*company.Company, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO empresas (nome, cnpj, created_at, updated_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id, nome, cnpj, created_at, updated_at
    `, c.Name, c.CNPJ, c.CreatedAt, c.UpdatedAt)

	created, err := scanCompany(row)
	if err != nil {
		return nil, translateCompanyPgError(err)
	}
	return created, nil
}

// Update は会社名と CNPJ を更新します。
func (r *CompanyRepository) Update(ctx context.Context, c *company.Company) (*company.Company, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE empresas
           SET nome = $1,
               cnpj = $2,
               updated_at = $3
         WHERE id = $4
        RETURNING id, nome, cnpj, created_at, updated_at
    `, c.Name, c.CNPJ, c.UpdatedAt, c.ID)

	updated, err := scanCompany(row)
	if err != nil {
		return nil, translateCompanyPgError(err)
	}
	return updated, nil
}

// Delete は会社を削除します。所属社員は外部キーの ON DELETE CASCADE で削除されます。
func (r *CompanyRepository) Delete(ctx context.Context, id int64) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM empresas WHERE id = $1`, id)
	if err != nil {
		return translateCompanyPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return company.ErrCompanyNotFound
	}
	return nil
}

// FindByID は ID で会社を取得します。
func (r *CompanyRepository) FindByID(ctx context.Context, id int64) (*company.Company, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, nome, cnpj, created_at, updated_at
          FROM empresas
         WHERE id = $1
    `, id)

	found, err := scanCompany(row)
	if err != nil {
		return nil, translateCompanyPgError(err)
	}
	return found, nil
}

// FindByCNPJ は CNPJ で会社を取得します。
func (r *CompanyRepository) FindByCNPJ(ctx context.Context, cnpj string) (*company.Company, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, nome, cnpj, created_at, updated_at
          FROM empresas
         WHERE cnpj = $1
    `, cnpj)

	found, err := scanCompany(row)
	if err != nil {
		return nil, translateCompanyPgError(err)
	}
	return found, nil
}

// ExistsByID は会社の存在有無を返します。
func (r *CompanyRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)

	var exists bool
	if err := exec.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM empresas WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// List は全ての会社を ID 順に取得します。
func (r *CompanyRepository) List(ctx context.Context) ([]*company.Company, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT id, nome, cnpj, created_at, updated_at
          FROM empresas
         ORDER BY id
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []*company.Company
	for rows.Next() {
		found, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, found)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return companies, nil
}

// FindEmployees は指定した会社の社員を 1 クエリでまとめて取得します。
func (r *CompanyRepository) FindEmployees(ctx context.Context, companyIDs ...int64) (map[int64][]company.Employee, error) {
	result := make(map[int64][]company.Employee, len(companyIDs))
	if len(companyIDs) == 0 {
		return result, nil
	}

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT id, empresa_id, nome, cargo, cpf
          FROM funcionarios
         WHERE empresa_id = ANY($1)
         ORDER BY empresa_id, id
    `, companyIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			e         company.Employee
			companyID int64
		)
		if err := rows.Scan(&e.ID, &companyID, &e.Name, &e.Role, &e.CPF); err != nil {
			return nil, err
		}
		result[companyID] = append(result[companyID], e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanCompany(row pgx.Row) (*company.Company, error) {
	var (
		id                   int64
		name                 string
		cnpj                 string
		createdAt, updatedAt time.Time
	)

	if err := row.Scan(&id, &name, &cnpj, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, company.ErrCompanyNotFound
		}
		return nil, err
	}

	return &company.Company{
		ID:        id,
		Name:      name,
		CNPJ:      cnpj,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

func translateCompanyPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case uniqueViolationCode:
		switch pgErr.ConstraintName {
		case "empresas_cnpj_key":
			return company.ErrCNPJAlreadyExists
		case "empresas_nome_key":
			return company.ErrNameAlreadyExists
		}
	case checkViolationCode:
		switch pgErr.ConstraintName {
		case "empresas_cnpj_length":
			return company.ErrInvalidCNPJ
		case "empresas_nome_not_blank":
			return company.ErrInvalidName
		}
	}
	return err
}
