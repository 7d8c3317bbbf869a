// Package dto は HTTP の入出力形式とドメインエンティティの相互変換を担います。
package dto

import (
	"strings"

	"github.com/ogurasousui/contratacao-empresa/internal/core/company"
	"github.com/ogurasousui/contratacao-empresa/internal/core/employee"
)

// EmpresaDTO は会社のレスポンス形式です。
type EmpresaDTO struct {
	ID           int64            `json:"id"`
	Nome         string           `json:"nome"`
	CNPJ         string           `json:"cnpj"`
	Funcionarios []FuncionarioDTO `json:"funcionarios"`
}

// FuncionarioDTO は社員のレスポンス形式です。所属会社は ID のみで表現します。
type FuncionarioDTO struct {
	ID        int64  `json:"id"`
	Nome      string `json:"nome"`
	Cargo     string `json:"cargo"`
	CPF       string `json:"cpf"`
	EmpresaID int64  `json:"empresaId"`
}

// EmpresaRequest は会社の作成・更新リクエストです。id が含まれていても無視されます。
type EmpresaRequest struct {
	Nome string `json:"nome" validate:"required"`
	CNPJ string `json:"cnpj" validate:"required,len=14"`
}

// ContratarFuncionarioRequest は社員採用リクエストです。
type ContratarFuncionarioRequest struct {
	Nome  string `json:"nome" validate:"required"`
	Cargo string `json:"cargo" validate:"required"`
	CPF   string `json:"cpf" validate:"required,len=11"`
}

// AtualizarFuncionarioRequest は社員更新リクエストです。cpf と所属会社は受け付けません。
type AtualizarFuncionarioRequest struct {
	Nome  string `json:"nome" validate:"required"`
	Cargo string `json:"cargo" validate:"required"`
}

// Normalize は検証前に前後の空白を取り除きます。
func (r *EmpresaRequest) Normalize() {
	r.Nome = strings.TrimSpace(r.Nome)
	r.CNPJ = strings.TrimSpace(r.CNPJ)
}

// Normalize は検証前に前後の空白を取り除きます。
func (r *ContratarFuncionarioRequest) Normalize() {
	r.Nome = strings.TrimSpace(r.Nome)
	r.Cargo = strings.TrimSpace(r.Cargo)
	r.CPF = strings.TrimSpace(r.CPF)
}

// Normalize は検証前に前後の空白を取り除きます。
func (r *AtualizarFuncionarioRequest) Normalize() {
	r.Nome = strings.TrimSpace(r.Nome)
	r.Cargo = strings.TrimSpace(r.Cargo)
}

// FromCompany は会社エンティティをレスポンス形式へ変換します。
func FromCompany(c *company.Company) EmpresaDTO {
	funcionarios := make([]FuncionarioDTO, 0, len(c.Employees))
	for _, e := range c.Employees {
		funcionarios = append(funcionarios, FuncionarioDTO{
			ID:        e.ID,
			Nome:      e.Name,
			Cargo:     e.Role,
			CPF:       e.CPF,
			EmpresaID: c.ID,
		})
	}

	return EmpresaDTO{
		ID:           c.ID,
		Nome:         c.Name,
		CNPJ:         c.CNPJ,
		Funcionarios: funcionarios,
	}
}

// FromCompanies は会社一覧を変換します。空の場合も nil ではなく空スライスを返します。
func FromCompanies(companies []*company.Company) []EmpresaDTO {
	out := make([]EmpresaDTO, 0, len(companies))
	for _, c := range companies {
		out = append(out, FromCompany(c))
	}
	return out
}

// FromEmployee は社員エンティティをレスポンス形式へ変換します。
func FromEmployee(e *employee.Employee) FuncionarioDTO {
	return FuncionarioDTO{
		ID:        e.ID,
		Nome:      e.Name,
		Cargo:     e.Role,
		CPF:       e.CPF,
		EmpresaID: e.CompanyID,
	}
}

// FromEmployees は社員一覧を変換します。
func FromEmployees(employees []*employee.Employee) []FuncionarioDTO {
	out := make([]FuncionarioDTO, 0, len(employees))
	for _, e := range employees {
		out = append(out, FromEmployee(e))
	}
	return out
}
