package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ogurasousui/contratacao-empresa/internal/adapters/http/dto"
	"github.com/ogurasousui/contratacao-empresa/internal/core/company"
)

// CompanyHandler は /api/empresas の HTTP 実装です。
type CompanyHandler struct {
	svc company.UseCase
}

// NewCompanyHandler は CompanyHandler を生成します。
func NewCompanyHandler(svc company.UseCase) *CompanyHandler {
	return &CompanyHandler{svc: svc}
}

// List は全ての会社を所属社員とともに返します。
func (h *CompanyHandler) List(c echo.Context) error {
	companies, err := h.svc.ListCompanies(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto.FromCompanies(companies))
}

// Get は会社を 1 件返します。
func (h *CompanyHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	found, err := h.svc.GetCompany(c.Request().Context(), company.GetCompanyInput{ID: id})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto.FromCompany(found))
}

// Create は会社を作成します。
func (h *CompanyHandler) Create(c echo.Context) error {
	var req dto.EmpresaRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	created, err := h.svc.CreateCompany(c.Request().Context(), company.CreateCompanyInput{
		Name: req.Nome,
		CNPJ: req.CNPJ,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.FromCompany(created))
}

// Update は会社の名前と CNPJ を置き換えます。
func (h *CompanyHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	var req dto.EmpresaRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	updated, err := h.svc.UpdateCompany(c.Request().Context(), company.UpdateCompanyInput{
		ID:   id,
		Name: req.Nome,
		CNPJ: req.CNPJ,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto.FromCompany(updated))
}

// Delete は会社と所属社員を削除します。
func (h *CompanyHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	if err := h.svc.DeleteCompany(c.Request().Context(), company.DeleteCompanyInput{ID: id}); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
