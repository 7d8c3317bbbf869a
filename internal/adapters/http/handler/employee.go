package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ogurasousui/contratacao-empresa/internal/adapters/http/dto"
	"github.com/ogurasousui/contratacao-empresa/internal/core/employee"
)

// EmployeeHandler は /api/empresas/:idEmpresa/funcionarios の HTTP 実装です。
//
// 社員 ID を伴う操作では idEmpresa の形式のみを検証し、社員の所属会社との突き合わせは行いません。
type EmployeeHandler struct {
	svc employee.UseCase
}

// NewEmployeeHandler は EmployeeHandler を生成します。
func NewEmployeeHandler(svc employee.UseCase) *EmployeeHandler {
	return &EmployeeHandler{svc: svc}
}

// List は会社に所属する社員を返します。
func (h *EmployeeHandler) List(c echo.Context) error {
	companyID, err := pathID(c, "idEmpresa")
	if err != nil {
		return writeError(c, err)
	}

	employees, err := h.svc.ListEmployees(c.Request().Context(), employee.ListEmployeesInput{CompanyID: companyID})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto.FromEmployees(employees))
}

// Hire は会社に社員を登録します。
func (h *EmployeeHandler) Hire(c echo.Context) error {
	companyID, err := pathID(c, "idEmpresa")
	if err != nil {
		return writeError(c, err)
	}

	var req dto.ContratarFuncionarioRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	hired, err := h.svc.HireEmployee(c.Request().Context(), employee.HireEmployeeInput{
		CompanyID: companyID,
		Name:      req.Nome,
		Role:      req.Cargo,
		CPF:       req.CPF,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.FromEmployee(hired))
}

// Get は社員を 1 件返します。
func (h *EmployeeHandler) Get(c echo.Context) error {
	id, err := h.employeeID(c)
	if err != nil {
		return writeError(c, err)
	}

	found, err := h.svc.GetEmployee(c.Request().Context(), employee.GetEmployeeInput{ID: id})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto.FromEmployee(found))
}

// Update は社員の名前と役職を更新します。
func (h *EmployeeHandler) Update(c echo.Context) error {
	id, err := h.employeeID(c)
	if err != nil {
		return writeError(c, err)
	}

	var req dto.AtualizarFuncionarioRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	updated, err := h.svc.UpdateEmployee(c.Request().Context(), employee.UpdateEmployeeInput{
		ID:   id,
		Name: req.Nome,
		Role: req.Cargo,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto.FromEmployee(updated))
}

// Dismiss は社員を削除します。
func (h *EmployeeHandler) Dismiss(c echo.Context) error {
	id, err := h.employeeID(c)
	if err != nil {
		return writeError(c, err)
	}

	if err := h.svc.DismissEmployee(c.Request().Context(), employee.DismissEmployeeInput{ID: id}); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *EmployeeHandler) employeeID(c echo.Context) (int64, error) {
	if _, err := pathID(c, "idEmpresa"); err != nil {
		return 0, err
	}
	return pathID(c, "idFuncionario")
}
