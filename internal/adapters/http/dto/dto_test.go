package dto

import (
	"encoding/json"
	"testing"

	"github.com/ogurasousui/contratacao-empresa/internal/core/company"
	"github.com/ogurasousui/contratacao-empresa/internal/core/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromCompany_EmployeesCarryCompanyID(t *testing.T) {
	t.Parallel()

	c := &company.Company{
		ID:   1,
		Name: "Acme",
		CNPJ: "12345678000199",
		Employees: []company.Employee{
			{ID: 10, Name: "Ana", Role: "Dev", CPF: "11122233344"},
		},
	}

	got := FromCompany(c)

	require.Len(t, got.Funcionarios, 1)
	assert.Equal(t, int64(1), got.Funcionarios[0].EmpresaID)
	assert.Equal(t, "Dev", got.Funcionarios[0].Cargo)
}

func TestFromCompany_EmptyEmployeesSerializeAsArray(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(FromCompany(&company.Company{ID: 2, Name: "Globex", CNPJ: "98765432000100"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":2,"nome":"Globex","cnpj":"98765432000100","funcionarios":[]}`, string(b))
}

func TestFromEmployee(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(FromEmployee(&employee.Employee{ID: 10, CompanyID: 1, Name: "Ana", Role: "Lead", CPF: "11122233344"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":10,"nome":"Ana","cargo":"Lead","cpf":"11122233344","empresaId":1}`, string(b))
}

func TestFromCompanies_Empty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []EmpresaDTO{}, FromCompanies(nil))
	assert.Equal(t, []FuncionarioDTO{}, FromEmployees(nil))
}

func TestRequests_NormalizeTrimsSpaces(t *testing.T) {
	t.Parallel()

	empresa := EmpresaRequest{Nome: "  Acme ", CNPJ: " 12345678000199\t"}
	empresa.Normalize()
	assert.Equal(t, EmpresaRequest{Nome: "Acme", CNPJ: "12345678000199"}, empresa)

	contratar := ContratarFuncionarioRequest{Nome: " Ana", Cargo: "Dev ", CPF: " 11122233344 "}
	contratar.Normalize()
	assert.Equal(t, ContratarFuncionarioRequest{Nome: "Ana", Cargo: "Dev", CPF: "11122233344"}, contratar)

	atualizar := AtualizarFuncionarioRequest{Nome: " Ana ", Cargo: "   "}
	atualizar.Normalize()
	assert.Equal(t, AtualizarFuncionarioRequest{Nome: "Ana", Cargo: ""}, atualizar)
}
