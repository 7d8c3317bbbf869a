package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Pinger は依存先の疎通確認を行います。
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler はプロセスとデータベースの稼働状態を返します。
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler は HealthHandler を生成します。db が nil の場合は常に ok を返します。
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check は DB への ping が成功すれば 200、失敗すれば 503 を返します。
func (h *HealthHandler) Check(c echo.Context) error {
	if h.db != nil {
		if err := h.db.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "unavailable"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// Register はルーティングを登録します。docs が nil の場合 API ドキュメントは公開しません。
func Register(e *echo.Echo, companies *CompanyHandler, employees *EmployeeHandler, health *HealthHandler, docs *APIDocsHandler) {
	e.GET("/health", health.Check)

	if docs != nil {
		e.GET("/v3/api-docs", docs.JSON)
		e.GET("/v3/api-docs.yaml", docs.YAML)
	}

	api := e.Group("/api/empresas")
	api.GET("", companies.List)
	api.POST("", companies.Create)
	api.GET("/:id", companies.Get)
	api.PUT("/:id", companies.Update)
	api.DELETE("/:id", companies.Delete)

	api.GET("/:idEmpresa/funcionarios", employees.List)
	api.POST("/:idEmpresa/funcionarios", employees.Hire)
	api.GET("/:idEmpresa/funcionarios/:idFuncionario", employees.Get)
	api.PUT("/:idEmpresa/funcionarios/:idFuncionario", employees.Update)
	api.DELETE("/:idEmpresa/funcionarios/:idFuncionario", employees.Dismiss)
}
