package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"gopkg.in/yaml.v3"
)

const mimeApplicationYAML = "application/yaml"

// APIDocsHandler は OpenAPI 定義を JSON と YAML で公開します。
type APIDocsHandler struct {
	raw []byte
	doc map[string]any
}

// NewAPIDocsHandler は YAML の OpenAPI 定義を読み込み APIDocsHandler を生成します。
func NewAPIDocsHandler(raw []byte) (*APIDocsHandler, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse OpenAPI document: %w", err)
	}
	if _, ok := doc["openapi"]; !ok {
		return nil, fmt.Errorf("parse OpenAPI document: missing openapi version")
	}
	return &APIDocsHandler{raw: raw, doc: doc}, nil
}

// JSON は GET /v3/api-docs を処理します。
func (h *APIDocsHandler) JSON(c echo.Context) error {
	return c.JSON(http.StatusOK, h.doc)
}

// YAML は GET /v3/api-docs.yaml を処理します。
func (h *APIDocsHandler) YAML(c echo.Context) error {
	return c.Blob(http.StatusOK, mimeApplicationYAML, h.raw)
}
