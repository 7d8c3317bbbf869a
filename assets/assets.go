// Package assets はバイナリに埋め込む静的ファイルを提供します。
package assets

import _ "embed"

// OpenAPI は REST API の OpenAPI 3 定義 (YAML) です。
//
//go:embed openapi.yaml
var OpenAPI []byte
