// Package api 嵌入 API 描述文件
package api

import "embed"

// OpenAPIFS OpenAPI 描述文件
//
//go:embed openapi/site-admin.yaml
var OpenAPIFS embed.FS

// DocsFS API 文档页面
//
//go:embed docs/index.html
var DocsFS embed.FS
