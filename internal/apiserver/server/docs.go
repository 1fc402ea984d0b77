package server

import (
	"net/http"

	"site-admin/api"
)

// openAPISpec 返回内嵌的 OpenAPI 描述
//
// 路由: GET /api/openapi.yaml
func (h *Handler) openAPISpec(w http.ResponseWriter, r *http.Request) {
	data, err := api.OpenAPIFS.ReadFile("openapi/site-admin.yaml")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "openapi spec unavailable")
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.Write(data)
}

// apiDocs 返回 API 文档页面
//
// 路由: GET /api/docs
func (h *Handler) apiDocs(w http.ResponseWriter, r *http.Request) {
	data, err := api.DocsFS.ReadFile("docs/index.html")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "docs unavailable")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}
