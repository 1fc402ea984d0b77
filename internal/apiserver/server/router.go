package server

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"

	"site-admin/internal/apiserver/auth"
	"site-admin/web"
)

// ==================== 路由注册 ====================

// Router 构建完整的 HTTP 路由
//
// 中间件自外向内：panic 恢复 -> CORS -> 指标 -> 请求日志 -> 路由。
func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()

	// 公开接口
	mux.HandleFunc("POST /signup", h.Signup)
	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("POST /messages", h.CreateMessage)
	mux.HandleFunc("GET /messages", h.ListMessages)
	mux.HandleFunc("POST /admin/login", h.AdminLogin)
	mux.HandleFunc("GET /health", h.Health)
	mux.Handle("GET /metrics", h.metrics.Handler())

	// API 文档
	mux.HandleFunc("GET /api/openapi.yaml", h.openAPISpec)
	mux.HandleFunc("GET /api/docs", h.apiDocs)

	// 嵌入的前端静态文件（dev 构建下为空，未匹配路径返回 404）
	if staticFS, err := web.StaticFS(); err == nil && staticFS != nil {
		mux.Handle("GET /", http.FileServerFS(staticFS))
	}

	// 管理接口，需要 Bearer token
	mux.HandleFunc("GET /admin/users", auth.RequireAdmin(h.sessions, h.ListUsers))
	mux.HandleFunc("POST /admin/approve", auth.RequireAdmin(h.sessions, h.ApproveUser))
	mux.HandleFunc("POST /admin/reject", auth.RequireAdmin(h.sessions, h.RejectUser))
	mux.HandleFunc("POST /admin/deactivate", auth.RequireAdmin(h.sessions, h.DeactivateUser))
	mux.HandleFunc("POST /admin/create", auth.RequireAdmin(h.sessions, h.CreateUser))
	mux.HandleFunc("POST /admin/reset-password", auth.RequireAdmin(h.sessions, h.ResetPassword))
	mux.HandleFunc("GET /admin/interactions", auth.RequireAdmin(h.sessions, h.ListInteractions))
	mux.HandleFunc("GET /admin/menu", auth.RequireAdmin(h.sessions, h.AdminMenu))

	var handler http.Handler = mux
	handler = h.loggingMiddleware(handler)
	handler = h.metrics.Middleware(handler)
	handler = cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", "x-admin-token"},
		MaxAge:         300,
	})(handler)
	handler = h.recoverMiddleware(handler)
	return handler
}

// loggingMiddleware 请求日志
func (h *Handler) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		h.log.HTTPRequestLog(r.Method, r.URL.Path, rec.status, time.Since(start), r.RemoteAddr)
	})
}

// recoverMiddleware 捕获处理器 panic，记录后返回 500
func (h *Handler) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				h.log.Error("handler panic", "path", r.URL.Path, "panic", rec)
				writeError(w, http.StatusInternalServerError, "internal error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
