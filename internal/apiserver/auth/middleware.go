package auth

import (
	"net/http"
	"strings"
)

// TokenFromRequest 从请求中提取管理令牌
// 支持 Authorization: Bearer <token> 和裸 x-admin-token 头两种形式。
func TokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	return strings.TrimSpace(r.Header.Get("x-admin-token"))
}

// RequireAdmin 管理路由中间件
// 令牌缺失或无效时直接 401 短路，不触及任何仓库访问。
func RequireAdmin(sessions *SessionStore, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := TokenFromRequest(r)
		if token == "" || !sessions.Validate(token) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"invalid or missing admin token"}`))
			return
		}
		next(w, r)
	}
}
