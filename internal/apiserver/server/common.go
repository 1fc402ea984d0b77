// Package server 提供站点后台 HTTP API 处理器
//
// 本包实现营销站点后台的 JSON API，包括：
//   - 注册/登录（Signup、Login）
//   - 联系表单（Messages）
//   - 管理后台（用户审批、菜单、审计日志）
//
// 文件组织：
//   - common.go: Handler 定义和通用工具函数
//   - router.go: 路由与中间件
//   - users.go: 注册/登录接口
//   - messages.go: 联系表单接口
//   - admin.go: 管理后台接口
//   - metrics.go: Prometheus 指标
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"site-admin/internal/apiserver/auth"
	"site-admin/internal/shared/model"
	"site-admin/internal/shared/storage"
	"site-admin/internal/shared/storage/repository"
	"site-admin/pkg/logging"
)

// Handler API 处理器
//
// 所有依赖显式注入：仓库聚合、会话存储、后端选择器、管理密码。
// 没有包级可变状态。
type Handler struct {
	store         *repository.Store
	sessions      *auth.SessionStore
	sel           *storage.Selector
	adminPassword string // 管理后台共享密码，空串表示管理登录关闭
	metrics       *Metrics
	log           *logging.Logger
}

// NewHandler 创建 Handler 实例
func NewHandler(store *repository.Store, sessions *auth.SessionStore, sel *storage.Selector, adminPassword string, log *logging.Logger) *Handler {
	if log == nil {
		log = logging.Default("api")
	}
	return &Handler{
		store:         store,
		sessions:      sessions,
		sel:           sel,
		adminPassword: adminPassword,
		metrics:       NewMetrics("site_admin"),
		log:           log,
	}
}

// writeJSON 将数据以 JSON 格式写入 HTTP 响应
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError 将错误信息以 JSON 格式写入 HTTP 响应
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// storageError 存储错误统一处理：记日志并回 500
// 校验/查找错误在各 Handler 内就地处理，只有存储层错误走到这里。
func (h *Handler) storageError(w http.ResponseWriter, where string, err error) {
	h.log.WithError(err).Error("storage error", "where", where)
	switch {
	case errors.Is(err, storage.ErrCorrupt):
		writeError(w, http.StatusInternalServerError, "storage data corrupt")
	case errors.Is(err, storage.ErrUnavailable):
		writeError(w, http.StatusInternalServerError, "storage backend unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// nowISO 当前 UTC 时刻的 ISO-8601 毫秒格式
func nowISO() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}

// nextUserID 计算下一个用户 ID：现存数字 ID 的最大值 + 1，补齐 6 位
// 非数字 ID（外部编辑过的数据）不参与计算，之后仍可能碰撞，接受。
func nextUserID(users []model.User) string {
	max := 0
	for _, u := range users {
		n, err := strconv.Atoi(u.ID)
		if err != nil || n < 0 {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%06d", max+1)
}

// nextMessageID 留言 ID：当前集合长度 + 1，补齐 6 位
// 并发写入下不保证唯一（单写者假设）。
func nextMessageID(count int) string {
	return fmt.Sprintf("%06d", count+1)
}

// Health 健康检查接口
//
// 路由: GET /health
//
// db 字段报告当前生效的后端（"mongodb" 或 "file"）。缓存的文档库
// 连接不做健康复查，这里只反映选择结果。
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok": true,
		"db": h.sel.Kind(r.Context()),
	})
}
