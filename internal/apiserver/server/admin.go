package server

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"

	"site-admin/internal/apiserver/auth"
	"site-admin/internal/shared/model"
)

// ==================== 管理后台接口 ====================

// errUserNotFound 目标用户不存在
var errUserNotFound = errors.New("user not found")

// AdminLogin 管理员登录，密码精确比对，成功签发会话 token
//
// 路由: POST /admin/login
//
// 未配置管理密码时登录永远失败，管理面等同关闭。
func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if h.adminPassword == "" ||
		subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.adminPassword)) != 1 {
		writeError(w, http.StatusUnauthorized, "Invalid password")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": h.sessions.Issue()})
}

// ListUsers 返回全部用户记录
//
// 路由: GET /admin/users
//
// 返回的是完整存储记录，password 字段是 bcrypt 哈希而非明文。
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.Users.ReadAll(r.Context())
	if err != nil {
		h.storageError(w, "list users", err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

type userIDRequest struct {
	ID string `json:"id"`
}

// setUserStatus 按 ID 修改用户状态，公用的读改写逻辑
// requireID 控制空 id 是 400 还是按查无此人处理（404）。
func (h *Handler) setUserStatus(w http.ResponseWriter, r *http.Request, status model.UserStatus, requireID bool, where string) {
	var req userIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if requireID && req.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	err := h.store.Users.Update(r.Context(), func(users []model.User) ([]model.User, error) {
		for i := range users {
			if users[i].ID == req.ID {
				users[i].Status = status
				return users, nil
			}
		}
		return nil, errUserNotFound
	})
	if err != nil {
		if errors.Is(err, errUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		h.storageError(w, where, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// ApproveUser 审批通过，pending -> active
//
// 路由: POST /admin/approve
func (h *Handler) ApproveUser(w http.ResponseWriter, r *http.Request) {
	h.setUserStatus(w, r, model.UserStatusActive, false, "approve user")
}

// DeactivateUser 停用用户，状态置为 inactive
//
// 路由: POST /admin/deactivate
func (h *Handler) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	h.setUserStatus(w, r, model.UserStatusInactive, true, "deactivate user")
}

// RejectUser 拒绝申请，整条记录从集合中删除
//
// 路由: POST /admin/reject
func (h *Handler) RejectUser(w http.ResponseWriter, r *http.Request) {
	var req userIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.store.Users.Update(r.Context(), func(users []model.User) ([]model.User, error) {
		out := users[:0]
		found := false
		for _, u := range users {
			if u.ID == req.ID {
				found = true
				continue
			}
			out = append(out, u)
		}
		if !found {
			return nil, errUserNotFound
		}
		return out, nil
	})
	if err != nil {
		if errors.Is(err, errUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		h.storageError(w, "reject user", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// CreateUser 管理员直接创建用户，落库即为 active
//
// 路由: POST /admin/create
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.storageError(w, "create user hash", err)
		return
	}

	var created model.User
	err = h.store.Users.Update(r.Context(), func(users []model.User) ([]model.User, error) {
		for _, u := range users {
			if u.Email == req.Email {
				return nil, errEmailTaken
			}
		}
		created = model.User{
			ID:       nextUserID(users),
			Name:     req.Name,
			Email:    req.Email,
			Password: hash,
			Status:   model.UserStatusActive,
			Company:  req.Company,
			Phone:    req.Phone,
		}
		return append(users, created), nil
	})
	if err != nil {
		if errors.Is(err, errEmailTaken) {
			writeError(w, http.StatusConflict, "Email already exists")
			return
		}
		h.storageError(w, "create user", err)
		return
	}

	if err := h.store.AppendInteraction(r.Context(), model.Interaction{
		Type:      model.InteractionAdminCreateUser,
		Name:      created.Name,
		Email:     created.Email,
		Timestamp: nowISO(),
	}); err != nil {
		h.log.WithError(err).Warn("append admin_create_user interaction failed")
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user": map[string]string{
			"id":    created.ID,
			"name":  created.Name,
			"email": created.Email,
		},
	})
}

// ResetPassword 重置用户密码
//
// 路由: POST /admin/reset-password
//
// 请求可带 newPassword；缺省时生成随机临时密码并回传明文，
// 存储中永远只有哈希。
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID          string `json:"id"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	password := req.NewPassword
	generated := password == ""
	if generated {
		password = tempPassword()
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		h.storageError(w, "reset password hash", err)
		return
	}

	err = h.store.Users.Update(r.Context(), func(users []model.User) ([]model.User, error) {
		for i := range users {
			if users[i].ID == req.ID {
				users[i].Password = hash
				return users, nil
			}
		}
		return nil, errUserNotFound
	})
	if err != nil {
		if errors.Is(err, errUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		h.storageError(w, "reset password", err)
		return
	}

	resp := map[string]any{"success": true}
	if generated {
		resp["tempPassword"] = password
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListInteractions 返回全部审计记录
//
// 路由: GET /admin/interactions
func (h *Handler) ListInteractions(w http.ResponseWriter, r *http.Request) {
	recs, err := h.store.Interactions.ReadAll(r.Context())
	if err != nil {
		h.storageError(w, "list interactions", err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

// AdminMenu 返回按 order 排序的菜单项
//
// 路由: GET /admin/menu
func (h *Handler) AdminMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.MenuItems(r.Context())
	if err != nil {
		h.storageError(w, "admin menu", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// tempPassword 生成 12 字符十六进制临时密码
func tempPassword() string {
	buf := make([]byte, 6)
	rand.Read(buf)
	return hex.EncodeToString(buf)
}
