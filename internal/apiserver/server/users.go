package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"site-admin/internal/apiserver/auth"
	"site-admin/internal/shared/model"
)

// ==================== 注册 / 登录 ====================

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Company  string `json:"company"`
	Phone    string `json:"phone"`
}

// errEmailTaken 集合内已有同邮箱用户
var errEmailTaken = errors.New("email already registered")

// Signup 用户注册接口
//
// 路由: POST /signup
//
// 新用户以 pending 状态落库，等待管理员审批后才能登录。
// 邮箱在集合内唯一，冲突返回 409。
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.storageError(w, "signup hash", err)
		return
	}

	err = h.store.Users.Update(r.Context(), func(users []model.User) ([]model.User, error) {
		for _, u := range users {
			if u.Email == req.Email {
				return nil, errEmailTaken
			}
		}
		users = append(users, model.User{
			ID:       nextUserID(users),
			Name:     req.Name,
			Email:    req.Email,
			Password: hash,
			Status:   model.UserStatusPending,
			Company:  req.Company,
			Phone:    req.Phone,
		})
		return users, nil
	})
	if err != nil {
		if errors.Is(err, errEmailTaken) {
			writeError(w, http.StatusConflict, "Email already exists")
			return
		}
		h.storageError(w, "signup", err)
		return
	}

	// 审计记录失败不影响注册结果，只记日志
	if err := h.store.AppendInteraction(r.Context(), model.Interaction{
		Type:      model.InteractionSignup,
		Name:      req.Name,
		Email:     req.Email,
		Timestamp: nowISO(),
	}); err != nil {
		h.log.WithError(err).Warn("append signup interaction failed")
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Signup received. Your account is pending approval.",
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login 用户登录接口
//
// 路由: POST /login
//
// 只有 active 状态的用户能登录。错误信息区分两种情况：
// 该邮箱没有激活用户时提示可能未审批，密码不匹配时只报凭据无效。
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	users, err := h.store.Users.ReadAll(r.Context())
	if err != nil {
		h.storageError(w, "login", err)
		return
	}

	var found *model.User
	for i := range users {
		if users[i].Email == req.Email && users[i].Status == model.UserStatusActive {
			found = &users[i]
			break
		}
	}
	if found == nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials or not approved")
		return
	}
	if !auth.CheckPassword(req.Password, found.Password) {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if err := h.store.AppendInteraction(r.Context(), model.Interaction{
		Type:      model.InteractionLogin,
		Name:      found.Name,
		Email:     found.Email,
		Timestamp: nowISO(),
	}); err != nil {
		h.log.WithError(err).Warn("append login interaction failed")
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user": map[string]string{
			"id":    found.ID,
			"name":  found.Name,
			"email": found.Email,
		},
	})
}
