package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"site-admin/internal/apiserver/auth"
	"site-admin/internal/shared/model"
	"site-admin/internal/shared/storage"
	"site-admin/internal/shared/storage/filestore"
	"site-admin/internal/shared/storage/repository"
	"site-admin/pkg/logging"
)

const testAdminPassword = "admin-secret"

// newTestHandler 基于临时目录文件后端的完整 Handler
func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	sel := storage.NewSelector(filestore.NewStore(t.TempDir()), nil, logging.Default("test"))
	store := repository.NewStore(sel)
	sessions := auth.NewSessionStore(0)
	return NewHandler(store, sessions, sel, testAdminPassword, logging.Default("test"))
}

// doJSON 向路由发送 JSON 请求
func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// adminToken 走正常管理登录拿 token
func adminToken(t *testing.T, router http.Handler) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/admin/login", "", map[string]string{"password": testAdminPassword})
	require.Equal(t, http.StatusOK, rec.Code)
	token, ok := decodeBody(t, rec)["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	return token
}

func TestSignupValidation(t *testing.T) {
	router := newTestHandler(t).Router()

	rec := doJSON(t, router, http.MethodPost, "/signup", "", map[string]string{"email": "a@b.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/signup", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignupCreatesPendingUser(t *testing.T) {
	h := newTestHandler(t)
	router := h.Router()

	rec := doJSON(t, router, http.MethodPost, "/signup", "", map[string]string{
		"name": "Alice", "email": "alice@example.com", "password": "pw123456",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["success"])

	users, err := h.store.Users.ReadAll(t.Context())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "000001", users[0].ID)
	assert.Equal(t, model.UserStatusPending, users[0].Status)
	assert.NotEqual(t, "pw123456", users[0].Password, "password must be stored hashed")

	recs, err := h.store.Interactions.ReadAll(t.Context())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, model.InteractionSignup, recs[0].Type)
	assert.Equal(t, "alice@example.com", recs[0].Email)
}

func TestSignupDuplicateEmail(t *testing.T) {
	router := newTestHandler(t).Router()

	body := map[string]string{"name": "Alice", "email": "alice@example.com", "password": "pw123456"}
	require.Equal(t, http.StatusOK, doJSON(t, router, http.MethodPost, "/signup", "", body).Code)

	rec := doJSON(t, router, http.MethodPost, "/signup", "", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Email already exists", decodeBody(t, rec)["error"])
}

func TestLoginPendingUserRejected(t *testing.T) {
	router := newTestHandler(t).Router()

	body := map[string]string{"name": "Alice", "email": "alice@example.com", "password": "pw123456"}
	require.Equal(t, http.StatusOK, doJSON(t, router, http.MethodPost, "/signup", "", body).Code)

	rec := doJSON(t, router, http.MethodPost, "/login", "", map[string]string{
		"email": "alice@example.com", "password": "pw123456",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials or not approved", decodeBody(t, rec)["error"])
}

func TestLoginWrongPassword(t *testing.T) {
	h := newTestHandler(t)
	router := h.Router()
	token := adminToken(t, router)

	rec := doJSON(t, router, http.MethodPost, "/admin/create", token, map[string]string{
		"name": "Alice", "email": "alice@example.com", "password": "pw123456",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/login", "", map[string]string{
		"email": "alice@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", decodeBody(t, rec)["error"])
}

// 注册 -> 管理员审批 -> 登录成功的完整流程
func TestSignupApproveLoginFlow(t *testing.T) {
	h := newTestHandler(t)
	router := h.Router()

	rec := doJSON(t, router, http.MethodPost, "/signup", "", map[string]string{
		"name": "Alice", "email": "alice@example.com", "password": "pw123456",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	token := adminToken(t, router)

	rec = doJSON(t, router, http.MethodGet, "/admin/users", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var users []model.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 1)
	require.Equal(t, model.UserStatusPending, users[0].Status)

	rec = doJSON(t, router, http.MethodPost, "/admin/approve", token, map[string]string{"id": "000001"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/login", "", map[string]string{
		"email": "alice@example.com", "password": "pw123456",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "000001", user["id"])
	assert.Equal(t, "alice@example.com", user["email"])

	recs, err := h.store.Interactions.ReadAll(t.Context())
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, model.InteractionSignup, recs[0].Type)
	assert.Equal(t, model.InteractionLogin, recs[1].Type)
}

func TestAdminLoginWrongPassword(t *testing.T) {
	router := newTestHandler(t).Router()
	rec := doJSON(t, router, http.MethodPost, "/admin/login", "", map[string]string{"password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminLoginDisabledWithoutPassword(t *testing.T) {
	sel := storage.NewSelector(filestore.NewStore(t.TempDir()), nil, logging.Default("test"))
	h := NewHandler(repository.NewStore(sel), auth.NewSessionStore(0), sel, "", logging.Default("test"))
	router := h.Router()

	rec := doJSON(t, router, http.MethodPost, "/admin/login", "", map[string]string{"password": ""})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminEndpointsRequireToken(t *testing.T) {
	router := newTestHandler(t).Router()

	paths := []struct {
		method, path string
	}{
		{http.MethodGet, "/admin/users"},
		{http.MethodPost, "/admin/approve"},
		{http.MethodPost, "/admin/reject"},
		{http.MethodPost, "/admin/deactivate"},
		{http.MethodPost, "/admin/create"},
		{http.MethodPost, "/admin/reset-password"},
		{http.MethodGet, "/admin/interactions"},
		{http.MethodGet, "/admin/menu"},
	}
	for _, p := range paths {
		rec := doJSON(t, router, p.method, p.path, "", map[string]string{"id": "000001"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", p.method, p.path)
	}
}

func TestApproveUnknownUser(t *testing.T) {
	router := newTestHandler(t).Router()
	token := adminToken(t, router)

	rec := doJSON(t, router, http.MethodPost, "/admin/approve", token, map[string]string{"id": "999999"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", decodeBody(t, rec)["error"])
}

func TestDeactivateRequiresID(t *testing.T) {
	router := newTestHandler(t).Router()
	token := adminToken(t, router)

	rec := doJSON(t, router, http.MethodPost, "/admin/deactivate", token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRejectRemovesUser(t *testing.T) {
	h := newTestHandler(t)
	router := h.Router()
	token := adminToken(t, router)

	require.Equal(t, http.StatusOK, doJSON(t, router, http.MethodPost, "/signup", "", map[string]string{
		"name": "Alice", "email": "alice@example.com", "password": "pw123456",
	}).Code)

	rec := doJSON(t, router, http.MethodPost, "/admin/reject", token, map[string]string{"id": "000001"})
	require.Equal(t, http.StatusOK, rec.Code)

	users, err := h.store.Users.ReadAll(t.Context())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestDeactivateBlocksLogin(t *testing.T) {
	router := newTestHandler(t).Router()
	token := adminToken(t, router)

	require.Equal(t, http.StatusOK, doJSON(t, router, http.MethodPost, "/admin/create", token, map[string]string{
		"name": "Alice", "email": "alice@example.com", "password": "pw123456",
	}).Code)

	rec := doJSON(t, router, http.MethodPost, "/admin/deactivate", token, map[string]string{"id": "000001"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/login", "", map[string]string{
		"email": "alice@example.com", "password": "pw123456",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials or not approved", decodeBody(t, rec)["error"])
}

func TestAdminCreateUserIsActive(t *testing.T) {
	h := newTestHandler(t)
	router := h.Router()
	token := adminToken(t, router)

	rec := doJSON(t, router, http.MethodPost, "/admin/create", token, map[string]string{
		"name": "Bob", "email": "bob@example.com", "password": "pw123456",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	users, err := h.store.Users.ReadAll(t.Context())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, model.UserStatusActive, users[0].Status)

	recs, err := h.store.Interactions.ReadAll(t.Context())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, model.InteractionAdminCreateUser, recs[0].Type)
}

func TestResetPasswordGeneratesTemp(t *testing.T) {
	router := newTestHandler(t).Router()
	token := adminToken(t, router)

	require.Equal(t, http.StatusOK, doJSON(t, router, http.MethodPost, "/admin/create", token, map[string]string{
		"name": "Bob", "email": "bob@example.com", "password": "old-password",
	}).Code)

	rec := doJSON(t, router, http.MethodPost, "/admin/reset-password", token, map[string]string{"id": "000001"})
	require.Equal(t, http.StatusOK, rec.Code)
	temp, ok := decodeBody(t, rec)["tempPassword"].(string)
	require.True(t, ok)
	require.NotEmpty(t, temp)

	rec = doJSON(t, router, http.MethodPost, "/login", "", map[string]string{
		"email": "bob@example.com", "password": temp,
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestResetPasswordExplicit(t *testing.T) {
	router := newTestHandler(t).Router()
	token := adminToken(t, router)

	require.Equal(t, http.StatusOK, doJSON(t, router, http.MethodPost, "/admin/create", token, map[string]string{
		"name": "Bob", "email": "bob@example.com", "password": "old-password",
	}).Code)

	rec := doJSON(t, router, http.MethodPost, "/admin/reset-password", token, map[string]string{
		"id": "000001", "newPassword": "brand-new",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	_, hasTemp := decodeBody(t, rec)["tempPassword"]
	assert.False(t, hasTemp)

	rec = doJSON(t, router, http.MethodPost, "/login", "", map[string]string{
		"email": "bob@example.com", "password": "brand-new",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMessagesFlow(t *testing.T) {
	h := newTestHandler(t)
	router := h.Router()

	rec := doJSON(t, router, http.MethodPost, "/messages", "", map[string]string{
		"name": "Carol", "email": "carol@example.com", "subject": "hi", "message": "hello there",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/messages", "", map[string]string{"name": "Carol"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/messages", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var msgs []model.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msgs))
	require.Len(t, msgs, 1)
	assert.Equal(t, "000001", msgs[0].ID)
	assert.Equal(t, "hello there", msgs[0].Message)
	assert.NotEmpty(t, msgs[0].Timestamp)

	recs, err := h.store.Interactions.ReadAll(t.Context())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, model.InteractionContact, recs[0].Type)
	assert.Equal(t, "hello there", recs[0].Message)
}

func TestAdminMenuSorted(t *testing.T) {
	h := newTestHandler(t)
	router := h.Router()
	token := adminToken(t, router)

	require.NoError(t, h.store.Menu.WriteAll(t.Context(), []model.AdminMenuItem{
		{ID: "m2", Order: 2, Label: "Users", Path: "/admin/users"},
		{ID: "m1", Order: 1, Label: "Dashboard", Path: "/admin"},
	}))

	rec := doJSON(t, router, http.MethodGet, "/admin/menu", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var items []model.AdminMenuItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "Dashboard", items[0].Label)
	assert.Equal(t, "Users", items[1].Label)
}

func TestHealth(t *testing.T) {
	router := newTestHandler(t).Router()
	rec := doJSON(t, router, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "file", body["db"])
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestHandler(t).Router()
	doJSON(t, router, http.MethodGet, "/health", "", nil)

	rec := doJSON(t, router, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "site_admin_http_requests_total")
}

func TestDocsEndpoints(t *testing.T) {
	router := newTestHandler(t).Router()

	rec := doJSON(t, router, http.MethodGet, "/api/openapi.yaml", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Site Admin API")

	rec = doJSON(t, router, http.MethodGet, "/api/docs", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "redoc")
}

func TestNextUserID(t *testing.T) {
	assert.Equal(t, "000001", nextUserID(nil))
	assert.Equal(t, "000013", nextUserID([]model.User{
		{ID: "000003"}, {ID: "000012"}, {ID: "legacy-x"},
	}))
}
