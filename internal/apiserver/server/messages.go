package server

import (
	"encoding/json"
	"net/http"

	"site-admin/internal/shared/model"
)

// ==================== 联系表单 ====================

type messageRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// CreateMessage 提交联系表单留言
//
// 路由: POST /messages
func (h *Handler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Message == "" {
		writeError(w, http.StatusBadRequest, "name, email and message are required")
		return
	}

	ts := nowISO()
	err := h.store.Messages.Update(r.Context(), func(msgs []model.Message) ([]model.Message, error) {
		msgs = append(msgs, model.Message{
			ID:        nextMessageID(len(msgs)),
			Name:      req.Name,
			Email:     req.Email,
			Subject:   req.Subject,
			Message:   req.Message,
			Timestamp: ts,
		})
		return msgs, nil
	})
	if err != nil {
		h.storageError(w, "create message", err)
		return
	}

	if err := h.store.AppendInteraction(r.Context(), model.Interaction{
		Type:      model.InteractionContact,
		Name:      req.Name,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		Timestamp: ts,
	}); err != nil {
		h.log.WithError(err).Warn("append contact interaction failed")
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// ListMessages 返回全部留言
//
// 路由: GET /messages
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.store.Messages.ReadAll(r.Context())
	if err != nil {
		h.storageError(w, "list messages", err)
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}
