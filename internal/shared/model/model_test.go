package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestUserStatus(t *testing.T) {
	tests := []struct {
		status UserStatus
		want   string
	}{
		{UserStatusPending, "pending"},
		{UserStatusActive, "active"},
		{UserStatusInactive, "inactive"},
	}

	for _, tt := range tests {
		if string(tt.status) != tt.want {
			t.Errorf("UserStatus = %v, want %v", tt.status, tt.want)
		}
	}
}

func TestInteractionType(t *testing.T) {
	tests := []struct {
		typ  InteractionType
		want string
	}{
		{InteractionSignup, "signup"},
		{InteractionLogin, "login"},
		{InteractionContact, "contact"},
		{InteractionAdminCreateUser, "admin_create_user"},
	}

	for _, tt := range tests {
		if string(tt.typ) != tt.want {
			t.Errorf("InteractionType = %v, want %v", tt.typ, tt.want)
		}
	}
}

func TestUserJSONFieldNames(t *testing.T) {
	u := User{
		ID:       "000001",
		Name:     "A",
		Email:    "a@x.com",
		Password: "$2a$10$hash",
		Status:   UserStatusPending,
	}
	data, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	s := string(data)
	for _, key := range []string{`"id"`, `"name"`, `"email"`, `"password"`, `"status"`} {
		if !strings.Contains(s, key) {
			t.Errorf("User JSON missing key %s: %s", key, s)
		}
	}
	// 可选透传字段为空时省略
	if strings.Contains(s, "company") || strings.Contains(s, "phone") {
		t.Errorf("empty passthrough fields should be omitted: %s", s)
	}
}

func TestInteractionOmitsUnusedFields(t *testing.T) {
	// login 事件只有 email + timestamp
	i := Interaction{Type: InteractionLogin, Email: "a@x.com", Timestamp: "2025-01-01T00:00:00.000Z"}
	data, err := json.Marshal(i)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	s := string(data)
	if strings.Contains(s, "subject") || strings.Contains(s, "message") || strings.Contains(s, `"name"`) {
		t.Errorf("login interaction should omit unused fields: %s", s)
	}
}
