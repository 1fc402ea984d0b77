package model

// InteractionType 审计事件类型
type InteractionType string

const (
	InteractionSignup          InteractionType = "signup"
	InteractionLogin           InteractionType = "login"
	InteractionContact         InteractionType = "contact"
	InteractionAdminCreateUser InteractionType = "admin_create_user"
)

// Interaction 审计日志条目
//
// 只追加、无条数上限、无保留策略、不保证有 ID。
// 各事件类型填充的字段不同，未用字段省略。
type Interaction struct {
	Type      InteractionType `json:"type"`
	Name      string          `json:"name,omitempty"`
	Email     string          `json:"email"`
	Subject   string          `json:"subject,omitempty"`
	Message   string          `json:"message,omitempty"`
	Timestamp string          `json:"timestamp"` // ISO-8601 UTC
}
