package model

// Message 联系表单留言
//
// ID 由「当前集合长度 + 1」派生并补齐到 6 位。并发写入或未来支持删除时
// 不保证唯一，只在单写者低并发场景下可用。只追加，无更新/删除路径。
type Message struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"` // ISO-8601 UTC
}
