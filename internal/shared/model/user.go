// Package model 定义核心数据模型
//
// 所有实体以 JSON 字段名作为存储键：文件后端直接序列化为 JSON 数组，
// 文档库后端经由 map[string]any 快照写入，字段名保持一致。
package model

// UserStatus 用户状态
type UserStatus string

const (
	UserStatusPending  UserStatus = "pending"
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// User 用户
//
// ID 为 6 位零填充十进制字符串（如 "000001"）。
// Password 存储 bcrypt 哈希；管理接口按原样返回该字段。
// Company/Phone 是有界的可选透传字段：注册请求可以带，但除此之外
// 任意额外字段一律丢弃，不进入存储。
type User struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Status   UserStatus `json:"status"`
	Company  string     `json:"company,omitempty"`
	Phone    string     `json:"phone,omitempty"`
}
