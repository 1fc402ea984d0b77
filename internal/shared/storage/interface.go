// Package storage 定义持久化存储层抽象接口
//
// 设计原则：依赖倒置 (DIP)
//   - 调用方只依赖接口，不知道具体实现
//   - 具体实现在子包中：filestore/, mongostore/
//   - 初始化时通过 Selector 决定实际后端
//
// 所有集合统一采用「整体快照替换」写模式：读出全量、内存修改、
// 全量写回，从不做局部 patch。
package storage

import "context"

// Collection 名称常量
const (
	ColUsers        = "users"
	ColMessages     = "messages"
	ColInteractions = "interactions"
	ColAdminMenu    = "admin_menu"
)

// Backend 单个存储后端的统一读写契约
//
// 文档以 map[string]any 快照形式流动，键为实体的 JSON 字段名。
// ReadAll 在文档库后端须剥离内部标识符（_id），并在文档缺少 id 字段时
// 以其十六进制串补上稳定的字符串 id；WriteAll 在文档库后端实现为
// 先全删后全插（非 diff），插入前剥离任何残留的内部标识符。
type Backend interface {
	ReadAll(ctx context.Context, collection string) ([]map[string]any, error)
	WriteAll(ctx context.Context, collection string, docs []map[string]any) error
	Kind() string // "mongodb" | "file"
	Close() error
}
