// Package storage 定义存储层领域错误
//
// 这些错误用于隔离业务层与底层存储引擎的错误类型，
// 各后端实现（filestore/mongostore）负责将底层错误转换为这些领域错误。
package storage

import "errors"

var (
	// ErrNotFound 实体不存在
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate 唯一性检查失败（如邮箱已注册）
	ErrDuplicate = errors.New("duplicate: entity already exists")

	// ErrCorrupt 集合文件内容损坏（JSON 解析失败）
	// 必须向上传播，绝不吞成空集合
	ErrCorrupt = errors.New("storage: collection data corrupt")

	// ErrUnavailable 文档库在连接成功之后的操作失败（如瞬时网络错误）
	// 连接期之后不做逐调用回退，调用方应把它暴露为服务端错误
	ErrUnavailable = errors.New("storage: backend unavailable")
)
