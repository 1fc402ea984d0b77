// Package filestore 实现基于本地 JSON 文件的存储后端
//
// 每个集合对应一个 JSON 数组文件（users.json、messages.json、
// interactions.json、admin-menu.json），pretty-print 输出，每次写入
// 都是全量数组覆盖。文件不加锁；并发写者可能互相覆盖，这是文档化的
// 已知限制（上层 repository 在单进程内以互斥锁串行化读改写）。
package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"site-admin/internal/shared/storage"
)

// 集合名 → 文件名
var fileNames = map[string]string{
	storage.ColUsers:        "users.json",
	storage.ColMessages:     "messages.json",
	storage.ColInteractions: "interactions.json",
	storage.ColAdminMenu:    "admin-menu.json",
}

// Store 文件后端
type Store struct {
	dir string
}

// NewStore 创建文件后端，dir 为集合文件所在目录
func NewStore(dir string) *Store {
	if dir == "" {
		dir = "."
	}
	return &Store{dir: dir}
}

// Kind 返回后端类型
func (s *Store) Kind() string { return "file" }

// Close 文件后端无连接可关
func (s *Store) Close() error { return nil }

func (s *Store) path(collection string) string {
	name, ok := fileNames[collection]
	if !ok {
		// 未注册的集合按约定命名，dbtool 等工具可能用到
		name = collection + ".json"
	}
	return filepath.Join(s.dir, name)
}

// ReadAll 读取集合全量快照
// 文件不存在返回空切片；内容损坏返回 ErrCorrupt，绝不吞成空集合。
func (s *Store) ReadAll(ctx context.Context, collection string) ([]map[string]any, error) {
	data, err := os.ReadFile(s.path(collection))
	if err != nil {
		if os.IsNotExist(err) {
			return []map[string]any{}, nil
		}
		return nil, fmt.Errorf("filestore: read %s: %w", collection, err)
	}

	var docs []map[string]any
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("filestore: parse %s: %w: %w", collection, storage.ErrCorrupt, err)
	}
	if docs == nil {
		docs = []map[string]any{}
	}
	return docs, nil
}

// WriteAll 全量覆盖集合文件，pretty-print 两空格缩进
func (s *Store) WriteAll(ctx context.Context, collection string, docs []map[string]any) error {
	if docs == nil {
		docs = []map[string]any{}
	}
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("filestore: marshal %s: %w", collection, err)
	}
	if err := os.WriteFile(s.path(collection), data, 0644); err != nil {
		return fmt.Errorf("filestore: write %s: %w", collection, err)
	}
	return nil
}
