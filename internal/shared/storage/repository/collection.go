// Package repository 后端无关的类型化集合仓库
//
// 每个仓库只拥有一个逻辑集合，暴露 ReadAll / WriteAll 两个快照操作，
// 外加 Update 把「读全量 → 内存修改 → 写回全量」的循环收进单进程
// 互斥锁。实体与后端的 map 快照之间经由 JSON 编解码转换：未声明的
// 字段在读入时即被丢弃（有界 schema），写出时键名即 JSON 字段名。
//
// 注意：互斥只在本进程内生效。多进程共享同一文件，或多实例共享同一
// 文档库时，后写者整体覆盖先写者，这是文档化的已知竞态。
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"site-admin/internal/shared/storage"
)

// Collection 类型化集合仓库
type Collection[T any] struct {
	name string
	sel  *storage.Selector
	mu   sync.Mutex // 串行化本进程内的读改写循环
}

// NewCollection 创建集合仓库
func NewCollection[T any](sel *storage.Selector, name string) *Collection[T] {
	return &Collection[T]{name: name, sel: sel}
}

// Name 返回集合名
func (c *Collection[T]) Name() string { return c.name }

// ReadAll 读取集合全量快照
func (c *Collection[T]) ReadAll(ctx context.Context) ([]T, error) {
	docs, err := c.sel.Backend(ctx).ReadAll(ctx, c.name)
	if err != nil {
		return nil, err
	}
	return decodeDocs[T](c.name, docs)
}

// WriteAll 整体快照替换
func (c *Collection[T]) WriteAll(ctx context.Context, items []T) error {
	docs, err := encodeDocs(c.name, items)
	if err != nil {
		return err
	}
	return c.sel.Backend(ctx).WriteAll(ctx, c.name, docs)
}

// Update 在集合互斥锁内执行一次完整的读改写循环
// fn 返回错误时放弃写回，错误原样向上传播。
func (c *Collection[T]) Update(ctx context.Context, fn func(items []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.ReadAll(ctx)
	if err != nil {
		return err
	}
	out, err := fn(items)
	if err != nil {
		return err
	}
	return c.WriteAll(ctx, out)
}

// decodeDocs map 快照 → 类型化实体（经 JSON 往返，丢弃未声明字段）
func decodeDocs[T any](name string, docs []map[string]any) ([]T, error) {
	data, err := json.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("repository: encode %s snapshot: %w", name, err)
	}
	items := []T{}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("repository: decode %s snapshot: %w: %w", name, storage.ErrCorrupt, err)
	}
	return items, nil
}

// encodeDocs 类型化实体 → map 快照
func encodeDocs[T any](name string, items []T) ([]map[string]any, error) {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("repository: encode %s: %w", name, err)
	}
	docs := []map[string]any{}
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("repository: encode %s: %w", name, err)
	}
	return docs, nil
}
