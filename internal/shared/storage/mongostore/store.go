// Package mongostore 实现基于 MongoDB 的存储后端
//
// 使用 mongo-go-driver v2。与常规文档库用法不同，这里刻意保持与文件
// 后端一致的「整体快照替换」语义：ReadAll 拉取集合全量文档，WriteAll
// 先全删后全插（非 diff）。内部标识符 _id 在两个方向上都被剥离——
// 读出时剥掉并在缺少 id 字段的文档上以 _id 十六进制串补一个稳定的
// 字符串 id，写入时剥掉任何残留 _id 以避免插入冲突。
package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"site-admin/internal/shared/storage"
)

// Store 实现 storage.Backend 接口的 MongoDB 后端
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Config 连接参数
type Config struct {
	URI              string
	DBName           string        // 默认 qa_app
	ConnectTimeout   time.Duration // 默认 3s
	SelectionTimeout time.Duration // 默认 3s
}

// NewStore 创建 MongoDB 后端
//
// 连接探测快速失败：connect / server selection 超时默认 3 秒，
// 不可达的 URI 不会拖住请求处理。任何失败（含 ping 失败）都会
// 清理半建连接并返回错误，由上层 Selector 决定回退。
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("mongostore: no URI configured")
	}
	if cfg.DBName == "" {
		cfg.DBName = "qa_app"
	}
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = 3 * time.Second
	}
	if cfg.SelectionTimeout == 0 {
		cfg.SelectionTimeout = 3 * time.Second
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.SelectionTimeout)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("mongostore: connect failed: %w", err)
	}

	// 验证连接
	pingCtx, cancel := context.WithTimeout(ctx, cfg.SelectionTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		// 清理半建连接
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongostore: ping failed: %w", err)
	}

	return &Store{client: client, db: client.Database(cfg.DBName)}, nil
}

// Kind 返回后端类型
func (s *Store) Kind() string { return "mongodb" }

// Close 关闭 MongoDB 连接
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *Store) col(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// ReadAll 读取集合全量快照
// 剥离 _id，文档缺少 id 字段时以 _id 十六进制串补上。
func (s *Store) ReadAll(ctx context.Context, collection string) ([]map[string]any, error) {
	cursor, err := s.col(collection).Find(ctx, bson.D{})
	if err != nil {
		return nil, wrapUnavailable("find", collection, err)
	}
	defer cursor.Close(ctx)

	docs := []map[string]any{}
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, wrapUnavailable("decode", collection, err)
		}
		docs = append(docs, stripInternalID(raw))
	}
	if err := cursor.Err(); err != nil {
		return nil, wrapUnavailable("cursor", collection, err)
	}
	return docs, nil
}

// WriteAll 整体快照替换：先全删后全插
// 插入前剥离任何残留的 _id，避免插入冲突。
func (s *Store) WriteAll(ctx context.Context, collection string, docs []map[string]any) error {
	if _, err := s.col(collection).DeleteMany(ctx, bson.D{}); err != nil {
		return wrapUnavailable("delete", collection, err)
	}
	if len(docs) == 0 {
		return nil
	}

	toInsert := make([]any, 0, len(docs))
	for _, doc := range docs {
		clean := make(map[string]any, len(doc))
		for k, v := range doc {
			if k == "_id" {
				continue
			}
			clean[k] = v
		}
		toInsert = append(toInsert, clean)
	}
	if _, err := s.col(collection).InsertMany(ctx, toInsert); err != nil {
		return wrapUnavailable("insert", collection, err)
	}
	return nil
}

// stripInternalID 剥离 _id，必要时用它补一个稳定的字符串 id
func stripInternalID(raw bson.M) map[string]any {
	doc := make(map[string]any, len(raw))
	for k, v := range raw {
		if k == "_id" {
			continue
		}
		doc[k] = v
	}
	if _, ok := doc["id"]; !ok {
		if internal, ok := raw["_id"]; ok {
			doc["id"] = idString(internal)
		}
	}
	return doc
}

// idString 把 _id 规整为字符串
func idString(v any) string {
	switch id := v.(type) {
	case bson.ObjectID:
		return id.Hex()
	case string:
		return id
	default:
		return fmt.Sprintf("%v", id)
	}
}

// wrapUnavailable 连接成功之后的操作失败一律归为 ErrUnavailable
// 回退选择只发生在连接期，不按调用回退。
func wrapUnavailable(op, collection string, err error) error {
	return fmt.Errorf("mongostore: %s %s: %w: %w", op, collection, storage.ErrUnavailable, err)
}
