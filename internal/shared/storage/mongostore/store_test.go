package mongostore

import (
	"context"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"site-admin/internal/shared/storage"
)

// Compile-time interface check
var _ storage.Backend = (*Store)(nil)

// testStore 创建测试用 Store，使用独立数据库避免污染
func testStore(t *testing.T) *Store {
	t.Helper()

	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	s, err := NewStore(context.Background(), Config{
		URI:    uri,
		DBName: "site_admin_test",
	})
	if err != nil {
		t.Skipf("MongoDB not available: %v", err)
	}

	ctx := context.Background()
	if err := s.db.Drop(ctx); err != nil {
		t.Fatalf("Failed to drop test database: %v", err)
	}

	t.Cleanup(func() {
		s.db.Drop(context.Background())
		s.Close()
	})

	return s
}

func TestNewStoreFastFail(t *testing.T) {
	start := time.Now()
	_, err := NewStore(context.Background(), Config{
		URI:              "mongodb://127.0.0.1:1", // 不可达端口
		DBName:           "site_admin_test",
		ConnectTimeout:   500 * time.Millisecond,
		SelectionTimeout: 500 * time.Millisecond,
	})
	if err == nil {
		t.Fatal("expected connection error")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("probe took %v, want bounded fast-fail", elapsed)
	}
}

func TestNewStoreNoURI(t *testing.T) {
	if _, err := NewStore(context.Background(), Config{}); err == nil {
		t.Fatal("expected error for empty URI")
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	in := []map[string]any{
		{"id": "000001", "name": "A", "email": "a@x.com", "status": "pending"},
		{"id": "000002", "name": "B", "email": "b@x.com", "status": "active"},
	}
	if err := s.WriteAll(ctx, storage.ColUsers, in); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}

	out, err := s.ReadAll(ctx, storage.ColUsers)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	for _, doc := range out {
		if _, ok := doc["_id"]; ok {
			t.Errorf("internal _id should be stripped: %v", doc)
		}
	}
}

func TestWriteAllReplacesSnapshot(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	s.WriteAll(ctx, storage.ColMessages, []map[string]any{{"id": "000001"}, {"id": "000002"}})
	if err := s.WriteAll(ctx, storage.ColMessages, []map[string]any{{"id": "000003"}}); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}

	out, err := s.ReadAll(ctx, storage.ColMessages)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(out) != 1 || out[0]["id"] != "000003" {
		t.Errorf("WriteAll should delete-all-then-insert-all, got %v", out)
	}
}

func TestWriteAllStripsLeftoverInternalID(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	// 带残留 _id 的快照写两次不应产生插入冲突
	withID := []map[string]any{{"_id": bson.NewObjectID(), "id": "000001", "name": "A"}}
	if err := s.WriteAll(ctx, storage.ColUsers, withID); err != nil {
		t.Fatalf("first WriteAll: %v", err)
	}
	if err := s.WriteAll(ctx, storage.ColUsers, withID); err != nil {
		t.Fatalf("second WriteAll: %v", err)
	}
}

func TestReadAllSubstitutesStableID(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	// 模拟种子脚本直接插入的无 id 文档
	oid := bson.NewObjectID()
	if _, err := s.col(storage.ColAdminMenu).InsertOne(ctx, bson.M{"_id": oid, "label": "Dashboard", "order": 1}); err != nil {
		t.Fatalf("InsertOne: %v", err)
	}

	out, err := s.ReadAll(ctx, storage.ColAdminMenu)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("len = %d, want 1", len(out))
	}
	if out[0]["id"] != oid.Hex() {
		t.Errorf("id = %v, want ObjectID hex %s", out[0]["id"], oid.Hex())
	}
}

func TestStripInternalID(t *testing.T) {
	oid := bson.NewObjectID()

	// 缺 id 的文档补 _id 十六进制串
	doc := stripInternalID(bson.M{"_id": oid, "name": "A"})
	if doc["id"] != oid.Hex() {
		t.Errorf("id = %v, want %s", doc["id"], oid.Hex())
	}

	// 已有 id 的文档保留原 id
	doc = stripInternalID(bson.M{"_id": oid, "id": "000001", "name": "A"})
	if doc["id"] != "000001" {
		t.Errorf("id = %v, want 000001", doc["id"])
	}
	if _, ok := doc["_id"]; ok {
		t.Error("_id should be stripped")
	}
}
