package storage

import (
	"context"
	"sync"

	"site-admin/pkg/logging"
)

// ConnectFunc 文档库连接探测
// 成功返回可用后端，失败返回错误——Selector 把任何错误变体
// 确定性地映射为文件后端，不走异常控制流。
type ConnectFunc func(ctx context.Context) (Backend, error)

// Selector 按调用决定使用文档库后端还是本地文件后端
//
// 首次使用时尝试建立文档库连接（探测自带有界超时，快速失败）；
// 连接一旦成功即进程级缓存，之后无条件复用，不做健康复查——
// 中途失联只会在下一次连接尝试（如显式 Close 之后）被发现。
// 没有缓存连接时，每次调用都会重新评估回退决策。
type Selector struct {
	mu      sync.Mutex
	cached  Backend // 文档库后端，连接成功后缓存
	file    Backend
	connect ConnectFunc // nil 表示未配置文档库
	log     *logging.Logger
}

// NewSelector 创建后端选择器
// connect 为 nil 时永远使用 file 后端。
func NewSelector(file Backend, connect ConnectFunc, log *logging.Logger) *Selector {
	if log == nil {
		log = logging.Default("storage")
	}
	return &Selector{file: file, connect: connect, log: log}
}

// Backend 返回当前应使用的后端
func (s *Selector) Backend(ctx context.Context) Backend {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil {
		return s.cached
	}
	if s.connect == nil {
		return s.file
	}

	b, err := s.connect(ctx)
	if err != nil {
		// 快速失败：缺配置/超时/认证失败一律回退文件后端
		s.log.WithError(err).Warn("document store unreachable, falling back to file backend")
		return s.file
	}
	s.cached = b
	return b
}

// Kind 返回当前后端类型（"mongodb" 或 "file"）
func (s *Selector) Kind(ctx context.Context) string {
	return s.Backend(ctx).Kind()
}

// Close 断开缓存的文档库连接
// 之后的调用会重新探测（文件后端无需关闭）。
func (s *Selector) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached == nil {
		return nil
	}
	err := s.cached.Close()
	s.cached = nil
	return err
}
