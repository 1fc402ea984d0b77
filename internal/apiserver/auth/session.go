// Package auth 管理后台认证：会话令牌、密码哈希、HTTP 中间件
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

// TokenTTL 令牌固定生命周期
const TokenTTL = 12 * time.Hour

// SessionStore 管理后台会话令牌存储
//
// 令牌是不透明随机串，只存在进程内存中，不绑定具体管理员身份
// （共享密码，所有令牌等价）。过期条目在下一次失败校验时惰性淘汰，
// 没有主动清扫，也不限制令牌总数——进程重启即全部失效。
// 共享密码本身由调用方（登录 Handler）先行校验，Issue 不做前置检查。
type SessionStore struct {
	mu     sync.Mutex
	tokens map[string]time.Time // token → 过期时刻
	ttl    time.Duration
	now    func() time.Time // 测试可注入
}

// NewSessionStore 创建会话存储，ttl <= 0 时使用 TokenTTL
func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = TokenTTL
	}
	return &SessionStore{
		tokens: make(map[string]time.Time),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue 签发一个新令牌
func (s *SessionStore) Issue() string {
	b := make([]byte, 32)
	rand.Read(b)
	token := hex.EncodeToString(b)

	s.mu.Lock()
	s.tokens[token] = s.now().Add(s.ttl)
	s.mu.Unlock()
	return token
}

// Validate 校验令牌
// 未知令牌返回 false；已过期返回 false 并淘汰该条目；有效令牌返回
// true 且状态不变（不续期）。
func (s *SessionStore) Validate(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt, ok := s.tokens[token]
	if !ok {
		return false
	}
	if !s.now().Before(expiresAt) {
		delete(s.tokens, token)
		return false
	}
	return true
}
