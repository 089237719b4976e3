package config

import "sync/atomic"

// Store 持有当前生效的配置快照。热更新时整体替换指针，
// 请求路径上的读取（JWT校验、签发）无锁。快照本身只读，不可原地修改。
type Store struct {
	current atomic.Pointer[Config]
}

func NewStore(cfg *Config) *Store {
	s := &Store{}
	s.current.Store(cfg)
	return s
}

// Load 返回当前快照
func (s *Store) Load() *Config {
	return s.current.Load()
}

// Swap 替换为新快照
func (s *Store) Swap(cfg *Config) {
	s.current.Store(cfg)
}
