// Package etcd 提供基于 etcd 的令牌存储
package etcd

import (
	"context"
	"errors"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"

	"github.com/kochabx/auth/store"
)

var (
	ErrClientNotInitialized = errors.New("etcd client not initialized")
	ErrConnectionFailed     = errors.New("failed to connect to etcd")
)

// TokenStore etcd 令牌存储
type TokenStore struct {
	client *clientv3.Client
	config *Config
	prefix string
}

// Option 配置选项函数类型
type Option func(*TokenStore)

// WithPrefix 设置 key 前缀，用于多应用共用同一 etcd 集群
func WithPrefix(prefix string) Option {
	return func(s *TokenStore) {
		s.prefix = prefix
	}
}

// New 创建 etcd 令牌存储
func New(config *Config, opts ...Option) (*TokenStore, error) {
	s := &TokenStore{
		config: config,
	}

	if err := s.config.Init(); err != nil {
		return nil, err
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	if err := s.connect(); err != nil {
		return nil, err
	}

	// 测试连接
	if err := s.Ping(context.TODO()); err != nil {
		_ = s.Close()
		return nil, err
	}

	return s, nil
}

// connect 创建 etcd 连接
func (s *TokenStore) connect() error {
	client, err := clientv3.New(clientv3.Config{
		Endpoints:            s.config.Endpoints,
		Username:             s.config.Username,
		Password:             s.config.Password,
		DialTimeout:          s.config.DialTimeout,
		DialKeepAliveTime:    s.config.KeepAliveTime,
		DialKeepAliveTimeout: s.config.KeepAliveTimeout,
	})
	if err != nil {
		return ErrConnectionFailed
	}
	s.client = client
	return nil
}

func (s *TokenStore) key(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + key
}

// Get 读取 key，不存在时返回 store.ErrNotFound
func (s *TokenStore) Get(ctx context.Context, key string) (string, error) {
	if s.client == nil {
		return "", ErrClientNotInitialized
	}

	resp, err := s.client.Get(ctx, s.key(key))
	if err != nil {
		return "", err
	}
	if len(resp.Kvs) == 0 {
		return "", store.ErrNotFound
	}
	return string(resp.Kvs[0].Value), nil
}

// Set 写入 key
func (s *TokenStore) Set(ctx context.Context, key, value string) error {
	if s.client == nil {
		return ErrClientNotInitialized
	}

	_, err := s.client.Put(ctx, s.key(key), value)
	return err
}

// Remove 删除 key，key 不存在不报错
func (s *TokenStore) Remove(ctx context.Context, key string) error {
	if s.client == nil {
		return ErrClientNotInitialized
	}

	_, err := s.client.Delete(ctx, s.key(key))
	return err
}

// Ping 测试 etcd 连接是否正常
func (s *TokenStore) Ping(ctx context.Context) error {
	if s.client == nil {
		return ErrClientNotInitialized
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := s.client.Status(ctxWithTimeout, s.config.Endpoints[0])
	return err
}

// GetClient 获取原始的 etcd 客户端
func (s *TokenStore) GetClient() *clientv3.Client {
	return s.client
}

// Close 关闭 etcd 连接
func (s *TokenStore) Close() error {
	if s.client == nil {
		return nil
	}

	if err := s.client.Close(); err != nil {
		return err
	}

	s.client = nil // 清空引用，避免重复关闭
	return nil
}
