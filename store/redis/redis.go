// Package redis 提供基于 Redis 的令牌存储，适合多实例共享同一会话
// 的服务端场景
package redis

import (
	"context"
	"errors"
	"runtime"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kochabx/auth/store"
)

var (
	ErrClientNotInitialized = errors.New("redis client not initialized")
)

// TokenStore Redis 令牌存储
type TokenStore struct {
	client *redis.Client
	config *Config
	ttl    time.Duration
}

// Option 配置选项函数类型
type Option func(*TokenStore)

// WithTTL 设置令牌过期时间，0 表示永不过期
func WithTTL(ttl time.Duration) Option {
	return func(s *TokenStore) {
		s.ttl = ttl
	}
}

// New 创建 Redis 令牌存储
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

	client, err := s.createClient()
	if err != nil {
		return nil, err
	}
	s.client = client

	// 测试连接
	if err := s.Ping(context.Background()); err != nil {
		_ = s.Close()
		return nil, err
	}

	return s, nil
}

// createClient 创建 Redis 客户端
func (s *TokenStore) createClient() (*redis.Client, error) {
	poolSize := s.config.PoolSize
	if poolSize == 0 {
		poolSize = 10 * runtime.GOMAXPROCS(0)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         s.config.Addr,
		Username:     s.config.Username,
		Password:     s.config.Password,
		DB:           s.config.DB,
		Protocol:     s.config.Protocol,
		PoolSize:     poolSize,
		DialTimeout:  time.Duration(s.config.DialTimeout) * time.Millisecond,
		ReadTimeout:  time.Duration(s.config.ReadTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(s.config.WriteTimeout) * time.Millisecond,
		MaxRetries:   s.config.MaxRetries,
	})

	return client, nil
}

// Get 读取 key，不存在时返回 store.ErrNotFound
func (s *TokenStore) Get(ctx context.Context, key string) (string, error) {
	if s.client == nil {
		return "", ErrClientNotInitialized
	}

	value, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", store.ErrNotFound
		}
		return "", err
	}
	return value, nil
}

// Set 写入 key
func (s *TokenStore) Set(ctx context.Context, key, value string) error {
	if s.client == nil {
		return ErrClientNotInitialized
	}

	return s.client.Set(ctx, key, value, s.ttl).Err()
}

// Remove 删除 key，key 不存在不报错
func (s *TokenStore) Remove(ctx context.Context, key string) error {
	if s.client == nil {
		return ErrClientNotInitialized
	}

	return s.client.Del(ctx, key).Err()
}

// Ping 测试连接是否正常
func (s *TokenStore) Ping(ctx context.Context) error {
	if s.client == nil {
		return ErrClientNotInitialized
	}

	_, err := s.client.Ping(ctx).Result()
	return err
}

// Close 关闭连接
func (s *TokenStore) Close() error {
	if s.client == nil {
		return nil
	}

	err := s.client.Close()
	s.client = nil // 清空引用，避免重复关闭
	return err
}

// GetClient 获取原始 Redis 客户端
func (s *TokenStore) GetClient() *redis.Client {
	return s.client
}
