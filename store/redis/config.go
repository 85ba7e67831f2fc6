package redis

import (
	"github.com/kochabx/auth/core/tag"
)

// Config Redis 连接配置
type Config struct {
	// Addr Redis 地址，如 "localhost:6379"
	Addr string `default:"localhost:6379"`

	// Username Redis 用户名 (Redis 6.0+)
	Username string

	// Password Redis 密码
	Password string

	// DB 数据库索引（0-15）
	DB int

	// Protocol Redis 协议版本，2: RESP2，3: RESP3 (Redis 6.0+)
	Protocol int `default:"3"`

	// DialTimeout 连接超时时间（毫秒）
	DialTimeout int64 `default:"5000"`

	// ReadTimeout 读操作超时时间（毫秒）
	ReadTimeout int64 `default:"3000"`

	// WriteTimeout 写操作超时时间（毫秒）
	WriteTimeout int64 `default:"3000"`

	// PoolSize 连接池最大连接数，0 表示 10 * GOMAXPROCS
	PoolSize int

	// MaxRetries 命令失败后的最大重试次数
	MaxRetries int
}

// Init 应用默认值
func (c *Config) Init() error {
	return tag.ApplyDefaults(c)
}
