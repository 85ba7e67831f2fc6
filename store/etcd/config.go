package etcd

import (
	"time"

	"github.com/kochabx/auth/core/tag"
)

// Config etcd 配置
type Config struct {
	Endpoints        []string      `json:"endpoints" default:"localhost:2379"`
	Username         string        `json:"username"`
	Password         string        `json:"password"`
	DialTimeout      time.Duration `json:"dialTimeout" default:"5s"`
	KeepAliveTime    time.Duration `json:"keepAliveTime" default:"30s"`
	KeepAliveTimeout time.Duration `json:"keepAliveTimeout" default:"5s"`
}

// Init 应用默认值
func (c *Config) Init() error {
	return tag.ApplyDefaults(c)
}
