package store

import (
	"context"
	"fmt"
)

// KV 适配调用方自带的键值回调（浏览器 localStorage、移动端 secure
// storage 等宿主提供的存储），三个回调必须全部提供
type KV struct {
	GetFunc    func(ctx context.Context, key string) (string, bool, error)
	SetFunc    func(ctx context.Context, key, value string) error
	RemoveFunc func(ctx context.Context, key string) error
}

// NewKV 创建回调存储
func NewKV(get func(ctx context.Context, key string) (string, bool, error),
	set func(ctx context.Context, key, value string) error,
	remove func(ctx context.Context, key string) error,
) (*KV, error) {
	if get == nil || set == nil || remove == nil {
		return nil, fmt.Errorf("store: kv storage requires get, set and remove callbacks")
	}

	return &KV{
		GetFunc:    get,
		SetFunc:    set,
		RemoveFunc: remove,
	}, nil
}

func (kv *KV) Get(ctx context.Context, key string) (string, error) {
	value, ok, err := kv.GetFunc(ctx, key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (kv *KV) Set(ctx context.Context, key, value string) error {
	return kv.SetFunc(ctx, key, value)
}

func (kv *KV) Remove(ctx context.Context, key string) error {
	return kv.RemoveFunc(ctx, key)
}
