package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File 文件存储，以 JSON 形式落盘，适合 CLI 与桌面进程
type File struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// NewFile 创建文件存储，文件不存在时首次写入创建
func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, fmt.Errorf("store: file path cannot be empty")
	}

	f := &File{
		path:   path,
		values: make(map[string]string),
	}

	if err := f.load(); err != nil {
		return nil, err
	}

	return f, nil
}

func (f *File) load() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("store: read %s: %w", f.path, err)
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &f.values); err != nil {
		return fmt.Errorf("store: parse %s: %w", f.path, err)
	}

	return nil
}

// flush 原子落盘：先写临时文件再 rename
func (f *File) flush() error {
	data, err := json.MarshalIndent(f.values, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".auth-store-*")
	if err != nil {
		return fmt.Errorf("store: create temp file: %w", err)
	}

	// 凭据文件仅对属主可读写
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), f.path)
}

func (f *File) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	value, ok := f.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (f *File) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.values[key] = value
	return f.flush()
}

func (f *File) Remove(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.values[key]; !ok {
		return nil
	}

	delete(f.values, key)
	return f.flush()
}
