package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// storageContract 对任意 Storage 实现跑同一组约束
func storageContract(t *testing.T, s Storage) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get missing key: err = %v, want ErrNotFound", err)
	}

	if err := s.Set(ctx, "token", "value-1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := s.Get(ctx, "token")
	if err != nil || got != "value-1" {
		t.Fatalf("Get = %q, %v", got, err)
	}

	// 覆盖写
	if err := s.Set(ctx, "token", "value-2"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got, _ := s.Get(ctx, "token"); got != "value-2" {
		t.Errorf("Get after overwrite = %q", got)
	}

	if err := s.Remove(ctx, "token"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := s.Get(ctx, "token"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Remove: err = %v, want ErrNotFound", err)
	}

	// 删除不存在的 key 不报错
	if err := s.Remove(ctx, "token"); err != nil {
		t.Errorf("Remove absent key: %v", err)
	}
}

func TestMemory(t *testing.T) {
	storageContract(t, NewMemory())
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth.json")
	f, err := NewFile(path)
	if err != nil {
		t.Fatal(err)
	}
	storageContract(t, f)
}

func TestFilePersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "auth.json")

	f1, err := NewFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := f1.Set(ctx, DefaultRefreshTokenKey, "persisted"); err != nil {
		t.Fatal(err)
	}

	// 文件权限仅属主可读写
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("file mode = %o, want 600", perm)
	}

	f2, err := NewFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got, err := f2.Get(ctx, DefaultRefreshTokenKey)
	if err != nil || got != "persisted" {
		t.Errorf("Get from new instance = %q, %v", got, err)
	}
}

func TestFileRejectsEmptyPath(t *testing.T) {
	if _, err := NewFile(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestFileRejectsCorruptContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth.json")
	if err := os.WriteFile(path, []byte("not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFile(path); err == nil {
		t.Fatal("expected error for corrupt store file")
	}
}

func TestKV(t *testing.T) {
	backing := map[string]string{}
	kv, err := NewKV(
		func(_ context.Context, key string) (string, bool, error) {
			v, ok := backing[key]
			return v, ok, nil
		},
		func(_ context.Context, key, value string) error {
			backing[key] = value
			return nil
		},
		func(_ context.Context, key string) error {
			delete(backing, key)
			return nil
		},
	)
	if err != nil {
		t.Fatal(err)
	}
	storageContract(t, kv)
}

func TestKVRequiresAllCallbacks(t *testing.T) {
	_, err := NewKV(nil, nil, nil)
	if err == nil {
		t.Fatal("expected error for missing callbacks")
	}
}

func TestNoop(t *testing.T) {
	ctx := context.Background()
	var s Storage = Noop{}

	if err := s.Set(ctx, "k", "v"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Noop.Get err = %v, want ErrNotFound", err)
	}
	if err := s.Remove(ctx, "k"); err != nil {
		t.Fatal(err)
	}
}
