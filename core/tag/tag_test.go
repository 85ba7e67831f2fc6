package tag

import (
	"testing"
	"time"
)

type inner struct {
	Rate time.Duration `default:"2s"`
}

type testConfig struct {
	Name     string        `default:"client"`
	Timeout  time.Duration `default:"10s"`
	Retries  int           `default:"3"`
	Ratio    float64       `default:"0.5"`
	Verbose  bool          `default:"true"`
	Paths    []string      `default:"a, b, c"`
	Inner    inner
	InnerPtr *inner
	NoTag    string
}

func TestApplyDefaults(t *testing.T) {
	cfg := &testConfig{InnerPtr: &inner{}}
	if err := ApplyDefaults(cfg); err != nil {
		t.Fatalf("ApplyDefaults: %v", err)
	}

	if cfg.Name != "client" {
		t.Errorf("Name = %q", cfg.Name)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if cfg.Retries != 3 {
		t.Errorf("Retries = %d", cfg.Retries)
	}
	if cfg.Ratio != 0.5 {
		t.Errorf("Ratio = %v", cfg.Ratio)
	}
	if !cfg.Verbose {
		t.Error("Verbose should default to true")
	}
	if len(cfg.Paths) != 3 || cfg.Paths[1] != "b" {
		t.Errorf("Paths = %v", cfg.Paths)
	}
	if cfg.Inner.Rate != 2*time.Second {
		t.Errorf("Inner.Rate = %v", cfg.Inner.Rate)
	}
	if cfg.InnerPtr.Rate != 2*time.Second {
		t.Errorf("InnerPtr.Rate = %v", cfg.InnerPtr.Rate)
	}
	if cfg.NoTag != "" {
		t.Errorf("NoTag = %q", cfg.NoTag)
	}
}

func TestApplyDefaultsKeepsExisting(t *testing.T) {
	cfg := &testConfig{Name: "custom", Retries: 7}
	if err := ApplyDefaults(cfg); err != nil {
		t.Fatalf("ApplyDefaults: %v", err)
	}

	if cfg.Name != "custom" {
		t.Errorf("existing value overwritten: %q", cfg.Name)
	}
	if cfg.Retries != 7 {
		t.Errorf("existing value overwritten: %d", cfg.Retries)
	}
}

func TestApplyDefaultsRejectsNonPointer(t *testing.T) {
	if err := ApplyDefaults(testConfig{}); err != ErrTargetMustBePointer {
		t.Errorf("expected ErrTargetMustBePointer, got %v", err)
	}

	var nilCfg *testConfig
	if err := ApplyDefaults(nilCfg); err != ErrTargetIsNil {
		t.Errorf("expected ErrTargetIsNil, got %v", err)
	}
}

func TestApplyDefaultsBadTag(t *testing.T) {
	type bad struct {
		N int `default:"not-a-number"`
	}
	err := ApplyDefaults(&bad{})
	if err == nil {
		t.Fatal("expected error for malformed tag")
	}

	var fe *FieldError
	if !asFieldError(err, &fe) {
		t.Fatalf("expected *FieldError, got %T", err)
	}
	if fe.Path != "N" {
		t.Errorf("Path = %q", fe.Path)
	}
}

func asFieldError(err error, target **FieldError) bool {
	fe, ok := err.(*FieldError)
	if ok {
		*target = fe
	}
	return ok
}
