package desensitize

import (
	"fmt"
	"regexp"
	"sync/atomic"
)

// Rule 脱敏规则接口
type Rule interface {
	// Name 返回规则名称
	Name() string
	// Enabled 返回规则是否启用
	Enabled() bool
	// SetEnabled 设置规则启用状态
	SetEnabled(enabled bool)
	// Process 对字符串进行脱敏处理
	Process(s string) string
}

// ContentRule 基于内容匹配的脱敏规则
type ContentRule struct {
	name        string
	pattern     *regexp.Regexp
	replacement string
	enabled     atomic.Bool
}

// NewContentRule 创建基于内容匹配的脱敏规则
func NewContentRule(name, pattern, replacement string) (*ContentRule, error) {
	if name == "" {
		return nil, fmt.Errorf("rule name cannot be empty")
	}
	if pattern == "" {
		return nil, fmt.Errorf("pattern cannot be empty")
	}

	regex, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern '%s': %w", pattern, err)
	}

	r := &ContentRule{
		name:        name,
		pattern:     regex,
		replacement: replacement,
	}
	r.enabled.Store(true)
	return r, nil
}

// MustNewContentRule 创建规则，失败时 panic（用于内置规则）
func MustNewContentRule(name, pattern, replacement string) *ContentRule {
	rule, err := NewContentRule(name, pattern, replacement)
	if err != nil {
		panic(err)
	}
	return rule
}

func (r *ContentRule) Name() string {
	return r.name
}

func (r *ContentRule) Enabled() bool {
	return r.enabled.Load()
}

func (r *ContentRule) SetEnabled(enabled bool) {
	r.enabled.Store(enabled)
}

func (r *ContentRule) Process(s string) string {
	if !r.Enabled() {
		return s
	}
	return r.pattern.ReplaceAllString(s, r.replacement)
}

// FieldRule 基于 JSON 字段名匹配的脱敏规则
type FieldRule struct {
	name        string
	fieldName   string
	jsonPattern *regexp.Regexp // 预编译的 JSON 字段匹配模式
	enabled     atomic.Bool
}

// NewFieldRule 创建基于字段名匹配的脱敏规则，字段值整体替换为 ******
func NewFieldRule(name, fieldName string) (*FieldRule, error) {
	if name == "" {
		return nil, fmt.Errorf("rule name cannot be empty")
	}
	if fieldName == "" {
		return nil, fmt.Errorf("field name cannot be empty")
	}

	jsonPatternStr := fmt.Sprintf(`"%s"\s*:\s*"([^"]*)"`, regexp.QuoteMeta(fieldName))
	jsonPattern, err := regexp.Compile(jsonPatternStr)
	if err != nil {
		return nil, fmt.Errorf("failed to compile json pattern: %w", err)
	}

	r := &FieldRule{
		name:        name,
		fieldName:   fieldName,
		jsonPattern: jsonPattern,
	}
	r.enabled.Store(true)
	return r, nil
}

// MustNewFieldRule 创建规则，失败时 panic
func MustNewFieldRule(name, fieldName string) *FieldRule {
	rule, err := NewFieldRule(name, fieldName)
	if err != nil {
		panic(err)
	}
	return rule
}

func (r *FieldRule) Name() string {
	return r.name
}

func (r *FieldRule) Enabled() bool {
	return r.enabled.Load()
}

func (r *FieldRule) SetEnabled(enabled bool) {
	r.enabled.Store(enabled)
}

func (r *FieldRule) Process(s string) string {
	if !r.Enabled() {
		return s
	}

	return r.jsonPattern.ReplaceAllString(s, fmt.Sprintf(`"%s":"******"`, r.fieldName))
}
