package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// credentials 测试用登录参数
type credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=9"`
	Phone    string `json:"phone" validate:"omitempty,e164"`
}

// TestValidatorCreation 测试校验器创建
func TestValidatorCreation(t *testing.T) {
	assert.NotNil(t, Validate)
	assert.NotNil(t, New())
	assert.NotNil(t, New(
		WithTagName("validate"),
		WithTranslator("en", "zh"),
		WithDefaultLang("en"),
	))
}

// TestStructValidation 测试结构体校验
func TestStructValidation(t *testing.T) {
	v := New()

	valid := credentials{
		Email:    "user@example.com",
		Password: "long-enough-password",
		Phone:    "+15551234567",
	}
	assert.NoError(t, v.Struct(&valid))

	invalid := credentials{
		Email:    "not-an-email",
		Password: "short",
		Phone:    "12345",
	}
	err := v.Struct(&invalid)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	validationErr, ok := err.(ValidationErrors)
	require.True(t, ok)
	assert.True(t, validationErr.HasErrors())
	assert.Len(t, validationErr.Errors(), 3)
}

// TestEnglishTranslation 测试英文翻译
func TestEnglishTranslation(t *testing.T) {
	v := New()

	err := v.Struct(&credentials{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

// TestFieldErrorHelpers 测试字段错误辅助函数
func TestFieldErrorHelpers(t *testing.T) {
	v := New()

	err := v.Struct(&credentials{Email: "bad", Password: "short"})
	require.Error(t, err)

	assert.True(t, HasFieldError(err, "Email"))
	assert.True(t, HasFieldError(err, "Password"))
	assert.False(t, HasFieldError(err, "Phone"))

	assert.NotEmpty(t, GetFieldErrorMessage(err, "Email"))
	assert.Empty(t, GetFieldErrorMessage(err, "Phone"))
}

// TestVarValidation 测试单个变量校验
func TestVarValidation(t *testing.T) {
	v := New()

	assert.NoError(t, v.Var("test@example.com", "email"))
	assert.Error(t, v.Var("invalid-email", "email"))
	assert.NoError(t, v.Var("+8613812345678", "e164"))
	assert.Error(t, v.Var("13812345678", "e164"))
}
