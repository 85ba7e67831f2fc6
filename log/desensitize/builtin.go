package desensitize

var (
	// RefreshTokenRule refreshToken 字段脱敏规则
	RefreshTokenRule = MustNewFieldRule(
		"refreshToken",
		"refreshToken",
	)

	// AccessTokenRule accessToken 字段脱敏规则
	AccessTokenRule = MustNewFieldRule(
		"accessToken",
		"accessToken",
	)

	// PasswordRule 密码字段脱敏规则（针对 JSON 中的 password 字段）
	PasswordRule = MustNewFieldRule(
		"password",
		"password",
	)

	// TicketRule MFA ticket 字段脱敏规则
	TicketRule = MustNewFieldRule(
		"ticket",
		"ticket",
	)

	// OTPRule 一次性验证码字段脱敏规则
	OTPRule = MustNewFieldRule(
		"otp",
		"otp",
	)

	// BearerRule Authorization 头中的 Bearer 令牌脱敏规则
	BearerRule = MustNewContentRule(
		"bearer",
		`Bearer\s+[A-Za-z0-9\-_.]+`,
		"Bearer ******",
	)

	// EmailRule 邮箱脱敏规则 (user@example.com -> u***r@e***.com)
	EmailRule = MustNewContentRule(
		"email",
		`\b([A-Za-z0-9])[A-Za-z0-9._%+-]*([A-Za-z0-9])@([A-Za-z0-9])[A-Za-z0-9.-]*\.([A-Z|a-z]{2,})\b`,
		"$1***$2@$3***.$4",
	)

	// PhoneRule 手机号脱敏规则（保留国家码前缀和后 4 位）
	PhoneRule = MustNewContentRule(
		"phone",
		`(\+\d{1,3})\d{4,10}(\d{4})`,
		"$1****$2",
	)
)

// BuiltinRules 返回所有内置规则
func BuiltinRules() []Rule {
	return []Rule{
		RefreshTokenRule,
		AccessTokenRule,
		PasswordRule,
		TicketRule,
		OTPRule,
		BearerRule,
	}
}
