package auth

// RegisterRequest 管理员注册表单
// @Description 管理员注册请求参数，校验规则与前端表单一致
type RegisterRequest struct {
	// 姓名，至少 2 个字符
	Name string `json:"name" form:"name" validate:"min=2" example:"Jane Roe"`
	// 邮箱
	Email string `json:"email" form:"email" validate:"email" example:"jane@example.com"`
	// 手机号，至少 10 个字符
	Phone string `json:"phone" form:"phone" validate:"min=10" example:"9876543210"`
	// 用户名，至少 3 个字符
	Username string `json:"username" form:"username" validate:"min=3" example:"jane_r"`
	// 密码，至少 6 个字符且包含字母或数字
	Password string `json:"password" form:"password" validate:"min=6,alnum_char" example:"abc123"`
	// 确认密码
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword" validate:"eqfield=Password" example:"abc123"`
} // @name RegisterRequest
