package auth

// Notification 前端 toast 通知
type Notification struct {
	Type    string            `json:"type" example:"success"`
	Title   string            `json:"title" example:"You submitted the following values:"`
	Message string            `json:"message" example:"Admin account created"`
	Values  map[string]string `json:"values,omitempty"`
} // @name Notification

// RegisterResult 管理员注册结果
// @Description 注册成功时返回跳转地址与通知内容
type RegisterResult struct {
	UserID       string       `json:"user_id" example:"7f1c6c1e-2b8a-4a36-9d0c-2d9a8f1e3b21"`
	RedirectTo   string       `json:"redirect_to" example:"/admin/dashboard"`
	Notification Notification `json:"notification"`
} // @name RegisterResult

// RegisterFailure 注册失败时 data 字段的内容
type RegisterFailure struct {
	FieldErrors  map[string]string `json:"field_errors,omitempty"`
	Notification *Notification     `json:"notification,omitempty"`
} // @name RegisterFailure
