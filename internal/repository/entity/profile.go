package entity

import (
	"time"

	"github.com/aarondl/null/v8"
)

// Profile 管理员资料实体，主键与 Kratos identity ID 对应
type Profile struct {
	ID          string    `boil:"id" json:"id" toml:"id" yaml:"id"`
	Email       string    `boil:"email" json:"email" toml:"email" yaml:"email"`
	FullName    string    `boil:"full_name" json:"full_name" toml:"full_name" yaml:"full_name"`
	PhoneNumber string    `boil:"phone_number" json:"phone_number" toml:"phone_number" yaml:"phone_number"`
	Username    string    `boil:"username" json:"username" toml:"username" yaml:"username"`
	UserRole    string    `boil:"user_role" json:"user_role" toml:"user_role" yaml:"user_role"`
	CreatedAt   time.Time `boil:"created_at" json:"created_at" toml:"created_at" yaml:"created_at"`
	DeletedAt   null.Time `boil:"deleted_at" json:"deleted_at,omitempty" toml:"deleted_at" yaml:"deleted_at,omitempty"`
}

// ProfileTableName 表名
const ProfileTableName = "profiles"

// RoleAdmin 注册流程写入的角色
const RoleAdmin = "admin"

// IsDeleted 检查资料是否被软删除
func (p *Profile) IsDeleted() bool {
	return p.DeletedAt.Valid
}
