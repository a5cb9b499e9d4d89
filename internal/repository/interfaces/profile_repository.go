package interfaces

import (
	"context"

	"edu-admin/internal/repository/entity"
)

// ProfileRepository 管理员资料仓储接口
type ProfileRepository interface {
	// Create 写入资料，ID 必须是已创建的 identity ID
	Create(ctx context.Context, profile *entity.Profile) error
	// GetByID 查询未删除的资料，不存在时返回 NotFound 错误
	GetByID(ctx context.Context, id string) (*entity.Profile, error)
	// ExistsByID 检查资料是否存在（包含软删除记录）
	ExistsByID(ctx context.Context, id string) (bool, error)
}
