package impl

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"edu-admin/internal/pkg/xerrors"
	"edu-admin/internal/repository/entity"
	"edu-admin/internal/repository/interfaces"

	"github.com/aarondl/sqlboiler/v4/boil"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/friendsofgo/errors"
	"github.com/lib/pq"
)

// pgUniqueViolation PostgreSQL 唯一约束冲突错误码
const pgUniqueViolation = "23505"

const insertProfileSQL = `
	INSERT INTO profiles (id, email, full_name, phone_number, username, user_role, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
`

const selectProfileSQL = `
	SELECT id, email, full_name, phone_number, username, user_role, created_at, deleted_at
	FROM profiles
	WHERE id = $1 AND deleted_at IS NULL
`

const existsProfileSQL = `SELECT EXISTS (SELECT 1 FROM profiles WHERE id = $1)`

type profileRepositoryImpl struct {
	exec boil.ContextExecutor
	now  func() time.Time
}

// NewProfileRepository 创建资料仓储实现
func NewProfileRepository(exec boil.ContextExecutor) interfaces.ProfileRepository {
	return &profileRepositoryImpl{exec: exec, now: time.Now}
}

func (r *profileRepositoryImpl) Create(ctx context.Context, profile *entity.Profile) error {
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = r.now().UTC()
	}

	_, err := queries.Raw(insertProfileSQL,
		profile.ID,
		profile.Email,
		profile.FullName,
		profile.PhoneNumber,
		profile.Username,
		profile.UserRole,
		profile.CreatedAt,
	).ExecContext(ctx, r.exec)
	if err != nil {
		return classifyProfileError("insert", err)
	}
	return nil
}

func (r *profileRepositoryImpl) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	var profile entity.Profile
	err := queries.Raw(selectProfileSQL, id).Bind(ctx, r.exec, &profile)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, xerrors.New(xerrors.CodeResourceNotFound, "profile not found").
				WithMetadata("profile_id", id)
		}
		return nil, classifyProfileError("select", err)
	}
	return &profile, nil
}

func (r *profileRepositoryImpl) ExistsByID(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := queries.Raw(existsProfileSQL, id).QueryRowContext(ctx, r.exec).Scan(&exists)
	if err != nil {
		return false, classifyProfileError("exists", err)
	}
	return exists, nil
}

// classifyProfileError 唯一约束冲突单独归类，其余视为存储错误
func classifyProfileError(operation string, err error) error {
	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
		return xerrors.NewDuplicateProfileError(pqErr.Constraint, string(pqErr.Code),
			errors.Wrap(err, "profile "+operation+" failed"))
	}

	appErr := xerrors.NewDatabaseError(operation, entity.ProfileTableName,
		errors.Wrap(err, "profile "+operation+" failed"))
	if stderrors.As(err, &pqErr) {
		appErr.WithMetadata(xerrors.MetaPgCode, string(pqErr.Code))
	}
	return appErr
}
