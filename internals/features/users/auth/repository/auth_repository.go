// internals/features/users/auth/repository/auth_repository.go
package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	authModel "skripsiku_backend/internals/features/users/auth/model"
	userModel "skripsiku_backend/internals/features/users/user/model"
	"skripsiku_backend/internals/helpers/apperr"
)

type Repository interface {
	FindUserByIdentifier(ctx context.Context, identifier string) (*userModel.UserModel, error)
	FindUserByGoogleID(ctx context.Context, googleID string) (*userModel.UserModel, error)
	FindUserByEmail(ctx context.Context, email string) (*userModel.UserModel, error)
	FindUserByID(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error)
	LinkGoogleID(ctx context.Context, userID uuid.UUID, googleID string) error

	BlacklistToken(ctx context.Context, tokenHash string, expiredAt time.Time) error
	CleanupExpiredBlacklist(ctx context.Context, before time.Time) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

func New(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

/* ====================== USER ====================== */

func (r *gormRepository) findUser(ctx context.Context, where string, args ...any) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := r.db.WithContext(ctx).Where(where, args...).Take(&user).Error; err != nil {
		return nil, apperr.FromDB(err, "User tidak ditemukan")
	}
	return &user, nil
}

// identifier boleh email atau user_name (NIM/NIP)
func (r *gormRepository) FindUserByIdentifier(ctx context.Context, identifier string) (*userModel.UserModel, error) {
	identifier = strings.TrimSpace(identifier)
	return r.findUser(ctx, "LOWER(email) = LOWER(?) OR user_name = ?", identifier, identifier)
}

func (r *gormRepository) FindUserByGoogleID(ctx context.Context, googleID string) (*userModel.UserModel, error) {
	return r.findUser(ctx, "google_id = ?", googleID)
}

func (r *gormRepository) FindUserByEmail(ctx context.Context, email string) (*userModel.UserModel, error) {
	return r.findUser(ctx, "LOWER(email) = LOWER(?)", strings.TrimSpace(email))
}

func (r *gormRepository) FindUserByID(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error) {
	return r.findUser(ctx, "id = ?", id)
}

func (r *gormRepository) LinkGoogleID(ctx context.Context, userID uuid.UUID, googleID string) error {
	err := r.db.WithContext(ctx).Model(&userModel.UserModel{}).
		Where("id = ? AND google_id IS NULL", userID).
		Update("google_id", googleID).Error
	return apperr.FromDB(err, "")
}

/* ====================== BLACKLIST TOKEN ====================== */

func (r *gormRepository) BlacklistToken(ctx context.Context, tokenHash string, expiredAt time.Time) error {
	row := authModel.TokenBlacklist{TokenHash: tokenHash, ExpiredAt: expiredAt.UTC()}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "token_hash"}}, DoNothing: true}).
		Create(&row).Error
	return apperr.FromDB(err, "")
}

func (r *gormRepository) CleanupExpiredBlacklist(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expired_at < ?", before.UTC()).Delete(&authModel.TokenBlacklist{})
	return res.RowsAffected, res.Error
}
