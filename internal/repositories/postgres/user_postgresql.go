package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/internlink/internship-service/internal/cache"
	"github.com/internlink/internship-service/internal/models"
	"github.com/internlink/internship-service/internal/repositories"
)

type UserPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewUserPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.UserRepository {
	return &UserPostgreSQL{
		db:           db,
		cacheManager: cacheManager,
	}
}

func (u *UserPostgreSQL) Create(ctx context.Context, user *models.User) error {
	err := u.db.WithContext(ctx).Create(user).Error
	if err != nil && isUniqueViolation(err) {
		return fmt.Errorf("create user: %w", repositories.ErrDuplicateKey)
	}
	return err
}

func (u *UserPostgreSQL) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	cacheKey := fmt.Sprintf("id:%d", id)

	err := u.cacheManager.User.CacheOrExecute(ctx, cacheKey, &user, cache.UserCacheConfig.TTL, func() (interface{}, error) {
		var dbUser models.User
		if err := u.db.WithContext(ctx).First(&dbUser, id).Error; err != nil {
			return nil, err
		}
		return &dbUser, nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail is on the session-resolution hot path; results are cached
// briefly and invalidated on every write.
func (u *UserPostgreSQL) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	cacheKey := fmt.Sprintf("email:%s", strings.ToLower(email))

	err := u.cacheManager.User.CacheOrExecute(ctx, cacheKey, &user, cache.UserCacheConfig.TTL, func() (interface{}, error) {
		var dbUser models.User
		if err := u.db.WithContext(ctx).Where("email = ?", email).First(&dbUser).Error; err != nil {
			return nil, err
		}
		return &dbUser, nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserPostgreSQL) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	var users []*models.User
	var total int64

	query := u.db.WithContext(ctx).Model(&models.User{})
	if filters.Role != nil {
		query = query.Where("role = ?", *filters.Role)
	}
	if filters.Query != "" {
		like := "%" + filters.Query + "%"
		query = query.Where("full_name ILIKE ? OR email ILIKE ?", like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applySort(query, filters.SortBy, filters.SortOrder, map[string]bool{
		"created_at": true, "full_name": true, "email": true,
	})
	query = applyPagination(query, filters.Limit, filters.Offset)

	if err := query.Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (u *UserPostgreSQL) Update(ctx context.Context, user *models.User) error {
	if err := u.db.WithContext(ctx).Save(user).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update user: %w", repositories.ErrDuplicateKey)
		}
		return err
	}
	u.invalidate(ctx, user)
	return nil
}

func (u *UserPostgreSQL) Delete(ctx context.Context, id uint) error {
	var user models.User
	if err := u.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return err
	}
	if err := u.db.WithContext(ctx).Delete(&models.User{}, id).Error; err != nil {
		return err
	}
	u.invalidate(ctx, &user)
	return nil
}

func (u *UserPostgreSQL) CountByRole(ctx context.Context, role *models.UserRole) (int64, error) {
	var total int64
	query := u.db.WithContext(ctx).Model(&models.User{})
	if role != nil {
		query = query.Where("role = ?", *role)
	}
	err := query.Count(&total).Error
	return total, err
}

func (u *UserPostgreSQL) invalidate(ctx context.Context, user *models.User) {
	_ = u.cacheManager.User.Delete(ctx,
		fmt.Sprintf("id:%d", user.ID),
		fmt.Sprintf("email:%s", strings.ToLower(user.Email)),
	)
}

// isUniqueViolation matches both gorm's translated error and the raw
// postgres duplicate-key message.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "duplicate key value")
}
