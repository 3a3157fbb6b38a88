package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/internlink/internship-service/internal/cache"
	"github.com/internlink/internship-service/internal/models"
	"github.com/internlink/internship-service/internal/repositories"
)

type InternshipPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewInternshipPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.InternshipRepository {
	return &InternshipPostgreSQL{
		db:           db,
		cacheManager: cacheManager,
	}
}

func (i *InternshipPostgreSQL) Create(ctx context.Context, internship *models.Internship) error {
	if err := i.db.WithContext(ctx).Create(internship).Error; err != nil {
		return err
	}
	i.invalidateListings(ctx)
	return nil
}

func (i *InternshipPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Internship, error) {
	var internship models.Internship
	cacheKey := fmt.Sprintf("id:%d", id)

	err := i.cacheManager.Internship.CacheOrExecute(ctx, cacheKey, &internship, cache.InternshipCacheConfig.TTL, func() (interface{}, error) {
		var row models.Internship
		if err := i.db.WithContext(ctx).Preload("Creator").First(&row, id).Error; err != nil {
			return nil, err
		}
		return &row, nil
	})
	if err != nil {
		return nil, err
	}
	return &internship, nil
}

func (i *InternshipPostgreSQL) List(ctx context.Context, filters repositories.InternshipFilters) ([]*models.Internship, int64, error) {
	var internships []*models.Internship
	var total int64

	query := i.db.WithContext(ctx).Model(&models.Internship{})
	if filters.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filters.CreatedBy != nil {
		query = query.Where("created_by = ?", *filters.CreatedBy)
	}
	if filters.Query != "" {
		like := "%" + filters.Query + "%"
		query = query.Where("title ILIKE ? OR company ILIKE ?", like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applySort(query, filters.SortBy, filters.SortOrder, map[string]bool{
		"created_at": true, "title": true, "company": true, "deadline": true,
	})
	query = applyPagination(query, filters.Limit, filters.Offset)

	if err := query.Find(&internships).Error; err != nil {
		return nil, 0, err
	}
	return internships, total, nil
}

func (i *InternshipPostgreSQL) GetByCreator(ctx context.Context, creatorID uint) ([]*models.Internship, error) {
	var internships []*models.Internship
	err := i.db.WithContext(ctx).
		Where("created_by = ?", creatorID).
		Find(&internships).Error
	return internships, err
}

func (i *InternshipPostgreSQL) Update(ctx context.Context, internship *models.Internship) error {
	if err := i.db.WithContext(ctx).Save(internship).Error; err != nil {
		return err
	}
	i.invalidate(ctx, internship.ID)
	return nil
}

func (i *InternshipPostgreSQL) Delete(ctx context.Context, id uint) error {
	if err := i.db.WithContext(ctx).Delete(&models.Internship{}, id).Error; err != nil {
		return err
	}
	i.invalidate(ctx, id)
	return nil
}

func (i *InternshipPostgreSQL) Count(ctx context.Context) (int64, error) {
	var total int64
	err := i.db.WithContext(ctx).Model(&models.Internship{}).Count(&total).Error
	return total, err
}

func (i *InternshipPostgreSQL) invalidate(ctx context.Context, id uint) {
	_ = i.cacheManager.Internship.Delete(ctx, fmt.Sprintf("id:%d", id))
	i.invalidateListings(ctx)
}

func (i *InternshipPostgreSQL) invalidateListings(ctx context.Context) {
	_ = i.cacheManager.Internship.DeletePattern(ctx, "list:*")
}
