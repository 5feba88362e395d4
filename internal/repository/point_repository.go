package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/devsdeimpacto/coleta-service/internal/model"
)

type PointRepository struct {
	db *gorm.DB
}

func NewPointRepository(db *gorm.DB) *PointRepository {
	return &PointRepository{db: db}
}

func (r *PointRepository) Create(ctx context.Context, point *model.CollectionPoint) error {
	return r.db.WithContext(ctx).Create(point).Error
}

func (r *PointRepository) Get(ctx context.Context, id uint) (*model.CollectionPoint, error) {
	var point model.CollectionPoint
	if err := r.db.WithContext(ctx).First(&point, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &point, nil
}

func (r *PointRepository) List(ctx context.Context, filter model.PointFilter) ([]model.CollectionPoint, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.CollectionPoint{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.CompanyID != nil {
		query = query.Where("empresa_id = ?", *filter.CompanyID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}

	var points []model.CollectionPoint
	err := query.Order("id").Limit(limit).Offset(filter.Offset).Find(&points).Error
	if err != nil {
		return nil, 0, err
	}
	return points, total, nil
}

func (r *PointRepository) Update(ctx context.Context, point *model.CollectionPoint) error {
	return r.db.WithContext(ctx).Save(point).Error
}

func (r *PointRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.CollectionPoint{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
