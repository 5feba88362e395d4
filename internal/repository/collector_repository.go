package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/devsdeimpacto/coleta-service/internal/model"
)

type CollectorRepository struct {
	db *gorm.DB
}

func NewCollectorRepository(db *gorm.DB) *CollectorRepository {
	return &CollectorRepository{db: db}
}

// CreateWithLinks inserts the collector and any initial company links in one
// transaction.
func (r *CollectorRepository) CreateWithLinks(ctx context.Context, collector *model.Collector, companyIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(collector).Error; err != nil {
			return err
		}
		now := time.Now()
		for _, companyID := range companyIDs {
			link := model.CompanyLink{
				CollectorID: collector.ID,
				CompanyID:   companyID,
				LinkedAt:    now,
			}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *CollectorRepository) Get(ctx context.Context, id uint) (*model.Collector, error) {
	var collector model.Collector
	if err := r.db.WithContext(ctx).First(&collector, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &collector, nil
}

func (r *CollectorRepository) List(ctx context.Context, filter model.CollectorFilter) ([]model.Collector, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Collector{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.CompanyID != nil {
		query = query.Where(
			"id IN (SELECT catador_id FROM catadores_empresas WHERE empresa_id = ?)",
			*filter.CompanyID,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}

	var collectors []model.Collector
	err := query.Order("id").Limit(limit).Offset(filter.Offset).Find(&collectors).Error
	if err != nil {
		return nil, 0, err
	}
	return collectors, total, nil
}

func (r *CollectorRepository) Update(ctx context.Context, collector *model.Collector) error {
	return r.db.WithContext(ctx).Save(collector).Error
}

func (r *CollectorRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Collector{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *CollectorRepository) CPFExists(ctx context.Context, cpf string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Collector{}).Where("cpf = ?", cpf).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
