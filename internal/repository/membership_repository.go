package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/devsdeimpacto/coleta-service/internal/model"
)

type MembershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// Link inserts the membership row. A duplicate pair surfaces as
// gorm.ErrDuplicatedKey through the composite primary key.
func (r *MembershipRepository) Link(ctx context.Context, collectorID, companyID uint) error {
	link := model.CompanyLink{
		CollectorID: collectorID,
		CompanyID:   companyID,
		LinkedAt:    time.Now(),
	}
	return r.db.WithContext(ctx).Create(&link).Error
}

// Unlink removes the membership row. gorm.ErrRecordNotFound means the pair
// was not linked.
func (r *MembershipRepository) Unlink(ctx context.Context, collectorID, companyID uint) error {
	result := r.db.WithContext(ctx).
		Where("catador_id = ? AND empresa_id = ?", collectorID, companyID).
		Delete(&model.CompanyLink{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *MembershipRepository) CompaniesForCollector(ctx context.Context, collectorID uint) ([]model.Company, error) {
	var companies []model.Company
	err := r.db.WithContext(ctx).Raw(`
		SELECT e.*
		FROM empresas e
		JOIN catadores_empresas ce ON ce.empresa_id = e.id
		WHERE ce.catador_id = ?
		ORDER BY ce.data_vinculo
	`, collectorID).Scan(&companies).Error
	if err != nil {
		return nil, err
	}
	return companies, nil
}

func (r *MembershipRepository) CollectorsForCompany(ctx context.Context, companyID uint) ([]model.Collector, error) {
	var collectors []model.Collector
	err := r.db.WithContext(ctx).Raw(`
		SELECT c.*
		FROM catadores c
		JOIN catadores_empresas ce ON ce.catador_id = c.id
		WHERE ce.empresa_id = ?
		ORDER BY ce.data_vinculo
	`, companyID).Scan(&collectors).Error
	if err != nil {
		return nil, err
	}
	return collectors, nil
}
