package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/devsdeimpacto/coleta-service/internal/model"
)

type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

// CreateWithOrder persists the request and its service order as one
// transaction. If the number bump or the order insert fails, the request
// insert is rolled back too, so a request without an order never exists.
func (r *RequestRepository) CreateWithOrder(ctx context.Context, request *model.CollectionRequest, year int) (*model.ServiceOrder, error) {
	var order model.ServiceOrder
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(request).Error; err != nil {
			return err
		}

		number, err := nextOrderNumber(tx, year)
		if err != nil {
			return err
		}

		order = model.ServiceOrder{
			RequestID: request.ID,
			Number:    number,
			Status:    model.OrderStatusPending,
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *RequestRepository) Get(ctx context.Context, id uint) (*model.CollectionRequest, error) {
	var request model.CollectionRequest
	if err := r.db.WithContext(ctx).First(&request, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// GetOrderForRequest returns the service order owned by a request.
func (r *RequestRepository) GetOrderForRequest(ctx context.Context, requestID uint) (*model.ServiceOrder, error) {
	var order model.ServiceOrder
	if err := r.db.WithContext(ctx).First(&order, "solicitacao_id = ?", requestID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *RequestRepository) Update(ctx context.Context, request *model.CollectionRequest) error {
	return r.db.WithContext(ctx).Save(request).Error
}

func (r *RequestRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.CollectionRequest{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *RequestRepository) List(ctx context.Context, filter model.RequestFilter) ([]model.CollectionRequest, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.CollectionRequest{})
	if filter.PersonType != nil {
		query = query.Where("tipo_pessoa = ?", *filter.PersonType)
	}
	if filter.MaterialType != nil {
		query = query.Where("tipo_material = ?", *filter.MaterialType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}

	var requests []model.CollectionRequest
	err := query.Order("id").Limit(limit).Offset(filter.Offset).Find(&requests).Error
	if err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}
