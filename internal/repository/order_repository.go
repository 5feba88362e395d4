package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/devsdeimpacto/coleta-service/internal/model"
)

const defaultPageSize = 100

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// nextOrderNumber bumps the per-year counter atomically and formats the
// resulting order number. Must run inside the transaction that inserts the
// order so a failed insert also rolls the counter back. The upsert takes a
// row lock, which serializes concurrent creations within the same year.
func nextOrderNumber(tx *gorm.DB, year int) (string, error) {
	var seq int
	err := tx.Raw(`
		INSERT INTO os_counters (ano, ultimo_numero)
		VALUES (?, 1)
		ON CONFLICT (ano) DO UPDATE SET ultimo_numero = os_counters.ultimo_numero + 1
		RETURNING ultimo_numero
	`, year).Scan(&seq).Error
	if err != nil {
		return "", fmt.Errorf("next order number for %d: %w", year, err)
	}
	return model.FormatOrderNumber(year, seq), nil
}

func (r *OrderRepository) Get(ctx context.Context, id uint) (*model.ServiceOrder, error) {
	var order model.ServiceOrder
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) List(ctx context.Context, filter model.OrderFilter) ([]model.ServiceOrder, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.ServiceOrder{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Year != nil {
		query = query.Where("numero_os LIKE ?", fmt.Sprintf("OS-%04d-%%", *filter.Year))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}

	var orders []model.ServiceOrder
	err := query.Order("id").Limit(limit).Offset(filter.Offset).Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id uint, status model.OrderStatus) (*model.ServiceOrder, error) {
	result := r.db.WithContext(ctx).Model(&model.ServiceOrder{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": gorm.Expr("NOW()")})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.Get(ctx, id)
}

// AssignSlots overwrites the provided assignment slots in a single UPDATE,
// so either every provided slot is written or none is.
func (r *OrderRepository) AssignSlots(ctx context.Context, id uint, assignment model.OrderAssignment) (*model.ServiceOrder, error) {
	updates := map[string]interface{}{"updated_at": gorm.Expr("NOW()")}
	if assignment.CompanyID != nil {
		updates["empresa_id"] = *assignment.CompanyID
	}
	if assignment.PointID != nil {
		updates["ponto_coleta_id"] = *assignment.PointID
	}
	if assignment.CollectorID != nil {
		updates["catador_id"] = *assignment.CollectorID
	}

	result := r.db.WithContext(ctx).Model(&model.ServiceOrder{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.Get(ctx, id)
}

func (r *OrderRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.ServiceOrder{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListExportRows returns the joined rows for the xlsx export, unpaginated.
func (r *OrderRepository) ListExportRows(ctx context.Context, filter model.OrderFilter) ([]model.OrderExportRow, error) {
	baseQuery := `
		SELECT
			os.numero_os AS number,
			os.status AS status,
			s.nome_solicitante AS requester_name,
			s.tipo_material AS material_type,
			s.quantidade_itens AS item_count,
			s.endereco AS address,
			e.nome AS company_name,
			p.nome AS point_name,
			c.nome AS collector_name,
			os.created_at AS created_at
		FROM ordens_servico os
		JOIN solicitacoes_coleta s ON s.id = os.solicitacao_id
		LEFT JOIN empresas e ON e.id = os.empresa_id
		LEFT JOIN pontos_coleta p ON p.id = os.ponto_coleta_id
		LEFT JOIN catadores c ON c.id = os.catador_id
	`
	args := []interface{}{}
	conditions := ""
	if filter.Status != nil {
		conditions = " WHERE os.status = ?"
		args = append(args, *filter.Status)
	}
	if filter.Year != nil {
		if conditions == "" {
			conditions = " WHERE os.numero_os LIKE ?"
		} else {
			conditions += " AND os.numero_os LIKE ?"
		}
		args = append(args, fmt.Sprintf("OS-%04d-%%", *filter.Year))
	}

	var rows []model.OrderExportRow
	err := r.db.WithContext(ctx).Raw(baseQuery+conditions+" ORDER BY os.id", args...).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
