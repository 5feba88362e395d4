package model

import "time"

// ServiceOrder is the work-tracking record ("ordem de serviço") generated for
// every collection request. The assignment slots are independent: an order
// may carry a company without a collector, or any other combination.
type ServiceOrder struct {
	ID          uint        `gorm:"column:id;primaryKey" json:"id"`
	RequestID   uint        `gorm:"column:solicitacao_id" json:"solicitacao_id"`
	Number      string      `gorm:"column:numero_os" json:"numero_os"`
	Status      OrderStatus `gorm:"column:status" json:"status"`
	CompanyID   *uint       `gorm:"column:empresa_id" json:"empresa_id"`
	PointID     *uint       `gorm:"column:ponto_coleta_id" json:"ponto_coleta_id"`
	CollectorID *uint       `gorm:"column:catador_id" json:"catador_id"`
	CreatedAt   time.Time   `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   *time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (ServiceOrder) TableName() string { return "ordens_servico" }

// OrderAssignment names the slots an assignment call wants to overwrite.
// Nil slots are left untouched.
type OrderAssignment struct {
	CompanyID   *uint
	PointID     *uint
	CollectorID *uint
}

// OrderCounter backs the numbering authority: one row per calendar year,
// bumped atomically inside the create-order transaction.
type OrderCounter struct {
	Year       int `gorm:"column:ano;primaryKey"`
	LastNumber int `gorm:"column:ultimo_numero"`
}

func (OrderCounter) TableName() string { return "os_counters" }
