package model

import "time"

// Collector ("catador") performs the physical collection and may work with
// any number of companies.
type Collector struct {
	ID        uint            `gorm:"column:id;primaryKey" json:"id"`
	Name      string          `gorm:"column:nome" json:"nome"`
	CPF       string          `gorm:"column:cpf" json:"cpf"`
	Phone     string          `gorm:"column:telefone" json:"telefone"`
	Email     *string         `gorm:"column:email" json:"email"`
	Status    CollectorStatus `gorm:"column:status" json:"status"`
	CreatedAt time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt *time.Time      `gorm:"column:updated_at" json:"updated_at"`
}

func (Collector) TableName() string { return "catadores" }

// CompanyLink is one row of the collector↔company membership table. The pair
// is the primary key, so the same link can never exist twice.
type CompanyLink struct {
	CollectorID uint      `gorm:"column:catador_id;primaryKey" json:"catador_id"`
	CompanyID   uint      `gorm:"column:empresa_id;primaryKey" json:"empresa_id"`
	LinkedAt    time.Time `gorm:"column:data_vinculo" json:"data_vinculo"`
}

func (CompanyLink) TableName() string { return "catadores_empresas" }
