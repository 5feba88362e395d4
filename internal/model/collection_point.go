package model

import "time"

// CollectionPoint ("ponto de coleta") is a physical drop-off location owned
// by exactly one company. Deleting the company removes its points.
type CollectionPoint struct {
	ID            uint        `gorm:"column:id;primaryKey" json:"id"`
	CompanyID     uint        `gorm:"column:empresa_id" json:"empresa_id"`
	Name          string      `gorm:"column:nome" json:"nome"`
	Address       string      `gorm:"column:endereco" json:"endereco"`
	OpeningHours  string      `gorm:"column:horario_funcionamento" json:"horario_funcionamento"`
	Phone         string      `gorm:"column:telefone" json:"telefone"`
	Status        PointStatus `gorm:"column:status" json:"status"`
	Latitude      *float64    `gorm:"column:latitude" json:"latitude"`
	Longitude     *float64    `gorm:"column:longitude" json:"longitude"`
	CreatedAt     time.Time   `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     *time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (CollectionPoint) TableName() string { return "pontos_coleta" }
