package model

import "time"

// CollectionRequest is the intake record ("solicitação de coleta"). Every
// request owns exactly one ServiceOrder, created in the same transaction.
// Document and person type are immutable after creation.
type CollectionRequest struct {
	ID            uint       `gorm:"column:id;primaryKey" json:"id"`
	RequesterName string     `gorm:"column:nome_solicitante" json:"nome_solicitante"`
	PersonType    PersonType `gorm:"column:tipo_pessoa" json:"tipo_pessoa"`
	Document      string     `gorm:"column:documento" json:"documento"`
	Email         string     `gorm:"column:email" json:"email"`
	WhatsApp      string     `gorm:"column:whatsapp" json:"whatsapp"`
	ItemCount     int        `gorm:"column:quantidade_itens" json:"quantidade_itens"`
	MaterialType  string     `gorm:"column:tipo_material" json:"tipo_material"`
	Address       string     `gorm:"column:endereco" json:"endereco"`
	PhotoURL      *string    `gorm:"column:foto_url" json:"foto_url"`
	Latitude      *float64   `gorm:"column:latitude" json:"latitude"`
	Longitude     *float64   `gorm:"column:longitude" json:"longitude"`
	CreatedAt     time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     *time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (CollectionRequest) TableName() string { return "solicitacoes_coleta" }
