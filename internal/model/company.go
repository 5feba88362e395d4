package model

import "time"

// Company ("empresa") runs collection points and employs collectors through
// the membership link table.
type Company struct {
	ID        uint          `gorm:"column:id;primaryKey" json:"id"`
	Name      string        `gorm:"column:nome" json:"nome"`
	CNPJ      string        `gorm:"column:cnpj" json:"cnpj"`
	Address   string        `gorm:"column:endereco" json:"endereco"`
	Phone     string        `gorm:"column:telefone" json:"telefone"`
	Email     string        `gorm:"column:email" json:"email"`
	Status    CompanyStatus `gorm:"column:status" json:"status"`
	Latitude  *float64      `gorm:"column:latitude" json:"latitude"`
	Longitude *float64      `gorm:"column:longitude" json:"longitude"`
	CreatedAt time.Time     `gorm:"column:created_at" json:"created_at"`
	UpdatedAt *time.Time    `gorm:"column:updated_at" json:"updated_at"`
}

func (Company) TableName() string { return "empresas" }
