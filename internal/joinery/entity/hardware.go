package entity

import "time"

// Hardware is a catalog item supplied per unit (hinges, runners, handles)
type Hardware struct {
	ID          string    `json:"id" gorm:"primaryKey;size:32"`
	SupplierID  *string   `json:"supplier_id" gorm:"size:32;index"`
	Name        string    `json:"name" gorm:"size:200;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Dimension   string    `json:"dimension" gorm:"size:100"`
	CostPerUnit float64   `json:"cost_per_unit" gorm:"type:decimal(12,4);default:0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Supplier *Supplier `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
}

func (Hardware) TableName() string {
	return "hardware"
}
