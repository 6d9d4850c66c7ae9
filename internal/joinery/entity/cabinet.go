package entity

import "time"

// Cabinet is an instance of a template within a joinery item, optionally
// overriding the template dimensions.
type Cabinet struct {
	ID                string   `json:"id" gorm:"primaryKey;size:32"`
	JoineryItemID     string   `json:"joinery_item_id" gorm:"size:32;not null;index"`
	TemplateCabinetID *string  `json:"template_cabinet_id" gorm:"size:32;index"`
	Width             *float64 `json:"width" gorm:"type:decimal(10,2)"`
	Height            *float64 `json:"height" gorm:"type:decimal(10,2)"`
	Depth             *float64 `json:"depth" gorm:"type:decimal(10,2)"`
	Quantity          int      `json:"quantity" gorm:"default:1"`
	Notes             string   `json:"notes" gorm:"type:text"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	Template  *TemplateCabinet  `json:"template,omitempty" gorm:"foreignKey:TemplateCabinetID"`
	Hardware  []CabinetHardware `json:"hardware,omitempty" gorm:"foreignKey:CabinetID"`
	Materials []CabinetMaterial `json:"materials,omitempty" gorm:"foreignKey:CabinetID"`
}

func (Cabinet) TableName() string {
	return "cabinets"
}

// CabinetHardware is a join row: hardware used by a cabinet instance
type CabinetHardware struct {
	ID         string  `json:"id" gorm:"primaryKey;size:32"`
	CabinetID  string  `json:"cabinet_id" gorm:"size:32;not null;index"`
	HardwareID string  `json:"hardware_id" gorm:"size:32;not null"`
	Quantity   float64 `json:"quantity" gorm:"type:decimal(12,2);default:1"`

	Item *Hardware `json:"item,omitempty" gorm:"foreignKey:HardwareID"`
}

func (CabinetHardware) TableName() string {
	return "cabinet_hardware"
}

// CabinetMaterial is a join row: material used by a cabinet instance
type CabinetMaterial struct {
	ID         string  `json:"id" gorm:"primaryKey;size:32"`
	CabinetID  string  `json:"cabinet_id" gorm:"size:32;not null;index"`
	MaterialID string  `json:"material_id" gorm:"size:32;not null"`
	Quantity   float64 `json:"quantity" gorm:"type:decimal(12,2);default:1"`

	Item *Material `json:"item,omitempty" gorm:"foreignKey:MaterialID"`
}

func (CabinetMaterial) TableName() string {
	return "cabinet_materials"
}
