package entity

import "time"

// JoineryItem is a cabinetry work unit within a quote or project: a run of
// cabinets sharing face/carcass materials and hinge/drawer hardware.
type JoineryItem struct {
	ID             string `json:"id" gorm:"primaryKey;size:32"`
	QuoteProjectID string `json:"quote_project_id" gorm:"size:32;not null;index"`
	Name           string `json:"name" gorm:"size:200"`
	IsQuote        bool   `json:"is_quote" gorm:"not null;default:true"`

	// Up to four face material roles plus the carcass
	FaceMaterial1ID   *string `json:"face_material1_id" gorm:"size:32"`
	FaceMaterial2ID   *string `json:"face_material2_id" gorm:"size:32"`
	FaceMaterial3ID   *string `json:"face_material3_id" gorm:"size:32"`
	FaceMaterial4ID   *string `json:"face_material4_id" gorm:"size:32"`
	CarcassMaterialID *string `json:"carcass_material_id" gorm:"size:32"`

	HingeHardwareID  *string `json:"hinge_hardware_id" gorm:"size:32"`
	DrawerHardwareID *string `json:"drawer_hardware_id" gorm:"size:32"`

	Notes     string    `json:"notes" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	FaceMaterial1   *Material `json:"face_material1,omitempty" gorm:"foreignKey:FaceMaterial1ID"`
	FaceMaterial2   *Material `json:"face_material2,omitempty" gorm:"foreignKey:FaceMaterial2ID"`
	FaceMaterial3   *Material `json:"face_material3,omitempty" gorm:"foreignKey:FaceMaterial3ID"`
	FaceMaterial4   *Material `json:"face_material4,omitempty" gorm:"foreignKey:FaceMaterial4ID"`
	CarcassMaterial *Material `json:"carcass_material,omitempty" gorm:"foreignKey:CarcassMaterialID"`
	HingeHardware   *Hardware `json:"hinge_hardware,omitempty" gorm:"foreignKey:HingeHardwareID"`
	DrawerHardware  *Hardware `json:"drawer_hardware,omitempty" gorm:"foreignKey:DrawerHardwareID"`

	Cabinets         []Cabinet         `json:"cabinets,omitempty" gorm:"foreignKey:JoineryItemID"`
	SpecializedItems []SpecializedItem `json:"specialized_items,omitempty" gorm:"foreignKey:JoineryItemID"`
}

func (JoineryItem) TableName() string {
	return "joinery_items"
}

// SpecializedItem is a one-off addition on a joinery item pointing at
// either a Hardware or a Material row by a type discriminator. The store
// cannot embed a polymorphic relation, so the target is resolved by a
// secondary fetch into Resolved; a dangling reference resolves to nil.
type SpecializedItem struct {
	ID            string    `json:"id" gorm:"primaryKey;size:32"`
	JoineryItemID string    `json:"joinery_item_id" gorm:"size:32;not null;index"`
	ItemType      string    `json:"item_type" gorm:"size:20;not null"`
	ItemID        string    `json:"item_id" gorm:"size:32;not null"`
	Quantity      float64   `json:"quantity" gorm:"type:decimal(12,2);default:1"`
	Notes         string    `json:"notes" gorm:"type:text"`
	CreatedAt     time.Time `json:"created_at"`

	Resolved interface{} `json:"resolved,omitempty" gorm:"-"`
}

func (SpecializedItem) TableName() string {
	return "specialized_items"
}

// Specialized item type discriminators
const (
	SpecializedItemTypeHardware = "hardware"
	SpecializedItemTypeMaterial = "material"
)
