package entity

import "time"

// TemplateCabinet is a standard cabinet definition that cabinet instances
// are stamped from. Dimensions are strictly positive.
type TemplateCabinet struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	Category  string    `json:"category" gorm:"size:20;not null"`
	Type      string    `json:"type" gorm:"size:50;not null"`
	Width     float64   `json:"width" gorm:"type:decimal(10,2);not null"`
	Height    float64   `json:"height" gorm:"type:decimal(10,2);not null"`
	Depth     float64   `json:"depth" gorm:"type:decimal(10,2);not null"`
	DoorQty   int       `json:"door_qty" gorm:"default:0"`
	DrawerQty int       `json:"drawer_qty" gorm:"default:0"`
	ShelfQty  int       `json:"shelf_qty" gorm:"default:0"`
	HingeQty  int       `json:"hinge_qty" gorm:"default:0"`
	Notes     string    `json:"notes" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (TemplateCabinet) TableName() string {
	return "template_cabinets"
}

// Cabinet categories
const (
	CabinetCategoryBase        = "base"
	CabinetCategoryWall        = "wall"
	CabinetCategoryTall        = "tall"
	CabinetCategoryCommercial  = "commercial"
	CabinetCategoryAccessories = "accessories"
)

// Cabinet types
const (
	CabinetTypeDoor                 = "door"
	CabinetTypeDrawer               = "drawer"
	CabinetTypeOpen                 = "open"
	CabinetTypeDoorDrawer           = "door_drawer"
	CabinetTypeIntegratedFridge     = "integrated_fridge"
	CabinetTypeIntegratedOven       = "integrated_oven"
	CabinetTypeIntegratedDishwasher = "integrated_dishwasher"
	CabinetTypeCorner               = "corner"
)

// CabinetCategories lists the valid categories in catalog order
var CabinetCategories = []string{
	CabinetCategoryBase,
	CabinetCategoryWall,
	CabinetCategoryTall,
	CabinetCategoryCommercial,
	CabinetCategoryAccessories,
}
