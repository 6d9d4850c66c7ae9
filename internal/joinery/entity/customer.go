package entity

import "time"

// Customer is a client of the joinery business. Referenced by quotes and
// projects; deletes are blocked by the database while references exist.
type Customer struct {
	ID          string    `json:"id" gorm:"primaryKey;size:32"`
	CompanyName string    `json:"company_name" gorm:"size:200;not null"`
	ContactName string    `json:"contact_name" gorm:"size:100"`
	Email       *string   `json:"email" gorm:"size:200"`
	Phone       *string   `json:"phone" gorm:"size:50"`
	Address     *string   `json:"address" gorm:"size:500"`
	Notes       string    `json:"notes" gorm:"type:text"`
	CreatedBy   string    `json:"created_by" gorm:"size:32"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Customer) TableName() string {
	return "customers"
}
