package entity

import "time"

// QuoteProject is a sales quote or an active build project, distinguished
// by the IsQuote flag. A row is never both; list views filter on the flag.
type QuoteProject struct {
	ID          string  `json:"id" gorm:"primaryKey;size:32"`
	IsQuote     bool    `json:"is_quote" gorm:"not null;default:true;index"`
	QuoteNumber string  `json:"quote_number" gorm:"size:50"`
	Name        string  `json:"name" gorm:"size:200;not null"`
	Address     *string `json:"address" gorm:"size:500"`
	Status      string  `json:"status" gorm:"size:20;default:draft"`
	CustomerID  *string `json:"customer_id" gorm:"size:32;index"`

	QuoteDate   *time.Time `json:"quote_date"`
	TotalAmount float64    `json:"total_amount" gorm:"type:decimal(15,2);default:0"`

	// Install scheduling (projects only)
	InstallCommencementDate *time.Time `json:"install_commencement_date" gorm:"index"`
	InstallDurationDays     *int       `json:"install_duration_days"`
	Priority                int        `json:"priority" gorm:"default:0"`

	CreatedBy string    `json:"created_by" gorm:"size:32"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Customer *Customer     `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Items    []JoineryItem `json:"items,omitempty" gorm:"foreignKey:QuoteProjectID"`
}

func (QuoteProject) TableName() string {
	return "quote_projects"
}

// Quote statuses
const (
	QuoteStatusDraft    = "draft"
	QuoteStatusSent     = "sent"
	QuoteStatusAccepted = "accepted"
	QuoteStatusRejected = "rejected"
	QuoteStatusExpired  = "expired"
)

// Project statuses
const (
	ProjectStatusInProgress = "in_progress"
	ProjectStatusCompleted  = "completed"
)
