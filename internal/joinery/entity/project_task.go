package entity

import "time"

// ProjectTask is a to-do on a build project. At most three tasks may be
// flagged at once across all active projects; the service enforces the
// limit before any write.
type ProjectTask struct {
	ID             string    `json:"id" gorm:"primaryKey;size:32"`
	QuoteProjectID string    `json:"quote_project_id" gorm:"size:32;not null;index"`
	Description    string    `json:"description" gorm:"size:500;not null"`
	IsCompleted    bool      `json:"is_completed" gorm:"default:false"`
	IsFlagged      bool      `json:"is_flagged" gorm:"default:false;index"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (ProjectTask) TableName() string {
	return "project_tasks"
}
