package entity

import "time"

// Installer is an install crew member, assigned to projects many-to-many
type Installer struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	Name      string    `json:"name" gorm:"size:200;not null"`
	Phone     *string   `json:"phone" gorm:"size:50"`
	Email     *string   `json:"email" gorm:"size:200"`
	Notes     string    `json:"notes" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Installer) TableName() string {
	return "installers"
}

// ProjectInstaller joins installers to projects
type ProjectInstaller struct {
	ID             string    `json:"id" gorm:"primaryKey;size:32"`
	QuoteProjectID string    `json:"quote_project_id" gorm:"size:32;not null;index"`
	InstallerID    string    `json:"installer_id" gorm:"size:32;not null;index"`
	CreatedAt      time.Time `json:"created_at"`

	Installer *Installer `json:"installer,omitempty" gorm:"foreignKey:InstallerID"`
}

func (ProjectInstaller) TableName() string {
	return "project_installers"
}
