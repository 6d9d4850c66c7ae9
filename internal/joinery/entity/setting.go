package entity

import "time"

// Setting is a process-wide key/value row. Values are stored as strings
// and read back as parsed numbers with a caller-supplied fallback.
type Setting struct {
	Key       string    `json:"key" gorm:"primaryKey;size:100"`
	Value     string    `json:"value" gorm:"size:500"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}
