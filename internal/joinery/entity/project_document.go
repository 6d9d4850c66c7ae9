package entity

import "time"

// ProjectDocument is an uploaded file (drawing, contract) attached to a
// quote or project. The bytes live in object storage under ObjectKey.
type ProjectDocument struct {
	ID             string    `json:"id" gorm:"primaryKey;size:32"`
	QuoteProjectID string    `json:"quote_project_id" gorm:"size:32;not null;index"`
	FileName       string    `json:"file_name" gorm:"size:256;not null"`
	ObjectKey      string    `json:"object_key" gorm:"size:512"`
	FileSize       int64     `json:"file_size"`
	ContentType    string    `json:"content_type" gorm:"size:128"`
	UploadedBy     string    `json:"uploaded_by" gorm:"size:32"`
	CreatedAt      time.Time `json:"created_at"`
}

func (ProjectDocument) TableName() string {
	return "project_documents"
}
