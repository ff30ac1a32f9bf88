package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document is knowledge-base metadata for an ingested upload. Only the
// title (originating filename) is retained; extracted text is sent to the
// ingestion endpoint and not stored here.
type Document struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36"`
	Title      string    `json:"title" gorm:"not null"`
	UploadedBy string    `json:"uploaded_by" gorm:"column:uploaded_by;size:36;not null;index"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Document) TableName() string { return "documents" }

func (d *Document) BeforeCreate(*gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
