package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

// Record is one processed item within an extraction's output set. Rows are
// written by the ingestion pipeline, not by this API; here they are only
// listed alongside their extraction.
type Record struct {
	ID           string    `gorm:"primary_key;size:36" json:"id"`
	ExtractionID string    `gorm:"not null;index" json:"extractionId"`
	RecordID     string    `gorm:"not null" json:"recordId"`
	DocID        *string   `gorm:"column:doc_id" json:"docId,omitempty"`
	Success      bool      `json:"success"`
	RecordData   string    `gorm:"type:text" json:"recordData"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (r *Record) BeforeCreate(scope *gorm.Scope) error {
	if r.ID == "" {
		return scope.SetColumn("ID", uuid.New().String())
	}
	return nil
}
