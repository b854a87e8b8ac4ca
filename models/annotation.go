package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

const (
	AnnotationStatusCorrect   = "correct"
	AnnotationStatusIncorrect = "incorrect"
)

// Annotation is a judgment on one field of one record within an extraction's
// output. It is only reachable through an extraction owned by the caller.
type Annotation struct {
	ID             string    `gorm:"primary_key;size:36" json:"id"`
	ExtractionID   string    `gorm:"not null;index" json:"extractionId"`
	FieldName      string    `gorm:"not null" json:"fieldName"`
	RecordID       string    `gorm:"not null" json:"recordId"`
	Status         string    `gorm:"not null" json:"status"`
	ExtractedValue *string   `gorm:"type:text" json:"extractedValue,omitempty"`
	ExpectedValue  *string   `gorm:"type:text" json:"expectedValue,omitempty"`
	Category       *string   `json:"category,omitempty"`
	Confidence     *float64  `json:"confidence,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (a *Annotation) BeforeCreate(scope *gorm.Scope) error {
	if a.ID == "" {
		return scope.SetColumn("ID", uuid.New().String())
	}
	return nil
}
