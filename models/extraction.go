package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

// Extraction pairs a schema input with an output JSON blob. Every access is
// scoped by UserID; SubmittedAt is set only by the submit flow.
type Extraction struct {
	ID          string     `gorm:"primary_key;size:36" json:"id"`
	UserID      string     `gorm:"not null;index" json:"userId"`
	Title       string     `gorm:"not null" json:"title"`
	SchemaInput string     `gorm:"type:text;not null" json:"schemaInput"`
	OutputJSON  string     `gorm:"column:output_json;type:text;not null" json:"outputJson"`
	SubmittedAt *time.Time `json:"submittedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	Annotations []Annotation `json:"annotations"`
	Records     []Record     `json:"records"`
}

func (e *Extraction) BeforeCreate(scope *gorm.Scope) error {
	if e.ID == "" {
		return scope.SetColumn("ID", uuid.New().String())
	}
	return nil
}
