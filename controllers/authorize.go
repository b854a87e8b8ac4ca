package controllers

import (
	"annotator/models"

	"github.com/jinzhu/gorm"
)

// Ownership checks shared by every mutating operation. Both helpers return
// gorm.ErrRecordNotFound for absent and not-owned rows alike, so callers
// answer 404 either way and never reveal that another user's resource exists.

func ownedExtraction(db *gorm.DB, userID, id string) (*models.Extraction, error) {
	var extraction models.Extraction
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&extraction).Error; err != nil {
		return nil, err
	}
	return &extraction, nil
}

// ownedAnnotation resolves an annotation through its parent extraction, so
// transitive ownership is re-verified on every call.
func ownedAnnotation(db *gorm.DB, userID, id string) (*models.Annotation, error) {
	var annotation models.Annotation
	err := db.
		Joins("JOIN extractions ON extractions.id = annotations.extraction_id").
		Where("annotations.id = ? AND extractions.user_id = ?", id, userID).
		First(&annotation).Error
	if err != nil {
		return nil, err
	}
	return &annotation, nil
}
