package controllers

import (
	"net/http"

	dbpkg "annotator/db"
	"annotator/models"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

// POST /api/annotations
func CreateAnnotation(c *gin.Context) {
	userID, ok := UserID(c)
	if !ok {
		RespondError(c, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateAnnotationRequest
	if !bindJSON(c, &req) {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "Internal server error", http.StatusInternalServerError)
		return
	}

	if _, err := ownedExtraction(db, userID, req.ExtractionID); err != nil {
		if gorm.IsRecordNotFoundError(err) {
			RespondError(c, "Extraction not found", http.StatusNotFound)
			return
		}
		RespondInternal(c, "create annotation lookup", err, "Failed to create annotation")
		return
	}

	annotation := models.Annotation{
		ExtractionID:   req.ExtractionID,
		FieldName:      req.FieldName,
		RecordID:       req.RecordID,
		Status:         req.Status,
		ExtractedValue: req.ExtractedValue,
		ExpectedValue:  req.ExpectedValue,
		Category:       req.Category,
		Confidence:     req.Confidence,
	}
	if err := db.Create(&annotation).Error; err != nil {
		RespondInternal(c, "create annotation", err, "Failed to create annotation")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Annotation created successfully",
		"annotation": annotation,
	})
}

// GET /api/annotations?extractionId=
func GetAnnotations(c *gin.Context) {
	userID, ok := UserID(c)
	if !ok {
		RespondError(c, "Unauthorized", http.StatusUnauthorized)
		return
	}

	extractionID := c.Query("extractionId")
	if extractionID == "" {
		RespondError(c, "extractionId is required", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "Internal server error", http.StatusInternalServerError)
		return
	}

	if _, err := ownedExtraction(db, userID, extractionID); err != nil {
		if gorm.IsRecordNotFoundError(err) {
			RespondError(c, "Extraction not found", http.StatusNotFound)
			return
		}
		RespondInternal(c, "list annotations lookup", err, "Failed to fetch annotations")
		return
	}

	annotations := []models.Annotation{}
	err := db.
		Where("extraction_id = ?", extractionID).
		Order("created_at desc").
		Find(&annotations).Error
	if err != nil {
		RespondInternal(c, "list annotations", err, "Failed to fetch annotations")
		return
	}

	RespondSuccess(c, gin.H{"annotations": annotations})
}

// PUT /api/annotations/:id
func UpdateAnnotation(c *gin.Context) {
	userID, ok := UserID(c)
	if !ok {
		RespondError(c, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req UpdateAnnotationRequest
	if !bindJSON(c, &req) {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "Internal server error", http.StatusInternalServerError)
		return
	}

	annotation, err := ownedAnnotation(db, userID, c.Param("id"))
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			RespondError(c, "Annotation not found", http.StatusNotFound)
			return
		}
		RespondInternal(c, "update annotation lookup", err, "Failed to update annotation")
		return
	}

	updates := map[string]any{}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.ExtractedValue != nil {
		updates["extracted_value"] = *req.ExtractedValue
	}
	if req.ExpectedValue != nil {
		updates["expected_value"] = *req.ExpectedValue
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Confidence != nil {
		updates["confidence"] = *req.Confidence
	}
	if len(updates) > 0 {
		if err := db.Model(annotation).Updates(updates).Error; err != nil {
			RespondInternal(c, "update annotation", err, "Failed to update annotation")
			return
		}
	}

	var updated models.Annotation
	if err := db.Where("id = ?", annotation.ID).First(&updated).Error; err != nil {
		RespondInternal(c, "update annotation reload", err, "Failed to update annotation")
		return
	}

	RespondSuccess(c, gin.H{
		"message":    "Annotation updated successfully",
		"annotation": updated,
	})
}

// DELETE /api/annotations/:id
func DeleteAnnotation(c *gin.Context) {
	userID, ok := UserID(c)
	if !ok {
		RespondError(c, "Unauthorized", http.StatusUnauthorized)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "Internal server error", http.StatusInternalServerError)
		return
	}

	annotation, err := ownedAnnotation(db, userID, c.Param("id"))
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			RespondError(c, "Annotation not found", http.StatusNotFound)
			return
		}
		RespondInternal(c, "delete annotation lookup", err, "Failed to delete annotation")
		return
	}

	if err := db.Where("id = ?", annotation.ID).Delete(&models.Annotation{}).Error; err != nil {
		RespondInternal(c, "delete annotation", err, "Failed to delete annotation")
		return
	}

	RespondSuccess(c, gin.H{"message": "Annotation deleted successfully"})
}
