package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	dbpkg "annotator/db"
	"annotator/models"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

// Lightweight projections for the list endpoint; full rows would drag every
// annotation value across the wire for each page.
type annotationSummary struct {
	ID        string    `json:"id"`
	FieldName string    `json:"fieldName"`
	CreatedAt time.Time `json:"createdAt"`
}

type recordSummary struct {
	ID       string `json:"id"`
	RecordID string `json:"recordId"`
	Success  bool   `json:"success"`
}

type extractionListItem struct {
	ID          string              `json:"id"`
	UserID      string              `json:"userId"`
	Title       string              `json:"title"`
	SchemaInput string              `json:"schemaInput"`
	OutputJSON  string              `json:"outputJson"`
	SubmittedAt *time.Time          `json:"submittedAt"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
	Annotations []annotationSummary `json:"annotations"`
	Records     []recordSummary     `json:"records"`
}

func defaultTitle() string {
	return fmt.Sprintf("Extraction %s", time.Now().Format("1/2/2006"))
}

// POST /api/extractions
func CreateExtraction(c *gin.Context) {
	userID, ok := UserID(c)
	if !ok {
		RespondError(c, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateExtractionRequest
	if !bindJSON(c, &req) {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "Internal server error", http.StatusInternalServerError)
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = defaultTitle()
	}

	extraction := models.Extraction{
		UserID:      userID,
		Title:       title,
		SchemaInput: req.SchemaInput,
		OutputJSON:  req.OutputJSON,
	}
	if err := db.Create(&extraction).Error; err != nil {
		RespondInternal(c, "create extraction", err, "Failed to create extraction")
		return
	}

	extraction.Annotations = []models.Annotation{}
	extraction.Records = []models.Record{}
	c.JSON(http.StatusCreated, gin.H{
		"message":    "Extraction created successfully",
		"extraction": extraction,
	})
}

// GET /api/extractions
func GetExtractions(c *gin.Context) {
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

	limit, offset := pagination(c)

	var extractions []models.Extraction
	err := db.
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Preload("Annotations", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, extraction_id, field_name, created_at").Order("created_at desc")
		}).
		Preload("Records", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, extraction_id, record_id, success").Order("created_at desc")
		}).
		Find(&extractions).Error
	if err != nil {
		RespondInternal(c, "list extractions", err, "Failed to fetch extractions")
		return
	}

	var total int
	if err := db.Model(&models.Extraction{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		RespondInternal(c, "count extractions", err, "Failed to fetch extractions")
		return
	}

	items := make([]extractionListItem, 0, len(extractions))
	for _, e := range extractions {
		item := extractionListItem{
			ID:          e.ID,
			UserID:      e.UserID,
			Title:       e.Title,
			SchemaInput: e.SchemaInput,
			OutputJSON:  e.OutputJSON,
			SubmittedAt: e.SubmittedAt,
			CreatedAt:   e.CreatedAt,
			UpdatedAt:   e.UpdatedAt,
			Annotations: make([]annotationSummary, 0, len(e.Annotations)),
			Records:     make([]recordSummary, 0, len(e.Records)),
		}
		for _, a := range e.Annotations {
			item.Annotations = append(item.Annotations, annotationSummary{
				ID: a.ID, FieldName: a.FieldName, CreatedAt: a.CreatedAt,
			})
		}
		for _, r := range e.Records {
			item.Records = append(item.Records, recordSummary{
				ID: r.ID, RecordID: r.RecordID, Success: r.Success,
			})
		}
		items = append(items, item)
	}

	RespondSuccess(c, gin.H{
		"extractions": items,
		"pagination": gin.H{
			"total":  total,
			"limit":  limit,
			"offset": offset,
		},
	})
}

// GET /api/extractions/:id
func GetExtraction(c *gin.Context) {
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

	extraction, err := ownedExtraction(withDetail(db), userID, c.Param("id"))
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			RespondError(c, "Extraction not found", http.StatusNotFound)
			return
		}
		RespondInternal(c, "get extraction", err, "Failed to fetch extraction")
		return
	}

	normalizeExtraction(extraction)
	RespondSuccess(c, gin.H{"extraction": extraction})
}

// PUT /api/extractions/:id
func UpdateExtraction(c *gin.Context) {
	userID, ok := UserID(c)
	if !ok {
		RespondError(c, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req UpdateExtractionRequest
	if !bindJSON(c, &req) {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "Internal server error", http.StatusInternalServerError)
		return
	}

	extraction, err := ownedExtraction(db, userID, c.Param("id"))
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			RespondError(c, "Extraction not found", http.StatusNotFound)
			return
		}
		RespondInternal(c, "update extraction lookup", err, "Failed to update extraction")
		return
	}

	updates := map[string]any{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.SchemaInput != nil {
		updates["schema_input"] = *req.SchemaInput
	}
	if req.OutputJSON != nil {
		updates["output_json"] = *req.OutputJSON
	}
	if len(updates) > 0 {
		if err := db.Model(extraction).Updates(updates).Error; err != nil {
			RespondInternal(c, "update extraction", err, "Failed to update extraction")
			return
		}
	}

	updated, err := ownedExtraction(withDetail(db), userID, extraction.ID)
	if err != nil {
		RespondInternal(c, "update extraction reload", err, "Failed to update extraction")
		return
	}

	normalizeExtraction(updated)
	RespondSuccess(c, gin.H{
		"message":    "Extraction updated successfully",
		"extraction": updated,
	})
}

// DELETE /api/extractions/:id
// Dependent annotations and records go with the extraction, in one
// transaction; they are unreachable through the API once the parent is gone.
func DeleteExtraction(c *gin.Context) {
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

	extraction, err := ownedExtraction(db, userID, c.Param("id"))
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			RespondError(c, "Extraction not found", http.StatusNotFound)
			return
		}
		RespondInternal(c, "delete extraction lookup", err, "Failed to delete extraction")
		return
	}

	tx := db.Begin()
	if tx.Error != nil {
		RespondInternal(c, "delete extraction begin", tx.Error, "Failed to delete extraction")
		return
	}
	if err := tx.Where("extraction_id = ?", extraction.ID).Delete(&models.Annotation{}).Error; err != nil {
		tx.Rollback()
		RespondInternal(c, "delete annotations", err, "Failed to delete extraction")
		return
	}
	if err := tx.Where("extraction_id = ?", extraction.ID).Delete(&models.Record{}).Error; err != nil {
		tx.Rollback()
		RespondInternal(c, "delete records", err, "Failed to delete extraction")
		return
	}
	if err := tx.Delete(extraction).Error; err != nil {
		tx.Rollback()
		RespondInternal(c, "delete extraction", err, "Failed to delete extraction")
		return
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		RespondInternal(c, "delete extraction commit", err, "Failed to delete extraction")
		return
	}

	RespondSuccess(c, gin.H{"message": "Extraction deleted successfully"})
}

// POST /api/extractions/submit
// Creates the extraction stamped with SubmittedAt and every annotation of the
// batch in a single transaction; if any insert fails nothing is kept.
func SubmitExtraction(c *gin.Context) {
	userID, ok := UserID(c)
	if !ok {
		RespondError(c, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req SubmitExtractionRequest
	if !bindJSON(c, &req) {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "Internal server error", http.StatusInternalServerError)
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = defaultTitle()
	}
	now := time.Now()

	tx := db.Begin()
	if tx.Error != nil {
		RespondInternal(c, "submit begin", tx.Error, "Failed to submit extraction")
		return
	}

	extraction := models.Extraction{
		UserID:      userID,
		Title:       title,
		SchemaInput: req.SchemaInput,
		OutputJSON:  req.OutputJSON,
		SubmittedAt: &now,
	}
	if err := tx.Create(&extraction).Error; err != nil {
		tx.Rollback()
		RespondInternal(c, "submit create extraction", err, "Failed to submit extraction")
		return
	}

	for _, a := range req.Annotations {
		annotation := models.Annotation{
			ExtractionID:   extraction.ID,
			FieldName:      a.FieldName,
			RecordID:       a.RecordID,
			Status:         a.Status,
			ExtractedValue: a.ExtractedValue,
			ExpectedValue:  a.ExpectedValue,
			Category:       a.Category,
			Confidence:     a.Confidence,
		}
		if err := tx.Create(&annotation).Error; err != nil {
			tx.Rollback()
			RespondInternal(c, "submit create annotation", err, "Failed to submit extraction")
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		RespondInternal(c, "submit commit", err, "Failed to submit extraction")
		return
	}

	result, err := ownedExtraction(db.Preload("Annotations", annotationOrder), userID, extraction.ID)
	if err != nil {
		RespondInternal(c, "submit reload", err, "Failed to submit extraction")
		return
	}

	normalizeExtraction(result)
	c.JSON(http.StatusCreated, gin.H{
		"message":    "Extraction submitted successfully",
		"extraction": result,
	})
}

func annotationOrder(db *gorm.DB) *gorm.DB {
	return db.Order("created_at desc")
}

func recordOrder(db *gorm.DB) *gorm.DB {
	return db.Order("created_at desc")
}

func withDetail(db *gorm.DB) *gorm.DB {
	return db.Preload("Annotations", annotationOrder).Preload("Records", recordOrder)
}

// Preload leaves the slices nil when nothing matched; callers expect arrays.
func normalizeExtraction(e *models.Extraction) {
	if e.Annotations == nil {
		e.Annotations = []models.Annotation{}
	}
	if e.Records == nil {
		e.Records = []models.Record{}
	}
}
