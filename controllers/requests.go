package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreateExtractionRequest struct {
	Title       string `json:"title"`
	SchemaInput string `json:"schemaInput" binding:"required"`
	OutputJSON  string `json:"outputJson" binding:"required"`
}

type UpdateExtractionRequest struct {
	Title       *string `json:"title"`
	SchemaInput *string `json:"schemaInput"`
	OutputJSON  *string `json:"outputJson"`
}

// AnnotationData is one judgment inside a submit batch.
type AnnotationData struct {
	FieldName      string   `json:"fieldName" binding:"required"`
	RecordID       string   `json:"recordId" binding:"required"`
	Status         string   `json:"status" binding:"required,oneof=correct incorrect"`
	ExtractedValue *string  `json:"extractedValue"`
	ExpectedValue  *string  `json:"expectedValue"`
	Category       *string  `json:"category"`
	Confidence     *float64 `json:"confidence"`
}

type SubmitExtractionRequest struct {
	Title       string           `json:"title"`
	SchemaInput string           `json:"schemaInput" binding:"required"`
	OutputJSON  string           `json:"outputJson" binding:"required"`
	Annotations []AnnotationData `json:"annotations" binding:"omitempty,dive"`
}

type CreateAnnotationRequest struct {
	ExtractionID   string   `json:"extractionId" binding:"required"`
	FieldName      string   `json:"fieldName" binding:"required"`
	RecordID       string   `json:"recordId" binding:"required"`
	Status         string   `json:"status" binding:"required,oneof=correct incorrect"`
	ExtractedValue *string  `json:"extractedValue"`
	ExpectedValue  *string  `json:"expectedValue"`
	Category       *string  `json:"category"`
	Confidence     *float64 `json:"confidence"`
}

type UpdateAnnotationRequest struct {
	Status         *string  `json:"status" binding:"omitempty,oneof=correct incorrect"`
	ExtractedValue *string  `json:"extractedValue"`
	ExpectedValue  *string  `json:"expectedValue"`
	Category       *string  `json:"category"`
	Confidence     *float64 `json:"confidence"`
}

// Error messages use the json field names, so register those with gin's
// validator once.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// bindJSON binds the body into obj and, on failure, writes the 400 response
// itself: a per-field message map for constraint violations, a generic message
// for malformed JSON. Returns false when the handler should stop.
func bindJSON(c *gin.Context, obj any) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			details[fe.Field()] = fieldMessage(fe)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": details})
		return false
	}

	RespondError(c, "Invalid request body", http.StatusBadRequest)
	return false
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "Invalid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.Join(strings.Fields(fe.Param()), ", "))
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
