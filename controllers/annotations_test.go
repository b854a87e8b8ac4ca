package controllers_test

import (
	"net/http"
	"testing"

	"annotator/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type annotationResponse struct {
	Annotation models.Annotation `json:"annotation"`
}

func (e *testEnv) createAnnotation(token, extractionID string, extra gin.H) models.Annotation {
	e.t.Helper()
	body := gin.H{
		"extractionId": extractionID,
		"fieldName":    "invoice_total",
		"recordId":     "rec-1",
		"status":       "correct",
	}
	for k, v := range extra {
		body[k] = v
	}
	w := e.do(http.MethodPost, "/api/annotations", token, body)
	require.Equal(e.t, http.StatusCreated, w.Code, w.Body.String())
	var resp annotationResponse
	decodeBody(e.t, w, &resp)
	require.NotEmpty(e.t, resp.Annotation.ID)
	return resp.Annotation
}

func TestCreateAnnotation(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup("a@x.com")
	id := env.createExtraction(token, nil)

	annotation := env.createAnnotation(token, id, gin.H{
		"extractedValue": "12.50",
		"expectedValue":  "12.00",
		"category":       "ocr",
		"confidence":     0.87,
	})
	assert.Equal(t, id, annotation.ExtractionID)
	assert.Equal(t, "correct", annotation.Status)
	require.NotNil(t, annotation.Confidence)
	assert.InDelta(t, 0.87, *annotation.Confidence, 1e-9)
}

func TestCreateAnnotationUnknownExtraction(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup("a@x.com")

	w := env.do(http.MethodPost, "/api/annotations", token, gin.H{
		"extractionId": "no-such-id",
		"fieldName":    "f",
		"recordId":     "r",
		"status":       "correct",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateAnnotationForeignExtraction(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signup("a@x.com")
	other := env.signup("b@x.com")
	id := env.createExtraction(owner, nil)

	w := env.do(http.MethodPost, "/api/annotations", other, gin.H{
		"extractionId": id,
		"fieldName":    "f",
		"recordId":     "r",
		"status":       "correct",
	})
	// indistinguishable from a missing extraction
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateAnnotationValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup("a@x.com")
	id := env.createExtraction(token, nil)

	w := env.do(http.MethodPost, "/api/annotations", token, gin.H{
		"extractionId": id,
		"fieldName":    "f",
		"recordId":     "r",
		"status":       "maybe",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Details map[string]string `json:"details"`
	}
	decodeBody(t, w, &resp)
	assert.Contains(t, resp.Details, "status")
}

func TestListAnnotations(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup("a@x.com")
	id := env.createExtraction(token, nil)
	env.createAnnotation(token, id, gin.H{"fieldName": "one"})
	env.createAnnotation(token, id, gin.H{"fieldName": "two"})

	w := env.do(http.MethodGet, "/api/annotations?extractionId="+id, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Annotations []models.Annotation `json:"annotations"`
	}
	decodeBody(t, w, &resp)
	assert.Len(t, resp.Annotations, 2)
}

func TestListAnnotationsRequiresExtractionID(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup("a@x.com")

	w := env.do(http.MethodGet, "/api/annotations", token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "extractionId is required")
}

func TestListAnnotationsForeignExtraction(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signup("a@x.com")
	other := env.signup("b@x.com")
	id := env.createExtraction(owner, nil)

	w := env.do(http.MethodGet, "/api/annotations?extractionId="+id, other, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateAnnotationPartial(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup("a@x.com")
	id := env.createExtraction(token, nil)
	annotation := env.createAnnotation(token, id, gin.H{
		"extractedValue": "12.50",
		"expectedValue":  "12.00",
		"category":       "ocr",
		"confidence":     0.87,
	})

	w := env.do(http.MethodPut, "/api/annotations/"+annotation.ID, token, gin.H{
		"status": "incorrect",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp annotationResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "incorrect", resp.Annotation.Status)
	require.NotNil(t, resp.Annotation.ExtractedValue)
	assert.Equal(t, "12.50", *resp.Annotation.ExtractedValue)
	require.NotNil(t, resp.Annotation.ExpectedValue)
	assert.Equal(t, "12.00", *resp.Annotation.ExpectedValue)
	require.NotNil(t, resp.Annotation.Category)
	assert.Equal(t, "ocr", *resp.Annotation.Category)
	require.NotNil(t, resp.Annotation.Confidence)
	assert.InDelta(t, 0.87, *resp.Annotation.Confidence, 1e-9)
}

func TestUpdateAnnotationRejectsBadStatus(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup("a@x.com")
	id := env.createExtraction(token, nil)
	annotation := env.createAnnotation(token, id, nil)

	w := env.do(http.MethodPut, "/api/annotations/"+annotation.ID, token, gin.H{
		"status": "maybe",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateAnnotationForeignOwner(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signup("a@x.com")
	other := env.signup("b@x.com")
	id := env.createExtraction(owner, nil)
	annotation := env.createAnnotation(owner, id, nil)

	w := env.do(http.MethodPut, "/api/annotations/"+annotation.ID, other, gin.H{
		"status": "incorrect",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(http.MethodDelete, "/api/annotations/"+annotation.ID, other, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteAnnotation(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup("a@x.com")
	id := env.createExtraction(token, nil)
	annotation := env.createAnnotation(token, id, nil)

	w := env.do(http.MethodDelete, "/api/annotations/"+annotation.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/api/annotations?extractionId="+id, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Annotations []models.Annotation `json:"annotations"`
	}
	decodeBody(t, w, &resp)
	assert.Empty(t, resp.Annotations)
}
