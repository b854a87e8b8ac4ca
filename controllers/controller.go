package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func RespondError(c *gin.Context, msg string, code int) {
	c.JSON(code, gin.H{"error": msg})
}

func RespondSuccess(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondInternal logs the underlying error with the operation that failed and
// answers with a generic message only. Internal detail never reaches callers.
func RespondInternal(c *gin.Context, op string, err error, msg string) {
	logrus.WithFields(logrus.Fields{
		"op":   op,
		"path": c.Request.URL.Path,
	}).WithError(err).Error("internal error")
	RespondError(c, msg, http.StatusInternalServerError)
}
