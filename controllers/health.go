package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health reports liveness plus the number of open review drafts.
func Health(c *gin.Context) {
	source := ""
	if courseCatalog != nil {
		source = courseCatalog.Source()
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"status":        "ok",
		"message":       "Course Connect is running",
		"open_drafts":   OpenDraftCount(),
		"course_source": source,
	})
}
