package controllers

import (
	"log"
	"net/http"
	"strconv"

	"course-connect/middleware"
	"course-connect/models"

	"github.com/gin-gonic/gin"
)

type dashboardPage struct {
	Toast   *Toast
	Email   string
	Query   string
	Courses []models.Course
}

// DashboardPage lists every course. The search box is echoed back but does not filter.
func DashboardPage(c *gin.Context) {
	courses, err := courseCatalog.List()
	if err != nil {
		log.Printf("dashboard: %v", err)
		c.HTML(http.StatusInternalServerError, "dashboard.tmpl", dashboardPage{
			Toast: errorToast("Courses are unavailable right now"),
			Email: middleware.CurrentEmail(c),
			Query: c.Query("q"),
		})
		return
	}

	c.HTML(http.StatusOK, "dashboard.tmpl", dashboardPage{
		Toast:   popFlash(c),
		Email:   middleware.CurrentEmail(c),
		Query:   c.Query("q"),
		Courses: courses,
	})
}

// GetCourses returns the full course list; the q parameter is accepted and ignored.
func GetCourses(c *gin.Context) {
	courses, err := courseCatalog.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"courses": courses,
		"total":   len(courses),
	})
}

// GetCourse returns one course by id.
func GetCourse(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonError(c, http.StatusBadRequest, "Invalid course ID")
		return
	}

	course, err := courseCatalog.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "course": course})
}
