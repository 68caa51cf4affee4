package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"course-connect/middleware"
	"course-connect/services"

	"github.com/gin-gonic/gin"
)

const flashCookie = "cc_flash"

var (
	courseCatalog *services.CourseCatalogService
	draftStore    *services.DraftStore
	loginGate     *services.LoginGate
	sessions      *middleware.SessionIssuer
)

// Init wires the services the handlers use. It must be called before routes are served.
func Init(catalog *services.CourseCatalogService, drafts *services.DraftStore, gate *services.LoginGate, issuer *middleware.SessionIssuer) {
	courseCatalog = catalog
	draftStore = drafts
	loginGate = gate
	sessions = issuer
}

// OpenDraftCount is reported by the health endpoint and the monitor.
func OpenDraftCount() int {
	if draftStore == nil {
		return 0
	}
	return draftStore.Count()
}

// Toast is a one-shot notification shown on the next rendered page.
type Toast struct {
	Kind    string
	Message string
}

func secureCookies() bool {
	return sessions != nil && sessions.SecureCookies()
}

func setFlash(c *gin.Context, kind, message string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, kind+":"+message, 60, "/", "", secureCookies(), true)
}

// popFlash returns the pending toast, if any, and clears it.
func popFlash(c *gin.Context) *Toast {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	c.SetCookie(flashCookie, "", -1, "/", "", secureCookies(), true)

	kind, message, ok := strings.Cut(raw, ":")
	if !ok || message == "" {
		return nil
	}
	if kind != "success" {
		kind = "error"
	}
	return &Toast{Kind: kind, Message: message}
}

func errorToast(message string) *Toast {
	return &Toast{Kind: "error", Message: message}
}

func jsonError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrDraftNotFound), errors.Is(err, services.ErrCourseNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidFieldValue),
		errors.Is(err, services.ErrUnknownField),
		errors.Is(err, services.ErrInvalidEmailDomain),
		errors.Is(err, services.ErrEmptyPassword):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError writes err as JSON, hiding the cause of unexpected failures.
func respondServiceError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("request %s %s failed: %v", c.Request.Method, c.FullPath(), err)
		jsonError(c, status, "internal server error")
		return
	}
	jsonError(c, status, err.Error())
}
