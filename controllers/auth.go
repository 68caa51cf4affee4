package controllers

import (
	"errors"
	"log"
	"net/http"

	"course-connect/services"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type loginPage struct {
	Toast  *Toast
	Email  string
	Domain string
}

// LoginPage renders the sign-in screen.
func LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.tmpl", loginPage{
		Toast:  popFlash(c),
		Domain: loginGate.Domain(),
	})
}

// LoginForm handles the sign-in form: a rejected address or empty password
// re-renders the page with an error toast, anything else goes to the dashboard
// after the simulated delay.
func LoginForm(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusBadRequest, "login.tmpl", loginPage{
			Toast:  errorToast("Unable to read the sign-in form"),
			Domain: loginGate.Domain(),
		})
		return
	}

	result, err := loginGate.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if statusFor(err) != http.StatusUnprocessableEntity {
			log.Printf("sign-in aborted: %v", err)
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}
		c.HTML(http.StatusUnprocessableEntity, "login.tmpl", loginPage{
			Toast:  errorToast(loginGate.RejectionMessage(err)),
			Email:  req.Email,
			Domain: loginGate.Domain(),
		})
		return
	}

	if token, err := sessions.Issue(result.Email); err != nil {
		log.Printf("failed to issue session for %s: %v", result.Email, err)
	} else {
		sessions.SetCookie(c, token)
	}
	setFlash(c, "success", result.Message)
	c.Redirect(http.StatusSeeOther, result.Redirect)
}

// Login is the JSON counterpart of LoginForm.
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := loginGate.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidEmailDomain) || errors.Is(err, services.ErrEmptyPassword) {
			jsonError(c, http.StatusUnprocessableEntity, loginGate.RejectionMessage(err))
			return
		}
		log.Printf("sign-in aborted: %v", err)
		jsonError(c, http.StatusServiceUnavailable, "sign-in interrupted")
		return
	}

	token, err := sessions.Issue(result.Email)
	if err != nil {
		jsonError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	sessions.SetCookie(c, token)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  result.Message,
		"redirect": result.Redirect,
		"token":    token,
	})
}

// Logout clears the session and returns to the sign-in screen.
func Logout(c *gin.Context) {
	sessions.ClearCookie(c)
	c.Redirect(http.StatusSeeOther, "/")
}
