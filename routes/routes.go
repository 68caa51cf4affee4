package routes

import (
	"course-connect/controllers"
	"course-connect/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, issuer *middleware.SessionIssuer) {
	router.Use(middleware.SessionMiddleware(issuer))

	// Pages
	router.GET("/", controllers.LoginPage)
	router.POST("/login", controllers.LoginForm)
	router.POST("/logout", controllers.Logout)
	router.GET("/dashboard", controllers.DashboardPage)
	router.POST("/dashboard/courses/:id/reviews", controllers.OpenReviewForm)
	router.GET("/reviews/:draft", controllers.ReviewFormPage)
	router.POST("/reviews/:draft", controllers.ReviewFormSubmit)

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", controllers.Health)
		v1.POST("/login", controllers.Login)

		courses := v1.Group("/courses")
		{
			courses.GET("", controllers.GetCourses)
			courses.GET("/:id", controllers.GetCourse)
		}

		drafts := v1.Group("/reviews/drafts")
		{
			drafts.POST("", controllers.CreateDraft)
			drafts.GET("/:id", controllers.GetDraft)
			drafts.PATCH("/:id", controllers.UpdateDraft)
			drafts.POST("/:id/next", controllers.NextStep)
			drafts.POST("/:id/previous", controllers.PreviousStep)
			drafts.DELETE("/:id", controllers.DeleteDraft)
		}
	}
}
