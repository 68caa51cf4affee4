// Creates the courses table and loads the built-in course list into it.
// cmd/seed-courses/main.go
package main

import (
	"course-connect/config"
	"course-connect/models"
	"course-connect/services"
	"log"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	if !config.DatabaseConfigured() {
		log.Fatal("DB_HOST is not set; nothing to seed")
	}
	if err := config.InitDB(); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	courses := make([]models.Course, 0, len(models.DefaultCourses))
	for _, c := range models.DefaultCourses {
		courses = append(courses, c.Clone())
	}

	inserted, err := services.NewCourseCatalogService(config.DB).Seed(courses)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("Seeded %d of %d courses (existing ids left untouched)", inserted, len(courses))
}
