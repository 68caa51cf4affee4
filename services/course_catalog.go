package services

import (
	"errors"
	"fmt"

	"course-connect/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrCourseNotFound = errors.New("course not found")

// CourseCatalogService serves the course listing, from the courses table when
// a database is configured and from models.DefaultCourses otherwise.
type CourseCatalogService struct {
	db *gorm.DB
}

func NewCourseCatalogService(db *gorm.DB) *CourseCatalogService {
	return &CourseCatalogService{db: db}
}

// Source names where courses are read from, for logging.
func (s *CourseCatalogService) Source() string {
	if s.db == nil {
		return "built-in"
	}
	return "database"
}

// List returns every course ordered by id.
func (s *CourseCatalogService) List() ([]models.Course, error) {
	if s.db == nil {
		out := make([]models.Course, 0, len(models.DefaultCourses))
		for _, c := range models.DefaultCourses {
			out = append(out, c.Clone())
		}
		return out, nil
	}

	var rows []models.Course
	if err := s.db.Order("course_id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load courses: %w", err)
	}
	return rows, nil
}

// Get returns the course with the given id.
func (s *CourseCatalogService) Get(id int) (models.Course, error) {
	if s.db == nil {
		for _, c := range models.DefaultCourses {
			if c.ID == id {
				return c.Clone(), nil
			}
		}
		return models.Course{}, ErrCourseNotFound
	}

	var rows []models.Course
	if err := s.db.Where("course_id = ?", id).Find(&rows).Error; err != nil {
		return models.Course{}, fmt.Errorf("failed to load course %d: %w", id, err)
	}
	if len(rows) == 0 {
		return models.Course{}, ErrCourseNotFound
	}
	return rows[0], nil
}

// Seed creates the courses table if needed and inserts courses, leaving rows
// whose id already exists untouched. It returns the number of rows inserted.
func (s *CourseCatalogService) Seed(courses []models.Course) (int64, error) {
	if s.db == nil {
		return 0, errors.New("no database configured")
	}
	if err := s.db.AutoMigrate(&models.Course{}); err != nil {
		return 0, fmt.Errorf("failed to migrate courses table: %w", err)
	}
	if len(courses) == 0 {
		return 0, nil
	}
	res := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&courses)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to seed courses: %w", res.Error)
	}
	return res.RowsAffected, nil
}
