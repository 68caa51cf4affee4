package models

import "slices"

// Course is a catalog entry with its aggregate review metrics.
type Course struct {
	ID               int      `gorm:"primaryKey;autoIncrement:false;column:course_id" json:"id"`
	Name             string   `gorm:"column:name;size:255" json:"name"`
	Code             string   `gorm:"column:code;size:32" json:"code"`
	Professors       []string `gorm:"column:professors;serializer:json" json:"professors"`
	ReviewCount      int      `gorm:"column:review_count" json:"review_count"`
	TeachingQuality  float64  `gorm:"column:teaching_quality" json:"teaching_quality"`
	Difficulty       float64  `gorm:"column:difficulty" json:"difficulty"`
	CodingDifficulty *float64 `gorm:"column:coding_difficulty" json:"coding_difficulty,omitempty"`
	CodingLanguages  []string `gorm:"column:coding_languages;serializer:json" json:"coding_languages,omitempty"`
}

// TableName specifies the table name for Course.
func (Course) TableName() string {
	return "courses"
}

// HasProfessor reports whether name is one of the course's listed professors.
func (c Course) HasProfessor(name string) bool {
	return slices.Contains(c.Professors, name)
}

// HasCodingMetrics reports whether the course carries coding-difficulty data.
func (c Course) HasCodingMetrics() bool {
	return c.CodingDifficulty != nil
}

func rating(v float64) *float64 { return &v }

// DefaultCourses is the built-in course list served when no database is configured.
var DefaultCourses = []Course{
	{
		ID:               1,
		Name:             "Programming Design Paradigm",
		Code:             "CS 5010",
		Professors:       []string{"Dr. Maya Chen", "Dr. Robert Hale", "Dr. Priya Natarajan"},
		ReviewCount:      42,
		TeachingQuality:  4.2,
		Difficulty:       4.5,
		CodingDifficulty: rating(4.3),
		CodingLanguages:  []string{"Java"},
	},
	{
		ID:               2,
		Name:             "Algorithms",
		Code:             "CS 5800",
		Professors:       []string{"Dr. Daniel Okafor", "Dr. Laura Feld"},
		ReviewCount:      35,
		TeachingQuality:  4.0,
		Difficulty:       4.7,
		CodingDifficulty: rating(2.1),
		CodingLanguages:  []string{"Python"},
	},
	{
		ID:              3,
		Name:            "Database Management Systems",
		Code:            "CS 5200",
		Professors:      []string{"Dr. Sofia Marquez", "Dr. Kevin Brandt"},
		ReviewCount:     28,
		TeachingQuality: 4.4,
		Difficulty:      3.2,
	},
	{
		ID:               4,
		Name:             "Foundations of Software Engineering",
		Code:             "CS 5500",
		Professors:       []string{"Dr. Hannah Lowe", "Dr. Marcus Reid"},
		ReviewCount:      19,
		TeachingQuality:  3.8,
		Difficulty:       3.0,
		CodingDifficulty: rating(3.4),
		CodingLanguages:  []string{"TypeScript", "Java"},
	},
	{
		ID:               5,
		Name:             "Machine Learning",
		Code:             "CS 6140",
		Professors:       []string{"Dr. Elena Petrova", "Dr. Samuel Adeyemi"},
		ReviewCount:      31,
		TeachingQuality:  4.1,
		Difficulty:       4.6,
		CodingDifficulty: rating(3.9),
		CodingLanguages:  []string{"Python"},
	},
	{
		ID:              6,
		Name:            "Web Development",
		Code:            "CS 5610",
		Professors:      []string{"Dr. Thomas Quinn"},
		ReviewCount:     24,
		TeachingQuality: 4.3,
		Difficulty:      2.8,
	},
}

// Clone returns a copy of c that shares no slices or pointers with it.
func (c Course) Clone() Course {
	out := c
	out.Professors = slices.Clone(c.Professors)
	out.CodingLanguages = slices.Clone(c.CodingLanguages)
	if c.CodingDifficulty != nil {
		out.CodingDifficulty = rating(*c.CodingDifficulty)
	}
	return out
}
