package models

import "slices"

type SemesterTerm string

const (
	TermSpring SemesterTerm = "Spring"
	TermSummer SemesterTerm = "Summer"
	TermFall   SemesterTerm = "Fall"
)

type CourseType string

const (
	CourseTypeCore     CourseType = "core"
	CourseTypeElective CourseType = "elective"
)

type DeliveryMode string

const (
	DeliveryOnline   DeliveryMode = "online"
	DeliveryInPerson DeliveryMode = "in-person"
	DeliveryHybrid   DeliveryMode = "hybrid"
)

type Recommendation string

const (
	RecommendYes   Recommendation = "yes"
	RecommendNo    Recommendation = "no"
	RecommendMaybe Recommendation = "maybe"
)

// OtherOption is the value of every "Other" choice that reveals a free-text input.
const OtherOption = "Other"

// OtherProfessor is the professor selection that reveals the free-text name input.
const OtherProfessor = "other"

const (
	EvalMidtermExam = "Midterm Exam"
	EvalFinalExam   = "Final Exam"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Option lists in display order. Set-valued draft fields are kept in this order.
var (
	SemesterTerms   = []SemesterTerm{TermSpring, TermSummer, TermFall}
	CourseTypes     = []CourseType{CourseTypeCore, CourseTypeElective}
	DeliveryModes   = []DeliveryMode{DeliveryOnline, DeliveryInPerson, DeliveryHybrid}
	Recommendations = []Recommendation{RecommendYes, RecommendNo, RecommendMaybe}

	EvaluationMethods = []string{
		"Assignments",
		"Projects",
		"Quizzes",
		EvalMidtermExam,
		EvalFinalExam,
		"Presentations",
		"Participation",
		OtherOption,
	}

	ExamFormats = []string{
		"Multiple Choice",
		"Short Answer",
		"Coding",
		"Essay",
		"Open Book",
		OtherOption,
	}
)

var (
	courseTypeLabels = map[CourseType]string{
		CourseTypeCore:     "Core Requirement",
		CourseTypeElective: "Elective",
	}
	deliveryModeLabels = map[DeliveryMode]string{
		DeliveryOnline:   "Online",
		DeliveryInPerson: "In-Person",
		DeliveryHybrid:   "Hybrid",
	}
	recommendationLabels = map[Recommendation]string{
		RecommendYes:   "Yes, I would recommend it",
		RecommendNo:    "No, I would not",
		RecommendMaybe: "Depends on the student",
	}
)

func (t CourseType) Label() string     { return courseTypeLabels[t] }
func (m DeliveryMode) Label() string   { return deliveryModeLabels[m] }
func (r Recommendation) Label() string { return recommendationLabels[r] }

// ReviewDraft is the transient set of values a user edits in the review wizard.
// Zero values mean "not answered yet".
type ReviewDraft struct {
	CourseID int `json:"course_id"`

	// Step 1
	SemesterTerm   SemesterTerm `json:"semester_term"`
	AcademicYear   int          `json:"academic_year"`
	Professor      string       `json:"professor"`
	OtherProfessor string       `json:"other_professor"`
	CourseType     CourseType   `json:"course_type"`
	DeliveryMode   DeliveryMode `json:"delivery_mode"`

	// Step 2
	TeachingQuality   int      `json:"teaching_quality"`
	CourseValue       int      `json:"course_value"`
	GradingLeniency   int      `json:"grading_leniency"`
	EvaluationMethods []string `json:"evaluation_methods"`
	OtherEvaluation   string   `json:"other_evaluation"`
	ExamFormats       []string `json:"exam_formats"`
	OtherExamFormat   string   `json:"other_exam_format"`

	// Step 3
	Workload       int            `json:"workload"`
	Difficulty     int            `json:"difficulty"`
	Recommendation Recommendation `json:"recommendation"`
	Feedback       string         `json:"feedback"`
	Tips           string         `json:"tips"`
}

// Clone returns a copy of d with its own set slices.
func (d ReviewDraft) Clone() ReviewDraft {
	out := d
	out.EvaluationMethods = slices.Clone(d.EvaluationMethods)
	out.ExamFormats = slices.Clone(d.ExamFormats)
	return out
}

// HasEvaluationMethod reports whether method is among the selected evaluation methods.
func (d ReviewDraft) HasEvaluationMethod(method string) bool {
	return slices.Contains(d.EvaluationMethods, method)
}

// HasExamFormat reports whether format is among the selected exam formats.
func (d ReviewDraft) HasExamFormat(format string) bool {
	return slices.Contains(d.ExamFormats, format)
}
