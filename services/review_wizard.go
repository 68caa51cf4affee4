package services

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"course-connect/models"
	"course-connect/utils"
)

const (
	FirstStep  = 1
	TotalSteps = 3

	// academicYearSpan is how many years, newest first, the year picker offers.
	academicYearSpan = 6
)

var (
	ErrUnknownField      = errors.New("unknown review field")
	ErrInvalidFieldValue = errors.New("invalid review field value")
)

// Review draft field names, shared by the HTML form and the JSON API.
const (
	FieldSemesterTerm      = "semester_term"
	FieldAcademicYear      = "academic_year"
	FieldProfessor         = "professor"
	FieldOtherProfessor    = "other_professor"
	FieldCourseType        = "course_type"
	FieldDeliveryMode      = "delivery_mode"
	FieldTeachingQuality   = "teaching_quality"
	FieldCourseValue       = "course_value"
	FieldGradingLeniency   = "grading_leniency"
	FieldEvaluationMethods = "evaluation_methods"
	FieldOtherEvaluation   = "other_evaluation"
	FieldExamFormats       = "exam_formats"
	FieldOtherExamFormat   = "other_exam_format"
	FieldWorkload          = "workload"
	FieldDifficulty        = "difficulty"
	FieldRecommendation    = "recommendation"
	FieldFeedback          = "feedback"
	FieldTips              = "tips"
)

var stepFields = map[int][]string{
	1: {FieldSemesterTerm, FieldAcademicYear, FieldProfessor, FieldOtherProfessor, FieldCourseType, FieldDeliveryMode},
	2: {FieldTeachingQuality, FieldCourseValue, FieldGradingLeniency, FieldEvaluationMethods, FieldOtherEvaluation, FieldExamFormats, FieldOtherExamFormat},
	3: {FieldWorkload, FieldDifficulty, FieldRecommendation, FieldFeedback, FieldTips},
}

var stepTitles = map[int]string{
	1: "Course Details",
	2: "Ratings & Evaluation",
	3: "Workload & Feedback",
}

// StepFields returns the draft fields collected on step, or nil for an unknown step.
func StepFields(step int) []string {
	return slices.Clone(stepFields[step])
}

// StepTitle returns the heading shown for step.
func StepTitle(step int) string {
	return stepTitles[step]
}

// IsSetField reports whether field holds a multi-selection.
func IsSetField(field string) bool {
	return field == FieldEvaluationMethods || field == FieldExamFormats
}

// AcademicYears lists the selectable academic years for a review opened at now,
// newest first.
func AcademicYears(now time.Time) []int {
	years := make([]int, academicYearSpan)
	for i := range years {
		years[i] = now.Year() - i
	}
	return years
}

// FieldEdit is one discrete change to a draft field. Values is used for
// multi-selection fields, Value for everything else.
type FieldEdit struct {
	Field  string   `json:"field" binding:"required"`
	Value  string   `json:"value"`
	Values []string `json:"values"`
}

// Visibility holds the conditional-field predicates derived from a draft.
type Visibility struct {
	OtherProfessor  bool `json:"other_professor"`
	ExamFormats     bool `json:"exam_formats"`
	OtherEvaluation bool `json:"other_evaluation"`
	OtherExamFormat bool `json:"other_exam_format"`
}

// ReviewWizard is the state of one open review form: the course being reviewed,
// the draft, and the current step.
type ReviewWizard struct {
	Course models.Course
	Draft  models.ReviewDraft

	step  int
	open  bool
	years []int
}

// OpenReviewWizard starts a visible wizard on step 1 with an empty draft for course.
func OpenReviewWizard(course models.Course, now time.Time) ReviewWizard {
	return ReviewWizard{
		Course: course.Clone(),
		Draft: models.ReviewDraft{
			CourseID:          course.ID,
			EvaluationMethods: []string{},
			ExamFormats:       []string{},
		},
		step:  FirstStep,
		open:  true,
		years: AcademicYears(now),
	}
}

// Clone returns a deep copy of w.
func (w ReviewWizard) Clone() ReviewWizard {
	out := w
	out.Course = w.Course.Clone()
	out.Draft = w.Draft.Clone()
	out.years = slices.Clone(w.years)
	return out
}

func (w *ReviewWizard) IsOpen() bool { return w.open }

// Close hides the wizard. The draft is discarded by whoever holds the wizard.
func (w *ReviewWizard) Close() { w.open = false }

func (w *ReviewWizard) Step() int { return w.step }

func (w *ReviewWizard) AcademicYears() []int { return slices.Clone(w.years) }

func (w *ReviewWizard) CanPrevious() bool { return w.step > FirstStep }

func (w *ReviewWizard) CanNext() bool { return w.step < TotalSteps }

// Next advances one step and reports whether the step changed.
func (w *ReviewWizard) Next() bool {
	if !w.CanNext() {
		return false
	}
	w.step++
	return true
}

// Previous goes back one step and reports whether the step changed.
func (w *ReviewWizard) Previous() bool {
	if !w.CanPrevious() {
		return false
	}
	w.step--
	return true
}

// Progress is the completed share of the wizard as a whole percentage.
func (w *ReviewWizard) Progress() int {
	return int(math.Round(float64(w.step) * 100 / TotalSteps))
}

// Visibility evaluates the conditional-field predicates against the current draft.
func (w *ReviewWizard) Visibility() Visibility {
	d := w.Draft
	exam := d.HasEvaluationMethod(models.EvalMidtermExam) || d.HasEvaluationMethod(models.EvalFinalExam)
	return Visibility{
		OtherProfessor:  d.Professor == models.OtherProfessor,
		ExamFormats:     exam,
		OtherEvaluation: d.HasEvaluationMethod(models.OtherOption),
		OtherExamFormat: exam && d.HasExamFormat(models.OtherOption),
	}
}

// FieldVisible reports whether field is currently shown on its step.
// Fields without a reveal condition are always visible.
func (w *ReviewWizard) FieldVisible(field string) bool {
	v := w.Visibility()
	switch field {
	case FieldOtherProfessor:
		return v.OtherProfessor
	case FieldExamFormats:
		return v.ExamFormats
	case FieldOtherEvaluation:
		return v.OtherEvaluation
	case FieldOtherExamFormat:
		return v.OtherExamFormat
	default:
		return true
	}
}

// Apply performs a single field edit. On error the draft is left untouched.
func (w *ReviewWizard) Apply(edit FieldEdit) error {
	next := w.Draft.Clone()
	value := strings.TrimSpace(edit.Value)

	var err error
	switch edit.Field {
	case FieldSemesterTerm:
		next.SemesterTerm, err = parseEnum(value, models.SemesterTerms)
	case FieldAcademicYear:
		next.AcademicYear, err = w.parseYear(value)
	case FieldProfessor:
		if value != "" && value != models.OtherProfessor && !w.Course.HasProfessor(value) {
			err = fmt.Errorf("%w: %s is not listed for %s", ErrInvalidFieldValue, value, w.Course.Code)
		}
		next.Professor = value
	case FieldOtherProfessor:
		next.OtherProfessor = utils.SanitizeInput(edit.Value)
	case FieldCourseType:
		next.CourseType, err = parseEnum(value, models.CourseTypes)
	case FieldDeliveryMode:
		next.DeliveryMode, err = parseEnum(value, models.DeliveryModes)
	case FieldTeachingQuality:
		next.TeachingQuality, err = parseRating(value)
	case FieldCourseValue:
		next.CourseValue, err = parseRating(value)
	case FieldGradingLeniency:
		next.GradingLeniency, err = parseRating(value)
	case FieldEvaluationMethods:
		next.EvaluationMethods, err = normalizeSet(edit.Values, models.EvaluationMethods)
	case FieldOtherEvaluation:
		next.OtherEvaluation = utils.SanitizeInput(edit.Value)
	case FieldExamFormats:
		next.ExamFormats, err = normalizeSet(edit.Values, models.ExamFormats)
	case FieldOtherExamFormat:
		next.OtherExamFormat = utils.SanitizeInput(edit.Value)
	case FieldWorkload:
		next.Workload, err = parseRating(value)
	case FieldDifficulty:
		next.Difficulty, err = parseRating(value)
	case FieldRecommendation:
		next.Recommendation, err = parseEnum(value, models.Recommendations)
	case FieldFeedback:
		next.Feedback = utils.SanitizeInput(edit.Value)
	case FieldTips:
		next.Tips = utils.SanitizeInput(edit.Value)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, edit.Field)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", edit.Field, err)
	}

	w.Draft = next
	return nil
}

func (w *ReviewWizard) parseYear(value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	year, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a year", ErrInvalidFieldValue, value)
	}
	if slices.Contains(w.years, year) {
		return year, nil
	}
	return 0, fmt.Errorf("%w: %d is not an offered academic year", ErrInvalidFieldValue, year)
}

func parseEnum[T ~string](value string, options []T) (T, error) {
	if value == "" {
		return "", nil
	}
	for _, opt := range options {
		if string(opt) == value {
			return opt, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFieldValue, value)
}

func parseRating(value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < models.MinRating || n > models.MaxRating {
		return 0, fmt.Errorf("%w: rating must be %d-%d, got %q", ErrInvalidFieldValue, models.MinRating, models.MaxRating, value)
	}
	return n, nil
}

// normalizeSet validates a multi-selection and returns it deduplicated in option order.
func normalizeSet(values, options []string) ([]string, error) {
	picked := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if !slices.Contains(options, v) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFieldValue, v)
		}
		picked[v] = true
	}

	out := make([]string, 0, len(picked))
	for _, opt := range options {
		if picked[opt] {
			out = append(out, opt)
		}
	}
	return out, nil
}
