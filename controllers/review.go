package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"course-connect/models"
	"course-connect/services"

	"github.com/gin-gonic/gin"
)

var errUnknownAction = errors.New("unknown wizard action")

// DraftView is the JSON shape of an open review wizard.
type DraftView struct {
	ID            string              `json:"id"`
	Course        models.Course       `json:"course"`
	Step          int                 `json:"step"`
	TotalSteps    int                 `json:"total_steps"`
	Title         string              `json:"title"`
	Progress      int                 `json:"progress"`
	CanPrevious   bool                `json:"can_previous"`
	CanNext       bool                `json:"can_next"`
	Fields        []string            `json:"fields"`
	Draft         models.ReviewDraft  `json:"draft"`
	Visibility    services.Visibility `json:"visibility"`
	AcademicYears []int               `json:"academic_years"`
}

func newDraftView(id string, w services.ReviewWizard) DraftView {
	return DraftView{
		ID:            id,
		Course:        w.Course,
		Step:          w.Step(),
		TotalSteps:    services.TotalSteps,
		Title:         services.StepTitle(w.Step()),
		Progress:      w.Progress(),
		CanPrevious:   w.CanPrevious(),
		CanNext:       w.CanNext(),
		Fields:        services.StepFields(w.Step()),
		Draft:         w.Draft,
		Visibility:    w.Visibility(),
		AcademicYears: w.AcademicYears(),
	}
}

type ratingInput struct {
	Name  string
	Label string
	Value int
}

type reviewPage struct {
	Toast       *Toast
	DraftID     string
	Course      models.Course
	Step        int
	TotalSteps  int
	Title       string
	Progress    int
	CanPrevious bool
	CanNext     bool
	Draft       models.ReviewDraft
	Visible     services.Visibility
	Years       []int
	Ratings     []ratingInput

	Terms             []models.SemesterTerm
	CourseTypes       []models.CourseType
	DeliveryModes     []models.DeliveryMode
	Recommendations   []models.Recommendation
	EvaluationMethods []string
	ExamFormats       []string
}

func newReviewPage(id string, w services.ReviewWizard, toast *Toast) reviewPage {
	d := w.Draft
	var ratings []ratingInput
	switch w.Step() {
	case 2:
		ratings = []ratingInput{
			{services.FieldTeachingQuality, "Teaching quality", d.TeachingQuality},
			{services.FieldCourseValue, "Value of the course content", d.CourseValue},
			{services.FieldGradingLeniency, "Grading leniency", d.GradingLeniency},
		}
	case 3:
		ratings = []ratingInput{
			{services.FieldWorkload, "Weekly workload", d.Workload},
			{services.FieldDifficulty, "Overall difficulty", d.Difficulty},
		}
	}

	return reviewPage{
		Toast:             toast,
		DraftID:           id,
		Course:            w.Course,
		Step:              w.Step(),
		TotalSteps:        services.TotalSteps,
		Title:             services.StepTitle(w.Step()),
		Progress:          w.Progress(),
		CanPrevious:       w.CanPrevious(),
		CanNext:           w.CanNext(),
		Draft:             d,
		Visible:           w.Visibility(),
		Years:             w.AcademicYears(),
		Ratings:           ratings,
		Terms:             models.SemesterTerms,
		CourseTypes:       models.CourseTypes,
		DeliveryModes:     models.DeliveryModes,
		Recommendations:   models.Recommendations,
		EvaluationMethods: models.EvaluationMethods,
		ExamFormats:       models.ExamFormats,
	}
}

// applyStepForm copies the posted fields of the current step into w. Only
// fields that were shown when the page was rendered are read, so hidden
// fields keep their values. Unchecked radio groups and missing text inputs
// are left alone; an absent checkbox group means nothing is ticked.
func applyStepForm(c *gin.Context, w *services.ReviewWizard) error {
	rendered := w.Clone()
	for _, field := range services.StepFields(w.Step()) {
		if !rendered.FieldVisible(field) {
			continue
		}
		edit := services.FieldEdit{Field: field}
		if services.IsSetField(field) {
			edit.Values = c.PostFormArray(field)
		} else {
			value, ok := c.GetPostForm(field)
			if !ok {
				continue
			}
			edit.Value = value
		}
		if err := w.Apply(edit); err != nil {
			return err
		}
	}
	return nil
}

func transition(w *services.ReviewWizard, action string) error {
	switch action {
	case "next":
		w.Next()
	case "previous":
		w.Previous()
	case "update", "":
	case "close":
		w.Close()
	default:
		return fmt.Errorf("%w: %q", errUnknownAction, action)
	}
	return nil
}

// OpenReviewForm opens the wizard for a course from the dashboard.
func OpenReviewForm(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		setFlash(c, "error", "Unknown course")
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}

	course, err := courseCatalog.Get(id)
	if err != nil {
		if !errors.Is(err, services.ErrCourseNotFound) {
			log.Printf("open review form: %v", err)
		}
		setFlash(c, "error", "Unknown course")
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}

	draftID, _ := draftStore.Open(course)
	c.Redirect(http.StatusSeeOther, "/reviews/"+draftID)
}

// ReviewFormPage renders the wizard at its current step.
func ReviewFormPage(c *gin.Context) {
	id := c.Param("draft")
	w, err := draftStore.Get(id)
	if err != nil {
		setFlash(c, "error", "This review form is no longer open")
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}
	c.HTML(http.StatusOK, "review.tmpl", newReviewPage(id, w, popFlash(c)))
}

// ReviewFormSubmit applies the posted step and then the requested action.
func ReviewFormSubmit(c *gin.Context) {
	id := c.Param("draft")
	action := c.PostForm("action")

	w, err := draftStore.Update(id, func(w *services.ReviewWizard) error {
		if action == "close" {
			w.Close()
			return nil
		}
		if err := applyStepForm(c, w); err != nil {
			return err
		}
		return transition(w, action)
	})

	switch {
	case errors.Is(err, services.ErrDraftNotFound):
		setFlash(c, "error", "This review form is no longer open")
		c.Redirect(http.StatusSeeOther, "/dashboard")
	case errors.Is(err, errUnknownAction):
		c.HTML(http.StatusBadRequest, "review.tmpl", newReviewPage(id, w, errorToast("Unknown action")))
	case err != nil:
		c.HTML(statusFor(err), "review.tmpl", newReviewPage(id, w, errorToast(err.Error())))
	case !w.IsOpen():
		c.Redirect(http.StatusSeeOther, "/dashboard")
	default:
		c.Redirect(http.StatusSeeOther, "/reviews/"+id)
	}
}

type createDraftRequest struct {
	CourseID int `json:"course_id" binding:"required"`
}

// CreateDraft opens a wizard for the requested course.
func CreateDraft(c *gin.Context) {
	var req createDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, err.Error())
		return
	}

	course, err := courseCatalog.Get(req.CourseID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	id, w := draftStore.Open(course)
	c.JSON(http.StatusCreated, gin.H{"success": true, "draft": newDraftView(id, w)})
}

// GetDraft returns the wizard state.
func GetDraft(c *gin.Context) {
	id := c.Param("id")
	w, err := draftStore.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "draft": newDraftView(id, w)})
}

// UpdateDraft applies one field edit.
func UpdateDraft(c *gin.Context) {
	var edit services.FieldEdit
	if err := c.ShouldBindJSON(&edit); err != nil {
		jsonError(c, http.StatusBadRequest, err.Error())
		return
	}

	id := c.Param("id")
	w, err := draftStore.Update(id, func(w *services.ReviewWizard) error {
		return w.Apply(edit)
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "draft": newDraftView(id, w)})
}

// NextStep advances the wizard; on the last step it is a no-op.
func NextStep(c *gin.Context) {
	moveStep(c, "next")
}

// PreviousStep goes back one step; on the first step it is a no-op.
func PreviousStep(c *gin.Context) {
	moveStep(c, "previous")
}

func moveStep(c *gin.Context, action string) {
	id := c.Param("id")
	moved := false
	w, err := draftStore.Update(id, func(w *services.ReviewWizard) error {
		before := w.Step()
		if err := transition(w, action); err != nil {
			return err
		}
		moved = w.Step() != before
		return nil
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "moved": moved, "draft": newDraftView(id, w)})
}

// DeleteDraft closes the wizard and discards its draft.
func DeleteDraft(c *gin.Context) {
	if err := draftStore.Close(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Review draft discarded"})
}
