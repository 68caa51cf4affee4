package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"course-connect/controllers"
	"course-connect/middleware"
	"course-connect/services"
	"course-connect/views"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type client struct {
	t       *testing.T
	router  *gin.Engine
	cookies map[string]*http.Cookie
}

func newClient(t *testing.T, loginDelay time.Duration) *client {
	t.Helper()
	return newClientWithIssuer(t, loginDelay, middleware.NewSessionIssuer("test-secret", time.Hour, false))
}

func newClientWithIssuer(t *testing.T, loginDelay time.Duration, issuer *middleware.SessionIssuer) *client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	controllers.Init(
		services.NewCourseCatalogService(nil),
		services.NewDraftStore(time.Minute),
		services.NewLoginGate("northeastern.edu", loginDelay),
		issuer,
	)

	router := gin.New()
	router.Use(middleware.SecurityHeaders())
	router.SetHTMLTemplate(views.Templates())
	SetupRoutes(router, issuer)

	return &client{t: t, router: router, cookies: map[string]*http.Cookie{}}
}

func (c *client) do(method, path, contentType, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)

	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck
	}
	return rec
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.do(http.MethodGet, path, "", "")
}

func (c *client) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	return c.do(http.MethodPost, path, "application/x-www-form-urlencoded", form.Encode())
}

func (c *client) sendJSON(method, path, body string) *httptest.ResponseRecorder {
	return c.do(method, path, "application/json", body)
}

type draftResponse struct {
	Success bool                  `json:"success"`
	Moved   bool                  `json:"moved"`
	Error   string                `json:"error"`
	Draft   controllers.DraftView `json:"draft"`
}

func decodeDraft(t *testing.T, rec *httptest.ResponseRecorder) draftResponse {
	t.Helper()
	var out draftResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestAPILoginRejectsOtherDomains(t *testing.T) {
	c := newClient(t, 0)

	rec := c.sendJSON(http.MethodPost, "/api/v1/login", `{"email":"user@gmail.com","password":"anything"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please use your Northeastern email address (@northeastern.edu)")
	assert.NotContains(t, c.cookies, middleware.SessionCookie)
}

func TestAPILoginRejectsEmptyPassword(t *testing.T) {
	c := newClient(t, 0)

	rec := c.sendJSON(http.MethodPost, "/api/v1/login", `{"email":"user@northeastern.edu","password":""}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please enter your password")
}

func TestAPILoginSucceedsAfterDelay(t *testing.T) {
	delay := 25 * time.Millisecond
	c := newClient(t, delay)

	start := time.Now()
	rec := c.sendJSON(http.MethodPost, "/api/v1/login", `{"email":"user@northeastern.edu","password":"x"}`)
	assert.True(t, time.Since(start) >= delay, "login answered before the simulated delay")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Success  bool   `json:"success"`
		Message  string `json:"message"`
		Redirect string `json:"redirect"`
		Token    string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "/dashboard", body.Redirect)
	assert.Equal(t, "Successfully logged in!", body.Message)
	assert.NotEmpty(t, body.Token)
	assert.Contains(t, c.cookies, middleware.SessionCookie)
}

func TestLoginFormShowsToastOnRejection(t *testing.T) {
	c := newClient(t, 0)

	rec := c.postForm("/login", url.Values{"email": {"user@gmail.com"}, "password": {"x"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "toast error")
	assert.Contains(t, rec.Body.String(), `value="user@gmail.com"`)
}

func TestLoginFormRedirectsToDashboard(t *testing.T) {
	c := newClient(t, 0)

	rec := c.postForm("/login", url.Values{"email": {"Student@Northeastern.edu"}, "password": {"x"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))

	page := c.get("/dashboard")
	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "Successfully logged in!")
	assert.Contains(t, page.Body.String(), "Student@Northeastern.edu")

	// The toast is shown once.
	again := c.get("/dashboard")
	assert.NotContains(t, again.Body.String(), "Successfully logged in!")

	out := c.postForm("/logout", url.Values{})
	assert.Equal(t, http.StatusSeeOther, out.Code)
	assert.Equal(t, "/", out.Header().Get("Location"))
	assert.NotContains(t, c.cookies, middleware.SessionCookie)
}

func TestReleaseModeCookiesAreSecure(t *testing.T) {
	c := newClientWithIssuer(t, 0, middleware.NewSessionIssuer("test-secret", time.Hour, true))

	rec := c.postForm("/login", url.Values{"email": {"student@northeastern.edu"}, "password": {"x"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	set := map[string]*http.Cookie{}
	for _, ck := range rec.Result().Cookies() {
		set[ck.Name] = ck
	}
	require.Contains(t, set, middleware.SessionCookie)
	require.Contains(t, set, "cc_flash")
	assert.True(t, set[middleware.SessionCookie].Secure)
	assert.True(t, set["cc_flash"].Secure)
	assert.True(t, set[middleware.SessionCookie].HttpOnly)

	out := c.postForm("/logout", url.Values{})
	cleared := out.Result().Cookies()
	require.NotEmpty(t, cleared)
	assert.True(t, cleared[0].Secure)
}

func TestDevelopmentCookiesAreNotSecure(t *testing.T) {
	c := newClient(t, 0)

	rec := c.postForm("/login", url.Values{"email": {"student@northeastern.edu"}, "password": {"x"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	for _, ck := range rec.Result().Cookies() {
		assert.False(t, ck.Secure, ck.Name)
	}
}

func TestDashboardListsCoursesAndIgnoresSearch(t *testing.T) {
	c := newClient(t, 0)

	rec := c.get("/dashboard?q=nothing-matches")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `value="nothing-matches"`)
	assert.Contains(t, body, "Programming Design Paradigm")
	assert.Contains(t, body, "Web Development")
	assert.Contains(t, body, "42 reviews")

	api := c.get("/api/v1/courses?q=nothing-matches")
	require.Equal(t, http.StatusOK, api.Code)
	var list struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(api.Body.Bytes(), &list))
	assert.Equal(t, 6, list.Total)

	assert.Equal(t, http.StatusNotFound, c.get("/api/v1/courses/99").Code)
	assert.Equal(t, http.StatusBadRequest, c.get("/api/v1/courses/abc").Code)
}

func TestReviewWizardPages(t *testing.T) {
	c := newClient(t, 0)

	open := c.postForm("/dashboard/courses/1/reviews", url.Values{})
	require.Equal(t, http.StatusSeeOther, open.Code)
	reviewPath := open.Header().Get("Location")
	require.True(t, strings.HasPrefix(reviewPath, "/reviews/"), reviewPath)

	page := c.get(reviewPath).Body.String()
	assert.Contains(t, page, "Step 1 of 3")
	assert.Contains(t, page, `value="previous" disabled`)
	assert.NotContains(t, page, `name="other_professor"`)

	rec := c.postForm(reviewPath, url.Values{
		"action":        {"update"},
		"semester_term": {"Fall"},
		"academic_year": {""},
		"professor":     {"other"},
		"course_type":   {"core"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	page = c.get(reviewPath).Body.String()
	assert.Contains(t, page, `name="other_professor"`)

	rec = c.postForm(reviewPath, url.Values{
		"action":          {"next"},
		"semester_term":   {"Fall"},
		"professor":       {"other"},
		"other_professor": {"Dr. Visiting"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	page = c.get(reviewPath).Body.String()
	assert.Contains(t, page, "Step 2 of 3")
	assert.NotContains(t, page, "What was the exam format?")

	rec = c.postForm(reviewPath, url.Values{
		"action":             {"update"},
		"teaching_quality":   {"4"},
		"evaluation_methods": {"Midterm Exam", "Projects"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	page = c.get(reviewPath).Body.String()
	assert.Contains(t, page, "What was the exam format?")

	bad := c.postForm(reviewPath, url.Values{"action": {"next"}, "teaching_quality": {"9"}})
	assert.Equal(t, http.StatusUnprocessableEntity, bad.Code)
	assert.Contains(t, bad.Body.String(), "Step 2 of 3")

	c.postForm(reviewPath, url.Values{"action": {"next"}, "evaluation_methods": {"Midterm Exam"}})
	c.postForm(reviewPath, url.Values{"action": {"next"}})
	page = c.get(reviewPath).Body.String()
	assert.Contains(t, page, "Step 3 of 3")
	assert.Contains(t, page, `value="next" disabled`)

	closed := c.postForm(reviewPath, url.Values{"action": {"close"}})
	require.Equal(t, http.StatusSeeOther, closed.Code)
	assert.Equal(t, "/dashboard", closed.Header().Get("Location"))

	gone := c.get(reviewPath)
	assert.Equal(t, http.StatusSeeOther, gone.Code)
	assert.Equal(t, "/dashboard", gone.Header().Get("Location"))
}

func TestDraftAPI(t *testing.T) {
	c := newClient(t, 0)

	created := c.sendJSON(http.MethodPost, "/api/v1/reviews/drafts", `{"course_id":3}`)
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())
	draft := decodeDraft(t, created).Draft
	assert.Equal(t, 1, draft.Step)
	assert.Equal(t, 33, draft.Progress)
	assert.False(t, draft.CanPrevious)
	assert.Len(t, draft.AcademicYears, 6)
	path := "/api/v1/reviews/drafts/" + draft.ID

	prev := decodeDraft(t, c.sendJSON(http.MethodPost, path+"/previous", ""))
	assert.False(t, prev.Moved)
	assert.Equal(t, 1, prev.Draft.Step)

	patched := c.sendJSON(http.MethodPatch, path, `{"field":"evaluation_methods","values":["Final Exam","Other"]}`)
	require.Equal(t, http.StatusOK, patched.Code, patched.Body.String())
	vis := decodeDraft(t, patched).Draft.Visibility
	assert.True(t, vis.ExamFormats)
	assert.True(t, vis.OtherEvaluation)
	assert.False(t, vis.OtherExamFormat)

	invalid := c.sendJSON(http.MethodPatch, path, `{"field":"workload","value":"7"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, invalid.Code)
	unknown := c.sendJSON(http.MethodPatch, path, `{"field":"gpa","value":"4"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, unknown.Code)
	malformed := c.sendJSON(http.MethodPatch, path, `{"value":"4"}`)
	assert.Equal(t, http.StatusBadRequest, malformed.Code)

	current := decodeDraft(t, c.get(path)).Draft
	assert.Equal(t, 0, current.Draft.Workload)
	assert.Equal(t, []string{"Final Exam", "Other"}, current.Draft.EvaluationMethods)

	for i := 0; i < 2; i++ {
		assert.True(t, decodeDraft(t, c.sendJSON(http.MethodPost, path+"/next", "")).Moved)
	}
	last := decodeDraft(t, c.sendJSON(http.MethodPost, path+"/next", ""))
	assert.False(t, last.Moved)
	assert.Equal(t, 3, last.Draft.Step)
	assert.Equal(t, 100, last.Draft.Progress)
	assert.False(t, last.Draft.CanNext)

	assert.Equal(t, http.StatusOK, c.do(http.MethodDelete, path, "", "").Code)
	assert.Equal(t, http.StatusNotFound, c.get(path).Code)
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodDelete, path, "", "").Code)

	missing := c.sendJSON(http.MethodPost, "/api/v1/reviews/drafts", `{"course_id":404}`)
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestHealthReportsOpenDrafts(t *testing.T) {
	c := newClient(t, 0)
	c.sendJSON(http.MethodPost, "/api/v1/reviews/drafts", `{"course_id":1}`)

	rec := c.get("/api/v1/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success    bool   `json:"success"`
		OpenDrafts int    `json:"open_drafts"`
		Source     string `json:"course_source"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 1, body.OpenDrafts)
	assert.Equal(t, "built-in", body.Source)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}
