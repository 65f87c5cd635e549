package content_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-sync/feature/content"
	"content-sync/feature/content/models"
)

func newTestApp(t *testing.T, svc *content.Service) *fiber.App {
	t.Helper()

	app := fiber.New()
	content.NewHandler(svc).RegisterRoutes(app)
	return app
}

func TestHandleGetCourse(t *testing.T) {
	dir := t.TempDir()
	writeCourse(t, dir, "math101.json", courseJSON)
	svc, _ := newService(t, dir)
	app := newTestApp(t, svc)

	resp, err := app.Test(httptest.NewRequest("GET", "/content/courses/math101", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var raw models.RawCourse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	assert.Equal(t, "Mathematics 101", raw.Name)
	require.Len(t, raw.Questions, 1)
	// Canonical form: generated ids present, options correct-first and
	// formatted.
	assert.NotNil(t, raw.Questions[0].ID)
	require.Len(t, raw.Questions[0].Options, 2)
	assert.Equal(t, "Two.", raw.Questions[0].Options[0].Text)
}

func TestHandleGetCourseNotFound(t *testing.T) {
	svc, _ := newService(t, t.TempDir())
	app := newTestApp(t, svc)

	resp, err := app.Test(httptest.NewRequest("GET", "/content/courses/missing", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandlePlanReportsCounts(t *testing.T) {
	dir := t.TempDir()
	writeCourse(t, dir, "math101.json", courseJSON)
	svc, mock := newService(t, dir)
	app := newTestApp(t, svc)

	mock.ExpectQuery("SELECT \\* FROM `sync_metadata`").
		WillReturnRows(sqlmock.NewRows([]string{"collection", "entry_key", "fingerprint"}))

	resp, err := app.Test(httptest.NewRequest("POST", "/content/plan", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var report content.SyncReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.False(t, report.Applied)
	assert.Equal(t, 1, report.Counts["courses"].ForSync)
	assert.Equal(t, 2, report.Counts["question_options"].ForSync)
	assert.Empty(t, report.Failures)
}

func TestHandlePlanRejectsInvalidContent(t *testing.T) {
	dir := t.TempDir()
	writeCourse(t, dir, "broken.json", invalidCourseJSON)
	svc, _ := newService(t, dir)
	app := newTestApp(t, svc)

	resp, err := app.Test(httptest.NewRequest("POST", "/content/plan", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}
