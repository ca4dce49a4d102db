package apiv1

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	dailyloghandler "timesheet-backend/lib/daily-log"
	reviewhandler "timesheet-backend/lib/review"
	apperror "timesheet-backend/lib/utils/app-error"
	apimodels "timesheet-backend/models/api"
	dailylogapimodels "timesheet-backend/models/api/dailylog"
)

type dailyLogMock struct {
	dailyloghandler.Provider
	saved   []dailylogapimodels.DailyLogData
	ids     []string
	saveErr error
	getErr  error
	days    int
}

func (m *dailyLogMock) Recent(employeeID string, days int) ([]dailylogapimodels.DailyLogView, error) {
	m.days = days
	if employeeID == "missing" {
		return nil, apperror.New(apperror.EmployeeNotFound, "сотрудник не найден")
	}
	return []dailylogapimodels.DailyLogView{{ID: "log-1", EmployeeID: employeeID}}, nil
}

func (m *dailyLogMock) Save(ctx context.Context, entries []dailylogapimodels.DailyLogData) ([]string, error) {
	m.saved = entries
	return m.ids, m.saveErr
}

func (m *dailyLogMock) Get(logID string) (dailylogapimodels.DailyLogWithChanges, error) {
	if m.getErr != nil {
		return dailylogapimodels.DailyLogWithChanges{}, m.getErr
	}
	return dailylogapimodels.DailyLogWithChanges{
		DailyLogView: dailylogapimodels.DailyLogView{ID: logID},
		Changes:      []dailylogapimodels.DailyLogChangeView{},
	}, nil
}

type reviewMock struct {
	reviewhandler.Provider
	err error
}

func (m *reviewMock) Review(request dailylogapimodels.ReviewRequest) (dailylogapimodels.DailyLogView, error) {
	return dailylogapimodels.DailyLogView{ID: request.LogID, StatusReview: request.StatusReview}, m.err
}

func newDailyLogApp(dailyLog dailyloghandler.Provider, review reviewhandler.Provider) *fiber.App {
	dailyloghandler.Instance = dailyLog
	reviewhandler.Instance = review
	app := fiber.New()
	InitDailyLogApiRouters(app)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string) (int, apimodels.Response) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	result := apimodels.Response{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return resp.StatusCode, result
}

func TestDailyLogApi(t *testing.T) {
	t.Run(`save returns ids`, func(t *testing.T) {
		dailyLog := &dailyLogMock{ids: []string{"a", "b"}}
		app := newDailyLogApp(dailyLog, &reviewMock{})
		status, resp := doRequest(t, app, http.MethodPost, "/daily-logs/save",
			`[{"id":"null","employee_id":"e1","log_date":"2025-01-10","project_id":"p1","start_time":"09:00","end_time":"10:00","task_description":"work"}]`)
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, "success", resp.Status)
		require.Equal(t, []interface{}{"a", "b"}, resp.Data)
		require.Len(t, dailyLog.saved, 1)
		require.True(t, dailyLog.saved[0].IsNew())
	})

	t.Run(`save maps error kinds to status`, func(t *testing.T) {
		dailyLog := &dailyLogMock{saveErr: apperror.New(apperror.OverlappingInterval, "запись 1: пересечение")}
		app := newDailyLogApp(dailyLog, &reviewMock{})
		status, resp := doRequest(t, app, http.MethodPost, "/daily-logs/save", `[]`)
		require.Equal(t, http.StatusConflict, status)
		require.Equal(t, "fail", resp.Status)
		require.Equal(t, string(apperror.OverlappingInterval), resp.Code)
		require.Equal(t, "запись 1: пересечение", resp.Message)

		dailyLog.saveErr = errors.New("connection reset")
		status, resp = doRequest(t, app, http.MethodPost, "/daily-logs/save", `[]`)
		require.Equal(t, http.StatusInternalServerError, status)
		require.NotContains(t, resp.Message, "connection reset")
	})

	t.Run(`save rejects malformed body`, func(t *testing.T) {
		app := newDailyLogApp(&dailyLogMock{}, &reviewMock{})
		status, resp := doRequest(t, app, http.MethodPost, "/daily-logs/save", `{"broken"`)
		require.Equal(t, http.StatusBadRequest, status)
		require.Equal(t, "fail", resp.Status)
	})

	t.Run(`filter validates query`, func(t *testing.T) {
		app := newDailyLogApp(&dailyLogMock{}, &reviewMock{})
		status, resp := doRequest(t, app, http.MethodGet, "/daily-logs/filter?status_review=Unknown", "")
		require.Equal(t, http.StatusBadRequest, status)
		require.Equal(t, string(apperror.InvalidStatus), resp.Code)
	})

	t.Run(`get and not found`, func(t *testing.T) {
		dailyLog := &dailyLogMock{}
		app := newDailyLogApp(dailyLog, &reviewMock{})
		status, resp := doRequest(t, app, http.MethodGet, "/daily-logs/log-1", "")
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, "log-1", resp.Data.(map[string]interface{})["id"])

		dailyLog.getErr = apperror.New(apperror.LogNotFound, "запись не найдена")
		status, resp = doRequest(t, app, http.MethodGet, "/daily-logs/log-1", "")
		require.Equal(t, http.StatusNotFound, status)
		require.Equal(t, string(apperror.LogNotFound), resp.Code)
	})

	t.Run(`review`, func(t *testing.T) {
		review := &reviewMock{}
		app := newDailyLogApp(&dailyLogMock{}, review)
		status, resp := doRequest(t, app, http.MethodPost, "/daily-logs/review",
			`{"log_id":"log-1","reviewer_id":"m1","status_review":"Approved"}`)
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, "Approved", resp.Data.(map[string]interface{})["status_review"])

		review.err = apperror.New(apperror.MissingField, "не указана причина отклонения")
		status, resp = doRequest(t, app, http.MethodPost, "/daily-logs/review",
			`{"log_id":"log-1","reviewer_id":"m1","status_review":"Rejected"}`)
		require.Equal(t, http.StatusBadRequest, status)
		require.Equal(t, string(apperror.MissingField), resp.Code)
	})

	t.Run(`latest seven days`, func(t *testing.T) {
		dailyLog := &dailyLogMock{}
		app := newDailyLogApp(dailyLog, &reviewMock{})
		status, resp := doRequest(t, app, http.MethodGet, "/daily-logs/latest-seven-days/e1", "")
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, 7, dailyLog.days)
		require.Len(t, resp.Data, 1)

		status, resp = doRequest(t, app, http.MethodGet, "/daily-logs/latest-seven-days/missing", "")
		require.Equal(t, http.StatusNotFound, status)
		require.Equal(t, string(apperror.EmployeeNotFound), resp.Code)
	})
}
