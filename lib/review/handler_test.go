package reviewhandler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"timesheet-backend/db/testdb"
	dailyloghandler "timesheet-backend/lib/daily-log"
	employeestore "timesheet-backend/lib/dicts/employee/store"
	projectstore "timesheet-backend/lib/dicts/project/store"
	apperror "timesheet-backend/lib/utils/app-error"
	"timesheet-backend/models"
	dailylogapimodels "timesheet-backend/models/api/dailylog"
	dbmodels "timesheet-backend/models/db"
)

type fixture struct {
	tx        *gorm.DB
	managerID string
	otherID   string
	userID    string
	projectID string
	logID     string
}

func newFixture(t *testing.T) fixture {
	tx := testdb.New(t)
	employees := employeestore.NewInstance(tx)
	managerID, err := employees.Create(dbmodels.Employee{EmployeeName: "Manager", Email: "manager@example.com"})
	require.NoError(t, err)
	otherID, err := employees.Create(dbmodels.Employee{EmployeeName: "Other", Email: "other@example.com"})
	require.NoError(t, err)
	reportsTo := managerID
	userID, err := employees.Create(dbmodels.Employee{EmployeeName: "User", Email: "user@example.com", ReportsToID: &reportsTo})
	require.NoError(t, err)
	projectID, err := projectstore.NewInstance(tx).Create(dbmodels.Project{Name: "Project", Description: "Описание"})
	require.NoError(t, err)

	ids, err := dailyloghandler.NewHandlerWithTx(tx, dailyloghandler.Options{}).Save(context.Background(),
		[]dailylogapimodels.DailyLogData{{
			EmployeeID:      userID,
			LogDate:         "2025-01-10",
			ProjectID:       projectID,
			StartTime:       "09:00",
			EndTime:         "12:00",
			TaskDescription: "X",
		}})
	require.NoError(t, err)
	return fixture{
		tx:        tx,
		managerID: managerID,
		otherID:   otherID,
		userID:    userID,
		projectID: projectID,
		logID:     ids[0],
	}
}

func requireCode(t *testing.T, err error, code apperror.Code) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperror.As(err)
	require.True(t, ok, err.Error())
	require.Equal(t, code, appErr.Code, appErr.Message)
}

func TestReview(t *testing.T) {
	t.Run(`assigned reviewer approves`, func(t *testing.T) {
		f := newFixture(t)
		handler := NewHandlerWithTx(f.tx)

		view, err := handler.Review(dailylogapimodels.ReviewRequest{
			LogID:        f.logID,
			ReviewerID:   f.managerID,
			StatusReview: "approved",
		})
		require.NoError(t, err)
		require.Equal(t, string(models.ReviewApproved), view.StatusReview)
		require.Nil(t, view.RejectionReason)

		var changes int64
		require.NoError(t, f.tx.Model(&dbmodels.DailyLogChange{}).Where("daily_log_id = ?", f.logID).Count(&changes).Error)
		require.Equal(t, int64(1), changes)
	})

	t.Run(`rejection requires reason`, func(t *testing.T) {
		f := newFixture(t)
		handler := NewHandlerWithTx(f.tx)

		_, err := handler.Review(dailylogapimodels.ReviewRequest{
			LogID:        f.logID,
			ReviewerID:   f.managerID,
			StatusReview: "Rejected",
		})
		requireCode(t, err, apperror.MissingField)

		reason := "  нет деталей  "
		view, err := handler.Review(dailylogapimodels.ReviewRequest{
			LogID:           f.logID,
			ReviewerID:      f.managerID,
			StatusReview:    "Rejected",
			RejectionReason: &reason,
		})
		require.NoError(t, err)
		require.Equal(t, string(models.ReviewRejected), view.StatusReview)
		require.NotNil(t, view.RejectionReason)
		require.Equal(t, "нет деталей", *view.RejectionReason)

		view, err = handler.Review(dailylogapimodels.ReviewRequest{
			LogID:        f.logID,
			ReviewerID:   f.managerID,
			StatusReview: "Pending",
		})
		require.NoError(t, err)
		require.Equal(t, string(models.ReviewPending), view.StatusReview)
		require.Nil(t, view.RejectionReason)
	})

	t.Run(`other reviewer does not see the log`, func(t *testing.T) {
		f := newFixture(t)
		handler := NewHandlerWithTx(f.tx)

		_, err := handler.Review(dailylogapimodels.ReviewRequest{
			LogID:        f.logID,
			ReviewerID:   f.otherID,
			StatusReview: "Approved",
		})
		requireCode(t, err, apperror.LogNotFound)

		_, err = handler.Review(dailylogapimodels.ReviewRequest{
			LogID:        "missing",
			ReviewerID:   f.managerID,
			StatusReview: "Approved",
		})
		requireCode(t, err, apperror.LogNotFound)
	})

	t.Run(`request validation`, func(t *testing.T) {
		f := newFixture(t)
		handler := NewHandlerWithTx(f.tx)

		_, err := handler.Review(dailylogapimodels.ReviewRequest{LogID: f.logID, ReviewerID: f.managerID})
		requireCode(t, err, apperror.MissingField)

		_, err = handler.Review(dailylogapimodels.ReviewRequest{
			LogID:        f.logID,
			ReviewerID:   f.managerID,
			StatusReview: "Done",
		})
		requireCode(t, err, apperror.InvalidStatus)
	})
}

func TestLogsForReviewer(t *testing.T) {
	t.Run(`current and historical reviewer`, func(t *testing.T) {
		f := newFixture(t)
		handler := NewHandlerWithTx(f.tx)

		view, err := handler.LogsForReviewer(dailylogapimodels.ReviewerLogsFilter{ReviewerID: f.managerID})
		require.NoError(t, err)
		require.Len(t, view.Logs, 1)
		require.Len(t, view.Projects, 1)
		require.Equal(t, "Project", view.Projects[0].Name)

		// сотрудник переходит к другому руководителю и исправляет запись
		require.NoError(t, employeestore.NewInstance(f.tx).Update(f.userID, map[string]interface{}{"reports_to_id": f.otherID}))
		logID := f.logID
		_, err = dailyloghandler.NewHandlerWithTx(f.tx, dailyloghandler.Options{}).Save(context.Background(),
			[]dailylogapimodels.DailyLogData{{
				ID:              &logID,
				EmployeeID:      f.userID,
				LogDate:         "2025-01-10",
				ProjectID:       f.projectID,
				StartTime:       "09:00",
				EndTime:         "12:00",
				TaskDescription: "X, исправлено",
			}})
		require.NoError(t, err)

		view, err = handler.LogsForReviewer(dailylogapimodels.ReviewerLogsFilter{ReviewerEmail: "MANAGER@example.com"})
		require.NoError(t, err)
		require.Len(t, view.Logs, 1)
		require.Equal(t, f.logID, view.Logs[0].ID)

		view, err = handler.LogsForReviewer(dailylogapimodels.ReviewerLogsFilter{ReviewerID: f.otherID})
		require.NoError(t, err)
		require.Len(t, view.Logs, 1)
	})

	t.Run(`unknown reviewer`, func(t *testing.T) {
		f := newFixture(t)
		handler := NewHandlerWithTx(f.tx)

		_, err := handler.LogsForReviewer(dailylogapimodels.ReviewerLogsFilter{})
		requireCode(t, err, apperror.MissingField)

		_, err = handler.LogsForReviewer(dailylogapimodels.ReviewerLogsFilter{ReviewerID: "missing"})
		requireCode(t, err, apperror.EmployeeNotFound)

		_, err = handler.LogsForReviewer(dailylogapimodels.ReviewerLogsFilter{ReviewerEmail: "nobody@example.com"})
		requireCode(t, err, apperror.EmployeeNotFound)
	})

	t.Run(`reviewer without logs`, func(t *testing.T) {
		f := newFixture(t)
		view, err := NewHandlerWithTx(f.tx).LogsForReviewer(dailylogapimodels.ReviewerLogsFilter{ReviewerID: f.userID})
		require.NoError(t, err)
		require.Empty(t, view.Logs)
		require.Empty(t, view.Projects)
	})
}
