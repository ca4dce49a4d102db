package reviewhandler

import (
	"strings"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"timesheet-backend/db"
	dailylogchangestore "timesheet-backend/lib/daily-log/change-store"
	dailylogstore "timesheet-backend/lib/daily-log/store"
	employeestore "timesheet-backend/lib/dicts/employee/store"
	projectstore "timesheet-backend/lib/dicts/project/store"
	apperror "timesheet-backend/lib/utils/app-error"
	initchecker "timesheet-backend/lib/utils/init-checker"
	"timesheet-backend/models"
	dailylogapimodels "timesheet-backend/models/api/dailylog"
)

type Provider interface {
	Review(request dailylogapimodels.ReviewRequest) (dailylogapimodels.DailyLogView, error)
	LogsForReviewer(filter dailylogapimodels.ReviewerLogsFilter) (dailylogapimodels.ReviewerLogsView, error)
}

var Instance Provider

func NewHandler() {
	instance := newImpl(db.DB)
	initchecker.CheckInit(
		"store", instance.store,
		"changeStore", instance.changeStore,
		"employeeStore", instance.employeeStore,
		"projectStore", instance.projectStore,
	)
	Instance = instance
}

func NewHandlerWithTx(tx *gorm.DB) Provider {
	return newImpl(tx)
}

func newImpl(tx *gorm.DB) impl {
	return impl{
		store:         dailylogstore.NewInstance(tx),
		changeStore:   dailylogchangestore.NewInstance(tx),
		employeeStore: employeestore.NewInstance(tx),
		projectStore:  projectstore.NewInstance(tx),
	}
}

type impl struct {
	store         dailylogstore.Provider
	changeStore   dailylogchangestore.Provider
	employeeStore employeestore.Provider
	projectStore  projectstore.Provider
}

// Review меняет статус проверки. Проверять запись может только назначенный ей проверяющий,
// для остальных запись считается не найденной
func (i impl) Review(request dailylogapimodels.ReviewRequest) (dailylogapimodels.DailyLogView, error) {
	logger := log.
		WithField("rec_id", request.LogID).
		WithField("reviewer_id", request.ReviewerID)
	if err := request.Validate(); err != nil {
		return dailylogapimodels.DailyLogView{}, err
	}
	status, _ := models.ParseReviewStatus(request.StatusReview)

	updMap := map[string]interface{}{
		"status_review":    status.ToStored(),
		"rejection_reason": nil,
	}
	if status == models.ReviewRejected {
		if request.RejectionReason == nil || strings.TrimSpace(*request.RejectionReason) == "" {
			return dailylogapimodels.DailyLogView{}, apperror.New(apperror.MissingField, "не указана причина отклонения")
		}
		updMap["rejection_reason"] = strings.TrimSpace(*request.RejectionReason)
	}

	updated, err := i.store.UpdateForReviewer(request.LogID, request.ReviewerID, updMap)
	if err != nil {
		return dailylogapimodels.DailyLogView{}, apperror.FromStorage(err, "ошибка сохранения результата проверки")
	}
	if !updated {
		return dailylogapimodels.DailyLogView{}, apperror.Newf(apperror.LogNotFound,
			"запись %s не найдена среди назначенных проверяющему", request.LogID)
	}
	rec, err := i.store.GetByID(request.LogID)
	if err != nil {
		return dailylogapimodels.DailyLogView{}, apperror.FromStorage(err, "ошибка получения записи о работе")
	}
	if rec == nil {
		return dailylogapimodels.DailyLogView{}, apperror.Newf(apperror.LogNotFound, "запись %s не найдена", request.LogID)
	}
	logger.
		WithField("status_review", status).
		Info("запись о работе проверена")
	return dailylogapimodels.DailyLogConvert(*rec), nil
}

// LogsForReviewer - записи, которые проверяющему назначены сейчас или были назначены раньше
func (i impl) LogsForReviewer(filter dailylogapimodels.ReviewerLogsFilter) (dailylogapimodels.ReviewerLogsView, error) {
	if err := filter.Validate(); err != nil {
		return dailylogapimodels.ReviewerLogsView{}, err
	}
	reviewerID, err := i.resolveReviewerID(filter)
	if err != nil {
		return dailylogapimodels.ReviewerLogsView{}, err
	}
	historicalIDs, err := i.changeStore.LogIDsByReviewer(reviewerID)
	if err != nil {
		return dailylogapimodels.ReviewerLogsView{}, apperror.FromStorage(err, "ошибка получения истории проверок")
	}
	list, err := i.store.ListForReviewer(reviewerID, historicalIDs)
	if err != nil {
		return dailylogapimodels.ReviewerLogsView{}, apperror.FromStorage(err, "ошибка получения записей о работе")
	}

	result := dailylogapimodels.ReviewerLogsView{
		Logs:     make([]dailylogapimodels.DailyLogView, 0, len(list)),
		Projects: []dailylogapimodels.ProjectShortView{},
	}
	projectIDs := []string{}
	seenProject := map[string]bool{}
	for _, rec := range list {
		result.Logs = append(result.Logs, dailylogapimodels.DailyLogConvert(rec))
		if rec.ProjectID != nil && !seenProject[*rec.ProjectID] {
			seenProject[*rec.ProjectID] = true
			projectIDs = append(projectIDs, *rec.ProjectID)
		}
	}
	projects, err := i.projectStore.ListByIDs(projectIDs)
	if err != nil {
		return dailylogapimodels.ReviewerLogsView{}, apperror.FromStorage(err, "ошибка получения проектов")
	}
	for _, project := range projects {
		result.Projects = append(result.Projects, dailylogapimodels.ProjectShortView{
			ID:          project.ID,
			Name:        project.Name,
			Description: project.Description,
		})
	}
	return result, nil
}

func (i impl) resolveReviewerID(filter dailylogapimodels.ReviewerLogsFilter) (string, error) {
	if filter.ReviewerID != "" {
		rec, err := i.employeeStore.GetByID(filter.ReviewerID)
		if err != nil {
			return "", apperror.FromStorage(err, "ошибка получения проверяющего")
		}
		if rec == nil {
			return "", apperror.Newf(apperror.EmployeeNotFound, "проверяющий %s не найден", filter.ReviewerID)
		}
		return rec.ID, nil
	}
	rec, err := i.employeeStore.GetByEmail(filter.ReviewerEmail)
	if err != nil {
		return "", apperror.FromStorage(err, "ошибка получения проверяющего")
	}
	if rec == nil {
		return "", apperror.Newf(apperror.EmployeeNotFound, "проверяющий с email %s не найден", filter.ReviewerEmail)
	}
	return rec.ID, nil
}
