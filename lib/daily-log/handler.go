package dailyloghandler

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"timesheet-backend/db"
	assignmenthandler "timesheet-backend/lib/assignment"
	dailylogchangestore "timesheet-backend/lib/daily-log/change-store"
	dailylogstore "timesheet-backend/lib/daily-log/store"
	employeestore "timesheet-backend/lib/dicts/employee/store"
	projectstore "timesheet-backend/lib/dicts/project/store"
	apperror "timesheet-backend/lib/utils/app-error"
	initchecker "timesheet-backend/lib/utils/init-checker"
	"timesheet-backend/lib/utils/lock"
	timecalc "timesheet-backend/lib/utils/time-calc"
	"timesheet-backend/models"
	dailylogapimodels "timesheet-backend/models/api/dailylog"
	dbmodels "timesheet-backend/models/db"
)

const maxDescriptionLen = 255

type Provider interface {
	Save(ctx context.Context, entries []dailylogapimodels.DailyLogData) (ids []string, err error)
	Filter(filter dailylogapimodels.DailyLogFilter) ([]dailylogapimodels.DailyLogView, error)
	Today(employeeID string) ([]dailylogapimodels.DailyLogWithChanges, error)
	Recent(employeeID string, days int) ([]dailylogapimodels.DailyLogView, error)
	Changes(logID string) ([]dailylogapimodels.DailyLogChangeView, error)
	Get(logID string) (dailylogapimodels.DailyLogWithChanges, error)
}

type Options struct {
	// AllowOvernight - конец раньше начала означает переход через полночь
	AllowOvernight bool
	// ResetReviewOnResubmit - исправление отклоненной записи возвращает ее на проверку
	ResetReviewOnResubmit bool
	LockWait              time.Duration
	Location              *time.Location
	Now                   func() time.Time
}

var Instance Provider

func NewHandler(options Options) {
	instance := newImpl(db.DB, options)
	initchecker.CheckInit(
		"db", instance.db,
		"store", instance.store,
		"changeStore", instance.changeStore,
		"employeeStore", instance.employeeStore,
		"projectStore", instance.projectStore,
	)
	Instance = instance
}

func NewHandlerWithTx(tx *gorm.DB, options Options) Provider {
	return newImpl(tx, options)
}

func newImpl(tx *gorm.DB, options Options) impl {
	if options.LockWait <= 0 {
		options.LockWait = 5 * time.Second
	}
	if options.Location == nil {
		options.Location = time.UTC
	}
	if options.Now == nil {
		options.Now = time.Now
	}
	return impl{
		db:            tx,
		options:       options,
		store:         dailylogstore.NewInstance(tx),
		changeStore:   dailylogchangestore.NewInstance(tx),
		employeeStore: employeestore.NewInstance(tx),
		projectStore:  projectstore.NewInstance(tx),
	}
}

type impl struct {
	db            *gorm.DB
	options       Options
	store         dailylogstore.Provider
	changeStore   dailylogchangestore.Provider
	employeeStore employeestore.Provider
	projectStore  projectstore.Provider
}

// preparedEntry - запись, прошедшая проверку формата
type preparedEntry struct {
	num         int
	id          string
	employeeID  string
	projectID   string
	logDate     time.Time
	interval    timecalc.Interval
	start       string
	end         string
	description string
}

func partitionKey(employeeID string, logDate time.Time) string {
	return fmt.Sprintf("daily-log:%s:%s", employeeID, timecalc.FormatDate(logDate))
}

// partitionKeys - блокируемые разделы (сотрудник, дата) пакета. Ночная смена задевает соседние дни,
// поэтому при allowOvernight блокируются и они
func partitionKeys(prepared []preparedEntry, allowOvernight bool) []string {
	keys := make([]string, 0, len(prepared))
	for _, item := range prepared {
		keys = append(keys, partitionKey(item.employeeID, item.logDate))
		if allowOvernight {
			keys = append(keys,
				partitionKey(item.employeeID, item.logDate.AddDate(0, 0, -1)),
				partitionKey(item.employeeID, item.logDate.AddDate(0, 0, 1)))
		}
	}
	return lock.UniqueSorted(keys)
}

// Save сохраняет пакет записей целиком или не сохраняет ничего
func (i impl) Save(ctx context.Context, entries []dailylogapimodels.DailyLogData) (ids []string, err error) {
	if len(entries) == 0 {
		return nil, apperror.New(apperror.MissingField, "не передано ни одной записи")
	}
	prepared := make([]preparedEntry, 0, len(entries))
	for n, entry := range entries {
		item, err := i.prepare(n+1, entry)
		if err != nil {
			return nil, err
		}
		prepared = append(prepared, item)
	}
	keys := partitionKeys(prepared, i.options.AllowOvernight)

	ok, err := lock.WithKeys(ctx, keys, i.options.LockWait, func() error {
		return i.db.Transaction(func(tx *gorm.DB) error {
			txStore := dailylogstore.NewInstance(tx)
			if err := txStore.LockPartition(keys); err != nil {
				return apperror.FromStorage(err, "ошибка блокировки записей сотрудника")
			}
			saver := i.saverWithTx(tx)
			ids = make([]string, 0, len(prepared))
			for _, item := range prepared {
				id, err := saver.save(item)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.New(apperror.Busy, "записи сотрудника сейчас изменяются, повторите попытку")
	}
	return ids, nil
}

func (i impl) prepare(num int, entry dailylogapimodels.DailyLogData) (preparedEntry, error) {
	if err := entry.Validate(); err != nil {
		return preparedEntry{}, entryError(num, err)
	}
	description := strings.TrimSpace(entry.TaskDescription)
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return preparedEntry{}, entryError(num, apperror.Newf(apperror.InvalidData,
			"описание задачи длиннее %d символов", maxDescriptionLen))
	}
	start, err := timecalc.ParseTimeOfDay(strings.TrimSpace(entry.StartTime))
	if err != nil {
		return preparedEntry{}, entryError(num, apperror.Wrap(apperror.InvalidTimeFormat, "некорректное время начала, ожидается ЧЧ:ММ", err))
	}
	end, err := timecalc.ParseTimeOfDay(strings.TrimSpace(entry.EndTime))
	if err != nil {
		return preparedEntry{}, entryError(num, apperror.Wrap(apperror.InvalidTimeFormat, "некорректное время окончания, ожидается ЧЧ:ММ", err))
	}
	logDate, err := timecalc.ParseDate(strings.TrimSpace(entry.LogDate))
	if err != nil {
		return preparedEntry{}, entryError(num, apperror.Wrap(apperror.InvalidDate, "некорректная дата, ожидается ГГГГ-ММ-ДД", err))
	}
	interval, err := timecalc.Span(start, end, i.options.AllowOvernight)
	if err != nil {
		return preparedEntry{}, entryError(num, apperror.Wrap(apperror.NonPositiveDuration, "время окончания должно быть позже времени начала", err))
	}
	return preparedEntry{
		num:         num,
		id:          entry.GetID(),
		employeeID:  entry.EmployeeID,
		projectID:   entry.ProjectID,
		logDate:     logDate,
		interval:    interval,
		start:       start.String(),
		end:         end.String(),
		description: description,
	}, nil
}

// saver выполняет запись внутри транзакции, все обращения к БД только через нее
type saver struct {
	options       Options
	now           time.Time
	store         dailylogstore.Provider
	changeStore   dailylogchangestore.Provider
	employeeStore employeestore.Provider
	projectStore  projectstore.Provider
	assignment    assignmenthandler.Provider
}

func (i impl) saverWithTx(tx *gorm.DB) saver {
	return saver{
		options:       i.options,
		now:           i.options.Now(),
		store:         dailylogstore.NewInstance(tx),
		changeStore:   dailylogchangestore.NewInstance(tx),
		employeeStore: employeestore.NewInstance(tx),
		projectStore:  projectstore.NewInstance(tx),
		assignment:    assignmenthandler.NewHandlerWithTx(tx),
	}
}

func (s saver) save(item preparedEntry) (string, error) {
	logger := log.
		WithField("employee_id", item.employeeID).
		WithField("log_date", timecalc.FormatDate(item.logDate))

	employee, err := s.employeeStore.GetByID(item.employeeID)
	if err != nil {
		return "", apperror.FromStorage(err, "ошибка получения сотрудника")
	}
	if employee == nil {
		return "", entryError(item.num, apperror.Newf(apperror.EmployeeNotFound, "сотрудник %s не найден", item.employeeID))
	}
	project, err := s.projectStore.GetByID(item.projectID)
	if err != nil {
		return "", apperror.FromStorage(err, "ошибка получения проекта")
	}
	if project == nil {
		return "", entryError(item.num, apperror.Newf(apperror.ProjectNotFound, "проект %s не найден", item.projectID))
	}

	if err = s.checkOverlap(item); err != nil {
		return "", err
	}

	var existing *dbmodels.DailyLog
	if item.id != "" {
		existing, err = s.store.GetByID(item.id)
		if err != nil {
			return "", apperror.FromStorage(err, "ошибка получения записи о работе")
		}
		if existing == nil || existing.EmployeeID != item.employeeID {
			return "", entryError(item.num, apperror.Newf(apperror.LogNotFound, "запись %s не найдена у сотрудника", item.id))
		}
	}

	reviewerID, err := s.assignment.ResolveReviewer(item.employeeID)
	if err != nil {
		return "", err
	}
	if existing != nil {
		err = s.update(*existing, item, reviewerID)
		if err != nil {
			return "", err
		}
		logger.WithField("rec_id", existing.ID).Info("запись о работе обновлена")
		return existing.ID, nil
	}
	id, err := s.create(item, reviewerID)
	if err != nil {
		return "", err
	}
	logger.WithField("rec_id", id).Info("запись о работе создана")
	return id, nil
}

// checkOverlap сверяет интервал с записями того же дня. С ночными сменами дополнительно
// проверяются соседние дни: хвост записи после полуночи и хвосты вчерашних ночных записей
func (s saver) checkOverlap(item preparedEntry) error {
	dayOffsets := []int{0}
	if s.options.AllowOvernight {
		dayOffsets = []int{-1, 0, 1}
	}
	for _, dayOffset := range dayOffsets {
		logDate := item.logDate.AddDate(0, 0, dayOffset)
		others, err := s.store.ListByEmployeeDate(item.employeeID, logDate, item.id)
		if err != nil {
			return apperror.FromStorage(err, "ошибка получения записей за день")
		}
		for _, other := range others {
			otherInterval, ok := timecalc.SpanOf(other.StartTime, other.EndTime)
			if !ok {
				log.WithField("rec_id", other.ID).Warn("у записи о работе некорректное время, пропускаем при проверке пересечений")
				continue
			}
			if item.interval.Overlaps(otherInterval.ShiftDays(dayOffset)) {
				return entryError(item.num, apperror.Newf(apperror.OverlappingInterval,
					"интервал %s-%s пересекается с записью %s %s-%s", item.start, item.end,
					timecalc.FormatDate(other.LogDate), other.StartTime, other.EndTime))
			}
		}
	}
	return nil
}

func (s saver) create(item preparedEntry, reviewerID *string) (string, error) {
	projectID := item.projectID
	rec := dbmodels.DailyLog{
		EmployeeID:      item.employeeID,
		ProjectID:       &projectID,
		LogDate:         item.logDate,
		StartTime:       item.start,
		EndTime:         item.end,
		TotalHours:      item.interval.Hours(),
		TaskDescription: item.description,
		ReviewerID:      reviewerID,
	}
	id, err := s.store.Create(rec)
	if err != nil {
		return "", apperror.FromStorage(err, "ошибка сохранения записи о работе")
	}
	rec.ID = id
	if err = s.appendChange(rec); err != nil {
		return "", err
	}
	return id, nil
}

func (s saver) update(existing dbmodels.DailyLog, item preparedEntry, reviewerID *string) error {
	projectID := item.projectID
	updMap := map[string]interface{}{
		"project_id":       &projectID,
		"log_date":         item.logDate,
		"start_time":       item.start,
		"end_time":         item.end,
		"total_hours":      item.interval.Hours(),
		"task_description": item.description,
		"reviewer_id":      reviewerID,
	}
	result := existing
	result.ProjectID = &projectID
	result.TaskDescription = item.description
	result.ReviewerID = reviewerID
	if existing.GetStatus() == models.ReviewRejected && s.options.ResetReviewOnResubmit {
		updMap["status_review"] = nil
		updMap["rejection_reason"] = nil
		result.StatusReview = nil
		result.RejectionReason = nil
	}
	if err := s.store.Update(existing.ID, updMap); err != nil {
		return apperror.FromStorage(err, "ошибка обновления записи о работе")
	}
	if existing.TaskDescription == item.description {
		return nil
	}
	return s.appendChange(result)
}

// appendChange фиксирует описание и состояние проверки на момент изменения
func (s saver) appendChange(rec dbmodels.DailyLog) error {
	change := dbmodels.DailyLogChange{
		DailyLogID:      rec.ID,
		ProjectID:       rec.ProjectID,
		ChangedAt:       s.now,
		NewDescription:  rec.TaskDescription,
		StatusReview:    rec.StatusReview,
		ReviewerID:      rec.ReviewerID,
		RejectionReason: rec.RejectionReason,
	}
	_, err := s.changeStore.Create(change)
	if err != nil {
		return apperror.FromStorage(err, "ошибка сохранения истории изменений")
	}
	return nil
}

func (i impl) Filter(filter dailylogapimodels.DailyLogFilter) ([]dailylogapimodels.DailyLogView, error) {
	parsed, err := filter.Parse()
	if err != nil {
		return nil, err
	}
	list, err := i.store.List(parsed)
	if err != nil {
		return nil, apperror.FromStorage(err, "ошибка получения записей о работе")
	}
	result := make([]dailylogapimodels.DailyLogView, 0, len(list))
	for _, rec := range list {
		result = append(result, dailylogapimodels.DailyLogConvert(rec))
	}
	return result, nil
}

// Today - записи сотрудника за текущий день (по часовому поясу организации) с историей
func (i impl) Today(employeeID string) ([]dailylogapimodels.DailyLogWithChanges, error) {
	if err := i.checkEmployee(employeeID); err != nil {
		return nil, err
	}
	today := timecalc.Today(i.options.Now(), i.options.Location)
	list, err := i.store.List(dailylogapimodels.ParsedFilter{
		EmployeeID: employeeID,
		StartDate:  &today,
		EndDate:    &today,
	})
	if err != nil {
		return nil, apperror.FromStorage(err, "ошибка получения записей о работе")
	}
	logIDs := make([]string, 0, len(list))
	for _, rec := range list {
		logIDs = append(logIDs, rec.ID)
	}
	changes, err := i.changeStore.ListByLogs(logIDs)
	if err != nil {
		return nil, apperror.FromStorage(err, "ошибка получения истории изменений")
	}
	changesByLog := map[string][]dailylogapimodels.DailyLogChangeView{}
	for _, change := range changes {
		changesByLog[change.DailyLogID] = append(changesByLog[change.DailyLogID], dailylogapimodels.DailyLogChangeConvert(change))
	}
	result := make([]dailylogapimodels.DailyLogWithChanges, 0, len(list))
	for _, rec := range list {
		item := dailylogapimodels.DailyLogWithChanges{
			DailyLogView: dailylogapimodels.DailyLogConvert(rec),
			Changes:      changesByLog[rec.ID],
		}
		if item.Changes == nil {
			item.Changes = []dailylogapimodels.DailyLogChangeView{}
		}
		result = append(result, item)
	}
	return result, nil
}

// Recent - записи сотрудника за последние days дней включая сегодня, свежие первыми
func (i impl) Recent(employeeID string, days int) ([]dailylogapimodels.DailyLogView, error) {
	if days <= 0 {
		return nil, apperror.Newf(apperror.InvalidData, "некорректное количество дней: %d", days)
	}
	if err := i.checkEmployee(employeeID); err != nil {
		return nil, err
	}
	today := timecalc.Today(i.options.Now(), i.options.Location)
	from := today.AddDate(0, 0, -(days - 1))
	list, err := i.store.List(dailylogapimodels.ParsedFilter{
		EmployeeID: employeeID,
		StartDate:  &from,
		EndDate:    &today,
	})
	if err != nil {
		return nil, apperror.FromStorage(err, "ошибка получения записей о работе")
	}
	result := make([]dailylogapimodels.DailyLogView, 0, len(list))
	for _, rec := range list {
		result = append(result, dailylogapimodels.DailyLogConvert(rec))
	}
	return result, nil
}

func (i impl) checkEmployee(employeeID string) error {
	if employeeID == "" {
		return apperror.New(apperror.MissingField, "не указан сотрудник")
	}
	employee, err := i.employeeStore.GetByID(employeeID)
	if err != nil {
		return apperror.FromStorage(err, "ошибка получения сотрудника")
	}
	if employee == nil {
		return apperror.Newf(apperror.EmployeeNotFound, "сотрудник %s не найден", employeeID)
	}
	return nil
}

// Changes - история изменений записи, новые первыми
func (i impl) Changes(logID string) ([]dailylogapimodels.DailyLogChangeView, error) {
	if _, err := i.getRec(logID); err != nil {
		return nil, err
	}
	list, err := i.changeStore.ListByLog(logID)
	if err != nil {
		return nil, apperror.FromStorage(err, "ошибка получения истории изменений")
	}
	result := make([]dailylogapimodels.DailyLogChangeView, 0, len(list))
	for _, rec := range list {
		result = append(result, dailylogapimodels.DailyLogChangeConvert(rec))
	}
	return result, nil
}

func (i impl) Get(logID string) (dailylogapimodels.DailyLogWithChanges, error) {
	rec, err := i.getRec(logID)
	if err != nil {
		return dailylogapimodels.DailyLogWithChanges{}, err
	}
	changes, err := i.Changes(logID)
	if err != nil {
		return dailylogapimodels.DailyLogWithChanges{}, err
	}
	return dailylogapimodels.DailyLogWithChanges{
		DailyLogView: dailylogapimodels.DailyLogConvert(*rec),
		Changes:      changes,
	}, nil
}

func (i impl) getRec(logID string) (*dbmodels.DailyLog, error) {
	if logID == "" {
		return nil, apperror.New(apperror.MissingField, "не указана запись о работе")
	}
	rec, err := i.store.GetByID(logID)
	if err != nil {
		return nil, apperror.FromStorage(err, "ошибка получения записи о работе")
	}
	if rec == nil {
		return nil, apperror.Newf(apperror.LogNotFound, "запись %s не найдена", logID)
	}
	return rec, nil
}

// entryError добавляет к сообщению номер записи в пакете, код ошибки сохраняется
func entryError(num int, err error) error {
	appErr, ok := apperror.As(err)
	if !ok {
		return err
	}
	return &apperror.Error{
		Kind:    appErr.Kind,
		Code:    appErr.Code,
		Message: fmt.Sprintf("запись %d: %s", num, appErr.Message),
		Err:     appErr.Err,
	}
}
