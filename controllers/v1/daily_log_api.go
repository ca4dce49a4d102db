package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"timesheet-backend/controllers"
	dailyloghandler "timesheet-backend/lib/daily-log"
	reviewhandler "timesheet-backend/lib/review"
	apimodels "timesheet-backend/models/api"
	dailylogapimodels "timesheet-backend/models/api/dailylog"
)

type dailyLogApiController struct {
	controllers.BaseAPIController
}

func InitDailyLogApiRouters(app *fiber.App) {
	controller := dailyLogApiController{}
	app.Route("daily-logs", func(router fiber.Router) {
		router.Post("save", controller.save)
		router.Get("filter", controller.filter)
		router.Get("today/:employee_id", controller.today)
		router.Get("latest-seven-days/:employee_id", controller.latestSevenDays)
		router.Post("review", controller.review)
		router.Get("by-reviewer", controller.byReviewer)
		router.Get(":id/changes", controller.changes)
		router.Get(":id", controller.get)
	})
}

// @Summary Сохранение записей о работе
// @Tags Записи о работе
// @Description Пакетное сохранение: записи без id создаются, с id - обновляются. Пакет сохраняется целиком или не сохраняется
// @Param	body body	 []dailylogapimodels.DailyLogData	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]string}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/daily-logs/save [post]
func (c *dailyLogApiController) save(ctx *fiber.Ctx) error {
	var payload []dailylogapimodels.DailyLogData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	ids, err := dailyloghandler.Instance.Save(ctx.UserContext(), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сохранения записей о работе")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(ids))
}

// @Summary Список записей о работе
// @Tags Записи о работе
// @Description Отбор по сотруднику, проверяющему, проекту, статусу (Pending/Approved/Rejected/all) и периоду
// @Param	employee_id	query	string	false	"сотрудник"
// @Param	reviewer_id	query	string	false	"проверяющий"
// @Param	project_id	query	string	false	"проект или all"
// @Param	status_review	query	string	false	"статус"
// @Param	start_date	query	string	false	"ГГГГ-ММ-ДД"
// @Param	end_date	query	string	false	"ГГГГ-ММ-ДД"
// @Success 200 {object} apimodels.Response{data=[]dailylogapimodels.DailyLogView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/daily-logs/filter [get]
func (c *dailyLogApiController) filter(ctx *fiber.Ctx) error {
	var payload dailylogapimodels.DailyLogFilter
	if err := c.QueryParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	list, err := dailyloghandler.Instance.Filter(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения записей о работе")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Записи сотрудника за сегодня
// @Tags Записи о работе
// @Description Записи за текущий день (часовой пояс организации) с историей изменений
// @Param   employee_id		path    string	true	"сотрудник"
// @Success 200 {object} apimodels.Response{data=[]dailylogapimodels.DailyLogWithChanges}
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/daily-logs/today/{employee_id} [get]
func (c *dailyLogApiController) today(ctx *fiber.Ctx) error {
	employeeID, err := c.GetParam(ctx, "employee_id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := dailyloghandler.Instance.Today(employeeID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения записей за сегодня")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Записи сотрудника за неделю
// @Tags Записи о работе
// @Description Записи за последние 7 дней включая сегодня (часовой пояс организации), свежие первыми
// @Param   employee_id		path    string	true	"сотрудник"
// @Success 200 {object} apimodels.Response{data=[]dailylogapimodels.DailyLogView}
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/daily-logs/latest-seven-days/{employee_id} [get]
func (c *dailyLogApiController) latestSevenDays(ctx *fiber.Ctx) error {
	employeeID, err := c.GetParam(ctx, "employee_id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := dailyloghandler.Instance.Recent(employeeID, 7)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения записей за неделю")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary История изменений записи
// @Tags Записи о работе
// @Description История изменений, новые первыми
// @Param   id		path    string	true	"rec ID"
// @Success 200 {object} apimodels.Response{data=[]dailylogapimodels.DailyLogChangeView}
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/daily-logs/{id}/changes [get]
func (c *dailyLogApiController) changes(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := dailyloghandler.Instance.Changes(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения истории изменений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Получение записи по ИД
// @Tags Записи о работе
// @Param   id		path    string	true	"rec ID"
// @Success 200 {object} apimodels.Response{data=dailylogapimodels.DailyLogWithChanges}
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/daily-logs/{id} [get]
func (c *dailyLogApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := dailyloghandler.Instance.Get(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения записи о работе")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Проверка записи
// @Tags Записи о работе
// @Description Подтверждение или отклонение записи назначенным проверяющим
// @Param	body body	 dailylogapimodels.ReviewRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=dailylogapimodels.DailyLogView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/daily-logs/review [post]
func (c *dailyLogApiController) review(ctx *fiber.Ctx) error {
	var payload dailylogapimodels.ReviewRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := reviewhandler.Instance.Review(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сохранения результата проверки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Записи проверяющего
// @Tags Записи о работе
// @Description Записи, назначенные проверяющему сейчас или ранее, и их проекты
// @Param	reviewer_id	query	string	false	"проверяющий"
// @Param	reviewer_email	query	string	false	"email проверяющего"
// @Success 200 {object} apimodels.Response{data=dailylogapimodels.ReviewerLogsView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/daily-logs/by-reviewer [get]
func (c *dailyLogApiController) byReviewer(ctx *fiber.Ctx) error {
	var payload dailylogapimodels.ReviewerLogsFilter
	if err := c.QueryParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := reviewhandler.Instance.LogsForReviewer(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения записей проверяющего")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
