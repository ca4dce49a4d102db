package apiv1

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"timesheet-backend/controllers"
	"timesheet-backend/lib/analytics"
	apimodels "timesheet-backend/models/api"
	dailylogapimodels "timesheet-backend/models/api/dailylog"
)

type analyticsApiController struct {
	controllers.BaseAPIController
}

func InitAnalyticsApiRouters(app *fiber.App) {
	controller := analyticsApiController{}
	app.Route("analytics", func(router fiber.Router) {
		router.Get("timesheet", controller.timesheet)
		router.Get("timesheet/xlsx", controller.timesheetXlsx)
		router.Get("timesheet/pdf", controller.timesheetPdf)
	})
}

// @Summary Итоги табеля
// @Tags Аналитика
// @Description Часы и статусы по записям, отобранным фильтром
// @Param	employee_id	query	string	false	"сотрудник"
// @Param	reviewer_id	query	string	false	"проверяющий"
// @Param	project_id	query	string	false	"проект или all"
// @Param	status_review	query	string	false	"статус"
// @Param	start_date	query	string	false	"ГГГГ-ММ-ДД"
// @Param	end_date	query	string	false	"ГГГГ-ММ-ДД"
// @Success 200 {object} apimodels.Response{data=analyticsapimodels.TimesheetSummary}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/analytics/timesheet [get]
func (c *analyticsApiController) timesheet(ctx *fiber.Ctx) error {
	payload, err := c.parseFilter(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}

	data, err := analytics.Instance.Timesheet(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения итогов табеля")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(data))
}

// @Summary Табель. Выгрузить в Excel
// @Tags Аналитика
// @Description Табель. Выгрузить в Excel
// @Param	employee_id	query	string	false	"сотрудник"
// @Param	project_id	query	string	false	"проект или all"
// @Param	status_review	query	string	false	"статус"
// @Param	start_date	query	string	false	"ГГГГ-ММ-ДД"
// @Param	end_date	query	string	false	"ГГГГ-ММ-ДД"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/analytics/timesheet/xlsx [get]
func (c *analyticsApiController) timesheetXlsx(ctx *fiber.Ctx) error {
	payload, err := c.parseFilter(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}

	data, err := analytics.Instance.TimesheetExportToXls(ctx.UserContext(), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки табеля в Excel")
	}
	fileName := fmt.Sprintf("timesheet-%v.xlsx", time.Now().Format("20060102-150405"))
	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.SendStream(data)
}

// @Summary Табель. Выгрузить в PDF
// @Tags Аналитика
// @Description Табель. Выгрузить в PDF
// @Param	employee_id	query	string	false	"сотрудник"
// @Param	project_id	query	string	false	"проект или all"
// @Param	status_review	query	string	false	"статус"
// @Param	start_date	query	string	false	"ГГГГ-ММ-ДД"
// @Param	end_date	query	string	false	"ГГГГ-ММ-ДД"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/analytics/timesheet/pdf [get]
func (c *analyticsApiController) timesheetPdf(ctx *fiber.Ctx) error {
	payload, err := c.parseFilter(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}

	data, err := analytics.Instance.TimesheetExportToPdf(ctx.UserContext(), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки табеля в PDF")
	}
	fileName := fmt.Sprintf("timesheet-%v.pdf", time.Now().Format("20060102-150405"))
	ctx.Set("Content-Type", "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.Send(data)
}

func (c *analyticsApiController) parseFilter(ctx *fiber.Ctx) (dailylogapimodels.DailyLogFilter, error) {
	var payload dailylogapimodels.DailyLogFilter
	if err := c.QueryParser(ctx, &payload); err != nil {
		return payload, err
	}
	return payload, payload.Validate()
}
