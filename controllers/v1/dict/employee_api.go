package dict

import (
	"github.com/gofiber/fiber/v2"
	"timesheet-backend/controllers"
	employeeprovider "timesheet-backend/lib/dicts/employee"
	apimodels "timesheet-backend/models/api"
	dictapimodels "timesheet-backend/models/api/dict"
)

type employeeDictApiController struct {
	controllers.BaseAPIController
}

func InitEmployeeDictApiRouters(app *fiber.App) {
	controller := employeeDictApiController{}
	app.Route("employee", func(router fiber.Router) {
		router.Get("list", controller.employeeList)
		router.Get("info", controller.employeeInfo)
		router.Get("dashboard", controller.employeeDashboard)
		router.Post("", controller.employeeCreate)
		router.Put(":id/reports-to", controller.employeeReportsTo)
		router.Get(":id/managers", controller.employeeManagers)
		router.Put(":id", controller.employeeUpdate)
		router.Get(":id", controller.employeeGet)
		router.Delete(":id", controller.employeeDelete)
	})
}

// @Summary Создание
// @Tags Справочник. Сотрудники
// @Description Создание
// @Param	body body	 dictapimodels.EmployeeData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/employee [post]
func (c *employeeDictApiController) employeeCreate(ctx *fiber.Ctx) error {
	var payload dictapimodels.EmployeeData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	id, err := employeeprovider.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания сотрудника")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Обновление
// @Tags Справочник. Сотрудники
// @Description Обновление
// @Param	body body	 dictapimodels.EmployeeData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/employee/{id} [put]
func (c *employeeDictApiController) employeeUpdate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload dictapimodels.EmployeeData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	err = employeeprovider.Instance.Update(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления сотрудника")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Смена руководителя
// @Tags Справочник. Сотрудники
// @Description Смена руководителя, пустое значение снимает руководителя
// @Param	body body	 dictapimodels.ReportsToData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/employee/{id}/reports-to [put]
func (c *employeeDictApiController) employeeReportsTo(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload dictapimodels.ReportsToData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	err = employeeprovider.Instance.UpdateReportsTo(id, payload.ReportsToID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка смены руководителя")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Получение по ИД
// @Tags Справочник. Сотрудники
// @Description Получение по ИД
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=dictapimodels.EmployeeView}
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/employee/{id} [get]
func (c *employeeDictApiController) employeeGet(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := employeeprovider.Instance.Get(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения сотрудника")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Цепочка руководителей
// @Tags Справочник. Сотрудники
// @Description Руководители от непосредственного до верхнего уровня
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.ManagerView}
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/employee/{id}/managers [get]
func (c *employeeDictApiController) employeeManagers(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	list, err := employeeprovider.Instance.ManagerChain(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения руководителей сотрудника")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Информация о пользователе
// @Tags Справочник. Сотрудники
// @Description Сотрудник по email вместе с руководителями и проектами
// @Param	email	query	string	true	"email"
// @Success 200 {object} apimodels.Response{data=dictapimodels.EmployeeInfo}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/employee/info [get]
func (c *employeeDictApiController) employeeInfo(ctx *fiber.Ctx) error {
	email := ctx.Query("email")
	if email == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указан email"))
	}

	resp, err := employeeprovider.Instance.Info(email)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения информации о пользователе")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Удаление
// @Tags Справочник. Сотрудники
// @Description Удаление вместе с записями о работе и назначениями
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/employee/{id} [delete]
func (c *employeeDictApiController) employeeDelete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	err = employeeprovider.Instance.Delete(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления сотрудника")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Список
// @Tags Справочник. Сотрудники
// @Description Список с фильтром и постраничным выводом
// @Param	name	query	string	false	"часть имени"
// @Param	search	query	string	false	"часть имени или email"
// @Param	department_id	query	string	false	"подразделение"
// @Param	designation_id	query	string	false	"должность"
// @Param	project_id	query	string	false	"есть записи о работе по проекту"
// @Param	page	query	int	false	"страница"
// @Param	limit	query	int	false	"записей на странице"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]dictapimodels.EmployeeView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/employee/list [get]
func (c *employeeDictApiController) employeeList(ctx *fiber.Ctx) error {
	var payload dictapimodels.EmployeeFilter
	if err := c.QueryParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	list, rowCount, err := employeeprovider.Instance.List(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка сотрудников")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Данные для панели сотрудников
// @Tags Справочник. Сотрудники
// @Description Сотрудники по фильтру с цепочками руководителей, а также подразделения, должности и проекты
// @Param	search	query	string	false	"часть имени или email"
// @Param	department_id	query	string	false	"подразделение"
// @Param	designation_id	query	string	false	"должность"
// @Param	project_id	query	string	false	"есть записи о работе по проекту"
// @Success 200 {object} apimodels.Response{data=dictapimodels.DashboardView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/employee/dashboard [get]
func (c *employeeDictApiController) employeeDashboard(ctx *fiber.Ctx) error {
	var payload dictapimodels.EmployeeFilter
	if err := c.QueryParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := employeeprovider.Instance.Dashboard(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения данных панели сотрудников")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
