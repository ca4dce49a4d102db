package dict

import (
	"github.com/gofiber/fiber/v2"
	"timesheet-backend/controllers"
	projectprovider "timesheet-backend/lib/dicts/project"
	apimodels "timesheet-backend/models/api"
	dictapimodels "timesheet-backend/models/api/dict"
)

type projectDictApiController struct {
	controllers.BaseAPIController
}

func InitProjectDictApiRouters(app *fiber.App) {
	controller := projectDictApiController{}
	app.Route("project", func(router fiber.Router) {
		router.Get("list", controller.projectList)
		router.Post("", controller.projectCreate)
		router.Put(":id", controller.projectUpdate)
		router.Get(":id", controller.projectGet)
		router.Delete(":id", controller.projectDelete)
	})
}

// @Summary Создание
// @Tags Справочник. Проекты
// @Description Создание
// @Param	body body	 dictapimodels.ProjectData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/project [post]
func (c *projectDictApiController) projectCreate(ctx *fiber.Ctx) error {
	var payload dictapimodels.ProjectData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	id, err := projectprovider.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания проекта")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Обновление
// @Tags Справочник. Проекты
// @Description Обновление
// @Param	body body	 dictapimodels.ProjectData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/project/{id} [put]
func (c *projectDictApiController) projectUpdate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload dictapimodels.ProjectData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}

	err = projectprovider.Instance.Update(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления проекта")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Получение по ИД
// @Tags Справочник. Проекты
// @Description Получение по ИД
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=dictapimodels.ProjectView}
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/project/{id} [get]
func (c *projectDictApiController) projectGet(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := projectprovider.Instance.Get(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения проекта")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Удаление
// @Tags Справочник. Проекты
// @Description Удаление. Записи о работе и история сохраняются без проекта, назначения удаляются
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/project/{id} [delete]
func (c *projectDictApiController) projectDelete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	err = projectprovider.Instance.Delete(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления проекта")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Список
// @Tags Справочник. Проекты
// @Description Список, по названию
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.ProjectView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/project/list [get]
func (c *projectDictApiController) projectList(ctx *fiber.Ctx) error {
	list, err := projectprovider.Instance.List()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка проектов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}
