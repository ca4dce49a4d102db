package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"timesheet-backend/controllers"
	assignmenthandler "timesheet-backend/lib/assignment"
	apimodels "timesheet-backend/models/api"
	assignmentapimodels "timesheet-backend/models/api/assignment"
)

type assignmentApiController struct {
	controllers.BaseAPIController
}

func InitAssignmentApiRouters(app *fiber.App) {
	controller := assignmentApiController{}
	app.Route("manager-project", func(router fiber.Router) {
		router.Post("assign", controller.assign)
		router.Delete("remove", controller.remove)
		router.Post("attach", controller.attach)
		router.Get(":manager_id", controller.listByManager)
	})
	app.Route("employee-project", func(router fiber.Router) {
		router.Post("", controller.addMember)
		router.Delete("", controller.removeMember)
		router.Get(":employee_id/projects", controller.projectsForUser)
	})
	app.Get("projects/roster", controller.roster)
}

// @Summary Назначение сотрудника руководителю на проекте
// @Tags Назначения
// @Description Руководитель должен быть закреплен за проектом
// @Param	body body	 assignmentapimodels.AssignRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=assignmentapimodels.AssignmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/manager-project/assign [post]
func (c *assignmentApiController) assign(ctx *fiber.Ctx) error {
	var payload assignmentapimodels.AssignRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := assignmenthandler.Instance.Assign(ctx.UserContext(), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка назначения сотрудника")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Удаление назначения
// @Tags Назначения
// @Description Удаляет назначение и участие сотрудника в проекте
// @Param	body body	 assignmentapimodels.AssignRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/manager-project/remove [delete]
func (c *assignmentApiController) remove(ctx *fiber.Ctx) error {
	var payload assignmentapimodels.AssignRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err := assignmenthandler.Instance.Unassign(ctx.UserContext(), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления назначения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Закрепление руководителя за проектом
// @Tags Назначения
// @Param	body body	 assignmentapimodels.AttachManagerRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=assignmentapimodels.AssignmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/manager-project/attach [post]
func (c *assignmentApiController) attach(ctx *fiber.Ctx) error {
	var payload assignmentapimodels.AttachManagerRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := assignmenthandler.Instance.AttachManager(ctx.UserContext(), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка закрепления руководителя за проектом")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Назначения руководителя
// @Tags Назначения
// @Param   manager_id		path    string	true	"руководитель"
// @Success 200 {object} apimodels.Response{data=[]assignmentapimodels.AssignmentView}
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/manager-project/{manager_id} [get]
func (c *assignmentApiController) listByManager(ctx *fiber.Ctx) error {
	managerID, err := c.GetParam(ctx, "manager_id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := assignmenthandler.Instance.ListByManager(managerID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения назначений руководителя")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Добавление сотрудника в проект
// @Tags Назначения
// @Param	body body	 assignmentapimodels.MemberRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employee-project [post]
func (c *assignmentApiController) addMember(ctx *fiber.Ctx) error {
	var payload assignmentapimodels.MemberRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := assignmenthandler.Instance.AddMember(ctx.UserContext(), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка добавления сотрудника в проект")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Исключение сотрудника из проекта
// @Tags Назначения
// @Param	body body	 assignmentapimodels.MemberRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employee-project [delete]
func (c *assignmentApiController) removeMember(ctx *fiber.Ctx) error {
	var payload assignmentapimodels.MemberRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err := assignmenthandler.Instance.RemoveMember(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка исключения сотрудника из проекта")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Проекты пользователя
// @Tags Назначения
// @Description Проекты, где пользователь руководитель, подчиненный или участник
// @Param   employee_id		path    string	true	"сотрудник"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.ProjectView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employee-project/{employee_id}/projects [get]
func (c *assignmentApiController) projectsForUser(ctx *fiber.Ctx) error {
	employeeID, err := c.GetParam(ctx, "employee_id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := assignmenthandler.Instance.ProjectsForUser(employeeID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения проектов пользователя")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Состав проектов
// @Tags Назначения
// @Description Проекты с руководителями и сотрудниками
// @Success 200 {object} apimodels.Response{data=[]assignmentapimodels.RosterItem}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/projects/roster [get]
func (c *assignmentApiController) roster(ctx *fiber.Ctx) error {
	list, err := assignmenthandler.Instance.Roster()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения состава проектов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}
