package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	apperror "timesheet-backend/lib/utils/app-error"
	apimodels "timesheet-backend/models/api"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("ошибка распознавания запроса")
		return errors.New("не удалось получить данные из запроса")
	}
	return nil
}

func (c *BaseAPIController) QueryParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.QueryParser(out); err != nil {
		log.WithError(err).Error("ошибка распознавания параметров запроса")
		return errors.New("не удалось получить параметры запроса")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	return c.GetParam(ctx, "id")
}

func (c *BaseAPIController) GetParam(ctx *fiber.Ctx, name string) (string, error) {
	value := ctx.Params(name)
	if value == "" {
		return "", errors.Errorf("не указан параметр %s", name)
	}
	return value, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	return log.
		WithField("method", ctx.Method()).
		WithField("path", ctx.Path()).
		WithField("request_id", ctx.GetRespHeader(fiber.HeaderXRequestID))
}

// SendError отдает ошибку клиенту. Для ошибок приложения статус берется из вида ошибки,
// остальные считаются внутренними и клиенту уходит только message
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, message string) error {
	appErr, ok := apperror.As(err)
	if !ok {
		logger.WithError(err).Error(message)
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(message))
	}
	status := StatusOf(appErr.Kind)
	if appErr.Kind == apperror.KindInternal {
		logger.WithError(err).Error(message)
		return ctx.Status(status).JSON(apimodels.NewCodeError(string(appErr.Code), message))
	}
	logger.WithError(err).Warn(message)
	return ctx.Status(status).JSON(apimodels.NewCodeError(string(appErr.Code), appErr.Message))
}

// SendBadRequest - ошибка разбора или проверки запроса
func (c *BaseAPIController) SendBadRequest(ctx *fiber.Ctx, err error) error {
	if appErr, ok := apperror.As(err); ok {
		return ctx.Status(StatusOf(appErr.Kind)).JSON(apimodels.NewCodeError(string(appErr.Code), appErr.Message))
	}
	return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
}

func StatusOf(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation:
		return fiber.StatusBadRequest
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindConflict:
		return fiber.StatusConflict
	case apperror.KindForbidden:
		return fiber.StatusForbidden
	case apperror.KindUnavailable:
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}
