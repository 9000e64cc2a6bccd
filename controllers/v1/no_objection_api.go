package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"hr-recruitment-backend/controllers"
	noobjectionhandler "hr-recruitment-backend/lib/no-objection"
	"hr-recruitment-backend/middleware"
	apimodels "hr-recruitment-backend/models/api"
	noobjectionapimodels "hr-recruitment-backend/models/api/noobjection"
)

type noObjectionApiController struct {
	controllers.BaseAPIController
}

func InitNoObjectionApiRouters(app *fiber.App) {
	controller := noObjectionApiController{}
	app.Route("no-objection", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Post("list", controller.list)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("complete", controller.complete)
			idRoute.Put("verify", controller.verify)
			idRoute.Get("memorandum", controller.memorandum)
		})
	})
}

// @Summary Создание согласования
// @Tags Согласование
// @Description Создание согласования по пулу вакансии или одному отклику
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 noobjectionapimodels.NoObjectionData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/no-objection [post]
func (c *noObjectionApiController) create(ctx *fiber.Ctx) error {
	var payload noobjectionapimodels.NoObjectionData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	id, err := noobjectionhandler.Instance.Create(spaceID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания согласования")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Завершение согласования
// @Tags Согласование
// @Description Передача согласования на подпись с правками шаблона
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body body	 noobjectionapimodels.TemplateData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/no-objection/{id}/complete [put]
func (c *noObjectionApiController) complete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload noobjectionapimodels.TemplateData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	err = noobjectionhandler.Instance.Complete(spaceID, id, payload)
	if err != nil {
		return c.sendDecisionError(ctx, err, "Ошибка завершения согласования")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Решение по согласованию
// @Tags Согласование
// @Description Одобрение или отклонение согласования ответственным
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body body	 noobjectionapimodels.VerifyData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/no-objection/{id}/verify [put]
func (c *noObjectionApiController) verify(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload noobjectionapimodels.VerifyData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	err = noobjectionhandler.Instance.Verify(spaceID, userID, id, payload)
	if err != nil {
		return c.sendDecisionError(ctx, err, "Ошибка решения по согласованию")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Служебная записка
// @Tags Согласование
// @Description Текст служебной записки согласования со статистикой вакансии
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/no-objection/{id}/memorandum [get]
func (c *noObjectionApiController) memorandum(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	spaceID := middleware.GetUserSpace(ctx)
	text, err := noobjectionhandler.Instance.Memorandum(spaceID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка формирования служебной записки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(text))
}

// @Summary Получение согласования
// @Tags Согласование
// @Description Получение согласования по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=noobjectionapimodels.NoObjectionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/no-objection/{id} [get]
func (c *noObjectionApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	spaceID := middleware.GetUserSpace(ctx)
	resp, err := noobjectionhandler.Instance.GetByID(spaceID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения согласования")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Список согласований
// @Tags Согласование
// @Description Список согласований с фильтром по вакансии и статусам
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 noobjectionapimodels.ListFilter	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]noobjectionapimodels.NoObjectionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/no-objection/list [post]
func (c *noObjectionApiController) list(ctx *fiber.Ctx) error {
	var filter noobjectionapimodels.ListFilter
	if err := c.BodyParser(ctx, &filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	spaceID := middleware.GetUserSpace(ctx)
	resp, err := noobjectionhandler.Instance.List(spaceID, filter.JobID, filter.Statuses)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка согласований")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

func (c *noObjectionApiController) sendDecisionError(ctx *fiber.Ctx, err error, message string) error {
	switch {
	case errors.Is(err, noobjectionhandler.ErrAlreadyResolved):
		return ctx.Status(fiber.StatusConflict).JSON(apimodels.NewError(err.Error()))
	case errors.Is(err, noobjectionhandler.ErrNotResponsible):
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError(err.Error()))
	case errors.Is(err, noobjectionhandler.ErrIncompletePreconditions),
		errors.Is(err, noobjectionhandler.ErrAlreadyCompleted),
		errors.Is(err, noobjectionhandler.ErrNotCompleted):
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	return c.SendError(ctx, c.GetLogger(ctx), err, message)
}
