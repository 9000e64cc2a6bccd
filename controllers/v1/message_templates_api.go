package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"hr-recruitment-backend/controllers"
	messagetemplate "hr-recruitment-backend/lib/message-template"
	"hr-recruitment-backend/middleware"
	apimodels "hr-recruitment-backend/models/api"
	msgtemplateapimodels "hr-recruitment-backend/models/api/message-template"
)

type msgTemplateApiController struct {
	controllers.BaseAPIController
}

func InitMsgTemplateApiRouters(app *fiber.App) {
	controller := msgTemplateApiController{}
	app.Route("msg-templates", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Get("list", controller.list)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Post("render", controller.render)
		})
	})
}

// @Summary Создание шаблона
// @Tags Шаблоны сообщений
// @Description Создание шаблона письма кандидату
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		msgtemplateapimodels.TemplateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/msg-templates [post]
func (c *msgTemplateApiController) create(ctx *fiber.Ctx) error {
	var payload msgtemplateapimodels.TemplateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	id, err := messagetemplate.Instance.Create(spaceID, payload.Name, payload.Subject, payload.Message)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания шаблона")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Список шаблонов
// @Tags Шаблоны сообщений
// @Description Список шаблонов пространства
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]dbmodels.MessageTemplate}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/msg-templates/list [get]
func (c *msgTemplateApiController) list(ctx *fiber.Ctx) error {
	spaceID := middleware.GetUserSpace(ctx)
	resp, err := messagetemplate.Instance.List(spaceID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка шаблонов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Получение шаблона
// @Tags Шаблоны сообщений
// @Description Получение шаблона по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=dbmodels.MessageTemplate}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/msg-templates/{id} [get]
func (c *msgTemplateApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	spaceID := middleware.GetUserSpace(ctx)
	resp, err := messagetemplate.Instance.GetByID(spaceID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения шаблона")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Подстановка значений в шаблон
// @Tags Шаблоны сообщений
// @Description Текст шаблона с подставленными значениями
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body				body		msgtemplateapimodels.RenderData	true	"request body"
// @Success 200 {object} apimodels.Response{data=msgtemplateapimodels.RenderView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/msg-templates/{id}/render [post]
func (c *msgTemplateApiController) render(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload msgtemplateapimodels.RenderData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	spaceID := middleware.GetUserSpace(ctx)
	subject, message, err := messagetemplate.Instance.Render(spaceID, id, payload.Values)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка подстановки значений в шаблон")
	}
	resp := msgtemplateapimodels.RenderView{
		Subject: subject,
		Message: message,
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
