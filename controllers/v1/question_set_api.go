package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"hr-recruitment-backend/controllers"
	questionset "hr-recruitment-backend/lib/question-set"
	"hr-recruitment-backend/middleware"
	apimodels "hr-recruitment-backend/models/api"
	dbmodels "hr-recruitment-backend/models/db"
)

type questionSetApiController struct {
	controllers.BaseAPIController
}

func InitQuestionSetApiRouters(app *fiber.App) {
	controller := questionSetApiController{}
	app.Route("question-set", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Get("list", controller.list)
		router.Get(":id", controller.get)
	})
}

// @Summary Создание набора вопросов
// @Tags Наборы вопросов
// @Description Создание набора вопросов этапа
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		dbmodels.QuestionSet	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/question-set [post]
func (c *questionSetApiController) create(ctx *fiber.Ctx) error {
	var payload dbmodels.QuestionSet
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	spaceID := middleware.GetUserSpace(ctx)
	id, err := questionset.Instance.Create(spaceID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания набора вопросов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Список наборов вопросов
// @Tags Наборы вопросов
// @Description Список наборов вопросов пространства
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]dbmodels.QuestionSet}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/question-set/list [get]
func (c *questionSetApiController) list(ctx *fiber.Ctx) error {
	spaceID := middleware.GetUserSpace(ctx)
	resp, err := questionset.Instance.List(spaceID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка наборов вопросов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Получение набора вопросов
// @Tags Наборы вопросов
// @Description Получение набора вопросов по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=dbmodels.QuestionSet}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/question-set/{id} [get]
func (c *questionSetApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	spaceID := middleware.GetUserSpace(ctx)
	resp, err := questionset.Instance.GetByID(spaceID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения набора вопросов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
