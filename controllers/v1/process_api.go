package apiv1

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"hr-recruitment-backend/controllers"
	xlsexport "hr-recruitment-backend/lib/export/xls"
	recruitmentprocess "hr-recruitment-backend/lib/recruitment/process"
	"hr-recruitment-backend/lib/recruitment/stages"
	stagerecordhandler "hr-recruitment-backend/lib/stage-record"
	"hr-recruitment-backend/middleware"
	"hr-recruitment-backend/models"
	apimodels "hr-recruitment-backend/models/api"
	recruitmentapimodels "hr-recruitment-backend/models/api/recruitment"
)

type processApiController struct {
	controllers.BaseAPIController
}

func InitProcessApiRouters(app *fiber.App) {
	controller := processApiController{}
	app.Route("recruitment", func(router fiber.Router) {
		router.Route("job/:id/stage/:stage", func(stageRoute fiber.Router) {
			stageRoute.Put("forward", controller.forward)
			stageRoute.Get("list", controller.stageList)
			stageRoute.Get("export", controller.export)
		})
		router.Put("record/:id", controller.updateRecord)
	})
}

func (c *processApiController) getStage(ctx *fiber.Ctx) (models.StageKey, error) {
	stage := models.StageKey(ctx.Params("stage"))
	if !models.IsKnownStage(stage) {
		return "", errors.New("неизвестный этап")
	}
	return stage, nil
}

// @Summary Перевод откликов на следующий этап
// @Tags Процесс подбора
// @Description Перевод пачки откликов этапа на следующий по критериям запроса
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "ID вакансии"
// @Param   stage          		path    string  				    	true         "этап пайплайна"
// @Param	body body	 recruitmentapimodels.ForwardData	true	"request body"
// @Success 200 {object} apimodels.ForwardedResponse
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/recruitment/job/{id}/stage/{stage}/forward [put]
func (c *processApiController) forward(ctx *fiber.Ctx) error {
	jobID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	stage, err := c.getStage(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload recruitmentapimodels.ForwardData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	err = recruitmentprocess.Instance.ForwardStage(spaceID, jobID, stage, payload)
	if err != nil {
		if errors.Is(err, stages.ErrInvalidStage) ||
			errors.Is(err, recruitmentprocess.ErrStageUnfinished) ||
			errors.Is(err, recruitmentprocess.ErrTerminalStage) {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка перевода откликов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewForwardedResponse())
}

// @Summary Список записей этапа
// @Tags Процесс подбора
// @Description Рабочие записи этапа в разрезе Pending/Forwarded
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "ID вакансии"
// @Param   stage          		path    string  				    	true         "этап пайплайна"
// @Param   state          		query   string  				    	false        "Pending или Forwarded"
// @Success 200 {object} apimodels.Response{data=[]recruitmentapimodels.StageRecordView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/recruitment/job/{id}/stage/{stage}/list [get]
func (c *processApiController) stageList(ctx *fiber.Ctx) error {
	jobID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	stage, err := c.getStage(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	spaceID := middleware.GetUserSpace(ctx)
	list, err := stagerecordhandler.Instance.ListByStage(spaceID, jobID, stage, c.getMode(ctx))
	if err != nil {
		if errors.Is(err, stages.ErrInvalidStage) {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка этапа")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Выгрузка этапа в xlsx
// @Tags Процесс подбора
// @Description Выгрузка списка кандидатов этапа в файл xlsx
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "ID вакансии"
// @Param   stage          		path    string  				    	true         "этап пайплайна"
// @Param   state          		query   string  				    	false        "Pending или Forwarded"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/recruitment/job/{id}/stage/{stage}/export [get]
func (c *processApiController) export(ctx *fiber.Ctx) error {
	jobID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	stage, err := c.getStage(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	spaceID := middleware.GetUserSpace(ctx)
	list, err := stagerecordhandler.Instance.ListByStage(spaceID, jobID, stage, c.getMode(ctx))
	if err != nil {
		if errors.Is(err, stages.ErrInvalidStage) {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка этапа")
	}
	stageName := stages.DisplayName(stage)
	buf, err := xlsexport.Instance.ExportStageList(stageName, list)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка формирования файла выгрузки")
	}
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.xlsx"`, stageName))
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return ctx.Send(buf.Bytes())
}

func (c *processApiController) getMode(ctx *fiber.Ctx) stagerecordhandler.StageListMode {
	if ctx.Query("state") == string(stagerecordhandler.StageListForwarded) {
		return stagerecordhandler.StageListForwarded
	}
	return stagerecordhandler.StageListPending
}

// @Summary Изменение записи этапа
// @Tags Процесс подбора
// @Description Оценка кандидата: балл, категория, статус, подтверждение
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body body	 recruitmentapimodels.StageRecordData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/recruitment/record/{id} [put]
func (c *processApiController) updateRecord(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload recruitmentapimodels.StageRecordData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	err = stagerecordhandler.Instance.UpdateRecord(spaceID, id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения записи этапа")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
